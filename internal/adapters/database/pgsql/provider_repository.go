package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/restaurant_supply_app/internal/apperrors"
	"github.com/SscSPs/restaurant_supply_app/internal/core/domain"
	portsrepo "github.com/SscSPs/restaurant_supply_app/internal/core/ports/repositories"
	"github.com/SscSPs/restaurant_supply_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxProviderRepository struct {
	BaseRepository
}

func newPgxProviderRepository(pool *pgxpool.Pool) *PgxProviderRepository {
	return &PgxProviderRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ProviderRepositoryFacade = (*PgxProviderRepository)(nil)

const providerColumns = `provider_id, organization_id, name, provider_type, description, is_active,
	created_at, created_by, last_updated_at, last_updated_by, version`

func toDomainProvider(m models.Provider) domain.Provider {
	return domain.Provider{
		ProviderID:     m.ProviderID,
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		Type:           domain.ProviderType(m.ProviderType),
		Description:    m.Description,
		IsActive:       m.IsActive,
		AuditFields:    toDomainAudit(m.AuditFields),
	}
}

func scanProvider(row pgx.Row) (models.Provider, error) {
	var m models.Provider
	err := row.Scan(&m.ProviderID, &m.OrganizationID, &m.Name, &m.ProviderType, &m.Description, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.Version)
	return m, err
}

func (r *PgxProviderRepository) FindProviderByID(ctx context.Context, orgID, providerID string) (*domain.Provider, error) {
	m, err := scanProvider(r.Pool.QueryRow(ctx,
		`SELECT `+providerColumns+` FROM providers WHERE organization_id = $1 AND provider_id = $2`, orgID, providerID))
	if err != nil {
		return nil, mapError(err, "find provider "+providerID)
	}
	p := toDomainProvider(m)
	return &p, nil
}

func (r *PgxProviderRepository) ListProviders(ctx context.Context, orgID string, active *bool) ([]domain.Provider, error) {
	query := `SELECT ` + providerColumns + ` FROM providers WHERE organization_id = $1`
	args := []any{orgID}
	if active != nil {
		query += ` AND is_active = $2`
		args = append(args, *active)
	}
	query += ` ORDER BY LOWER(name), provider_id`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "list providers")
	}
	defer rows.Close()

	providers := []domain.Provider{}
	for rows.Next() {
		m, err := scanProvider(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan provider row: %w", err)
		}
		providers = append(providers, toDomainProvider(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating provider rows: %w", err)
	}
	return providers, nil
}

func (r *PgxProviderRepository) SaveProvider(ctx context.Context, p domain.Provider) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO providers (`+providerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ProviderID, p.OrganizationID, p.Name, string(p.Type), p.Description, p.IsActive,
		p.CreatedAt, p.CreatedBy, p.LastUpdatedAt, p.LastUpdatedBy, p.Version,
	)
	return mapError(err, "save provider "+p.ProviderID)
}

// UpdateProvider also refreshes the cached provider name on products that default to it.
// Line items keep the name they were ordered with.
func (r *PgxProviderRepository) UpdateProvider(ctx context.Context, p domain.Provider) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	cmdTag, err := tx.Exec(ctx, `
		UPDATE providers
		SET name = $3, provider_type = $4, description = $5, last_updated_at = $6, last_updated_by = $7, version = version + 1
		WHERE organization_id = $1 AND provider_id = $2`,
		p.OrganizationID, p.ProviderID, p.Name, string(p.Type), p.Description, p.LastUpdatedAt, p.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "update provider "+p.ProviderID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("provider %s: %w", p.ProviderID, apperrors.ErrNotFound)
	}
	if _, err := tx.Exec(ctx, `
		UPDATE products SET default_provider_name = $3
		WHERE organization_id = $1 AND default_provider_id = $2 AND default_provider_name <> $3`,
		p.OrganizationID, p.ProviderID, p.Name); err != nil {
		return mapError(err, "refresh product provider names")
	}
	return r.Commit(ctx, tx)
}

func (r *PgxProviderRepository) SetProviderActive(ctx context.Context, orgID, providerID string, active bool, userID string, at time.Time) error {
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE providers SET is_active = $3, last_updated_at = $4, last_updated_by = $5, version = version + 1
		WHERE organization_id = $1 AND provider_id = $2`,
		orgID, providerID, active, at, userID)
	if err != nil {
		return mapError(err, "toggle provider "+providerID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("provider %s: %w", providerID, apperrors.ErrNotFound)
	}
	return nil
}

// DeleteProvider removes the provider; products defaulting to it lose their default (FK ON DELETE SET NULL)
// and their cached name is cleared in the same transaction.
func (r *PgxProviderRepository) DeleteProvider(ctx context.Context, orgID, providerID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `
		UPDATE products SET default_provider_id = NULL, default_provider_name = ''
		WHERE organization_id = $1 AND default_provider_id = $2`, orgID, providerID); err != nil {
		return mapError(err, "detach provider "+providerID)
	}
	cmdTag, err := tx.Exec(ctx, `DELETE FROM providers WHERE organization_id = $1 AND provider_id = $2`, orgID, providerID)
	if err != nil {
		return mapError(err, "delete provider "+providerID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("provider %s: %w", providerID, apperrors.ErrNotFound)
	}
	return r.Commit(ctx, tx)
}
