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

type PgxInviteCodeRepository struct {
	BaseRepository
}

func newPgxInviteCodeRepository(pool *pgxpool.Pool) *PgxInviteCodeRepository {
	return &PgxInviteCodeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InviteCodeRepositoryFacade = (*PgxInviteCodeRepository)(nil)

const inviteColumns = `code, organization_id, organization_name, used, used_by, used_at, created_at, created_by`

func toDomainInviteCode(m models.InviteCode) domain.InviteCode {
	d := domain.InviteCode{
		Code:             m.Code,
		OrganizationID:   m.OrganizationID,
		OrganizationName: m.OrganizationName,
		Used:             m.Used,
		CreatedAt:        m.CreatedAt,
		CreatedBy:        m.CreatedBy,
	}
	if m.UsedBy.Valid {
		by := m.UsedBy.String
		d.UsedBy = &by
	}
	if m.UsedAt.Valid {
		at := m.UsedAt.Time
		d.UsedAt = &at
	}
	return d
}

func scanInviteCode(row pgx.Row) (models.InviteCode, error) {
	var m models.InviteCode
	err := row.Scan(&m.Code, &m.OrganizationID, &m.OrganizationName, &m.Used, &m.UsedBy, &m.UsedAt, &m.CreatedAt, &m.CreatedBy)
	return m, err
}

func (r *PgxInviteCodeRepository) FindInviteCode(ctx context.Context, code string) (*domain.InviteCode, error) {
	m, err := scanInviteCode(r.Pool.QueryRow(ctx, `SELECT `+inviteColumns+` FROM invite_codes WHERE code = $1`, code))
	if err != nil {
		return nil, mapError(err, "find invite code "+code)
	}
	d := toDomainInviteCode(m)
	return &d, nil
}

func (r *PgxInviteCodeRepository) ListInviteCodes(ctx context.Context, orgID string) ([]domain.InviteCode, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+inviteColumns+` FROM invite_codes WHERE organization_id = $1 ORDER BY created_at DESC, code`, orgID)
	if err != nil {
		return nil, mapError(err, "list invite codes")
	}
	defer rows.Close()

	codes := []domain.InviteCode{}
	for rows.Next() {
		m, err := scanInviteCode(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invite code row: %w", err)
		}
		codes = append(codes, toDomainInviteCode(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invite code rows: %w", err)
	}
	return codes, nil
}

func (r *PgxInviteCodeRepository) SaveInviteCode(ctx context.Context, code domain.InviteCode) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO invite_codes (code, organization_id, organization_name, used, created_at, created_by)
		VALUES ($1, $2, $3, FALSE, $4, $5)`,
		code.Code, code.OrganizationID, code.OrganizationName, code.CreatedAt, code.CreatedBy)
	return mapError(err, "save invite code "+code.Code)
}

// RedeemInviteCode locks the code, creates the organization on first use, inserts the
// user into the code's organization and marks the code used, all in one transaction.
func (r *PgxInviteCodeRepository) RedeemInviteCode(ctx context.Context, code string, newUser domain.User, at time.Time) (*domain.User, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	m, err := scanInviteCode(tx.QueryRow(ctx, `SELECT `+inviteColumns+` FROM invite_codes WHERE code = $1 FOR UPDATE`, code))
	if err != nil {
		return nil, mapError(err, "lock invite code "+code)
	}
	if m.Used {
		return nil, fmt.Errorf("invite code %s: %w", code, apperrors.ErrConflict)
	}

	if err := saveOrganization(ctx, tx, domain.Organization{
		OrganizationID: m.OrganizationID, Name: m.OrganizationName, CreatedAt: at,
	}); err != nil {
		return nil, err
	}

	newUser.OrganizationID = m.OrganizationID
	if err := insertUser(ctx, tx, newUser); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `UPDATE invite_codes SET used = TRUE, used_by = $2, used_at = $3 WHERE code = $1`,
		code, newUser.UserID, at); err != nil {
		return nil, mapError(err, "consume invite code "+code)
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &newUser, nil
}

// ReleaseInviteCode makes a used code redeemable again. The user it created is kept, and
// used_by/used_at keep naming the last redeemer until the code is redeemed again.
func (r *PgxInviteCodeRepository) ReleaseInviteCode(ctx context.Context, code string) error {
	cmdTag, err := r.Pool.Exec(ctx, `UPDATE invite_codes SET used = FALSE WHERE code = $1`, code)
	if err != nil {
		return mapError(err, "release invite code "+code)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("invite code %s: %w", code, apperrors.ErrNotFound)
	}
	return nil
}
