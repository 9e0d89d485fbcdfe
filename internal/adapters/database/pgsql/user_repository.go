package pgsql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/SscSPs/restaurant_supply_app/internal/apperrors"
	"github.com/SscSPs/restaurant_supply_app/internal/core/domain"
	portsrepo "github.com/SscSPs/restaurant_supply_app/internal/core/ports/repositories"
	"github.com/SscSPs/restaurant_supply_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	db *pgxpool.Pool
}

func newPgxUserRepository(db *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{db: db}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const userColumns = `user_id, name, email, password_hash, role, is_admin, roles, permissions, organization_id, restaurant,
	is_active, created_at, created_by, last_updated_at, last_updated_by, version`

// Helper to convert domain.User to models.User
func toModelUser(d domain.User) models.User {
	m := models.User{
		UserID:         d.UserID,
		Name:           d.Name,
		Email:          d.Email,
		Role:           d.Role,
		IsAdmin:        d.IsAdmin,
		Roles:          d.Roles,
		Permissions:    d.Permissions,
		OrganizationID: d.OrganizationID,
		Restaurant:     d.Restaurant,
		IsActive:       d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
			Version:       d.Version,
		},
	}
	if d.PasswordHash != nil && *d.PasswordHash != "" {
		m.PasswordHash = sql.NullString{String: *d.PasswordHash, Valid: true}
	}
	if m.Permissions == nil {
		m.Permissions = []string{}
	}
	if m.Roles == nil {
		m.Roles = map[string]bool{}
	}
	return m
}

// Helper to convert models.User to domain.User
func toDomainUser(m models.User) domain.User {
	d := domain.User{
		UserID:         m.UserID,
		Name:           m.Name,
		Email:          m.Email,
		Role:           m.Role,
		IsAdmin:        m.IsAdmin,
		Roles:          m.Roles,
		Permissions:    m.Permissions,
		OrganizationID: m.OrganizationID,
		Restaurant:     m.Restaurant,
		IsActive:       m.IsActive,
		AuditFields:    toDomainAudit(m.AuditFields),
	}
	if m.PasswordHash.Valid {
		hash := m.PasswordHash.String
		d.PasswordHash = &hash
	}
	return d
}

func scanUser(row pgx.Row) (models.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID, &m.Name, &m.Email, &m.PasswordHash, &m.Role, &m.IsAdmin, &m.Roles, &m.Permissions,
		&m.OrganizationID, &m.Restaurant, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy, &m.Version,
	)
	return m, err
}

func insertUser(ctx context.Context, q querier, user domain.User) error {
	m := toModelUser(user)
	_, err := q.Exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		m.UserID, m.Name, m.Email, m.PasswordHash, m.Role, m.IsAdmin, m.Roles, m.Permissions,
		m.OrganizationID, m.Restaurant, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy, m.Version,
	)
	return mapError(err, "save user "+user.Email)
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	return insertUser(ctx, r.db, user)
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	m, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = $1`, userID))
	if err != nil {
		return nil, mapError(err, "find user "+userID)
	}
	u := toDomainUser(m)
	return &u, nil
}

// FindUserByEmail matches case-insensitively, like the unique index.
func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	m, err := scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) = LOWER($1)`, email))
	if err != nil {
		return nil, mapError(err, "find user by email")
	}
	u := toDomainUser(m)
	return &u, nil
}

func (r *PgxUserRepository) ListUsersByOrganization(ctx context.Context, orgID string) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE organization_id = $1 ORDER BY name, user_id`, orgID)
	if err != nil {
		return nil, mapError(err, "list users")
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		m, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, toDomainUser(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

// UpdateUser writes the mutable profile fields. Email and organization never change.
func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := toModelUser(user)
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE users
		SET name = $2, role = $3, is_admin = $4, roles = $5, permissions = $6, restaurant = $7, is_active = $8,
			last_updated_at = $9, last_updated_by = $10, version = version + 1
		WHERE user_id = $1`,
		m.UserID, m.Name, m.Role, m.IsAdmin, m.Roles, m.Permissions, m.Restaurant, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapError(err, "update user "+user.UserID)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", user.UserID, apperrors.ErrNotFound)
	}
	return nil
}
