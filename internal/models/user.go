package models

import "database/sql"

// User is a row of the users table.
type User struct {
	UserID         string          `db:"user_id"`
	Name           string          `db:"name"`
	Email          string          `db:"email"`
	PasswordHash   sql.NullString  `db:"password_hash"` // NULL for accounts that only sign in with Google
	Role           string          `db:"role"`
	IsAdmin        bool            `db:"is_admin"`
	Roles          map[string]bool `db:"roles"`         // JSONB capability flags, e.g. {"admin": true}
	Permissions    []string        `db:"permissions"`
	OrganizationID string          `db:"organization_id"`
	Restaurant     string          `db:"restaurant"`
	IsActive       bool            `db:"is_active"`
	AuditFields
}
