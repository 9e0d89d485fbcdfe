package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/restaurant_supply_app/internal/apperrors"
)

// RoleKind is the normalized role of a user. Business logic only ever compares RoleKind values.
type RoleKind string

const (
	RoleRestaurant RoleKind = "restaurant"
	RoleSupplier   RoleKind = "supplier"
	RoleAdmin      RoleKind = "admin"
)

const (
	PermissionAdmin           = "admin"
	PermissionInventoryManage = "inventory.manage"
)

// User represents a member of an organization.
type User struct {
	UserID         string          `json:"userID"`          // Primary Key (e.g., UUID)
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	PasswordHash   *string         `json:"-"`
	Role           string          `json:"role"`            // as stored, may be a legacy alias
	IsAdmin        bool            `json:"isAdmin"`
	Roles          map[string]bool `json:"roles,omitempty"` // capability flags such as roles["admin"]
	Permissions    []string        `json:"permissions"`
	OrganizationID string          `json:"organizationID"`  // immutable after creation
	Restaurant     string          `json:"restaurant"`      // required iff role resolves to restaurant
	IsActive       bool            `json:"isActive"`
	AuditFields
}

// RoleClaims is every field the identity layer may use to express a role.
type RoleClaims struct {
	Role        string
	IsAdmin     bool
	Roles       map[string]bool
	Permissions []string
}

// ResolvedRole is the single normalized view of a user's role.
type ResolvedRole struct {
	Kind     RoleKind `json:"kind"`
	CanAdmin bool     `json:"canAdmin"`
}

var roleAliases = map[string]RoleKind{
	"restaurant":    RoleRestaurant,
	"restaurante":   RoleRestaurant,
	"location":      RoleRestaurant,
	"supplier":      RoleSupplier,
	"surtidor":      RoleSupplier,
	"dispatcher":    RoleSupplier,
	"proveedor":     RoleSupplier,
	"admin":         RoleAdmin,
	"administrador": RoleAdmin,
	"administrator": RoleAdmin,
}

// ResolveRole normalizes role claims. An unrecognised role string is accepted
// only when one of the admin capability flags is present.
func ResolveRole(c RoleClaims) (ResolvedRole, error) {
	canAdmin := c.IsAdmin || c.Roles[PermissionAdmin]
	for _, p := range c.Permissions {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == PermissionAdmin || p == PermissionInventoryManage {
			canAdmin = true
		}
	}

	kind, ok := roleAliases[strings.ToLower(strings.TrimSpace(c.Role))]
	switch {
	case ok && kind == RoleAdmin:
		canAdmin = true
	case !ok && canAdmin:
		kind = RoleAdmin
	case !ok:
		return ResolvedRole{}, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, c.Role)
	}
	return ResolvedRole{Kind: kind, CanAdmin: canAdmin}, nil
}

// Claims exposes the user's role fields for ResolveRole.
func (u User) Claims() RoleClaims {
	return RoleClaims{Role: u.Role, IsAdmin: u.IsAdmin, Roles: u.Roles, Permissions: u.Permissions}
}

// NormalizeRoleName maps an alias to its canonical role string, or returns "" if unknown.
func NormalizeRoleName(role string) RoleKind {
	return roleAliases[strings.ToLower(strings.TrimSpace(role))]
}

// ValidateRestaurant enforces that restaurant users carry a restaurant label.
func ValidateRestaurant(kind RoleKind, restaurant string) error {
	if kind == RoleRestaurant && strings.TrimSpace(restaurant) == "" {
		return fmt.Errorf("%w: restaurant is required for restaurant users", apperrors.ErrValidation)
	}
	return nil
}

// Actor is the authenticated caller as seen by the services.
type Actor struct {
	UserID         string       `json:"userID"`
	Name           string       `json:"name"`
	Email          string       `json:"email"`
	OrganizationID string       `json:"organizationID"`
	Restaurant     string       `json:"restaurant"`
	Role           ResolvedRole `json:"role"`
	Active         bool         `json:"active"`
}

// NewActor builds an Actor from a stored user, rejecting unknown roles.
func NewActor(u User) (Actor, error) {
	role, err := ResolveRole(u.Claims())
	if err != nil {
		return Actor{}, err
	}
	return Actor{
		UserID:         u.UserID,
		Name:           u.Name,
		Email:          u.Email,
		OrganizationID: u.OrganizationID,
		Restaurant:     u.Restaurant,
		Role:           role,
		Active:         u.IsActive,
	}, nil
}

// Location is the label stamped on stock movements: the restaurant when set, else the organization.
func (a Actor) Location() string {
	if a.Restaurant != "" {
		return a.Restaurant
	}
	return a.OrganizationID
}
