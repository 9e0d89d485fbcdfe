package dto

import (
	"time"

	"github.com/SscSPs/restaurant_supply_app/internal/core/domain"
)

// CreateStaffRequest lets an admin provision a user in their organization.
type CreateStaffRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	Role       string `json:"role" binding:"required,userrole"`
	Restaurant string `json:"restaurant"`
}

// UpdateUserRequest defines what an admin may change on a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Name       *string `json:"name"`
	Role       *string `json:"role" binding:"omitempty,userrole"`
	Restaurant *string `json:"restaurant"`
	IsActive   *bool   `json:"isActive"`
}

// UpdateProfileRequest is what a user may change about themselves.
type UpdateProfileRequest struct {
	Name string `json:"name" binding:"required"`
}

// SetActiveRequest toggles an active flag.
type SetActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

type UserResponse struct {
	UserID         string          `json:"userID"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Role           domain.RoleKind `json:"role"`
	CanAdmin       bool            `json:"canAdmin"`
	OrganizationID string          `json:"organizationID"`
	Restaurant     string          `json:"restaurant,omitempty"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
	LastUpdatedAt  time.Time       `json:"lastUpdatedAt"`
}

// ToUserResponse converts a domain.User, exposing the normalized role only.
func ToUserResponse(u *domain.User) UserResponse {
	res := UserResponse{
		UserID:         u.UserID,
		Name:           u.Name,
		Email:          u.Email,
		OrganizationID: u.OrganizationID,
		Restaurant:     u.Restaurant,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt,
		LastUpdatedAt:  u.LastUpdatedAt,
	}
	if role, err := domain.ResolveRole(u.Claims()); err == nil {
		res.Role = role.Kind
		res.CanAdmin = role.CanAdmin
	}
	return res
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToListUserResponse converts a slice of domain.User to ListUsersResponse DTO
func ToListUserResponse(users []domain.User) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i := range users {
		userResponses[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{
		Users: userResponses,
	}
}
