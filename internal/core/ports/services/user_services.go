package services

import (
	"context"

	"github.com/SscSPs/restaurant_supply_app/internal/core/domain"
	"github.com/SscSPs/restaurant_supply_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ResolveActor loads the user and resolves it into an Actor.
	ResolveActor(ctx context.Context, userID string) (domain.Actor, error)

	// ListUsers retrieves every user of the actor's organization.
	ListUsers(ctx context.Context, actor domain.Actor) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// CreateStaff lets an admin provision a user in their own organization.
	CreateStaff(ctx context.Context, actor domain.Actor, req dto.CreateStaffRequest) (*domain.User, error)

	// UpdateUser applies an admin edit. Deactivating oneself is forbidden.
	UpdateUser(ctx context.Context, actor domain.Actor, userID string, req dto.UpdateUserRequest) (*domain.User, error)

	// SetUserActive toggles a user's active flag.
	SetUserActive(ctx context.Context, actor domain.Actor, userID string, active bool) (*domain.User, error)

	// UpdateProfile changes the actor's own display name.
	UpdateProfile(ctx context.Context, actor domain.Actor, req dto.UpdateProfileRequest) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}
