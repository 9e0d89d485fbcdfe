package services

import (
	"context"
	"time"

	"github.com/SscSPs/restaurant_supply_app/internal/core/domain"
)

// TokenSvc issues access tokens.
type TokenSvc interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}

// AuthSvcFacade authenticates users by password or Google ID token.
type AuthSvcFacade interface {
	TokenSvc

	// AuthenticateUser checks email and password. Inactive users get apperrors.ErrForbidden.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)

	// AuthenticateGoogleIDToken validates the ID token and returns the user registered with its email.
	AuthenticateGoogleIDToken(ctx context.Context, idToken string) (*domain.User, error)
}
