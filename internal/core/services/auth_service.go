package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/restaurant_supply_app/internal/apperrors"
	"github.com/SscSPs/restaurant_supply_app/internal/core/domain"
	portsrepo "github.com/SscSPs/restaurant_supply_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/restaurant_supply_app/internal/core/ports/services"
	"github.com/SscSPs/restaurant_supply_app/internal/platform/config"
	"github.com/SscSPs/restaurant_supply_app/internal/utils"
	"google.golang.org/api/idtoken"
)

// IDTokenValidator validates a Google ID token for the given audience.
type IDTokenValidator func(ctx context.Context, idToken string, audience string) (*idtoken.Payload, error)

// authService issues access tokens and checks credentials.
type authService struct {
	BaseService
	cfg       *config.Config
	userRepo  portsrepo.UserReader
	validator IDTokenValidator
}

// NewAuthService creates the authentication service. validator may be nil to use idtoken.Validate.
func NewAuthService(cfg *config.Config, userRepo portsrepo.UserReader, validator IDTokenValidator, opts ...ServiceOption) portssvc.AuthSvcFacade {
	if validator == nil {
		validator = idtoken.Validate
	}
	return &authService{
		BaseService: newBaseService(opts),
		cfg:         cfg,
		userRepo:    userRepo,
		validator:   validator,
	}
}

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *authService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	now := s.now()
	expiryTime := now.Add(s.cfg.JWTExpiryDuration)

	accessToken, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, now, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", slog.String("user_id", user.UserID))
		return "", time.Time{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	return accessToken, expiryTime, nil
}

// AuthenticateUser authenticates a user with email and password.
func (s *authService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
		}
		s.LogError(ctx, err, "Failed to look up user for login")
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: user account is inactive", apperrors.ErrForbidden)
	}
	s.LogInfo(ctx, "User authenticated", slog.String("user_id", user.UserID))
	return user, nil
}

// AuthenticateGoogleIDToken logs in a registered user by a verified Google email.
// Google sign-in never creates users; registration requires an invite code.
func (s *authService) AuthenticateGoogleIDToken(ctx context.Context, idToken string) (*domain.User, error) {
	if s.cfg.GoogleClientID == "" {
		return nil, fmt.Errorf("%w: google sign-in is not configured", apperrors.ErrUnavailable)
	}
	payload, err := s.validator(ctx, idToken, s.cfg.GoogleClientID)
	if err != nil {
		s.GetLogger(ctx).Warn("Google ID token rejected", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: invalid google id token", apperrors.ErrUnauthorized)
	}

	email, _ := payload.Claims["email"].(string)
	verified, _ := payload.Claims["email_verified"].(bool)
	if email == "" || !verified {
		return nil, fmt.Errorf("%w: google account email is not verified", apperrors.ErrUnauthorized)
	}

	user, err := s.userRepo.FindUserByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no account registered for %s", apperrors.ErrUnauthorized, email)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: user account is inactive", apperrors.ErrForbidden)
	}
	return user, nil
}
