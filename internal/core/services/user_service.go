package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/restaurant_supply_app/internal/apperrors"
	"github.com/SscSPs/restaurant_supply_app/internal/core/domain"
	portsrepo "github.com/SscSPs/restaurant_supply_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/restaurant_supply_app/internal/core/ports/services"
	"github.com/SscSPs/restaurant_supply_app/internal/dto"
	"github.com/SscSPs/restaurant_supply_app/internal/utils"
	"github.com/google/uuid"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, opts ...ServiceOption) portssvc.UserSvcFacade {
	return &userService{
		BaseService: newBaseService(opts),
		userRepo:    userRepo,
	}
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get user", slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ResolveActor(ctx context.Context, userID string) (domain.Actor, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return domain.Actor{}, err
	}
	return domain.NewActor(*user)
}

func (s *userService) ListUsers(ctx context.Context, actor domain.Actor) ([]domain.User, error) {
	if err := s.Authorize(ctx, actor, domain.ObjectUser, domain.ActionManage); err != nil {
		return nil, err
	}
	users, err := s.userRepo.ListUsersByOrganization(ctx, actor.OrganizationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users", slog.String("organization_id", actor.OrganizationID))
		return nil, err
	}
	return users, nil
}

// roleAndRestaurant validates a requested role string and its restaurant label together.
func roleAndRestaurant(role, restaurant string) (domain.RoleKind, string, error) {
	kind := domain.NormalizeRoleName(role)
	if kind == "" {
		return "", "", fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, role)
	}
	restaurant = strings.TrimSpace(restaurant)
	if err := domain.ValidateRestaurant(kind, restaurant); err != nil {
		return "", "", err
	}
	if kind != domain.RoleRestaurant {
		restaurant = ""
	}
	return kind, restaurant, nil
}

func (s *userService) CreateStaff(ctx context.Context, actor domain.Actor, req dto.CreateStaffRequest) (*domain.User, error) {
	if err := s.Authorize(ctx, actor, domain.ObjectUser, domain.ActionManage); err != nil {
		return nil, err
	}
	kind, restaurant, err := roleAndRestaurant(req.Role, req.Restaurant)
	if err != nil {
		return nil, err
	}
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	user := domain.User{
		UserID:         uuid.NewString(),
		Name:           strings.TrimSpace(req.Name),
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash:   &hash,
		Role:           string(kind),
		IsAdmin:        kind == domain.RoleAdmin,
		OrganizationID: actor.OrganizationID,
		Restaurant:     restaurant,
		IsActive:       true,
		AuditFields:    domain.NewAuditFields(actor.UserID, s.now()),
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)
		}
		s.LogError(ctx, err, "Failed to save staff user", slog.String("email", user.Email))
		return nil, err
	}
	s.LogInfo(ctx, "Staff user created", slog.String("user_id", user.UserID), slog.String("role", user.Role))
	return &user, nil
}

// loadOrgUser fetches a user and hides users of other organizations.
func (s *userService) loadOrgUser(ctx context.Context, actor domain.Actor, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.OrganizationID != actor.OrganizationID {
		return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
	}
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, actor domain.Actor, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	if err := s.Authorize(ctx, actor, domain.ObjectUser, domain.ActionManage); err != nil {
		return nil, err
	}
	user, err := s.loadOrgUser(ctx, actor, userID)
	if err != nil {
		return nil, err
	}

	if req.IsActive != nil && !*req.IsActive && userID == actor.UserID {
		return nil, fmt.Errorf("%w: you cannot deactivate your own account", apperrors.ErrForbidden)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidation)
		}
		user.Name = name
	}
	if req.Role != nil || req.Restaurant != nil {
		role := user.Role
		if req.Role != nil {
			role = *req.Role
		}
		restaurant := user.Restaurant
		if req.Restaurant != nil {
			restaurant = *req.Restaurant
		}
		kind, rest, err := roleAndRestaurant(role, restaurant)
		if err != nil {
			return nil, err
		}
		user.Role = string(kind)
		user.IsAdmin = kind == domain.RoleAdmin
		user.Restaurant = rest
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	user.Touch(actor.UserID, s.now())

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, err
	}
	return user, nil
}

func (s *userService) SetUserActive(ctx context.Context, actor domain.Actor, userID string, active bool) (*domain.User, error) {
	return s.UpdateUser(ctx, actor, userID, dto.UpdateUserRequest{IsActive: &active})
}

func (s *userService) UpdateProfile(ctx context.Context, actor domain.Actor, req dto.UpdateProfileRequest) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidation)
	}
	user.Name = name
	user.Touch(actor.UserID, s.now())
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update profile", slog.String("user_id", actor.UserID))
		return nil, err
	}
	return user, nil
}
