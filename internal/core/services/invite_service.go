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
	"github.com/gosimple/slug"
)

type inviteService struct {
	BaseService
	inviteRepo portsrepo.InviteCodeRepositoryFacade
	orgRepo    portsrepo.OrganizationReader
}

// NewInviteService creates the onboarding service.
func NewInviteService(inviteRepo portsrepo.InviteCodeRepositoryFacade, orgRepo portsrepo.OrganizationReader, opts ...ServiceOption) portssvc.InviteSvcFacade {
	return &inviteService{
		BaseService: newBaseService(opts),
		inviteRepo:  inviteRepo,
		orgRepo:     orgRepo,
	}
}

// NormalizeInviteCode is the canonical form codes are stored and looked up by.
func NormalizeInviteCode(code string) string {
	return slug.Make(strings.TrimSpace(code))
}

func (s *inviteService) CreateInviteCode(ctx context.Context, actor domain.Actor, req dto.CreateInviteCodeRequest) (*domain.InviteCode, error) {
	if err := s.Authorize(ctx, actor, domain.ObjectInviteCode, domain.ActionManage); err != nil {
		return nil, err
	}

	code := NormalizeInviteCode(req.Code)
	if code == "" {
		suffix, err := utils.GenerateInviteSuffix()
		if err != nil {
			s.LogError(ctx, err, "Failed to generate invite code")
			return nil, fmt.Errorf("%w: failed to generate invite code", apperrors.ErrInternal)
		}
		code = NormalizeInviteCode(actor.OrganizationID + "-" + suffix)
	}

	orgName := strings.TrimSpace(req.OrganizationName)
	if orgName == "" {
		if org, err := s.orgRepo.FindOrganizationByID(ctx, actor.OrganizationID); err == nil {
			orgName = org.Name
		} else {
			orgName = actor.OrganizationID
		}
	}

	invite := domain.InviteCode{
		Code:             code,
		OrganizationID:   actor.OrganizationID,
		OrganizationName: orgName,
		CreatedAt:        s.now(),
		CreatedBy:        actor.UserID,
	}
	if err := s.inviteRepo.SaveInviteCode(ctx, invite); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: invite code %s already exists", apperrors.ErrDuplicate, code)
		}
		s.LogError(ctx, err, "Failed to save invite code", slog.String("code", code))
		return nil, err
	}
	s.LogInfo(ctx, "Invite code created", slog.String("code", code), slog.String("organization_id", actor.OrganizationID))
	return &invite, nil
}

func (s *inviteService) ListInviteCodes(ctx context.Context, actor domain.Actor) ([]domain.InviteCode, error) {
	if err := s.Authorize(ctx, actor, domain.ObjectInviteCode, domain.ActionManage); err != nil {
		return nil, err
	}
	return s.inviteRepo.ListInviteCodes(ctx, actor.OrganizationID)
}

func (s *inviteService) ReleaseInviteCode(ctx context.Context, actor domain.Actor, code string) (*domain.InviteCode, error) {
	if err := s.Authorize(ctx, actor, domain.ObjectInviteCode, domain.ActionManage); err != nil {
		return nil, err
	}
	code = NormalizeInviteCode(code)
	invite, err := s.inviteRepo.FindInviteCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if invite.OrganizationID != actor.OrganizationID {
		return nil, fmt.Errorf("%w: invite code %s", apperrors.ErrNotFound, code)
	}
	if !invite.Used {
		return invite, nil
	}
	if err := s.inviteRepo.ReleaseInviteCode(ctx, code); err != nil {
		s.LogError(ctx, err, "Failed to release invite code", slog.String("code", code))
		return nil, err
	}
	invite.Used = false
	return invite, nil
}

// Register redeems an invite code. The code is checked, the user inserted and the code
// consumed by one repository transaction, so a failed registration changes nothing.
func (s *inviteService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	code := NormalizeInviteCode(req.InviteCode)
	if code == "" {
		return nil, fmt.Errorf("%w: invite code is required", apperrors.ErrValidation)
	}
	kind, restaurant, err := roleAndRestaurant(req.Role, req.Restaurant)
	if err != nil {
		return nil, err
	}
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	now := s.now()
	userID := uuid.NewString()
	newUser := domain.User{
		UserID:       userID,
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: &hash,
		Role:         string(kind),
		IsAdmin:      kind == domain.RoleAdmin,
		Restaurant:   restaurant,
		IsActive:     true,
		AuditFields:  domain.NewAuditFields(userID, now),
	}

	user, err := s.inviteRepo.RedeemInviteCode(ctx, code, newUser, now)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			return nil, fmt.Errorf("%w: invite code does not exist", apperrors.ErrNotFound)
		case errors.Is(err, apperrors.ErrDuplicate):
			return nil, fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)
		case errors.Is(err, apperrors.ErrConflict):
			return nil, fmt.Errorf("%w: invite code was already used", apperrors.ErrConflict)
		}
		s.LogError(ctx, err, "Failed to redeem invite code", slog.String("code", code))
		return nil, err
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID), slog.String("organization_id", user.OrganizationID))
	s.Analytics.Enqueue(user.UserID, utils.EventUserRegistered, map[string]any{
		"organization_id": user.OrganizationID,
		"role":            user.Role,
	})
	return user, nil
}
