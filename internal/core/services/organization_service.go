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
	"github.com/SscSPs/restaurant_supply_app/internal/dto"
	"github.com/shopspring/decimal"
)

type organizationService struct {
	BaseService
	orgRepo portsrepo.OrganizationRepositoryFacade
}

// NewOrganizationService creates the settings service.
func NewOrganizationService(orgRepo portsrepo.OrganizationRepositoryFacade, opts ...ServiceOption) portssvc.OrganizationSvcFacade {
	return &organizationService{
		BaseService: newBaseService(opts),
		orgRepo:     orgRepo,
	}
}

// loadSettings returns stored settings or the defaults, without writing.
func (s *organizationService) loadSettings(ctx context.Context, actor domain.Actor) (*domain.OrganizationSettings, error) {
	settings, err := s.orgRepo.FindSettings(ctx, actor.OrganizationID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to load organization settings", slog.String("organization_id", actor.OrganizationID))
		return nil, err
	}
	name := actor.OrganizationID
	if org, err := s.orgRepo.FindOrganizationByID(ctx, actor.OrganizationID); err == nil && org.Name != "" {
		name = org.Name
	}
	defaults := domain.DefaultOrganizationSettings(actor.OrganizationID, name, actor.Email)
	return &defaults, nil
}

func (s *organizationService) GetSettings(ctx context.Context, actor domain.Actor) (*domain.OrganizationSettings, error) {
	if err := s.Authorize(ctx, actor, domain.ObjectSettings, domain.ActionView); err != nil {
		return nil, err
	}
	return s.loadSettings(ctx, actor)
}

func (s *organizationService) UpdateSettings(ctx context.Context, actor domain.Actor, req dto.UpdateSettingsRequest) (*domain.OrganizationSettings, error) {
	if err := s.Authorize(ctx, actor, domain.ObjectSettings, domain.ActionUpdate); err != nil {
		return nil, err
	}
	current, err := s.loadSettings(ctx, actor)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.OrganizationName)
	if name == "" {
		return nil, fmt.Errorf("%w: organization name is required", apperrors.ErrValidation)
	}
	if req.Timezone != "" {
		if _, err := time.LoadLocation(req.Timezone); err != nil {
			return nil, fmt.Errorf("%w: unknown timezone %q", apperrors.ErrValidation, req.Timezone)
		}
	}
	freq := domain.OrderFrequency(req.OrderFrequency)
	if freq != "" && !domain.IsValidOrderFrequency(freq) {
		return nil, fmt.Errorf("%w: unknown order frequency %q", apperrors.ErrValidation, req.OrderFrequency)
	}
	if req.MinimumOrderValue != nil && req.MinimumOrderValue.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: minimum order value cannot be negative", apperrors.ErrValidation)
	}

	next := *current
	next.OrganizationName = name
	next.ContactEmail = strings.TrimSpace(req.ContactEmail)
	next.ContactPhone = strings.TrimSpace(req.ContactPhone)
	next.Address = strings.TrimSpace(req.Address)
	next.City = strings.TrimSpace(req.City)
	next.Country = orDefault(strings.TrimSpace(req.Country), current.Country)
	next.Timezone = orDefault(req.Timezone, current.Timezone)
	if freq != "" {
		next.OrderFrequency = freq
	}
	next.Currency = strings.ToUpper(orDefault(req.Currency, current.Currency))
	next.UrgentNotifications = req.UrgentNotifications
	next.EmailNotifications = req.EmailNotifications
	next.AutoAssignProviders = req.AutoAssignProviders
	next.DefaultOrderTime = orDefault(req.DefaultOrderTime, current.DefaultOrderTime)
	if req.MinimumOrderValue != nil {
		next.MinimumOrderValue = *req.MinimumOrderValue
	}

	now := s.now()
	if next.CreatedBy == "" {
		next.AuditFields = domain.NewAuditFields(actor.UserID, now)
	} else {
		next.Touch(actor.UserID, now)
		next.Version++
	}

	if err := s.orgRepo.UpsertSettings(ctx, next); err != nil {
		s.LogError(ctx, err, "Failed to save organization settings", slog.String("organization_id", actor.OrganizationID))
		return nil, err
	}
	s.LogInfo(ctx, "Organization settings updated", slog.String("organization_id", actor.OrganizationID))
	return &next, nil
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
