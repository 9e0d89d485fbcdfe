package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/restaurant_supply_app/internal/apperrors"
	"github.com/SscSPs/restaurant_supply_app/internal/core/domain"
	portsrepo "github.com/SscSPs/restaurant_supply_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/restaurant_supply_app/internal/core/ports/services"
)

type dashboardService struct {
	BaseService
	orderRepo   portsrepo.OrderReader
	productRepo portsrepo.ProductReader
	userRepo    portsrepo.UserReader
	orgRepo     portsrepo.OrganizationReader
}

// NewDashboardService creates the admin rollup service.
func NewDashboardService(
	orderRepo portsrepo.OrderReader,
	productRepo portsrepo.ProductReader,
	userRepo portsrepo.UserReader,
	orgRepo portsrepo.OrganizationReader,
	opts ...ServiceOption,
) portssvc.DashboardSvc {
	return &dashboardService{
		BaseService: newBaseService(opts),
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		orgRepo:     orgRepo,
	}
}

// Overview degrades to an empty rollup when any source cannot be read.
func (s *dashboardService) Overview(ctx context.Context, actor domain.Actor) (domain.DashboardOverview, error) {
	now := s.now()
	if err := s.Authorize(ctx, actor, domain.ObjectDashboard, domain.ActionView); err != nil {
		return domain.DashboardOverview{}, err
	}
	orgID := actor.OrganizationID

	orders, err := s.orderRepo.ListOrders(ctx, orgID, portsrepo.OrderFilter{})
	if err != nil {
		s.LogError(ctx, err, "Dashboard failed to load orders", slog.String("organization_id", orgID))
		return domain.EmptyDashboard(now), nil
	}
	products, err := s.productRepo.ListProducts(ctx, orgID, nil)
	if err != nil {
		s.LogError(ctx, err, "Dashboard failed to load products", slog.String("organization_id", orgID))
		return domain.EmptyDashboard(now), nil
	}
	users, err := s.userRepo.ListUsersByOrganization(ctx, orgID)
	if err != nil {
		s.LogError(ctx, err, "Dashboard failed to load users", slog.String("organization_id", orgID))
		return domain.EmptyDashboard(now), nil
	}

	loc := domain.DefaultOrganizationSettings(orgID, "", "").Location()
	if settings, err := s.orgRepo.FindSettings(ctx, orgID); err == nil {
		loc = settings.Location()
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Dashboard failed to load settings, using default timezone", slog.String("organization_id", orgID))
	}

	return domain.BuildDashboard(orders, products, users, now, loc), nil
}
