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
	"github.com/SscSPs/restaurant_supply_app/internal/utils"
	"github.com/google/uuid"
)

type orderService struct {
	BaseService
	orderRepo    portsrepo.OrderRepositoryFacade
	productRepo  portsrepo.ProductReader
	providerRepo portsrepo.ProviderReader
	orgRepo      portsrepo.OrganizationReader
}

// NewOrderService creates the order aggregate service.
func NewOrderService(
	orderRepo portsrepo.OrderRepositoryFacade,
	productRepo portsrepo.ProductReader,
	providerRepo portsrepo.ProviderReader,
	orgRepo portsrepo.OrganizationReader,
	opts ...ServiceOption,
) portssvc.OrderSvcFacade {
	return &orderService{
		BaseService:  newBaseService(opts),
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		providerRepo: providerRepo,
		orgRepo:      orgRepo,
	}
}

func (s *orderService) mutator() orderMutator {
	return orderMutator{base: &s.BaseService, orderRep: s.orderRepo}
}

func (s *orderService) SubmitOrder(ctx context.Context, actor domain.Actor, req dto.SubmitOrderRequest) (*domain.Order, error) {
	if err := s.Authorize(ctx, actor, domain.ObjectOrder, domain.ActionCreate); err != nil {
		return nil, err
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: an order needs at least one item", apperrors.ErrValidation)
	}

	ids := make([]string, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity for %s must be greater than zero", apperrors.ErrValidation, item.ProductID)
		}
		ids = append(ids, item.ProductID)
	}
	products, err := s.productRepo.FindProductsByIDs(ctx, actor.OrganizationID, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to load products for order")
		return nil, err
	}

	draft := domain.NewOrderDraft()
	for _, item := range req.Items {
		product, ok := products[item.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: product %s does not exist", apperrors.ErrValidation, item.ProductID)
		}
		if !product.IsActive {
			return nil, fmt.Errorf("%w: product %s is not active", apperrors.ErrValidation, product.Name)
		}
		draft.AddQuantity(product, item.Quantity)
		if item.ProviderID != nil && strings.TrimSpace(*item.ProviderID) != "" {
			provider, err := s.providerRepo.FindProviderByID(ctx, actor.OrganizationID, *item.ProviderID)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return nil, fmt.Errorf("%w: provider %s does not exist", apperrors.ErrValidation, *item.ProviderID)
				}
				return nil, err
			}
			draft.SetProvider(product.ProductID, provider.ProviderID, provider.Name)
		}
	}

	now := s.now()
	restaurantName := actor.Restaurant
	if restaurantName == "" {
		restaurantName = actor.Name
	}
	order := domain.Order{
		OrderID:        uuid.NewString(),
		OrganizationID: actor.OrganizationID,
		RestaurantID:   actor.UserID,
		RestaurantName: restaurantName,
		Items:          draft.Items(),
		IsUrgent:       req.IsUrgent,
		Status:         domain.OrderPending,
		WeekOf:         domain.WeekOf(now, s.orgLocation(ctx, actor.OrganizationID)),
		TotalItems:     draft.TotalItems(),
		AuditFields:    domain.NewAuditFields(actor.UserID, now),
	}
	if err := s.orderRepo.SaveOrder(ctx, order); err != nil {
		s.LogError(ctx, err, "Failed to save order", slog.String("order_id", order.OrderID))
		return nil, err
	}

	s.Metrics.OrderSubmitted(order.IsUrgent)
	s.Analytics.Enqueue(actor.UserID, utils.EventOrderSubmitted, map[string]any{
		"organization_id": actor.OrganizationID,
		"urgent":          order.IsUrgent,
		"items":           order.TotalItems,
	})
	s.LogInfo(ctx, "Order submitted",
		slog.String("order_id", order.OrderID),
		slog.Bool("urgent", order.IsUrgent),
		slog.Int("total_items", order.TotalItems))
	return &order, nil
}

// orgLocation falls back to the default timezone when settings were never saved or cannot be read.
func (s *orderService) orgLocation(ctx context.Context, orgID string) *time.Location {
	settings, err := s.orgRepo.FindSettings(ctx, orgID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load settings, using default timezone", slog.String("organization_id", orgID))
		}
		return domain.DefaultOrganizationSettings(orgID, "", "").Location()
	}
	return settings.Location()
}

func (s *orderService) ListOrderHistory(ctx context.Context, actor domain.Actor) ([]domain.Order, error) {
	if err := s.Authorize(ctx, actor, domain.ObjectOrderHistory, domain.ActionView); err != nil {
		return nil, err
	}
	return s.orderRepo.ListOrders(ctx, actor.OrganizationID, portsrepo.OrderFilter{RestaurantID: actor.UserID})
}

func (s *orderService) GetOrder(ctx context.Context, actor domain.Actor, orderID string) (*domain.Order, error) {
	if err := s.Authorize(ctx, actor, domain.ObjectOrder, domain.ActionView); err != nil {
		return nil, err
	}
	order, err := s.orderRepo.FindOrderByID(ctx, actor.OrganizationID, orderID)
	if err != nil {
		return nil, err
	}
	if actor.Role.Kind == domain.RoleRestaurant && !actor.Role.CanAdmin && order.RestaurantID != actor.UserID {
		return nil, fmt.Errorf("%w: order %s", apperrors.ErrNotFound, orderID)
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, actor domain.Actor, status *domain.OrderStatus) ([]domain.Order, error) {
	if err := s.Authorize(ctx, actor, domain.ObjectFulfillment, domain.ActionView); err != nil {
		return nil, err
	}
	if status != nil && !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown order status %q", apperrors.ErrValidation, *status)
	}
	return s.orderRepo.ListOrders(ctx, actor.OrganizationID, portsrepo.OrderFilter{Status: status})
}

func (s *orderService) AdvanceOrderStatus(ctx context.Context, actor domain.Actor, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	if err := s.Authorize(ctx, actor, domain.ObjectOrder, domain.ActionAdvance); err != nil {
		return nil, err
	}
	order, err := s.mutator().apply(ctx, actor.OrganizationID, orderID, func(o *domain.Order) error {
		return o.AdvanceStatus(status, actor.UserID, s.now())
	})
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Order status advanced", slog.String("order_id", orderID), slog.String("status", string(status)))
	return order, nil
}
