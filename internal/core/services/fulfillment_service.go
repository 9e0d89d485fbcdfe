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
	"github.com/SscSPs/restaurant_supply_app/internal/utils"
)

type fulfillmentService struct {
	BaseService
	orderRepo    portsrepo.OrderRepositoryFacade
	providerRepo portsrepo.ProviderReader
}

// NewFulfillmentService creates the supplier workflow service.
func NewFulfillmentService(orderRepo portsrepo.OrderRepositoryFacade, providerRepo portsrepo.ProviderReader, opts ...ServiceOption) portssvc.FulfillmentSvcFacade {
	return &fulfillmentService{
		BaseService:  newBaseService(opts),
		orderRepo:    orderRepo,
		providerRepo: providerRepo,
	}
}

func (s *fulfillmentService) mutator() orderMutator {
	return orderMutator{base: &s.BaseService, orderRep: s.orderRepo}
}

func (s *fulfillmentService) transition(ctx context.Context, actor domain.Actor, orderID, productID string, next domain.LineItemStatus, note string) (*domain.Order, error) {
	if err := s.Authorize(ctx, actor, domain.ObjectFulfillment, domain.ActionUpdate); err != nil {
		return nil, err
	}
	if next == domain.ItemSubstituted && strings.TrimSpace(note) == "" {
		return nil, fmt.Errorf("%w: substitution note is required", apperrors.ErrValidation)
	}

	order, err := s.mutator().apply(ctx, actor.OrganizationID, orderID, func(o *domain.Order) error {
		return o.TransitionItem(productID, next, note, actor.UserID, s.now())
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			s.GetLogger(ctx).Warn("Line item already resolved",
				slog.String("order_id", orderID), slog.String("product_id", productID), slog.String("target", string(next)))
		}
		return nil, err
	}

	s.Metrics.LineItemTransitioned(string(next))
	s.Analytics.Enqueue(actor.UserID, utils.EventLineItemResolved, map[string]any{
		"organization_id": actor.OrganizationID,
		"status":          string(next),
	})
	s.LogInfo(ctx, "Line item resolved",
		slog.String("order_id", orderID), slog.String("product_id", productID), slog.String("status", string(next)))
	return order, nil
}

func (s *fulfillmentService) MarkFound(ctx context.Context, actor domain.Actor, orderID, productID string) (*domain.Order, error) {
	return s.transition(ctx, actor, orderID, productID, domain.ItemFound, "")
}

func (s *fulfillmentService) MarkNotFound(ctx context.Context, actor domain.Actor, orderID, productID string) (*domain.Order, error) {
	return s.transition(ctx, actor, orderID, productID, domain.ItemNotFound, "")
}

func (s *fulfillmentService) Substitute(ctx context.Context, actor domain.Actor, orderID, productID, note string) (*domain.Order, error) {
	return s.transition(ctx, actor, orderID, productID, domain.ItemSubstituted, note)
}

// ReassignProvider points a line item at another active provider of the organization.
// It is allowed in every fulfillment state.
func (s *fulfillmentService) ReassignProvider(ctx context.Context, actor domain.Actor, orderID, productID, providerID string) (*domain.Order, error) {
	if err := s.Authorize(ctx, actor, domain.ObjectFulfillment, domain.ActionUpdate); err != nil {
		return nil, err
	}
	provider, err := s.providerRepo.FindProviderByID(ctx, actor.OrganizationID, providerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: provider %s does not exist", apperrors.ErrValidation, providerID)
		}
		return nil, err
	}
	if !provider.IsActive {
		return nil, fmt.Errorf("%w: provider %s is not active", apperrors.ErrValidation, provider.Name)
	}

	order, err := s.mutator().apply(ctx, actor.OrganizationID, orderID, func(o *domain.Order) error {
		return o.AssignProvider(productID, provider.ProviderID, provider.Name, actor.UserID, s.now())
	})
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Line item provider reassigned",
		slog.String("order_id", orderID), slog.String("product_id", productID), slog.String("provider_id", providerID))
	return order, nil
}

func (s *fulfillmentService) pendingOrders(ctx context.Context, actor domain.Actor) ([]domain.Order, error) {
	if err := s.Authorize(ctx, actor, domain.ObjectFulfillment, domain.ActionView); err != nil {
		return nil, err
	}
	pending := domain.OrderPending
	orders, err := s.orderRepo.ListOrders(ctx, actor.OrganizationID, portsrepo.OrderFilter{Status: &pending})
	if err != nil {
		s.LogError(ctx, err, "Failed to list pending orders", slog.String("organization_id", actor.OrganizationID))
		return nil, err
	}
	return orders, nil
}

func (s *fulfillmentService) PendingGroupedByProvider(ctx context.Context, actor domain.Actor) ([]domain.ProviderBucket, error) {
	orders, err := s.pendingOrders(ctx, actor)
	if err != nil {
		return nil, err
	}
	return domain.GroupPendingByProvider(orders), nil
}

func (s *fulfillmentService) UrgentOrders(ctx context.Context, actor domain.Actor) ([]domain.Order, error) {
	orders, err := s.pendingOrders(ctx, actor)
	if err != nil {
		return nil, err
	}
	return domain.UrgentPendingOrders(orders), nil
}

func (s *fulfillmentService) UnassignedLineItems(ctx context.Context, actor domain.Actor) ([]domain.PendingLineItem, error) {
	orders, err := s.pendingOrders(ctx, actor)
	if err != nil {
		return nil, err
	}
	return domain.UnassignedLineItems(orders), nil
}
