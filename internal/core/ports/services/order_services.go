package services

import (
	"context"

	"github.com/SscSPs/restaurant_supply_app/internal/core/domain"
	"github.com/SscSPs/restaurant_supply_app/internal/dto"
)

// OrderSvcFacade covers order submission and the order lifecycle.
type OrderSvcFacade interface {
	SubmitOrder(ctx context.Context, actor domain.Actor, req dto.SubmitOrderRequest) (*domain.Order, error)

	// ListOrderHistory returns the actor's own orders, newest first.
	ListOrderHistory(ctx context.Context, actor domain.Actor) ([]domain.Order, error)

	// GetOrder returns one order. Restaurant users only see their own.
	GetOrder(ctx context.Context, actor domain.Actor, orderID string) (*domain.Order, error)

	// ListOrders returns the organization's orders, optionally filtered by status.
	ListOrders(ctx context.Context, actor domain.Actor, status *domain.OrderStatus) ([]domain.Order, error)

	// AdvanceOrderStatus moves the order status forward.
	AdvanceOrderStatus(ctx context.Context, actor domain.Actor, orderID string, status domain.OrderStatus) (*domain.Order, error)
}

// FulfillmentSvcFacade is the supplier's view of pending work.
type FulfillmentSvcFacade interface {
	MarkFound(ctx context.Context, actor domain.Actor, orderID, productID string) (*domain.Order, error)
	MarkNotFound(ctx context.Context, actor domain.Actor, orderID, productID string) (*domain.Order, error)
	Substitute(ctx context.Context, actor domain.Actor, orderID, productID, note string) (*domain.Order, error)
	ReassignProvider(ctx context.Context, actor domain.Actor, orderID, productID, providerID string) (*domain.Order, error)

	PendingGroupedByProvider(ctx context.Context, actor domain.Actor) ([]domain.ProviderBucket, error)
	UrgentOrders(ctx context.Context, actor domain.Actor) ([]domain.Order, error)
	UnassignedLineItems(ctx context.Context, actor domain.Actor) ([]domain.PendingLineItem, error)
}

// DashboardSvc builds the admin rollup.
type DashboardSvc interface {
	// Overview never fails on data errors; it returns an empty rollup instead.
	Overview(ctx context.Context, actor domain.Actor) (domain.DashboardOverview, error)
}
