package repositories

import (
	"context"

	"github.com/SscSPs/restaurant_supply_app/internal/core/domain"
)

// OrderFilter is an AND of equality filters; nil/empty fields are ignored.
type OrderFilter struct {
	Status       *domain.OrderStatus
	RestaurantID string
	IsUrgent     *bool
}

// OrderReader defines read operations for orders.
type OrderReader interface {
	FindOrderByID(ctx context.Context, orgID, orderID string) (*domain.Order, error)

	// ListOrders returns matching orders of an organization, newest first.
	ListOrders(ctx context.Context, orgID string, filter OrderFilter) ([]domain.Order, error)
}

// OrderWriter defines write operations for orders.
type OrderWriter interface {
	// SaveOrder inserts a new order with its line items in a single statement.
	SaveOrder(ctx context.Context, order domain.Order) error

	// UpdateOrderIfVersion rewrites items, status and audit fields only if the stored
	// version still equals expectedVersion, bumping it by one. Otherwise ErrStaleVersion.
	UpdateOrderIfVersion(ctx context.Context, order domain.Order, expectedVersion int) error
}

type OrderRepositoryFacade interface {
	OrderReader
	OrderWriter
}
