package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/restaurant_supply_app/internal/core/domain"
	portsrepo "github.com/SscSPs/restaurant_supply_app/internal/core/ports/repositories"
)

// maxOrderWriteAttempts bounds the reload-and-reapply loop on version conflicts.
const maxOrderWriteAttempts = 3

// orderMutator applies single-order changes with optimistic concurrency.
type orderMutator struct {
	base     *BaseService
	orderRep portsrepo.OrderRepositoryFacade
}

// apply loads the order, runs change and writes it back only if nobody else wrote in between.
// On a stale version the order is reloaded and change re-run, so state-machine checks see
// the latest line item states.
func (m orderMutator) apply(ctx context.Context, orgID, orderID string, change func(*domain.Order) error) (*domain.Order, error) {
	var lastErr error
	for attempt := 1; attempt <= maxOrderWriteAttempts; attempt++ {
		order, err := m.orderRep.FindOrderByID(ctx, orgID, orderID)
		if err != nil {
			return nil, err
		}
		expected := order.Version
		if err := change(order); err != nil {
			return nil, err
		}
		order.Version = expected + 1

		err = m.orderRep.UpdateOrderIfVersion(ctx, *order, expected)
		if err == nil {
			return order, nil
		}
		if !errors.Is(err, portsrepo.ErrStaleVersion) {
			m.base.LogError(ctx, err, "Failed to write order", slog.String("order_id", orderID))
			return nil, err
		}
		m.base.Metrics.OrderVersionConflict()
		m.base.LogDebug(ctx, "Order changed concurrently, retrying",
			slog.String("order_id", orderID), slog.Int("attempt", attempt))
		lastErr = err
	}
	return nil, fmt.Errorf("order %s kept changing after %d attempts: %w", orderID, maxOrderWriteAttempts, lastErr)
}
