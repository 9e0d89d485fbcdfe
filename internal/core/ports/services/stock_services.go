package services

import (
	"context"

	"github.com/SscSPs/restaurant_supply_app/internal/core/domain"
	"github.com/SscSPs/restaurant_supply_app/internal/dto"
)

// StockSvcFacade is the only way stock levels change after product creation.
type StockSvcFacade interface {
	// RecordMovement applies one in/out movement and appends it to the ledger atomically.
	RecordMovement(ctx context.Context, actor domain.Actor, productID string, req dto.RecordMovementRequest) (*domain.Product, *domain.StockTransaction, error)

	// ListMovements returns the product's ledger, newest first.
	ListMovements(ctx context.Context, actor domain.Actor, productID string) ([]domain.StockTransaction, error)

	// InventorySummary counts active products by stock status.
	InventorySummary(ctx context.Context, actor domain.Actor) (domain.InventorySummary, error)
}
