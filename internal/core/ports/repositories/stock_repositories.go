package repositories

import (
	"context"

	"github.com/SscSPs/restaurant_supply_app/internal/core/domain"
)

// StockMutation computes a ledger entry from the locked product and updates the
// product's stock fields in place. Returning an error aborts the whole movement.
type StockMutation func(product *domain.Product) (domain.StockTransaction, error)

// StockReader defines read operations for the stock ledger.
type StockReader interface {
	// ListTransactionsByProduct returns the product's ledger, newest first.
	ListTransactionsByProduct(ctx context.Context, orgID, productID string) ([]domain.StockTransaction, error)
}

// StockWriter defines the single write path of the ledger.
type StockWriter interface {
	// RecordMovement locks the product row, runs mutate, inserts the returned
	// transaction and persists the product's new stock in one database transaction.
	RecordMovement(ctx context.Context, orgID, productID string, mutate StockMutation) (*domain.Product, *domain.StockTransaction, error)
}

type StockRepositoryFacade interface {
	StockReader
	StockWriter
}
