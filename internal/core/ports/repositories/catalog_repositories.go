package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/restaurant_supply_app/internal/core/domain"
)

// ProductReader defines read operations for products. Every query is scoped to one organization.
type ProductReader interface {
	FindProductByID(ctx context.Context, orgID, productID string) (*domain.Product, error)

	// FindProductsByIDs returns the found products keyed by ID; missing IDs are simply absent.
	FindProductsByIDs(ctx context.Context, orgID string, productIDs []string) (map[string]domain.Product, error)

	// ListProducts applies the active equality filter when active is non-nil.
	ListProducts(ctx context.Context, orgID string, active *bool) ([]domain.Product, error)
}

// ProductWriter defines write operations for products. Only SaveProduct sets stock_level,
// and then only together with the opening ledger entry that explains it.
type ProductWriter interface {
	// SaveProduct inserts the product and, when opening is non-nil, its opening stock
	// transaction in the same database transaction.
	SaveProduct(ctx context.Context, product domain.Product, opening *domain.StockTransaction) error
	UpdateProduct(ctx context.Context, product domain.Product) error
	SetProductActive(ctx context.Context, orgID, productID string, active bool, userID string, at time.Time) error
	DeleteProduct(ctx context.Context, orgID, productID string) error
}

type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
}

// ProviderReader defines read operations for providers.
type ProviderReader interface {
	FindProviderByID(ctx context.Context, orgID, providerID string) (*domain.Provider, error)
	ListProviders(ctx context.Context, orgID string, active *bool) ([]domain.Provider, error)
}

// ProviderWriter defines write operations for providers.
type ProviderWriter interface {
	SaveProvider(ctx context.Context, provider domain.Provider) error
	UpdateProvider(ctx context.Context, provider domain.Provider) error
	SetProviderActive(ctx context.Context, orgID, providerID string, active bool, userID string, at time.Time) error
	DeleteProvider(ctx context.Context, orgID, providerID string) error
}

type ProviderRepositoryFacade interface {
	ProviderReader
	ProviderWriter
}
