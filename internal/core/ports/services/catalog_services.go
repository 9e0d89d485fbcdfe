package services

import (
	"context"

	"github.com/SscSPs/restaurant_supply_app/internal/core/domain"
	"github.com/SscSPs/restaurant_supply_app/internal/dto"
)

// ProductSvc defines catalog operations on products.
type ProductSvc interface {
	CreateProduct(ctx context.Context, actor domain.Actor, req dto.CreateProductRequest) (*domain.Product, error)
	UpdateProduct(ctx context.Context, actor domain.Actor, productID string, req dto.UpdateProductRequest) (*domain.Product, error)
	SetProductActive(ctx context.Context, actor domain.Actor, productID string, active bool) (*domain.Product, error)
	DeleteProduct(ctx context.Context, actor domain.Actor, productID string) error
	GetProduct(ctx context.Context, actor domain.Actor, productID string) (*domain.Product, error)

	// ListProducts returns the filtered products sorted by name.
	ListProducts(ctx context.Context, actor domain.Actor, filter domain.ProductFilter) ([]domain.Product, error)
}

// ProviderSvc defines catalog operations on providers.
type ProviderSvc interface {
	CreateProvider(ctx context.Context, actor domain.Actor, req dto.CreateProviderRequest) (*domain.Provider, error)
	UpdateProvider(ctx context.Context, actor domain.Actor, providerID string, req dto.UpdateProviderRequest) (*domain.Provider, error)
	SetProviderActive(ctx context.Context, actor domain.Actor, providerID string, active bool) (*domain.Provider, error)
	DeleteProvider(ctx context.Context, actor domain.Actor, providerID string) error
	GetProvider(ctx context.Context, actor domain.Actor, providerID string) (*domain.Provider, error)
	ListProviders(ctx context.Context, actor domain.Actor, active *bool) ([]domain.Provider, error)
}

// CatalogSvcFacade combines product and provider management.
type CatalogSvcFacade interface {
	ProductSvc
	ProviderSvc
}
