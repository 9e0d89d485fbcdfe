package dto

import (
	"time"

	"github.com/SscSPs/restaurant_supply_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateProductRequest defines the data needed to create a new product.
// InitialStock, when positive, is recorded as the product's opening ledger entry;
// afterwards stock only moves through movements.
type CreateProductRequest struct {
	Name              string           `json:"name" binding:"required"`
	Unit              string           `json:"unit" binding:"required"`
	Category          string           `json:"category" binding:"required"`
	DefaultProviderID *string          `json:"defaultProviderID"`
	InitialStock      *decimal.Decimal `json:"initialStock"`
	MinStockAlert     *decimal.Decimal `json:"minStockAlert"`
	MaxStock          *decimal.Decimal `json:"maxStock"`
}

// UpdateProductRequest defines the data allowed for updating a product.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateProductRequest struct {
	Name              *string          `json:"name"`
	Unit              *string          `json:"unit"`
	Category          *string          `json:"category"`
	DefaultProviderID *string          `json:"defaultProviderID"` // "" clears it
	MinStockAlert     *decimal.Decimal `json:"minStockAlert"`
	MaxStock          *decimal.Decimal `json:"maxStock"`
}

// ListProductsParams defines query parameters for listing products.
type ListProductsParams struct {
	Active      *bool  `form:"active"`
	Category    string `form:"category"`
	Search      string `form:"search"`
	StockStatus string `form:"stockStatus" binding:"omitempty,oneof=empty low ok"`
}

// ToFilter converts the query parameters into a domain filter.
func (p ListProductsParams) ToFilter() domain.ProductFilter {
	return domain.ProductFilter{
		Active:      p.Active,
		Category:    p.Category,
		Search:      p.Search,
		StockStatus: domain.StockStatus(p.StockStatus),
	}
}

// ProductResponse mirrors domain.Product plus the derived stock status.
type ProductResponse struct {
	ProductID           string             `json:"productID"`
	Name                string             `json:"name"`
	Unit                string             `json:"unit"`
	Category            string             `json:"category"`
	DefaultProviderID   *string            `json:"defaultProviderID,omitempty"`
	DefaultProviderName string             `json:"defaultProviderName"`
	IsActive            bool               `json:"isActive"`
	StockLevel          decimal.Decimal    `json:"stockLevel"`
	MinStockAlert       decimal.Decimal    `json:"minStockAlert"`
	MaxStock            decimal.Decimal    `json:"maxStock"`
	StockStatus         domain.StockStatus `json:"stockStatus"`
	LastRestockDate     *time.Time         `json:"lastRestockDate,omitempty"`
	CreatedAt           time.Time          `json:"createdAt"`
	CreatedBy           string             `json:"createdBy"`
	LastUpdatedAt       time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy       string             `json:"lastUpdatedBy"`
}

// ToProductResponse converts a domain.Product to ProductResponse DTO
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID:           p.ProductID,
		Name:                p.Name,
		Unit:                p.Unit,
		Category:            p.Category,
		DefaultProviderID:   p.DefaultProviderID,
		DefaultProviderName: p.DefaultProviderName,
		IsActive:            p.IsActive,
		StockLevel:          p.StockLevel,
		MinStockAlert:       p.MinStockAlert,
		MaxStock:            p.MaxStock,
		StockStatus:         p.Status(),
		LastRestockDate:     p.LastRestockDate,
		CreatedAt:           p.CreatedAt,
		CreatedBy:           p.CreatedBy,
		LastUpdatedAt:       p.LastUpdatedAt,
		LastUpdatedBy:       p.LastUpdatedBy,
	}
}

func ToListProductResponse(products []domain.Product) []ProductResponse {
	res := make([]ProductResponse, len(products))
	for i := range products {
		res[i] = ToProductResponse(&products[i])
	}
	return res
}

// CreateProviderRequest defines the data needed to create a provider.
type CreateProviderRequest struct {
	Name        string `json:"name" binding:"required"`
	Type        string `json:"type" binding:"required,providertype"`
	Description string `json:"description"`
}

// UpdateProviderRequest defines the data allowed for updating a provider.
type UpdateProviderRequest struct {
	Name        *string `json:"name"`
	Type        *string `json:"type" binding:"omitempty,providertype"`
	Description *string `json:"description"`
}

type ProviderResponse struct {
	ProviderID    string              `json:"providerID"`
	Name          string              `json:"name"`
	Type          domain.ProviderType `json:"type"`
	Description   string              `json:"description"`
	IsActive      bool                `json:"isActive"`
	CreatedAt     time.Time           `json:"createdAt"`
	CreatedBy     string              `json:"createdBy"`
	LastUpdatedAt time.Time           `json:"lastUpdatedAt"`
	LastUpdatedBy string              `json:"lastUpdatedBy"`
}

func ToProviderResponse(p *domain.Provider) ProviderResponse {
	return ProviderResponse{
		ProviderID:    p.ProviderID,
		Name:          p.Name,
		Type:          p.Type,
		Description:   p.Description,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		CreatedBy:     p.CreatedBy,
		LastUpdatedAt: p.LastUpdatedAt,
		LastUpdatedBy: p.LastUpdatedBy,
	}
}

func ToListProviderResponse(providers []domain.Provider) []ProviderResponse {
	res := make([]ProviderResponse, len(providers))
	for i := range providers {
		res[i] = ToProviderResponse(&providers[i])
	}
	return res
}
