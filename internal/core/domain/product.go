package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Suggested catalog categories. Category is free-form; these seed the UI pickers.
var ProductCategories = []string{
	"Carnes", "Verduras", "Lácteos", "Abarrotes", "Bebidas",
	"Limpieza", "Panadería", "Congelados", "Condimentos", "Otros",
}

// Suggested units of measure.
var ProductUnits = []string{
	"kg", "gr", "litro", "ml", "pieza", "paquete", "caja", "bolsa", "lata", "botella",
}

// Product is a catalog entry of an organization.
// StockLevel is a cached projection of the stock ledger and is only written by it.
type Product struct {
	ProductID           string          `json:"productID"` // Primary Key
	OrganizationID      string          `json:"organizationID"`
	Name                string          `json:"name"`
	Unit                string          `json:"unit"`
	Category            string          `json:"category"`
	DefaultProviderID   *string         `json:"defaultProviderID,omitempty"`
	DefaultProviderName string          `json:"defaultProviderName"` // display cache of DefaultProviderID
	IsActive            bool            `json:"isActive"`
	StockLevel          decimal.Decimal `json:"stockLevel"`
	MinStockAlert       decimal.Decimal `json:"minStockAlert"`
	MaxStock            decimal.Decimal `json:"maxStock"`
	LastRestockDate     *time.Time      `json:"lastRestockDate,omitempty"`
	AuditFields
}

// Status classifies the current stock level. Never stored.
func (p Product) Status() StockStatus {
	return StockStatusOf(p.StockLevel, p.MinStockAlert)
}

// ProductFilter narrows a product listing. Zero values match everything; fields combine with AND.
type ProductFilter struct {
	Active      *bool
	Category    string // exact match; "" or "all" disables
	Search      string // case-insensitive over name or category
	StockStatus StockStatus
}

// Matches reports whether p passes every set field of the filter.
func (f ProductFilter) Matches(p Product) bool {
	if f.Active != nil && p.IsActive != *f.Active {
		return false
	}
	if f.Category != "" && !strings.EqualFold(f.Category, "all") && p.Category != f.Category {
		return false
	}
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		if !strings.Contains(strings.ToLower(p.Name), term) && !strings.Contains(strings.ToLower(p.Category), term) {
			return false
		}
	}
	if f.StockStatus != "" && p.Status() != f.StockStatus {
		return false
	}
	return true
}

// FilterProducts applies f and returns the matches sorted by name.
func FilterProducts(products []Product, f ProductFilter) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	SortProductsByName(out)
	return out
}

// SortProductsByName sorts in place, case-insensitively, with ID as tie-breaker.
func SortProductsByName(products []Product) {
	sort.SliceStable(products, func(i, j int) bool {
		a, b := strings.ToLower(products[i].Name), strings.ToLower(products[j].Name)
		if a == b {
			return products[i].ProductID < products[j].ProductID
		}
		return a < b
	})
}

// InventorySummary counts active products per stock status.
type InventorySummary struct {
	Total int `json:"total"`
	OK    int `json:"ok"`
	Low   int `json:"low"`
	Empty int `json:"empty"`
}

// SummarizeInventory counts the given products by status.
func SummarizeInventory(products []Product) InventorySummary {
	var s InventorySummary
	for _, p := range products {
		s.Total++
		switch p.Status() {
		case StockOK:
			s.OK++
		case StockLow:
			s.Low++
		case StockEmpty:
			s.Empty++
		}
	}
	return s
}
