package domain_test

import (
	"testing"

	"github.com/SscSPs/restaurant_supply_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool { return &b }

func catalogFixture() []domain.Product {
	return []domain.Product{
		{ProductID: "p1", Name: "Pollo entero", Category: "Carnes", IsActive: true, StockLevel: dec(10), MinStockAlert: dec(5)},
		{ProductID: "p2", Name: "aguacate", Category: "Verduras", IsActive: true, StockLevel: dec(2), MinStockAlert: dec(5)},
		{ProductID: "p3", Name: "Leche", Category: "Lácteos", IsActive: false, StockLevel: dec(0), MinStockAlert: dec(1)},
		{ProductID: "p4", Name: "Bistec", Category: "Carnes", IsActive: true, StockLevel: dec(0), MinStockAlert: dec(3)},
	}
}

func names(ps []domain.Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

func TestFilterProducts(t *testing.T) {
	tests := []struct {
		name   string
		filter domain.ProductFilter
		want   []string
	}{
		{"no filter sorts by name", domain.ProductFilter{}, []string{"aguacate", "Bistec", "Leche", "Pollo entero"}},
		{"active only", domain.ProductFilter{Active: boolPtr(true)}, []string{"aguacate", "Bistec", "Pollo entero"}},
		{"inactive only", domain.ProductFilter{Active: boolPtr(false)}, []string{"Leche"}},
		{"category exact", domain.ProductFilter{Category: "Carnes"}, []string{"Bistec", "Pollo entero"}},
		{"category all", domain.ProductFilter{Category: "all"}, []string{"aguacate", "Bistec", "Leche", "Pollo entero"}},
		{"search matches name case-insensitively", domain.ProductFilter{Search: "POLLO"}, []string{"Pollo entero"}},
		{"search matches category", domain.ProductFilter{Search: "verdu"}, []string{"aguacate"}},
		{"stock status empty", domain.ProductFilter{StockStatus: domain.StockEmpty}, []string{"Bistec", "Leche"}},
		{"filters compose with AND", domain.ProductFilter{Active: boolPtr(true), Category: "Carnes", StockStatus: domain.StockEmpty}, []string{"Bistec"}},
		{"no match", domain.ProductFilter{Search: "pescado"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(domain.FilterProducts(catalogFixture(), tt.filter)))
		})
	}
}

func TestSummarizeInventory(t *testing.T) {
	s := domain.SummarizeInventory(catalogFixture())
	assert.Equal(t, domain.InventorySummary{Total: 4, OK: 1, Low: 1, Empty: 2}, s)
}
