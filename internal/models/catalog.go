package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Product is a row of the products table. StockLevel is the ledger projection.
type Product struct {
	ProductID           string          `db:"product_id"`
	OrganizationID      string          `db:"organization_id"`
	Name                string          `db:"name"`
	Unit                string          `db:"unit"`
	Category            string          `db:"category"`
	DefaultProviderID   sql.NullString  `db:"default_provider_id"`
	DefaultProviderName string          `db:"default_provider_name"`
	IsActive            bool            `db:"is_active"`
	StockLevel          decimal.Decimal `db:"stock_level"`
	MinStockAlert       decimal.Decimal `db:"min_stock_alert"`
	MaxStock            decimal.Decimal `db:"max_stock"`
	LastRestockDate     sql.NullTime    `db:"last_restock_date"`
	AuditFields
}

type Provider struct {
	ProviderID     string `db:"provider_id"`
	OrganizationID string `db:"organization_id"`
	Name           string `db:"name"`
	ProviderType   string `db:"provider_type"`
	Description    string `db:"description"`
	IsActive       bool   `db:"is_active"`
	AuditFields
}
