package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockTransaction is an append-only row of the stock ledger.
type StockTransaction struct {
	TransactionID  string          `db:"transaction_id"`
	ProductID      string          `db:"product_id"`
	ProductName    string          `db:"product_name"`
	OrganizationID string          `db:"organization_id"`
	Location       string          `db:"location"`
	MovementType   string          `db:"movement_type"`
	Quantity       decimal.Decimal `db:"quantity"`
	PreviousStock  decimal.Decimal `db:"previous_stock"`
	NewStock       decimal.Decimal `db:"new_stock"`
	Reason         string          `db:"reason"`
	Notes          string          `db:"notes"`
	UserID         string          `db:"user_id"`
	UserName       string          `db:"user_name"`
	CreatedAt      time.Time       `db:"created_at"`
}
