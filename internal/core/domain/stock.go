package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/restaurant_supply_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// MovementType is the direction of a stock movement.
type MovementType string

const (
	MovementIn  MovementType = "in"
	MovementOut MovementType = "out"
)

// IsValid reports whether t is in or out.
func (t MovementType) IsValid() bool {
	return t == MovementIn || t == MovementOut
}

const (
	DefaultReasonIn      = "Compra/Recepción"
	DefaultReasonOut     = "Uso/Venta"
	DefaultReasonOpening = "Inventario inicial"
)

// DefaultReason is the reason recorded when the actor leaves it empty.
func (t MovementType) DefaultReason() string {
	if t == MovementIn {
		return DefaultReasonIn
	}
	return DefaultReasonOut
}

// StockStatus classifies a stock level against its alert threshold.
type StockStatus string

const (
	StockEmpty StockStatus = "empty"
	StockLow   StockStatus = "low"
	StockOK    StockStatus = "ok"
)

// IsValid reports whether s is a known status.
func (s StockStatus) IsValid() bool {
	return s == StockEmpty || s == StockLow || s == StockOK
}

// StockStatusOf returns empty at zero, low up to and including min, ok above.
func StockStatusOf(level, min decimal.Decimal) StockStatus {
	switch {
	case level.LessThanOrEqual(decimal.Zero):
		return StockEmpty
	case level.LessThanOrEqual(min):
		return StockLow
	default:
		return StockOK
	}
}

// StockTransaction is one immutable ledger entry.
type StockTransaction struct {
	TransactionID  string          `json:"transactionID"` // Primary Key
	ProductID      string          `json:"productID"`
	ProductName    string          `json:"productName"`
	OrganizationID string          `json:"organizationID"`
	Location       string          `json:"location"`
	Type           MovementType    `json:"type"`
	Quantity       decimal.Decimal `json:"quantity"`
	PreviousStock  decimal.Decimal `json:"previousStock"`
	NewStock       decimal.Decimal `json:"newStock"`
	Reason         string          `json:"reason"`
	Notes          string          `json:"notes"`
	UserID         string          `json:"userID"`
	UserName       string          `json:"userName"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ErrInsufficientStock is returned when an out movement exceeds the stock and the caller
// did not confirm a partial movement.
var ErrInsufficientStock = fmt.Errorf("%w: insufficient stock", apperrors.ErrConflict)

// Movement is the outcome of applying one stock movement to a level.
type Movement struct {
	PreviousStock decimal.Decimal
	NewStock      decimal.Decimal
	// Shortfall is how much of an out movement could not be taken because stock ran out.
	Shortfall decimal.Decimal
}

// Clamped reports whether an out movement exceeded the available stock.
func (m Movement) Clamped() bool {
	return m.Shortfall.GreaterThan(decimal.Zero)
}

// ApplyMovement computes the new level. Out movements clamp at zero.
func ApplyMovement(previous decimal.Decimal, t MovementType, quantity decimal.Decimal) (Movement, error) {
	if !t.IsValid() {
		return Movement{}, fmt.Errorf("%w: movement type must be in or out, got %q", apperrors.ErrValidation, t)
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return Movement{}, fmt.Errorf("%w: quantity must be greater than zero", apperrors.ErrValidation)
	}
	if previous.LessThan(decimal.Zero) {
		previous = decimal.Zero
	}
	m := Movement{PreviousStock: previous, Shortfall: decimal.Zero}
	if t == MovementIn {
		m.NewStock = previous.Add(quantity)
		return m, nil
	}
	next := previous.Sub(quantity)
	if next.LessThan(decimal.Zero) {
		m.Shortfall = next.Neg()
		next = decimal.Zero
	}
	m.NewStock = next
	return m, nil
}

// ReplayLedger folds a sequence of transactions' movements over an initial level.
func ReplayLedger(initial decimal.Decimal, txns []StockTransaction) (decimal.Decimal, error) {
	level := initial
	for _, t := range txns {
		m, err := ApplyMovement(level, t.Type, t.Quantity)
		if err != nil {
			return decimal.Zero, err
		}
		level = m.NewStock
	}
	return level, nil
}

// OpeningStockTransaction is the first ledger entry of a product created with stock on hand.
// It returns nil when the product starts empty, so an empty ledger already replays to zero.
func OpeningStockTransaction(p Product, transactionID string, actor Actor, at time.Time) *StockTransaction {
	if !p.StockLevel.IsPositive() {
		return nil
	}
	return &StockTransaction{
		TransactionID:  transactionID,
		ProductID:      p.ProductID,
		ProductName:    p.Name,
		OrganizationID: p.OrganizationID,
		Location:       actor.Location(),
		Type:           MovementIn,
		Quantity:       p.StockLevel,
		PreviousStock:  decimal.Zero,
		NewStock:       p.StockLevel,
		Reason:         DefaultReasonOpening,
		UserID:         actor.UserID,
		UserName:       actor.Name,
		CreatedAt:      at,
	}
}
