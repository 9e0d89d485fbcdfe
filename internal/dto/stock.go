package dto

import (
	"time"

	"github.com/SscSPs/restaurant_supply_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordMovementRequest is one manual stock adjustment.
// AllowPartial confirms an out movement larger than the current stock.
type RecordMovementRequest struct {
	Type         domain.MovementType `json:"type" binding:"required,stockmovement"`
	Quantity     decimal.Decimal     `json:"quantity"`
	Reason       string              `json:"reason"`
	Notes        string              `json:"notes"`
	AllowPartial bool                `json:"allowPartial"`
}

type StockTransactionResponse struct {
	TransactionID string              `json:"transactionID"`
	ProductID     string              `json:"productID"`
	ProductName   string              `json:"productName"`
	Location      string              `json:"location"`
	Type          domain.MovementType `json:"type"`
	Quantity      decimal.Decimal     `json:"quantity"`
	PreviousStock decimal.Decimal     `json:"previousStock"`
	NewStock      decimal.Decimal     `json:"newStock"`
	Reason        string              `json:"reason"`
	Notes         string              `json:"notes"`
	UserID        string              `json:"userID"`
	UserName      string              `json:"userName"`
	CreatedAt     time.Time           `json:"createdAt"`
}

func ToStockTransactionResponse(t *domain.StockTransaction) StockTransactionResponse {
	return StockTransactionResponse{
		TransactionID: t.TransactionID,
		ProductID:     t.ProductID,
		ProductName:   t.ProductName,
		Location:      t.Location,
		Type:          t.Type,
		Quantity:      t.Quantity,
		PreviousStock: t.PreviousStock,
		NewStock:      t.NewStock,
		Reason:        t.Reason,
		Notes:         t.Notes,
		UserID:        t.UserID,
		UserName:      t.UserName,
		CreatedAt:     t.CreatedAt,
	}
}

func ToListStockTransactionResponse(txns []domain.StockTransaction) []StockTransactionResponse {
	res := make([]StockTransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToStockTransactionResponse(&txns[i])
	}
	return res
}

// RecordMovementResponse returns both halves of the movement.
type RecordMovementResponse struct {
	Product     ProductResponse          `json:"product"`
	Transaction StockTransactionResponse `json:"transaction"`
}
