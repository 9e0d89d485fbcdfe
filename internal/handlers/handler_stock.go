package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/restaurant_supply_app/internal/core/ports/services"
	"github.com/SscSPs/restaurant_supply_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// stockHandler serves the stock ledger of a product.
type stockHandler struct {
	stockService portssvc.StockSvcFacade
}

func newStockHandler(ss portssvc.StockSvcFacade) *stockHandler {
	return &stockHandler{stockService: ss}
}

// recordMovement godoc
// @Summary Record a stock movement
// @Description Applies an in or out movement to the product and appends it to the ledger atomically.
// @Description An out movement larger than the current stock is rejected with code insufficient_stock
// @Description unless allowPartial is set, in which case stock is clamped at zero.
// @Tags stock
// @Accept  json
// @Produce  json
// @Param   id path string true "Product ID"
// @Param   movement body dto.RecordMovementRequest true "Movement"
// @Success 201 {object} dto.RecordMovementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Insufficient stock"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /products/{id}/movements [post]
func (h *stockHandler) recordMovement(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.RecordMovementRequest
	if !bindJSON(c, &req) {
		return
	}
	productID := c.Param("id")
	product, txn, err := h.stockService.RecordMovement(c.Request.Context(), actor, productID, req)
	if err != nil {
		respondError(c, err, "Failed to record stock movement")
		return
	}
	c.JSON(http.StatusCreated, dto.RecordMovementResponse{
		Product:     dto.ToProductResponse(product),
		Transaction: dto.ToStockTransactionResponse(txn),
	})
}

// listMovements godoc
// @Summary List stock movements
// @Description Returns the product's ledger, newest first.
// @Tags stock
// @Produce  json
// @Param   id path string true "Product ID"
// @Success 200 {array} dto.StockTransactionResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /products/{id}/movements [get]
func (h *stockHandler) listMovements(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	txns, err := h.stockService.ListMovements(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to list stock movements")
		return
	}
	c.JSON(http.StatusOK, dto.ToListStockTransactionResponse(txns))
}

// inventorySummary godoc
// @Summary Inventory summary
// @Description Counts active products by stock status.
// @Tags stock
// @Produce  json
// @Success 200 {object} domain.InventorySummary
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /inventory/summary [get]
func (h *stockHandler) inventorySummary(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	summary, err := h.stockService.InventorySummary(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err, "Failed to compute inventory summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}
