package handlers

import (
	"net/http"

	"github.com/SscSPs/restaurant_supply_app/internal/core/domain"
	portssvc "github.com/SscSPs/restaurant_supply_app/internal/core/ports/services"
	"github.com/SscSPs/restaurant_supply_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// fulfillmentHandler serves the supplier's line item workflow.
type fulfillmentHandler struct {
	fulfillmentService portssvc.FulfillmentSvcFacade
}

func newFulfillmentHandler(fs portssvc.FulfillmentSvcFacade) *fulfillmentHandler {
	return &fulfillmentHandler{fulfillmentService: fs}
}

type lineItemChange func(c *gin.Context, actor domain.Actor, orderID, productID string) (*domain.Order, error)

// lineItem runs one line item mutation and replies with the updated order.
func (h *fulfillmentHandler) lineItem(c *gin.Context, fallback string, change lineItemChange) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	order, err := change(c, actor, c.Param("id"), c.Param("productId"))
	if err != nil {
		respondError(c, err, fallback)
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// markFound godoc
// @Summary Mark a line item as found
// @Tags fulfillment
// @Produce  json
// @Param   id path string true "Order ID"
// @Param   productId path string true "Product ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Line item already resolved"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders/{id}/items/{productId}/found [post]
func (h *fulfillmentHandler) markFound(c *gin.Context) {
	h.lineItem(c, "Failed to mark item as found", func(c *gin.Context, actor domain.Actor, orderID, productID string) (*domain.Order, error) {
		return h.fulfillmentService.MarkFound(c.Request.Context(), actor, orderID, productID)
	})
}

// markNotFound godoc
// @Summary Mark a line item as not found
// @Tags fulfillment
// @Produce  json
// @Param   id path string true "Order ID"
// @Param   productId path string true "Product ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Line item already resolved"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders/{id}/items/{productId}/not-found [post]
func (h *fulfillmentHandler) markNotFound(c *gin.Context) {
	h.lineItem(c, "Failed to mark item as not found", func(c *gin.Context, actor domain.Actor, orderID, productID string) (*domain.Order, error) {
		return h.fulfillmentService.MarkNotFound(c.Request.Context(), actor, orderID, productID)
	})
}

// substitute godoc
// @Summary Substitute a line item
// @Description Resolves the line item with a replacement described by a non-empty note.
// @Tags fulfillment
// @Accept  json
// @Produce  json
// @Param   id path string true "Order ID"
// @Param   productId path string true "Product ID"
// @Param   body body dto.SubstituteRequest true "Substitution note"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Line item already resolved"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders/{id}/items/{productId}/substitute [post]
func (h *fulfillmentHandler) substitute(c *gin.Context) {
	var req dto.SubstituteRequest
	if !bindJSON(c, &req) {
		return
	}
	h.lineItem(c, "Failed to substitute item", func(c *gin.Context, actor domain.Actor, orderID, productID string) (*domain.Order, error) {
		return h.fulfillmentService.Substitute(c.Request.Context(), actor, orderID, productID, req.Note)
	})
}

// reassignProvider godoc
// @Summary Reassign a line item's provider
// @Tags fulfillment
// @Accept  json
// @Produce  json
// @Param   id path string true "Order ID"
// @Param   productId path string true "Product ID"
// @Param   body body dto.ReassignProviderRequest true "Provider"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders/{id}/items/{productId}/provider [put]
func (h *fulfillmentHandler) reassignProvider(c *gin.Context) {
	var req dto.ReassignProviderRequest
	if !bindJSON(c, &req) {
		return
	}
	h.lineItem(c, "Failed to reassign provider", func(c *gin.Context, actor domain.Actor, orderID, productID string) (*domain.Order, error) {
		return h.fulfillmentService.ReassignProvider(c.Request.Context(), actor, orderID, productID, req.ProviderID)
	})
}

// pendingByProvider godoc
// @Summary Pending items by provider
// @Description Groups pending line items by provider; the unassigned bucket comes last.
// @Tags fulfillment
// @Produce  json
// @Success 200 {array} domain.ProviderBucket
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /fulfillment/pending [get]
func (h *fulfillmentHandler) pendingByProvider(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	buckets, err := h.fulfillmentService.PendingGroupedByProvider(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err, "Failed to group pending items")
		return
	}
	c.JSON(http.StatusOK, buckets)
}

// urgentOrders godoc
// @Summary Urgent pending orders
// @Tags fulfillment
// @Produce  json
// @Success 200 {object} dto.ListOrdersResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /fulfillment/urgent [get]
func (h *fulfillmentHandler) urgentOrders(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	orders, err := h.fulfillmentService.UrgentOrders(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err, "Failed to list urgent orders")
		return
	}
	c.JSON(http.StatusOK, dto.ToListOrdersResponse(orders))
}

// unassignedItems godoc
// @Summary Pending items without a provider
// @Tags fulfillment
// @Produce  json
// @Success 200 {array} domain.PendingLineItem
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /fulfillment/unassigned [get]
func (h *fulfillmentHandler) unassignedItems(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	items, err := h.fulfillmentService.UnassignedLineItems(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err, "Failed to list unassigned items")
		return
	}
	c.JSON(http.StatusOK, items)
}
