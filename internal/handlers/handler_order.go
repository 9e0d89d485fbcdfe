package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/restaurant_supply_app/internal/core/domain"
	portssvc "github.com/SscSPs/restaurant_supply_app/internal/core/ports/services"
	"github.com/SscSPs/restaurant_supply_app/internal/dto"
	"github.com/SscSPs/restaurant_supply_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// orderHandler handles order submission and the order lifecycle.
type orderHandler struct {
	orderService portssvc.OrderSvcFacade
}

func newOrderHandler(os portssvc.OrderSvcFacade) *orderHandler {
	return &orderHandler{orderService: os}
}

// registerOrderRoutes registers order routes. Line item routes live under the same
// /orders/:id prefix and are served by the fulfillment handler.
func registerOrderRoutes(rg *gin.RouterGroup, orderService portssvc.OrderSvcFacade, fulfillmentService portssvc.FulfillmentSvcFacade) {
	h := newOrderHandler(orderService)
	fh := newFulfillmentHandler(fulfillmentService)

	rg.GET("/order-history", h.listOrderHistory)

	orders := rg.Group("/orders")
	{
		orders.POST("", h.submitOrder)
		orders.GET("", h.listOrders)
		orders.GET("/:id", h.getOrder)
		orders.PATCH("/:id/status", h.advanceStatus)

		items := orders.Group("/:id/items/:productId")
		{
			items.POST("/found", fh.markFound)
			items.POST("/not-found", fh.markNotFound)
			items.POST("/substitute", fh.substitute)
			items.PUT("/provider", fh.reassignProvider)
		}
	}

	fulfillment := rg.Group("/fulfillment")
	{
		fulfillment.GET("/pending", fh.pendingByProvider)
		fulfillment.GET("/urgent", fh.urgentOrders)
		fulfillment.GET("/unassigned", fh.unassignedItems)
	}
}

// submitOrder godoc
// @Summary Submit an order
// @Description Submits the restaurant's order. Every product must be active and belong to the organization.
// @Tags orders
// @Accept  json
// @Produce  json
// @Param   order body dto.SubmitOrderRequest true "Order items"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} ErrorResponse "Empty order or invalid product"
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders [post]
func (h *orderHandler) submitOrder(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.SubmitOrderRequest
	if !bindJSON(c, &req) {
		return
	}
	order, err := h.orderService.SubmitOrder(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err, "Failed to submit order")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Order submitted",
		slog.String("order_id", order.OrderID), slog.Int("total_items", order.TotalItems), slog.Bool("urgent", order.IsUrgent))
	c.JSON(http.StatusCreated, dto.ToOrderResponse(order))
}

// listOrderHistory godoc
// @Summary Order history
// @Description Returns the caller's own orders, newest first.
// @Tags orders
// @Produce  json
// @Success 200 {object} dto.ListOrdersResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /order-history [get]
func (h *orderHandler) listOrderHistory(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	orders, err := h.orderService.ListOrderHistory(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err, "Failed to list order history")
		return
	}
	c.JSON(http.StatusOK, dto.ToListOrdersResponse(orders))
}

// listOrders godoc
// @Summary List orders
// @Description Lists the organization's orders newest first, optionally by status.
// @Tags orders
// @Produce  json
// @Param   status query string false "pending, processing, completed or delivered"
// @Success 200 {object} dto.ListOrdersResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders [get]
func (h *orderHandler) listOrders(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var params dto.ListOrdersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	var status *domain.OrderStatus
	if params.Status != "" {
		s := domain.OrderStatus(params.Status)
		status = &s
	}
	orders, err := h.orderService.ListOrders(c.Request.Context(), actor, status)
	if err != nil {
		respondError(c, err, "Failed to list orders")
		return
	}
	c.JSON(http.StatusOK, dto.ToListOrdersResponse(orders))
}

// getOrder godoc
// @Summary Get an order
// @Description Restaurant users can only read their own orders.
// @Tags orders
// @Produce  json
// @Param   id path string true "Order ID"
// @Success 200 {object} dto.OrderResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders/{id} [get]
func (h *orderHandler) getOrder(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	order, err := h.orderService.GetOrder(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve order")
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}

// advanceStatus godoc
// @Summary Advance an order's status
// @Description Moves the order forward: pending, processing, completed, delivered. Backward moves are rejected.
// @Tags orders
// @Accept  json
// @Produce  json
// @Param   id path string true "Order ID"
// @Param   body body dto.AdvanceOrderStatusRequest true "Target status"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Not a forward transition"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /orders/{id}/status [patch]
func (h *orderHandler) advanceStatus(c *gin.Context) {
	actor, ok := actorOrAbort(c)
	if !ok {
		return
	}
	var req dto.AdvanceOrderStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	order, err := h.orderService.AdvanceOrderStatus(c.Request.Context(), actor, c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err, "Failed to update order status")
		return
	}
	c.JSON(http.StatusOK, dto.ToOrderResponse(order))
}
