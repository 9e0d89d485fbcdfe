package dto

import (
	"time"

	"github.com/SscSPs/restaurant_supply_app/internal/core/domain"
)

// OrderItemRequest is one product/quantity of a submitted order.
// ProviderID overrides the product's default provider.
type OrderItemRequest struct {
	ProductID  string  `json:"productID" binding:"required"`
	Quantity   int     `json:"quantity" binding:"required,gt=0"`
	ProviderID *string `json:"providerID"`
}

// SubmitOrderRequest is validated again by the service: an empty Items list is rejected there.
type SubmitOrderRequest struct {
	Items    []OrderItemRequest `json:"items" binding:"dive"`
	IsUrgent bool               `json:"isUrgent"`
}

// AdvanceOrderStatusRequest moves an order forward in its lifecycle.
type AdvanceOrderStatusRequest struct {
	Status domain.OrderStatus `json:"status" binding:"required,orderstatus"`
}

// ListOrdersParams filters the supplier order listing.
type ListOrdersParams struct {
	Status string `form:"status" binding:"omitempty,orderstatus"`
}

// SubstituteRequest resolves a line item with a replacement.
type SubstituteRequest struct {
	Note string `json:"note" binding:"required"`
}

// ReassignProviderRequest points a line item at another provider.
type ReassignProviderRequest struct {
	ProviderID string `json:"providerID" binding:"required"`
}

type OrderResponse struct {
	OrderID        string                 `json:"orderID"`
	RestaurantID   string                 `json:"restaurantID"`
	RestaurantName string                 `json:"restaurantName"`
	Items          []domain.OrderLineItem `json:"items"`
	IsUrgent       bool                   `json:"isUrgent"`
	Status         domain.OrderStatus     `json:"status"`
	WeekOf         string                 `json:"weekOf"`
	TotalItems     int                    `json:"totalItems"`
	Version        int                    `json:"version"`
	CreatedAt      time.Time              `json:"createdAt"`
	LastUpdatedAt  time.Time              `json:"lastUpdatedAt"`
	LastUpdatedBy  string                 `json:"lastUpdatedBy"`
}

// ToOrderResponse converts a domain.Order to OrderResponse DTO
func ToOrderResponse(o *domain.Order) OrderResponse {
	items := o.Items
	if items == nil {
		items = []domain.OrderLineItem{}
	}
	return OrderResponse{
		OrderID:        o.OrderID,
		RestaurantID:   o.RestaurantID,
		RestaurantName: o.RestaurantName,
		Items:          items,
		IsUrgent:       o.IsUrgent,
		Status:         o.Status,
		WeekOf:         o.WeekOf,
		TotalItems:     o.TotalItems,
		Version:        o.Version,
		CreatedAt:      o.CreatedAt,
		LastUpdatedAt:  o.LastUpdatedAt,
		LastUpdatedBy:  o.LastUpdatedBy,
	}
}

// ListOrdersResponse wraps the list of orders.
type ListOrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
}

func ToListOrdersResponse(orders []domain.Order) ListOrdersResponse {
	res := make([]OrderResponse, len(orders))
	for i := range orders {
		res[i] = ToOrderResponse(&orders[i])
	}
	return ListOrdersResponse{Orders: res}
}
