package models

import "time"

// Order is a row of the orders table. Line items live in the items JSONB column
// so the whole aggregate is written with one conditional UPDATE.
type Order struct {
	OrderID        string          `db:"order_id"`
	OrganizationID string          `db:"organization_id"`
	RestaurantID   string          `db:"restaurant_id"`
	RestaurantName string          `db:"restaurant_name"`
	Items          []OrderLineItem `db:"items"`
	IsUrgent       bool            `db:"is_urgent"`
	Status         string          `db:"status"`
	WeekOf         time.Time       `db:"week_of"`
	TotalItems     int             `db:"total_items"`
	AuditFields
}

// OrderLineItem is the JSON shape of one element of orders.items.
type OrderLineItem struct {
	ProductID            string     `json:"product_id"`
	ProductName          string     `json:"product_name"`
	Unit                 string     `json:"unit"`
	Category             string     `json:"category"`
	SelectedProviderID   *string    `json:"selected_provider_id,omitempty"`
	SelectedProviderName string     `json:"selected_provider_name"`
	Quantity             int        `json:"quantity"`
	Status               string     `json:"status,omitempty"`
	Substitution         *string    `json:"substitution,omitempty"`
	UpdatedAt            *time.Time `json:"updated_at,omitempty"`
	UpdatedBy            *string    `json:"updated_by,omitempty"`
}
