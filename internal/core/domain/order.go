package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/restaurant_supply_app/internal/apperrors"
)

// OrderStatus is the order-level lifecycle. It only moves forward and never
// derives from line item states; suppliers advance it explicitly.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderCompleted  OrderStatus = "completed"
	OrderDelivered  OrderStatus = "delivered"
)

// OrderStatuses lists statuses in lifecycle order.
var OrderStatuses = []OrderStatus{OrderPending, OrderProcessing, OrderCompleted, OrderDelivered}

func (s OrderStatus) rank() int {
	for i, st := range OrderStatuses {
		if st == s {
			return i
		}
	}
	return -1
}

// IsValid reports whether s is a known order status.
func (s OrderStatus) IsValid() bool {
	return s.rank() >= 0
}

// CanAdvanceTo reports whether moving from s to next goes strictly forward.
func (s OrderStatus) CanAdvanceTo(next OrderStatus) bool {
	return next.IsValid() && next.rank() > s.rank()
}

// LineItemStatus is the fulfillment state of one line item.
type LineItemStatus string

const (
	ItemPending     LineItemStatus = "pending"
	ItemFound       LineItemStatus = "found"
	ItemNotFound    LineItemStatus = "not_found"
	ItemSubstituted LineItemStatus = "substituted"
)

// ErrInvalidTransition is returned when a line item is not in a state that allows the move.
var ErrInvalidTransition = fmt.Errorf("%w: invalid line item transition", apperrors.ErrConflict)

// CanTransition reports whether a line item may move from s to next.
// Every resolved state is terminal.
func (s LineItemStatus) CanTransition(next LineItemStatus) bool {
	if s.Effective() != ItemPending {
		return false
	}
	return next == ItemFound || next == ItemNotFound || next == ItemSubstituted
}

// Effective maps the unset status to pending.
func (s LineItemStatus) Effective() LineItemStatus {
	if s == "" {
		return ItemPending
	}
	return s
}

// OrderLineItem is embedded in an Order; it is never stored on its own.
type OrderLineItem struct {
	ProductID            string         `json:"productID"`
	ProductName          string         `json:"productName"`
	Unit                 string         `json:"unit"`
	Category             string         `json:"category"`
	SelectedProviderID   *string        `json:"selectedProviderID,omitempty"`
	SelectedProviderName string         `json:"selectedProviderName"`
	Quantity             int            `json:"quantity"`
	Status               LineItemStatus `json:"status"`
	Substitution         *string        `json:"substitution,omitempty"` // set iff Status is substituted
	UpdatedAt            *time.Time     `json:"updatedAt,omitempty"`
	UpdatedBy            *string        `json:"updatedBy,omitempty"`
}

// HasProvider reports whether the item has been assigned a provider by ID or by legacy name.
func (li OrderLineItem) HasProvider() bool {
	return (li.SelectedProviderID != nil && *li.SelectedProviderID != "") || strings.TrimSpace(li.SelectedProviderName) != ""
}

// Order is a restaurant's submitted order.
type Order struct {
	OrderID        string          `json:"orderID"` // Primary Key
	OrganizationID string          `json:"organizationID"`
	RestaurantID   string          `json:"restaurantID"` // submitting user
	RestaurantName string          `json:"restaurantName"`
	Items          []OrderLineItem `json:"items"`
	IsUrgent       bool            `json:"isUrgent"`
	Status         OrderStatus     `json:"status"`
	WeekOf         string          `json:"weekOf"`     // YYYY-MM-DD of the Sunday starting the week
	TotalItems     int             `json:"totalItems"` // frozen at submission
	AuditFields
}

// LineItem returns a pointer into Items for in-place mutation.
func (o *Order) LineItem(productID string) (*OrderLineItem, error) {
	for i := range o.Items {
		if o.Items[i].ProductID == productID {
			return &o.Items[i], nil
		}
	}
	return nil, fmt.Errorf("%w: line item %s not in order %s", apperrors.ErrNotFound, productID, o.OrderID)
}

// TransitionItem moves one line item to a resolved state and stamps the item and the order.
// A substitution requires a non-blank note.
func (o *Order) TransitionItem(productID string, next LineItemStatus, note string, by string, at time.Time) error {
	note = strings.TrimSpace(note)
	if next == ItemSubstituted && note == "" {
		return fmt.Errorf("%w: substitution note is required", apperrors.ErrValidation)
	}
	li, err := o.LineItem(productID)
	if err != nil {
		return err
	}
	if !li.Status.CanTransition(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, li.Status.Effective(), next)
	}
	li.Status = next
	if next == ItemSubstituted {
		li.Substitution = &note
	} else {
		li.Substitution = nil
	}
	o.stampItem(li, by, at)
	return nil
}

// AssignProvider overwrites the item's provider regardless of its fulfillment state.
func (o *Order) AssignProvider(productID string, providerID string, providerName string, by string, at time.Time) error {
	li, err := o.LineItem(productID)
	if err != nil {
		return err
	}
	id := providerID
	li.SelectedProviderID = &id
	li.SelectedProviderName = providerName
	o.stampItem(li, by, at)
	return nil
}

// AdvanceStatus moves the order status forward.
func (o *Order) AdvanceStatus(next OrderStatus, by string, at time.Time) error {
	if !next.IsValid() {
		return fmt.Errorf("%w: unknown order status %q", apperrors.ErrValidation, next)
	}
	if !o.Status.CanAdvanceTo(next) {
		return fmt.Errorf("%w: order cannot move from %s to %s", apperrors.ErrConflict, o.Status, next)
	}
	o.Status = next
	o.Touch(by, at)
	return nil
}

func (o *Order) stampItem(li *OrderLineItem, by string, at time.Time) {
	t, u := at, by
	li.UpdatedAt = &t
	li.UpdatedBy = &u
	o.Touch(by, at)
}

// OrderDraft accumulates line items before submission. Quantities are always positive.
type OrderDraft struct {
	items []OrderLineItem
}

// NewOrderDraft returns an empty draft.
func NewOrderDraft() *OrderDraft {
	return &OrderDraft{}
}

// AddItem adds one unit of the product, appending it with the product's default provider if new.
func (d *OrderDraft) AddItem(p Product) {
	d.AddQuantity(p, 1)
}

// AddQuantity adds qty units of the product. Non-positive quantities are ignored.
func (d *OrderDraft) AddQuantity(p Product, qty int) {
	if qty <= 0 {
		return
	}
	for i := range d.items {
		if d.items[i].ProductID == p.ProductID {
			d.items[i].Quantity += qty
			return
		}
	}
	li := OrderLineItem{
		ProductID:            p.ProductID,
		ProductName:          p.Name,
		Unit:                 p.Unit,
		Category:             p.Category,
		SelectedProviderName: p.DefaultProviderName,
		Quantity:             qty,
		Status:               ItemPending,
	}
	if p.DefaultProviderID != nil {
		id := *p.DefaultProviderID
		li.SelectedProviderID = &id
	}
	d.items = append(d.items, li)
}

// SetQuantity sets the quantity of a line item; qty <= 0 removes it.
func (d *OrderDraft) SetQuantity(productID string, qty int) {
	for i := range d.items {
		if d.items[i].ProductID != productID {
			continue
		}
		if qty <= 0 {
			d.items = append(d.items[:i], d.items[i+1:]...)
			return
		}
		d.items[i].Quantity = qty
		return
	}
}

// SetProvider overrides the provider of a drafted line item.
func (d *OrderDraft) SetProvider(productID string, providerID string, providerName string) {
	for i := range d.items {
		if d.items[i].ProductID == productID {
			id := providerID
			d.items[i].SelectedProviderID = &id
			d.items[i].SelectedProviderName = providerName
			return
		}
	}
}

// Items returns a copy of the drafted line items.
func (d *OrderDraft) Items() []OrderLineItem {
	out := make([]OrderLineItem, len(d.items))
	copy(out, d.items)
	return out
}

// Len is the number of distinct products in the draft.
func (d *OrderDraft) Len() int {
	return len(d.items)
}

// TotalItems sums quantities.
func (d *OrderDraft) TotalItems() int {
	total := 0
	for _, li := range d.items {
		total += li.Quantity
	}
	return total
}

// WeekOf returns the Sunday that starts t's week in loc, formatted YYYY-MM-DD.
func WeekOf(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -int(local.Weekday()))
	return start.Format("2006-01-02")
}
