package domain

import (
	"sort"
	"strings"
	"time"
)

// UnassignedProviderKey is the bucket key for line items with no provider.
const UnassignedProviderKey = "unassigned"

// UnassignedProviderName is the display name of the unassigned bucket.
const UnassignedProviderName = "Sin Proveedor"

// PendingLineItem is a pending line item with the order context a dispatcher needs.
type PendingLineItem struct {
	OrderID        string        `json:"orderID"`
	RestaurantID   string        `json:"restaurantID"`
	RestaurantName string        `json:"restaurantName"`
	IsUrgent       bool          `json:"isUrgent"`
	OrderDate      time.Time     `json:"orderDate"`
	Item           OrderLineItem `json:"item"`
}

// ProviderBucket groups pending line items by provider.
type ProviderBucket struct {
	Key          string            `json:"key"`
	ProviderID   *string           `json:"providerID,omitempty"`
	ProviderName string            `json:"providerName"`
	Items        []PendingLineItem `json:"items"`
}

// providerKey keys by provider ID; items written before IDs existed fall back to their name.
func providerKey(li OrderLineItem) string {
	if li.SelectedProviderID != nil && *li.SelectedProviderID != "" {
		return *li.SelectedProviderID
	}
	if name := strings.TrimSpace(li.SelectedProviderName); name != "" {
		return "name:" + strings.ToLower(name)
	}
	return UnassignedProviderKey
}

// GroupPendingByProvider buckets every pending line item of every pending order.
// Buckets are sorted by provider name with the unassigned bucket last; inside a
// bucket urgent items come first, then oldest orders.
func GroupPendingByProvider(orders []Order) []ProviderBucket {
	byKey := make(map[string]*ProviderBucket)
	for _, o := range orders {
		if o.Status != OrderPending {
			continue
		}
		for _, li := range o.Items {
			if li.Status.Effective() != ItemPending {
				continue
			}
			key := providerKey(li)
			b, ok := byKey[key]
			if !ok {
				b = &ProviderBucket{Key: key}
				if key == UnassignedProviderKey {
					b.ProviderName = UnassignedProviderName
				} else {
					b.ProviderID = li.SelectedProviderID
					b.ProviderName = li.SelectedProviderName
				}
				byKey[key] = b
			}
			b.Items = append(b.Items, PendingLineItem{
				OrderID:        o.OrderID,
				RestaurantID:   o.RestaurantID,
				RestaurantName: o.RestaurantName,
				IsUrgent:       o.IsUrgent,
				OrderDate:      o.CreatedAt,
				Item:           li,
			})
		}
	}

	buckets := make([]ProviderBucket, 0, len(byKey))
	for _, b := range byKey {
		sort.SliceStable(b.Items, func(i, j int) bool {
			if b.Items[i].IsUrgent != b.Items[j].IsUrgent {
				return b.Items[i].IsUrgent
			}
			return b.Items[i].OrderDate.Before(b.Items[j].OrderDate)
		})
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		ui, uj := buckets[i].Key == UnassignedProviderKey, buckets[j].Key == UnassignedProviderKey
		if ui != uj {
			return uj
		}
		ni, nj := strings.ToLower(buckets[i].ProviderName), strings.ToLower(buckets[j].ProviderName)
		if ni != nj {
			return ni < nj
		}
		return buckets[i].Key < buckets[j].Key
	})
	return buckets
}

// UnassignedLineItems flattens the unassigned bucket.
func UnassignedLineItems(orders []Order) []PendingLineItem {
	for _, b := range GroupPendingByProvider(orders) {
		if b.Key == UnassignedProviderKey {
			return b.Items
		}
	}
	return []PendingLineItem{}
}

// UrgentPendingOrders returns pending urgent orders regardless of their line item states, newest first.
func UrgentPendingOrders(orders []Order) []Order {
	out := make([]Order, 0)
	for _, o := range orders {
		if o.Status == OrderPending && o.IsUrgent {
			out = append(out, o)
		}
	}
	SortOrdersNewestFirst(out)
	return out
}

// SortOrdersNewestFirst sorts in place by creation time descending.
func SortOrdersNewestFirst(orders []Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}
