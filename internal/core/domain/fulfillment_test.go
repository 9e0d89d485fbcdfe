package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/restaurant_supply_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func walmartItem(productID string, qty int) domain.OrderLineItem {
	return domain.OrderLineItem{ProductID: productID, ProductName: productID, Quantity: qty, SelectedProviderID: strPtr("prov-walmart"), SelectedProviderName: "Walmart"}
}

func groupingFixture() []domain.Order {
	base := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	o1 := domain.Order{
		OrderID: "o1", RestaurantName: "Centro", Status: domain.OrderPending,
		Items: []domain.OrderLineItem{walmartItem("pollo", 3), walmartItem("arroz", 1)},
	}
	o1.CreatedAt = base
	o2 := domain.Order{
		OrderID: "o2", RestaurantName: "Norte", Status: domain.OrderPending, IsUrgent: true,
		Items: []domain.OrderLineItem{
			walmartItem("frijol", 2),
			{ProductID: "cilantro", ProductName: "Cilantro", Quantity: 1},
		},
	}
	o2.CreatedAt = base.Add(time.Hour)
	return []domain.Order{o1, o2}
}

func TestGroupPendingByProvider(t *testing.T) {
	buckets := domain.GroupPendingByProvider(groupingFixture())
	require.Len(t, buckets, 2)

	walmart := buckets[0]
	assert.Equal(t, "Walmart", walmart.ProviderName)
	assert.Equal(t, "prov-walmart", walmart.Key)
	assert.Len(t, walmart.Items, 3)
	// urgent order first
	assert.Equal(t, "o2", walmart.Items[0].OrderID)
	assert.True(t, walmart.Items[0].IsUrgent)
	assert.Equal(t, "Norte", walmart.Items[0].RestaurantName)

	unassigned := buckets[1]
	assert.Equal(t, domain.UnassignedProviderKey, unassigned.Key)
	require.Len(t, unassigned.Items, 1)
	assert.Equal(t, "cilantro", unassigned.Items[0].Item.ProductID)

	flat := domain.UnassignedLineItems(groupingFixture())
	require.Len(t, flat, 1)
	assert.Equal(t, "o2", flat[0].OrderID)
}

func TestGroupPendingByProvider_SkipsResolvedAndNonPending(t *testing.T) {
	orders := groupingFixture()
	orders[0].Items[0].Status = domain.ItemFound
	orders[1].Status = domain.OrderProcessing

	buckets := domain.GroupPendingByProvider(orders)
	require.Len(t, buckets, 1)
	assert.Len(t, buckets[0].Items, 1)
	assert.Equal(t, "arroz", buckets[0].Items[0].Item.ProductID)
	assert.Empty(t, domain.UnassignedLineItems(orders))
}

func TestGroupPendingByProvider_SameNameDifferentIDsStaySeparate(t *testing.T) {
	o := domain.Order{OrderID: "o", Status: domain.OrderPending, Items: []domain.OrderLineItem{
		{ProductID: "a", Quantity: 1, SelectedProviderID: strPtr("id-1"), SelectedProviderName: "Mercado"},
		{ProductID: "b", Quantity: 1, SelectedProviderID: strPtr("id-2"), SelectedProviderName: "Mercado"},
		{ProductID: "c", Quantity: 1, SelectedProviderName: "Abastos"},
	}}
	buckets := domain.GroupPendingByProvider([]domain.Order{o})
	require.Len(t, buckets, 3)
	assert.Equal(t, "Abastos", buckets[0].ProviderName)
	assert.Equal(t, "Mercado", buckets[1].ProviderName)
	assert.Equal(t, "Mercado", buckets[2].ProviderName)
	assert.NotEqual(t, buckets[1].Key, buckets[2].Key)
}

func TestUrgentPendingOrders(t *testing.T) {
	orders := groupingFixture()
	o3 := domain.Order{OrderID: "o3", Status: domain.OrderDelivered, IsUrgent: true}
	orders = append(orders, o3)
	orders[1].Items[0].Status = domain.ItemFound
	orders[1].Items[1].Status = domain.ItemNotFound

	urgent := domain.UrgentPendingOrders(orders)
	require.Len(t, urgent, 1)
	assert.Equal(t, "o2", urgent[0].OrderID)
}
