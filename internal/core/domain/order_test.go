package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/restaurant_supply_app/internal/apperrors"
	"github.com/SscSPs/restaurant_supply_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestOrderDraft(t *testing.T) {
	pollo := domain.Product{ProductID: "pollo", Name: "Pollo entero", Unit: "kg", Category: "Carnes", DefaultProviderID: strPtr("prov-walmart"), DefaultProviderName: "Walmart"}
	leche := domain.Product{ProductID: "leche", Name: "Leche", Unit: "litro", Category: "Lácteos"}

	d := domain.NewOrderDraft()
	d.AddItem(pollo)
	d.AddItem(pollo)
	d.AddItem(leche)

	items := d.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "Walmart", items[0].SelectedProviderName)
	assert.Equal(t, "prov-walmart", *items[0].SelectedProviderID)
	assert.Equal(t, domain.ItemPending, items[0].Status)
	assert.Nil(t, items[1].SelectedProviderID)
	assert.Equal(t, 3, d.TotalItems())

	d.SetQuantity("leche", 4)
	assert.Equal(t, 6, d.TotalItems())

	d.SetProvider("leche", "prov-lala", "Lala")
	assert.Equal(t, "Lala", d.Items()[1].SelectedProviderName)

	d.SetQuantity("pollo", 0)
	require.Equal(t, 1, d.Len())
	assert.Equal(t, "leche", d.Items()[0].ProductID)

	d.SetQuantity("leche", -1)
	assert.Equal(t, 0, d.Len())
	assert.Equal(t, 0, d.TotalItems())
}

func TestOrderDraft_ItemsIsACopy(t *testing.T) {
	d := domain.NewOrderDraft()
	d.AddItem(domain.Product{ProductID: "x"})
	items := d.Items()
	items[0].Quantity = 99
	assert.Equal(t, 1, d.TotalItems())
}

func newPendingOrder() domain.Order {
	return domain.Order{
		OrderID: "o1",
		Status:  domain.OrderPending,
		Items: []domain.OrderLineItem{
			{ProductID: "pollo", ProductName: "Pollo entero", Quantity: 3, Status: domain.ItemPending},
			{ProductID: "leche", ProductName: "Leche", Quantity: 1},
		},
	}
}

func TestOrder_TransitionItem(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("found from pending stamps item and order", func(t *testing.T) {
		o := newPendingOrder()
		require.NoError(t, o.TransitionItem("pollo", domain.ItemFound, "", "disp", at))
		li, _ := o.LineItem("pollo")
		assert.Equal(t, domain.ItemFound, li.Status)
		assert.Equal(t, "disp", *li.UpdatedBy)
		assert.Equal(t, at, *li.UpdatedAt)
		assert.Equal(t, "disp", o.LastUpdatedBy)
		assert.Equal(t, domain.OrderPending, o.Status)
	})

	t.Run("unset status counts as pending", func(t *testing.T) {
		o := newPendingOrder()
		require.NoError(t, o.TransitionItem("leche", domain.ItemNotFound, "", "disp", at))
	})

	t.Run("substitute requires a note", func(t *testing.T) {
		o := newPendingOrder()
		err := o.TransitionItem("pollo", domain.ItemSubstituted, "   ", "disp", at)
		assert.True(t, errors.Is(err, apperrors.ErrValidation))
		li, _ := o.LineItem("pollo")
		assert.Equal(t, domain.ItemPending, li.Status)
		assert.Nil(t, li.UpdatedAt)
	})

	t.Run("substitute stores trimmed note", func(t *testing.T) {
		o := newPendingOrder()
		require.NoError(t, o.TransitionItem("pollo", domain.ItemSubstituted, "  muslos  ", "disp", at))
		li, _ := o.LineItem("pollo")
		assert.Equal(t, "muslos", *li.Substitution)
	})

	t.Run("terminal states reject further transitions", func(t *testing.T) {
		o := newPendingOrder()
		require.NoError(t, o.TransitionItem("pollo", domain.ItemFound, "", "disp", at))
		err := o.TransitionItem("pollo", domain.ItemNotFound, "", "disp2", at)
		assert.True(t, errors.Is(err, domain.ErrInvalidTransition))
		assert.True(t, errors.Is(err, apperrors.ErrConflict))
	})

	t.Run("unknown line item", func(t *testing.T) {
		o := newPendingOrder()
		err := o.TransitionItem("queso", domain.ItemFound, "", "disp", at)
		assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	})
}

func TestOrder_AssignProviderInAnyState(t *testing.T) {
	at := time.Now()
	o := newPendingOrder()
	require.NoError(t, o.TransitionItem("pollo", domain.ItemFound, "", "disp", at))
	require.NoError(t, o.AssignProvider("pollo", "prov-costco", "Costco", "disp", at))
	li, _ := o.LineItem("pollo")
	assert.Equal(t, "Costco", li.SelectedProviderName)
	assert.Equal(t, "prov-costco", *li.SelectedProviderID)
	assert.Equal(t, domain.ItemFound, li.Status)
}

func TestOrder_AdvanceStatus(t *testing.T) {
	at := time.Now()
	o := newPendingOrder()
	require.NoError(t, o.AdvanceStatus(domain.OrderProcessing, "disp", at))
	require.NoError(t, o.AdvanceStatus(domain.OrderDelivered, "disp", at))
	assert.True(t, errors.Is(o.AdvanceStatus(domain.OrderCompleted, "disp", at), apperrors.ErrConflict))
	assert.True(t, errors.Is(o.AdvanceStatus(domain.OrderDelivered, "disp", at), apperrors.ErrConflict))
	assert.True(t, errors.Is(o.AdvanceStatus("lost", "disp", at), apperrors.ErrValidation))
}

func TestWeekOf(t *testing.T) {
	mx, err := time.LoadLocation("America/Mexico_City")
	require.NoError(t, err)

	tests := []struct {
		name string
		at   time.Time
		loc  *time.Location
		want string
	}{
		{"wednesday", time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC), time.UTC, "2024-05-12"},
		{"sunday is its own week start", time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC), time.UTC, "2024-05-12"},
		{"saturday", time.Date(2024, 5, 18, 23, 59, 0, 0, time.UTC), time.UTC, "2024-05-12"},
		{"crosses month boundary", time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC), time.UTC, "2024-05-26"},
		// 02:00 UTC on Sunday is still Saturday evening in Mexico City.
		{"local timezone", time.Date(2024, 5, 19, 2, 0, 0, 0, time.UTC), mx, "2024-05-12"},
		{"nil location is utc", time.Date(2024, 5, 19, 2, 0, 0, 0, time.UTC), nil, "2024-05-19"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.WeekOf(tt.at, tt.loc))
		})
	}
}
