package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCart_TotalCents(t *testing.T) {
	cart := &Cart{
		SessionID: "till-1",
		Items: []CartItem{
			{MedicineID: "a", PriceCents: 1000, Quantity: 5},
			{MedicineID: "b", PriceCents: 250, Quantity: 2},
		},
	}

	assert.Equal(t, int64(5500), cart.TotalCents())
	assert.Equal(t, 7, cart.TotalQuantity())
}

func TestCart_TotalCents_Empty(t *testing.T) {
	cart := &Cart{SessionID: "till-1"}

	assert.Equal(t, int64(0), cart.TotalCents())
	assert.Equal(t, 0, cart.TotalQuantity())
	assert.True(t, cart.IsEmpty())
}

func TestCart_FindItemIndex(t *testing.T) {
	cart := &Cart{
		Items: []CartItem{
			{MedicineID: "a"},
			{MedicineID: "b"},
		},
	}

	assert.Equal(t, 0, cart.FindItemIndex("a"))
	assert.Equal(t, 1, cart.FindItemIndex("b"))
	assert.Equal(t, -1, cart.FindItemIndex("missing"))
}

func TestSaleRequest_Totals(t *testing.T) {
	req := &SaleRequest{
		Lines: []SaleLine{
			{MedicineID: "a", Quantity: 5, PriceCents: 1000},
			{MedicineID: "b", Quantity: 1, PriceCents: 250},
		},
	}

	assert.Equal(t, 6, req.TotalItems())
	assert.Equal(t, int64(5250), req.TotalCents())
}
