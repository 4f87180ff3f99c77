package domain

import (
	"testing"

	"github.com/agrigrow/storefront/internal/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id string, price int64, qty int) CartItem {
	return CartItem{ProductID: id, Name: id, UnitPrice: decimal.NewFromInt(price), Quantity: qty}
}

func TestAddItemIncrementsExisting(t *testing.T) {
	c := NewCart("u1")
	require.NoError(t, c.AddItem(item("A", 100, 1)))
	require.NoError(t, c.AddItem(item("A", 100, 1)))

	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.True(t, c.Total().Equal(decimal.NewFromInt(200)))
}

func TestAddItemRejectsNegativePrice(t *testing.T) {
	c := NewCart("u1")
	err := c.AddItem(item("A", -1, 1))
	assert.ErrorIs(t, err, pricing.ErrNegativePrice)
	assert.True(t, c.IsEmpty())
}

func TestAddItemDefaultsQuantityToOne(t *testing.T) {
	c := NewCart("u1")
	require.NoError(t, c.AddItem(item("A", 10, 0)))
	assert.Equal(t, 1, c.Items[0].Quantity)
}

func TestUpdateQuantityBelowOneRemovesItem(t *testing.T) {
	c := NewCart("u1")
	require.NoError(t, c.AddItem(item("A", 100, 2)))

	require.NoError(t, c.UpdateQuantity("A", 0))
	assert.True(t, c.IsEmpty())

	require.NoError(t, c.AddItem(item("A", 100, 2)))
	require.NoError(t, c.UpdateQuantity("A", -3))
	assert.True(t, c.IsEmpty())
}

func TestUpdateQuantityUnknownItem(t *testing.T) {
	c := NewCart("u1")
	err := c.UpdateQuantity("missing", 2)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestQuantityNeverBelowOne(t *testing.T) {
	c := NewCart("u1")
	require.NoError(t, c.AddItem(item("A", 10, 1)))
	require.NoError(t, c.AddItem(item("B", 20, 3)))
	require.NoError(t, c.UpdateQuantity("B", 1))
	require.NoError(t, c.UpdateQuantity("A", 0))

	for _, it := range c.Items {
		assert.GreaterOrEqual(t, it.Quantity, 1)
	}
}

func TestRemoveItemAbsentIsNoop(t *testing.T) {
	c := NewCart("u1")
	require.NoError(t, c.AddItem(item("A", 10, 1)))
	v := c.Version

	c.RemoveItem("missing")
	assert.Len(t, c.Items, 1)
	assert.Equal(t, v, c.Version)
}

func TestClearIsIdempotent(t *testing.T) {
	c := NewCart("u1")
	require.NoError(t, c.AddItem(item("A", 10, 1)))

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.True(t, c.Total().IsZero())

	v := c.Version
	c.Clear()
	assert.Equal(t, v, c.Version)
}

func TestTotalMatchesFoldWithDiscount(t *testing.T) {
	c := NewCart("u1")
	require.NoError(t, c.AddItem(item("A", 100, 2)))
	b := item("B", 50, 1)
	b.DiscountPercent = 10
	require.NoError(t, c.AddItem(b))

	// 200 + 45 = 245
	assert.True(t, c.Total().Equal(decimal.NewFromInt(245)), "got %s", c.Total())
}

func TestTotalRecomputedAfterEveryMutation(t *testing.T) {
	c := NewCart("u1")
	require.NoError(t, c.AddItem(item("A", 30, 1)))
	require.NoError(t, c.AddItem(item("B", 20, 2)))
	require.NoError(t, c.UpdateQuantity("A", 4))
	c.RemoveItem("B")

	want := decimal.Zero
	for _, it := range c.Items {
		want = want.Add(it.Subtotal())
	}
	assert.True(t, c.Total().Equal(want))
}

func TestSnapshotIsDetached(t *testing.T) {
	c := NewCart("u1")
	require.NoError(t, c.AddItem(item("A", 10, 1)))

	snap := c.Snapshot()
	require.NoError(t, c.UpdateQuantity("A", 5))

	assert.Equal(t, 1, snap[0].Quantity)
	assert.Equal(t, 5, c.Items[0].Quantity)
}

func TestVersionMonotonicallyIncreases(t *testing.T) {
	c := NewCart("u1")
	require.NoError(t, c.AddItem(item("A", 10, 1)))
	v1 := c.Version
	require.NoError(t, c.UpdateQuantity("A", 2))
	v2 := c.Version
	c.RemoveItem("A")
	v3 := c.Version

	assert.Less(t, v1, v2)
	assert.Less(t, v2, v3)
}

func TestItemCountSumsQuantities(t *testing.T) {
	c := NewCart("u1")
	require.NoError(t, c.AddItem(item("A", 10, 2)))
	require.NoError(t, c.AddItem(item("B", 10, 3)))
	assert.Equal(t, 5, c.ItemCount())
}
