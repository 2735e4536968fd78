package entity

import (
	"errors"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	p1 = Product{ID: "P1", Name: "Mug", Price: 10.0, Category: "home"}
	p2 = Product{ID: "P2", Name: "Book", Price: 12.5, Category: "books"}
	p3 = Product{ID: "P3", Name: "Pen", Price: 0.99, Category: "office"}
)

func sumItems(c Cart) float64 {
	var s float64
	for _, item := range c.Items {
		s += item.Price * float64(item.Quantity)
	}
	return s
}

func TestAddItemMergesQuantity(t *testing.T) {
	cart := NewCart()

	_, err := cart.AddItem(p1, 2)
	require.NoError(t, err)
	item, err := cart.AddItem(p1, 3)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, item.Quantity)
	assert.Equal(t, 50.0, cart.Total)
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	cart := NewCart()
	for _, qty := range []int{0, -1} {
		_, err := cart.AddItem(p1, qty)
		assert.True(t, errors.Is(err, ErrInvalidArgument))
	}
	assert.True(t, cart.IsEmpty())
	assert.Zero(t, cart.Total)
}

func TestAddItemRejectsQuantityOverflow(t *testing.T) {
	cart := NewCart()

	_, err := cart.AddItem(p1, MaxQuantity+1)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = cart.AddItem(p1, MaxQuantity)
	require.NoError(t, err)
	before := cart.Snapshot()

	_, err = cart.AddItem(p1, 1)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.Equal(t, before, cart.Snapshot())
	assert.Equal(t, MaxQuantity, cart.Items[0].Quantity)
	assert.Greater(t, cart.Total, 0.0)
}

func TestUpdateQuantityRejectsOutOfRange(t *testing.T) {
	cart := NewCart()
	_, _ = cart.AddItem(p1, 2)
	before := cart.Snapshot()

	_, removed, err := cart.UpdateQuantity("P1", math.MaxInt64)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.False(t, removed)

	_, removed, err = cart.UpdateQuantity("P1", math.MinInt64)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.False(t, removed)

	_, _, err = cart.UpdateQuantity("P1", MaxQuantity)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	assert.Equal(t, before, cart.Snapshot())
}

func TestAddItemFreezesPrice(t *testing.T) {
	cart := NewCart()
	_, err := cart.AddItem(p1, 1)
	require.NoError(t, err)

	repriced := p1
	repriced.Price = 99
	_, err = cart.AddItem(repriced, 1)
	require.NoError(t, err)

	assert.Equal(t, 10.0, cart.Items[0].Price)
	assert.Equal(t, 20.0, cart.Total)
}

func TestItemsKeepInsertionOrder(t *testing.T) {
	cart := NewCart()
	for _, p := range []Product{p2, p1, p3, p2} {
		_, err := cart.AddItem(p, 1)
		require.NoError(t, err)
	}
	ids := []string{}
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}
	assert.Equal(t, []string{"P2", "P1", "P3"}, ids)
}

func TestUpdateQuantityRemovesOnUnderflow(t *testing.T) {
	cart := NewCart()
	_, _ = cart.AddItem(p1, 2)
	_, _ = cart.AddItem(p2, 1)

	item, removed, err := cart.UpdateQuantity("P1", -2)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, "Mug", item.Name)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "P2", cart.Items[0].ProductID)
	assert.Equal(t, 12.5, cart.Total)

	item, removed, err = cart.UpdateQuantity("P2", 2)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, 37.5, cart.Total)
}

func TestMissingItemLeavesCartUnmodified(t *testing.T) {
	cart := NewCart()
	_, _ = cart.AddItem(p1, 2)
	before := cart.Snapshot()

	_, _, err := cart.UpdateQuantity("nope", 1)
	assert.True(t, errors.Is(err, ErrCartItemNotFound))
	_, err = cart.RemoveItem("nope")
	assert.True(t, errors.Is(err, ErrCartItemNotFound))

	assert.Equal(t, before, cart.Snapshot())
}

func TestRemoveItem(t *testing.T) {
	cart := NewCart()
	_, _ = cart.AddItem(p1, 1)
	_, _ = cart.AddItem(p3, 3)

	item, err := cart.RemoveItem("P1")
	require.NoError(t, err)
	assert.Equal(t, "P1", item.ProductID)
	assert.InDelta(t, 2.97, cart.Total, 1e-9)
}

func TestSnapshotIsIdempotentAndDetached(t *testing.T) {
	cart := NewCart()
	_, _ = cart.AddItem(p1, 1)

	a := cart.Snapshot()
	b := cart.Snapshot()
	assert.Equal(t, a, b)

	a.Items[0].Quantity = 42
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestTotalInvariantUnderRandomOperations(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	products := []Product{p1, p2, p3}
	cart := NewCart()

	for i := 0; i < 500; i++ {
		p := products[rng.Intn(len(products))]
		switch rng.Intn(3) {
		case 0:
			_, _ = cart.AddItem(p, rng.Intn(4))
		case 1:
			_, _, _ = cart.UpdateQuantity(p.ID, rng.Intn(7)-3)
		case 2:
			_, _ = cart.RemoveItem(p.ID)
		}

		require.InDelta(t, sumItems(cart), cart.Total, 1e-9)
		for _, item := range cart.Items {
			require.GreaterOrEqual(t, item.Quantity, 1)
		}
		require.False(t, math.IsNaN(cart.Total))
	}
}

func TestCheckout(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	empty := NewCart()
	order, ok := empty.Checkout("o-0", now)
	assert.False(t, ok)
	assert.Nil(t, order)

	cart := NewCart()
	_, _ = cart.AddItem(p1, 2)
	_, _ = cart.AddItem(p2, 1)

	order, ok = cart.Checkout("o-1", now)
	require.True(t, ok)
	assert.Equal(t, "o-1", order.ID)
	assert.Equal(t, now, order.Date)
	assert.Equal(t, 32.5, order.Total)
	require.Len(t, order.Items, 2)

	snap := cart.Snapshot()
	assert.Empty(t, snap.Items)
	assert.NotNil(t, snap.Items)
	assert.Zero(t, snap.Total)
}

func TestScenarioAddThenUnderflowThenEmptyCheckout(t *testing.T) {
	cart := NewCart()

	_, err := cart.AddItem(p1, 2)
	require.NoError(t, err)
	assert.Equal(t, 20.0, cart.Total)

	_, removed, err := cart.UpdateQuantity("P1", -3)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Total)

	_, ok := cart.Checkout("o", time.Now())
	assert.False(t, ok)
}
