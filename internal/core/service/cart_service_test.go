package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell/storefront/internal/core/domain"
)

func newCartService(store *stubCartStore) *CartService {
	products := stubProducts{
		"pen":  {ID: "pen", SKU: "PEN", Name: "Pen", Price: 1.2, Status: domain.ProductActive},
		"ink":  {ID: "ink", SKU: "INK", Name: "Ink", Price: 4.05, Status: domain.ProductActive},
		"gone": {ID: "gone", SKU: "OLD", Name: "Old", Price: 9, Status: domain.ProductInactive},
	}
	svc := NewCartService(store, products, zerolog.Nop())
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestCartService_AddPersists(t *testing.T) {
	store := newStubCartStore()
	svc := newCartService(store)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "c1", "pen", "")
	require.NoError(t, err)
	cart, err := svc.AddItem(ctx, "c1", "ink", "refill")
	require.NoError(t, err)

	assert.Equal(t, 5.25, cart.Total)
	assert.Equal(t, cart, store.carts["c1"])
	assert.Equal(t, cart, svc.Get(ctx, "c1"))
	assert.Equal(t, fixedNow, cart.Items[0].AddedAt)
}

func TestCartService_AddRejectsUnknownAndInactive(t *testing.T) {
	store := newStubCartStore()
	svc := newCartService(store)

	_, err := svc.AddItem(context.Background(), "c1", "nope", "")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = svc.AddItem(context.Background(), "c1", "gone", "")
	assert.ErrorIs(t, err, domain.ErrProductUnavailable)

	assert.Zero(t, store.saves)
}

func TestCartService_QuantityAndRemove(t *testing.T) {
	svc := newCartService(newStubCartStore())
	ctx := context.Background()
	_, err := svc.AddItem(ctx, "c1", "pen", "")
	require.NoError(t, err)

	cart := svc.UpdateQuantity(ctx, "c1", "pen", "", 5)
	assert.Equal(t, 6.0, cart.Total)

	cart = svc.UpdateQuantity(ctx, "c1", "pen", "", 0)
	assert.True(t, cart.IsEmpty())

	_, err = svc.AddItem(ctx, "c1", "ink", "")
	require.NoError(t, err)
	cart = svc.RemoveItem(ctx, "c1", "ink", "")
	assert.True(t, cart.IsEmpty())
}

func TestCartService_StoreFailuresAreNotFatal(t *testing.T) {
	store := newStubCartStore()
	store.carts["c1"] = domain.Cart{Items: []domain.CartItem{{ProductID: "pen", Quantity: 1, Price: 1.2}}, Total: 1.2}
	svc := newCartService(store)
	ctx := context.Background()

	store.loadErr = errStore
	assert.True(t, svc.Get(ctx, "c1").IsEmpty())

	store.loadErr = nil
	store.saveErr = errStore
	cart, err := svc.AddItem(ctx, "c1", "pen", "")
	require.NoError(t, err)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 1.2, store.carts["c1"].Total, "failed save leaves the stored cart untouched")
}

func TestCartService_StaleStoredTotalIsRecomputed(t *testing.T) {
	store := newStubCartStore()
	store.carts["c1"] = domain.Cart{Items: []domain.CartItem{{ProductID: "pen", Quantity: 2, Price: 1.2}}, Total: 100}
	svc := newCartService(store)

	assert.Equal(t, 2.4, svc.Get(context.Background(), "c1").Total)
}

func TestCartService_Clear(t *testing.T) {
	store := newStubCartStore()
	svc := newCartService(store)
	ctx := context.Background()
	_, err := svc.AddItem(ctx, "c1", "pen", "")
	require.NoError(t, err)

	saves := store.saves

	cart := svc.Clear(ctx, "c1")

	assert.True(t, cart.IsEmpty())
	assert.NotContains(t, store.carts, "c1")
	assert.Equal(t, 1, store.deletes)
	assert.Equal(t, saves, store.saves, "clearing removes the snapshot instead of saving an empty one")
	assert.True(t, svc.Get(ctx, "c1").IsEmpty())
}

func TestCartService_ClearDeleteFailureIsNonFatal(t *testing.T) {
	store := newStubCartStore()
	store.deleteErr = errStore
	svc := newCartService(store)

	cart := svc.Clear(context.Background(), "c1")

	assert.True(t, cart.IsEmpty())
	assert.NotNil(t, cart.Items)
	assert.Equal(t, 1, store.deletes)
}
