package storage

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	store, cleanup, err := NewTestDB()
	require.NoError(t, err, "failed to create test database")
	t.Cleanup(cleanup)
	return store
}

func TestCartPayloadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	// Missing row reads back as nil payload, not an error.
	payload, err := store.LoadCart(ctx, "shopper-1")
	require.NoError(t, err)
	assert.Nil(t, payload)

	want := []byte(`{"items":[{"id":"c1","qty":2}]}`)
	require.NoError(t, store.SaveCart(ctx, "shopper-1", want))

	payload, err = store.LoadCart(ctx, "shopper-1")
	require.NoError(t, err)
	assert.Equal(t, want, payload)

	// Saving again overwrites in place.
	updated := []byte(`{"items":[]}`)
	require.NoError(t, store.SaveCart(ctx, "shopper-1", updated))
	payload, err = store.LoadCart(ctx, "shopper-1")
	require.NoError(t, err)
	assert.Equal(t, updated, payload)
}

func TestWishlistPayloadIsolatedBySession(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	require.NoError(t, store.SaveWishlist(ctx, "shopper-1", []byte(`["c1"]`)))
	require.NoError(t, store.SaveWishlist(ctx, "shopper-2", []byte(`["c2"]`)))

	payload, err := store.LoadWishlist(ctx, "shopper-1")
	require.NoError(t, err)
	assert.Equal(t, []byte(`["c1"]`), payload)

	payload, err = store.LoadWishlist(ctx, "shopper-2")
	require.NoError(t, err)
	assert.Equal(t, []byte(`["c2"]`), payload)
}

func TestOrderLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	order := Order{
		ID:        uuid.New().String(),
		SessionID: "shopper-1",
		Reference: "ref-123",
		Subtotal:  25.0,
		Payload:   []byte(`{"lines":[{"id":"c1","qty":2}]}`),
	}
	require.NoError(t, store.CreateOrder(ctx, order))

	got, err := store.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "pending", got.Status, "new orders default to pending")
	assert.Equal(t, "usd", got.Currency)
	assert.Equal(t, 25.0, got.Subtotal)
	assert.False(t, got.CreatedAt.IsZero())

	require.NoError(t, store.UpdateOrderStatus(ctx, order.ID, "paid"))
	got, err = store.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "paid", got.Status)

	orders, err := store.ListOrdersBySession(ctx, "shopper-1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)

	assert.Error(t, store.UpdateOrderStatus(ctx, "missing", "paid"))
}
