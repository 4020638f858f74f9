package cart_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ecoplaster/storefront/internal/cache"
	"github.com/ecoplaster/storefront/internal/cart"
	"github.com/ecoplaster/storefront/internal/config"
	"github.com/ecoplaster/storefront/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T) (cache.Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return cache.NewRedisCache(client, &config.CacheConfig{DefaultTTL: time.Hour}), mr
}

func item(id string, price int64, qty int) models.CartItem {
	return models.CartItem{ID: id, Name: "Item " + id, Price: decimal.NewFromInt(price), OriginalPrice: decimal.NewFromInt(price), Quantity: qty}
}

func newStore(t *testing.T) (*cart.Store, cache.Cache, *miniredis.Miniredis) {
	t.Helper()

	c, mr := newCache(t)
	store := cart.NewStore(c, "session-1")
	store.Hydrate(t.Context())

	return store, c, mr
}

func assertCountInvariant(t *testing.T, snapshot *models.CartSnapshot) {
	t.Helper()

	sum := 0
	for _, line := range snapshot.Items {
		assert.Positive(t, line.Quantity, "line %s", line.ID)
		sum += line.Quantity
	}
	assert.Equal(t, sum, snapshot.CartCount)
}

func TestAddToCart(t *testing.T) {
	t.Run("Same id increments quantity", func(t *testing.T) {
		// Arrange
		store, _, _ := newStore(t)
		ctx := t.Context()

		_, err := store.AddToCart(ctx, item("A", 100, 1), false)
		require.NoError(t, err)

		// Act
		snapshot, err := store.AddToCart(ctx, item("A", 100, 2), true)

		// Assert
		require.NoError(t, err)
		require.Len(t, snapshot.Items, 1)
		assert.Equal(t, 3, snapshot.Items[0].Quantity)
		assert.Equal(t, 3, snapshot.CartCount)
		assert.True(t, snapshot.IsOpen)
		assert.True(t, decimal.NewFromInt(300).Equal(snapshot.Subtotal))
	})

	t.Run("Non-positive quantity counts as one", func(t *testing.T) {
		store, _, _ := newStore(t)

		snapshot, err := store.AddToCart(t.Context(), item("B", 50, 0), false)

		require.NoError(t, err)
		assert.Equal(t, 1, snapshot.Items[0].Quantity)
		assert.False(t, snapshot.IsOpen)
	})
}

func TestRemoveFromCart(t *testing.T) {
	store, _, _ := newStore(t)
	ctx := t.Context()

	_, err := store.AddToCart(ctx, item("A", 100, 2), false)
	require.NoError(t, err)

	snapshot, err := store.RemoveFromCart(ctx, "A")
	require.NoError(t, err)
	require.Len(t, snapshot.Items, 1)
	assert.Equal(t, 1, snapshot.Items[0].Quantity)

	snapshot, err = store.RemoveFromCart(ctx, "A")
	require.NoError(t, err)
	assert.Empty(t, snapshot.Items)
	assert.Equal(t, 0, snapshot.CartCount)

	snapshot, err = store.RemoveFromCart(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, snapshot.Items)
}

func TestQuantityInvariantUnderRandomOperations(t *testing.T) {
	store, _, _ := newStore(t)
	ctx := t.Context()
	ids := []string{"A", "B", "C"}
	rng := rand.New(rand.NewPCG(7, 11))

	for range 200 {
		id := ids[rng.IntN(len(ids))]

		var (
			snapshot *models.CartSnapshot
			err      error
		)

		if rng.IntN(2) == 0 {
			snapshot, err = store.AddToCart(ctx, item(id, 10, rng.IntN(4)), false)
		} else {
			snapshot, err = store.RemoveFromCart(ctx, id)
		}

		require.NoError(t, err)
		assertCountInvariant(t, snapshot)

		seen := map[string]bool{}
		for _, line := range snapshot.Items {
			assert.False(t, seen[line.ID], "duplicate line %s", line.ID)
			seen[line.ID] = true
		}
	}
}

func TestPersistenceAcrossReload(t *testing.T) {
	// Arrange
	store, c, _ := newStore(t)
	ctx := t.Context()

	_, err := store.AddToCart(ctx, item("A", 1200, 2), true)
	require.NoError(t, err)
	_, err = store.UpdateShippingAddress(ctx, models.ShippingDraft{Zip: "411001", City: "Pune"})
	require.NoError(t, err)
	_, err = store.ApplyPromotion(ctx, models.Promotion{Code: "FLAT100", DiscountType: models.DiscountTypeFixed, DiscountValue: decimal.NewFromInt(100)})
	require.NoError(t, err)

	// Act
	reloaded := cart.NewStore(c, "session-1")
	reloaded.Hydrate(ctx)
	snapshot := reloaded.Snapshot()

	// Assert
	require.Len(t, snapshot.Items, 1)
	assert.Equal(t, 2, snapshot.CartCount)
	assert.Equal(t, "Pune", snapshot.Shipping.City)
	require.NotNil(t, snapshot.Promotion)
	assert.Equal(t, "FLAT100", snapshot.Promotion.Code)
	assert.True(t, decimal.NewFromInt(2300).Equal(snapshot.Total))
	assert.True(t, snapshot.IsOpen)
}

func TestHydrateFallsBackOnCorruptSnapshot(t *testing.T) {
	// Arrange
	c, mr := newCache(t)
	require.NoError(t, mr.Set(cache.Key(cache.CartKeyPrefix, "s"), "{not json"))
	require.NoError(t, mr.Set(cache.Key(cache.PromotionKeyPrefix, "s"), `[]`))
	require.NoError(t, mr.Set(cache.Key(cache.ShippingKeyPrefix, "s"), `{"zip":"560001","city":"Bengaluru"}`))

	// Act
	store := cart.NewStore(c, "s")
	store.Hydrate(t.Context())
	snapshot := store.Snapshot()

	// Assert
	assert.Empty(t, snapshot.Items)
	assert.Nil(t, snapshot.Promotion)
	assert.Equal(t, "Bengaluru", snapshot.Shipping.City)
}

func TestHydrateDropsInvalidLines(t *testing.T) {
	c, mr := newCache(t)
	require.NoError(t, mr.Set(cache.Key(cache.CartKeyPrefix, "s"),
		`{"items":[{"id":"A","price":"10","quantity":2},{"id":"A","price":"10","quantity":1},{"id":"B","price":"5","quantity":0},{"id":"","quantity":3}]}`))

	store := cart.NewStore(c, "s")
	store.Hydrate(t.Context())
	snapshot := store.Snapshot()

	require.Len(t, snapshot.Items, 1)
	assert.Equal(t, 3, snapshot.CartCount)
}

func TestClearCart(t *testing.T) {
	store, c, _ := newStore(t)
	ctx := t.Context()

	_, err := store.AddToCart(ctx, item("A", 100, 1), false)
	require.NoError(t, err)
	_, err = store.UpdateShippingAddress(ctx, models.ShippingDraft{Zip: "411001"})
	require.NoError(t, err)
	_, err = store.ApplyPromotion(ctx, models.Promotion{Code: "X", DiscountType: models.DiscountTypeFixed, DiscountValue: decimal.NewFromInt(10)})
	require.NoError(t, err)

	snapshot, err := store.ClearCart(ctx)

	require.NoError(t, err)
	assert.Empty(t, snapshot.Items)
	assert.Nil(t, snapshot.Promotion)
	assert.Equal(t, "411001", snapshot.Shipping.Zip)

	var promo models.Promotion
	found, err := c.Get(ctx, cache.Key(cache.PromotionKeyPrefix, "session-1"), &promo)
	require.NoError(t, err)
	assert.False(t, found)
}

type failingCache struct {
	cache.Cache
	fail bool
}

func (f *failingCache) WriteAll(ctx context.Context, writes []cache.Write) error {
	if f.fail {
		return errors.New("redis down")
	}

	return f.Cache.WriteAll(ctx, writes)
}

func TestMutationNotVisibleWhenPersistFails(t *testing.T) {
	// Arrange
	inner, _ := newCache(t)
	fc := &failingCache{Cache: inner}
	store := cart.NewStore(fc, "s")
	store.Hydrate(t.Context())

	_, err := store.AddToCart(t.Context(), item("A", 100, 1), false)
	require.NoError(t, err)

	fc.fail = true

	// Act
	_, err = store.AddToCart(t.Context(), item("A", 100, 5), false)

	// Assert
	require.Error(t, err)
	assert.Equal(t, 1, store.Snapshot().CartCount)
}

func TestClearCartFailureKeepsStoredStateWhole(t *testing.T) {
	// Arrange
	inner, _ := newCache(t)
	fc := &failingCache{Cache: inner}
	store := cart.NewStore(fc, "s")
	store.Hydrate(t.Context())

	_, err := store.AddToCart(t.Context(), item("A", 100, 2), false)
	require.NoError(t, err)
	_, err = store.ApplyPromotion(t.Context(), models.Promotion{Code: "X", DiscountType: models.DiscountTypeFixed, DiscountValue: decimal.NewFromInt(10)})
	require.NoError(t, err)

	fc.fail = true

	// Act
	_, err = store.ClearCart(t.Context())

	// Assert
	require.Error(t, err)
	assert.Equal(t, 2, store.Snapshot().CartCount)

	reloaded := cart.NewStore(inner, "s")
	reloaded.Hydrate(t.Context())
	snapshot := reloaded.Snapshot()
	assert.Equal(t, 2, snapshot.CartCount)
	require.NotNil(t, snapshot.Promotion)
	assert.Equal(t, "X", snapshot.Promotion.Code)
}

func TestDisposedStoreRejectsMutations(t *testing.T) {
	store, _, _ := newStore(t)
	store.Dispose()

	_, err := store.AddToCart(t.Context(), item("A", 1, 1), false)

	assert.ErrorIs(t, err, cart.ErrDisposed)
}
