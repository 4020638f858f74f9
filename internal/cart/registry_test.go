package cart_test

import (
	"testing"
	"time"

	"github.com/ecoplaster/storefront/internal/cart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	t.Run("Open returns the same live store per session", func(t *testing.T) {
		c, _ := newCache(t)
		registry := cart.NewRegistry(c, time.Minute)

		first := registry.Open(t.Context(), "s1")
		second := registry.Open(t.Context(), "s1")
		other := registry.Open(t.Context(), "s2")

		assert.Same(t, first, second)
		assert.NotSame(t, first, other)
		assert.Equal(t, 2, registry.Len())
	})

	t.Run("Sweep evicts idle stores and rehydrates on next open", func(t *testing.T) {
		// Arrange
		c, _ := newCache(t)
		registry := cart.NewRegistry(c, time.Minute)

		store := registry.Open(t.Context(), "s1")
		_, err := store.AddToCart(t.Context(), item("A", 100, 2), false)
		require.NoError(t, err)

		var forgotten []string
		registry.OnEvict(func(sessionID string) { forgotten = append(forgotten, sessionID) })

		// Act
		assert.Zero(t, registry.Sweep(time.Now()))
		evicted := registry.Sweep(time.Now().Add(2 * time.Minute))

		// Assert
		assert.Equal(t, 1, evicted)
		assert.Zero(t, registry.Len())
		assert.Equal(t, []string{"s1"}, forgotten)

		_, err = store.AddToCart(t.Context(), item("A", 100, 1), false)
		assert.ErrorIs(t, err, cart.ErrDisposed)

		reopened := registry.Open(t.Context(), "s1")
		assert.NotSame(t, store, reopened)
		assert.Equal(t, 2, reopened.Snapshot().CartCount)
	})
}
