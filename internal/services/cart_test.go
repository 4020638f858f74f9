package service_test

import (
	"testing"

	"github.com/ecoplaster/storefront/internal/models"
	service "github.com/ecoplaster/storefront/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartService(t *testing.T) {
	t.Run("Add reveals the cart by default", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		svc := service.NewCartService(f.carts)

		// Act
		snapshot, err := svc.AddItem(t.Context(), sessionID, &models.AddItemRequest{Item: plaster("A", 100, 1)})

		// Assert
		require.NoError(t, err)
		assert.True(t, snapshot.IsOpen)
		assert.Equal(t, 1, snapshot.CartCount)
	})

	t.Run("Add without revealing", func(t *testing.T) {
		f := newFixture(t)
		svc := service.NewCartService(f.carts)
		reveal := false

		snapshot, err := svc.AddItem(t.Context(), sessionID, &models.AddItemRequest{Item: plaster("A", 100, 2), RevealUI: &reveal})

		require.NoError(t, err)
		assert.False(t, snapshot.IsOpen)
	})

	t.Run("Adding an existing id merges quantities", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		svc := service.NewCartService(f.carts)
		f.fill(t, plaster("A", 100, 1))

		// Act
		snapshot, err := svc.AddItem(t.Context(), sessionID, &models.AddItemRequest{Item: plaster("A", 100, 2)})

		// Assert
		require.NoError(t, err)
		require.Len(t, snapshot.Items, 1)
		assert.Equal(t, 3, snapshot.Items[0].Quantity)
		assert.Equal(t, 3, snapshot.CartCount)
	})

	t.Run("Remove decrements, shipping is kept", func(t *testing.T) {
		f := newFixture(t)
		svc := service.NewCartService(f.carts)
		f.fill(t, plaster("A", 100, 2))

		_, err := svc.UpdateShipping(t.Context(), sessionID, &models.ShippingDraft{Zip: "560001", City: "Bengaluru"})
		require.NoError(t, err)
		snapshot, err := svc.RemoveItem(t.Context(), sessionID, "A")

		require.NoError(t, err)
		assert.Equal(t, 1, snapshot.CartCount)
		assert.Equal(t, "560001", svc.GetCart(t.Context(), sessionID).Shipping.Zip)
	})
}
