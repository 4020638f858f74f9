package service_test

import (
	"testing"

	"github.com/ecoplaster/storefront/internal/backend"
	appErrors "github.com/ecoplaster/storefront/internal/errors"
	"github.com/ecoplaster/storefront/internal/models"
	service "github.com/ecoplaster/storefront/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLastOrder(t *testing.T) {
	t.Run("Nothing remembered", func(t *testing.T) {
		f := newFixture(t)
		svc := service.NewOrderService(f.api, f.lastOrders)

		_, err := svc.LastOrder(t.Context(), sessionID)

		appErr := requireAppError(t, err, appErrors.ErrCodeNotFound)
		assert.Equal(t, service.NoRecentOrderMessage, appErr.Message)
	})

	t.Run("Remembered order is fetched", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		svc := service.NewOrderService(f.api, f.lastOrders)
		require.NoError(t, f.lastOrders.Remember(t.Context(), sessionID, "O123"))
		f.api.On("GetOrder", mock.Anything, "O123").
			Return(&models.Order{ID: "O123", Status: models.OrderStatusConfirmed}, nil).Once()

		// Act
		order, err := svc.LastOrder(t.Context(), sessionID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "O123", order.ID)
	})
}

func TestGetOrder(t *testing.T) {
	t.Run("Missing id", func(t *testing.T) {
		f := newFixture(t)

		_, err := service.NewOrderService(f.api, f.lastOrders).GetOrder(t.Context(), "")

		requireAppError(t, err, appErrors.ErrCodeBadRequest)
	})

	t.Run("Unknown order", func(t *testing.T) {
		f := newFixture(t)
		f.api.On("GetOrder", mock.Anything, "O404").Return(nil, backend.ErrNotFound).Once()

		_, err := service.NewOrderService(f.api, f.lastOrders).GetOrder(t.Context(), "O404")

		requireAppError(t, err, appErrors.ErrCodeNotFound)
	})
}
