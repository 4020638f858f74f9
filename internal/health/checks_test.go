package health_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/ecoplaster/storefront/internal/config"
	"github.com/ecoplaster/storefront/internal/health"
	healthgo "github.com/hellofresh/health-go/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func newConfig(t *testing.T) *config.Config {
	t.Helper()

	mr := miniredis.RunT(t)

	return &config.Config{RedisConnect: config.RedisConnect{Host: mr.Host(), Port: mr.Port()}}
}

func TestHealthChecks(t *testing.T) {
	t.Run("All components up", func(t *testing.T) {
		// Arrange
		h, err := health.NewHealthHandler(newConfig(t), &health.Endpoints{
			StorefrontAPI: pingerFunc(func(context.Context) error { return nil }),
		})
		require.NoError(t, err)

		// Act
		check := h.Measure(t.Context())

		// Assert
		assert.Equal(t, healthgo.StatusOK, check.Status)
		assert.Empty(t, check.Failures)
	})

	t.Run("API down only degrades", func(t *testing.T) {
		h, err := health.NewHealthHandler(newConfig(t), &health.Endpoints{
			StorefrontAPI: pingerFunc(func(context.Context) error { return errors.New("connection refused") }),
		})
		require.NoError(t, err)

		check := h.Measure(t.Context())

		assert.Equal(t, healthgo.StatusPartiallyAvailable, check.Status)
		assert.Contains(t, check.Failures, "storefront-api")
	})
}
