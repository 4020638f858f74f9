package telemetry_test

import (
	"testing"

	"github.com/ecoplaster/storefront/internal/config"
	"github.com/ecoplaster/storefront/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestSetup(t *testing.T) {
	t.Run("No endpoint keeps the default provider", func(t *testing.T) {
		// Arrange
		before := otel.GetTracerProvider()

		// Act
		shutdown, err := telemetry.Setup(t.Context(), config.Otel{ServiceName: "test"})

		// Assert
		require.NoError(t, err)
		assert.Same(t, before, otel.GetTracerProvider())
		assert.NoError(t, shutdown(t.Context()))
	})

	t.Run("Endpoint installs an SDK provider", func(t *testing.T) {
		// Arrange
		before := otel.GetTracerProvider()
		t.Cleanup(func() { otel.SetTracerProvider(before) })

		// Act
		shutdown, err := telemetry.Setup(t.Context(), config.Otel{
			ServiceName:      "test",
			ExporterEndpoint: "http://127.0.0.1:4318/v1/traces",
			SamplerRatio:     1,
		})

		// Assert
		require.NoError(t, err)
		assert.IsType(t, &sdktrace.TracerProvider{}, otel.GetTracerProvider())
		assert.NoError(t, shutdown(t.Context()))
	})
}
