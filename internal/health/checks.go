package health

import (
	"context"
	"fmt"
	"time"

	"github.com/ecoplaster/storefront/internal/config"
	"github.com/hellofresh/health-go/v5"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
)

// Pinger reports whether the storefront API answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Endpoints struct {
	StorefrontAPI Pinger
}

func NewHealthHandler(cfg *config.Config, endpoints *Endpoints) (*health.Health, error) {

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "ecoplaster-storefront",
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(
			health.Config{
				Name:      "redis",
				Timeout:   2 * time.Second,
				SkipOnErr: false,
				Check: healthRedis.New(
					healthRedis.Config{
						DSN: cfg.RedisConnect.GetDSN(),
					},
				),
			},
			health.Config{
				Name:    "storefront-api",
				Timeout: 5 * time.Second,
				// Cart edits keep working while the API is down, so the service only degrades.
				SkipOnErr: true,
				Check: func(ctx context.Context) error {
					if endpoints == nil || endpoints.StorefrontAPI == nil {
						return fmt.Errorf("storefront api client is not initialized")
					}

					if err := endpoints.StorefrontAPI.Ping(ctx); err != nil {
						return fmt.Errorf("failed to reach storefront api: %w", err)
					}

					return nil
				},
			},
		),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}
