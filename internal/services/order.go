package service

import (
	"context"
	"log/slog"

	"github.com/ecoplaster/storefront/internal/api/middleware"
	"github.com/ecoplaster/storefront/internal/backend"
	appErrors "github.com/ecoplaster/storefront/internal/errors"
	"github.com/ecoplaster/storefront/internal/models"
	"github.com/ecoplaster/storefront/internal/session"
)

const NoRecentOrderMessage = "No recent order"

type OrderService interface {
	GetOrder(ctx context.Context, orderID string) (*models.Order, error)
	LastOrder(ctx context.Context, sessionID string) (*models.Order, error)
}

type orderService struct {
	backend    backend.Backend
	lastOrders session.LastOrderStore
}

func NewOrderService(b backend.Backend, lastOrders session.LastOrderStore) OrderService {
	return &orderService{backend: b, lastOrders: lastOrders}
}

func (s *orderService) GetOrder(ctx context.Context, orderID string) (*models.Order, error) {
	if orderID == "" {
		return nil, appErrors.BadRequestError("Order ID is required")
	}

	order, err := s.backend.GetOrder(ctx, orderID)
	if err != nil {
		middleware.LoggerFromContext(ctx).Warn("Failed to fetch order",
			slog.String("orderId", orderID),
			slog.String("error", err.Error()))

		return nil, backend.Translate(err)
	}

	return order, nil
}

// LastOrder is the order this session most recently confirmed.
func (s *orderService) LastOrder(ctx context.Context, sessionID string) (*models.Order, error) {
	orderID, err := s.lastOrders.Get(ctx, sessionID)
	if err != nil {
		return nil, appErrors.StorageError("Failed to load last order").WithError(err)
	}

	if orderID == "" {
		return nil, appErrors.NotFoundError(NoRecentOrderMessage)
	}

	return s.GetOrder(ctx, orderID)
}
