package service

import (
	"context"
	"log/slog"

	"github.com/ecoplaster/storefront/internal/api/middleware"
	"github.com/ecoplaster/storefront/internal/cart"
	appErrors "github.com/ecoplaster/storefront/internal/errors"
	"github.com/ecoplaster/storefront/internal/models"
)

type CartService interface {
	GetCart(ctx context.Context, sessionID string) *models.CartSnapshot
	AddItem(ctx context.Context, sessionID string, req *models.AddItemRequest) (*models.CartSnapshot, error)
	RemoveItem(ctx context.Context, sessionID, itemID string) (*models.CartSnapshot, error)
	UpdateShipping(ctx context.Context, sessionID string, draft *models.ShippingDraft) (*models.CartSnapshot, error)
}

type cartService struct {
	carts *cart.Registry
}

func NewCartService(carts *cart.Registry) CartService {
	return &cartService{carts: carts}
}

func (s *cartService) GetCart(ctx context.Context, sessionID string) *models.CartSnapshot {
	return s.carts.Open(ctx, sessionID).Snapshot()
}

func (s *cartService) AddItem(ctx context.Context, sessionID string, req *models.AddItemRequest) (*models.CartSnapshot, error) {
	revealUI := true
	if req.RevealUI != nil {
		revealUI = *req.RevealUI
	}

	snapshot, err := s.carts.Open(ctx, sessionID).AddToCart(ctx, req.Item, revealUI)
	if err != nil {
		return nil, storageFailure(ctx, "Failed to update cart", err)
	}

	return snapshot, nil
}

func (s *cartService) RemoveItem(ctx context.Context, sessionID, itemID string) (*models.CartSnapshot, error) {
	snapshot, err := s.carts.Open(ctx, sessionID).RemoveFromCart(ctx, itemID)
	if err != nil {
		return nil, storageFailure(ctx, "Failed to update cart", err)
	}

	return snapshot, nil
}

func (s *cartService) UpdateShipping(ctx context.Context, sessionID string, draft *models.ShippingDraft) (*models.CartSnapshot, error) {
	snapshot, err := s.carts.Open(ctx, sessionID).UpdateShippingAddress(ctx, *draft)
	if err != nil {
		return nil, storageFailure(ctx, "Failed to save shipping address", err)
	}

	return snapshot, nil
}

func storageFailure(ctx context.Context, message string, err error) error {
	middleware.LoggerFromContext(ctx).Error(message, slog.String("error", err.Error()))

	return appErrors.StorageError(message).WithError(err)
}
