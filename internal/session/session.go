// Package session stores the small per-visitor records that outlive a single request.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/ecoplaster/storefront/internal/cache"
	"github.com/ecoplaster/storefront/internal/models"
)

// DraftStore keeps the checkout form while the shopper signs in.
type DraftStore interface {
	Save(ctx context.Context, sessionID string, draft *models.CheckoutDraft) error
	Load(ctx context.Context, sessionID string) (*models.CheckoutDraft, error)
	Clear(ctx context.Context, sessionID string) error
}

type LastOrderStore interface {
	Remember(ctx context.Context, sessionID, orderID string) error
	Get(ctx context.Context, sessionID string) (string, error)
}

type draftStore struct {
	cache cache.Cache
	ttl   time.Duration
}

func NewDraftStore(c cache.Cache, ttl time.Duration) DraftStore {
	return &draftStore{cache: c, ttl: ttl}
}

func (s *draftStore) Save(ctx context.Context, sessionID string, draft *models.CheckoutDraft) error {
	if draft.SavedAt.IsZero() {
		draft.SavedAt = time.Now().UTC()
	}

	if err := s.cache.Set(ctx, cache.Key(cache.PendingCheckoutKeyPrefix, sessionID), draft, s.ttl); err != nil {
		return fmt.Errorf("save checkout draft: %w", err)
	}

	return nil
}

// Load returns nil without error when no draft is pending.
func (s *draftStore) Load(ctx context.Context, sessionID string) (*models.CheckoutDraft, error) {
	var draft models.CheckoutDraft

	found, err := s.cache.Get(ctx, cache.Key(cache.PendingCheckoutKeyPrefix, sessionID), &draft)
	if err != nil {
		return nil, fmt.Errorf("load checkout draft: %w", err)
	}

	if !found {
		return nil, nil
	}

	return &draft, nil
}

func (s *draftStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.cache.Delete(ctx, cache.Key(cache.PendingCheckoutKeyPrefix, sessionID)); err != nil {
		return fmt.Errorf("clear checkout draft: %w", err)
	}

	return nil
}

type lastOrderStore struct {
	cache cache.Cache
}

func NewLastOrderStore(c cache.Cache) LastOrderStore {
	return &lastOrderStore{cache: c}
}

func (s *lastOrderStore) Remember(ctx context.Context, sessionID, orderID string) error {
	if err := s.cache.Set(ctx, cache.Key(cache.LastOrderKeyPrefix, sessionID), orderID, 0); err != nil {
		return fmt.Errorf("remember last order: %w", err)
	}

	return nil
}

// Get returns "" when the session has no confirmed order yet.
func (s *lastOrderStore) Get(ctx context.Context, sessionID string) (string, error) {
	var orderID string

	if _, err := s.cache.Get(ctx, cache.Key(cache.LastOrderKeyPrefix, sessionID), &orderID); err != nil {
		return "", fmt.Errorf("get last order: %w", err)
	}

	return orderID, nil
}
