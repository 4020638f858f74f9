// Package cart owns the shopper's mutable cart, the delivery draft and the
// applied promotion. Every mutation is persisted before it becomes visible.
package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/ecoplaster/storefront/internal/cache"
	"github.com/ecoplaster/storefront/internal/models"
	"github.com/ecoplaster/storefront/internal/pricing"
)

var ErrDisposed = errors.New("cart store disposed")

type cartRecord struct {
	Items  []models.CartItem `json:"items"`
	IsOpen bool              `json:"isCartOpen"`
}

type state struct {
	items     []models.CartItem
	isOpen    bool
	shipping  models.ShippingDraft
	promotion *models.Promotion
}

func (s state) clone() state {
	c := s
	c.items = slices.Clone(s.items)
	if s.promotion != nil {
		promo := *s.promotion
		c.promotion = &promo
	}

	return c
}

type Store struct {
	mu       sync.Mutex
	cache    cache.Cache
	session  string
	state    state
	lastUsed time.Time
	disposed bool
}

func NewStore(c cache.Cache, sessionID string) *Store {
	return &Store{
		cache:    c,
		session:  sessionID,
		lastUsed: time.Now(),
	}
}

// Hydrate loads the previous snapshot. Each key falls back to its empty value on any failure.
func (s *Store) Hydrate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger := slog.With(slog.String("sessionId", s.session))

	var record cartRecord
	if found, err := s.cache.Get(ctx, cache.Key(cache.CartKeyPrefix, s.session), &record); err != nil {
		logger.Warn("Discarding unreadable cart snapshot", slog.String("error", err.Error()))
	} else if found {
		s.state.items = sanitize(record.Items)
		s.state.isOpen = record.IsOpen
	}

	var shipping models.ShippingDraft
	if found, err := s.cache.Get(ctx, cache.Key(cache.ShippingKeyPrefix, s.session), &shipping); err != nil {
		logger.Warn("Discarding unreadable shipping draft", slog.String("error", err.Error()))
	} else if found {
		s.state.shipping = shipping
	}

	var promo models.Promotion
	if found, err := s.cache.Get(ctx, cache.Key(cache.PromotionKeyPrefix, s.session), &promo); err != nil {
		logger.Warn("Discarding unreadable promotion", slog.String("error", err.Error()))
	} else if found {
		s.state.promotion = &promo
	}
}

// sanitize drops lines a hand-edited or stale snapshot could carry.
func sanitize(items []models.CartItem) []models.CartItem {
	out := make([]models.CartItem, 0, len(items))

	for _, item := range items {
		if item.ID == "" || item.Quantity <= 0 {
			continue
		}

		if i := slices.IndexFunc(out, func(existing models.CartItem) bool { return existing.ID == item.ID }); i >= 0 {
			out[i].Quantity += item.Quantity
			continue
		}

		out = append(out, item)
	}

	return out
}

func (s *Store) AddToCart(ctx context.Context, item models.CartItem, revealUI bool) (*models.CartSnapshot, error) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	return s.mutate(ctx, func(next *state) []string {
		if i := slices.IndexFunc(next.items, func(existing models.CartItem) bool { return existing.ID == item.ID }); i >= 0 {
			next.items[i].Quantity += item.Quantity
		} else {
			next.items = append(next.items, item)
		}

		if revealUI {
			next.isOpen = true
		}

		return []string{cache.CartKeyPrefix}
	})
}

// RemoveFromCart takes one unit off the line and drops the line at zero.
func (s *Store) RemoveFromCart(ctx context.Context, id string) (*models.CartSnapshot, error) {
	return s.mutate(ctx, func(next *state) []string {
		i := slices.IndexFunc(next.items, func(existing models.CartItem) bool { return existing.ID == id })
		if i < 0 {
			return nil
		}

		if next.items[i].Quantity <= 1 {
			next.items = slices.Delete(next.items, i, i+1)
		} else {
			next.items[i].Quantity--
		}

		return []string{cache.CartKeyPrefix}
	})
}

func (s *Store) ClearCart(ctx context.Context) (*models.CartSnapshot, error) {
	return s.mutate(ctx, func(next *state) []string {
		next.items = nil
		next.promotion = nil

		return []string{cache.CartKeyPrefix, cache.PromotionKeyPrefix}
	})
}

func (s *Store) UpdateShippingAddress(ctx context.Context, draft models.ShippingDraft) (*models.CartSnapshot, error) {
	return s.mutate(ctx, func(next *state) []string {
		next.shipping = draft

		return []string{cache.ShippingKeyPrefix}
	})
}

func (s *Store) ApplyPromotion(ctx context.Context, promo models.Promotion) (*models.CartSnapshot, error) {
	return s.mutate(ctx, func(next *state) []string {
		next.promotion = &promo

		return []string{cache.PromotionKeyPrefix}
	})
}

func (s *Store) RemovePromotion(ctx context.Context) (*models.CartSnapshot, error) {
	return s.mutate(ctx, func(next *state) []string {
		if next.promotion == nil {
			return nil
		}
		next.promotion = nil

		return []string{cache.PromotionKeyPrefix}
	})
}

func (s *Store) SetOpen(ctx context.Context, open bool) (*models.CartSnapshot, error) {
	return s.mutate(ctx, func(next *state) []string {
		if next.isOpen == open {
			return nil
		}
		next.isOpen = open

		return []string{cache.CartKeyPrefix}
	})
}

func (s *Store) Snapshot() *models.CartSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastUsed = time.Now()

	return snapshotOf(s.state.clone())
}

// Items returns a copy of the current lines.
func (s *Store) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.state.items)
}

func (s *Store) Promotion() *models.Promotion {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.promotion == nil {
		return nil
	}
	promo := *s.state.promotion

	return &promo
}

// Dispose detaches the store. Later mutations fail with ErrDisposed.
func (s *Store) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.disposed = true
}

func (s *Store) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastUsed
}

// mutate applies fn to a copy of the state, persists the keys fn reports as
// changed and only then swaps the copy in.
func (s *Store) mutate(ctx context.Context, fn func(next *state) []string) (*models.CartSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return nil, ErrDisposed
	}

	s.lastUsed = time.Now()

	next := s.state.clone()
	changed := fn(&next)

	writes := make([]cache.Write, 0, len(changed))
	for _, prefix := range changed {
		w, err := s.write(prefix, next)
		if err != nil {
			return nil, err
		}
		writes = append(writes, w)
	}

	// One batch, so a multi-key change such as ClearCart never lands half-way.
	if err := s.cache.WriteAll(ctx, writes); err != nil {
		return nil, fmt.Errorf("persist cart: %w", err)
	}

	s.state = next

	return snapshotOf(next.clone()), nil
}

func (s *Store) write(prefix string, next state) (cache.Write, error) {
	w := cache.Write{Key: cache.Key(prefix, s.session)}

	switch prefix {
	case cache.CartKeyPrefix:
		w.Value = cartRecord{Items: next.items, IsOpen: next.isOpen}
	case cache.ShippingKeyPrefix:
		w.Value = next.shipping
	case cache.PromotionKeyPrefix:
		if next.promotion == nil {
			w.Delete = true
		} else {
			w.Value = next.promotion
		}
	default:
		return w, fmt.Errorf("unknown cart key prefix %q", prefix)
	}

	return w, nil
}

func snapshotOf(st state) *models.CartSnapshot {
	items := st.items
	if items == nil {
		items = []models.CartItem{}
	}

	count := 0
	for _, item := range items {
		count += item.Quantity
	}

	subtotal := pricing.Subtotal(items)

	return &models.CartSnapshot{
		Items:     items,
		CartCount: count,
		Subtotal:  subtotal,
		Discount:  pricing.Discount(subtotal, st.promotion),
		Total:     pricing.Total(subtotal, st.promotion),
		Promotion: st.promotion,
		Shipping:  st.shipping,
		IsOpen:    st.isOpen,
	}
}
