package cart

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/ecoplaster/storefront/internal/cache"
	"github.com/ecoplaster/storefront/internal/metrics"
)

// Registry keeps one live Store per storefront session.
type Registry struct {
	mu      sync.Mutex
	cache   cache.Cache
	idleTTL time.Duration
	stores  map[string]*Store
	onEvict []func(sessionID string)
}

func NewRegistry(c cache.Cache, idleTTL time.Duration) *Registry {
	return &Registry{
		cache:   c,
		idleTTL: idleTTL,
		stores:  make(map[string]*Store),
	}
}

// Open returns the session's store, hydrating it on first use.
func (r *Registry) Open(ctx context.Context, sessionID string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	if store, ok := r.stores[sessionID]; ok {
		return store
	}

	store := NewStore(r.cache, sessionID)
	store.Hydrate(ctx)
	r.stores[sessionID] = store

	return store
}

// OnEvict registers fn to run for every session Sweep evicts.
func (r *Registry) OnEvict(fn func(sessionID string)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.onEvict = append(r.onEvict, fn)
}

// Sweep disposes stores idle for longer than the idle TTL and returns how many went.
func (r *Registry) Sweep(now time.Time) int {
	r.mu.Lock()

	var evicted []string

	for id, store := range r.stores {
		if now.Sub(store.idleSince()) < r.idleTTL {
			continue
		}

		store.Dispose()
		delete(r.stores, id)
		evicted = append(evicted, id)
	}

	live := len(r.stores)
	listeners := slices.Clone(r.onEvict)
	r.mu.Unlock()

	for _, id := range evicted {
		for _, fn := range listeners {
			fn(id)
		}
	}

	if len(evicted) > 0 {
		slog.Debug("Evicted idle cart stores", slog.Int("count", len(evicted)), slog.Int("live", live))
	}

	return len(evicted)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.stores)
}

// Run sweeps on every tick until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			r.Sweep(now)
			metrics.SetLiveCarts(r.Len())
		}
	}
}
