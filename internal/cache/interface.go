package cache

import (
	"context"
	"time"
)

// Cache is the session-scoped durable store behind the cart and checkout drafts.
type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// WriteAll applies the writes together: either all of them land or none do.
	WriteAll(ctx context.Context, writes []Write) error
	Close() error
}

// Write is one key change in a WriteAll batch.
type Write struct {
	Key    string
	Value  any
	TTL    time.Duration
	Delete bool
}

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

const (
	CartKeyPrefix            = "cart"
	ShippingKeyPrefix        = "shipping"
	PromotionKeyPrefix       = "promotion"
	LastOrderKeyPrefix       = "last_order"
	PendingCheckoutKeyPrefix = "pending_checkout"
)
