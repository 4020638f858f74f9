package utils

import (
	"context"
	"time"
)

// DefaultSettleWait bounds how long a payment callback request waits for its attempt to settle.
const DefaultSettleWait = 45 * time.Second

func WithSettleTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, DefaultSettleWait)
}
