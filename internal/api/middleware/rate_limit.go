package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ecoplaster/storefront/internal/errors"
	"github.com/ecoplaster/storefront/internal/utils/response"
)

type RateLimiter interface {
	// Returns isAllowed, attempts left, seconds to wait, error
	Allow(ctx context.Context, key string) (bool, int, int, error)
}

// RateLimit bounds how often one session may hit the wrapped route.
// Requests pass through when the limiter itself fails.
func RateLimit(limiter RateLimiter, scope string) func(http.Handler) http.HandlerFunc {
	return func(next http.Handler) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			logger := LoggerFromContext(r.Context())

			sessionID := SessionIDFromContext(r.Context())
			if sessionID == "" {
				next.ServeHTTP(w, r)
				return
			}

			allowed, remaining, retryAfter, err := limiter.Allow(r.Context(), scope+":"+sessionID)
			if err != nil {
				logger.Error("Rate limit check failed, allowing request", slog.String("scope", scope), slog.Any("error", err))
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				response.Error(w, errors.TooManyRequestsError(fmt.Sprintf("Too many attempts. Try again in %d seconds.", retryAfter)))
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			next.ServeHTTP(w, r)
		}
	}
}
