package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ecoplaster/storefront/internal/api/middleware"
	appErrors "github.com/ecoplaster/storefront/internal/errors"
	"github.com/ecoplaster/storefront/internal/utils/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLimiter struct {
	allowed    bool
	remaining  int
	retryAfter int
	err        error
	keys       []string
}

func (s *stubLimiter) Allow(_ context.Context, key string) (bool, int, int, error) {
	s.keys = append(s.keys, key)

	return s.allowed, s.remaining, s.retryAfter, s.err
}

func TestRateLimit(t *testing.T) {
	reached := func(called *bool) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*called = true
			w.WriteHeader(http.StatusOK)
		})
	}

	withSession := func(sessionID string) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/promotions", nil)

		return req.WithContext(middleware.WithSessionID(req.Context(), sessionID))
	}

	t.Run("Allowed request passes through", func(t *testing.T) {
		// Arrange
		limiter := &stubLimiter{allowed: true, remaining: 4}
		called := false
		rr := httptest.NewRecorder()

		// Act
		middleware.RateLimit(limiter, "promotion")(reached(&called)).ServeHTTP(rr, withSession("sess-1"))

		// Assert
		assert.True(t, called)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "4", rr.Header().Get("X-RateLimit-Remaining"))
		assert.Equal(t, []string{"promotion:sess-1"}, limiter.keys)
	})

	t.Run("Exceeded limit is rejected", func(t *testing.T) {
		// Arrange
		limiter := &stubLimiter{allowed: false, retryAfter: 42}
		called := false
		rr := httptest.NewRecorder()

		// Act
		middleware.RateLimit(limiter, "promotion")(reached(&called)).ServeHTTP(rr, withSession("sess-1"))

		// Assert
		assert.False(t, called)
		assert.Equal(t, http.StatusTooManyRequests, rr.Code)
		assert.Equal(t, "42", rr.Header().Get("Retry-After"))

		var body response.APIResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		require.NotNil(t, body.Error)
		assert.Equal(t, appErrors.ErrCodeTooManyRequests, body.Error.Code)
	})

	t.Run("Limiter failure lets the request through", func(t *testing.T) {
		limiter := &stubLimiter{err: errors.New("redis down")}
		called := false
		rr := httptest.NewRecorder()

		middleware.RateLimit(limiter, "promotion")(reached(&called)).ServeHTTP(rr, withSession("sess-1"))

		assert.True(t, called)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("No session skips the limiter", func(t *testing.T) {
		limiter := &stubLimiter{}
		called := false
		rr := httptest.NewRecorder()

		middleware.RateLimit(limiter, "promotion")(reached(&called)).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", nil))

		assert.True(t, called)
		assert.Empty(t, limiter.keys)
	})
}
