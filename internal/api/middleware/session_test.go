package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ecoplaster/storefront/internal/api/middleware"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession(t *testing.T) {
	sessions := middleware.NewSession("ecoplaster_session", true)

	capture := func(got *string) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*got = middleware.SessionIDFromContext(r.Context())
		})
	}

	t.Run("New visitor gets a cookie", func(t *testing.T) {
		// Arrange
		var sessionID string
		rr := httptest.NewRecorder()

		// Act
		sessions.Handler(capture(&sessionID)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

		// Assert
		_, err := uuid.Parse(sessionID)
		require.NoError(t, err)

		cookies := rr.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "ecoplaster_session", cookies[0].Name)
		assert.Equal(t, sessionID, cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
		assert.True(t, cookies[0].Secure)
	})

	t.Run("Existing cookie is reused", func(t *testing.T) {
		var sessionID string
		existing := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
		req.AddCookie(&http.Cookie{Name: "ecoplaster_session", Value: existing})
		rr := httptest.NewRecorder()

		sessions.Handler(capture(&sessionID)).ServeHTTP(rr, req)

		assert.Equal(t, existing, sessionID)
		assert.Empty(t, rr.Result().Cookies())
	})

	t.Run("Tampered cookie is replaced", func(t *testing.T) {
		var sessionID string
		req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
		req.AddCookie(&http.Cookie{Name: "ecoplaster_session", Value: "../../etc"})

		sessions.Handler(capture(&sessionID)).ServeHTTP(httptest.NewRecorder(), req)

		assert.NotEqual(t, "../../etc", sessionID)
		_, err := uuid.Parse(sessionID)
		assert.NoError(t, err)
	})
}

func TestLogging(t *testing.T) {
	// Arrange
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotNil(t, middleware.LoggerFromContext(r.Context()))
		w.WriteHeader(http.StatusTeapot)
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rr := httptest.NewRecorder()

	// Act
	middleware.Logging(next).ServeHTTP(rr, req)

	// Assert
	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.Equal(t, "req-123", rr.Header().Get("X-Request-ID"))
}
