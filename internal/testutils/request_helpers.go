package testutils

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/ecoplaster/storefront/internal/api/middleware"
	"github.com/ecoplaster/storefront/internal/models"
)

const TestSessionID = "7d0f4a59-3c1e-4d8a-9b9e-2f6f1f0c1a11"

// CreateTestRequestWithContext builds a request as the middleware chain would
// hand it to a handler for a signed-in shopper.
func CreateTestRequestWithContext(method, target string, body io.Reader, userID string, pathParams map[string]string) *http.Request {
	req := CreateTestRequestWithoutContext(method, target, body, pathParams)

	claims := &models.Claims{UserID: userID, Email: "test@example.com", Phone: "9876543210"}
	ctx := context.WithValue(req.Context(), middleware.UserContextKey, claims)

	return req.WithContext(ctx)
}

// CreateTestRequestWithoutContext builds an anonymous request that still carries a session.
func CreateTestRequestWithoutContext(method, target string, body io.Reader, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.WithValue(req.Context(), middleware.LoggerKey, logger)
	ctx = middleware.WithSessionID(ctx, TestSessionID)

	return req.WithContext(ctx)
}
