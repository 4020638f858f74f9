package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ecoplaster/storefront/internal/errors"
	"github.com/ecoplaster/storefront/internal/models"
	"github.com/ecoplaster/storefront/internal/utils/response"
	"github.com/ecoplaster/storefront/pkg/graphql"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey uuid.UUID

var UserContextKey = contextKey(uuid.New())

type AuthMiddleware struct {
	jwtKey []byte
}

func NewAuthMiddleware(jwtKey []byte) *AuthMiddleware {

	return &AuthMiddleware{jwtKey: jwtKey}

}

// UserFromContext returns the signed-in shopper, if any.
func UserFromContext(ctx context.Context) (*models.Claims, bool) {
	claims, ok := ctx.Value(UserContextKey).(*models.Claims)

	return claims, ok && claims != nil
}

// Authenticate rejects requests without a valid bearer token.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		authHeader := r.Header.Get("Authorization")

		if authHeader == "" {
			logger.Warn("Missing authorization header")
			response.Error(w, errors.UnauthorizedError("Authorization header is required"))
			return
		}

		claims, tokenString, err := m.parse(r.Context(), authHeader)
		if err != nil {
			response.Error(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(m.withUser(r.Context(), claims, tokenString)))
	}
}

// OptionalAuthenticate attaches the shopper when a valid token is sent and
// lets anonymous requests through. An invalid token is still rejected.
func (m *AuthMiddleware) OptionalAuthenticate(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, tokenString, err := m.parse(r.Context(), authHeader)
		if err != nil {
			response.Error(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(m.withUser(r.Context(), claims, tokenString)))
	}
}

func (m *AuthMiddleware) parse(ctx context.Context, authHeader string) (*models.Claims, string, error) {
	logger := LoggerFromContext(ctx)

	// Token is of format : "Bearer <token>"
	tokenParts := strings.Split(authHeader, " ")

	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		logger.Warn("Invalid authorization header format")
		return nil, "", errors.UnauthorizedError("Invalid authorization format")
	}

	tokenString := tokenParts[1]

	claims := &models.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			logger.Error("Unexpected signing method used in JWT", slog.Any("alg", t.Header["alg"]))
			return nil, errors.BadRequestError("unexpected signing method")
		}
		return m.jwtKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		logger.Warn("JWT parsing failed", slog.String("error", err.Error()))
		return nil, "", errors.UnauthorizedError("Invalid or expired token")
	}

	if !token.Valid {
		logger.Warn("Invalid token")
		return nil, "", errors.UnauthorizedError("Invalid token")
	}

	if claims.UserID == "" {
		logger.Warn("Token without user id")
		return nil, "", errors.UnauthorizedError("Invalid token")
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(time.Now()) {
		logger.Warn("Expired token", slog.String("userId", claims.UserID))
		return nil, "", errors.UnauthorizedError("Token expired")
	}

	return claims, tokenString, nil
}

// withUser stores the claims, forwards the token to the storefront API and tags the logger.
func (m *AuthMiddleware) withUser(ctx context.Context, claims *models.Claims, tokenString string) context.Context {
	ctx = context.WithValue(ctx, UserContextKey, claims)
	ctx = graphql.ContextWithToken(ctx, tokenString)

	requestScopedLogger := LoggerFromContext(ctx).With(slog.String("userId", claims.UserID))
	requestScopedLogger.Info("User authenticated")

	return WithLogger(ctx, requestScopedLogger)
}
