package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

type sessionContextKey struct{}

// Session binds every request to a storefront session id kept in a cookie.
// The id scopes the cart, the checkout draft and the payment flow.
type Session struct {
	cookieName string
	secure     bool
}

func NewSession(cookieName string, secure bool) *Session {
	return &Session{cookieName: cookieName, secure: secure}
}

func (s *Session) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := ""
		if cookie, err := r.Cookie(s.cookieName); err == nil {
			if _, err := uuid.Parse(cookie.Value); err == nil {
				sessionID = cookie.Value
			}
		}

		if sessionID == "" {
			sessionID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     s.cookieName,
				Value:    sessionID,
				Path:     "/",
				HttpOnly: true,
				Secure:   s.secure,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), sessionContextKey{}, sessionID)
		ctx = WithLogger(ctx, LoggerFromContext(ctx).With(slog.String("sessionId", sessionID)))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithSessionID returns ctx carrying sessionID.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sessionID)
}

func SessionIDFromContext(ctx context.Context) string {
	sessionID, _ := ctx.Value(sessionContextKey{}).(string)

	return sessionID
}
