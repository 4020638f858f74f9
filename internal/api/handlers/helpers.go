package handlers

import (
	"net/http"

	"github.com/ecoplaster/storefront/internal/api/middleware"
	"github.com/ecoplaster/storefront/internal/errors"
	"github.com/ecoplaster/storefront/internal/models"
	"github.com/ecoplaster/storefront/internal/utils/response"
)

// sessionID reads the session the Session middleware attached, writing an error when absent.
func sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := middleware.SessionIDFromContext(r.Context())
	if id == "" {
		middleware.LoggerFromContext(r.Context()).Warn("Request without storefront session")
		response.Error(w, errors.BadRequestError("Session is required"))
		return "", false
	}

	return id, true
}

func requireUser(w http.ResponseWriter, r *http.Request) (*models.Claims, bool) {
	claims, ok := middleware.UserFromContext(r.Context())
	if !ok {
		middleware.LoggerFromContext(r.Context()).Warn("Unauthorized request")
		response.Error(w, errors.UnauthorizedError("Authentication required"))
		return nil, false
	}

	return claims, true
}
