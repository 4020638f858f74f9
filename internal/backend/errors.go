package backend

import (
	"errors"

	appErrors "github.com/ecoplaster/storefront/internal/errors"
	"github.com/ecoplaster/storefront/pkg/graphql"
)

const NetworkErrorMessage = "Network error. Please check your connection and try again."

// Translate turns a Backend error into the message a shopper sees: the first
// structured API error, else a network message, else the error's own text.
func Translate(err error) *appErrors.AppError {
	if err == nil {
		return nil
	}

	if appErr, ok := appErrors.IsAppError(err); ok {
		return appErr
	}

	var remoteErr *graphql.RemoteError
	if errors.As(err, &remoteErr) {
		if msg := remoteErr.FirstMessage(); msg != "" {
			return appErrors.RemoteRejectedError(msg).WithError(err)
		}
	}

	var netErr *graphql.NetworkError
	if errors.As(err, &netErr) {
		return appErrors.NetworkError(NetworkErrorMessage).WithError(err)
	}

	if errors.Is(err, ErrNotFound) {
		return appErrors.NotFoundError(err.Error()).WithError(err)
	}

	return appErrors.ThirdPartyError(err.Error()).WithError(err)
}
