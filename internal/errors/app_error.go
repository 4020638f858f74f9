package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

type AppError struct {
	Code       string
	Message    string
	Detail     string
	Details    []string
	StatusCode int
	Err        error

	// Redirect is the storefront path the browser should be sent to, after RedirectAfter.
	Redirect      string
	RedirectAfter time.Duration
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail

	return e
}

func (e *AppError) WithDetails(details []string) *AppError {
	e.Details = details

	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err

	return e
}

func (e *AppError) WithRedirect(path string, after time.Duration) *AppError {
	e.Redirect = path
	e.RedirectAfter = after

	return e
}

const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeAuthRequired       = "AUTH_REQUIRED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeConflict           = "CONFLICT"
	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeStorageError       = "STORAGE_ERROR"
	ErrCodeRemoteRejected     = "REMOTE_REJECTED"
	ErrCodeNetwork            = "NETWORK_ERROR"
	ErrCodeThirdPartyError    = "THIRD_PARTY_ERROR"
	ErrCodePaymentFailed      = "PAYMENT_FAILED"
	ErrCodeVerificationFailed = "VERIFICATION_FAILED"
	ErrCodeIntentExpired      = "PAYMENT_INTENT_EXPIRED"
	ErrCodeGatewayUnavailable = "GATEWAY_UNAVAILABLE"
	ErrCodeTooManyRequests    = "TOO_MANY_REQUESTS"
)

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, http.StatusBadRequest)
}

func BadRequestError(message string) *AppError {
	return NewAppError(ErrCodeBadRequest, message, http.StatusBadRequest)
}

func NotFoundError(message string) *AppError {
	return NewAppError(ErrCodeNotFound, message, http.StatusNotFound)
}

func UnauthorizedError(message string) *AppError {
	return NewAppError(ErrCodeUnauthorized, message, http.StatusUnauthorized)
}

func AuthRequiredError(message string) *AppError {
	return NewAppError(ErrCodeAuthRequired, message, http.StatusUnauthorized)
}

func ForbiddenError(message string) *AppError {
	return NewAppError(ErrCodeForbidden, message, http.StatusForbidden)
}

func ConflictError(message string) *AppError {
	return NewAppError(ErrCodeConflict, message, http.StatusConflict)
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternal, message, http.StatusInternalServerError)
}

func StorageError(message string) *AppError {
	return NewAppError(ErrCodeStorageError, message, http.StatusInternalServerError)
}

// RemoteRejectedError carries a structured rejection returned by the storefront API.
func RemoteRejectedError(message string) *AppError {
	return NewAppError(ErrCodeRemoteRejected, message, http.StatusUnprocessableEntity)
}

func NetworkError(message string) *AppError {
	return NewAppError(ErrCodeNetwork, message, http.StatusBadGateway)
}

func ThirdPartyError(message string) *AppError {
	return NewAppError(ErrCodeThirdPartyError, message, http.StatusBadGateway)
}

func PaymentFailedError(message string) *AppError {
	return NewAppError(ErrCodePaymentFailed, message, http.StatusPaymentRequired)
}

func VerificationFailedError(message string) *AppError {
	return NewAppError(ErrCodeVerificationFailed, message, http.StatusPaymentRequired)
}

func IntentExpiredError(message string) *AppError {
	return NewAppError(ErrCodeIntentExpired, message, http.StatusGone)
}

func GatewayUnavailableError(message string) *AppError {
	return NewAppError(ErrCodeGatewayUnavailable, message, http.StatusServiceUnavailable)
}

func TooManyRequestsError(message string) *AppError {
	return NewAppError(ErrCodeTooManyRequests, message, http.StatusTooManyRequests)
}

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}

// field validation error.
func AddValidationError(field, reason string) *AppError {
	return ValidationError(fmt.Sprintf("Invalid field '%s': %s", field, reason))
}
