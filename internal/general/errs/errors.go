// Package errs defines the error taxonomy shared by all portal services.
// Services wrap these sentinels with context; handlers map them to HTTP
// status codes with errors.Is.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrValidation marks missing or malformed input (absent pickup/dropoff,
	// unknown status value, bad email).
	ErrValidation = errors.New("validation failed")

	// ErrAuthentication marks a missing or invalid bearer token.
	ErrAuthentication = errors.New("authentication required")

	// ErrAuthorization marks a wrong role or a non-owner actor.
	ErrAuthorization = errors.New("not allowed")

	// ErrNotFound marks a missing ride/user/driver row. Ownership-scoped
	// queries that match nothing also resolve here.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a ride already claimed by a different driver.
	ErrConflict = errors.New("conflict")

	// ErrStore marks an underlying persistence failure; the store's message
	// is passed through verbatim.
	ErrStore = errors.New("store failure")
)

// Validationf wraps ErrValidation with a formatted message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}

// Conflictf wraps ErrConflict with a formatted message.
func Conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrConflict}, args...)...)
}

// NotFoundf wraps ErrNotFound with a formatted message.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrNotFound}, args...)...)
}

// Storef wraps an underlying store error, keeping its message intact.
func Storef(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrStore, err)
}

// HTTPStatus maps a taxonomy error to its HTTP status code.
// Unknown errors map to 500.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrAuthentication):
		return http.StatusUnauthorized
	case errors.Is(err, ErrAuthorization):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
