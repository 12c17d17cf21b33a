package api

import (
	"errors"
	"net/http"
)

// Error is the normalized failure for one round trip.
// HTTP failures carry the status code and a best-effort message extracted
// from the response body. Timeouts and network failures carry no status;
// Timeout distinguishes a deadline hit from an unreachable server.
type Error struct {
	Status  int
	Message string
	Timeout bool
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// IsAuthError reports whether err is an HTTP 401 or 403 response.
// Session teardown hangs off this check.
func IsAuthError(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden
}

// IsTimeout reports whether err is a timeout-class failure.
func IsTimeout(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Timeout
}

// IsNotFound reports whether err is an HTTP 404 response.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}
