package marketapi

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinels matched through errors.Is on an *APIError
var (
	ErrUnauthorized = errors.New("marketplace: unauthorized")
	ErrForbidden    = errors.New("marketplace: forbidden")
	ErrNotFound     = errors.New("marketplace: not found")
	ErrConflict     = errors.New("marketplace: conflict")
	ErrValidation   = errors.New("marketplace: rejected input")
	ErrUnavailable  = errors.New("marketplace: unavailable")
)

// APIError is returned for every failed marketplace call. Message is safe to show to
// users: it is the server's own message when it sent one, otherwise a fixed text for
// the operation.
type APIError struct {
	Op         string
	StatusCode int // 0 for transport failures
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.StatusCode)
}

func (e *APIError) Unwrap() error { return e.Err }

// Is maps status codes onto the package sentinels
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrConflict:
		return e.StatusCode == http.StatusConflict
	case ErrValidation:
		return e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusUnprocessableEntity
	case ErrUnavailable:
		return e.StatusCode == 0 || e.StatusCode >= http.StatusInternalServerError
	}
	return false
}

// UserMessage extracts the display message from any error a client call returned
func UserMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "Something went wrong, please try again"
}
