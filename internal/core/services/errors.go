package services

import (
	"errors"

	"rentwise-portal/internal/adapters/marketapi"
	"rentwise-portal/internal/core/domain"
	"rentwise-portal/internal/pkg/validate"
)

// Error pairs a domain sentinel (for status mapping) with a message safe to show users
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// ErrorMessage returns the user-facing text for any service error
func ErrorMessage(err error) string {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Message
	}
	var fields validate.FieldErrors
	if errors.As(err, &fields) {
		return "Please correct the highlighted fields"
	}
	return marketapi.UserMessage(err)
}

// fromUpstream attaches the matching domain sentinel to a marketplace error.
// conflictMessage replaces the server text on 409 when set.
func fromUpstream(err error, conflictMessage string) error {
	if err == nil {
		return nil
	}
	message := marketapi.UserMessage(err)
	kind := domain.ErrUpstream
	switch {
	case errors.Is(err, marketapi.ErrUnauthorized):
		kind = domain.ErrUnauthorized
	case errors.Is(err, marketapi.ErrForbidden):
		kind = domain.ErrForbidden
	case errors.Is(err, marketapi.ErrNotFound):
		kind = domain.ErrNotFound
	case errors.Is(err, marketapi.ErrConflict):
		kind = domain.ErrConflict
		if conflictMessage != "" {
			message = conflictMessage
		}
	case errors.Is(err, marketapi.ErrValidation):
		kind = domain.ErrInvalidInput
	}
	return &Error{Kind: kind, Message: message, Err: err}
}
