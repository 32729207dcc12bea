package domain

import "errors"

// Common domain errors
var (
	ErrNotFound      = errors.New("resource not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")
	ErrUnknownRole   = errors.New("unknown role")
	ErrUnknownStatus = errors.New("unknown status")
	ErrUpstream      = errors.New("marketplace unavailable")
)

// Workflow errors
var (
	// ErrActionNotAllowed means the action is not enabled for the item's current status.
	// No request is sent to the marketplace API when it is returned.
	ErrActionNotAllowed = errors.New("action not allowed in current status")
	ErrInvalidFrequency = errors.New("invalid payment frequency")
	ErrInvalidInstalls  = errors.New("invalid installment count")
)
