package errors

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("access denied")
	ErrInvalidID          = errors.New("invalid identifier")

	ErrInvalidTotal    = errors.New("order total must be greater than zero and below 100000000")
	ErrEmptyOrder      = errors.New("order must contain at least one product")
	ErrInvalidProduct  = errors.New("invalid product reference")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrMissingColor    = errors.New("missing color")

	// ErrIntegrity reports a constraint violation detected by the store at commit time.
	ErrIntegrity = errors.New("referential integrity violation")

	ErrMissingEmail   = errors.New("order owner has no email address")
	ErrDispatchFailed = errors.New("delivery note dispatch failed")
)

// LineError pins a validation failure to a 1-based position in the submitted lines.
type LineError struct {
	Line   int
	Reason error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Reason)
}

func (e *LineError) Unwrap() error {
	return e.Reason
}
