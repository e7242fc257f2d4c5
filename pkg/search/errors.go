package search

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed caller input: a query under two characters
// or a non-positive limit. It is detected before any store access and is never
// retried automatically.
type ValidationError struct {
	// Field is the input that failed validation (e.g. "query", "limit").
	Field string

	// Reason is a short human-readable explanation.
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// StoreError reports a record-store failure. It propagates unchanged to the
// caller: a store failure yields a total search failure, never a partial
// ranked list.
type StoreError struct {
	// Op is the store operation that failed (e.g. "query").
	Op string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return fmt.Sprintf("record store %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsStoreError reports whether err is (or wraps) a StoreError.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
