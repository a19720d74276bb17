// Package apperrors defines the application-level error taxonomy.
// Repositories and collaborator clients wrap underlying infrastructure
// errors with these so handlers can map them to HTTP responses without
// knowing about gorm, redis or the identity provider.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks a referenced record as absent. Most callers treat
	// it as a benign default rather than a failure.
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthenticated marks a missing or rejected session token.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrMutationInFlight is returned when a second mutation of the same
	// kind is attempted while one is still running for the same user.
	ErrMutationInFlight = errors.New("a previous request is still in progress")
)

// ValidationError reports a request field that is missing or outside its
// accepted range. Validation failures never reach persistence.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// TransportError marks a collaborator (database, identity provider) as
// unreachable or rejecting the call. It is retryable by the user.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError wraps err as a TransportError for operation op.
func NewTransportError(op string, err error) error {
	return &TransportError{Op: op, Err: err}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsTransport reports whether err is a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
