// Package common defines shared constants and sentinel errors used across
// the server, transport and client layers of gophauth. Callers should use
// errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Account flow errors.
	ErrInvalidFormat      = errors.New("invalid format")
	ErrAlreadyExists      = errors.New("user already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrAccountNotFound    = errors.New("user not found for token")
	ErrInactiveAccount    = errors.New("cannot login inactive user")
	ErrPersistenceFailure = errors.New("persistence failure")
)

// FormatError reports which input field failed its configured pattern.
// It matches ErrInvalidFormat under errors.Is.
type FormatError struct {
	Field string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s format", e.Field)
}

func (e *FormatError) Is(target error) bool {
	return target == ErrInvalidFormat
}

// InvalidFormat returns a FormatError for the named field.
func InvalidFormat(field string) error {
	return &FormatError{Field: field}
}
