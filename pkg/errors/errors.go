package sle_errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrConflict           = errors.New("conflict")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrRateLimited        = errors.New("rate limited")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrAlreadyExists      = errors.New("already exists")
)

// Invalid wraps ErrInvalidInput with a detail message. Callers still match
// with errors.Is(err, ErrInvalidInput).
func Invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// Transition wraps ErrInvalidTransition with the offending from/to pair.
func Transition(from, to string) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

// Unavailable wraps ErrServiceUnavailable around a storage error.
func Unavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
}
