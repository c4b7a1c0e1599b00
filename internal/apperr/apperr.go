// Package apperr defines the stable error classes returned by the fund tracker.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a machine-readable error class with a human message.
type Error struct {
	Code    string
	Message string
	Status  int
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches any *Error carrying the same Code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Code == t.Code
}

// WithMessage returns a new Error with the same class and a specific message.
func (e *Error) WithMessage(msg string) *Error {
	return &Error{Code: e.Code, Message: msg, Status: e.Status}
}

// WithMessagef returns a new Error with a formatted message.
func (e *Error) WithMessagef(format string, args ...any) *Error {
	return e.WithMessage(fmt.Sprintf(format, args...))
}

var (
	ErrValidation        = &Error{Code: "E_VALIDATION", Status: http.StatusBadRequest}
	ErrNotFound          = &Error{Code: "E_NOT_FOUND", Status: http.StatusNotFound}
	ErrInvalidTransition = &Error{Code: "E_INVALID_TRANSITION", Status: http.StatusConflict}
	ErrInsufficientFunds = &Error{Code: "E_INSUFFICIENT_FUNDS", Status: http.StatusConflict}
	ErrConflict          = &Error{Code: "E_CONFLICT", Status: http.StatusConflict}
	ErrStorage           = &Error{Code: "E_STORAGE", Status: http.StatusInternalServerError}
	ErrUnauthorized      = &Error{Code: "E_UNAUTHORIZED", Status: http.StatusUnauthorized}
	ErrForbidden         = &Error{Code: "E_FORBIDDEN", Status: http.StatusForbidden}
	ErrRateLimited       = &Error{Code: "E_RATE_LIMITED", Status: http.StatusTooManyRequests}
)

// Storage wraps an underlying persistence failure. The cause is kept for logging
// but never shown to callers.
func Storage(cause error) error {
	if cause == nil {
		return nil
	}
	var ae *Error
	if errors.As(cause, &ae) {
		return cause
	}
	return &storageError{cause: cause}
}

type storageError struct {
	cause error
}

func (e *storageError) Error() string { return "E_STORAGE: " + e.cause.Error() }
func (e *storageError) Unwrap() error { return e.cause }
func (e *storageError) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == ErrStorage.Code
}

// From classifies any error into an *Error suitable for a response.
// Unclassified errors become a generic storage failure.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return ErrStorage.WithMessage("internal server error")
}
