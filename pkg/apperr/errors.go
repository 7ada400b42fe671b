// Package apperr carries the HTTP-facing error kinds returned by usecases.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrBadRequest      = errors.New("bad request")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrPaymentRequired = errors.New("payment required")

	// ErrInternal is a server failure whose message is still safe to show.
	ErrInternal = errors.New("internal")
)

// Error pairs a kind with the message shown to the client.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func New(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func BadRequest(format string, args ...any) error {
	return New(ErrBadRequest, format, args...)
}

func Unauthorized(format string, args ...any) error {
	return New(ErrUnauthorized, format, args...)
}

func Forbidden(format string, args ...any) error {
	return New(ErrForbidden, format, args...)
}

func NotFound(format string, args ...any) error {
	return New(ErrNotFound, format, args...)
}

func Conflict(format string, args ...any) error {
	return New(ErrConflict, format, args...)
}

func PaymentRequired(format string, args ...any) error {
	return New(ErrPaymentRequired, format, args...)
}

func Internal(format string, args ...any) error {
	return New(ErrInternal, format, args...)
}
