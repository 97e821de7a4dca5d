// Package apperr defines the error taxonomy returned to API clients.
//
// Stores return sentinel errors; handlers wrap them in an *Error whose Kind
// decides the HTTP status. Anything that is not an *Error is Internal.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for the client.
type Kind int

const (
	Internal Kind = iota
	Validation
	NotFound
	Conflict
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Status maps a Kind to its HTTP status code.
// Conflicts are client-side precondition failures and answer 400.
func (k Kind) Status() int {
	switch k {
	case Validation, Conflict:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified error with a client-facing message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func newf(k Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: k, Message: fmt.Sprintf(format, args...), Err: err}
}

// Validationf reports missing or malformed input.
func Validationf(format string, args ...any) *Error {
	return newf(Validation, nil, format, args...)
}

// NotFoundf reports a referenced entity that does not exist.
func NotFoundf(format string, args ...any) *Error {
	return newf(NotFound, nil, format, args...)
}

// Conflictf reports a violated state precondition.
func Conflictf(format string, args ...any) *Error {
	return newf(Conflict, nil, format, args...)
}

// Wrap classifies err under kind with a client-facing message.
func Wrap(kind Kind, err error, msg string) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// Internalf wraps an unexpected failure. The message is for logs; clients
// get a generic text.
func Internalf(err error, format string, args ...any) *Error {
	return newf(Internal, err, format, args...)
}

// KindOf returns the Kind of err, or Internal when err is unclassified.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return Internal
}

// Message returns the client-facing message for err.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Kind != Internal {
		return ae.Message
	}
	return "internal server error"
}
