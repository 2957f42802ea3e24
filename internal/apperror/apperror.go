// Package apperror classifies failures so the HTTP layer can map them to a
// status code and a client-safe message.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Type string

const (
	TypeValidation   Type = "validation"
	TypeUnauthorized Type = "unauthorized"
	TypeNotFound     Type = "not_found"
	TypeConflict     Type = "conflict"
	TypeRateLimited  Type = "rate_limited"
	TypeUnavailable  Type = "unavailable"
	TypeExternal     Type = "external"
	TypeInternal     Type = "internal"
)

type Error struct {
	Type    Type
	Message string
	Cause   error

	// Rule and Fields are set for validation failures.
	Rule   string
	Fields []string
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// HTTPStatus maps the error type to a status code. Conflicts are reported as
// 400 because clients of this API treat a duplicate email as a bad request.
func (e *Error) HTTPStatus() int {
	switch e.Type {
	case TypeValidation, TypeConflict:
		return http.StatusBadRequest
	case TypeUnauthorized:
		return http.StatusUnauthorized
	case TypeNotFound:
		return http.StatusNotFound
	case TypeRateLimited:
		return http.StatusTooManyRequests
	case TypeUnavailable:
		return http.StatusServiceUnavailable
	case TypeExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ClientMessage hides the detail of server-side failures.
func (e *Error) ClientMessage() string {
	if e.Type == TypeInternal {
		return "Internal server error"
	}
	return e.Message
}

func Validation(message string) *Error {
	return &Error{Type: TypeValidation, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Type: TypeUnauthorized, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Type: TypeNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Type: TypeConflict, Message: message}
}

func RateLimited(message string) *Error {
	return &Error{Type: TypeRateLimited, Message: message}
}

func Unavailable(message string) *Error {
	return &Error{Type: TypeUnavailable, Message: message}
}

func External(message string, cause error) *Error {
	return &Error{Type: TypeExternal, Message: message, Cause: cause}
}

func Internal(message string, cause error) *Error {
	return &Error{Type: TypeInternal, Message: message, Cause: cause}
}

// From returns err as an *Error, wrapping unknown errors as internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("unexpected error", err)
}

func IsType(err error, t Type) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Type == t
}
