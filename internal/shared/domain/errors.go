package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies engine failures for callers and the API layer.
type ErrorKind string

const (
	// KindNotFound indicates a referenced session, contract, tutor, or
	// request does not exist.
	KindNotFound ErrorKind = "not_found"
	// KindUnauthorized indicates the acting party does not own the resource.
	KindUnauthorized ErrorKind = "unauthorized"
	// KindInvalidArgument indicates malformed input.
	KindInvalidArgument ErrorKind = "invalid_argument"
	// KindInvalidState indicates a business-rule violation.
	KindInvalidState ErrorKind = "invalid_state"
)

// Error is a classified engine error with a stable, caller-facing message.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is makes two classified errors equal when kind and message match, so
// package-level sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	var other *Error
	if !errors.As(target, &other) {
		return false
	}
	return e.Kind == other.Kind && e.Message == other.Message
}

// NotFoundError creates a NotFound error.
func NotFoundError(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// UnauthorizedError creates an Unauthorized error.
func UnauthorizedError(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// InvalidArgumentError creates an InvalidArgument error.
func InvalidArgumentError(message string) *Error {
	return &Error{Kind: KindInvalidArgument, Message: message}
}

// InvalidArgumentErrorf creates an InvalidArgument error with a formatted message.
func InvalidArgumentErrorf(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// InvalidStateError creates an InvalidState error.
func InvalidStateError(message string) *Error {
	return &Error{Kind: KindInvalidState, Message: message}
}

// InvalidStateErrorf creates an InvalidState error with a formatted message.
func InvalidStateErrorf(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the classification of err, or an empty kind for
// unclassified errors (persistence failures and the like).
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
