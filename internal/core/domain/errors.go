package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure the system reports to a client.
type ErrorKind int

const (
	KindInvalidRequest ErrorKind = iota
	KindAccountNotFound
	KindItemNotFound
	KindOrderNotFound
	KindInsufficientStock
	KindUnavailable
	KindInternal
)

// Error is the single error type that crosses service boundaries. Failures
// from dependencies are converted to one of the kinds above at the point of
// detection; nothing else propagates.
type Error struct {
	Kind    ErrorKind
	Service string // dependency name, set for KindUnavailable
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches by kind so wrapped and parameterized errors compare equal to
// the package sentinels.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// Retryable reports whether retrying the same request could succeed without
// the client changing anything. Only transport-level faults qualify;
// business-rule rejections never do.
func (e *Error) Retryable() bool { return e.Kind == KindUnavailable }

var (
	ErrAccountNotFound   = &Error{Kind: KindAccountNotFound, Message: "account not found"}
	ErrItemNotFound      = &Error{Kind: KindItemNotFound, Message: "item not found"}
	ErrOrderNotFound     = &Error{Kind: KindOrderNotFound, Message: "order not found"}
	ErrInsufficientStock = &Error{Kind: KindInsufficientStock, Message: "insufficient stock"}
)

// InvalidRequest marks malformed client input, detected before any network call.
func InvalidRequest(msg string) *Error {
	return &Error{Kind: KindInvalidRequest, Message: msg}
}

// Unavailable marks a transport failure or timeout talking to a dependency.
func Unavailable(service string, cause error) *Error {
	return &Error{
		Kind:    KindUnavailable,
		Service: service,
		Message: fmt.Sprintf("%s service unavailable", service),
		Cause:   cause,
	}
}

// Internal marks a local storage fault.
func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", Cause: cause}
}

// KindOf extracts the taxonomy kind, defaulting to KindInternal for errors
// that were not converted at a boundary.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
