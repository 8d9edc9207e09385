package validation

import (
	"errors"
	"fmt"
)

// Kind classifies a validation protocol failure.
//
// KindInvalidInput is always detected locally and never reaches the wire.
// The remaining kinds describe transport or protocol failures; a run that
// completes with failing checks is NOT an error of any kind.
type Kind string

const (
	KindInvalidInput       Kind = "invalid_input"
	KindServiceUnavailable Kind = "service_unavailable"
	KindTimeout            Kind = "timeout"
	KindNotFound           Kind = "not_found"
	KindServerError        Kind = "server_error"
)

// Error is a classified validation protocol error. Message carries the
// server-supplied text when one was present, otherwise a generic description
// of the kind.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of a classified error, or KindServerError when the
// error was never classified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindServerError
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
