package core

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures surfaced by the service.
type ErrorKind string

const (
	// KindMalformedInput: the import payload is missing required columns or
	// could not be read as CSV. Nothing was mutated.
	KindMalformedInput ErrorKind = "MALFORMED_INPUT"

	// KindUnknownKey: the region is not part of the canonical list.
	KindUnknownKey ErrorKind = "UNKNOWN_KEY"

	// KindStorageUnavailable: the durable document could not be read or written.
	KindStorageUnavailable ErrorKind = "STORAGE_UNAVAILABLE"

	// KindInvalidContact: a submitted contact failed field validation.
	KindInvalidContact ErrorKind = "INVALID_CONTACT"
)

// Sentinels for errors.Is. Any *Error of the same kind matches.
var (
	ErrMalformedInput     = &Error{Kind: KindMalformedInput}
	ErrUnknownKey         = &Error{Kind: KindUnknownKey}
	ErrStorageUnavailable = &Error{Kind: KindStorageUnavailable}
	ErrInvalidContact     = &Error{Kind: KindInvalidContact}
)

// Error is a classified service error with a human-readable message.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on kind so callers can compare against the package sentinels.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func newError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func unknownKey(key string) *Error {
	return newError(KindUnknownKey, fmt.Sprintf("unknown county %q", key), nil)
}

func storageUnavailable(op string, err error) *Error {
	return newError(KindStorageUnavailable, "storage unavailable: "+op, err)
}
