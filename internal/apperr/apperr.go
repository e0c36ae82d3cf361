// Package apperr holds the error taxonomy shared by the lookup service.
// Every failure that reaches a caller is one of three kinds.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindUnknown is reported for errors that did not come through this package.
	KindUnknown Kind = iota
	KindNotFound
	KindInvalidParameter
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidParameter:
		return "invalid_parameter"
	case KindUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

type Error struct {
	Kind       Kind
	Message    string
	Identifier string // offending token, echoed back to the caller
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(message, identifier string) *Error {
	return &Error{Kind: KindNotFound, Message: message, Identifier: identifier}
}

func Invalid(message, identifier string) *Error {
	return &Error{Kind: KindInvalidParameter, Message: message, Identifier: identifier}
}

// Unavailable wraps a storage failure.
func Unavailable(message string, err error) *Error {
	return &Error{Kind: KindUnavailable, Message: message, Err: err}
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func Is(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}
