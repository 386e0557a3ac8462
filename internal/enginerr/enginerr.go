// Package enginerr defines the typed errors surfaced by the generation
// engine. Every failure carries a stable Kind so front ends can render
// an actionable message without string matching.
package enginerr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	// Definition errors: caller-configuration mistakes, never retried.
	KindDuplicateSchema Kind = "duplicate_schema"
	KindUnknownSchema   Kind = "unknown_schema"
	KindInvalidRange    Kind = "invalid_range"
	KindEmptyEnum       Kind = "empty_enum"

	// Request errors: correctable by the caller, not retryable as-is.
	KindRequestTooLarge   Kind = "request_too_large"
	KindInvalidCount      Kind = "invalid_count"
	KindUnsupportedFormat Kind = "unsupported_format"
	KindAmbiguousRequest  Kind = "ambiguous_request"
	KindUnknownEntity     Kind = "unknown_entity"

	// Safety errors: a defect in schema wiring, abort the whole batch.
	KindUnsafeIdentifier Kind = "unsafe_identifier"
)

type Class string

const (
	ClassDefinition Class = "definition"
	ClassRequest    Class = "request"
	ClassSafety     Class = "safety"
)

func (k Kind) Class() Class {
	switch k {
	case KindDuplicateSchema, KindUnknownSchema, KindInvalidRange, KindEmptyEnum:
		return ClassDefinition
	case KindUnsafeIdentifier:
		return ClassSafety
	default:
		return ClassRequest
	}
}

type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(err error, kind Kind, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: message, Cause: err}
}

// KindOf returns the Kind of err if it is (or wraps) an engine error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
