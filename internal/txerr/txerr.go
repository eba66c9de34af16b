// Package txerr defines the fatal and query-level error taxonomy shared
// across the schedule loader, graph builder, and query engine.
package txerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies an error without tying callers to a concrete type.
type Kind string

const (
	IoFailure         Kind = "IoFailure"
	SchemaMismatch    Kind = "SchemaMismatch"
	MalformedTime     Kind = "MalformedTime"
	MalformedDate     Kind = "MalformedDate"
	MalformedNumber   Kind = "MalformedNumber"
	MalformedBool     Kind = "MalformedBool"
	DanglingReference Kind = "DanglingReference"
	ScheduleConflict  Kind = "ScheduleConflict"
	NotFinalized      Kind = "NotFinalized"
	UnknownStop       Kind = "UnknownStop"
	NoDeparture       Kind = "NoDeparture"
)

// Error is a kinded error that still participates in errors.Is/As and
// carries a stack trace via github.com/pkg/errors.
type Error struct {
	kind  Kind
	cause error
}

func (e *Error) Error() string {
	if e.cause == nil {
		return string(e.kind)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.cause)
}

func (e *Error) Unwrap() error { return e.cause }

// KindOf reports the taxonomy bucket of err, or "" if err is not one of ours.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return ""
}

// Is lets errors.Is(err, txerr.New(Kind, nil)) match any Error of that Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.kind == e.kind
}

// New builds a Kind-tagged error, wrapping cause with a stack trace when
// cause is non-nil so logs retain the original call site.
func New(kind Kind, cause error) *Error {
	if cause != nil {
		cause = errors.WithStack(cause)
	}
	return &Error{kind: kind, cause: cause}
}

// Newf is New with a formatted message as the cause.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return New(kind, errors.Errorf(format, args...))
}

// Wrapf wraps err under kind with additional context, preserving the
// pkg/errors stack trace the way tidbyt-gtfs/parse wraps row-level errors.
func Wrapf(kind Kind, err error, format string, args ...interface{}) *Error {
	if err == nil {
		return nil
	}
	return &Error{kind: kind, cause: errors.Wrapf(err, format, args...)}
}

// Sentinel helpers for the query-level kinds that callers commonly switch on.
var (
	ErrNotFinalized = New(NotFinalized, nil)
	ErrUnknownStop  = New(UnknownStop, nil)
	ErrNoDeparture  = New(NoDeparture, nil)
)
