package lockerr

import (
	"errors"
	"fmt"
)

// Kind classifies a locksim error.
type Kind string

const (
	// KindConfig marks invalid construction parameters: an unknown lock type,
	// an iteration count below the work-factor floor, a bad config file value.
	KindConfig Kind = "config"

	// KindState marks an operation invoked on a lock in the wrong state.
	KindState Kind = "state"

	// KindPolicy marks an attack mode used against an incompatible lock type.
	KindPolicy Kind = "policy"

	// KindValue marks malformed low-level hashing inputs.
	KindValue Kind = "value"
)

// Sentinels for errors.Is. Any *Error of the same kind matches.
var (
	ErrConfig = &Error{Kind: KindConfig, Message: "invalid configuration"}
	ErrState  = &Error{Kind: KindState, Message: "invalid state"}
	ErrPolicy = &Error{Kind: KindPolicy, Message: "policy violation"}
	ErrValue  = &Error{Kind: KindValue, Message: "invalid value"}
)

// Error is the error type returned for every violation in the taxonomy.
// It supports wrapping and comparison by kind through errors.Is/As.
type Error struct {
	// Kind identifies the error class.
	Kind Kind

	// Op is the operation that failed, e.g. "lock.Attempt".
	Op string

	// Message is a human-readable description.
	Message string

	// Cause is the underlying error, if any.
	Cause error

	// Context holds extra fields for diagnostics.
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, msg, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, msg)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// WithContext returns a copy of e carrying the extra diagnostic field.
// e itself is left untouched, so decorating a sentinel is safe.
func (e *Error) WithContext(key string, value any) *Error {
	clone := *e
	clone.Context = make(map[string]any, len(e.Context)+1)
	for k, v := range e.Context {
		clone.Context[k] = v
	}
	clone.Context[key] = value
	return &clone
}

func newError(kind Kind, op, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
	}
}

// Config returns a KindConfig error.
func Config(op, format string, args ...any) *Error {
	return newError(KindConfig, op, format, args...)
}

// State returns a KindState error.
func State(op, format string, args ...any) *Error {
	return newError(KindState, op, format, args...)
}

// Policy returns a KindPolicy error.
func Policy(op, format string, args ...any) *Error {
	return newError(KindPolicy, op, format, args...)
}

// Value returns a KindValue error.
func Value(op, format string, args ...any) *Error {
	return newError(KindValue, op, format, args...)
}

// Wrap returns an error of the given kind that wraps cause.
func Wrap(kind Kind, op, message string, cause error) *Error {
	return &Error{
		Kind:    kind,
		Op:      op,
		Message: message,
		Cause:   cause,
	}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
