// Package errors provides structured error handling for the popup engine.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// Kind identifies the category of an error.
type Kind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown Kind = iota
	// KindInvalidState indicates caller misuse of a lifecycle invariant,
	// such as attaching content to an occupied container.
	KindInvalidState
	// KindConfig indicates an invalid configuration value, such as an
	// unknown slide direction or a malformed profile field.
	KindConfig
	// KindTransition indicates a failure while setting up or driving a
	// transition phase.
	KindTransition
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k Kind) String() string {
	switch k {
	case KindInvalidState:
		return "invalid-state"
	case KindConfig:
		return "config"
	case KindTransition:
		return "transition"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// Error represents a structured error in the popup engine.
type Error struct {
	// Op is the operation that failed (e.g., "popup.Container.Attach").
	Op string
	// Kind categorizes the error.
	Kind Kind
	// Err is the underlying error.
	Err error
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// E constructs an Error from an operation, kind, and cause.
func E(op string, kind Kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err, Timestamp: time.Now()}
}

// Errorf constructs an Error with a formatted cause.
func Errorf(op string, kind Kind, format string, args ...any) *Error {
	return E(op, kind, fmt.Errorf(format, args...))
}

// Is reports whether err (or anything it wraps) is an Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// IsInvalidState reports whether err is a lifecycle-invariant violation.
func IsInvalidState(err error) bool { return Is(err, KindInvalidState) }

// IsConfig reports whether err is a configuration error.
func IsConfig(err error) bool { return Is(err, KindConfig) }

// IsTransition reports whether err is a transition-phase failure.
func IsTransition(err error) bool { return Is(err, KindTransition) }

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "scheduler.Loop.Step").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// Handler receives errors reported by the popup engine.
type Handler interface {
	// HandleError is called when an error occurs.
	HandleError(err *Error)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
