// Package errors provides structured error handling for the toggle runtime.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

var (
	// ErrType is the sentinel matched by every type-mismatch style failure
	// (bad configuration values, unknown bridge commands).
	ErrType = stderrors.New("type error")

	// ErrDisposed is returned by operations on an instance that has already
	// been disposed.
	ErrDisposed = stderrors.New("instance disposed")
)

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool { return stderrors.As(err, target) }

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates an invalid widget configuration.
	KindConfig
	// KindCommand indicates a rejected bridge command.
	KindCommand
	// KindHost indicates a failure reported by the host environment.
	KindHost
	// KindPage indicates a page document that could not be loaded.
	KindPage
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindCommand:
		return "command"
	case KindHost:
		return "host"
	case KindPage:
		return "page"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// ToggleError represents a structured error raised by the runtime.
type ToggleError struct {
	// Op is the operation that failed (e.g., "page.Load").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Widget is the widget kind involved, if any.
	Widget string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *ToggleError) Error() string {
	if e.Widget != "" {
		return fmt.Sprintf("%s [%s] widget=%s: %v", e.Op, e.Kind, e.Widget, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ToggleError) Unwrap() error {
	return e.Err
}

// ConfigTypeError reports an option whose value does not match its declared type.
type ConfigTypeError struct {
	// Widget is the widget kind being configured.
	Widget string
	// Option is the option name.
	Option string
	// Value is the offending value.
	Value any
	// Expected is the declared type set (e.g., "boolean|string").
	Expected string
	// Got is the type name of Value.
	Got string
}

func (e *ConfigTypeError) Error() string {
	return fmt.Sprintf("%s: option %q provided type %q but expected type %q",
		e.Widget, e.Option, e.Got, e.Expected)
}

func (e *ConfigTypeError) Unwrap() error {
	return ErrType
}

// UnknownMethodError reports a bridge call naming a command that does not exist,
// is private by convention, or is the constructor.
type UnknownMethodError struct {
	// Widget is the widget kind the call was addressed to.
	Widget string
	// Method is the requested name.
	Method string
	// Suggestion is the closest known command, if any.
	Suggestion string
}

func (e *UnknownMethodError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s: no method named %q (did you mean %q?)", e.Widget, e.Method, e.Suggestion)
	}
	return fmt.Sprintf("%s: no method named %q", e.Widget, e.Method)
}

func (e *UnknownMethodError) Unwrap() error {
	return ErrType
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "loop.Do").
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

// ErrorHandler receives errors reported by the runtime.
type ErrorHandler interface {
	// HandleError is called when an error is reported.
	HandleError(err *ToggleError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
