// Package errors provides structured error types for dragsort.
//
// The engine itself rarely returns errors: usage mistakes are logged and the
// offending operation becomes a no-op so one misconfigured item cannot break a
// whole collection. The codes below cover the few places where an error is
// surfaced (mounting, rendering items, configuration and the CLI) and the
// diagnostics that are logged.
//
// # Error Codes
//
//   - INVALID_*: configuration or input validation failures
//   - NO_*: a required host element could not be found
//   - INDEX_OUT_OF_RANGE: an index-based mutation outside the sequence
//   - DETACHED: an element was used after it left the tree
//   - INTERNAL_ERROR: unexpected internal state
//
// # Usage
//
//	err := errors.New(errors.ErrCodeNoParent, "container sentinel has no parent")
//	if errors.Is(err, errors.ErrCodeNoParent) {
//	    // Handle mount failure
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidInput, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidEasing    Code = "INVALID_EASING"
	ErrCodeInvalidLayout    Code = "INVALID_LAYOUT"
	ErrCodeInvalidThreshold Code = "INVALID_THRESHOLD"
	ErrCodeInvalidDuration  Code = "INVALID_DURATION"

	// Host tree errors
	ErrCodeNoParent  Code = "NO_PARENT"
	ErrCodeNoElement Code = "NO_ELEMENT"
	ErrCodeDetached  Code = "DETACHED"

	// Sequence errors
	ErrCodeIndexOutOfRange Code = "INDEX_OUT_OF_RANGE"
	ErrCodeDuplicateItem   Code = "DUPLICATE_ITEM"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It walks the whole error tree, including causes and joined errors, looking
// for an *Error with a matching code.
func Is(err error, code Code) bool {
	switch e := err.(type) {
	case nil:
		return false
	case *Error:
		return e.Code == code || Is(e.Cause, code)
	case interface{ Unwrap() []error }:
		for _, inner := range e.Unwrap() {
			if Is(inner, code) {
				return true
			}
		}
		return false
	case interface{ Unwrap() error }:
		return Is(e.Unwrap(), code)
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix, followed by
// the cause's message. Joined errors are reported one per line.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	switch e := err.(type) {
	case nil:
		return ""
	case *Error:
		if e.Cause == nil {
			return e.Message
		}
		return e.Message + ": " + UserMessage(e.Cause)
	case interface{ Unwrap() []error }:
		var lines []string
		for _, inner := range e.Unwrap() {
			lines = append(lines, UserMessage(inner))
		}
		return strings.Join(lines, "\n")
	}
	var e *Error
	if errors.As(err, &e) {
		return UserMessage(e)
	}
	return err.Error()
}

// IsInput reports whether err was caused by invalid user input rather than
// a failure of the program.
func IsInput(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidEasing, ErrCodeInvalidLayout,
		ErrCodeInvalidThreshold, ErrCodeInvalidDuration, ErrCodeDuplicateItem:
		return true
	}
	return false
}

// Join combines several errors; nil entries are dropped. It returns nil when
// every entry is nil.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
