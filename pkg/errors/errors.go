// Package errors provides structured error types for quiverview.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the viewer, the CLI and the codec
//   - Machine-readable error codes for programmatic handling
//   - User-friendly messages for the status line
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The codes mirror the failure kinds of the viewer:
//   - PARSE_ERROR: malformed or absent quiver text
//   - DEGENERATE_GEOMETRY: a zero-length direction had to be replaced
//   - DUPLICATE_NODE_ID / UNKNOWN_NODE: model constraint violations
//   - INVALID_*: input and configuration validation failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeParse, "no Quiver( token in %d bytes", len(text))
//	if errors.Is(err, errors.ErrCodeParse) {
//	    // show a notification, keep the current model
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeLayout, origErr, "graphviz %s", engine)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Codec errors
	ErrCodeParse Code = "PARSE_ERROR"

	// Geometry errors (reported as warnings by the router)
	ErrCodeDegenerateGeometry Code = "DEGENERATE_GEOMETRY"

	// Model errors
	ErrCodeDuplicateNode Code = "DUPLICATE_NODE_ID"
	ErrCodeUnknownNode   Code = "UNKNOWN_NODE"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Layout and internal errors
	ErrCodeLayout      Code = "LAYOUT_FAILED"
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
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
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsParse reports whether err is a quiver text parse failure.
func IsParse(err error) bool { return Is(err, ErrCodeParse) }
