// Package errors provides structured error types for chartkit.
//
// The chart engine never fails hard: every error path degrades to an empty or
// partial render. The codes in this package exist so that hosts can decide
// what to report to an operator and what to swallow.
//
// # Error Codes
//
// Codes are grouped by how the engine recovers from them:
//   - LOAD_ERROR: the data source is unreachable or unparseable; rendering is
//     suppressed and the error is logged.
//   - RECORD_PARSE: a single row failed coercion; the row is dropped.
//   - GEOMETRY_DEGENERATE: empty domain or unmeasured viewport; a fallback
//     domain is used or the draw is skipped.
//   - INTERACTION_BOUNDS: pointer outside the tracked region; ignored.
//   - INVALID_*: configuration or command-line input problems.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidChartKind, "unknown chart kind: %s", kind)
//	if errors.Is(err, errors.ErrCodeInvalidChartKind) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeLoad, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Data errors
	ErrCodeLoad        Code = "LOAD_ERROR"
	ErrCodeRecordParse Code = "RECORD_PARSE"

	// Geometry and interaction errors (always recovered locally)
	ErrCodeGeometryDegenerate Code = "GEOMETRY_DEGENERATE"
	ErrCodeInteractionBounds  Code = "INTERACTION_BOUNDS"

	// Input validation errors
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidChartKind Code = "INVALID_CHART_KIND"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"
	ErrCodeInvalidPath      Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
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

// Recoverable reports whether err belongs to a category the engine handles by
// degrading the render instead of reporting it.
func Recoverable(err error) bool {
	switch GetCode(err) {
	case ErrCodeRecordParse, ErrCodeGeometryDegenerate, ErrCodeInteractionBounds:
		return true
	}
	return false
}
