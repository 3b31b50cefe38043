// Package errors provides structured error types for texbox.
//
// Every failure the engine, the pipeline and the HTTP service report carries
// a machine-readable [Code], so callers can branch on the kind of failure
// without matching message text:
//
//	_, err := engine.Parse(`\frac{1}`)
//	if errors.Is(err, errors.ErrCodeMissingArgument) {
//	    // report the missing argument to the user
//	}
//
// # Error Codes
//
// Parse codes name the markup problem (UNKNOWN_COMMAND, DOUBLE_SCRIPT, ...).
// CONSTRUCTION reports a layout-contract violation by an atom constructor.
// CONFIG reports malformed font, glue, symbol or color tables. The remaining
// codes are shared by the pipeline, cache and server layers.
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Markup errors
	ErrCodeUnknownCommand     Code = "UNKNOWN_COMMAND"
	ErrCodeUnknownSymbol      Code = "UNKNOWN_SYMBOL"
	ErrCodeUnknownEnvironment Code = "UNKNOWN_ENVIRONMENT"
	ErrCodeUnbalancedGroup    Code = "UNBALANCED_GROUP"
	ErrCodeMissingArgument    Code = "MISSING_ARGUMENT"
	ErrCodeInvalidUnit        Code = "INVALID_UNIT"
	ErrCodeInvalidNumber      Code = "INVALID_NUMBER"
	ErrCodeArrayMode          Code = "ARRAY_MODE"
	ErrCodeColumnMismatch     Code = "COLUMN_MISMATCH"
	ErrCodeDoubleScript       Code = "DOUBLE_SCRIPT"
	ErrCodeExpansionLimit     Code = "EXPANSION_LIMIT"

	// Engine errors
	ErrCodeConstruction Code = "CONSTRUCTION"
	ErrCodeConfig       Code = "CONFIG"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidStyle  Code = "INVALID_STYLE"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource errors
	ErrCodeNotFound Code = "NOT_FOUND"
	ErrCodeTimeout  Code = "TIMEOUT"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// parseCodes are the codes produced by the markup parser.
var parseCodes = map[Code]bool{
	ErrCodeUnknownCommand:     true,
	ErrCodeUnknownSymbol:      true,
	ErrCodeUnknownEnvironment: true,
	ErrCodeUnbalancedGroup:    true,
	ErrCodeMissingArgument:    true,
	ErrCodeInvalidUnit:        true,
	ErrCodeInvalidNumber:      true,
	ErrCodeArrayMode:          true,
	ErrCodeColumnMismatch:     true,
	ErrCodeDoubleScript:       true,
	ErrCodeExpansionLimit:     true,
}

// IsParseCode reports whether c is produced by the markup parser.
func IsParseCode(c Code) bool { return parseCodes[c] }

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
	for err != nil {
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
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
