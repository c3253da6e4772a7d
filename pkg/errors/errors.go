// Package errors provides structured error types for touchstone.
//
// The neighbor index and the highlight controller never fail; everything
// around them (loading graph files, reading config, rendering, serving
// views over HTTP) reports failures through this package so the CLI and
// the API can share one vocabulary.
//
// # Error Codes
//
// Codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *_NOT_FOUND: Resource not found
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidEngine, "unknown layout engine: %s", name)
//	if errors.Is(err, errors.ErrCodeInvalidEngine) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFileNotFound, origErr, "open %s", path)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidGraph  Code = "INVALID_GRAPH"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidEngine Code = "INVALID_ENGINE"
	ErrCodeInvalidEvent  Code = "INVALID_EVENT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeViewNotFound Code = "VIEW_NOT_FOUND"
	ErrCodeNodeNotFound Code = "NODE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// codeClass groups codes by who is at fault.
type codeClass int

const (
	classInternal codeClass = iota
	// the caller sent something malformed
	classInput
	// the caller named something that does not exist
	classMissing
)

var codeClasses = map[Code]codeClass{
	ErrCodeInvalidInput:  classInput,
	ErrCodeInvalidGraph:  classInput,
	ErrCodeInvalidConfig: classInput,
	ErrCodeInvalidEngine: classInput,
	ErrCodeInvalidEvent:  classInput,
	ErrCodeInvalidFormat: classInput,
	ErrCodeFileNotFound:  classMissing,
	ErrCodeViewNotFound:  classMissing,
	ErrCodeNodeNotFound:  classMissing,
}

// Status is the HTTP status a response carrying c uses.
func (c Code) Status() int {
	switch codeClasses[c] {
	case classInput:
		return http.StatusBadRequest
	case classMissing:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// Error carries a Code next to a human-readable message and an optional
// cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return Wrap(code, nil, format, args...)
}

// Wrap is New with an underlying cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// as finds the outermost *Error in err's chain.
func as(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	e, ok := as(err)
	return ok && e.Code == code
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func GetCode(err error) Code {
	if e, ok := as(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage strips the code prefix and cause for display; errors
// without a code are shown as-is.
func UserMessage(err error) string {
	if e, ok := as(err); ok {
		return e.Message
	}
	return err.Error()
}

// HTTPStatus maps err to a response status; uncoded errors are 500.
func HTTPStatus(err error) int {
	return GetCode(err).Status()
}

// IsUserError reports whether err was caused by bad input or a missing
// resource rather than a fault in touchstone itself.
func IsUserError(err error) bool {
	return codeClasses[GetCode(err)] != classInternal
}
