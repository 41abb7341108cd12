package errors

import (
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryRuntime    Category = "runtime"
	CategoryStore      Category = "store"
	CategoryProtocol   Category = "protocol"
	CategoryValidation Category = "validation"
	CategoryConfig     Category = "config"
	CategoryCLI        Category = "cli"
)

// RefError is a structured error with a code, explanation and fix hint.
type RefError struct {
	// Code is a unique error identifier (e.g., "E201").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *RefError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *RefError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a RefError with the same code.
func (e *RefError) Is(target error) bool {
	t, ok := target.(*RefError)
	if !ok || t.Code == "" {
		return false
	}
	return t.Code == e.Code
}

// WithSuggestion adds a fix suggestion to the error.
func (e *RefError) WithSuggestion(s string) *RefError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *RefError) WithDetail(d string) *RefError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *RefError) Wrap(err error) *RefError {
	e.Wrapped = err
	return e
}

// New creates a RefError from a registered error code.
func New(code string) *RefError {
	template, ok := registry[code]
	if !ok {
		return &RefError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &RefError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new RefError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *RefError {
	return &RefError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a RefError.
func FromError(err error, code string) *RefError {
	if err == nil {
		return nil
	}
	if re, ok := err.(*RefError); ok {
		return re
	}
	return New(code).Wrap(err)
}

// Code extracts the error code from err, or "" if err is not a RefError.
func Code(err error) string {
	for err != nil {
		if re, ok := err.(*RefError); ok {
			return re.Code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = u.Unwrap()
	}
	return ""
}
