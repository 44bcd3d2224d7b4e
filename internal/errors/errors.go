// Package errors provides sentinel errors and structured error details for tpa-seed.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates an invalid element name or a malformed manifest.
	ErrValidation = errors.New("validation error")

	// ErrPermission indicates insufficient filesystem permissions.
	ErrPermission = errors.New("permission denied")

	// ErrNotFound indicates a template, file, or binary was not found.
	ErrNotFound = errors.New("not found")
)

// DetailError captures structured error information for terminal output.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is the file path the error refers to (optional).
	Location string

	// Field is the manifest or config field for schema errors (optional).
	Field string

	// Context contains additional key-value context (optional).
	Context map[string]string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}
	if e.Field != "" {
		b.WriteString("  Field: ")
		b.WriteString(e.Field)
		b.WriteString("\n")
	}
	for k, v := range e.Context {
		b.WriteString("  ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a validation error with details.
func NewValidationError(message, location, field, hint string) error {
	return &DetailError{
		Type:     "validation failed",
		Message:  message,
		Location: location,
		Field:    field,
		Hint:     hint,
		Cause:    ErrValidation,
	}
}

// NewInvalidNameError reports an element name that cannot be used as a tag.
func NewInvalidNameError(name, message string) error {
	return &DetailError{
		Type:    "invalid element name",
		Message: message,
		Context: map[string]string{"Element": name},
		Hint:    "Use a lowercase name containing a hyphen, e.g. my-element.",
		Cause:   ErrValidation,
	}
}

// NewManifestError reports a template manifest that could not be parsed or
// does not have the expected shape.
func NewManifestError(location, field string, cause error) error {
	detail := &DetailError{
		Type:     "manifest parse failed",
		Message:  "manifest is not valid",
		Location: location,
		Field:    field,
		Hint:     "Check that the template bower.json is valid JSON.",
		Cause:    ErrValidation,
	}
	if cause != nil {
		detail.Message = cause.Error()
		detail.Cause = fmt.Errorf("%w: %w", ErrValidation, cause)
	}
	return detail
}

// NewMissingTemplateError reports a template file that is expected but absent.
func NewMissingTemplateError(location string, cause error) error {
	detail := &DetailError{
		Type:     "template file missing",
		Message:  fmt.Sprintf("required template file %s does not exist", location),
		Location: location,
		Hint:     "Check the --template directory or reinstall tpa-seed.",
		Cause:    ErrNotFound,
	}
	if cause != nil {
		detail.Cause = fmt.Errorf("%w: %w", ErrNotFound, cause)
	}
	return detail
}

// NewNotFoundError creates a not found error with details.
func NewNotFoundError(message, location, hint string) error {
	return &DetailError{
		Type:     "not found",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrNotFound,
	}
}

// Wrap wraps an error with a sentinel error type.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}
