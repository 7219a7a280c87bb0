package engine

import (
	"errors"
	"fmt"
)

// ErrorClass classifies engine errors for the caller's handling policy.
type ErrorClass string

const (
	// ErrorClassReference indicates an identifier passed to an entry point
	// does not exist in the supplied snapshot. The specific call is
	// aborted; the snapshot itself may still be perfectly scannable.
	ErrorClassReference ErrorClass = "reference"

	// ErrorClassValidation indicates an argument outside the snapshot was
	// invalid, such as an unknown resource kind.
	ErrorClassValidation ErrorClass = "validation"
)

// EngineError is a classified error with resource and operation context.
type EngineError struct {
	// Class is the error classification.
	Class ErrorClass `json:"class"`

	// Message is the human-readable error message.
	Message string `json:"message"`

	// Code is an optional error code for programmatic handling.
	Code string `json:"code,omitempty"`

	// Resource is the identifier that caused the error, if applicable.
	Resource string `json:"resource,omitempty"`

	// Operation is the entry point that raised the error.
	Operation string `json:"operation,omitempty"`

	// Err is the underlying error, if any.
	Err error `json:"-"`
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("[%s] %s (resource=%s)", e.Class, e.Message, e.Resource)
	}
	return fmt.Sprintf("[%s] %s", e.Class, e.Message)
}

// Unwrap returns the underlying error for error chain inspection.
func (e *EngineError) Unwrap() error {
	return e.Err
}

// Is implements error equality for errors.Is: two engine errors match when
// their class and code agree.
func (e *EngineError) Is(target error) bool {
	t, ok := target.(*EngineError)
	if !ok {
		return false
	}
	return e.Class == t.Class && e.Code == t.Code
}

// NewReferenceError creates a reference error for an unknown identifier.
func NewReferenceError(message string) *EngineError {
	return &EngineError{
		Class:   ErrorClassReference,
		Code:    ErrCodeNotFound,
		Message: message,
	}
}

// NewValidationError creates a validation error for a bad argument.
func NewValidationError(message string) *EngineError {
	return &EngineError{
		Class:   ErrorClassValidation,
		Code:    ErrCodeInvalidArgument,
		Message: message,
	}
}

// WithResource adds identifier context to an error.
func (e *EngineError) WithResource(id string) *EngineError {
	e.Resource = id
	return e
}

// WithOperation adds entry-point context to an error.
func (e *EngineError) WithOperation(op string) *EngineError {
	e.Operation = op
	return e
}

// IsReference returns true if the error is a reference error.
func IsReference(err error) bool {
	var e *EngineError
	if errors.As(err, &e) {
		return e.Class == ErrorClassReference
	}
	return false
}

// IsValidation returns true if the error is a validation error.
func IsValidation(err error) bool {
	var e *EngineError
	if errors.As(err, &e) {
		return e.Class == ErrorClassValidation
	}
	return false
}

// Common error codes.
const (
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeInvalidArgument = "INVALID_ARGUMENT"
)
