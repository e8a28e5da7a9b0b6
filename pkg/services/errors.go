// Package services provides the business logic layer between the HTTP
// handlers and the persistence, rule and workflow engines.
package services

import (
	"errors"
	"fmt"
)

// Business logic errors. These indicate client errors (4xx responses).
var (
	// Validation errors (400 Bad Request).
	ErrInvalidRequest    = errors.New("invalid request")
	ErrInvalidSortField  = errors.New("invalid sort field")
	ErrInvalidSortOrder  = errors.New("invalid sort order")
	ErrFormNameRequired  = errors.New("form name is required")
	ErrFormNil           = errors.New("form cannot be nil")
	ErrGraphNil          = errors.New("workflow graph cannot be nil")
	ErrPageNotFound      = errors.New("page not found")
	ErrElementNotFound   = errors.New("element not found")
	ErrUnknownElementTag = errors.New("unknown element type")
	ErrInvalidGraph      = errors.New("invalid workflow graph")

	// Business logic conflicts (409 Conflict).
	ErrFormNotPublished       = errors.New("form is not accepting submissions")
	ErrCannotModifyPublished  = errors.New("cannot modify published form")
	ErrRequiredFieldMissing   = errors.New("required field missing")
	ErrSubmissionDataRequired = errors.New("submission data is required")
)

// ServiceError wraps service-level errors with additional context.
type ServiceError struct {
	Op      string // Operation name
	Code    string // Error code for API responses
	Message string // Human-readable message
	Err     error  // Underlying error
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func (e *ServiceError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// IsValidationError checks if an error is a validation error that should return HTTP 400.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrInvalidSortField) ||
		errors.Is(err, ErrInvalidSortOrder) ||
		errors.Is(err, ErrFormNameRequired) ||
		errors.Is(err, ErrFormNil) ||
		errors.Is(err, ErrGraphNil) ||
		errors.Is(err, ErrPageNotFound) ||
		errors.Is(err, ErrElementNotFound) ||
		errors.Is(err, ErrUnknownElementTag) ||
		errors.Is(err, ErrInvalidGraph) ||
		errors.Is(err, ErrSubmissionDataRequired)
}

// IsConflictError checks if an error is a business logic conflict that should return HTTP 409.
func IsConflictError(err error) bool {
	return errors.Is(err, ErrFormNotPublished) ||
		errors.Is(err, ErrCannotModifyPublished) ||
		errors.Is(err, ErrRequiredFieldMissing)
}

// NewValidationError creates a new validation error with context.
func NewValidationError(op, code, message string, err error) *ServiceError {
	return &ServiceError{
		Op:      op,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
