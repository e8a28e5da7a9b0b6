// Package persistence provides standardized error types for persistence operations.
package persistence

import (
	"errors"
	"fmt"
)

// Standard persistence error types that all implementations should use.
var (
	// ErrFormNotFound indicates a form was not found by the given identifier.
	ErrFormNotFound = errors.New("form not found")

	// ErrWorkflowNotFound indicates a workflow was not found by the given identifier.
	ErrWorkflowNotFound = errors.New("workflow not found")

	// ErrFormAlreadyExists indicates a form with the same identifier already exists.
	ErrFormAlreadyExists = errors.New("form already exists")

	// ErrInvalidFormStatus indicates an invalid form status was provided.
	ErrInvalidFormStatus = errors.New("invalid form status")

	// ErrInvalidSortField indicates a listing was requested with a sort field
	// outside the allowlist.
	ErrInvalidSortField = errors.New("invalid sort field")
)

// FormError wraps form-related errors with additional context.
type FormError struct {
	Op      string // Operation being performed (e.g., "GetByID", "Save", "Delete")
	FormID  string // Form ID if applicable
	Err     error  // Underlying error
	Message string // Additional context message
}

func (e *FormError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s operation failed for form %s: %s (%v)", e.Op, e.FormID, e.Message, e.Err)
	}

	return fmt.Sprintf("%s operation failed for form %s: %v", e.Op, e.FormID, e.Err)
}

func (e *FormError) Unwrap() error {
	return e.Err
}

// Is implements error comparison for form errors.
func (e *FormError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewFormError creates a new form error with context.
func NewFormError(op, formID string, err error) *FormError {
	return &FormError{
		Op:     op,
		FormID: formID,
		Err:    err,
	}
}

// WorkflowError wraps workflow-related errors with additional context.
type WorkflowError struct {
	Op         string
	WorkflowID string
	Err        error
}

func (e *WorkflowError) Error() string {
	return fmt.Sprintf("%s operation failed for workflow %s: %v", e.Op, e.WorkflowID, e.Err)
}

func (e *WorkflowError) Unwrap() error {
	return e.Err
}

func (e *WorkflowError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewWorkflowError creates a new workflow error with context.
func NewWorkflowError(op, workflowID string, err error) *WorkflowError {
	return &WorkflowError{
		Op:         op,
		WorkflowID: workflowID,
		Err:        err,
	}
}

// IsFormNotFound checks if an error indicates a form was not found.
func IsFormNotFound(err error) bool {
	return errors.Is(err, ErrFormNotFound)
}

// IsWorkflowNotFound checks if an error indicates a workflow was not found.
func IsWorkflowNotFound(err error) bool {
	return errors.Is(err, ErrWorkflowNotFound)
}
