// Package web provides HTTP request and response types for the form API.
package web

import "github.com/formwright/formwright/pkg/models"

// CreateFormRequest represents the request body for creating a new form.
type CreateFormRequest struct {
	Name        string `json:"name"        validate:"required,min=3"`
	Description string `json:"description"`
	Owner       string `json:"owner"`
}

// UpdateFormRequest represents the request body for updating form metadata.
// All fields are optional to support partial updates.
type UpdateFormRequest struct {
	Name        *string `json:"name,omitempty"        validate:"omitempty,min=3"`
	Description *string `json:"description,omitempty"`
}

// AddPageRequest represents the request body for adding a page.
type AddPageRequest struct {
	Name string `json:"name"`
}

// AddElementRequest represents the request body for placing a catalog element.
type AddElementRequest struct {
	PageID      string `json:"page_id"      validate:"required"`
	Type        string `json:"type"         validate:"required"`
	ContainerID string `json:"container_id,omitempty"`
	Column      *int   `json:"column,omitempty"`
	Index       *int   `json:"index,omitempty"`
}

// UpdateElementRequest represents the request body for a partial element
// update. Absent fields keep their current value.
type UpdateElementRequest struct {
	Label       *string            `json:"label,omitempty"`
	FieldName   *string            `json:"field_name,omitempty"`
	Placeholder *string            `json:"placeholder,omitempty"`
	HelperText  *string            `json:"helper_text,omitempty"`
	Required    *bool              `json:"required,omitempty"`
	Width       *models.WidthClass `json:"width,omitempty"`
	Validation  *models.Validation `json:"validation,omitempty"`
	Options     []models.Option    `json:"options,omitempty"`
}

// ReorderElementRequest represents the request body for reordering siblings.
type ReorderElementRequest struct {
	PageID      string `json:"page_id"      validate:"required"`
	ContainerID string `json:"container_id,omitempty"`
	Column      int    `json:"column"`
	Source      int    `json:"source"       validate:"min=0"`
	Target      int    `json:"target"       validate:"min=0"`
}

// SetRulesRequest represents the request body replacing a form's rules.
type SetRulesRequest struct {
	Rules []*models.Rule `json:"rules" validate:"required,dive"`
}

// EvaluateRulesRequest carries form values for a rule dry run.
type EvaluateRulesRequest struct {
	Values map[string]any `json:"values" validate:"required"`
}

// SubmitFormRequest carries a form submission.
type SubmitFormRequest struct {
	Data map[string]any `json:"data" validate:"required"`
}

// SaveWorkflowRequest represents the request body for saving a workflow graph.
type SaveWorkflowRequest struct {
	Name        string             `json:"name"        validate:"required,min=3"`
	Description string             `json:"description"`
	Nodes       []*models.FlowNode `json:"nodes"       validate:"required,dive"`
	Edges       []*models.FlowEdge `json:"edges"       validate:"dive"`
	Variables   map[string]any     `json:"variables,omitempty"`
	Owner       string             `json:"owner"`
}

// ExecuteWorkflowRequest carries form data for an on-demand workflow run.
type ExecuteWorkflowRequest struct {
	FormData map[string]any `json:"form_data"`
}
