package models

import "time"

// Well-known variable keys populated by node execution.
const (
	VarAPIResponse     = "apiResponse"
	VarTransformResult = "transformResult"
	VarNavigateTo      = "navigateTo"
	VarFormActions     = "formActions"
)

// ExecutionContext is the mutable state threaded through one workflow run.
// FormData is a read-only snapshot of the submitted values; Variables is
// populated by variable/api/transform nodes as the walk proceeds.
type ExecutionContext struct {
	ID        string         `json:"id"`
	FlowID    string         `json:"flow_id"`
	FormData  map[string]any `json:"form_data,omitempty"`
	Variables map[string]any `json:"variables,omitempty"`
	StartTime time.Time      `json:"start_time"`
}

// PendingFormAction is recorded by action nodes for the consuming renderer.
type PendingFormAction struct {
	Type     RuleActionType `json:"type"`
	TargetID string         `json:"target_id"`
}

// AppendFormAction records a pending form action into Variables.
func (c *ExecutionContext) AppendFormAction(action PendingFormAction) {
	if c.Variables == nil {
		c.Variables = make(map[string]any)
	}

	existing, _ := c.Variables[VarFormActions].([]PendingFormAction)
	c.Variables[VarFormActions] = append(existing, action)
}

// ExecutionResult is returned from a workflow run. Success is false only when
// the start node is missing or the run itself could not proceed; individual
// node failures land in Errors without flipping Success.
type ExecutionResult struct {
	Success       bool              `json:"success"`
	ExecutedNodes []string          `json:"executed_nodes"`
	Errors        []string          `json:"errors"`
	Context       *ExecutionContext `json:"context"`
}
