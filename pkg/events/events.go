// Package events defines event types and structures for form and workflow
// lifecycle notifications.
package events

import (
	"time"
)

type EventType string

// Topic carries every form and workflow event.
const Topic = "formwright.events"

const EventMetadataKey = "key"
const EventTypeMetadataKey = "event_type"

const (
	// Form lifecycle events.
	FormCreatedEvent   EventType = "form.created"
	FormUpdatedEvent   EventType = "form.updated"
	FormDeletedEvent   EventType = "form.deleted"
	FormPublishedEvent EventType = "form.published"
	FormSubmittedEvent EventType = "form.submitted"

	// Workflow lifecycle events.
	WorkflowSavedEvent   EventType = "workflow.saved"
	WorkflowDeletedEvent EventType = "workflow.deleted"

	// Workflow execution lifecycle events.
	WorkflowExecutionStartedEvent  EventType = "workflow.execution.started"
	WorkflowExecutionFinishedEvent EventType = "workflow.execution.finished"
)

type BaseEvent struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

type FormCreated struct {
	BaseEvent

	FormID string `json:"form_id"`
	Owner  string `json:"owner,omitempty"`
}

func (e FormCreated) GetType() EventType { return FormCreatedEvent }

type FormUpdated struct {
	BaseEvent

	FormID string `json:"form_id"`
}

func (e FormUpdated) GetType() EventType { return FormUpdatedEvent }

type FormDeleted struct {
	BaseEvent

	FormID string `json:"form_id"`
}

func (e FormDeleted) GetType() EventType { return FormDeletedEvent }

type FormPublished struct {
	BaseEvent

	FormID string `json:"form_id"`
}

func (e FormPublished) GetType() EventType { return FormPublishedEvent }

type FormSubmitted struct {
	BaseEvent

	FormID   string         `json:"form_id"`
	FormData map[string]any `json:"form_data,omitempty"`
}

func (e FormSubmitted) GetType() EventType { return FormSubmittedEvent }

type WorkflowSaved struct {
	BaseEvent

	WorkflowID string `json:"workflow_id"`
}

func (e WorkflowSaved) GetType() EventType { return WorkflowSavedEvent }

type WorkflowDeleted struct {
	BaseEvent

	WorkflowID string `json:"workflow_id"`
}

func (e WorkflowDeleted) GetType() EventType { return WorkflowDeletedEvent }

type WorkflowExecutionStarted struct {
	BaseEvent

	WorkflowID  string `json:"workflow_id"`
	ExecutionID string `json:"execution_id"`
	FormID      string `json:"form_id,omitempty"`
}

func (e WorkflowExecutionStarted) GetType() EventType { return WorkflowExecutionStartedEvent }

type WorkflowExecutionFinished struct {
	BaseEvent

	WorkflowID    string   `json:"workflow_id"`
	ExecutionID   string   `json:"execution_id"`
	Success       bool     `json:"success"`
	ExecutedNodes []string `json:"executed_nodes,omitempty"`
	Errors        []string `json:"errors,omitempty"`
}

func (e WorkflowExecutionFinished) GetType() EventType { return WorkflowExecutionFinishedEvent }
