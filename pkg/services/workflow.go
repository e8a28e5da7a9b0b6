package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/formwright/formwright/pkg/eventbus"
	"github.com/formwright/formwright/pkg/events"
	"github.com/formwright/formwright/pkg/flow"
	"github.com/formwright/formwright/pkg/models"
	"github.com/formwright/formwright/pkg/persistence"
	"github.com/formwright/formwright/pkg/registry"
)

// ErrWorkflowNotFound is returned when a workflow is not found.
var ErrWorkflowNotFound = persistence.ErrWorkflowNotFound

// Workflow is the standalone workflow service: graph CRUD, validation and
// on-demand execution against arbitrary form data.
type Workflow struct {
	persistence persistence.Persistence
	eventBus    eventbus.EventBus
	registry    *registry.Registry
	logger      *slog.Logger
}

// NewWorkflow creates a new workflow service.
func NewWorkflow(p persistence.Persistence, bus eventbus.EventBus, reg *registry.Registry, logger *slog.Logger) *Workflow {
	return &Workflow{
		persistence: p,
		eventBus:    bus,
		registry:    reg,
		logger:      logger,
	}
}

// ListWorkflows returns every stored workflow graph.
func (s *Workflow) ListWorkflows(ctx context.Context) ([]*models.FlowGraph, error) {
	graphs, err := s.persistence.WorkflowRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflows: %w", err)
	}

	return graphs, nil
}

// GetWorkflow returns a workflow graph by id.
func (s *Workflow) GetWorkflow(ctx context.Context, id string) (*models.FlowGraph, error) {
	graph, err := s.persistence.WorkflowRepository().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get workflow %s: %w", id, err)
	}

	if graph == nil {
		return nil, persistence.NewWorkflowError("GetWorkflow", id, persistence.ErrWorkflowNotFound)
	}

	return graph, nil
}

// SaveWorkflow validates and upserts a workflow graph.
func (s *Workflow) SaveWorkflow(ctx context.Context, graph *models.FlowGraph) (*models.FlowGraph, error) {
	if graph == nil {
		return nil, ErrGraphNil
	}

	if strings.TrimSpace(graph.Name) == "" {
		return nil, NewValidationError("SaveWorkflow", "NAME_REQUIRED", "workflow name is required", ErrInvalidRequest)
	}

	if err := s.registry.ValidateGraph(graph); err != nil {
		return nil, NewValidationError("SaveWorkflow", "INVALID_GRAPH", err.Error(), ErrInvalidGraph)
	}

	if graph.ID == "" {
		graph.ID = uuid.New().String()
	}

	if err := s.persistence.WorkflowRepository().Save(ctx, graph); err != nil {
		return nil, fmt.Errorf("failed to save workflow %s: %w", graph.ID, err)
	}

	s.publish(ctx, graph.ID, events.WorkflowSaved{
		BaseEvent:  s.baseEvent(events.WorkflowSavedEvent),
		WorkflowID: graph.ID,
	})

	return graph, nil
}

// DeleteWorkflow removes a workflow graph.
func (s *Workflow) DeleteWorkflow(ctx context.Context, id string) error {
	if _, err := s.GetWorkflow(ctx, id); err != nil {
		return err
	}

	if err := s.persistence.WorkflowRepository().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete workflow %s: %w", id, err)
	}

	s.publish(ctx, id, events.WorkflowDeleted{
		BaseEvent:  s.baseEvent(events.WorkflowDeletedEvent),
		WorkflowID: id,
	})

	return nil
}

// Execute runs a stored workflow against the given form data snapshot.
func (s *Workflow) Execute(ctx context.Context, id string, formData map[string]any) (*models.ExecutionResult, error) {
	graph, err := s.GetWorkflow(ctx, id)
	if err != nil {
		return nil, err
	}

	engine := flow.NewEngine(graph, formData, s.registry, s.logger, nil)

	s.publish(ctx, id, events.WorkflowExecutionStarted{
		BaseEvent:   s.baseEvent(events.WorkflowExecutionStartedEvent),
		WorkflowID:  id,
		ExecutionID: engine.Context().ID,
	})

	result := engine.Execute(ctx)

	s.publish(ctx, id, events.WorkflowExecutionFinished{
		BaseEvent:     s.baseEvent(events.WorkflowExecutionFinishedEvent),
		WorkflowID:    id,
		ExecutionID:   result.Context.ID,
		Success:       result.Success,
		ExecutedNodes: result.ExecutedNodes,
		Errors:        result.Errors,
	})

	return result, nil
}

func (s *Workflow) baseEvent(eventType events.EventType) events.BaseEvent {
	id := uuid.New().String()
	if s.eventBus != nil {
		id = s.eventBus.GenerateID()
	}

	return events.BaseEvent{
		ID:        id,
		Type:      eventType,
		Timestamp: time.Now().UTC(),
	}
}

func (s *Workflow) publish(ctx context.Context, key string, event eventbus.Event) {
	if s.eventBus == nil {
		return
	}

	if err := s.eventBus.Publish(ctx, key, event); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish event", "event_type", event.GetType(), "error", err)
	}
}
