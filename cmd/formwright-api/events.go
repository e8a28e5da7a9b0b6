package main

import (
	"context"
	"log/slog"

	"github.com/formwright/formwright/pkg/eventbus"
	"github.com/formwright/formwright/pkg/events"
)

// registerEventListeners attaches the audit log subscribers and starts
// consuming the event topic. Handlers must be registered before Subscribe
// so no early event is dropped.
func registerEventListeners(ctx context.Context, logger *slog.Logger, eventBus eventbus.EventBus) error {
	auditLogger := logger.With("listener", "audit")

	err := eventBus.Handle(events.FormSubmittedEvent, func(ctx context.Context, event any) error {
		submitted, ok := event.(*events.FormSubmitted)
		if !ok {
			auditLogger.WarnContext(ctx, "Unexpected payload for form.submitted event")

			return nil
		}

		auditLogger.InfoContext(ctx, "Form submitted",
			"form_id", submitted.FormID,
			"fields", len(submitted.FormData),
		)

		return nil
	})
	if err != nil {
		return err
	}

	err = eventBus.Handle(events.WorkflowExecutionFinishedEvent, func(ctx context.Context, event any) error {
		finished, ok := event.(*events.WorkflowExecutionFinished)
		if !ok {
			auditLogger.WarnContext(ctx, "Unexpected payload for workflow.execution.finished event")

			return nil
		}

		auditLogger.InfoContext(ctx, "Workflow execution finished",
			"workflow_id", finished.WorkflowID,
			"execution_id", finished.ExecutionID,
			"success", finished.Success,
			"executed_nodes", len(finished.ExecutedNodes),
			"errors", len(finished.Errors),
		)

		return nil
	})
	if err != nil {
		return err
	}

	return eventBus.Subscribe(ctx)
}
