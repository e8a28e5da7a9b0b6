// Package flow implements the workflow execution engine: a depth-first,
// serialized walk over a typed node graph, dispatching side effects per node
// type and branching at condition nodes.
package flow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/formwright/formwright/pkg/models"
	"github.com/formwright/formwright/pkg/otelhelper"
	"github.com/formwright/formwright/pkg/registry"
)

// Engine executes one workflow graph against one form-data snapshot. A fresh
// engine is built per run; the execution context lives exactly as long as the
// run and is handed back inside the result.
type Engine struct {
	graph     *models.FlowGraph
	registry  *registry.Registry
	logger    *slog.Logger
	tracer    trace.Tracer
	execution *models.ExecutionContext

	visited  map[string]bool
	executed []string
	errors   []string
}

// NewEngine creates an engine for the given graph and submitted form data.
// A nil tracer falls back to the globally registered provider, which is a
// no-op unless an exporter was installed at startup.
func NewEngine(graph *models.FlowGraph, formData map[string]any, reg *registry.Registry, logger *slog.Logger, tracer trace.Tracer) *Engine {
	if tracer == nil {
		tracer = otel.GetTracerProvider().Tracer("flow")
	}

	variables := make(map[string]any)
	for k, v := range graph.Variables {
		variables[k] = v
	}

	return &Engine{
		graph:    graph,
		registry: reg,
		logger:   logger,
		tracer:   tracer,
		execution: &models.ExecutionContext{
			ID:        "exec-" + uuid.New().String()[:8],
			FlowID:    graph.ID,
			FormData:  formData,
			Variables: variables,
			StartTime: time.Now().UTC(),
		},
		visited: make(map[string]bool),
	}
}

// Context returns the execution context. Before Execute it holds only the
// form-data snapshot and initial variables.
func (e *Engine) Context() *models.ExecutionContext {
	return e.execution
}

// Execute walks the graph from the start node. Individual node failures are
// contained: they are appended to the result's error list and stop only their
// own branch. Success is false only when the start node is missing.
func (e *Engine) Execute(ctx context.Context) *models.ExecutionResult {
	logger := e.logger.With("flow_id", e.graph.ID, "execution_id", e.execution.ID)

	ctx, span := otelhelper.StartSpan(ctx, e.tracer, "flow.execute",
		attribute.String(otelhelper.WorkflowIDKey, e.graph.ID),
		attribute.String(otelhelper.ExecutionIDKey, e.execution.ID),
	)
	defer span.End()

	result := &models.ExecutionResult{
		Success:       true,
		ExecutedNodes: []string{},
		Errors:        []string{},
		Context:       e.execution,
	}

	startNode := e.graph.StartNode()
	if startNode == nil {
		err := fmt.Errorf("workflow %s has no start node", e.graph.ID)
		logger.Error("Execution aborted", "error", err)
		otelhelper.SetError(span, err)

		result.Success = false
		result.Errors = append(result.Errors, err.Error())

		return result
	}

	logger.Info("Starting workflow execution", "start_node", startNode.ID)

	e.walk(ctx, logger, startNode.ID)

	result.ExecutedNodes = e.executed
	result.Errors = append(result.Errors, e.errors...)

	logger.Info("Workflow execution finished",
		"executed_nodes", len(result.ExecutedNodes),
		"errors", len(result.Errors),
		"duration", time.Since(e.execution.StartTime),
	)

	return result
}

// walk executes one node and recurses down the selected branch. The visited
// set is the cycle guard: a node runs at most once per execution, so a
// diamond of converging paths executes its join node via whichever path
// arrives first.
func (e *Engine) walk(ctx context.Context, logger *slog.Logger, nodeID string) {
	if e.visited[nodeID] {
		return
	}

	e.visited[nodeID] = true

	node := e.graph.NodeByID(nodeID)
	if node == nil {
		logger.Warn("Edge points at unknown node, stopping branch", "node_id", nodeID)

		return
	}

	branch, executed := e.executeNode(ctx, logger, node)
	if !executed {
		return
	}

	for _, edge := range e.graph.EdgesFrom(nodeID) {
		if edge.SourceHandle == branch {
			e.walk(ctx, logger, edge.Target)
		}
	}
}

// executeNode dispatches one node through the registry. It returns the branch
// handle to follow and whether the walk should continue below this node.
func (e *Engine) executeNode(ctx context.Context, logger *slog.Logger, node *models.FlowNode) (string, bool) {
	nodeLogger := logger.With("node_id", node.ID, "node_type", node.Type)

	ctx, span := otelhelper.StartSpan(ctx, e.tracer, "flow.node",
		attribute.String(otelhelper.NodeIDKey, node.ID),
		attribute.String(otelhelper.NodeTypeKey, string(node.Type)),
	)
	defer span.End()

	if !e.registry.IsRegistered(string(node.Type)) {
		// Unknown types are skipped, not failed: the walk continues to
		// the node's children along unlabeled edges.
		nodeLogger.Warn("Unknown node type, treating as no-op")
		e.executed = append(e.executed, node.ID)

		return "", true
	}

	instance, err := e.registry.CreateNode(ctx, string(node.Type), node.ID, node.Config)
	if err != nil {
		nodeLogger.Error("Node configuration invalid", "error", err)
		otelhelper.SetError(span, err)

		e.executed = append(e.executed, node.ID)
		e.errors = append(e.errors, fmt.Sprintf("node %s: %v", node.ID, err))

		return "", false
	}

	nodeLogger.Debug("Executing node")

	result, err := instance.Execute(ctx, e.execution)
	e.executed = append(e.executed, node.ID)

	if err != nil {
		nodeLogger.Error("Node execution failed", "error", err)
		otelhelper.SetError(span, err)

		e.errors = append(e.errors, fmt.Sprintf("node %s: %v", node.ID, err))

		return "", false
	}

	return result.Branch, true
}
