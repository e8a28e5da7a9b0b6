// Package protocol defines the interfaces and contracts for pluggable
// workflow nodes and their external collaborators.
package protocol

import (
	"context"

	"github.com/formwright/formwright/pkg/models"
)

// Result is what a node hands back to the graph walk.
//
// Branch selects which outgoing edges to follow: condition nodes set it to
// "true" or "false" and only edges with that source handle are traversed;
// every other node leaves it empty, matching plain edges.
type Result struct {
	Output map[string]any
	Branch string
}

// Node executes one workflow step. Implementations record their effects on
// the execution context (variables, pending form actions); a returned error is
// contained by the engine: appended to the run's error list, halting only the
// branch the node sits on.
type Node interface {
	ID() string
	Type() models.NodeType
	Execute(ctx context.Context, execution *models.ExecutionContext) (Result, error)
}

// NodeFactory creates node instances and provides metadata about the type.
type NodeFactory interface {
	// Create builds a node instance with the given configuration.
	Create(ctx context.Context, id string, config map[string]any) (Node, error)

	// ID returns the unique node type tag.
	ID() string

	// Name returns the human-readable name for this node type.
	Name() string

	// Description returns what this node does.
	Description() string

	// Schema returns the JSON schema for configuring this node type.
	Schema() map[string]any
}
