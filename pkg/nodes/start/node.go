// Package start provides the entry-point node. It does nothing at execution
// time; the engine begins its walk here.
package start

import (
	"context"

	"github.com/formwright/formwright/pkg/models"
	"github.com/formwright/formwright/pkg/protocol"
)

// Node implements protocol.Node for the graph entry point.
type Node struct {
	id string
}

// NewNode creates a start node.
func NewNode(id string) *Node {
	return &Node{id: id}
}

func (n *Node) ID() string { return n.id }

func (n *Node) Type() models.NodeType { return models.NodeTypeStart }

func (n *Node) Execute(_ context.Context, _ *models.ExecutionContext) (protocol.Result, error) {
	return protocol.Result{}, nil
}

// Factory creates start node instances.
type Factory struct{}

// NewFactory creates a new factory instance.
func NewFactory() protocol.NodeFactory {
	return &Factory{}
}

func (f *Factory) Create(_ context.Context, id string, _ map[string]any) (protocol.Node, error) {
	return NewNode(id), nil
}

func (f *Factory) ID() string { return "start" }

func (f *Factory) Name() string { return "Start" }

func (f *Factory) Description() string {
	return "Entry point of the workflow; exactly one per graph."
}

func (f *Factory) Schema() map[string]any {
	return map[string]any{"type": "object", "properties": map[string]any{}}
}
