// Package testutil provides test data builders for workflow graphs.
package testutil

import (
	"github.com/google/uuid"

	"github.com/formwright/formwright/pkg/models"
)

// CreateTestNode creates a start node with default values that can be
// overridden.
func CreateTestNode(overrides ...func(*models.FlowNode)) *models.FlowNode {
	node := &models.FlowNode{
		ID:     uuid.New().String(),
		Type:   "start",
		Name:   "Test Node",
		Config: map[string]any{},
	}

	for _, override := range overrides {
		override(node)
	}

	return node
}

// WithType sets the node type.
func WithType(nodeType models.NodeType) func(*models.FlowNode) {
	return func(n *models.FlowNode) {
		n.Type = nodeType
	}
}

// WithID sets the node ID.
func WithID(id string) func(*models.FlowNode) {
	return func(n *models.FlowNode) {
		n.ID = id
	}
}

// WithConfig sets the node configuration.
func WithConfig(config map[string]any) func(*models.FlowNode) {
	return func(n *models.FlowNode) {
		n.Config = config
	}
}

// Edge connects two nodes with an unlabeled edge.
func Edge(source, target string) *models.FlowEdge {
	return &models.FlowEdge{
		ID:     uuid.New().String(),
		Source: source,
		Target: target,
	}
}

// BranchEdge connects two nodes following a named condition branch.
func BranchEdge(source, target, handle string) *models.FlowEdge {
	edge := Edge(source, target)
	edge.SourceHandle = handle

	return edge
}

// CreateTestGraph assembles a named graph from nodes and edges.
func CreateTestGraph(nodes []*models.FlowNode, edges []*models.FlowEdge) *models.FlowGraph {
	return &models.FlowGraph{
		ID:    uuid.New().String(),
		Name:  "Test Graph",
		Nodes: nodes,
		Edges: edges,
	}
}
