package models

import "time"

// NodeType identifies what a workflow node does when the graph walk reaches it.
type NodeType string

const (
	NodeTypeStart     NodeType = "start"
	NodeTypeAPI       NodeType = "api"
	NodeTypeCondition NodeType = "condition"
	NodeTypeTransform NodeType = "transform"
	NodeTypeAction    NodeType = "action"
	NodeTypeEmail     NodeType = "email"
	NodeTypeWebhook   NodeType = "webhook"
	NodeTypeNavigate  NodeType = "navigate"
	NodeTypeVariable  NodeType = "variable"
)

// Branch handles on edges leaving a condition node.
const (
	BranchTrue  = "true"
	BranchFalse = "false"
)

// FlowNode is a vertex in the workflow graph. Config is the type-specific
// payload validated against the node factory's JSON schema at save time.
type FlowNode struct {
	ID        string         `json:"id"     validate:"required"`
	Type      NodeType       `json:"type"   validate:"required"`
	Name      string         `json:"name,omitempty"`
	Config    map[string]any `json:"config"`
	PositionX int            `json:"position_x"`
	PositionY int            `json:"position_y"`
}

// FlowEdge connects two nodes. SourceHandle distinguishes the true/false
// branch out of a condition node and is empty everywhere else.
type FlowEdge struct {
	ID           string `json:"id"`
	Source       string `json:"source"        validate:"required"`
	Target       string `json:"target"        validate:"required"`
	SourceHandle string `json:"source_handle,omitempty"`
}

// FlowGraph is a workflow definition: typed nodes plus directed edges.
// Exactly one start node is expected; its absence is a reported execution
// error, not a panic.
type FlowGraph struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"        validate:"required,min=3"`
	Description string         `json:"description"`
	Nodes       []*FlowNode    `json:"nodes"`
	Edges       []*FlowEdge    `json:"edges"`
	Variables   map[string]any `json:"variables,omitempty"`
	Owner       string         `json:"owner"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// StartNode returns the graph's start node, nil when absent.
func (g *FlowGraph) StartNode() *FlowNode {
	for _, node := range g.Nodes {
		if node.Type == NodeTypeStart {
			return node
		}
	}

	return nil
}

// NodeByID returns the node with the given id, nil when absent.
func (g *FlowGraph) NodeByID(id string) *FlowNode {
	for _, node := range g.Nodes {
		if node.ID == id {
			return node
		}
	}

	return nil
}

// EdgesFrom returns every edge leaving the node, preserving definition order.
func (g *FlowGraph) EdgesFrom(nodeID string) []*FlowEdge {
	var out []*FlowEdge

	for _, edge := range g.Edges {
		if edge.Source == nodeID {
			out = append(out, edge)
		}
	}

	return out
}
