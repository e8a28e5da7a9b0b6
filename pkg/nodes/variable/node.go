// Package variable provides the variable-set node: it copies a submitted
// field value or a literal into the execution variables.
package variable

import (
	"context"
	"errors"

	"github.com/formwright/formwright/pkg/models"
	"github.com/formwright/formwright/pkg/protocol"
)

// Source selects where the value comes from.
const (
	SourceField  = "field"
	SourceCustom = "custom"
)

// Node implements protocol.Node for variable assignment.
type Node struct {
	id      string
	name    string
	source  string
	fieldID string
	value   any
}

// NewNode creates a variable node from its raw config map.
func NewNode(id string, config map[string]any) (*Node, error) {
	name, ok := config["variable_name"].(string)
	if !ok || name == "" {
		return nil, errors.New("missing required field 'variable_name'")
	}

	source, _ := config["source"].(string)
	if source == "" {
		source = SourceCustom
	}

	if source != SourceField && source != SourceCustom {
		return nil, errors.New("source must be 'field' or 'custom'")
	}

	fieldID, _ := config["field_id"].(string)
	if source == SourceField && fieldID == "" {
		return nil, errors.New("source 'field' requires 'field_id'")
	}

	return &Node{
		id:      id,
		name:    name,
		source:  source,
		fieldID: fieldID,
		value:   config["value"],
	}, nil
}

func (n *Node) ID() string { return n.id }

func (n *Node) Type() models.NodeType { return models.NodeTypeVariable }

func (n *Node) Execute(_ context.Context, execution *models.ExecutionContext) (protocol.Result, error) {
	value := n.value
	if n.source == SourceField {
		value = execution.FormData[n.fieldID]
	}

	if execution.Variables == nil {
		execution.Variables = make(map[string]any)
	}

	execution.Variables[n.name] = value

	return protocol.Result{Output: map[string]any{n.name: value}}, nil
}

// Factory creates variable node instances.
type Factory struct{}

// NewFactory creates a new factory instance.
func NewFactory() protocol.NodeFactory {
	return &Factory{}
}

func (f *Factory) Create(_ context.Context, id string, config map[string]any) (protocol.Node, error) {
	return NewNode(id, config)
}

func (f *Factory) ID() string { return "variable" }

func (f *Factory) Name() string { return "Set Variable" }

func (f *Factory) Description() string {
	return "Sets an execution variable from a submitted field value or a literal."
}

func (f *Factory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"variable_name": map[string]any{"type": "string"},
			"source":        map[string]any{"type": "string", "enum": []string{SourceField, SourceCustom}, "default": SourceCustom},
			"field_id":      map[string]any{"type": "string", "description": "Form field to copy when source is 'field'."},
			"value":         map[string]any{"description": "Literal value when source is 'custom'."},
		},
		"required": []string{"variable_name"},
	}
}
