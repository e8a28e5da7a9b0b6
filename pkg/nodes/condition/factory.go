package condition

import (
	"context"

	"github.com/formwright/formwright/pkg/protocol"
)

// Factory creates condition node instances.
type Factory struct{}

// NewFactory creates a new factory instance.
func NewFactory() protocol.NodeFactory {
	return &Factory{}
}

func (f *Factory) Create(_ context.Context, id string, config map[string]any) (protocol.Node, error) {
	return NewNode(id, config)
}

func (f *Factory) ID() string {
	return "condition"
}

func (f *Factory) Name() string {
	return "Condition"
}

func (f *Factory) Description() string {
	return "Evaluates a field condition against submitted form data and routes execution to the true or false branch."
}

func (f *Factory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"field_id": map[string]any{
				"type":        "string",
				"description": "ID of the form field to test.",
			},
			"operator": map[string]any{
				"type": "string",
				"enum": []string{"equals", "notEquals", "contains", "greaterThan", "lessThan", "isEmpty", "isNotEmpty"},
			},
			"value": map[string]any{
				"description": "Comparison value; unused by isEmpty/isNotEmpty.",
			},
		},
		"required": []string{"field_id", "operator"},
	}
}
