package transform

import (
	"context"

	"github.com/formwright/formwright/pkg/protocol"
)

// Factory creates transform node instances.
type Factory struct{}

// NewFactory creates a new factory instance.
func NewFactory() protocol.NodeFactory {
	return &Factory{}
}

func (f *Factory) Create(_ context.Context, id string, config map[string]any) (protocol.Node, error) {
	return NewNode(id, config)
}

func (f *Factory) ID() string {
	return "transform"
}

func (f *Factory) Name() string {
	return "Transform"
}

func (f *Factory) Description() string {
	return "Runs an expression over formData and variables, storing the result in variables.transformResult."
}

func (f *Factory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"expression": map[string]any{
				"type":        "string",
				"description": "expr-lang expression with formData and variables in scope.",
				"examples": []string{
					`upper(formData.name)`,
					`formData.quantity * formData.unit_price`,
					`{full_name: formData.first + " " + formData.last}`,
				},
			},
		},
		"required": []string{"expression"},
	}
}
