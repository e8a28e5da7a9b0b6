package webhook

import (
	"context"

	"github.com/formwright/formwright/pkg/protocol"
)

// Factory creates webhook node instances.
type Factory struct{}

// NewFactory creates a new factory instance.
func NewFactory() protocol.NodeFactory {
	return &Factory{}
}

func (f *Factory) Create(_ context.Context, id string, config map[string]any) (protocol.Node, error) {
	return NewNode(id, config)
}

func (f *Factory) ID() string {
	return "webhook"
}

func (f *Factory) Name() string {
	return "Webhook"
}

func (f *Factory) Description() string {
	return "POSTs the configured payload, or the full form data, to an external URL."
}

func (f *Factory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"url": map[string]any{
				"type":        "string",
				"description": "Webhook URL. Supports templating.",
			},
			"payload": map[string]any{
				"type":        "object",
				"description": "JSON payload; string values are template-rendered. Defaults to the full form data.",
			},
			"timeout": map[string]any{
				"type":    "number",
				"default": 30,
			},
		},
		"required": []string{"url"},
	}
}
