package api

import (
	"context"

	"github.com/formwright/formwright/pkg/protocol"
)

// Factory creates api node instances.
type Factory struct{}

// NewFactory creates a new factory instance.
func NewFactory() protocol.NodeFactory {
	return &Factory{}
}

func (f *Factory) Create(_ context.Context, id string, config map[string]any) (protocol.Node, error) {
	return NewNode(id, config)
}

func (f *Factory) ID() string {
	return "api"
}

func (f *Factory) Name() string {
	return "API Call"
}

func (f *Factory) Description() string {
	return "Calls an external HTTP endpoint and stores the parsed response in variables.apiResponse."
}

func (f *Factory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"url": map[string]any{
				"type":        "string",
				"description": "Endpoint URL. Supports templating, e.g. https://api.example.com/users/{{.form_data.user_id}}",
			},
			"method": map[string]any{
				"type":    "string",
				"enum":    []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
				"default": "GET",
			},
			"headers": map[string]any{
				"type":                 "object",
				"additionalProperties": map[string]any{"type": "string"},
			},
			"body": map[string]any{
				"type":        "string",
				"description": "Request body template.",
			},
			"timeout": map[string]any{
				"type":        "number",
				"description": "Request timeout in seconds.",
				"default":     30,
			},
		},
		"required": []string{"url"},
	}
}
