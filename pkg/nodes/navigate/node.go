// Package navigate provides the navigate node: it records a redirect URL for
// the caller to act on after the run completes.
package navigate

import (
	"context"
	"errors"

	"github.com/formwright/formwright/pkg/models"
	"github.com/formwright/formwright/pkg/protocol"
	"github.com/formwright/formwright/pkg/template"
)

// Node implements protocol.Node for navigation.
type Node struct {
	id  string
	url string
}

// NewNode creates a navigate node from its raw config map.
func NewNode(id string, config map[string]any) (*Node, error) {
	url, ok := config["url"].(string)
	if !ok || url == "" {
		return nil, errors.New("missing required field 'url'")
	}

	return &Node{id: id, url: url}, nil
}

func (n *Node) ID() string { return n.id }

func (n *Node) Type() models.NodeType { return models.NodeTypeNavigate }

// Execute stores the rendered URL into variables.navigateTo.
func (n *Node) Execute(_ context.Context, execution *models.ExecutionContext) (protocol.Result, error) {
	url, err := template.RenderString(n.url, template.ContextData(execution))
	if err != nil {
		url = n.url
	}

	if execution.Variables == nil {
		execution.Variables = make(map[string]any)
	}

	execution.Variables[models.VarNavigateTo] = url

	return protocol.Result{Output: map[string]any{"url": url}}, nil
}

// Factory creates navigate node instances.
type Factory struct{}

// NewFactory creates a new factory instance.
func NewFactory() protocol.NodeFactory {
	return &Factory{}
}

func (f *Factory) Create(_ context.Context, id string, config map[string]any) (protocol.Node, error) {
	return NewNode(id, config)
}

func (f *Factory) ID() string { return "navigate" }

func (f *Factory) Name() string { return "Navigate" }

func (f *Factory) Description() string {
	return "Stores a redirect URL in variables.navigateTo for the caller to follow."
}

func (f *Factory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"url": map[string]any{"type": "string", "description": "Target URL. Supports templating."},
		},
		"required": []string{"url"},
	}
}
