// Package action provides the form-action node: it records a pending
// show/hide/enable/disable/require instruction for the consuming renderer.
package action

import (
	"context"
	"errors"
	"fmt"

	"github.com/formwright/formwright/pkg/models"
	"github.com/formwright/formwright/pkg/protocol"
)

// Node implements protocol.Node for pending form actions.
type Node struct {
	id         string
	actionType models.RuleActionType
	targetID   string
}

// NewNode creates a form-action node from its raw config map.
func NewNode(id string, config map[string]any) (*Node, error) {
	actionType, _ := config["action"].(string)
	targetID, _ := config["target_id"].(string)

	if targetID == "" {
		return nil, errors.New("missing required field 'target_id'")
	}

	switch models.RuleActionType(actionType) {
	case models.RuleActionShow, models.RuleActionHide, models.RuleActionEnable, models.RuleActionDisable, models.RuleActionRequire:
	default:
		return nil, fmt.Errorf("unsupported action %q", actionType)
	}

	return &Node{
		id:         id,
		actionType: models.RuleActionType(actionType),
		targetID:   targetID,
	}, nil
}

func (n *Node) ID() string { return n.id }

func (n *Node) Type() models.NodeType { return models.NodeTypeAction }

func (n *Node) Execute(_ context.Context, execution *models.ExecutionContext) (protocol.Result, error) {
	execution.AppendFormAction(models.PendingFormAction{
		Type:     n.actionType,
		TargetID: n.targetID,
	})

	return protocol.Result{Output: map[string]any{"action": string(n.actionType), "target_id": n.targetID}}, nil
}

// Factory creates form-action node instances.
type Factory struct{}

// NewFactory creates a new factory instance.
func NewFactory() protocol.NodeFactory {
	return &Factory{}
}

func (f *Factory) Create(_ context.Context, id string, config map[string]any) (protocol.Node, error) {
	return NewNode(id, config)
}

func (f *Factory) ID() string { return "action" }

func (f *Factory) Name() string { return "Form Action" }

func (f *Factory) Description() string {
	return "Records a pending show/hide/enable/disable/require action against a target field."
}

func (f *Factory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"action":    map[string]any{"type": "string", "enum": []string{"show", "hide", "enable", "disable", "require"}},
			"target_id": map[string]any{"type": "string"},
		},
		"required": []string{"action", "target_id"},
	}
}
