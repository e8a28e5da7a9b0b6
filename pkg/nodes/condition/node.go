// Package condition provides the branching node: it evaluates a field
// condition against submitted form data and routes the walk down the true or
// false edge.
package condition

import (
	"context"
	"errors"

	"github.com/formwright/formwright/pkg/models"
	"github.com/formwright/formwright/pkg/protocol"
	"github.com/formwright/formwright/pkg/rules"
)

// Node implements protocol.Node for conditional branching. The operator
// semantics are shared with the rule engine.
type Node struct {
	id   string
	cond models.Condition
}

// NewNode creates a condition node from its raw config map.
func NewNode(id string, config map[string]any) (*Node, error) {
	fieldID, ok := config["field_id"].(string)
	if !ok || fieldID == "" {
		return nil, errors.New("missing required field 'field_id'")
	}

	operator, ok := config["operator"].(string)
	if !ok || operator == "" {
		return nil, errors.New("missing required field 'operator'")
	}

	return &Node{
		id: id,
		cond: models.Condition{
			FieldID:  fieldID,
			Operator: models.ConditionOperator(operator),
			Value:    config["value"],
		},
	}, nil
}

func (n *Node) ID() string { return n.id }

func (n *Node) Type() models.NodeType { return models.NodeTypeCondition }

// Execute evaluates the condition and selects exactly one branch. A missing
// branch edge downstream simply ends that path; this node never fails.
func (n *Node) Execute(_ context.Context, execution *models.ExecutionContext) (protocol.Result, error) {
	matched := rules.EvaluateCondition(n.cond, execution.FormData)

	branch := models.BranchFalse
	if matched {
		branch = models.BranchTrue
	}

	return protocol.Result{
		Branch: branch,
		Output: map[string]any{"condition_result": matched},
	}, nil
}
