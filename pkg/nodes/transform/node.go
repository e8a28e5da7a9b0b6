// Package transform provides the data transformation node. Expressions run
// through expr-lang against the submitted form data and current variables;
// the result lands in variables.transformResult.
package transform

import (
	"context"
	"errors"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/formwright/formwright/pkg/models"
	"github.com/formwright/formwright/pkg/protocol"
)

// Node implements protocol.Node for data transformation.
type Node struct {
	id         string
	expression string
	program    *vm.Program
}

// NewNode creates a transform node, compiling the expression up front so a
// syntax error surfaces at save time rather than mid-run.
func NewNode(id string, config map[string]any) (*Node, error) {
	expression, ok := config["expression"].(string)
	if !ok || expression == "" {
		return nil, errors.New("missing required field 'expression'")
	}

	program, err := expr.Compile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid expression: %w", err)
	}

	return &Node{
		id:         id,
		expression: expression,
		program:    program,
	}, nil
}

func (n *Node) ID() string { return n.id }

func (n *Node) Type() models.NodeType { return models.NodeTypeTransform }

// Execute runs the expression with formData and variables in scope and stores
// the result into variables.transformResult. A runtime failure is returned
// for the engine to contain; already-set variables are untouched.
func (n *Node) Execute(_ context.Context, execution *models.ExecutionContext) (protocol.Result, error) {
	env := map[string]any{
		"formData":  execution.FormData,
		"variables": execution.Variables,
	}

	output, err := expr.Run(n.program, env)
	if err != nil {
		return protocol.Result{}, fmt.Errorf("transformation failed: %w", err)
	}

	if execution.Variables == nil {
		execution.Variables = make(map[string]any)
	}

	execution.Variables[models.VarTransformResult] = output

	return protocol.Result{Output: map[string]any{"result": output}}, nil
}
