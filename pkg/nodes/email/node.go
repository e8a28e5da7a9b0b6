// Package email provides the email node, dispatching through the injected
// protocol.Mailer collaborator.
package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/formwright/formwright/pkg/models"
	"github.com/formwright/formwright/pkg/protocol"
	"github.com/formwright/formwright/pkg/template"
)

// Node implements protocol.Node for email dispatch.
type Node struct {
	id      string
	to      string
	subject string
	body    string
	mailer  protocol.Mailer
}

// NewNode creates an email node. Both 'to' and 'subject' are required; their
// absence is the node's descriptive failure, recorded by the engine rather
// than thrown to the caller.
func NewNode(id string, config map[string]any, mailer protocol.Mailer) (*Node, error) {
	to, _ := config["to"].(string)
	if to == "" {
		return nil, errors.New("email node requires a 'to' recipient")
	}

	subject, _ := config["subject"].(string)
	if subject == "" {
		return nil, errors.New("email node requires a 'subject'")
	}

	body, _ := config["body"].(string)

	return &Node{
		id:      id,
		to:      to,
		subject: subject,
		body:    body,
		mailer:  mailer,
	}, nil
}

func (n *Node) ID() string { return n.id }

func (n *Node) Type() models.NodeType { return models.NodeTypeEmail }

// Execute renders recipient, subject and body, then hands the message to the
// mail collaborator.
func (n *Node) Execute(ctx context.Context, execution *models.ExecutionContext) (protocol.Result, error) {
	data := template.ContextData(execution)

	to, err := template.RenderString(n.to, data)
	if err != nil {
		return protocol.Result{}, fmt.Errorf("failed to render recipient: %w", err)
	}

	subject, err := template.RenderString(n.subject, data)
	if err != nil {
		return protocol.Result{}, fmt.Errorf("failed to render subject: %w", err)
	}

	body, err := template.RenderString(n.body, data)
	if err != nil {
		return protocol.Result{}, fmt.Errorf("failed to render body: %w", err)
	}

	msg := protocol.Message{To: to, Subject: subject, Body: body}
	if err := n.mailer.Send(ctx, msg); err != nil {
		return protocol.Result{}, fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	return protocol.Result{Output: map[string]any{"to": to, "subject": subject}}, nil
}
