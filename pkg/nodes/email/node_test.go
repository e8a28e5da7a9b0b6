package email

import (
	"context"
	"errors"
	"testing"

	"github.com/formwright/formwright/pkg/models"
	"github.com/formwright/formwright/pkg/protocol"
)

type captureMailer struct {
	sent []protocol.Message
	err  error
}

func (m *captureMailer) Send(_ context.Context, msg protocol.Message) error {
	if m.err != nil {
		return m.err
	}

	m.sent = append(m.sent, msg)

	return nil
}

func TestEmailNode_Execute_RendersAndSends(t *testing.T) {
	mailer := &captureMailer{}

	node, err := NewNode("test-email", map[string]any{
		"to":      "{{.form_data.email}}",
		"subject": "Welcome {{.form_data.name}}",
		"body":    "Your plan: {{.form_data.plan}}",
	}, mailer)
	if err != nil {
		t.Fatalf("Failed to create node: %v", err)
	}

	execution := &models.ExecutionContext{
		ID:       "test-exec",
		FormData: map[string]any{"email": "ada@example.com", "name": "Ada", "plan": "pro"},
	}

	if _, err := node.Execute(context.Background(), execution); err != nil {
		t.Fatalf("Node execution failed: %v", err)
	}

	if len(mailer.sent) != 1 {
		t.Fatalf("Expected one message, got %d", len(mailer.sent))
	}

	msg := mailer.sent[0]
	if msg.To != "ada@example.com" || msg.Subject != "Welcome Ada" || msg.Body != "Your plan: pro" {
		t.Errorf("Unexpected rendered message: %+v", msg)
	}
}

func TestEmailNode_Execute_MailerFailurePropagates(t *testing.T) {
	mailer := &captureMailer{err: errors.New("smtp unavailable")}

	node, err := NewNode("test-email", map[string]any{
		"to":      "ops@example.com",
		"subject": "alert",
	}, mailer)
	if err != nil {
		t.Fatalf("Failed to create node: %v", err)
	}

	execution := &models.ExecutionContext{ID: "test-exec"}

	if _, err := node.Execute(context.Background(), execution); err == nil {
		t.Error("Expected mailer failure to propagate")
	}
}

func TestEmailNode_NewNode_Validation(t *testing.T) {
	if _, err := NewNode("n1", map[string]any{"subject": "hi"}, &captureMailer{}); err == nil {
		t.Error("Expected error for missing recipient")
	}

	if _, err := NewNode("n1", map[string]any{"to": "a@b.c"}, &captureMailer{}); err == nil {
		t.Error("Expected error for missing subject")
	}
}
