package email

import (
	"context"
	"log/slog"

	"github.com/formwright/formwright/pkg/protocol"
)

// Factory creates email node instances bound to a mail collaborator.
type Factory struct {
	mailer protocol.Mailer
}

// NewFactory creates a factory dispatching through the given mailer; nil
// falls back to a slog-backed mailer that only records the send.
func NewFactory(mailer protocol.Mailer) protocol.NodeFactory {
	if mailer == nil {
		mailer = &logMailer{}
	}

	return &Factory{mailer: mailer}
}

func (f *Factory) Create(_ context.Context, id string, config map[string]any) (protocol.Node, error) {
	return NewNode(id, config, f.mailer)
}

func (f *Factory) ID() string {
	return "email"
}

func (f *Factory) Name() string {
	return "Send Email"
}

func (f *Factory) Description() string {
	return "Sends an email through the configured mail provider."
}

func (f *Factory) Schema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"to":      map[string]any{"type": "string", "description": "Recipient address. Supports templating."},
			"subject": map[string]any{"type": "string"},
			"body":    map[string]any{"type": "string"},
		},
		"required": []string{"to", "subject"},
	}
}

// logMailer is the development default: it logs instead of delivering.
type logMailer struct{}

func (m *logMailer) Send(ctx context.Context, msg protocol.Message) error {
	slog.InfoContext(ctx, "email dispatched", "to", msg.To, "subject", msg.Subject)

	return nil
}
