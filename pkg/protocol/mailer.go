package protocol

import "context"

// Message is an outbound email dispatched by the email node.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer is the external mail collaborator. The engine never implements
// delivery itself; deployments inject an SMTP or provider-backed Mailer.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
