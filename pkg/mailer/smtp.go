// Package mailer implements SMTP delivery for the email node.
package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/formwright/formwright/pkg/config"
	"github.com/formwright/formwright/pkg/protocol"
)

// SMTP sends node email through a plain SMTP relay with optional AUTH.
type SMTP struct {
	addr string
	from string
	auth smtp.Auth
}

func NewSMTP(cfg config.MailerConfig) *SMTP {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return &SMTP{
		addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		from: cfg.From,
		auth: auth,
	}
}

func (s *SMTP) Send(_ context.Context, msg protocol.Message) error {
	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{msg.To}, buildMessage(s.from, msg)); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", msg.To, err)
	}

	return nil
}

func buildMessage(from string, msg protocol.Message) []byte {
	var b strings.Builder

	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + msg.To + "\r\n")
	b.WriteString("Subject: " + msg.Subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)

	return []byte(b.String())
}
