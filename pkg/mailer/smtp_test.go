package mailer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/formwright/formwright/pkg/config"
	"github.com/formwright/formwright/pkg/protocol"
)

func TestBuildMessage(t *testing.T) {
	t.Parallel()

	raw := string(buildMessage("forms@example.com", protocol.Message{
		To:      "user@example.com",
		Subject: "Submission received",
		Body:    "Thanks for submitting.",
	}))

	assert.Contains(t, raw, "From: forms@example.com\r\n")
	assert.Contains(t, raw, "To: user@example.com\r\n")
	assert.Contains(t, raw, "Subject: Submission received\r\n")
	assert.True(t, strings.HasSuffix(raw, "\r\n\r\nThanks for submitting."))
}

func TestNewSMTP(t *testing.T) {
	t.Parallel()

	withAuth := NewSMTP(config.MailerConfig{
		Host: "smtp.example.com", Port: 587,
		Username: "robot", Password: "hunter2",
		From: "forms@example.com",
	})
	assert.Equal(t, "smtp.example.com:587", withAuth.addr)
	assert.NotNil(t, withAuth.auth)

	open := NewSMTP(config.MailerConfig{Host: "localhost", Port: 25, From: "forms@example.com"})
	assert.Nil(t, open.auth)
}
