package main

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formwright/formwright/pkg/channels/gochannel"
	"github.com/formwright/formwright/pkg/eventbus"
	"github.com/formwright/formwright/pkg/events"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.String()
}

func waitForLog(t *testing.T, buf *syncBuffer, substr string) string {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if out := buf.String(); strings.Contains(out, substr) {
			return out
		}

		time.Sleep(10 * time.Millisecond)
	}

	t.Fatalf("timed out waiting for %q in audit log", substr)

	return ""
}

func TestRegisterEventListenersLogsSubmissions(t *testing.T) {
	pub, sub, err := gochannel.CreateTestChannel(watermill.NopLogger{})
	require.NoError(t, err)

	bus := eventbus.NewWatermillEventBus(pub, sub)
	defer func() { _ = bus.Close() }()

	buf := &syncBuffer{}
	logger := slog.New(slog.NewTextHandler(buf, nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, registerEventListeners(ctx, logger, bus))

	err = bus.Publish(ctx, "form-1", events.FormSubmitted{
		BaseEvent: events.BaseEvent{
			ID:        bus.GenerateID(),
			Type:      events.FormSubmittedEvent,
			Timestamp: time.Now().UTC(),
		},
		FormID:   "form-1",
		FormData: map[string]any{"email": "ada@example.com"},
	})
	require.NoError(t, err)

	out := waitForLog(t, buf, "Form submitted")
	assert.Contains(t, out, "form_id=form-1")
	assert.Contains(t, out, "listener=audit")
}

func TestRegisterEventListenersLogsWorkflowFinish(t *testing.T) {
	pub, sub, err := gochannel.CreateTestChannel(watermill.NopLogger{})
	require.NoError(t, err)

	bus := eventbus.NewWatermillEventBus(pub, sub)
	defer func() { _ = bus.Close() }()

	buf := &syncBuffer{}
	logger := slog.New(slog.NewTextHandler(buf, nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, registerEventListeners(ctx, logger, bus))

	err = bus.Publish(ctx, "wf-1", events.WorkflowExecutionFinished{
		BaseEvent: events.BaseEvent{
			ID:        bus.GenerateID(),
			Type:      events.WorkflowExecutionFinishedEvent,
			Timestamp: time.Now().UTC(),
		},
		WorkflowID:    "wf-1",
		ExecutionID:   "exec-1",
		Success:       true,
		ExecutedNodes: []string{"start-1"},
	})
	require.NoError(t, err)

	out := waitForLog(t, buf, "Workflow execution finished")
	assert.Contains(t, out, "workflow_id=wf-1")
	assert.Contains(t, out, "success=true")
}
