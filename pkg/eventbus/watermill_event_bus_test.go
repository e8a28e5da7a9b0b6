package eventbus

import (
	"context"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formwright/formwright/pkg/channels/gochannel"
	"github.com/formwright/formwright/pkg/events"
)

func TestWatermillEventBus_PublishSubscribe(t *testing.T) {
	pub, sub, err := gochannel.CreateTestChannel(watermill.NopLogger{})
	require.NoError(t, err)

	bus := NewWatermillEventBus(pub, sub)
	defer func() { _ = bus.Close() }()

	received := make(chan *events.FormSubmitted, 1)

	err = bus.Handle(events.FormSubmittedEvent, func(_ context.Context, event interface{}) error {
		submitted, ok := event.(*events.FormSubmitted)
		if ok {
			received <- submitted
		}

		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, bus.Subscribe(ctx))

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

	select {
	case got := <-received:
		assert.Equal(t, "form-1", got.FormID)
		assert.Equal(t, "ada@example.com", got.FormData["email"])
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestWatermillEventBus_UnhandledEventIsAcked(t *testing.T) {
	pub, sub, err := gochannel.CreateChannel(watermill.NopLogger{})
	require.NoError(t, err)

	bus := NewWatermillEventBus(pub, sub)
	defer func() { _ = bus.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, bus.Subscribe(ctx))

	// No handler registered for this type; publish must not error.
	err = bus.Publish(ctx, "form-1", events.FormDeleted{
		BaseEvent: events.BaseEvent{ID: bus.GenerateID(), Type: events.FormDeletedEvent},
		FormID:    "form-1",
	})
	assert.NoError(t, err)
}
