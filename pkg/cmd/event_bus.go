package cmd

import (
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"

	"github.com/formwright/formwright/pkg/channels/gochannel"
	"github.com/formwright/formwright/pkg/eventbus"
)

// NewEventBus creates the in-process event bus used for form and workflow
// lifecycle events.
func NewEventBus(logger *slog.Logger) (eventbus.EventBus, error) {
	pub, sub, err := gochannel.CreateChannel(watermill.NewSlogLogger(logger))
	if err != nil {
		return nil, err
	}

	return eventbus.NewWatermillEventBus(pub, sub), nil
}
