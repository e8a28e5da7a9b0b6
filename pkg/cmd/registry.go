package cmd

import (
	"log/slog"

	"github.com/formwright/formwright/pkg/protocol"
	"github.com/formwright/formwright/pkg/registry"
)

// NewRegistry builds a node registry with every built-in node factory
// registered. A nil mailer leaves the email node in log-only mode.
func NewRegistry(logger *slog.Logger, mailer protocol.Mailer) *registry.Registry {
	reg := registry.NewRegistry(logger)
	reg.RegisterDefaultNodes(mailer)

	return reg
}
