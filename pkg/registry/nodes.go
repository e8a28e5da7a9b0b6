package registry

import (
	"github.com/formwright/formwright/pkg/nodes/action"
	"github.com/formwright/formwright/pkg/nodes/api"
	"github.com/formwright/formwright/pkg/nodes/condition"
	"github.com/formwright/formwright/pkg/nodes/email"
	"github.com/formwright/formwright/pkg/nodes/navigate"
	"github.com/formwright/formwright/pkg/nodes/start"
	"github.com/formwright/formwright/pkg/nodes/transform"
	"github.com/formwright/formwright/pkg/nodes/variable"
	"github.com/formwright/formwright/pkg/nodes/webhook"
	"github.com/formwright/formwright/pkg/protocol"
)

// RegisterDefaultNodes registers every built-in node factory. The mailer is
// handed to the email node; nil selects the log-only development mailer.
func (r *Registry) RegisterDefaultNodes(mailer protocol.Mailer) {
	r.RegisterNode(start.NewFactory())
	r.RegisterNode(api.NewFactory())
	r.RegisterNode(condition.NewFactory())
	r.RegisterNode(transform.NewFactory())
	r.RegisterNode(action.NewFactory())
	r.RegisterNode(email.NewFactory(mailer))
	r.RegisterNode(webhook.NewFactory())
	r.RegisterNode(navigate.NewFactory())
	r.RegisterNode(variable.NewFactory())
}
