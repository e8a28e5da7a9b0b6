// Package registry maps workflow node types to their factories and validates
// node configuration against each factory's JSON schema.
package registry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/formwright/formwright/pkg/protocol"
)

// Registry holds the registered node factories.
type Registry struct {
	logger        *slog.Logger
	nodeFactories map[string]protocol.NodeFactory
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger:        logger,
		nodeFactories: make(map[string]protocol.NodeFactory),
	}
}

// RegisterNode registers a node factory under its type tag.
func (r *Registry) RegisterNode(factory protocol.NodeFactory) {
	r.nodeFactories[factory.ID()] = factory
}

// CreateNode instantiates a node of the given type. Unknown types are
// reported so the engine can warn and skip.
func (r *Registry) CreateNode(ctx context.Context, nodeType, id string, config map[string]any) (protocol.Node, error) {
	factory, ok := r.nodeFactories[nodeType]
	if !ok {
		return nil, fmt.Errorf("node type %q not registered", nodeType)
	}

	return factory.Create(ctx, id, config)
}

// IsRegistered reports whether the node type has a factory.
func (r *Registry) IsRegistered(nodeType string) bool {
	_, ok := r.nodeFactories[nodeType]

	return ok
}

// HealthCheck reports whether the registry has node factories available.
func (r *Registry) HealthCheck() (string, bool) {
	if len(r.nodeFactories) == 0 {
		return "No node factories registered", false
	}

	return fmt.Sprintf("%d node factories registered", len(r.nodeFactories)), true
}

// NodeDescriptor describes a registered node factory for API listings.
type NodeDescriptor struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Schema      map[string]any `json:"schema"`
}

// Descriptors returns every registered node factory's metadata.
func (r *Registry) Descriptors() []NodeDescriptor {
	descriptors := make([]NodeDescriptor, 0, len(r.nodeFactories))
	for _, factory := range r.nodeFactories {
		descriptors = append(descriptors, NodeDescriptor{
			ID:          factory.ID(),
			Name:        factory.Name(),
			Description: factory.Description(),
			Schema:      factory.Schema(),
		})
	}

	return descriptors
}

// NodeTypes returns the registered type tags.
func (r *Registry) NodeTypes() []string {
	types := make([]string, 0, len(r.nodeFactories))
	for nodeType := range r.nodeFactories {
		types = append(types, nodeType)
	}

	return types
}
