package registry

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/formwright/formwright/pkg/models"
)

// ValidateNodeConfig validates a node's configuration against the JSON schema
// published by its factory. Unknown node types fail validation here so broken
// graphs are rejected at save time instead of warned about at run time.
func (r *Registry) ValidateNodeConfig(nodeType string, config map[string]any) error {
	factory, ok := r.nodeFactories[nodeType]
	if !ok {
		return fmt.Errorf("node type %q not registered", nodeType)
	}

	if config == nil {
		config = map[string]any{}
	}

	schemaLoader := gojsonschema.NewGoLoader(factory.Schema())
	dataLoader := gojsonschema.NewGoLoader(config)

	result, err := gojsonschema.Validate(schemaLoader, dataLoader)
	if err != nil {
		return fmt.Errorf("schema validation for %q: %w", nodeType, err)
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, resultError := range result.Errors() {
			details = append(details, resultError.String())
		}

		return fmt.Errorf("invalid %q config: %s", nodeType, strings.Join(details, "; "))
	}

	return nil
}

// ValidateGraph checks every node of a workflow graph against its config
// schema and requires exactly one start node.
func (r *Registry) ValidateGraph(graph *models.FlowGraph) error {
	startCount := 0

	for _, node := range graph.Nodes {
		if node.Type == models.NodeTypeStart {
			startCount++
		}

		if err := r.ValidateNodeConfig(string(node.Type), node.Config); err != nil {
			return fmt.Errorf("node %s: %w", node.ID, err)
		}
	}

	if startCount != 1 {
		return fmt.Errorf("workflow must have exactly one start node, found %d", startCount)
	}

	return nil
}
