package variable

import (
	"context"
	"testing"

	"github.com/formwright/formwright/pkg/models"
)

func TestVariableNode_Execute_FromField(t *testing.T) {
	node, err := NewNode("test-variable", map[string]any{
		"variable_name": "customerEmail",
		"source":        SourceField,
		"field_id":      "email",
	})
	if err != nil {
		t.Fatalf("Failed to create node: %v", err)
	}

	execution := &models.ExecutionContext{
		ID:       "test-exec",
		FormData: map[string]any{"email": "ada@example.com"},
	}

	if _, err := node.Execute(context.Background(), execution); err != nil {
		t.Fatalf("Node execution failed: %v", err)
	}

	if execution.Variables["customerEmail"] != "ada@example.com" {
		t.Errorf("Expected field value to be copied, got: %v", execution.Variables["customerEmail"])
	}
}

func TestVariableNode_Execute_CustomValue(t *testing.T) {
	node, err := NewNode("test-variable", map[string]any{
		"variable_name": "priority",
		"value":         "high",
	})
	if err != nil {
		t.Fatalf("Failed to create node: %v", err)
	}

	execution := &models.ExecutionContext{ID: "test-exec"}

	if _, err := node.Execute(context.Background(), execution); err != nil {
		t.Fatalf("Node execution failed: %v", err)
	}

	if execution.Variables["priority"] != "high" {
		t.Errorf("Expected literal value, got: %v", execution.Variables["priority"])
	}
}

func TestVariableNode_NewNode_Validation(t *testing.T) {
	if _, err := NewNode("n1", map[string]any{"value": 1}); err == nil {
		t.Error("Expected error for missing variable_name")
	}

	if _, err := NewNode("n1", map[string]any{"variable_name": "x", "source": SourceField}); err == nil {
		t.Error("Expected error for field source without field_id")
	}

	if _, err := NewNode("n1", map[string]any{"variable_name": "x", "source": "env"}); err == nil {
		t.Error("Expected error for unknown source")
	}
}
