package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/formwright/formwright/pkg/models"
)

func TestAPINode_Execute_StoresParsedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/ada" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 7, "plan": "pro"}`))
	}))
	defer server.Close()

	node, err := NewNode("test-api", map[string]any{
		"url": server.URL + "/users/{{.form_data.username}}",
	})
	if err != nil {
		t.Fatalf("Failed to create node: %v", err)
	}

	execution := &models.ExecutionContext{
		ID:       "test-exec",
		FormData: map[string]any{"username": "ada"},
	}

	result, err := node.Execute(context.Background(), execution)
	if err != nil {
		t.Fatalf("Node execution failed: %v", err)
	}

	response, ok := execution.Variables[models.VarAPIResponse].(map[string]any)
	if !ok {
		t.Fatal("Expected apiResponse variable to be set")
	}

	if response["status_code"] != 200 {
		t.Errorf("Expected status 200, got: %v", response["status_code"])
	}

	body, ok := response["body"].(map[string]any)
	if !ok || body["plan"] != "pro" {
		t.Errorf("Expected parsed JSON body, got: %v", response["body"])
	}

	if result.Output["status_code"] != 200 {
		t.Errorf("Expected output status 200, got: %v", result.Output["status_code"])
	}
}

func TestAPINode_Execute_NonJSONBodyFailsAfterCapture(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("plain text, not json"))
	}))
	defer server.Close()

	node, err := NewNode("test-api", map[string]any{"url": server.URL})
	if err != nil {
		t.Fatalf("Failed to create node: %v", err)
	}

	execution := &models.ExecutionContext{ID: "test-exec"}

	if _, err := node.Execute(context.Background(), execution); err == nil {
		t.Fatal("Expected an error for a non-JSON response body")
	}

	response := execution.Variables[models.VarAPIResponse].(map[string]any)
	if response["body"] != "plain text, not json" {
		t.Errorf("Expected raw body captured, got: %v", response["body"])
	}
}

func TestAPINode_Execute_EmptyBodyIsNull(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	node, err := NewNode("test-api", map[string]any{"url": server.URL})
	if err != nil {
		t.Fatalf("Failed to create node: %v", err)
	}

	execution := &models.ExecutionContext{ID: "test-exec"}

	if _, err := node.Execute(context.Background(), execution); err != nil {
		t.Fatalf("Node execution failed: %v", err)
	}

	response := execution.Variables[models.VarAPIResponse].(map[string]any)
	if response["body"] != nil {
		t.Errorf("Expected nil body for an empty response, got: %v", response["body"])
	}
}

func TestAPINode_Execute_NonSuccessStatusFailsAfterCapture(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":"upstream"}`))
	}))
	defer server.Close()

	node, err := NewNode("test-api", map[string]any{"url": server.URL})
	if err != nil {
		t.Fatalf("Failed to create node: %v", err)
	}

	execution := &models.ExecutionContext{ID: "test-exec"}

	if _, err := node.Execute(context.Background(), execution); err == nil {
		t.Fatal("Expected error for 502 response")
	}

	// The response is still recorded so downstream inspection is possible.
	response, ok := execution.Variables[models.VarAPIResponse].(map[string]any)
	if !ok || response["status_code"] != 502 {
		t.Errorf("Expected apiResponse with status 502, got: %v", execution.Variables[models.VarAPIResponse])
	}
}

func TestAPINode_Execute_SendsRenderedBodyAndHeaders(t *testing.T) {
	var gotAuth, gotBody string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")

		buf := make([]byte, r.ContentLength)
		_, _ = r.Body.Read(buf)
		gotBody = string(buf)

		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	node, err := NewNode("test-api", map[string]any{
		"url":    server.URL,
		"method": "post",
		"headers": map[string]any{
			"Authorization": "Bearer {{.variables.token}}",
		},
		"body": `{"email": "{{.form_data.email}}"}`,
	})
	if err != nil {
		t.Fatalf("Failed to create node: %v", err)
	}

	execution := &models.ExecutionContext{
		ID:        "test-exec",
		FormData:  map[string]any{"email": "ada@example.com"},
		Variables: map[string]any{"token": "t-123"},
	}

	if _, err := node.Execute(context.Background(), execution); err != nil {
		t.Fatalf("Node execution failed: %v", err)
	}

	if gotAuth != "Bearer t-123" {
		t.Errorf("Expected rendered auth header, got: %q", gotAuth)
	}

	if gotBody != `{"email": "ada@example.com"}` {
		t.Errorf("Expected rendered body, got: %q", gotBody)
	}
}

func TestAPINode_NewNode_RequiresURL(t *testing.T) {
	if _, err := NewNode("n1", map[string]any{"method": "GET"}); err == nil {
		t.Error("Expected error for missing url")
	}
}
