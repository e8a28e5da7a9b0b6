// Package api provides the HTTP request node: it calls an external endpoint
// and stores the parsed response in the execution variables.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/formwright/formwright/pkg/models"
	"github.com/formwright/formwright/pkg/protocol"
	"github.com/formwright/formwright/pkg/template"
)

const defaultTimeoutSeconds = 30

// Config defines the configuration for api nodes. URL, headers and body
// support templating against the execution context.
type Config struct {
	URL     string            `json:"url"`
	Method  string            `json:"method"`
	Headers map[string]string `json:"headers"`
	Body    string            `json:"body,omitempty"`
	Timeout int               `json:"timeout"`
}

// Node implements protocol.Node for HTTP requests.
type Node struct {
	id     string
	config Config
	client *http.Client
}

// NewNode creates an api node from its raw config map.
func NewNode(id string, config map[string]any) (*Node, error) {
	cfg := Config{
		Method:  http.MethodGet,
		Headers: make(map[string]string),
		Timeout: defaultTimeoutSeconds,
	}

	url, ok := config["url"].(string)
	if !ok || url == "" {
		return nil, errors.New("missing required field 'url'")
	}

	cfg.URL = url

	if method, ok := config["method"].(string); ok && method != "" {
		cfg.Method = strings.ToUpper(method)
	}

	if headers, ok := config["headers"].(map[string]any); ok {
		for k, v := range headers {
			if strVal, ok := v.(string); ok {
				cfg.Headers[k] = strVal
			}
		}
	}

	if body, ok := config["body"].(string); ok {
		cfg.Body = body
	}

	if timeout, ok := config["timeout"].(float64); ok && timeout > 0 {
		cfg.Timeout = int(timeout)
	}

	return &Node{
		id:     id,
		config: cfg,
		client: &http.Client{Timeout: time.Duration(cfg.Timeout) * time.Second},
	}, nil
}

func (n *Node) ID() string { return n.id }

func (n *Node) Type() models.NodeType { return models.NodeTypeAPI }

// Execute performs the HTTP request and stores the parsed response into
// variables.apiResponse. Network failures and non-2xx statuses return an
// error for the engine to contain; the branch below this node stops.
func (n *Node) Execute(ctx context.Context, execution *models.ExecutionContext) (protocol.Result, error) {
	data := template.ContextData(execution)

	url, err := template.RenderString(n.config.URL, data)
	if err != nil {
		return protocol.Result{}, fmt.Errorf("failed to render url: %w", err)
	}

	var body io.Reader

	if n.config.Body != "" {
		rendered, err := template.RenderString(n.config.Body, data)
		if err != nil {
			return protocol.Result{}, fmt.Errorf("failed to render body: %w", err)
		}

		body = strings.NewReader(rendered)
	}

	req, err := http.NewRequestWithContext(ctx, n.config.Method, url, body)
	if err != nil {
		return protocol.Result{}, fmt.Errorf("failed to build request: %w", err)
	}

	for key, value := range n.config.Headers {
		rendered, err := template.RenderString(value, data)
		if err != nil {
			rendered = value
		}

		req.Header.Set(key, rendered)
	}

	if req.Header.Get("Content-Type") == "" && body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return protocol.Result{}, fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return protocol.Result{}, fmt.Errorf("failed to read response from %s: %w", url, err)
	}

	// An empty body is treated as null; anything else must be valid JSON.
	var parsed any

	var parseErr error

	if len(bytes.TrimSpace(raw)) > 0 {
		if parseErr = json.Unmarshal(raw, &parsed); parseErr != nil {
			parsed = string(raw)
		}
	}

	response := map[string]any{
		"status_code": resp.StatusCode,
		"body":        parsed,
	}

	if execution.Variables == nil {
		execution.Variables = make(map[string]any)
	}

	execution.Variables[models.VarAPIResponse] = response

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return protocol.Result{}, fmt.Errorf("request to %s returned status %d", url, resp.StatusCode)
	}

	if parseErr != nil {
		return protocol.Result{}, fmt.Errorf("response from %s is not valid JSON: %w", url, parseErr)
	}

	return protocol.Result{Output: response}, nil
}
