// Package webhook provides the webhook node: it POSTs a payload, or the full
// form data when no payload is configured, to an external URL.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/formwright/formwright/pkg/models"
	"github.com/formwright/formwright/pkg/protocol"
	"github.com/formwright/formwright/pkg/template"
)

const defaultTimeoutSeconds = 30

// Node implements protocol.Node for webhook dispatch.
type Node struct {
	id      string
	url     string
	payload map[string]any
	client  *http.Client
}

// NewNode creates a webhook node from its raw config map.
func NewNode(id string, config map[string]any) (*Node, error) {
	url, ok := config["url"].(string)
	if !ok || url == "" {
		return nil, errors.New("missing required field 'url'")
	}

	timeout := defaultTimeoutSeconds
	if t, ok := config["timeout"].(float64); ok && t > 0 {
		timeout = int(t)
	}

	payload, _ := config["payload"].(map[string]any)

	return &Node{
		id:      id,
		url:     url,
		payload: payload,
		client:  &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}, nil
}

func (n *Node) ID() string { return n.id }

func (n *Node) Type() models.NodeType { return models.NodeTypeWebhook }

// Execute POSTs the configured payload, falling back to the full form data
// snapshot. String payload values are template-rendered.
func (n *Node) Execute(ctx context.Context, execution *models.ExecutionContext) (protocol.Result, error) {
	data := template.ContextData(execution)

	url, err := template.RenderString(n.url, data)
	if err != nil {
		return protocol.Result{}, fmt.Errorf("failed to render url: %w", err)
	}

	body := any(execution.FormData)
	if n.payload != nil {
		rendered := make(map[string]any, len(n.payload))

		for key, value := range n.payload {
			if str, ok := value.(string); ok {
				if renderedValue, err := template.RenderValue(str, data); err == nil {
					rendered[key] = renderedValue

					continue
				}
			}

			rendered[key] = value
		}

		body = rendered
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return protocol.Result{}, fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(encoded))
	if err != nil {
		return protocol.Result{}, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return protocol.Result{}, fmt.Errorf("webhook to %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return protocol.Result{}, fmt.Errorf("webhook to %s returned status %d", url, resp.StatusCode)
	}

	return protocol.Result{Output: map[string]any{"status_code": resp.StatusCode}}, nil
}
