// Package template renders node configuration values against the execution
// context, so api/webhook/email configs can reference submitted form data and
// workflow variables.
package template

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/formwright/formwright/pkg/models"
)

// ContextData exposes the execution context to templates as .form_data,
// .variables and .execution.
func ContextData(execution *models.ExecutionContext) map[string]any {
	return map[string]any{
		"form_data": execution.FormData,
		"variables": execution.Variables,
		"execution": map[string]any{
			"id":      execution.ID,
			"flow_id": execution.FlowID,
		},
	}
}

// RenderValue renders the template string against the given data and re-types
// the output: JSON-looking results are unmarshalled, then numbers and booleans
// are parsed, everything else stays a string.
func RenderValue(input string, data map[string]any) (any, error) {
	tmpl, err := template.
		New("config").
		Funcs(template.FuncMap{
			"now": func() string {
				return time.Now().UTC().Format(time.RFC3339)
			},
		}).Parse(input)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %q: %w", input, err)
	}

	var buf strings.Builder

	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template %q: %w", input, err)
	}

	result := strings.TrimSpace(buf.String())

	if (strings.HasPrefix(result, "{") && strings.HasSuffix(result, "}")) ||
		(strings.HasPrefix(result, "[") && strings.HasSuffix(result, "]")) {
		var jsonResult any
		if err := json.Unmarshal([]byte(result), &jsonResult); err == nil {
			return jsonResult, nil
		}
	}

	if num, err := strconv.ParseFloat(result, 64); err == nil {
		return num, nil
	}

	if b, err := strconv.ParseBool(result); err == nil {
		return b, nil
	}

	return result, nil
}

// RenderString renders the template and returns the raw string output.
func RenderString(input string, data map[string]any) (string, error) {
	result, err := RenderValue(input, data)
	if err != nil {
		return "", err
	}

	if s, ok := result.(string); ok {
		return s, nil
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		return "", err
	}

	return string(encoded), nil
}
