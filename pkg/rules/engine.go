// Package rules evaluates conditional show/hide/enable/disable/require rules
// against a snapshot of submitted form values.
//
// The engine's contract ends at producing the set of (target, action) pairs
// currently active; applying them to rendered elements is the consumer's job.
package rules

import (
	"strconv"
	"strings"

	"github.com/formwright/formwright/pkg/models"
)

// Evaluate reports whether the rule matches the given field values. A
// disabled rule never matches. An empty condition list is vacuously true under
// AND and vacuously false under OR.
func Evaluate(rule *models.Rule, values map[string]any) bool {
	if rule == nil || !rule.Enabled {
		return false
	}

	if rule.Combinator == models.CombinatorOr {
		for _, cond := range rule.Conditions {
			if EvaluateCondition(cond, values) {
				return true
			}
		}

		return false
	}

	// AND is the default combinator.
	for _, cond := range rule.Conditions {
		if !EvaluateCondition(cond, values) {
			return false
		}
	}

	return true
}

// EvaluateAll returns the actions of every matching rule, preserving rule and
// action order. Disabled rules contribute nothing.
func EvaluateAll(ruleList []*models.Rule, values map[string]any) []models.RuleAction {
	active := []models.RuleAction{}

	for _, rule := range ruleList {
		if Evaluate(rule, values) {
			active = append(active, rule.Actions...)
		}
	}

	return active
}

// EvaluateCondition tests one condition against the values snapshot. The same
// operator semantics back the workflow engine's condition nodes.
func EvaluateCondition(cond models.Condition, values map[string]any) bool {
	fieldValue := values[cond.FieldID]

	switch cond.Operator {
	case models.OperatorEquals:
		return looseEquals(fieldValue, cond.Value)
	case models.OperatorNotEquals:
		return !looseEquals(fieldValue, cond.Value)
	case models.OperatorContains:
		return strings.Contains(coerceString(fieldValue), coerceString(cond.Value))
	case models.OperatorGreaterThan:
		left, lok := coerceNumber(fieldValue)
		right, rok := coerceNumber(cond.Value)

		return lok && rok && left > right
	case models.OperatorLessThan:
		left, lok := coerceNumber(fieldValue)
		right, rok := coerceNumber(cond.Value)

		return lok && rok && left < right
	case models.OperatorIsEmpty:
		return isEmpty(fieldValue)
	case models.OperatorIsNotEmpty:
		return !isEmpty(fieldValue)
	default:
		return false
	}
}

// looseEquals compares after coercing the field value toward the condition
// value's apparent type, so "25" equals 25 and "true" equals true.
func looseEquals(fieldValue, condValue any) bool {
	switch expected := condValue.(type) {
	case nil:
		return fieldValue == nil
	case bool:
		actual, ok := coerceBool(fieldValue)

		return ok && actual == expected
	case float64, int, int32, int64, float32:
		expectedNum, _ := coerceNumber(condValue)
		actual, ok := coerceNumber(fieldValue)

		return ok && actual == expectedNum
	default:
		return coerceString(fieldValue) == coerceString(condValue)
	}
}

func coerceString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case []string:
		return strings.Join(v, ",")
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, coerceString(item))
		}

		return strings.Join(parts, ",")
	default:
		return ""
	}
}

func coerceNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)

		return parsed, err == nil
	case bool:
		if v {
			return 1, true
		}

		return 0, true
	default:
		return 0, false
	}
}

func coerceBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		parsed, err := strconv.ParseBool(v)

		return parsed, err == nil
	case float64:
		return v != 0, true
	case int:
		return v != 0, true
	default:
		return false, false
	}
}

// isEmpty treats nil, empty strings, and empty slices as empty.
func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	case []string:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	default:
		return false
	}
}
