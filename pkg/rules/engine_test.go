package rules

import (
	"testing"

	"github.com/formwright/formwright/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateCondition_Operators(t *testing.T) {
	tests := []struct {
		name   string
		cond   models.Condition
		values map[string]any
		want   bool
	}{
		{"equals string", models.Condition{FieldID: "color", Operator: models.OperatorEquals, Value: "red"},
			map[string]any{"color": "red"}, true},
		{"equals coerces number string", models.Condition{FieldID: "age", Operator: models.OperatorEquals, Value: float64(25)},
			map[string]any{"age": "25"}, true},
		{"equals coerces bool string", models.Condition{FieldID: "agree", Operator: models.OperatorEquals, Value: true},
			map[string]any{"agree": "true"}, true},
		{"notEquals", models.Condition{FieldID: "color", Operator: models.OperatorNotEquals, Value: "red"},
			map[string]any{"color": "blue"}, true},
		{"contains substring", models.Condition{FieldID: "bio", Operator: models.OperatorContains, Value: "gopher"},
			map[string]any{"bio": "resident gopher wrangler"}, true},
		{"contains coerces field to string", models.Condition{FieldID: "code", Operator: models.OperatorContains, Value: "42"},
			map[string]any{"code": float64(1421)}, true},
		{"greaterThan", models.Condition{FieldID: "age", Operator: models.OperatorGreaterThan, Value: float64(18)},
			map[string]any{"age": 25}, true},
		{"greaterThan string field", models.Condition{FieldID: "age", Operator: models.OperatorGreaterThan, Value: "18"},
			map[string]any{"age": "25"}, true},
		{"greaterThan non-numeric is false", models.Condition{FieldID: "age", Operator: models.OperatorGreaterThan, Value: float64(18)},
			map[string]any{"age": "lots"}, false},
		{"lessThan", models.Condition{FieldID: "age", Operator: models.OperatorLessThan, Value: float64(18)},
			map[string]any{"age": 12}, true},
		{"isEmpty nil", models.Condition{FieldID: "missing", Operator: models.OperatorIsEmpty},
			map[string]any{}, true},
		{"isEmpty empty string", models.Condition{FieldID: "note", Operator: models.OperatorIsEmpty},
			map[string]any{"note": ""}, true},
		{"isEmpty whitespace string is not empty", models.Condition{FieldID: "note", Operator: models.OperatorIsEmpty},
			map[string]any{"note": "   "}, false},
		{"isEmpty empty array", models.Condition{FieldID: "tags", Operator: models.OperatorIsEmpty},
			map[string]any{"tags": []any{}}, true},
		{"isNotEmpty", models.Condition{FieldID: "note", Operator: models.OperatorIsNotEmpty},
			map[string]any{"note": "hi"}, true},
		{"isNotEmpty on zero number", models.Condition{FieldID: "count", Operator: models.OperatorIsNotEmpty},
			map[string]any{"count": 0}, true},
		{"unknown operator is false", models.Condition{FieldID: "x", Operator: "between"},
			map[string]any{"x": 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluateCondition(tt.cond, tt.values))
		})
	}
}

func TestEvaluate_Combinators(t *testing.T) {
	adult := models.Condition{FieldID: "age", Operator: models.OperatorGreaterThan, Value: float64(18)}
	subscribed := models.Condition{FieldID: "subscribed", Operator: models.OperatorEquals, Value: true}

	tests := []struct {
		name       string
		combinator models.RuleCombinator
		conditions []models.Condition
		values     map[string]any
		want       bool
	}{
		{"AND both true", models.CombinatorAnd, []models.Condition{adult, subscribed},
			map[string]any{"age": 25, "subscribed": true}, true},
		{"AND one false", models.CombinatorAnd, []models.Condition{adult, subscribed},
			map[string]any{"age": 25, "subscribed": false}, false},
		{"OR one true", models.CombinatorOr, []models.Condition{adult, subscribed},
			map[string]any{"age": 12, "subscribed": true}, true},
		{"OR both false", models.CombinatorOr, []models.Condition{adult, subscribed},
			map[string]any{"age": 12, "subscribed": false}, false},
		{"AND empty conditions is vacuously true", models.CombinatorAnd, nil,
			map[string]any{}, true},
		{"OR empty conditions is vacuously false", models.CombinatorOr, nil,
			map[string]any{}, false},
		{"single condition example", models.CombinatorAnd,
			[]models.Condition{{FieldID: "age", Operator: models.OperatorGreaterThan, Value: float64(18)}},
			map[string]any{"age": 25}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := &models.Rule{
				ID:         "r1",
				Enabled:    true,
				Combinator: tt.combinator,
				Conditions: tt.conditions,
				Actions:    []models.RuleAction{{Type: models.RuleActionShow, TargetID: "t1"}},
			}

			assert.Equal(t, tt.want, Evaluate(rule, tt.values))
		})
	}
}

func TestEvaluate_DisabledRuleNeverMatches(t *testing.T) {
	rule := &models.Rule{
		ID:         "r1",
		Enabled:    false,
		Combinator: models.CombinatorAnd,
		Actions:    []models.RuleAction{{Type: models.RuleActionHide, TargetID: "t1"}},
	}

	assert.False(t, Evaluate(rule, map[string]any{}))
}

func TestEvaluateAll(t *testing.T) {
	hideWhenChecked := &models.Rule{
		ID:         "r1",
		Enabled:    true,
		Combinator: models.CombinatorAnd,
		Conditions: []models.Condition{{FieldID: "c1", Operator: models.OperatorEquals, Value: true}},
		Actions:    []models.RuleAction{{Type: models.RuleActionHide, TargetID: "t1"}},
	}
	requireWhenAdult := &models.Rule{
		ID:         "r2",
		Enabled:    true,
		Combinator: models.CombinatorAnd,
		Conditions: []models.Condition{{FieldID: "age", Operator: models.OperatorGreaterThan, Value: float64(18)}},
		Actions:    []models.RuleAction{{Type: models.RuleActionRequire, TargetID: "t2"}},
	}

	active := EvaluateAll([]*models.Rule{hideWhenChecked, requireWhenAdult}, map[string]any{"c1": true, "age": 10})
	require.Len(t, active, 1)
	assert.Equal(t, models.RuleActionHide, active[0].Type)
	assert.Equal(t, "t1", active[0].TargetID)

	active = EvaluateAll([]*models.Rule{hideWhenChecked, requireWhenAdult}, map[string]any{"c1": false, "age": 30})
	require.Len(t, active, 1)
	assert.Equal(t, "t2", active[0].TargetID)

	active = EvaluateAll([]*models.Rule{hideWhenChecked}, map[string]any{"c1": false})
	assert.Empty(t, active)
}
