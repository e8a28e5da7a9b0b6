package models

// ConditionOperator compares one field value against a condition value.
type ConditionOperator string

const (
	OperatorEquals      ConditionOperator = "equals"
	OperatorNotEquals   ConditionOperator = "notEquals"
	OperatorContains    ConditionOperator = "contains"
	OperatorGreaterThan ConditionOperator = "greaterThan"
	OperatorLessThan    ConditionOperator = "lessThan"
	OperatorIsEmpty     ConditionOperator = "isEmpty"
	OperatorIsNotEmpty  ConditionOperator = "isNotEmpty"
)

// RuleCombinator joins the results of a rule's conditions.
type RuleCombinator string

const (
	CombinatorAnd RuleCombinator = "AND"
	CombinatorOr  RuleCombinator = "OR"
)

// RuleActionType is what a matched rule does to its target element.
type RuleActionType string

const (
	RuleActionShow    RuleActionType = "show"
	RuleActionHide    RuleActionType = "hide"
	RuleActionEnable  RuleActionType = "enable"
	RuleActionDisable RuleActionType = "disable"
	RuleActionRequire RuleActionType = "require"
)

// Condition tests a single submitted field value.
type Condition struct {
	FieldID  string            `json:"field_id" validate:"required"`
	Operator ConditionOperator `json:"operator" validate:"required"`
	Value    any               `json:"value,omitempty"`
}

// RuleAction is applied to TargetID when the owning rule evaluates true.
type RuleAction struct {
	Type     RuleActionType `json:"type"      validate:"required,oneof=show hide enable disable require"`
	TargetID string         `json:"target_id" validate:"required"`
}

// Rule is a conditional visibility/requiredness specification. A disabled rule
// contributes no actions. Empty condition lists are legal: AND is vacuously
// true, OR vacuously false.
type Rule struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Enabled    bool           `json:"enabled"`
	Combinator RuleCombinator `json:"combinator" validate:"required,oneof=AND OR"`
	Conditions []Condition    `json:"conditions"`
	Actions    []RuleAction   `json:"actions"`
}
