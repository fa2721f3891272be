package billing

import (
	"strconv"
	"strings"

	"logisnap/internal/models"
	"logisnap/internal/schema"
)

// EventContext is the record a billing condition is evaluated against. Kind
// names the business event (storage_daily, inbound_item, picking_order) and
// Fields carries the event-specific values conditions may reference, e.g.
// items_count for a pick or location_type for daily storage.
type EventContext struct {
	Kind   string
	Fields map[string]interface{}
}

// Charge is the fee a matched rule yields.
type Charge struct {
	RuleID   string  `json:"rule_id"`
	RuleName string  `json:"rule_name"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// condition is the parsed form of a rule predicate. The grammar is
// deliberately small: the literal "all", or a single comparison
// <identifier> <op> <literal> with op one of ==, !=, <=, <, >=, >.
type condition struct {
	all   bool
	field string
	op    string
	lit   interface{} // string or float64
}

var operators = []string{"==", "!=", "<=", ">=", "<", ">"}

// parseCondition parses a rule's condition string. A malformed predicate is
// a *schema.ValidationError so rule authors see it at write time, not as a
// silently never-matching rule.
func parseCondition(s string) (condition, error) {
	s = strings.TrimSpace(s)
	if s == "all" {
		return condition{all: true}, nil
	}

	malformed := &schema.ValidationError{
		Field:   "condition",
		Value:   s,
		Allowed: []string{`all`, `<field> <op> <literal>`},
	}

	op, i := findOperator(s)
	if i < 0 {
		return condition{}, malformed
	}
	field := strings.TrimSpace(s[:i])
	rawLit := strings.TrimSpace(s[i+len(op):])
	if field == "" || rawLit == "" {
		return condition{}, malformed
	}

	lit, err := parseLiteral(rawLit)
	if err != nil {
		return condition{}, &schema.ValidationError{Field: "condition", Value: rawLit}
	}
	return condition{field: field, op: op, lit: lit}, nil
}

// findOperator locates the leftmost comparison operator outside quoted
// literals, so an operator inside a string literal never splits the
// condition. Two-character operators are matched before their one-character
// prefixes.
func findOperator(s string) (string, int) {
	inQuote := false
	for i := 0; i < len(s); i++ {
		if s[i] == '"' {
			inQuote = !inQuote
			continue
		}
		if inQuote {
			continue
		}
		for _, op := range operators {
			if strings.HasPrefix(s[i:], op) {
				return op, i
			}
		}
	}
	return "", -1
}

func parseLiteral(s string) (interface{}, error) {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1], nil
	}
	return strconv.ParseFloat(s, 64)
}

// ValidateCondition checks that a condition string parses; used when rules
// are created so bad predicates never reach evaluation.
func ValidateCondition(s string) error {
	_, err := parseCondition(s)
	return err
}

// Evaluate decides whether a rule matches an event and returns the resulting
// charge, or nil when the trigger event differs or the predicate is false.
// A predicate referencing a missing context field, or comparing across
// types, is a *schema.ValidationError, never a silent non-match.
func Evaluate(rule models.BillingRule, ctx EventContext) (*Charge, error) {
	if rule.TriggerEvent != ctx.Kind {
		return nil, nil
	}

	cond, err := parseCondition(rule.Condition)
	if err != nil {
		return nil, err
	}

	ok, err := cond.matches(ctx)
	if err != nil || !ok {
		return nil, err
	}
	return &Charge{
		RuleID:   rule.ID,
		RuleName: rule.Name,
		Amount:   rule.FeeAmount,
		Currency: rule.Currency,
	}, nil
}

// EvaluateAll runs every rule against one event. Each matching rule yields
// its own charge, in input order; how charges aggregate (sum, pick-highest)
// is the caller's policy, not the evaluator's.
func EvaluateAll(rules []models.BillingRule, ctx EventContext) ([]Charge, error) {
	var charges []Charge
	for _, rule := range rules {
		c, err := Evaluate(rule, ctx)
		if err != nil {
			return nil, err
		}
		if c != nil {
			charges = append(charges, *c)
		}
	}
	return charges, nil
}

func (c condition) matches(ctx EventContext) (bool, error) {
	if c.all {
		return true, nil
	}

	v, ok := ctx.Fields[c.field]
	if !ok {
		return false, &schema.ValidationError{Field: c.field, Value: nil}
	}

	switch lit := c.lit.(type) {
	case string:
		s, ok := v.(string)
		if !ok {
			return false, &schema.ValidationError{Field: c.field, Value: v, Allowed: []string{"string"}}
		}
		return compareStrings(s, c.op, lit)
	default:
		n, ok := toFloat(v)
		if !ok {
			return false, &schema.ValidationError{Field: c.field, Value: v, Allowed: []string{"number"}}
		}
		return compareNumbers(n, c.op, c.lit.(float64)), nil
	}
}

func compareStrings(v, op, lit string) (bool, error) {
	switch op {
	case "==":
		return v == lit, nil
	case "!=":
		return v != lit, nil
	}
	// Ordering a string field numerically is a type error by contract.
	return false, &schema.ValidationError{Field: "condition", Value: op, Allowed: []string{"==", "!="}}
}

func compareNumbers(v float64, op string, lit float64) bool {
	switch op {
	case "==":
		return v == lit
	case "!=":
		return v != lit
	case "<=":
		return v <= lit
	case "<":
		return v < lit
	case ">=":
		return v >= lit
	default:
		return v > lit
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
