package breadcrumb

import (
	"fmt"
	"strings"
)

// RuleContext is the input every Rule evaluates against.
type RuleContext struct {
	// Args are the arguments passed to the definition being evaluated.
	Args []any
	// Loc translates message keys; nil falls back to the key itself.
	Loc Localizer
}

// Arg returns the first argument, or nil.
func (rc RuleContext) Arg() any {
	if len(rc.Args) == 0 {
		return nil
	}
	return rc.Args[0]
}

func (rc RuleContext) withArgs(args []any) RuleContext {
	rc.Args = args
	return rc
}

// Rule produces one value of a definition (text, URL, parent key or parent
// argument) from the arguments of the current evaluation.
type Rule interface {
	Evaluate(rc RuleContext) (any, error)
}

// Literal is a Rule that always returns Value.
type Literal struct {
	Value any
}

// Evaluate returns the literal value.
func (l Literal) Evaluate(RuleContext) (any, error) {
	return l.Value, nil
}

// String returns the literal as text.
func (l Literal) String() string {
	return stringify(l.Value)
}

// Text returns a Literal rule for a constant string.
func Text(value string) Rule {
	return Literal{Value: value}
}

// RuleFunc adapts a Go function into a Rule.
type RuleFunc func(rc RuleContext) (any, error)

// Evaluate calls f.
func (f RuleFunc) Evaluate(rc RuleContext) (any, error) {
	return f(rc)
}

// StringFunc adapts a function returning text into a Rule.
func StringFunc(fn func(args ...any) string) Rule {
	return RuleFunc(func(rc RuleContext) (any, error) {
		return fn(rc.Args...), nil
	})
}

// MessageRule prints a localized message whose arguments come from rules.
type MessageRule struct {
	Key  string
	Args []Rule
}

// Evaluate prints the message through the context localizer.
func (m MessageRule) Evaluate(rc RuleContext) (any, error) {
	if strings.TrimSpace(m.Key) == "" {
		return nil, fmt.Errorf("message key is required")
	}
	args := make([]any, 0, len(m.Args))
	for idx, rule := range m.Args {
		value, err := evaluate(rule, rc)
		if err != nil {
			return nil, fmt.Errorf("message %q arg %d: %w", m.Key, idx, err)
		}
		args = append(args, value)
	}
	return T(rc.Loc, m.Key, args...), nil
}

func evaluate(rule Rule, rc RuleContext) (any, error) {
	if rule == nil {
		return nil, nil
	}
	return rule.Evaluate(rc)
}

func evaluateString(rule Rule, rc RuleContext) (string, error) {
	value, err := evaluate(rule, rc)
	if err != nil {
		return "", err
	}
	return stringify(value), nil
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case Key:
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
