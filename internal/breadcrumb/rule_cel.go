package breadcrumb

import (
	"fmt"
	"strings"

	celgo "github.com/google/cel-go/cel"
)

// CELRule evaluates a compiled CEL expression with args and arg bound.
type CELRule struct {
	expression string
	program    celgo.Program
}

// CompileCEL parses, checks and plans expression.
func CompileCEL(expression string) (*CELRule, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, fmt.Errorf("cel: expression must not be empty")
	}
	env, err := celgo.NewEnv(
		celgo.Variable("args", celgo.ListType(celgo.DynType)),
		celgo.Variable("arg", celgo.DynType),
	)
	if err != nil {
		return nil, fmt.Errorf("cel: build env: %w", err)
	}
	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("cel: compile %q: %w", expression, issues.Err())
	}
	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("cel: program %q: %w", expression, err)
	}
	return &CELRule{expression: expression, program: program}, nil
}

// Expression returns the source expression.
func (r *CELRule) Expression() string {
	return r.expression
}

// Evaluate runs the program with the arguments of rc.
func (r *CELRule) Evaluate(rc RuleContext) (any, error) {
	args := rc.Args
	if args == nil {
		args = []any{}
	}
	out, _, err := r.program.Eval(map[string]any{
		"args": args,
		"arg":  rc.Arg(),
	})
	if err != nil {
		return nil, fmt.Errorf("cel: evaluate %q: %w", r.expression, err)
	}
	return out.Value(), nil
}
