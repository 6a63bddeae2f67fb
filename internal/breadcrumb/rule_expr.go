package breadcrumb

import (
	"fmt"
	"strings"

	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
)

// ExprRule evaluates a compiled expr-lang expression.
//
// The environment exposes args (all arguments), arg (the first argument)
// and t(key, args...) for localized text.
type ExprRule struct {
	expression string
	program    *exprvm.Program
}

// CompileExpr compiles expression into an ExprRule.
func CompileExpr(expression string) (*ExprRule, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, fmt.Errorf("expr: expression must not be empty")
	}
	program, err := exprlang.Compile(expression,
		exprlang.Env(exprCompileEnv()),
		exprlang.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, fmt.Errorf("expr: compile %q: %w", expression, err)
	}
	return &ExprRule{expression: expression, program: program}, nil
}

// MustExpr is CompileExpr for expressions known at build time.
func MustExpr(expression string) *ExprRule {
	rule, err := CompileExpr(expression)
	if err != nil {
		panic(err)
	}
	return rule
}

// Expression returns the source expression.
func (r *ExprRule) Expression() string {
	return r.expression
}

// Evaluate runs the compiled program against rc.
func (r *ExprRule) Evaluate(rc RuleContext) (any, error) {
	result, err := exprlang.Run(r.program, map[string]any{
		"args": rc.Args,
		"arg":  rc.Arg(),
		"t": func(key string, args ...any) string {
			return T(rc.Loc, key, args...)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("expr: evaluate %q: %w", r.expression, err)
	}
	return result, nil
}

func exprCompileEnv() map[string]any {
	return map[string]any{
		"args": []any{},
		"t": func(key string, args ...any) string {
			return key
		},
	}
}
