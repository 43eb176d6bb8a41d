// Package filter narrows rule listings with CEL expressions such as
// `confidence >= 0.8 && "Milk" in antecedent`.
package filter

import (
	"errors"
	"fmt"

	"github.com/Veraticus/cooccur/internal/model"
	"github.com/google/cel-go/cel"
)

// ErrInvalidExpression is returned when an expression fails to compile or is not boolean.
var ErrInvalidExpression = errors.New("invalid filter expression")

// RuleFilter is a compiled rule predicate. The zero value and nil accept every rule.
type RuleFilter struct {
	prg  cel.Program
	expr string
}

func newEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("antecedent", cel.ListType(cel.StringType)),
		cel.Variable("consequent", cel.ListType(cel.StringType)),
		cel.Variable("support", cel.DoubleType),
		cel.Variable("confidence", cel.DoubleType),
		cel.Variable("lift", cel.DoubleType),
		cel.Variable("size", cel.IntType),
	)
}

// Compile parses and type-checks expr. An empty expression yields a filter
// that accepts everything.
func Compile(expr string) (*RuleFilter, error) {
	if expr == "" {
		return &RuleFilter{}, nil
	}

	env, err := newEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpression, issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("%w: expression must return bool, got %s", ErrInvalidExpression, ast.OutputType())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
	}

	return &RuleFilter{prg: prg, expr: expr}, nil
}

// String returns the source expression.
func (f *RuleFilter) String() string {
	if f == nil {
		return ""
	}
	return f.expr
}

// Match evaluates the filter against one rule.
func (f *RuleFilter) Match(r model.Rule) (bool, error) {
	if f == nil || f.prg == nil {
		return true, nil
	}

	out, _, err := f.prg.Eval(map[string]any{
		"antecedent": r.Antecedent.Items(),
		"consequent": r.Consequent.Items(),
		"support":    r.Support,
		"confidence": r.Confidence,
		"lift":       r.Lift,
		"size":       int64(r.Antecedent.Len() + r.Consequent.Len()),
	})
	if err != nil {
		return false, fmt.Errorf("eval error: %w", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// Apply returns the rules that match, preserving order. The input is not modified.
func (f *RuleFilter) Apply(rules model.Rules) (model.Rules, error) {
	if f == nil || f.prg == nil {
		return rules, nil
	}

	kept := make(model.Rules, 0, len(rules))
	for _, r := range rules {
		ok, err := f.Match(r)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", r, err)
		}
		if ok {
			kept = append(kept, r)
		}
	}
	return kept, nil
}
