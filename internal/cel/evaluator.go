// Package cel compiles CEL predicates that hosts use to narrow the contact
// list before it reaches the selector.
package cel

import (
	"fmt"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	celext "github.com/google/cel-go/ext"

	"github.com/oakwood-commons/contactpick/pkg/contact"
)

// Evaluator compiles expressions against a shared CEL environment. Each
// expression sees one contact as the map variable "_" with the keys id,
// name and email.
type Evaluator struct {
	env *cel.Env
}

// NewEvaluator creates an evaluator with the string and list extensions.
func NewEvaluator() (*Evaluator, error) {
	env, err := newContactEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &Evaluator{env: env}, nil
}

func newContactEnv(opts ...cel.EnvOption) (*cel.Env, error) {
	allOpts := make([]cel.EnvOption, 0, 4+len(opts))
	allOpts = append(allOpts,
		cel.Variable("_", cel.MapType(cel.StringType, cel.StringType)),
		celext.Strings(),
		celext.Lists(),
		celext.Math(),
	)
	allOpts = append(allOpts, opts...)
	return cel.NewEnv(allOpts...)
}

// Predicate is a compiled boolean expression over a contact.
type Predicate struct {
	expr string
	prg  cel.Program
}

// Compile parses and type-checks expr. The expression must produce a bool.
func (e *Evaluator) Compile(expr string) (*Predicate, error) {
	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error: %w", issues.Err())
	}
	if out := ast.OutputType(); !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
		return nil, fmt.Errorf("expression %q must evaluate to bool, got %s", expr, out)
	}
	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &Predicate{expr: expr, prg: prg}, nil
}

// String returns the source expression.
func (p *Predicate) String() string { return p.expr }

// Match evaluates the predicate for c.
func (p *Predicate) Match(c contact.Contact) (bool, error) {
	out, _, err := p.prg.Eval(map[string]any{"_": activation(c)})
	if err != nil {
		return false, fmt.Errorf("eval error for contact %q: %w", c.ID, err)
	}
	b, ok := out.(types.Bool)
	if !ok {
		return false, fmt.Errorf("expression %q returned %s, want bool", p.expr, out.Type().TypeName())
	}
	return bool(b), nil
}

// Filter keeps the contacts the predicate matches, in input order. A nil
// predicate keeps everything.
func (p *Predicate) Filter(list []contact.Contact) ([]contact.Contact, error) {
	if p == nil {
		return list, nil
	}
	out := make([]contact.Contact, 0, len(list))
	for _, c := range list {
		ok, err := p.Match(c)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, c)
		}
	}
	return out, nil
}

// Where compiles expr and filters list in one step. An empty expression
// returns list unchanged.
func Where(list []contact.Contact, expr string) ([]contact.Contact, error) {
	if expr == "" {
		return list, nil
	}
	e, err := NewEvaluator()
	if err != nil {
		return nil, err
	}
	p, err := e.Compile(expr)
	if err != nil {
		return nil, err
	}
	return p.Filter(list)
}

func activation(c contact.Contact) map[string]string {
	return map[string]string{"id": c.ID, "name": c.Name, "email": c.Email}
}
