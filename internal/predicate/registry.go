package predicate

import (
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// ErrUnknownPredicate is returned when looking up an id the registry never
// issued. The compiler guarantees every id it emits is registered, so
// hitting this means the caller is holding an id from a different
// compilation.
var ErrUnknownPredicate = errors.New("unknown predicate id")

// Predicate is one registered boolean test: its id, the original source
// text for display, and an evaluable expression form when the source parses
// as an HCL expression.
type Predicate struct {
	ID     string
	Source string

	expr hcl.Expression
}

// Evaluable reports whether the predicate's source parsed into an
// expression that Eval can run.
func (p *Predicate) Evaluable() bool { return p.expr != nil }

// Eval evaluates the predicate against the given runtime variables and
// converts the result to a boolean. It exists for the execution engine's
// decision callback; the compiler itself never evaluates predicates.
func (p *Predicate) Eval(vars map[string]cty.Value) (bool, error) {
	if p.expr == nil {
		return false, fmt.Errorf("predicate %s: source %q is not an evaluable expression", p.ID, p.Source)
	}

	val, diags := p.expr.Value(&hcl.EvalContext{Variables: vars})
	if diags.HasErrors() {
		return false, fmt.Errorf("evaluating predicate %s: %w", p.ID, diags)
	}

	boolVal, err := convert.Convert(val, cty.Bool)
	if err != nil {
		return false, fmt.Errorf("predicate %s did not produce a boolean: %w", p.ID, err)
	}
	if boolVal.IsNull() {
		return false, fmt.Errorf("predicate %s produced a null decision", p.ID)
	}
	return boolVal.True(), nil
}

// Registry issues globally unique predicate ids for one compilation and
// records each predicate's source text and evaluable form.
//
// One Registry is owned by the top-level builder and shared by reference
// with every nested builder, which is what keeps ids unique across sibling
// branches and nested loops. Compilation is single-threaded, so the
// registry carries no locking.
type Registry struct {
	counter int
	order   []string
	byID    map[string]*Predicate
}

// NewRegistry returns an empty registry with its counter at zero.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]*Predicate)}
}

// Register assigns the next id to the given test expression source and
// records it. Source text that does not parse as an HCL expression still
// registers (the text is advisory); only Eval is affected.
func (r *Registry) Register(source string) string {
	id := fmt.Sprintf("pred_%d", r.counter)
	r.counter++

	p := &Predicate{ID: id, Source: source}
	expr, diags := hclsyntax.ParseExpression([]byte(source), "<predicate>", hcl.InitialPos)
	if !diags.HasErrors() {
		p.expr = expr
	}

	r.order = append(r.order, id)
	r.byID[id] = p
	return id
}

// Lookup returns the predicate registered under id.
func (r *Registry) Lookup(id string) (*Predicate, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPredicate, id)
	}
	return p, nil
}

// IDs returns all issued ids in registration order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// Len returns the number of registered predicates.
func (r *Registry) Len() int { return len(r.order) }
