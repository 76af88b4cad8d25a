package compiler

import (
	"errors"
	"fmt"

	"github.com/vk/flowgraph/internal/flowast"
	"github.com/vk/flowgraph/internal/flowdef"
	"github.com/vk/flowgraph/internal/predicate"
)

// ErrEmptyBody is returned when a function has no statements to compile.
// An empty graph would be indistinguishable from a successful compilation,
// so this is rejected loudly instead.
var ErrEmptyBody = errors.New("workflow function has no body")

// Result is one completed compilation: the immutable workflow document and
// the predicate registry backing its condition nodes.
type Result struct {
	Workflow   *flowdef.Workflow
	Predicates *predicate.Registry
}

// Compile builds the workflow graph for one function. It runs exactly one
// structural pass: parameters are extracted, every body statement is
// visited depth-first, and the return variable is resolved from the
// top-level sequence.
func Compile(fn *flowast.Function) (*Result, error) {
	if fn == nil || len(fn.Body) == 0 {
		name := ""
		if fn != nil {
			name = fn.Name
		}
		return nil, fmt.Errorf("compiling workflow %q: %w", name, ErrEmptyBody)
	}

	preds := predicate.NewRegistry()
	b := newBuilder(preds)
	b.visitAll(fn.Body)

	params := make([]flowdef.Parameter, 0, len(fn.Params))
	for _, p := range fn.Params {
		params = append(params, flowdef.Parameter{
			Name:     p.Name,
			TypeHint: p.TypeHint,
			Default:  p.Default,
		})
	}

	workflow := &flowdef.Workflow{
		Name:       fn.Name,
		Parameters: params,
		Body:       &flowdef.Sequence{Steps: b.nodes},
		ReturnVar:  b.resolveReturnVar(),
	}

	return &Result{Workflow: workflow, Predicates: preds}, nil
}
