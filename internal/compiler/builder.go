package compiler

import (
	"github.com/vk/flowgraph/internal/flowast"
	"github.com/vk/flowgraph/internal/flowdef"
	"github.com/vk/flowgraph/internal/predicate"
)

// builder accumulates the node sequence for one scope. The top-level
// function body gets one builder; every branch arm and loop body gets a
// child builder with a fresh sequence, an independent copy of the producer
// bindings, and the shared predicate registry.
type builder struct {
	preds *predicate.Registry

	// producers maps a variable name to the step that last bound it.
	// Later re-assignment overwrites the entry but never touches
	// already-emitted nodes.
	producers map[string]string

	nodes []flowdef.Node

	// returnName is the variable named by a bare-name return statement in
	// this scope, if any.
	returnName string
}

func newBuilder(preds *predicate.Registry) *builder {
	return &builder{
		preds:     preds,
		producers: make(map[string]string),
	}
}

// child spawns a builder for a nested scope. Bindings are copied, not
// shared: a variable bound inside a branch stays local to that branch.
func (b *builder) child() *builder {
	nested := newBuilder(b.preds)
	for name, step := range b.producers {
		nested.producers[name] = step
	}
	return nested
}

func (b *builder) visitAll(stmts []flowast.Statement) {
	for _, stmt := range stmts {
		b.visit(stmt)
	}
}

// visit dispatches on statement kind. Statement shapes with no graph
// meaning fall through without emitting a node.
func (b *builder) visit(stmt flowast.Statement) {
	switch s := stmt.(type) {
	case *flowast.Assign:
		b.visitAssign(s)
	case *flowast.TupleAssign:
		b.visitTupleAssign(s)
	case *flowast.If:
		b.visitIf(s)
	case *flowast.For:
		b.visitFor(s)
	case *flowast.Return:
		b.visitReturn(s)
	case *flowast.ExprStmt:
		b.visitExprStmt(s)
	}
}

func (b *builder) visitAssign(s *flowast.Assign) {
	call, ok := s.Value.(*flowast.Call)
	if !ok {
		return
	}
	step := decomposeCall(call)
	step.Output = s.Target
	b.producers[s.Target] = step.Name
	b.nodes = append(b.nodes, step)
}

func (b *builder) visitTupleAssign(s *flowast.TupleAssign) {
	var outputs []string
	var steps []flowdef.Node

	for i, value := range s.Values {
		call, ok := value.(*flowast.Call)
		if !ok || i >= len(s.Targets) {
			continue
		}
		step := decomposeCall(call)
		step.Output = s.Targets[i]
		b.producers[s.Targets[i]] = step.Name
		outputs = append(outputs, s.Targets[i])
		steps = append(steps, step)
	}

	if len(steps) > 0 {
		b.nodes = append(b.nodes, &flowdef.Parallel{
			Outputs: outputs,
			Steps:   steps,
		})
	}
}

func (b *builder) visitIf(s *flowast.If) {
	predID := b.preds.Register(s.Cond.Text())

	thenBuilder := b.child()
	thenBuilder.visitAll(s.Then)

	cond := &flowdef.Condition{
		PredicateID:     predID,
		PredicateSource: s.Cond.Text(),
		Then:            &flowdef.Sequence{Steps: thenBuilder.nodes},
	}

	if s.Else != nil {
		elseBuilder := b.child()
		elseBuilder.visitAll(s.Else)
		cond.Else = &flowdef.Sequence{Steps: elseBuilder.nodes}
	}

	b.nodes = append(b.nodes, cond)
}

func (b *builder) visitFor(s *flowast.For) {
	// The loop body shares the predicate registry like branch bodies do;
	// a branch nested in a loop must still get a workflow-unique id.
	bodyBuilder := b.child()
	bodyBuilder.visitAll(s.Body)

	b.nodes = append(b.nodes, &flowdef.Loop{
		IterVar:  s.Var,
		Iterable: s.Iterable.Text(),
		Body:     &flowdef.Sequence{Steps: bodyBuilder.nodes},
	})
}

func (b *builder) visitReturn(s *flowast.Return) {
	switch value := s.Value.(type) {
	case *flowast.Call:
		step := decomposeCall(value)
		step.Output = flowdef.TerminalOutput
		b.nodes = append(b.nodes, step)
	case *flowast.Ref:
		// Returning an existing variable needs no node; the producer
		// binding already covers it. Only the name is recorded.
		if name := value.Name(); name != "" {
			b.returnName = name
		}
	}
}

func (b *builder) visitExprStmt(s *flowast.ExprStmt) {
	// A bare statement call still becomes a Step; it just binds nothing.
	call, ok := s.Value.(*flowast.Call)
	if !ok {
		return
	}
	b.nodes = append(b.nodes, decomposeCall(call))
}

// resolveReturnVar determines the workflow's return_var from the top-level
// sequence: the terminal marker if a return-of-call step was emitted, then
// the variable named by a bare-name return, then the most recently bound
// top-level output, and finally none.
func (b *builder) resolveReturnVar() string {
	for _, n := range b.nodes {
		if step, ok := n.(*flowdef.Step); ok && step.Output == flowdef.TerminalOutput {
			return flowdef.TerminalOutput
		}
	}

	if b.returnName != "" {
		return b.returnName
	}

	for i := len(b.nodes) - 1; i >= 0; i-- {
		switch n := b.nodes[i].(type) {
		case *flowdef.Step:
			if n.Output != "" {
				return n.Output
			}
		case *flowdef.Parallel:
			if len(n.Outputs) > 0 {
				return n.Outputs[len(n.Outputs)-1]
			}
		}
	}

	return ""
}
