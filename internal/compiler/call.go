// This file is the call decomposer: one call expression in, one Step out.
// Inputs and config are treated asymmetrically on purpose. Positional
// arguments denote data-flow edges, so they stay as variable references or
// verbatim text for the engine to resolve. Keyword arguments denote static
// step configuration, so they fold to native literals wherever possible.
package compiler

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/flowgraph/internal/flowast"
	"github.com/vk/flowgraph/internal/flowdef"
)

// unknownCallee is the placeholder for callee shapes the decomposer cannot
// name. The callee is advisory metadata for the engine's step registry, so
// an odd shape degrades instead of failing the compilation.
const unknownCallee = "unknown"

// decomposeCall converts a call expression into a Step with its Output left
// blank; the caller fills it in once the assignment target is known.
func decomposeCall(call *flowast.Call) *flowdef.Step {
	inputs := make([]string, 0, len(call.Args))
	for _, arg := range call.Args {
		if ref, ok := arg.(*flowast.Ref); ok {
			if name := ref.Name(); name != "" {
				inputs = append(inputs, name)
				continue
			}
		}
		// No constant folding here: even a pure literal argument is
		// captured as text, because inputs travel as strings.
		inputs = append(inputs, arg.Text())
	}

	config := make(map[string]any, len(call.Kwargs))
	for _, kw := range call.Kwargs {
		config[kw.Name] = foldConfigValue(kw.Value)
	}

	return &flowdef.Step{
		Name:   calleeName(call.Fn),
		Inputs: inputs,
		Config: config,
	}
}

// calleeName resolves the callee to a plain identifier or a dot-joined
// attribute path, degrading to the opaque placeholder for anything else.
func calleeName(fn flowast.Expr) string {
	if ref, ok := fn.(*flowast.Ref); ok && len(ref.Path) > 0 {
		return ref.Text()
	}
	return unknownCallee
}

// foldConfigValue reduces a keyword value to a native literal when it is a
// constant, a list of literals or a map of literals, recursively. Any other
// shape is captured as its textual form.
func foldConfigValue(expr flowast.Expr) any {
	switch e := expr.(type) {
	case *flowast.Literal:
		native, err := flowast.Native(e.Value)
		if err != nil {
			return e.Text()
		}
		return native

	case *flowast.List:
		folded := make([]any, 0, len(e.Elems))
		for _, elem := range e.Elems {
			folded = append(folded, foldConfigValue(elem))
		}
		return folded

	case *flowast.Map:
		folded := make(map[string]any, len(e.Entries))
		for _, entry := range e.Entries {
			folded[foldConfigKey(entry.Key)] = foldConfigValue(entry.Value)
		}
		return folded

	default:
		return expr.Text()
	}
}

// foldConfigKey renders a map key. The wire format is JSON, so keys must be
// strings; a non-string key keeps its textual form.
func foldConfigKey(expr flowast.Expr) string {
	if lit, ok := expr.(*flowast.Literal); ok && !lit.Value.IsNull() {
		if lit.Value.Type() == cty.String {
			return lit.Value.AsString()
		}
	}
	return expr.Text()
}
