// This file reduces hclsyntax expressions to the compiler's expression
// forms. The mapping is intentionally shallow: only shapes the graph model
// cares about are classified, and everything else is captured verbatim as
// an opaque fallback for the engine to interpret.
package flowhcl

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/flowgraph/internal/flowast"
)

// lowerExpr converts one hclsyntax expression into the reduced form. src is
// the manifest's raw bytes, needed to slice out opaque source text.
func lowerExpr(expr hclsyntax.Expression, src []byte) flowast.Expr {
	switch e := expr.(type) {
	case *hclsyntax.LiteralValueExpr:
		return &flowast.Literal{Value: e.Val}

	case *hclsyntax.TemplateExpr:
		// A quoted string without interpolation parses as a single-part
		// template; that is still a literal for our purposes.
		if len(e.Parts) == 1 {
			if lit, ok := e.Parts[0].(*hclsyntax.LiteralValueExpr); ok {
				return &flowast.Literal{Value: lit.Val}
			}
		}
		return opaque(expr, src)

	case *hclsyntax.ScopeTraversalExpr:
		if path, ok := traversalPath(e.Traversal); ok {
			return &flowast.Ref{Path: path}
		}
		return opaque(expr, src)

	case *hclsyntax.TupleConsExpr:
		elems := make([]flowast.Expr, 0, len(e.Exprs))
		for _, item := range e.Exprs {
			elems = append(elems, lowerExpr(item, src))
		}
		return &flowast.List{Elems: elems}

	case *hclsyntax.ObjectConsExpr:
		entries := make([]flowast.MapEntry, 0, len(e.Items))
		for _, item := range e.Items {
			entries = append(entries, flowast.MapEntry{
				Key:   lowerObjectKey(item.KeyExpr, src),
				Value: lowerExpr(item.ValueExpr, src),
			})
		}
		return &flowast.Map{Entries: entries}

	case *hclsyntax.FunctionCallExpr:
		return lowerCall(e, src)

	case *hclsyntax.ParenthesesExpr:
		return lowerExpr(e.Expression, src)

	default:
		return opaque(expr, src)
	}
}

// lowerCall converts a function call. A trailing object literal becomes the
// keyword-config map, since HCL calls have no native keyword arguments.
func lowerCall(call *hclsyntax.FunctionCallExpr, src []byte) flowast.Expr {
	// HCL namespaces functions with "::"; the graph model uses dotted paths.
	path := strings.Split(strings.ReplaceAll(call.Name, "::", "."), ".")

	args := call.Args
	var kwargs []flowast.Kwarg
	if len(args) > 0 {
		if obj, ok := args[len(args)-1].(*hclsyntax.ObjectConsExpr); ok {
			kwargs = lowerKwargs(obj, src)
			args = args[:len(args)-1]
		}
	}

	lowered := make([]flowast.Expr, 0, len(args))
	for _, arg := range args {
		lowered = append(lowered, lowerExpr(arg, src))
	}

	return &flowast.Call{
		Fn:     &flowast.Ref{Path: path},
		Args:   lowered,
		Kwargs: kwargs,
	}
}

func lowerKwargs(obj *hclsyntax.ObjectConsExpr, src []byte) []flowast.Kwarg {
	kwargs := make([]flowast.Kwarg, 0, len(obj.Items))
	for _, item := range obj.Items {
		key := lowerObjectKey(item.KeyExpr, src)
		name := key.Text()
		if lit, ok := key.(*flowast.Literal); ok && !lit.Value.IsNull() && lit.Value.Type() == cty.String {
			name = lit.Value.AsString()
		}
		kwargs = append(kwargs, flowast.Kwarg{
			Name:  name,
			Value: lowerExpr(item.ValueExpr, src),
		})
	}
	return kwargs
}

// lowerObjectKey handles HCL's bare object keys: `{ top_k = 5 }` parses the
// key as a traversal, but by HCL convention it means the string "top_k".
func lowerObjectKey(key hclsyntax.Expression, src []byte) flowast.Expr {
	if wrapped, ok := key.(*hclsyntax.ObjectConsKeyExpr); ok {
		if trav, ok := wrapped.Wrapped.(*hclsyntax.ScopeTraversalExpr); ok && !wrapped.ForceNonLiteral {
			if path, ok := traversalPath(trav.Traversal); ok && len(path) == 1 {
				return &flowast.Literal{Value: cty.StringVal(path[0])}
			}
		}
		return lowerExpr(wrapped.Wrapped, src)
	}
	return lowerExpr(key, src)
}

// traversalPath flattens a traversal into a dotted path. Traversals with
// index steps fall outside the reduced form.
func traversalPath(traversal hcl.Traversal) ([]string, bool) {
	path := make([]string, 0, len(traversal))
	for _, step := range traversal {
		switch t := step.(type) {
		case hcl.TraverseRoot:
			path = append(path, t.Name)
		case hcl.TraverseAttr:
			path = append(path, t.Name)
		default:
			return nil, false
		}
	}
	return path, len(path) > 0
}

// opaque captures an expression's raw source text as the fallback variant.
func opaque(expr hclsyntax.Expression, src []byte) flowast.Expr {
	return &flowast.Opaque{Source: rangeText(expr.Range(), src)}
}

func rangeText(rng hcl.Range, src []byte) string {
	if rng.Start.Byte < 0 || rng.End.Byte > len(src) || rng.Start.Byte > rng.End.Byte {
		return ""
	}
	return string(src[rng.Start.Byte:rng.End.Byte])
}
