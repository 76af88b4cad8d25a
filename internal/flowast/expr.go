package flowast

import (
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Expr is one expression in the reduced input form. The set of
// implementations is closed; Opaque is the explicit fallback for any shape a
// frontend could not classify, so downstream code can assert on it instead
// of guessing.
type Expr interface {
	// Text renders the expression in its advisory textual form. For Opaque
	// this is the original source text; for everything else it is a
	// canonical rendering of the reduced shape.
	Text() string

	isExpr()
}

// Ref is a reference to a variable or a dotted attribute path, e.g. "docs"
// or "client.search".
type Ref struct {
	Path []string
}

func (r *Ref) Text() string { return strings.Join(r.Path, ".") }
func (*Ref) isExpr()        {}

// Name returns the bare variable name when the reference is a single
// identifier, or "" when it is a dotted path.
func (r *Ref) Name() string {
	if len(r.Path) == 1 {
		return r.Path[0]
	}
	return ""
}

// Literal is a constant value.
type Literal struct {
	Value cty.Value
}

func (l *Literal) Text() string { return renderValue(l.Value) }
func (*Literal) isExpr()        {}

// List is a list-literal whose elements may themselves be any expression.
type List struct {
	Elems []Expr
}

func (l *List) Text() string {
	parts := make([]string, len(l.Elems))
	for i, e := range l.Elems {
		parts[i] = e.Text()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (*List) isExpr() {}

// MapEntry is one key/value pair of a Map literal. Order is preserved from
// the source.
type MapEntry struct {
	Key   Expr
	Value Expr
}

// Map is a map-literal whose keys and values may be any expression.
type Map struct {
	Entries []MapEntry
}

func (m *Map) Text() string {
	parts := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		parts[i] = e.Key.Text() + ": " + e.Value.Text()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (*Map) isExpr() {}

// Kwarg is one keyword argument of a Call. Keyword arguments keep their
// source order even though they fold into an unordered config map, so the
// textual rendering stays stable.
type Kwarg struct {
	Name  string
	Value Expr
}

// Call is a call expression: a callee plus positional and keyword arguments.
type Call struct {
	Fn     Expr
	Args   []Expr
	Kwargs []Kwarg
}

func (c *Call) Text() string {
	parts := make([]string, 0, len(c.Args)+len(c.Kwargs))
	for _, a := range c.Args {
		parts = append(parts, a.Text())
	}
	for _, kw := range c.Kwargs {
		parts = append(parts, kw.Name+"="+kw.Value.Text())
	}
	return c.Fn.Text() + "(" + strings.Join(parts, ", ") + ")"
}
func (*Call) isExpr() {}

// Opaque is the textual fallback variant: an expression the frontend could
// not reduce to any other shape, captured verbatim.
type Opaque struct {
	Source string
}

func (o *Opaque) Text() string { return o.Source }
func (*Opaque) isExpr()        {}
