// Package flowast defines the structural form a function must be reduced to
// before it can be compiled into a workflow graph.
//
// # Why flowast exists
//
// The compiler does not consume source text. Its input boundary is a small,
// closed set of statement and expression shapes: assignments, tuple
// assignments, branches, loops, returns, and expression statements, over
// expressions that are identifier references, dotted paths, literal
// constants, literal lists/maps, calls, or an opaque textual fallback.
//
// Keeping this model separate from any concrete syntax mirrors the
// format-agnostic model layer the rest of the codebase is built around: a
// frontend (see internal/flowhcl) lowers its own syntax into flowast, and
// the compiler only ever sees flowast. Tests can construct inputs directly
// without going through a parser.
//
// Literal values are carried as cty.Value so that frontends can hand over
// exactly what their expression evaluator produced, deferring the
// conversion to native Go values until config folding actually needs it.
package flowast
