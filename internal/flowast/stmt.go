package flowast

// Statement is one statement in the reduced input form. The set of
// implementations is closed; statement kinds outside it have no
// representation and therefore no effect on the compiled graph.
type Statement interface {
	isStmt()
}

// Assign binds the result of an expression to a single variable: x = f(y).
type Assign struct {
	Target string
	Value  Expr
}

func (*Assign) isStmt() {}

// TupleAssign binds each element of a tuple of expressions to the
// corresponding target: a, b = f(), g(). Targets and Values are paired by
// index and must have the same length.
type TupleAssign struct {
	Targets []string
	Values  []Expr
}

func (*TupleAssign) isStmt() {}

// If is a binary branch. Else is nil when the source had no else clause.
type If struct {
	Cond Expr
	Then []Statement
	Else []Statement
}

func (*If) isStmt() {}

// For iterates a single variable over a collection expression. The
// collection is never resolved at compile time; only its textual form
// travels into the graph.
type For struct {
	Var      string
	Iterable Expr
	Body     []Statement
}

func (*For) isStmt() {}

// Return ends the function. Value may be nil for a bare return.
type Return struct {
	Value Expr
}

func (*Return) isStmt() {}

// ExprStmt is an expression evaluated for its effect, without a binding:
// a bare call like p(item).
type ExprStmt struct {
	Value Expr
}

func (*ExprStmt) isStmt() {}
