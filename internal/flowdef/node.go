package flowdef

// TerminalOutput is the reserved output name marking a step whose result is
// the function's return value. It can never collide with a variable name
// because the input form's identifiers cannot contain double underscores at
// both ends by convention; the engine treats it as opaque either way.
const TerminalOutput = "__return__"

// Node is one unit of graph structure. The set of implementations is
// closed: Step, Parallel, Condition, Loop and Sequence.
type Node interface {
	isNode()
}

// Step is one call site: a named unit of work, the variable it binds, the
// input references it consumes and its static configuration.
type Step struct {
	// Name is the callee: a plain identifier, a dot-joined attribute path,
	// or "unknown" when the source callee had an unrecognizable shape.
	Name string

	// Output is the variable this step binds, TerminalOutput for a terminal
	// return step, or "" for a bare statement call.
	Output string

	// Inputs are positional arguments in source order: a bare variable name
	// denotes a data-flow edge the engine resolves at run time; anything
	// else is the argument's literal textual form.
	Inputs []string

	// Config holds keyword arguments folded to native literals where
	// possible, or their textual form otherwise.
	Config map[string]any
}

func (*Step) isNode() {}

// Parallel is a fixed-size batch of independent steps whose outputs are
// bound simultaneously. len(Outputs) == len(Steps) always, with matching
// order; every element of Steps derives from a call expression.
type Parallel struct {
	Outputs []string
	Steps   []Node
}

func (*Parallel) isNode() {}

// Condition is a binary branch keyed by a registered predicate. Else is nil
// when the source had no else clause; the condition then falls through.
type Condition struct {
	PredicateID     string
	PredicateSource string
	Then            Node
	Else            Node
}

func (*Condition) isNode() {}

// Loop iterates a single variable over a collection. Iterable is the
// textual form of the iterated expression, not a resolved value.
type Loop struct {
	IterVar  string
	Iterable string
	Body     Node
}

func (*Loop) isNode() {}

// Sequence is ordered composition. The top-level body of every workflow is
// a Sequence, as is each branch and loop body produced by the compiler.
type Sequence struct {
	Steps []Node
}

func (*Sequence) isNode() {}

// Parameter is one declared input of a compiled function. TypeHint and
// Default are the unresolved textual forms from the source ("" if absent).
type Parameter struct {
	Name     string `json:"name"`
	TypeHint string `json:"type_hint"`
	Default  string `json:"default"`
}

// Workflow is the complete, immutable compilation unit handed to the
// execution engine.
type Workflow struct {
	Name       string
	Parameters []Parameter

	// Body is always a *Sequence in trees produced by the compiler, but the
	// type stays general so decoded documents keep the same shape.
	Body Node

	// ReturnVar is TerminalOutput when a terminal return step exists, the
	// name of the returned or last-bound variable otherwise, or "" when no
	// step supplies a return value (serialized as null).
	ReturnVar string
}
