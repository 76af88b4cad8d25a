package flowast

// Param is one declared parameter of a function. TypeHint and Default carry
// the unresolved textual forms from the source; both may be empty.
type Param struct {
	Name     string
	TypeHint string
	Default  string
}

// Function is the complete structural representation of one function:
// everything the compiler needs to build a workflow graph.
type Function struct {
	Name   string
	Params []Param
	Body   []Statement
}
