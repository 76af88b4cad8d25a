// Package compiler turns the structural form of a sequential function into
// a declarative workflow graph.
//
// # Why compiler exists
//
// Source statements express control flow imperatively: one statement after
// another. The execution engine wants the opposite: a serializable tree
// that states data dependencies and concurrency opportunities up front, so
// that two independent calls bound by one tuple assignment become a
// Parallel node rather than two sequential steps.
//
// The compiler is a single depth-first pass over the statement list. Each
// statement kind maps to at most one node; branch and loop bodies are
// compiled by child builders that share the parent's predicate registry
// (so predicate ids stay unique across the whole workflow) but keep their
// own node sequence and their own copy of the variable bindings.
//
// Compilation never fails on expression shape. Anything unrecognizable
// degrades to the "unknown" placeholder or to its raw textual form, on the
// principle that graph construction should always complete once the
// function's structure is in hand; validation belongs to the engine. The
// only hard error is a function with no body at all.
package compiler
