// Package predicate assigns stable ids to the boolean tests guarding
// workflow branches and keeps their evaluable forms for the execution
// engine.
//
// # Why predicate exists
//
// The compiled graph cannot embed a closure: it has to serialize. So each
// branch condition is reduced at compile time to an opaque id ("pred_0",
// "pred_1", ...) plus its source text, and the engine presents the id back
// to a decision callback at run time. The registry is the table behind
// that exchange.
//
// Ids come from a single monotonic counter per compilation, threaded
// through every nested builder, so they never collide anywhere in one
// workflow — including sibling if-statements and loops nested inside
// branches.
//
// The evaluable form is the source parsed as an HCL expression, evaluated
// against an hcl.EvalContext of cty values. That mirrors how every other
// deferred expression in this codebase is resolved.
package predicate
