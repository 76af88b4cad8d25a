// Package flowdef is the shared vocabulary of the workflow compiler: the
// node model every compilation produces and the wire format the external
// execution engine consumes.
//
// # Why flowdef exists
//
// The compiler, the frontends and the execution engine all need to agree on
// what a compiled workflow looks like. flowdef pins that down as a closed
// sum type of graph nodes (Step, Parallel, Condition, Loop, Sequence) plus
// the Parameter and Workflow containers, and owns their canonical JSON
// encoding.
//
// The model is a pure value-type tree. No node holds a reference back into
// whatever source it was compiled from; everything needed for serialization
// is captured at construction time, and a Workflow is immutable once built.
//
// # Wire format
//
// Every node serializes to an object with a "type" discriminator
// ("Step" | "Parallel" | "Condition" | "Loop" | "Sequence") plus the
// variant's own fields, applied recursively. Encoding is deterministic:
// the same tree always produces byte-identical output. A Condition without
// an else branch omits "else_branch" entirely rather than emitting null.
// Decoding rejects unknown discriminators with ErrUnknownNodeType.
package flowdef
