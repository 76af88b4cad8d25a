// Package flowhcl lowers HCL workflow manifests into the structural form
// the compiler consumes.
//
// # The manifest language
//
// A manifest holds one or more workflow blocks. Inside a workflow body,
// statements are plain HCL constructs replayed in source order:
//
//	workflow "rag" {
//	  param "query" { type = "str" }
//
//	  docs = search(query, { top_k = 5 })
//
//	  let "summary" "facts" {
//	    value = [summarize(docs), extract(docs)]
//	  }
//
//	  if "len(docs) > 0" {
//	    then { answer = generate(query, summary) }
//	    else { answer = fallback(query) }
//	  }
//
//	  for "doc" "docs" {
//	    do { call = index(doc) }
//	  }
//
//	  return = answer
//	}
//
// An ordinary attribute is an assignment; the reserved name "return" is the
// return statement. A let block with several labels is a tuple assignment
// over a tuple value. if carries its condition as a label and then/else as
// nested blocks; for carries the iteration variable and the iterable as
// labels. A do block holds a bare statement call.
//
// # Lowering rules
//
// HCL has no keyword arguments, so a trailing object literal in a call
// becomes the keyword-config map. Namespaced function names (a::b) lower
// to dotted callees. Any expression shape outside the reduced set lowers
// to an opaque textual fallback rather than failing; structural problems
// in the manifest itself (unknown blocks, missing labels) are reported as
// hcl.Diagnostics, since the frontend owns syntax where the compiler does
// not.
package flowhcl
