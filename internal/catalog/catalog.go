// Package catalog holds compiled workflows keyed by name.
//
// A workflow is compiled exactly once, at the moment its function is
// registered; from then on the catalog only hands out the immutable result.
// Everything downstream of that hand-off (caching of executable plans,
// execution, resumption) belongs to the execution engine, not here.
package catalog

import (
	"errors"
	"fmt"

	"github.com/vk/flowgraph/internal/compiler"
	"github.com/vk/flowgraph/internal/flowast"
)

// ErrDuplicateWorkflow is returned when registering a name twice. The
// compile-once lifecycle makes silent replacement a bug, not a feature.
var ErrDuplicateWorkflow = errors.New("workflow already registered")

// ErrUnknownWorkflow is returned when looking up a name never registered.
var ErrUnknownWorkflow = errors.New("unknown workflow")

// Catalog is a name-keyed collection of compiled workflows. Like the rest
// of the compilation pipeline it is single-threaded; callers that share a
// catalog across goroutines must provide their own synchronization.
type Catalog struct {
	entries map[string]*compiler.Result
	order   []string
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{entries: make(map[string]*compiler.Result)}
}

// Register compiles fn and stores the result under the function's name.
func (c *Catalog) Register(fn *flowast.Function) (*compiler.Result, error) {
	if fn == nil {
		return nil, errors.New("catalog: nil function")
	}
	if _, exists := c.entries[fn.Name]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateWorkflow, fn.Name)
	}

	result, err := compiler.Compile(fn)
	if err != nil {
		return nil, err
	}

	c.entries[fn.Name] = result
	c.order = append(c.order, fn.Name)
	return result, nil
}

// Lookup returns the compiled workflow registered under name.
func (c *Catalog) Lookup(name string) (*compiler.Result, error) {
	result, ok := c.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWorkflow, name)
	}
	return result, nil
}

// Names returns the registered workflow names in registration order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.order))
	copy(names, c.order)
	return names
}
