package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/flowgraph/internal/flowast"
)

func testFn(name string) *flowast.Function {
	return &flowast.Function{
		Name: name,
		Body: []flowast.Statement{
			&flowast.Assign{
				Target: "x",
				Value:  &flowast.Call{Fn: &flowast.Ref{Path: []string{"f"}}},
			},
		},
	}
}

func TestRegisterAndLookup(t *testing.T) {
	t.Parallel()

	c := New()
	registered, err := c.Register(testFn("rag"))
	require.NoError(t, err)
	require.NotNil(t, registered)

	found, err := c.Lookup("rag")
	require.NoError(t, err)
	assert.Same(t, registered, found, "lookup must return the compile-once result")
	assert.Equal(t, "rag", found.Workflow.Name)
}

func TestRegister_DuplicateName(t *testing.T) {
	t.Parallel()

	c := New()
	_, err := c.Register(testFn("rag"))
	require.NoError(t, err)

	_, err = c.Register(testFn("rag"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateWorkflow)
}

func TestRegister_CompileFailureIsNotStored(t *testing.T) {
	t.Parallel()

	c := New()
	_, err := c.Register(&flowast.Function{Name: "empty"})
	require.Error(t, err)

	_, err = c.Lookup("empty")
	assert.ErrorIs(t, err, ErrUnknownWorkflow)
}

func TestRegister_NilFunction(t *testing.T) {
	t.Parallel()

	_, err := New().Register(nil)
	assert.Error(t, err)
}

func TestLookup_Unknown(t *testing.T) {
	t.Parallel()

	_, err := New().Lookup("ghost")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownWorkflow)
	assert.Contains(t, err.Error(), "ghost")
}

func TestNames_RegistrationOrder(t *testing.T) {
	t.Parallel()

	c := New()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		_, err := c.Register(testFn(name))
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"zeta", "alpha", "mid"}, c.Names())
}
