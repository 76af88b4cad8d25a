package flowdef

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeWorkflowLenient_StrictDocumentPassesThrough(t *testing.T) {
	t.Parallel()

	doc := `{"name":"w","parameters":[],"body":{"type":"Sequence","steps":[]},"return_var":null}`
	w, err := DecodeWorkflowLenient([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "w", w.Name)
}

func TestDecodeWorkflowLenient_RepairsSloppyJSON(t *testing.T) {
	t.Parallel()

	// Trailing comma and single quotes: typical LLM output damage.
	doc := `{'name': 'w', 'parameters': [], 'body': {'type': 'Sequence', 'steps': [],}, 'return_var': null,}`
	w, err := DecodeWorkflowLenient([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "w", w.Name)
	assert.NotNil(t, w.Body)
}

func TestDecodeWorkflowLenient_StructuralErrorsStillFail(t *testing.T) {
	t.Parallel()

	// Repair fixes syntax, never semantics: an unknown discriminator must
	// still be rejected.
	doc := `{'name': 'w', 'parameters': [], 'body': {'type': 'Nonsense'},}`
	_, err := DecodeWorkflowLenient([]byte(doc))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownNodeType)
}
