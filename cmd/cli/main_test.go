package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/flowgraph/internal/flowdef"
)

// writeManifest drops a manifest source into a temp dir and returns its path.
func writeManifest(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.hcl")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))
	return path
}

func TestRun_EmitsCompiledGraph(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeManifest(t, `
workflow "rag" {
  param "query" { type = "str" }

  docs   = search(query, { top_k = 5 })
  answer = generate(query, docs)
  return = answer
}
`)
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	// --- Act ---
	err := run(out, errOut, []string{"-compact", path})

	// --- Assert ---
	require.NoError(t, err)

	wf, decodeErr := flowdef.DecodeWorkflow(out.Bytes())
	require.NoError(t, decodeErr, "stdout must hold a decodable graph document")
	assert.Equal(t, "rag", wf.Name)
	assert.Equal(t, "answer", wf.ReturnVar)
	require.Len(t, wf.Parameters, 1)
	assert.Equal(t, "query", wf.Parameters[0].Name)

	body, ok := wf.Body.(*flowdef.Sequence)
	require.True(t, ok)
	require.Len(t, body.Steps, 2)
	first, ok := body.Steps[0].(*flowdef.Step)
	require.True(t, ok)
	assert.Equal(t, "search", first.Name)
	assert.Equal(t, float64(5), first.Config["top_k"])
}

func TestRun_SelectsSingleWorkflow(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeManifest(t, `
workflow "first"  { x = f() }
workflow "second" { y = g() }
`)
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, &bytes.Buffer{}, []string{"-compact", "-workflow", "second", path})

	// --- Assert ---
	require.NoError(t, err)
	wf, decodeErr := flowdef.DecodeWorkflow(out.Bytes())
	require.NoError(t, decodeErr)
	assert.Equal(t, "second", wf.Name)
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	// --- Act ---
	err := run(out, errOut, []string{"-h"})

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	assert.Contains(t, errOut.String(), "Usage:", "help text goes to the error writer")
	assert.Empty(t, out.String(), "stdout stays clean for graph documents")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Providing an unknown flag will cause cli.Parse to return an error.
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	assert.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_InvalidManifestSyntax(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeManifest(t, `
workflow "broken" {
  x = f(
`)

	// --- Act ---
	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{path})

	// --- Assert ---
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load workflow manifests")
}

func TestRun_MissingManifestPath(t *testing.T) {
	t.Parallel()

	err := run(&bytes.Buffer{}, &bytes.Buffer{}, []string{filepath.Join(t.TempDir(), "absent.hcl")})
	assert.Error(t, err)
}
