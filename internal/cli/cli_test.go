package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_PositionalManifestPath(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cfg, shouldExit, err := Parse([]string{"grids/rag.hcl"}, &out)

	require.NoError(t, err)
	assert.False(t, shouldExit)
	require.NotNil(t, cfg)
	assert.Equal(t, "grids/rag.hcl", cfg.ManifestPath)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Compact)
}

func TestParse_FlagsOverridePositional(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cfg, _, err := Parse([]string{"-manifest", "a.hcl", "ignored.hcl"}, &out)

	require.NoError(t, err)
	assert.Equal(t, "a.hcl", cfg.ManifestPath)
}

func TestParse_ShorthandManifestFlag(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cfg, _, err := Parse([]string{"-m", "b.hcl"}, &out)

	require.NoError(t, err)
	assert.Equal(t, "b.hcl", cfg.ManifestPath)
}

func TestParse_WorkflowAndCompact(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cfg, _, err := Parse([]string{"-workflow", "rag", "-compact", "c.hcl"}, &out)

	require.NoError(t, err)
	assert.Equal(t, "rag", cfg.WorkflowName)
	assert.True(t, cfg.Compact)
}

func TestParse_NoPathPrintsUsage(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cfg, shouldExit, err := Parse(nil, &out)

	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParse_HelpFlag(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cfg, shouldExit, err := Parse([]string{"-h"}, &out)

	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
}

func TestParse_InvalidLogFormat(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	_, _, err := Parse([]string{"-log-format", "xml", "a.hcl"}, &out)

	require.Error(t, err)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestParse_InvalidLogLevel(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	_, _, err := Parse([]string{"-log-level", "verbose", "a.hcl"}, &out)

	require.Error(t, err)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestParse_UnknownFlag(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	_, _, err := Parse([]string{"-frobnicate"}, &out)

	require.Error(t, err)
	var exitErr *ExitError
	assert.ErrorAs(t, err, &exitErr)
}
