package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/flowgraph/internal/catalog"
	"github.com/vk/flowgraph/internal/flowdef"
)

func writeManifests(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, src := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0o600))
	}
	return dir
}

func newTestApp(t *testing.T, cfg *Config) (*App, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	return NewApp(out, &bytes.Buffer{}, cfg), out
}

func TestNewConfig_RequiresManifestPath(t *testing.T) {
	t.Parallel()

	_, err := NewConfig(Config{})
	require.Error(t, err)

	cfg, err := NewConfig(Config{ManifestPath: "grids/"})
	require.NoError(t, err)
	assert.Equal(t, "grids/", cfg.ManifestPath)
}

func TestRun_EmitsEveryWorkflowInDirectory(t *testing.T) {
	t.Parallel()

	dir := writeManifests(t, map[string]string{
		"a.hcl": `workflow "alpha" { x = f() }`,
		"b.hcl": `workflow "beta"  { y = g() }`,
	})
	cfg := &Config{ManifestPath: dir, Compact: true}
	a, out := newTestApp(t, cfg)

	require.NoError(t, a.Run(context.Background(), cfg))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)

	first, err := flowdef.DecodeWorkflow([]byte(lines[0]))
	require.NoError(t, err)
	second, err := flowdef.DecodeWorkflow([]byte(lines[1]))
	require.NoError(t, err)
	assert.Equal(t, "alpha", first.Name)
	assert.Equal(t, "beta", second.Name)

	assert.Equal(t, []string{"alpha", "beta"}, a.Catalog().Names())
}

func TestRun_IndentedOutputByDefault(t *testing.T) {
	t.Parallel()

	dir := writeManifests(t, map[string]string{
		"a.hcl": `workflow "alpha" { x = f() }`,
	})
	cfg := &Config{ManifestPath: dir}
	a, out := newTestApp(t, cfg)

	require.NoError(t, a.Run(context.Background(), cfg))

	assert.Contains(t, out.String(), "\n  ", "default output is indented")
	assert.True(t, json.Valid(out.Bytes()))
}

func TestRun_WorkflowFilter(t *testing.T) {
	t.Parallel()

	dir := writeManifests(t, map[string]string{
		"a.hcl": `workflow "alpha" { x = f() }`,
		"b.hcl": `workflow "beta"  { y = g() }`,
	})
	cfg := &Config{ManifestPath: dir, WorkflowName: "beta", Compact: true}
	a, out := newTestApp(t, cfg)

	require.NoError(t, a.Run(context.Background(), cfg))

	wf, err := flowdef.DecodeWorkflow(bytes.TrimSpace(out.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, "beta", wf.Name)
}

func TestRun_UnknownWorkflowFilter(t *testing.T) {
	t.Parallel()

	dir := writeManifests(t, map[string]string{
		"a.hcl": `workflow "alpha" { x = f() }`,
	})
	cfg := &Config{ManifestPath: dir, WorkflowName: "ghost"}
	a, _ := newTestApp(t, cfg)

	err := a.Run(context.Background(), cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrUnknownWorkflow)
}

func TestRun_DuplicateWorkflowAcrossFiles(t *testing.T) {
	t.Parallel()

	dir := writeManifests(t, map[string]string{
		"a.hcl": `workflow "same" { x = f() }`,
		"b.hcl": `workflow "same" { y = g() }`,
	})
	cfg := &Config{ManifestPath: dir}
	a, _ := newTestApp(t, cfg)

	err := a.Run(context.Background(), cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrDuplicateWorkflow)
}

func TestRun_EmptyDirectory(t *testing.T) {
	t.Parallel()

	cfg := &Config{ManifestPath: t.TempDir()}
	a, _ := newTestApp(t, cfg)

	err := a.Run(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no workflows found")
}

func TestNewLogger_FormatSelection(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	newLogger("info", "json", &buf).Info("hello")
	assert.True(t, json.Valid(bytes.TrimSpace(buf.Bytes())), "json format must emit JSON lines")

	buf.Reset()
	newLogger("warn", "text", &buf).Info("hidden")
	assert.Empty(t, buf.String(), "info is below the warn threshold")
}
