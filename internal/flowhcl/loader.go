package flowhcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"

	"github.com/vk/flowgraph/internal/ctxlog"
	"github.com/vk/flowgraph/internal/flowast"
	"github.com/vk/flowgraph/internal/fsutil"
)

// ParseSource lowers the workflow blocks found in one manifest source into
// structural functions. filename is used for diagnostic positions only.
func ParseSource(filename string, src []byte) ([]*flowast.Function, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing %s: %w", filename, diags)
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		// hclparse.ParseHCL always yields hclsyntax for native syntax input.
		return nil, fmt.Errorf("parsing %s: unexpected body implementation", filename)
	}

	var fns []*flowast.Function
	for _, block := range body.Blocks {
		if block.Type != "workflow" {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  fmt.Sprintf("Unknown %q block", block.Type),
				Detail:   "Only workflow blocks are allowed at the top level of a manifest.",
				Subject:  &block.TypeRange,
			})
			continue
		}
		fn, fnDiags := lowerWorkflow(block, src)
		diags = append(diags, fnDiags...)
		if fn != nil {
			fns = append(fns, fn)
		}
	}

	if diags.HasErrors() {
		return nil, fmt.Errorf("lowering %s: %w", filename, diags)
	}
	return fns, nil
}

// LoadFile parses a single manifest file.
func LoadFile(ctx context.Context, path string) ([]*flowast.Function, error) {
	ctxlog.FromContext(ctx).Debug("Loading workflow manifest.", "path", path)

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	return ParseSource(path, src)
}

// LoadPath parses a manifest file, or every .hcl file under a directory.
func LoadPath(ctx context.Context, path string) ([]*flowast.Function, error) {
	logger := ctxlog.FromContext(ctx)

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("locating manifest path %s: %w", path, err)
	}
	if !info.IsDir() {
		return LoadFile(ctx, path)
	}

	files, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("scanning manifest directory %s: %w", path, err)
	}
	if len(files) == 0 {
		logger.Warn("No .hcl manifest files found in directory.", "path", path)
		return nil, nil
	}

	var fns []*flowast.Function
	for _, file := range files {
		fileFns, err := LoadFile(ctx, file)
		if err != nil {
			return nil, err
		}
		fns = append(fns, fileFns...)
	}

	logger.Debug("Workflow manifests loaded.", "files", len(files), "workflows", len(fns))
	return fns, nil
}
