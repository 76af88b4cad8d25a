package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vk/flowgraph/internal/ctxlog"
	"github.com/vk/flowgraph/internal/flowhcl"
)

// Run executes the compile-and-emit pipeline: load manifests, register and
// compile every workflow, then write the selected graph documents to the
// output writer.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	fns, err := flowhcl.LoadPath(ctx, cfg.ManifestPath)
	if err != nil {
		return fmt.Errorf("failed to load workflow manifests: %w", err)
	}
	if len(fns) == 0 {
		return fmt.Errorf("no workflows found under %s", cfg.ManifestPath)
	}

	for _, fn := range fns {
		result, err := a.catalog.Register(fn)
		if err != nil {
			return fmt.Errorf("failed to compile workflow %q: %w", fn.Name, err)
		}
		a.logger.Debug("Workflow compiled.",
			"workflow", fn.Name,
			"parameters", len(result.Workflow.Parameters),
			"predicates", result.Predicates.Len(),
		)
	}

	names := a.catalog.Names()
	if cfg.WorkflowName != "" {
		if _, err := a.catalog.Lookup(cfg.WorkflowName); err != nil {
			return err
		}
		names = []string{cfg.WorkflowName}
	}

	for _, name := range names {
		result, err := a.catalog.Lookup(name)
		if err != nil {
			return err
		}

		var doc []byte
		if cfg.Compact {
			doc, err = json.Marshal(result.Workflow)
		} else {
			doc, err = json.MarshalIndent(result.Workflow, "", "  ")
		}
		if err != nil {
			return fmt.Errorf("failed to encode workflow %q: %w", name, err)
		}

		if _, err := fmt.Fprintf(a.outW, "%s\n", doc); err != nil {
			return fmt.Errorf("failed to write workflow %q: %w", name, err)
		}
	}

	a.logger.Info("Workflow graphs emitted.", "count", len(names))
	a.logger.Debug("App.Run method finished.")
	return nil
}
