package app

import (
	"io"
	"log/slog"

	"github.com/vk/flowgraph/internal/catalog"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle. Graph documents go to outW; logs go to errW so that emitted
// JSON stays machine-consumable.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	catalog *catalog.Catalog
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and catalog.
func NewApp(outW, errW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, errW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:    outW,
		logger:  logger,
		catalog: catalog.New(),
	}
}

// Catalog returns the application's workflow catalog. This is primarily
// for testing.
func (a *App) Catalog() *catalog.Catalog {
	return a.catalog
}
