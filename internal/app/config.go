package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// ManifestPath is a single .hcl manifest file or a directory of them.
	ManifestPath string

	// WorkflowName optionally restricts emission to one workflow.
	WorkflowName string

	LogFormat string
	LogLevel  string

	// Compact emits one-line JSON documents instead of indented ones.
	Compact bool
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ManifestPath == "" {
		return nil, errors.New("ManifestPath is a required configuration field and cannot be empty")
	}

	return &cfg, nil
}
