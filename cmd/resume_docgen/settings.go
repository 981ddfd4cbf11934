package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jonathan/resume-docgen/internal/config"
	"github.com/jonathan/resume-docgen/internal/observability"
)

// resolveConfig layers settings: explicit flag values, then the config file,
// then RESUME_DOCGEN_* variables, then built-in defaults.
func resolveConfig(path string, flags config.Config) (config.Config, error) {
	var file config.Config
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return config.Config{}, err
		}
		file = *loaded
	}

	env := config.FromEnv()
	cfg := flags.MergeWithDefaults(file)
	cfg = cfg.MergeWithDefaults(env)
	cfg = cfg.MergeWithDefaults(config.Defaults())

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newLogger writes diagnostics to stderr so stdout stays parseable.
func newLogger(cfg config.Config) *slog.Logger {
	return observability.NewLogger(os.Stderr, cfg.Verbose)
}

// readInput reads a file, or stdin when path is "-".
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume file %s: %w", path, err)
	}
	return data, nil
}
