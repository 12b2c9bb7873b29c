package main

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"github.com/alnah/go-mdspec/internal/config"
	"github.com/alnah/go-mdspec/internal/fileutil"
	"github.com/alnah/go-mdspec/internal/hints"
	"github.com/alnah/go-mdspec/internal/logging"
)

// loadConfig loads the config file named by --config or MDSPEC_CONFIG.
// Without either, the defaults are returned.
func loadConfig(flags *cliFlags, env *envConfig) (*config.Config, error) {
	name := cmp.Or(flags.common.config, env.ConfigPath)
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
			return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, err
	}
	return cfg, nil
}

// resolveConfig layers, on a copy of base: the book.toml table (if any),
// environment variables, then CLI flags, and validates the result.
func resolveConfig(base *config.Config, table json.RawMessage, env *envConfig, flags *cliFlags) (*config.Config, error) {
	cfg := *base

	if err := cfg.MergeBookTable(table); err != nil {
		return nil, err
	}
	applyEnvConfig(env, &cfg)
	mergeFlags(flags, &cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeFlags merges CLI flags into config. Explicit flags override config values.
func mergeFlags(flags *cliFlags, cfg *config.Config) {
	if flags.changed["workers"] {
		cfg.Workers = flags.workers
	}
	if flags.changed["escape"] {
		cfg.Rewrite.Escape = flags.escape
	}

	// Log flags; --verbose wins over --log-level
	if flags.log.level != "" {
		cfg.Log.Level = flags.log.level
	}
	if flags.common.verbose {
		cfg.Log.Level = "debug"
	}
	if flags.log.format != "" {
		cfg.Log.Format = flags.log.format
	}

	// Preview flags
	if flags.preview.style != "" {
		cfg.Preview.Style = flags.preview.style
	}
	if flags.preview.styleDir != "" {
		cfg.Preview.StyleDir = flags.preview.styleDir
	}
	if flags.preview.highlight != "" {
		cfg.Preview.Highlight = flags.preview.highlight
	}
}

// newLogger builds the diagnostics logger described by cfg.
func newLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	return logging.NewFromStrings(w, cfg.Log.Level, cfg.Log.Format)
}

// resolveWorkers determines the chapter worker count.
// Priority: explicit setting > GOMAXPROCS (adjusted by automaxprocs for containers).
func resolveWorkers(configured int) int {
	if configured > 0 {
		return configured
	}
	return max(1, runtime.GOMAXPROCS(0))
}
