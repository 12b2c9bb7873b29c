package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	mdspec "github.com/alnah/go-mdspec"
	"github.com/alnah/go-mdspec/internal/config"
	"github.com/alnah/go-mdspec/internal/hints"
)

// runPreprocess handles one mdBook invocation: the book arrives on stdin and
// the rewritten book leaves on stdout. Diagnostics go to stderr.
func runPreprocess(ctx context.Context, flags *cliFlags, env *Environment) error {
	envCfg := loadEnvConfig()

	base, err := loadConfig(flags, envCfg)
	if err != nil {
		return err
	}

	// Settings without book.toml, used until the book has been read.
	cfg, err := resolveConfig(base, nil, envCfg, flags)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, env.Stderr)
	if err != nil {
		return err
	}
	warnUnknownEnvVars(logger)

	bookConfig := func(table json.RawMessage) ([]mdspec.Option, error) {
		cfg, err := resolveConfig(base, table, envCfg, flags)
		if err != nil {
			return nil, err
		}
		logger, err := newLogger(cfg, env.Stderr)
		if err != nil {
			return nil, err
		}
		return preprocessorOptions(cfg, logger), nil
	}

	opts := append(preprocessorOptions(cfg, logger), mdspec.WithBookConfig(bookConfig))
	p := mdspec.NewPreprocessor(opts...)

	err = p.Handle(ctx, env.Stdin, env.Stdout)
	switch {
	case errors.Is(err, mdspec.ErrInvalidInput):
		return fmt.Errorf("%w%s", err, hints.ForInvalidInput())
	case errors.Is(err, mdspec.ErrInvalidVersion):
		return fmt.Errorf("%w%s", err, hints.ForInvalidVersion(mdspec.SupportedMdbookVersion))
	}
	return err
}

// preprocessorOptions maps the effective config onto Preprocessor options.
func preprocessorOptions(cfg *config.Config, logger *slog.Logger) []mdspec.Option {
	workers := resolveWorkers(cfg.Workers)
	logger.Debug("preprocessor settings",
		"workers", workers, "escape", cfg.Rewrite.Escape, "log_level", cfg.Log.Level)

	return []mdspec.Option{
		mdspec.WithWorkers(workers),
		mdspec.WithEscape(cfg.Rewrite.Escape),
		mdspec.WithLogger(logger),
	}
}
