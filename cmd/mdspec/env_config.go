package main

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-mdspec/internal/config"
)

// envConfig holds configuration from environment variables.
// Lets a book's CI override settings without editing book.toml.
type envConfig struct {
	ConfigPath string // MDSPEC_CONFIG: config file name or path
	Workers    int    // MDSPEC_WORKERS: parallel chapter workers
	Escape     *bool  // MDSPEC_ESCAPE: HTML-escape ids and labels
	LogLevel   string // MDSPEC_LOG_LEVEL: debug, info, warn (warning), error
	LogFormat  string // MDSPEC_LOG_FORMAT: text, json
	Style      string // MDSPEC_STYLE: preview stylesheet name
	StyleDir   string // MDSPEC_STYLE_DIR: preview stylesheet directory
	Highlight  string // MDSPEC_HIGHLIGHT: preview code highlight style
}

// knownEnvVars lists valid MDSPEC_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDSPEC_CONFIG":     true,
	"MDSPEC_WORKERS":    true,
	"MDSPEC_ESCAPE":     true,
	"MDSPEC_LOG_LEVEL":  true,
	"MDSPEC_LOG_FORMAT": true,
	"MDSPEC_STYLE":      true,
	"MDSPEC_STYLE_DIR":  true,
	"MDSPEC_HIGHLIGHT":  true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers and booleans are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MDSPEC_CONFIG"),
		LogLevel:   os.Getenv("MDSPEC_LOG_LEVEL"),
		LogFormat:  os.Getenv("MDSPEC_LOG_FORMAT"),
		Style:      os.Getenv("MDSPEC_STYLE"),
		StyleDir:   os.Getenv("MDSPEC_STYLE_DIR"),
		Highlight:  os.Getenv("MDSPEC_HIGHLIGHT"),
	}

	if workers := os.Getenv("MDSPEC_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	if escape := os.Getenv("MDSPEC_ESCAPE"); escape != "" {
		if b, err := strconv.ParseBool(escape); err == nil {
			cfg.Escape = &b
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MDSPEC_* variables.
// Helps catch typos like MDSPEC_WORKER instead of MDSPEC_WORKERS.
func warnUnknownEnvVars(logger *slog.Logger) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MDSPEC_") {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				logger.Warn("unknown environment variable (typo?)", "name", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Set variables override the config file and the book.toml table;
// CLI flags are applied later via mergeFlags.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Workers > 0 {
		cfg.Workers = env.Workers
	}
	if env.Escape != nil {
		cfg.Rewrite.Escape = *env.Escape
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.LogFormat != "" {
		cfg.Log.Format = env.LogFormat
	}
	if env.Style != "" {
		cfg.Preview.Style = env.Style
	}
	if env.StyleDir != "" {
		cfg.Preview.StyleDir = env.StyleDir
	}
	if env.Highlight != "" {
		cfg.Preview.Highlight = env.Highlight
	}
}
