package main

// Notes:
// - resolveConfig: we test layer precedence with the environment layer passed
//   in directly; reading it from the process is covered by env_config_test.
// - loadConfig by name searches the working directory, which we leave alone;
//   only explicit paths and the not-found hint are tested.
// - resolveWorkers: the auto value depends on GOMAXPROCS; we only check the
//   lower bound.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-mdspec/internal/config"
)

// mustParseFlags parses args or fails the test.
func mustParseFlags(t *testing.T, args ...string) *cliFlags {
	t.Helper()

	f, _, err := parseFlags(args)
	if err != nil {
		t.Fatalf("parseFlags(%v) unexpected error: %v", args, err)
	}
	return f
}

// ---------------------------------------------------------------------------
// TestLoadConfig - Config file selection
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("no config gives defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := loadConfig(mustParseFlags(t), &envConfig{})
		if err != nil {
			t.Fatalf("loadConfig() unexpected error: %v", err)
		}
		if *cfg != *config.DefaultConfig() {
			t.Errorf("loadConfig() = %+v, want defaults", cfg)
		}
	})

	t.Run("flag wins over env", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		flagPath := filepath.Join(dir, "flag.yaml")
		envPath := filepath.Join(dir, "env.yaml")
		if err := os.WriteFile(flagPath, []byte("workers: 3\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(envPath, []byte("workers: 5\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		cfg, err := loadConfig(mustParseFlags(t, "--config", flagPath), &envConfig{ConfigPath: envPath})
		if err != nil {
			t.Fatalf("loadConfig() unexpected error: %v", err)
		}
		if cfg.Workers != 3 {
			t.Errorf("Workers = %d, want 3 from the flag's file", cfg.Workers)
		}
	})

	t.Run("env path used without flag", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "env.yaml")
		if err := os.WriteFile(path, []byte("rewrite:\n  escape: true\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		cfg, err := loadConfig(mustParseFlags(t), &envConfig{ConfigPath: path})
		if err != nil {
			t.Fatalf("loadConfig() unexpected error: %v", err)
		}
		if !cfg.Rewrite.Escape {
			t.Error("Escape = false, want true from MDSPEC_CONFIG file")
		}
	})

	t.Run("missing name carries hint", func(t *testing.T) {
		t.Parallel()

		_, err := loadConfig(mustParseFlags(t, "-c", "no-such-mdspec-config"), &envConfig{})
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Fatalf("loadConfig() error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "hint:") {
			t.Errorf("error should carry a hint, got %q", err)
		}
	})

	t.Run("missing path has no hint", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing.yaml")
		_, err := loadConfig(mustParseFlags(t, "-c", path), &envConfig{})
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Fatalf("loadConfig() error = %v, want ErrConfigNotFound", err)
		}
		if strings.Contains(err.Error(), "hint:") {
			t.Errorf("explicit path should not suggest search locations, got %q", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestResolveConfig - Layer precedence
// ---------------------------------------------------------------------------

func TestResolveConfig(t *testing.T) {
	t.Parallel()

	escapeOff := false

	tests := []struct {
		name  string
		table string
		env   envConfig
		args  []string
		check func(t *testing.T, cfg *config.Config)
	}{
		{
			name: "defaults",
			check: func(t *testing.T, cfg *config.Config) {
				if *cfg != *config.DefaultConfig() {
					t.Errorf("cfg = %+v, want defaults", cfg)
				}
			},
		},
		{
			name:  "book table over defaults",
			table: `{"command": "mdspec", "workers": 2, "rewrite": {"escape": true}}`,
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Workers != 2 || !cfg.Rewrite.Escape {
					t.Errorf("Workers/Escape = %d/%v, want 2/true", cfg.Workers, cfg.Rewrite.Escape)
				}
			},
		},
		{
			name:  "env over book table",
			table: `{"workers": 2, "rewrite": {"escape": true}}`,
			env:   envConfig{Workers: 6, Escape: &escapeOff},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Workers != 6 || cfg.Rewrite.Escape {
					t.Errorf("Workers/Escape = %d/%v, want 6/false", cfg.Workers, cfg.Rewrite.Escape)
				}
			},
		},
		{
			name:  "flags over env",
			table: `{"workers": 2}`,
			env:   envConfig{Workers: 6, LogLevel: "error"},
			args:  []string{"-w", "1", "--log-level", "info"},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Workers != 1 || cfg.Log.Level != "info" {
					t.Errorf("Workers/Level = %d/%q, want 1/info", cfg.Workers, cfg.Log.Level)
				}
			},
		},
		{
			name: "warning level alias flag",
			args: []string{"--log-level", "warning"},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Log.Level != "warning" {
					t.Errorf("Level = %q, want warning", cfg.Log.Level)
				}
			},
		},
		{
			name: "explicit zero workers flag",
			env:  envConfig{Workers: 6},
			args: []string{"--workers=0"},
			check: func(t *testing.T, cfg *config.Config) {
				if cfg.Workers != 0 {
					t.Errorf("Workers = %d, want 0 (auto)", cfg.Workers)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			base := config.DefaultConfig()
			cfg, err := resolveConfig(base, json.RawMessage(tt.table), &tt.env, mustParseFlags(t, tt.args...))
			if err != nil {
				t.Fatalf("resolveConfig() unexpected error: %v", err)
			}
			tt.check(t, cfg)

			if *base != *config.DefaultConfig() {
				t.Error("resolveConfig() must not modify base")
			}
		})
	}
}

func TestResolveConfig_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		table   string
		args    []string
		wantErr error
	}{
		{"malformed table", `[1, 2]`, nil, config.ErrConfigParse},
		{"unknown table key", `{"worker": 2}`, nil, config.ErrConfigParse},
		{"invalid table value", `{"log": {"format": "xml"}}`, nil, config.ErrConfigInvalid},
		{"invalid flag value", ``, []string{"--workers", "1000"}, config.ErrConfigInvalid},
		{"invalid log flag", ``, []string{"--log-format", "xml"}, config.ErrConfigInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := resolveConfig(config.DefaultConfig(), json.RawMessage(tt.table), &envConfig{}, mustParseFlags(t, tt.args...))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("resolveConfig() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestMergeFlags - CLI overrides
// ---------------------------------------------------------------------------

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	t.Run("verbose wins over log level", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		mergeFlags(mustParseFlags(t, "--log-level", "error", "-v"), cfg)
		if cfg.Log.Level != "debug" {
			t.Errorf("Level = %q, want debug", cfg.Log.Level)
		}
	})

	t.Run("unset flags keep config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Workers = 4
		cfg.Rewrite.Escape = true
		mergeFlags(mustParseFlags(t), cfg)
		if cfg.Workers != 4 || !cfg.Rewrite.Escape {
			t.Errorf("Workers/Escape = %d/%v, want 4/true", cfg.Workers, cfg.Rewrite.Escape)
		}
	})

	t.Run("preview flags", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		mergeFlags(mustParseFlags(t, "--style", "dark", "--style-dir", "s", "--highlight", "monokai"), cfg)
		want := config.PreviewConfig{Style: "dark", StyleDir: "s", Highlight: "monokai"}
		if cfg.Preview != want {
			t.Errorf("Preview = %+v, want %+v", cfg.Preview, want)
		}
	})
}

// ---------------------------------------------------------------------------
// TestResolveWorkers - Worker count resolution
// ---------------------------------------------------------------------------

func TestResolveWorkers(t *testing.T) {
	t.Parallel()

	if got := resolveWorkers(5); got != 5 {
		t.Errorf("resolveWorkers(5) = %d, want 5", got)
	}
	if got := resolveWorkers(0); got < 1 {
		t.Errorf("resolveWorkers(0) = %d, want >= 1", got)
	}
	if got := resolveWorkers(-3); got < 1 {
		t.Errorf("resolveWorkers(-3) = %d, want >= 1", got)
	}
}
