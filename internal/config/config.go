package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdspec/internal/fileutil"
	"github.com/alnah/go-mdspec/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrConfigInvalid   = errors.New("invalid config value")
)

// Limits for numeric settings.
const (
	MaxWorkers = 256
)

// Accepted values for log settings.
var (
	logLevels  = []string{"debug", "info", "warn", "warning", "error"}
	logFormats = []string{"text", "json"}
)

// mdbookTableKeys are keys mdBook itself reads from a [preprocessor.<name>]
// table. They are stripped before the table is decoded as mdspec config.
var mdbookTableKeys = []string{"command", "before", "after", "renderers", "optional"}

// Config holds all configuration for the preprocessor and the preview command.
type Config struct {
	Rewrite RewriteConfig `yaml:"rewrite"`
	Workers int           `yaml:"workers"` // 0 = auto from GOMAXPROCS
	Log     LogConfig     `yaml:"log"`
	Preview PreviewConfig `yaml:"preview"`
}

// RewriteConfig defines chapter rewriting options.
type RewriteConfig struct {
	Escape bool `yaml:"escape"` // HTML-escape rule ids and admonition labels
}

// LogConfig defines diagnostic logging options.
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error" (default: "warn")
	Format string `yaml:"format"` // "text", "json" (default: "text")
}

// PreviewConfig defines options for the preview command.
type PreviewConfig struct {
	Style     string `yaml:"style"`     // stylesheet name (default: "default")
	StyleDir  string `yaml:"style_dir"` // directory of {name}.css overriding embedded styles
	Highlight string `yaml:"highlight"` // chroma style for code blocks (default: "github")
}

// Validate checks value ranges and enumerations.
// Called automatically by LoadConfig and MergeBookTable, but available for
// callers who modify a Config afterwards (env vars, CLI flags).
func (c *Config) Validate() error {
	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers must be between 0 and %d, got %d", ErrConfigInvalid, MaxWorkers, c.Workers)
	}
	if err := validateEnum("log.level", c.Log.Level, logLevels); err != nil {
		return err
	}
	if err := validateEnum("log.format", c.Log.Format, logFormats); err != nil {
		return err
	}
	return nil
}

// validateEnum accepts an empty value or one of allowed, case-insensitively.
func validateEnum(fieldName, value string, allowed []string) error {
	if value == "" {
		return nil
	}
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s: %q (must be %s)", ErrConfigInvalid, fieldName, value, strings.Join(allowed, ", "))
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		Rewrite: RewriteConfig{Escape: false},
		Workers: 0,
		Log:     LogConfig{Level: "warn", Format: "text"},
		Preview: PreviewConfig{Style: "default", Highlight: "github"},
	}
}

// LoadConfig loads configuration from a file path or config name on top of
// the defaults. If nameOrPath contains a path separator, it's treated as a
// file path. Otherwise, it's treated as a config name and searched in
// standard locations. Returns error if the file is not found.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.Overlay(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// MergeBookTable overlays the [preprocessor.<name>] table of book.toml, as
// forwarded by mdBook in JSON form. Keys owned by mdBook are ignored.
func (c *Config) MergeBookTable(table json.RawMessage) error {
	if len(table) == 0 {
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(table, &fields); err != nil {
		return fmt.Errorf("%w: book.toml table: %v", ErrConfigParse, err)
	}
	for _, key := range mdbookTableKeys {
		delete(fields, key)
	}
	if len(fields) == 0 {
		return nil
	}

	cleaned, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("%w: book.toml table: %v", ErrConfigParse, err)
	}
	if err := yamlutil.Overlay(cleaned, c); err != nil {
		return fmt.Errorf("%w: book.toml table: %v", ErrConfigParse, err)
	}

	return c.Validate()
}

// SearchPaths returns the files tried, in order, when a config is given by
// name: .yaml then .yml, in the current directory then ~/.config/mdspec/.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "mdspec", name+ext))
		}
	}

	return paths
}

// resolveConfigPath returns the first existing file of SearchPaths(name).
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
