// Package yamlutil wraps YAML decoding to isolate the external dependency.
//
// Every configuration source of mdspec goes through Overlay: the YAML config
// file and the book.toml preprocessor table, which mdBook forwards as JSON.
// JSON is valid YAML, so both share one strict decoder.
package yamlutil

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

func checkSize(data []byte) error {
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	return nil
}

// UnmarshalStrict decodes data into v and rejects unknown fields.
func UnmarshalStrict(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if v == nil {
		return ErrNilDestination
	}
	if err := checkSize(data); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// Overlay decodes data onto an already populated v: fields present in data
// replace the current values, absent fields keep them. Unknown fields are
// rejected. Blank input (including "null" and "{}") is a no-op.
func Overlay(data []byte, v any) error {
	if v == nil {
		return ErrNilDestination
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("{}")) {
		return nil
	}
	return UnmarshalStrict(trimmed, v)
}
