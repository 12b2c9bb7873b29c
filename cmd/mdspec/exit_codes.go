package main

import (
	"errors"
	"os"

	mdspec "github.com/alnah/go-mdspec"
	"github.com/alnah/go-mdspec/internal/assets"
	"github.com/alnah/go-mdspec/internal/config"
	"github.com/alnah/go-mdspec/internal/logging"
)

// Exit codes for mdspec CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
// mdBook only distinguishes zero from non-zero; the split serves scripts and humans.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid arguments, flags, config, or style
	ExitIO      = 3 // Unreadable input, unwritable output
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, mdspec.ErrInvalidInput) ||
		errors.Is(err, mdspec.ErrWriteOutput) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteHTML) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUnknownArgument) ||
		errors.Is(err, ErrInvalidFlag) ||
		errors.Is(err, ErrNotMarkdown) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrConfigInvalid) ||
		errors.Is(err, logging.ErrUnknownLevel) ||
		errors.Is(err, logging.ErrUnknownFormat) ||
		errors.Is(err, mdspec.ErrStyleNotFound) ||
		errors.Is(err, mdspec.ErrInvalidStyleName) ||
		errors.Is(err, mdspec.ErrUnknownHighlightStyle) ||
		errors.Is(err, assets.ErrInvalidBasePath) {
		return ExitUsage
	}

	return ExitGeneral
}
