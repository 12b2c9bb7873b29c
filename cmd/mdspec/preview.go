package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	mdspec "github.com/alnah/go-mdspec"
	"github.com/alnah/go-mdspec/internal/fileutil"
	"github.com/alnah/go-mdspec/internal/hints"
)

// File permission constants.
const (
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
)

// stdoutPath selects stdout as the preview output.
const stdoutPath = "-"

// runPreview renders one markdown file, rewritten the way mdBook would see
// it, as a standalone HTML page. Output defaults to the input path with an
// .html extension.
func runPreview(ctx context.Context, args []string, flags *cliFlags, env *Environment) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: preview needs a markdown file", ErrNoInput)
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: %q", ErrUnknownArgument, args[1])
	}
	inputPath := args[0]
	if !fileutil.IsMarkdown(inputPath) {
		return fmt.Errorf("%w: %s", ErrNotMarkdown, inputPath)
	}

	envCfg := loadEnvConfig()
	base, err := loadConfig(flags, envCfg)
	if err != nil {
		return err
	}
	cfg, err := resolveConfig(base, nil, envCfg, flags)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, env.Stderr)
	if err != nil {
		return err
	}
	warnUnknownEnvVars(logger)

	content, err := os.ReadFile(inputPath) // #nosec G304 -- input path is user-provided
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}
	markdown := string(content)

	// Title: flag → H1 → filename
	title := flags.preview.title
	if title == "" {
		title = extractFirstHeading(markdown)
	}
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	}

	page, err := mdspec.RenderPreview(ctx, markdown, mdspec.PreviewOptions{
		Title:     title,
		Style:     cfg.Preview.Style,
		StyleDir:  cfg.Preview.StyleDir,
		Highlight: cfg.Preview.Highlight,
		Escape:    cfg.Rewrite.Escape,
	})
	if err != nil {
		if errors.Is(err, mdspec.ErrStyleNotFound) {
			return fmt.Errorf("%w%s", err, hints.ForStyleNotFound(mdspec.PreviewStyles(cfg.Preview.StyleDir)))
		}
		return err
	}

	outputPath := flags.preview.output
	if outputPath == "" {
		outputPath = fileutil.ReplaceExt(inputPath, ".html")
	}
	if outputPath == stdoutPath {
		_, err := io.WriteString(env.Stdout, page)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrWriteHTML, err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), dirPermissions); err != nil {
		return fmt.Errorf("creating output directory: %w%s", err, hints.ForOutputDirectory())
	}
	// #nosec G306 -- previews are meant to be readable
	if err := os.WriteFile(outputPath, []byte(page), filePermissions); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteHTML, err)
	}

	logger.Info("preview written", "input", inputPath, "output", outputPath)
	return nil
}

// firstHeadingPattern matches the first # heading in markdown content.
var firstHeadingPattern = regexp.MustCompile(`(?m)^#\s+(.+)$`)

// extractFirstHeading extracts the first # heading from markdown content.
func extractFirstHeading(markdown string) string {
	matches := firstHeadingPattern.FindStringSubmatch(markdown)
	if len(matches) >= 2 {
		return strings.TrimSpace(matches[1])
	}
	return ""
}
