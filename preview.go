package mdspec

import (
	"context"
	"fmt"

	"github.com/alnah/go-mdspec/internal/assets"
	"github.com/alnah/go-mdspec/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.HTMLConverter = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.CSSInjector   = (*pipeline.CSSInjection)(nil)
)

// DefaultPreviewTitle is used when PreviewOptions.Title is empty.
const DefaultPreviewTitle = "Preview"

// PreviewOptions configures RenderPreview.
type PreviewOptions struct {
	Title     string // document title (default: DefaultPreviewTitle)
	Style     string // stylesheet name (default: "default")
	StyleDir  string // directory of {name}.css checked before embedded styles
	Highlight string // chroma style for code blocks (default: "github")
	Escape    bool   // HTML-escape rule ids and admonition labels
}

// RenderPreview rewrites markdown and renders it as a standalone HTML page
// with the selected stylesheet inlined.
// Returns an error wrapping ErrStyleNotFound, ErrUnknownHighlightStyle or
// ErrHTMLConversion, or the context error if ctx is cancelled.
func RenderPreview(ctx context.Context, markdown string, opts PreviewOptions) (string, error) {
	if opts.Title == "" {
		opts.Title = DefaultPreviewTitle
	}
	if opts.Style == "" {
		opts.Style = assets.DefaultStyleName
	}

	loader, err := assets.NewStyleResolver(opts.StyleDir)
	if err != nil {
		return "", fmt.Errorf("loading styles: %w", err)
	}
	css, err := loader.LoadStyle(opts.Style)
	if err != nil {
		return "", err
	}

	conv, err := pipeline.NewGoldmarkConverter(opts.Highlight)
	if err != nil {
		return "", err
	}

	rewriter := &pipeline.ContentRewriter{Escape: opts.Escape}
	content := rewriter.Rewrite(ctx, markdown)

	page, err := conv.ToHTML(ctx, opts.Title, content)
	if err != nil {
		return "", err
	}

	injector := &pipeline.CSSInjection{}
	return injector.InjectCSS(ctx, page, css), nil
}

// PreviewStyles lists the stylesheet names RenderPreview accepts with the
// given style directory, sorted. An empty dir lists the embedded styles.
func PreviewStyles(dir string) []string {
	loader, err := assets.NewStyleResolver(dir)
	if err != nil {
		return assets.Styles()
	}
	return loader.Styles()
}
