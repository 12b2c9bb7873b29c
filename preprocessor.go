package mdspec

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-mdspec/internal/logging"
	"github.com/alnah/go-mdspec/internal/pipeline"
)

// DefaultName is the preprocessor name used to look up [preprocessor.<name>]
// in book.toml.
const DefaultName = "spec"

// Rewriter rewrites one chapter body. Implementations must be safe for
// concurrent use, as chapters are rewritten in parallel.
type Rewriter interface {
	Rewrite(ctx context.Context, content string) string
}

// Compile-time interface implementation checks.
var (
	_ Rewriter                 = (*pipeline.ContentRewriter)(nil)
	_ pipeline.ChapterRewriter = (Rewriter)(nil)
)

// BookConfigFunc turns the [preprocessor.<name>] table of book.toml into
// options. table is nil when the book has no such table.
type BookConfigFunc func(table json.RawMessage) ([]Option, error)

// Option configures a Preprocessor.
type Option func(*Preprocessor)

// WithName sets the name used to find the book.toml table.
func WithName(name string) Option {
	return func(p *Preprocessor) {
		if name != "" {
			p.name = name
		}
	}
}

// WithWorkers bounds how many chapters are rewritten at once.
// n <= 0 means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(p *Preprocessor) {
		p.workers = n
	}
}

// WithEscape enables HTML escaping of rule ids and admonition labels.
// Ignored when a custom rewriter is set.
func WithEscape(escape bool) Option {
	return func(p *Preprocessor) {
		p.escape = escape
	}
}

// WithLogger sets the diagnostics logger. A nil logger discards.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Preprocessor) {
		if logger == nil {
			logger = logging.Discard()
		}
		p.logger = logger
	}
}

// WithRewriter replaces the chapter rewriter.
func WithRewriter(r Rewriter) Option {
	return func(p *Preprocessor) {
		p.rewriter = r
	}
}

// WithBookConfig registers a hook applied by Handle once the book.toml table
// is known. Options it returns override the ones given to NewPreprocessor.
func WithBookConfig(fn BookConfigFunc) Option {
	return func(p *Preprocessor) {
		p.bookConfig = fn
	}
}

// Preprocessor drives the mdBook preprocessor protocol around a Rewriter.
// A Preprocessor is immutable after construction and safe for concurrent use.
type Preprocessor struct {
	name       string
	workers    int
	escape     bool
	logger     *slog.Logger
	rewriter   Rewriter
	bookConfig BookConfigFunc
}

// NewPreprocessor creates a Preprocessor with default settings.
func NewPreprocessor(opts ...Option) *Preprocessor {
	p := &Preprocessor{
		name:   DefaultName,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// with returns a copy of p with opts applied.
func (p *Preprocessor) with(opts ...Option) *Preprocessor {
	cp := *p
	for _, opt := range opts {
		opt(&cp)
	}
	return &cp
}

// Name returns the preprocessor name.
func (p *Preprocessor) Name() string {
	return p.name
}

// Supports reports whether the preprocessor can run for renderer.
// Rewritten chapters are plain Markdown with HTML blocks, valid for every renderer.
func (p *Preprocessor) Supports(renderer string) bool {
	return true
}

// Run rewrites the content of every chapter of book in place.
// Chapters are processed concurrently, bounded by the worker count.
// Only Content changes; the book structure and all other fields are kept.
// Returns the context error if ctx is cancelled before all chapters are done.
func (p *Preprocessor) Run(ctx context.Context, book *Book) error {
	chapters := book.Chapters()
	if len(chapters) == 0 {
		return ctx.Err()
	}

	rw := p.chapterRewriter()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workerCount(len(chapters)))

	for _, ch := range chapters {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			in := len(ch.Content)
			ch.Content = rw.Rewrite(gctx, ch.Content)
			p.logger.Debug("chapter rewritten",
				"chapter", ch.Name, "bytes_in", in, "bytes_out", len(ch.Content))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// Handle runs the full protocol: read [context, book] from in, apply book.toml
// settings, check the mdBook version, rewrite, and write the book to out.
// A version mismatch is logged as a warning; an unparseable version fails.
func (p *Preprocessor) Handle(ctx context.Context, in io.Reader, out io.Writer) error {
	pctx, book, err := ReadInput(in)
	if err != nil {
		return err
	}

	run := p
	if p.bookConfig != nil {
		table, _ := pctx.PreprocessorConfig(p.name)
		opts, err := p.bookConfig(table)
		if err != nil {
			return fmt.Errorf("applying [preprocessor.%s] settings: %w", p.name, err)
		}
		run = p.with(opts...)
	}

	if err := CheckVersion(pctx.MdbookVersion); err != nil {
		if !errors.Is(err, ErrVersionMismatch) {
			return err
		}
		run.logger.Warn("mdBook version mismatch",
			"running", pctx.MdbookVersion, "supported", SupportedMdbookVersion)
	}

	run.logger.Info("preprocessing book",
		"name", run.name, "renderer", pctx.Renderer, "root", pctx.Root)

	if err := run.Run(ctx, book); err != nil {
		return err
	}
	return WriteBook(out, book)
}

// chapterRewriter returns the configured rewriter or the default one.
func (p *Preprocessor) chapterRewriter() Rewriter {
	if p.rewriter != nil {
		return p.rewriter
	}
	return &pipeline.ContentRewriter{Escape: p.escape}
}

// workerCount bounds the worker count by the number of chapters.
func (p *Preprocessor) workerCount(chapters int) int {
	n := p.workers
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	return max(1, min(n, chapters))
}

// defaultRewriter backs the package-level Rewrite.
var defaultRewriter = &pipeline.ContentRewriter{}

// Rewrite expands rule references and admonitions in content using the
// default options. It never fails; text without markers is returned unchanged.
func Rewrite(content string) string {
	return defaultRewriter.Rewrite(context.Background(), content)
}
