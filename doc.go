// Package mdspec is an mdBook preprocessor for specification-style books.
//
// # Quick Start
//
// Rewrite a single chapter body:
//
//	out := mdspec.Rewrite("r[array.type]\nThe array type.\n")
//
// Every line of the form r[id] becomes an anchored rule marker, and every
// GitHub-style admonition (> [!WARNING] followed by quoted lines) is wrapped
// in a div named after its lowercased label.
//
// # Preprocessor Protocol
//
// mdBook runs a preprocessor twice. First as "<command> supports <renderer>",
// where exit status 0 means the renderer is supported. Then with no
// arguments, writing the JSON array [context, book] to stdin and reading the
// rewritten book from stdout:
//
//	p := mdspec.NewPreprocessor(
//	    mdspec.WithWorkers(4),
//	    mdspec.WithLogger(logger),
//	)
//	if err := p.Handle(ctx, os.Stdin, os.Stdout); err != nil {
//	    log.Fatal(err)
//	}
//
// Chapters are rewritten concurrently and independently. Only the content of
// each chapter changes; names, numbers, paths and unknown keys round-trip.
//
// # Version Check
//
// The book model tracks mdBook SupportedMdbookVersion. A book produced by an
// incompatible mdBook (outside the caret range of that version) is still
// processed, with a warning logged. An unparseable version is an error.
//
// # Configuration
//
// The [preprocessor.spec] table of book.toml is forwarded by mdBook inside the
// context. Use WithBookConfig to turn it into options at Handle time:
//
//	p := mdspec.NewPreprocessor(mdspec.WithBookConfig(
//	    func(table json.RawMessage) ([]mdspec.Option, error) {
//	        // decode table, return options
//	    },
//	))
//
// # Preview
//
// RenderPreview rewrites a Markdown file and renders it to a standalone HTML
// page with an embedded stylesheet, for checking a chapter without mdBook:
//
//	page, err := mdspec.RenderPreview(ctx, markdown, mdspec.PreviewOptions{
//	    Title: "Arrays",
//	    Style: "dark",
//	})
package mdspec
