// Package pipeline implements the chapter rewriting and preview pipeline.
//
// This package handles two concerns:
//   - Chapter rewriting: rule references (r[id]) and admonition blocks
//     (> [!LABEL]) are expanded into HTML fragments, in two ordered passes
//   - Preview rendering: rewritten Markdown to standalone HTML via Goldmark,
//     with an embedded stylesheet injected into the document head
//
// The rewriter works on raw text with regular expressions. It never parses
// Markdown, so it has no awareness of code fences or quote nesting: a line that
// matches is expanded wherever it appears.
package pipeline
