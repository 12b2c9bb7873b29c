// Package assets provides the stylesheets embedded into preview documents.
//
// Styles live under styles/{name}.css and are compiled into the binary with
// go:embed. Each style defines the look of the markup emitted by the rewriter:
//
//	.rule, .rule-link           rule anchors
//	.note, .tip, .warning, ...  admonition wrappers (lowercased labels)
//
// Style names are validated so they can never address files outside styles/.
package assets
