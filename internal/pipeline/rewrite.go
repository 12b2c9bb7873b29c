package pipeline

import (
	"context"
	"html"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Precompiled regex patterns. Both run in multiline mode so ^ and $ bind to
// line boundaries. Identifiers and labels never span a line terminator.
var (
	// Rule reference: a whole line of the form r[id]
	ruleReferencePattern = regexp.MustCompile(`(?m)^r\[([^\]\n]*)\]$`)

	// Admonition: "> [!LABEL]" opener followed by one or more "> " lines
	admonitionPattern = regexp.MustCompile(`(?m)^ *> \[!([^\]\n]*)\]\n((?: *> .*\n)+)`)
)

// ChapterRewriter defines the contract for rewriting one chapter body.
type ChapterRewriter interface {
	Rewrite(ctx context.Context, content string) string
}

// ContentRewriter expands rule references and admonitions in chapter text.
// The zero value inserts identifiers and labels verbatim.
type ContentRewriter struct {
	// Escape HTML-escapes identifiers and labels before interpolation.
	Escape bool
}

// Rewrite applies both passes. The admonition pass reads the output of the
// rule pass, never the original text.
func (r *ContentRewriter) Rewrite(ctx context.Context, content string) string {
	if ctx.Err() != nil {
		return content
	}

	content = ExpandRuleReferences(content, r.Escape)
	content = ExpandAdmonitions(content, r.Escape)
	return content
}

// ExpandRuleReferences replaces every r[id] line with an anchored rule div.
// The line terminator of the matched line is kept, after the inserted newline.
func ExpandRuleReferences(content string, escape bool) string {
	return replaceAllSubmatch(ruleReferencePattern, content, func(groups []string) string {
		id := attr(groups[1], escape)
		var b strings.Builder
		b.WriteString(`<div class="rule" id="`)
		b.WriteString(id)
		b.WriteString(`"><a class="rule-link" href="#`)
		b.WriteString(id)
		b.WriteString(`">[`)
		b.WriteString(id)
		b.WriteString("]</a></div>\n")
		return b.String()
	})
}

// ExpandAdmonitions wraps every admonition block in a div named after its
// lowercased label. The quoted lines are kept verbatim, "> " markers included.
func ExpandAdmonitions(content string, escape bool) string {
	return replaceAllSubmatch(admonitionPattern, content, func(groups []string) string {
		// Casers carry state; one per match keeps parallel chapters independent.
		label := cases.Lower(language.Und).String(groups[1])
		return `<div class="` + attr(label, escape) + "\">\n\n" + groups[2] + "\n\n</div>\n"
	})
}

// attr prepares a captured value for interpolation into markup.
func attr(s string, escape bool) string {
	if escape {
		return html.EscapeString(s)
	}
	return s
}

// replaceAllSubmatch replaces every non-overlapping match of re, left to right,
// with the value returned by repl for that match's capture groups.
func replaceAllSubmatch(re *regexp.Regexp, src string, repl func(groups []string) string) string {
	matches := re.FindAllStringSubmatchIndex(src, -1)
	if len(matches) == 0 {
		return src
	}

	var b strings.Builder
	b.Grow(len(src))
	last := 0
	for _, m := range matches {
		groups := make([]string, len(m)/2)
		for i := range groups {
			if m[2*i] >= 0 {
				groups[i] = src[m[2*i]:m[2*i+1]]
			}
		}
		b.WriteString(src[last:m[0]])
		b.WriteString(repl(groups))
		last = m[1]
	}
	b.WriteString(src[last:])
	return b.String()
}
