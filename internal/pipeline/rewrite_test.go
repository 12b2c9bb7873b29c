package pipeline

// Notes:
// - ExpandRuleReferences / ExpandAdmonitions: each pass is tested alone on
//   exact input/output pairs, including near misses that must stay untouched.
// - ContentRewriter.Rewrite: we test pass ordering, the combined examples and
//   idempotence on already expanded output.
// - Nested admonition openers inside a quoted body are absorbed by the outer
//   block (greedy continuation) and expand on a second pass; that case has its
//   own test and is left out of the idempotence inputs.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"strings"
	"testing"
)

// ruleDiv builds the expected fragment for a rule identifier, without the
// trailing newline.
func ruleDiv(id string) string {
	return `<div class="rule" id="` + id + `"><a class="rule-link" href="#` + id + `">[` + id + `]</a></div>`
}

// ---------------------------------------------------------------------------
// TestExpandRuleReferences - Pass 1
// ---------------------------------------------------------------------------

func TestExpandRuleReferences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "single rule line",
			input:    "r[foo]\n",
			expected: ruleDiv("foo") + "\n\n",
		},
		{
			name:     "rule at end of text without newline",
			input:    "r[foo]",
			expected: ruleDiv("foo") + "\n",
		},
		{
			name:     "dotted identifier",
			input:    "r[array.type.syntax]\n",
			expected: ruleDiv("array.type.syntax") + "\n\n",
		},
		{
			name:     "multiple rules keep order",
			input:    "r[a]\nr[b]\n",
			expected: ruleDiv("a") + "\n\n" + ruleDiv("b") + "\n\n",
		},
		{
			name:     "rule between paragraphs",
			input:    "intro\n\nr[x.y]\nThe rule text.\n",
			expected: "intro\n\n" + ruleDiv("x.y") + "\n\nThe rule text.\n",
		},
		{
			name:     "empty identifier",
			input:    "r[]\n",
			expected: `<div class="rule" id=""><a class="rule-link" href="#">[]</a></div>` + "\n\n",
		},
		{
			name:     "identifier with opening bracket",
			input:    "r[a[b]\n",
			expected: ruleDiv("a[b") + "\n\n",
		},
		{
			name:     "unicode identifier",
			input:    "r[règle.日本]\n",
			expected: ruleDiv("règle.日本") + "\n\n",
		},
		{
			name:     "leading space unchanged",
			input:    " r[foo]\n",
			expected: " r[foo]\n",
		},
		{
			name:     "trailing space unchanged",
			input:    "r[foo] \n",
			expected: "r[foo] \n",
		},
		{
			name:     "inline reference unchanged",
			input:    "see r[foo] here\n",
			expected: "see r[foo] here\n",
		},
		{
			name:     "closing bracket inside identifier unchanged",
			input:    "r[fo]o]\n",
			expected: "r[fo]o]\n",
		},
		{
			name:     "identifier spanning lines unchanged",
			input:    "r[foo\nbar]\n",
			expected: "r[foo\nbar]\n",
		},
		{
			name:     "CRLF line unchanged",
			input:    "r[foo]\r\n",
			expected: "r[foo]\r\n",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ExpandRuleReferences(tt.input, false)
			if got != tt.expected {
				t.Errorf("ExpandRuleReferences() = %q, want %q", got, tt.expected)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExpandAdmonitions - Pass 2
// ---------------------------------------------------------------------------

func TestExpandAdmonitions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "warning block",
			input:    "> [!warning]\n> line one\n> line two\n",
			expected: "<div class=\"warning\">\n\n> line one\n> line two\n\n\n</div>\n",
		},
		{
			name:     "label lowercased",
			input:    "> [!NOTE]\n> body\n",
			expected: "<div class=\"note\">\n\n> body\n\n\n</div>\n",
		},
		{
			name:     "unicode label lowercased",
			input:    "> [!ÄRGER]\n> body\n",
			expected: "<div class=\"ärger\">\n\n> body\n\n\n</div>\n",
		},
		{
			name:     "indented block keeps indentation",
			input:    "  > [!Tip]\n  > indented\n",
			expected: "<div class=\"tip\">\n\n  > indented\n\n\n</div>\n",
		},
		{
			name:     "block ends at first unquoted line",
			input:    "> [!note]\n> a\n> b\nplain\n> c\n",
			expected: "<div class=\"note\">\n\n> a\n> b\n\n\n</div>\nplain\n> c\n",
		},
		{
			name:     "second opener absorbed by greedy continuation",
			input:    "> [!note]\n> a\n> [!tip]\n> b\n",
			expected: "<div class=\"note\">\n\n> a\n> [!tip]\n> b\n\n\n</div>\n",
		},
		{
			name:     "two separated blocks",
			input:    "> [!note]\n> a\n\n> [!tip]\n> b\n",
			expected: "<div class=\"note\">\n\n> a\n\n\n</div>\n\n<div class=\"tip\">\n\n> b\n\n\n</div>\n",
		},
		{
			name:     "surrounding text preserved",
			input:    "before\n> [!caution]\n> careful\nafter\n",
			expected: "before\n<div class=\"caution\">\n\n> careful\n\n\n</div>\nafter\n",
		},
		{
			name:     "empty label",
			input:    "> [!]\n> x\n",
			expected: "<div class=\"\">\n\n> x\n\n\n</div>\n",
		},
		{
			name:     "empty quoted line with trailing space",
			input:    "> [!note]\n> \n> x\n",
			expected: "<div class=\"note\">\n\n> \n> x\n\n\n</div>\n",
		},
		{
			name:     "opener without quoted line unchanged",
			input:    "> [!tip]\n",
			expected: "> [!tip]\n",
		},
		{
			name:     "opener followed by plain text unchanged",
			input:    "> [!tip]\nnot quoted\n",
			expected: "> [!tip]\nnot quoted\n",
		},
		{
			name:     "last quoted line without newline unchanged",
			input:    "> [!tip]\n> body",
			expected: "> [!tip]\n> body",
		},
		{
			name:     "marker without space unchanged",
			input:    ">[!note]\n> x\n",
			expected: ">[!note]\n> x\n",
		},
		{
			name:     "continuation without space unchanged",
			input:    "> [!note]\n>x\n",
			expected: "> [!note]\n>x\n",
		},
		{
			name:     "plain blockquote unchanged",
			input:    "> just a quote\n> more\n",
			expected: "> just a quote\n> more\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ExpandAdmonitions(tt.input, false)
			if got != tt.expected {
				t.Errorf("ExpandAdmonitions() = %q, want %q", got, tt.expected)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestContentRewriter_Rewrite - Both passes in order
// ---------------------------------------------------------------------------

func TestContentRewriter_Rewrite(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text unchanged",
			input:    "# Title\n\nSome *markdown* with [links](x.md).\n",
			expected: "# Title\n\nSome *markdown* with [links](x.md).\n",
		},
		{
			name:  "rule followed by admonition",
			input: "r[foo]\n> [!note]\n> body\n",
			expected: ruleDiv("foo") + "\n\n" +
				"<div class=\"note\">\n\n> body\n\n\n</div>\n",
		},
		{
			name:  "rule line splits quoted run",
			input: "> [!note]\n> a\nr[x]\n> b\n",
			expected: "<div class=\"note\">\n\n> a\n\n\n</div>\n" +
				ruleDiv("x") + "\n\n> b\n",
		},
		{
			name:  "admonition between rules",
			input: "r[a]\n\n> [!WARNING]\n> careful\n\nr[b]\n",
			expected: ruleDiv("a") + "\n\n\n" +
				"<div class=\"warning\">\n\n> careful\n\n\n</div>\n\n" +
				ruleDiv("b") + "\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := &ContentRewriter{}
			got := r.Rewrite(context.Background(), tt.input)
			if got != tt.expected {
				t.Errorf("Rewrite() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestContentRewriter_Rewrite_RuleContainsIDTwice(t *testing.T) {
	t.Parallel()

	ids := []string{"a", "array.type", "x-1_2", "with space", "日本"}
	r := &ContentRewriter{}

	for _, id := range ids {
		got := r.Rewrite(context.Background(), "r["+id+"]\n")

		lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
		if len(lines) != 1 {
			t.Fatalf("Rewrite(%q) produced %d lines, want 1: %q", id, len(lines), got)
		}
		if !strings.HasPrefix(lines[0], `<div class="rule" id="`+id+`">`) {
			t.Errorf("Rewrite(%q) = %q, want rule div with id", id, lines[0])
		}
		if !strings.Contains(lines[0], ">["+id+"]</a>") {
			t.Errorf("Rewrite(%q) = %q, want visible label [%s]", id, lines[0], id)
		}
	}
}

func TestContentRewriter_Rewrite_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"plain\ntext\n",
		"r[a]\nr[b]\n",
		"> [!warning]\n> line one\n> line two\n",
		"r[foo]\n> [!note]\n> body\n",
		"intro\n\nr[x]\n\n> [!TIP]\n> a\n> b\n\nend\n",
	}
	r := &ContentRewriter{}
	ctx := context.Background()

	for _, input := range inputs {
		once := r.Rewrite(ctx, input)
		twice := r.Rewrite(ctx, once)
		if once != twice {
			t.Errorf("Rewrite not idempotent for %q:\nonce:  %q\ntwice: %q", input, once, twice)
		}
	}
}

func TestContentRewriter_Rewrite_NestedOpenerExpandsOnSecondPass(t *testing.T) {
	t.Parallel()

	input := "> [!note]\n> a\n> [!tip]\n> b\n"
	wantOnce := "<div class=\"note\">\n\n> a\n> [!tip]\n> b\n\n\n</div>\n"
	wantTwice := "<div class=\"note\">\n\n> a\n" +
		"<div class=\"tip\">\n\n> b\n\n\n</div>\n" +
		"\n\n</div>\n"

	r := &ContentRewriter{}
	ctx := context.Background()

	once := r.Rewrite(ctx, input)
	if once != wantOnce {
		t.Fatalf("first Rewrite = %q, want %q", once, wantOnce)
	}
	twice := r.Rewrite(ctx, once)
	if twice != wantTwice {
		t.Errorf("second Rewrite = %q, want %q", twice, wantTwice)
	}
}

func TestContentRewriter_Rewrite_Escape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		escape   bool
		expected string
	}{
		{
			name:     "quote in identifier verbatim by default",
			input:    "r[a\"b]\n",
			expected: ruleDiv(`a"b`) + "\n\n",
		},
		{
			name:     "quote in identifier escaped",
			input:    "r[a\"b]\n",
			escape:   true,
			expected: ruleDiv("a&#34;b") + "\n\n",
		},
		{
			name:     "angle brackets in label escaped",
			input:    "> [!<x>]\n> y\n",
			escape:   true,
			expected: "<div class=\"&lt;x&gt;\">\n\n> y\n\n\n</div>\n",
		},
		{
			name:     "quoted body never escaped",
			input:    "> [!note]\n> a < b\n",
			escape:   true,
			expected: "<div class=\"note\">\n\n> a < b\n\n\n</div>\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := &ContentRewriter{Escape: tt.escape}
			got := r.Rewrite(context.Background(), tt.input)
			if got != tt.expected {
				t.Errorf("Rewrite() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestContentRewriter_Rewrite_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	input := "r[foo]\n"
	r := &ContentRewriter{}
	if got := r.Rewrite(ctx, input); got != input {
		t.Errorf("Rewrite() with cancelled context = %q, want input unchanged", got)
	}
}
