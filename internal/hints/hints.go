// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"path/filepath"
	"strings"
)

// IsInteractive detects if stdin is attached to a terminal rather than a pipe.
// mdBook always pipes the book, so a terminal means mdspec was run by hand.
var IsInteractive = func() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// ForInvalidInput returns hints for malformed preprocessor input.
// Detects a terminal on stdin and explains how mdBook invokes the preprocessor.
func ForInvalidInput() string {
	var hints []string

	if IsInteractive() {
		hints = append(hints, "stdin is a terminal; mdspec expects mdBook to pipe the book")
	}
	hints = append(hints, `register with [preprocessor.spec] command = "mdspec" in book.toml`)

	return formatHints(hints)
}

// ForInvalidVersion returns a hint when mdBook reports an unparseable version.
func ForInvalidVersion(supported string) string {
	if supported == "" {
		return ""
	}
	return format("mdspec expects a release version such as " + supported + "; development builds of mdBook are not supported")
}

// ForUnknownArgument returns a hint listing the accepted invocations.
func ForUnknownArgument() string {
	return format("usage: mdspec [flags] | mdspec supports <renderer> | mdspec preview <file.md>")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (inside an mdspec directory) to suggest
	marker := string(filepath.Separator) + "mdspec" + string(filepath.Separator)
	for _, p := range searchedPaths {
		if strings.Contains(p, marker) {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
