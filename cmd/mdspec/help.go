package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdspec [flags] [command] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Without a command, reads an mdBook book from stdin and writes the")
	fmt.Fprintln(w, "rewritten book to stdout. Register it in book.toml:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  [preprocessor.spec]")
	fmt.Fprintln(w, "  command = \"mdspec\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  supports   Report renderer support (always yes)")
	fmt.Fprintln(w, "  preview    Render one markdown file to standalone HTML")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel chapter workers (0 = auto)")
	fmt.Fprintln(w, "      --escape              HTML-escape rule ids and admonition labels")
	fmt.Fprintln(w, "      --log-level <s>       Log level: debug, info, warn (warning), error")
	fmt.Fprintln(w, "      --log-format <s>      Log format: text, json")
	fmt.Fprintln(w, "  -v, --verbose             Log debug diagnostics")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdspec help <command>' for details on a specific command.")
}

// printPreviewUsage prints usage for the preview command.
func printPreviewUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdspec preview <file.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rewrite one markdown file and render it as standalone HTML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default: input with .html, \"-\" = stdout)")
	fmt.Fprintln(w, "      --title <s>           Page title (default: first H1, then file name)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --style <name>        Stylesheet name (default: default)")
	fmt.Fprintln(w, "      --style-dir <path>    Directory of custom {name}.css stylesheets")
	fmt.Fprintln(w, "      --highlight <name>    Code highlight style (default: github)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rewriting:")
	fmt.Fprintln(w, "      --escape              HTML-escape rule ids and admonition labels")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "preview":
		printPreviewUsage(env.Stdout)
	case "supports":
		fmt.Fprintln(env.Stdout, "Usage: mdspec supports <renderer>")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Exit 0: the rewritten chapters suit every renderer.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdspec version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information and the targeted mdBook version.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdspec help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
