package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	verbose bool
}

// logFlags holds diagnostic logging flags.
type logFlags struct {
	level  string
	format string
}

// previewFlags holds flags for the preview command.
type previewFlags struct {
	output    string
	title     string
	style     string
	styleDir  string
	highlight string
}

// cliFlags holds all flags. Commands ignore the ones they do not use, so a
// flag in the configured mdBook command line never breaks "supports".
type cliFlags struct {
	common  commonFlags
	workers int
	escape  bool
	log     logFlags
	preview previewFlags

	// changed records flags given explicitly, so zero values can override.
	changed map[string]bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log debug diagnostics")
}

// addLogFlags adds logging flags to a FlagSet.
func addLogFlags(fs *flag.FlagSet, f *logFlags) {
	fs.StringVar(&f.level, "log-level", "", "log level: debug, info, warn (warning), error")
	fs.StringVar(&f.format, "log-format", "", "log format: text, json")
}

// addPreviewFlags adds preview flags to a FlagSet.
func addPreviewFlags(fs *flag.FlagSet, f *previewFlags) {
	fs.StringVarP(&f.output, "output", "o", "", "output HTML file (\"-\" = stdout)")
	fs.StringVar(&f.title, "title", "", "page title (\"\" = auto from H1)")
	fs.StringVar(&f.style, "style", "", "stylesheet name")
	fs.StringVar(&f.styleDir, "style-dir", "", "directory of custom {name}.css stylesheets")
	fs.StringVar(&f.highlight, "highlight", "", "code highlight style (chroma name)")
}

// parseFlags parses flags and returns positional args.
// Usage is printed by the caller, so the FlagSet writes nothing itself.
func parseFlags(args []string) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("mdspec", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	f := &cliFlags{changed: make(map[string]bool)}

	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel chapter workers (0 = auto)")
	fs.BoolVar(&f.escape, "escape", false, "HTML-escape rule ids and admonition labels")

	addCommonFlags(fs, &f.common)
	addLogFlags(fs, &f.log)
	addPreviewFlags(fs, &f.preview)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	fs.Visit(func(fl *flag.Flag) { f.changed[fl.Name] = true })

	return f, fs.Args(), nil
}
