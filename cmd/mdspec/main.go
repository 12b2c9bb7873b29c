package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	mdspec "github.com/alnah/go-mdspec"
	"github.com/alnah/go-mdspec/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches the command named by the first positional argument and
// returns the process exit code. With no command the book is preprocessed.
// Flags may appear before the command: mdBook appends "supports <renderer>"
// to the configured command line, flags included.
func runMain(args []string, env *Environment) int {
	flags, positional, err := parseFlags(args[1:])
	if errors.Is(err, flag.ErrHelp) {
		printUsage(env.Stdout)
		return ExitSuccess
	}
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrInvalidFlag, err)
		reportError(env, err, hints.ForUnknownArgument())
		return exitCodeFor(err)
	}

	command := ""
	if len(positional) > 0 {
		command, positional = positional[0], positional[1:]
	}

	switch command {
	case "supports":
		// Every renderer is supported; the book is never read.
		return ExitSuccess
	case "version":
		fmt.Fprintf(env.Stdout, "mdspec %s (mdBook %s)\n", Version, mdspec.SupportedMdbookVersion)
		return ExitSuccess
	case "help":
		runHelp(positional, env)
		return ExitSuccess
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	switch command {
	case "":
		setMaxProcs(flags, env)
		err = runPreprocess(ctx, flags, env)
	case "preview":
		err = runPreview(ctx, positional, flags, env)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownArgument, command)
		reportError(env, err, hints.ForUnknownArgument())
		return exitCodeFor(err)
	}

	if err != nil {
		reportError(env, err, "")
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// setMaxProcs matches GOMAXPROCS to the container CPU quota, reporting
// through stderr in verbose mode only.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply and the program continues safely.
func setMaxProcs(flags *cliFlags, env *Environment) {
	if flags.common.verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(env.Stderr, format+"\n", args...)
		}))
		return
	}
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
}

// reportError prints err and an optional hint to stderr.
func reportError(env *Environment, err error, hint string) {
	fmt.Fprintf(env.Stderr, "mdspec: %v%s\n", err, hint)
}
