package main

import "errors"

// Sentinel errors for CLI operations.
var (
	ErrUnknownArgument = errors.New("unknown argument")
	ErrInvalidFlag     = errors.New("invalid flag")
	ErrNoInput         = errors.New("no input specified")
	ErrNotMarkdown     = errors.New("not a markdown file")
	ErrReadMarkdown    = errors.New("failed to read markdown file")
	ErrWriteHTML       = errors.New("failed to write HTML file")
)
