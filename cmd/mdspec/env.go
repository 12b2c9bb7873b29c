package main

import (
	"io"
	"os"
)

// Environment holds injectable dependencies for testability.
// Stdout carries the book JSON in preprocess mode; diagnostics go to Stderr.
type Environment struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultEnv returns the production environment bound to the process streams.
func DefaultEnv() *Environment {
	return &Environment{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}
