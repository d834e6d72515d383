// Package solvelog is the solver's logging surface: a thin wrapper
// around the standard library's log.Logger, so internal/driver can
// inject a stderr logger by default and a discarding one in tests.
//
// Grounded on the teacher's own logging, which is the stdlib "log"
// package called directly (cmd/sentra/main.go: log.Fatalf/log.Printf
// at the command layer, no wrapper) — the one difference here is that
// internal/driver is a library package other callers construct
// directly (not just a command's main), so it takes an injected
// *log.Logger instead of reaching for the package-level default the
// teacher's single-binary command line gets away with.
package solvelog

import (
	"io"
	"log"
	"os"
)

// New builds a *log.Logger writing to stderr with no prefix and the
// stdlib default date/time stamp (log.LstdFlags) for progress notices —
// the same output the teacher's log.Printf/log.Fatalf calls get from the
// stdlib default logger.
func New() *log.Logger {
	return log.New(os.Stderr, "", log.LstdFlags)
}

// Discard builds a logger that drops everything, for tests that don't
// want solve-loop diagnostics cluttering output.
func Discard() *log.Logger {
	return log.New(io.Discard, "", 0)
}
