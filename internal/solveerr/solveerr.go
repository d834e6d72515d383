// Package solveerr is the solver's error type: a typed, source-located
// error every stage (parsing, analysis, code generation, optimization,
// validation) can raise, reported uniformly at the command layer.
//
// Grounded on the teacher's internal/errors (ErrorType/SentraError split
// and the Error() rendering with an optional source line and caret),
// trimmed to §7's error taxonomy and dropping the call-stack frames (this
// pipeline has no user call stack to unwind — it is a straight-line
// compile, not an interpreter).
package solveerr

import (
	"fmt"
	"strings"
)

// Type is one of §7's error-taxonomy kinds.
type Type string

const (
	ParseError                   Type = "ParseError"
	UnsupportedExprError         Type = "UnsupportedExprError"
	UnsupportedRoundingModeError Type = "UnsupportedRoundingModeError"
	UnsupportedPrecisionError    Type = "UnsupportedPrecisionError"
	EngineError                  Type = "EngineError"
	OptimizerError               Type = "OptimizerError"
	ConfigError                  Type = "ConfigError"
)

// Location pins an error to an input file and line, when known.
type Location struct {
	File string
	Line int
}

// SolveError is this solver's single error type, raised by every pipeline
// stage and caught at the command layer (mirroring the teacher's
// panic/recover boundary between its parser and cmd/sentra/main.go).
type SolveError struct {
	Type    Type
	Message string
	Loc     Location
	Source  string // the offending source line, when available
}

func (e *SolveError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s", e.Type, e.Message)
	if e.Loc.File != "" {
		fmt.Fprintf(&sb, " (%s:%d)", e.Loc.File, e.Loc.Line)
	}
	if e.Source != "" {
		fmt.Fprintf(&sb, "\n  %d | %s", e.Loc.Line, e.Source)
	}
	return sb.String()
}

// WithSource attaches the offending source line, chainable at the call site.
func (e *SolveError) WithSource(line string) *SolveError {
	e.Source = line
	return e
}

func New(t Type, message string, file string, line int) *SolveError {
	return &SolveError{Type: t, Message: message, Loc: Location{File: file, Line: line}}
}

// NewParseError reports the SMT toolkit (here, internal/smtlib) rejecting
// the input.
func NewParseError(message, file string, line int) *SolveError {
	return New(ParseError, message, file, line)
}

// NewUnsupportedExprError reports a node whose operator is not in the
// translation table. No stage raises it: the analyzer latches
// Summary.HasUnsupportedExpr, and the IR and source generators set their
// own HasUnsupportedExpr flag and lower the node to 0 without aborting.
func NewUnsupportedExprError(message string) *SolveError {
	return New(UnsupportedExprError, message, "", 0)
}

func NewUnsupportedRoundingModeError(message string) *SolveError {
	return New(UnsupportedRoundingModeError, message, "", 0)
}

func NewUnsupportedPrecisionError(message string) *SolveError {
	return New(UnsupportedPrecisionError, message, "", 0)
}

// NewEngineError reports JIT engine construction failure (§7): the
// validator/irgen's Engine could not be built or invoked.
func NewEngineError(message string) *SolveError {
	return New(EngineError, message, "", 0)
}

// NewOptimizerError reports an NLopt negative status code, reported to
// the driver as an "error" verdict (§7).
func NewOptimizerError(message string) *SolveError {
	return New(OptimizerError, message, "", 0)
}

func NewConfigError(message string) *SolveError {
	return New(ConfigError, message, "", 0)
}
