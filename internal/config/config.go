// Package config resolves the command line's flag values into the
// typed settings every other package expects — §6's Mode/Algorithm/
// Format vocabulary, plus the path and boolean switches that drive
// internal/driver's mode dispatch.
//
// Grounded on the one real command-line entry point in the retrieval
// pack, janpfeifer-go-highway/cmd/hwygen/main.go: flag.Parse() against
// package-level flag.String/flag.Bool vars, a required-flag check that
// prints to stderr and exits 1, no cobra/pflag (see DESIGN.md's note on
// why cobra was dropped from go.mod).
package config

import (
	"flag"
	"fmt"
	"os"

	"gofpsat/internal/optimizer"
)

// Mode is §6's "-mode" value: which of the three top-level operations
// internal/driver runs.
type Mode string

const (
	ModeSolve   Mode = "go" // native solving via the JIT engine (default)
	ModeAnalyze Mode = "fa" // formula analysis summary
	ModeCodegen Mode = "cg" // source-code generation
)

func ModeFromString(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeSolve, ModeAnalyze, ModeCodegen:
		return Mode(s), true
	default:
		return "", false
	}
}

// Format is §6's "-fmt" value, meaningful only in cg mode: the output
// shape of the generated manifest file (gofuncs.api).
type Format string

const (
	FormatPlain Format = "plain"
	FormatCpp   Format = "cpp"
)

func FormatFromString(s string) (Format, bool) {
	switch Format(s) {
	case FormatPlain, FormatCpp:
		return Format(s), true
	default:
		return "", false
	}
}

// Config is the fully resolved set of CLI inputs §6 names, ready for
// internal/driver to consume.
type Config struct {
	InputPath     string
	Mode          Mode
	Algorithm     int // an nlopt.GN_*/G_* constant, via optimizer.AlgorithmFromName
	AlgorithmName string
	Format        Format
	Validate      bool   // -c: validate the model after a sat verdict
	SMTLIBOutput  bool   // -smtlib-output: emit sat/unsat/unknown instead of CSV
	ReplayPath    string // -replay: re-solve every entry in a codegen manifest
	Opt           optimizer.OptConfig
}

// Parse reads args (normally os.Args[1:]) and resolves §6's flag set
// into a Config, or returns an error describing what flag.Parse or a
// value check rejected. The caller is expected to print the error and
// exit nonzero, matching hwygen's own pattern.
func Parse(args []string) (Config, error) {
	fs := flag.NewFlagSet("gofpsat", flag.ContinueOnError)

	inputPath := fs.String("f", "", "input SMT-LIBv2 formula file (required)")
	modeStr := fs.String("mode", string(ModeSolve), "go|fa|cg")
	algStr := fs.String("alg", "crs2", "direct|crs2|isres|mlsl")
	fmtStr := fs.String("fmt", string(FormatPlain), "plain|cpp (cg mode only)")
	validate := fs.Bool("c", false, "validate the model after a sat verdict")
	smtlibOutput := fs.Bool("smtlib-output", false, "emit sat/unsat/unknown instead of CSV")
	replayPath := fs.String("replay", "", "re-solve every entry in a codegen manifest")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *inputPath == "" && *replayPath == "" {
		return Config{}, fmt.Errorf("-f is required")
	}

	mode, ok := ModeFromString(*modeStr)
	if !ok {
		return Config{}, fmt.Errorf("unknown -mode %q", *modeStr)
	}

	format, ok := FormatFromString(*fmtStr)
	if !ok {
		return Config{}, fmt.Errorf("unknown -fmt %q", *fmtStr)
	}

	alg, ok := optimizer.AlgorithmFromName(*algStr)
	if !ok {
		return Config{}, fmt.Errorf("unknown -alg %q", *algStr)
	}

	// NewOptimizerWithAlgorithm resolves the same per-algorithm tuning
	// internal/optimizer.Optimize would apply (the MLSL family's own eval
	// budget and tighter tolerance); capturing it here keeps
	// Config the single source of truth a future flag could override,
	// rather than the driver recomputing it independently.
	opt := optimizer.NewOptimizerWithAlgorithm(alg).Config

	return Config{
		InputPath:     *inputPath,
		Mode:          mode,
		Algorithm:     alg,
		AlgorithmName: *algStr,
		Format:        format,
		Validate:      *validate,
		SMTLIBOutput:  *smtlibOutput,
		ReplayPath:    *replayPath,
		Opt:           opt,
	}, nil
}

// Usage prints the flag set's usage text to stderr, mirroring hwygen's
// flag.Usage() call on a missing required flag.
func Usage() {
	fmt.Fprintln(os.Stderr, "usage: gofpsat -f <path> [-mode go|fa|cg] [-alg direct|crs2|isres|mlsl] [-fmt plain|cpp] [-c] [-smtlib-output] [-replay <manifest>]")
	flag.PrintDefaults()
}
