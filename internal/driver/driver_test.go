package driver

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gofpsat/internal/ast"
	"gofpsat/internal/config"
	"gofpsat/internal/irgen"
	"gofpsat/internal/optimizer"
	"gofpsat/internal/solvelog"
)

const satFormula = `
(declare-fun x () (_ FloatingPoint 8 24))
(assert (fp.eq x x))
(check-sat)
`

const unsatFormula = `
(declare-fun x () (_ FloatingPoint 8 24))
(assert (fp.isNaN x))
(assert (fp.isZero x))
(check-sat)
`

func writeFormula(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func baseConfig(path string) config.Config {
	alg, _ := optimizer.AlgorithmFromName("crs2")
	return config.Config{
		InputPath: path,
		Mode:      config.ModeSolve,
		Algorithm: alg,
		Format:    config.FormatPlain,
		Opt:       optimizer.NewOptimizerWithAlgorithm(alg).Config,
	}
}

func TestRunSolveReportsSatVerdict(t *testing.T) {
	dir := t.TempDir()
	path := writeFormula(t, dir, "always_true.smt2", satFormula)

	var out bytes.Buffer
	d := New()
	code := d.Run(baseConfig(path), &out)

	if code != 0 {
		t.Fatalf("Run code = %d, want 0; output: %s", code, out.String())
	}
	line := strings.TrimSpace(out.String())
	fields := strings.Split(line, ",")
	if len(fields) < 3 || fields[0] != "always_true" || fields[1] != "sat" {
		t.Errorf("output = %q, want a sat verdict for always_true", line)
	}
}

func TestRunSolveReportsUnsatVerdict(t *testing.T) {
	dir := t.TempDir()
	path := writeFormula(t, dir, "contradiction.smt2", unsatFormula)

	var out bytes.Buffer
	d := New()
	code := d.Run(baseConfig(path), &out)

	if code != 0 {
		t.Fatalf("Run code = %d, want 0; output: %s", code, out.String())
	}
	line := strings.TrimSpace(out.String())
	fields := strings.Split(line, ",")
	if len(fields) < 3 || fields[1] != "unsat" {
		t.Errorf("output = %q, want an unsat verdict for contradiction", line)
	}
}

func TestRunSMTLIBOutputPrintsSatToken(t *testing.T) {
	dir := t.TempDir()
	path := writeFormula(t, dir, "always_true.smt2", satFormula)

	cfg := baseConfig(path)
	cfg.SMTLIBOutput = true

	var out bytes.Buffer
	code := New().Run(cfg, &out)

	if code != 0 {
		t.Fatalf("Run code = %d, want 0", code)
	}
	if got := strings.TrimSpace(out.String()); got != "sat" {
		t.Errorf("output = %q, want %q", got, "sat")
	}
}

func TestRunRecoversParseErrorAndExitsNonzero(t *testing.T) {
	dir := t.TempDir()
	path := writeFormula(t, dir, "broken.smt2", "(assert (fp.isNaN x)")

	var out bytes.Buffer
	code := New().Run(baseConfig(path), &out)

	if code != 1 {
		t.Errorf("Run code = %d, want 1 on a parse error", code)
	}
}

func TestRunMissingFileExitsNonzero(t *testing.T) {
	var out bytes.Buffer
	code := New().Run(baseConfig("/no/such/file.smt2"), &out)
	if code != 1 {
		t.Errorf("Run code = %d, want 1 on a missing file", code)
	}
}

// failingEngine exercises solveParsed's engine-error branch, which the
// default TreeEngine never takes since it always returns a nil error.
type failingEngine struct{}

func (failingEngine) Compile(g *irgen.Generator, root *ast.Node) (irgen.ObjectiveFunc, error) {
	return nil, os.ErrInvalid
}

func TestRunEngineErrorExitsOneUnderSMTLIBOutput(t *testing.T) {
	dir := t.TempDir()
	path := writeFormula(t, dir, "always_true.smt2", satFormula)

	cfg := baseConfig(path)
	cfg.SMTLIBOutput = true

	d := New()
	d.Engine = failingEngine{}

	var out bytes.Buffer
	code := d.Run(cfg, &out)

	if code != 1 {
		t.Errorf("Run code = %d, want 1 when the engine fails under -smtlib-output", code)
	}
	if got := strings.TrimSpace(out.String()); got != "unknown" {
		t.Errorf("output = %q, want %q", got, "unknown")
	}
}

func TestRunEngineErrorExitsOneUnderCSVOutput(t *testing.T) {
	dir := t.TempDir()
	path := writeFormula(t, dir, "always_true.smt2", satFormula)

	d := New()
	d.Engine = failingEngine{}

	var out bytes.Buffer
	code := d.Run(baseConfig(path), &out)

	if code != 1 {
		t.Errorf("Run code = %d, want 1 when the engine fails under CSV output", code)
	}
	if out.Len() != 0 {
		t.Errorf("CSV output = %q, want no reporting.Result line on an engine-compile failure", out.String())
	}
}

func TestRunAnalyzeModePrintsSummary(t *testing.T) {
	dir := t.TempDir()
	path := writeFormula(t, dir, "always_true.smt2", satFormula)

	cfg := baseConfig(path)
	cfg.Mode = config.ModeAnalyze

	var out bytes.Buffer
	code := New().Run(cfg, &out)

	if code != 0 {
		t.Fatalf("Run code = %d, want 0", code)
	}
	if out.Len() == 0 {
		t.Error("expected a non-empty analysis summary")
	}
}

func TestRunCodegenModeWritesManifestTriple(t *testing.T) {
	dir := t.TempDir()
	path := writeFormula(t, dir, "always_true.smt2", satFormula)

	cfg := baseConfig(path)
	cfg.Mode = config.ModeCodegen

	var out bytes.Buffer
	code := New().Run(cfg, &out)

	if code != 0 {
		t.Fatalf("Run code = %d, want 0; output: %s", code, out.String())
	}
	for _, name := range []string{"gofuncs.h", "gofuncs.c", "gofuncs.api"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s to exist after -mode cg: %v", name, err)
		}
	}
}

func TestRunReplaySolvesEachManifestEntry(t *testing.T) {
	dir := t.TempDir()
	writeFormula(t, dir, "always_true.smt2", satFormula)
	writeFormula(t, dir, "contradiction.smt2", unsatFormula)
	manifest := writeFormula(t, dir, "gofuncs.api", "always_true,0\ncontradiction,0\n")

	alg, _ := optimizer.AlgorithmFromName("crs2")
	cfg := config.Config{ReplayPath: manifest, Format: config.FormatPlain, Algorithm: alg, Opt: optimizer.NewOptimizerWithAlgorithm(alg).Config}

	var out bytes.Buffer
	code := New().Run(cfg, &out)

	if code != 0 {
		t.Fatalf("Run code = %d, want 0; output: %s", code, out.String())
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 result lines from replay, got %d: %q", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[0], "always_true,sat") {
		t.Errorf("line 1 = %q, want a sat verdict for always_true", lines[0])
	}
	if !strings.HasPrefix(lines[1], "contradiction,unsat") {
		t.Errorf("line 2 = %q, want an unsat verdict for contradiction", lines[1])
	}
}

func TestRunReplayMissingSidecarReportsNonzeroButContinues(t *testing.T) {
	dir := t.TempDir()
	writeFormula(t, dir, "always_true.smt2", satFormula)
	manifest := writeFormula(t, dir, "gofuncs.api", "missing,0\nalways_true,0\n")

	alg, _ := optimizer.AlgorithmFromName("crs2")
	cfg := config.Config{ReplayPath: manifest, Format: config.FormatPlain, Algorithm: alg, Opt: optimizer.NewOptimizerWithAlgorithm(alg).Config}

	d := New()
	d.Logger = solvelog.Discard()
	var out bytes.Buffer
	code := d.Run(cfg, &out)

	if code != 1 {
		t.Errorf("Run code = %d, want 1 when one replay entry's sidecar is missing", code)
	}
	if !strings.Contains(out.String(), "always_true,sat") {
		t.Errorf("expected the remaining manifest entry to still be solved, got %q", out.String())
	}
}
