// Package reporting emits the solve loop's two output shapes from §6: a
// CSV verdict line, or a single SMT-LIBv2 token (sat/unsat/unknown).
//
// Grounded on the teacher's own internal/reporting — its encoding/csv
// writer-to-io.Writer idiom and "one exported Result type, one function
// per output format" shape survive; everything else (JSON/XML/HTML
// reports, compliance mappings, CVSS scoring) is dropped, since this
// pipeline has exactly two output formats and no persisted report store.
// The mutex-guarded module struct is dropped too — §5 is explicit that
// the whole solve is single-threaded and synchronous, so there is no
// concurrent writer to guard against.
package reporting

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
)

// Verdict is one of §4.9's three satisfiability classifications.
type Verdict string

const (
	Sat     Verdict = "sat"
	Unsat   Verdict = "unsat"
	ErrorV  Verdict = "error"
	Unknown Verdict = "unknown" // SMT-LIBv2 mode's name for Error
)

// Result is one formula's solve outcome, the fields §6's CSV line names.
type Result struct {
	Name       string
	Verdict    Verdict
	ElapsedSec float64
	Min        float64 // math.Inf(1) prints as "INF"
	Status     int     // the optimizer's raw status code
	Validated  bool    // true if -c requested validation (§4.9's [,valid|invalid])
	Valid      bool    // meaningful only when Validated
}

// WriteCSV writes one §6 CSV line: "name,verdict,elapsed_sec,min|INF,
// status[,valid|invalid]", elapsed rounded to 4 significant digits and
// min printed at full double precision.
func WriteCSV(w io.Writer, r Result) error {
	cw := csv.NewWriter(w)
	record := []string{
		r.Name,
		string(r.Verdict),
		formatElapsed(r.ElapsedSec),
		formatMin(r.Min),
		strconv.Itoa(r.Status),
	}
	if r.Validated {
		if r.Valid {
			record = append(record, "valid")
		} else {
			record = append(record, "invalid")
		}
	}
	if err := cw.Write(record); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// WriteSMTLIB writes the one-line SMT-LIBv2 verdict (-smtlib-output):
// sat, unsat, or unknown — §4.9's "error" verdict prints as "unknown"
// here, since SMT-LIBv2's check-sat response has no error token of its
// own.
func WriteSMTLIB(w io.Writer, r Result) error {
	token := string(r.Verdict)
	if r.Verdict == ErrorV {
		token = string(Unknown)
	}
	_, err := fmt.Fprintln(w, token)
	return err
}

// formatMin renders a minimum value at full double precision, or the
// literal "INF" for a non-finite result (§6).
func formatMin(min float64) string {
	if math.IsInf(min, 0) || math.IsNaN(min) {
		return "INF"
	}
	return strconv.FormatFloat(min, 'g', -1, 64)
}

// formatElapsed rounds to 4 significant digits, per §6.
func formatElapsed(sec float64) string {
	return strconv.FormatFloat(roundSignificant(sec, 4), 'g', 4, 64)
}

// roundSignificant rounds v to n significant decimal digits.
func roundSignificant(v float64, n int) float64 {
	if v == 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}
	mag := math.Ceil(math.Log10(math.Abs(v)))
	factor := math.Pow(10, float64(n)-mag)
	return math.Round(v*factor) / factor
}
