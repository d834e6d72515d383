package translate

import "gofpsat/internal/ast"

// hasLeadingRoundingMode reports whether kind's arg(0) is a rounding-mode
// argument rather than an operand — true for the four rounded arithmetic
// ops and FPA_TO_FP, per spec.md Design Notes "Rounding mode as first
// argument". FPA_REM, FPA_EQ, and the comparisons carry no rounding mode
// and index from arg(0).
func hasLeadingRoundingMode(kind ast.Kind) bool {
	switch kind {
	case ast.FPA_ADD, ast.FPA_SUB, ast.FPA_MUL, ast.FPA_DIV, ast.FPA_TO_FP:
		return true
	default:
		return false
	}
}

// Operands returns e's two value-bearing arguments, skipping a leading
// rounding-mode argument where one is present.
func Operands(e *ast.Node) (a, b *ast.Node) {
	if hasLeadingRoundingMode(e.Kind) {
		if len(e.Args) < 3 {
			// FPA_TO_FP(rm, x): single operand, b left nil.
			return e.Args[len(e.Args)-1], nil
		}
		return e.Args[1], e.Args[2]
	}
	if len(e.Args) == 1 {
		return e.Args[0], nil
	}
	return e.Args[0], e.Args[1]
}

// RoundingModeArg returns e's leading rounding-mode argument, or nil if e's
// operator carries none.
func RoundingModeArg(e *ast.Node) *ast.Node {
	if !hasLeadingRoundingMode(e.Kind) || len(e.Args) == 0 {
		return nil
	}
	return e.Args[0]
}

// IsRNE reports whether rm (a rounding-mode node, possibly nil) is
// round-to-nearest-ties-to-even. A nil rm (operator carries none) counts
// as RNE since there is nothing to object to.
func IsRNE(rm *ast.Node) bool {
	if rm == nil {
		return true
	}
	return rm.Kind == ast.FPA_RM_NEAREST_TIES_TO_EVEN
}
