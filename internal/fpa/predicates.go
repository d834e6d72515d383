// Package fpa implements the floating-point utility layer from §4.1 of the
// specification: AST predicates, the IEEE-754 bit reassembly helpers, and
// the scaled ULP-distance functions the rest of the solver builds on.
//
// Grounded on original_source/src/Utils/FPAUtils.{h,cpp} (the z3::expr
// version this solver's AST type stands in for) and the teacher's own habit
// of small, noexcept-style leaf predicates (internal/parser's per-node-type
// Accept methods in the teacher repo play the analogous "one function per
// node shape" role).
package fpa

import "gofpsat/internal/ast"

// IsFloat32 / IsFloat64 test an (ebits, sbits) pair against the two
// precisions this solver supports.
func IsFloat32(ebits, sbits int) bool { return ebits == 8 && sbits == 24 }
func IsFloat64(ebits, sbits int) bool { return ebits == 11 && sbits == 53 }

// IsFPVar reports whether e is a nullary uninterpreted floating-point
// symbol, i.e. a solver variable.
func IsFPVar(e *ast.Node) bool {
	return e.NumArgs() == 0 && e.Kind == ast.UNINTERPRETED && e.Sort.Kind == ast.SortFP
}

// IsFloat32VarDecl / IsFloat64VarDecl inspect the declared sort text of a
// variable the way the original does, by substring search on the printed
// sort rather than a typed accessor — z3's C API has no direct way to pull
// (ebits, sbits) back out of a declaration either, hence the string match.
func IsFloat32VarDecl(e *ast.Node) bool {
	return containsDigits(e.Sort.DeclString, "8", "24")
}

func IsFloat64VarDecl(e *ast.Node) bool {
	return containsDigits(e.Sort.DeclString, "11", "53")
}

func containsDigits(s, ebits, sbits string) bool {
	return indexOf(s, ebits) >= 0 && indexOf(s, sbits) >= 0
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

// IsBoolOp reports whether kind is one of the Boolean-valued operators
// spec.md §4.1 enumerates — the set that carries a meaningful polarity bit
// during translation.
func IsBoolOp(kind ast.Kind) bool {
	switch kind {
	case ast.TRUE, ast.FALSE, ast.EQ, ast.FPA_EQ, ast.NOT, ast.AND, ast.OR,
		ast.FPA_LT, ast.FPA_GT, ast.FPA_LE, ast.FPA_GE,
		ast.FPA_IS_NAN, ast.FPA_IS_INF, ast.FPA_IS_ZERO,
		ast.FPA_IS_NORMAL, ast.FPA_IS_SUBNORMAL,
		ast.FPA_IS_POSITIVE, ast.FPA_IS_NEGATIVE:
		return true
	default:
		return false
	}
}

// IsNonLinearFP reports whether e is a floating-point-sorted application of
// one of the non-linear FP operators (the ones a global, not merely local,
// optimizer is needed for).
func IsNonLinearFP(e *ast.Node) bool {
	if e.Sort.Kind != ast.SortFP {
		return false
	}
	switch e.Kind {
	case ast.FPA_MUL, ast.FPA_DIV, ast.FPA_REM, ast.FPA_ABS,
		ast.FPA_MIN, ast.FPA_MAX, ast.FPA_FMA, ast.FPA_SQRT,
		ast.FPA_ROUND_TO_INTEGRAL:
		return true
	default:
		return false
	}
}
