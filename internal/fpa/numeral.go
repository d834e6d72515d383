package fpa

import (
	"math"
	"strconv"

	"gofpsat/internal/ast"
)

// baseOf mirrors getBaseofNumStr from the original: a bit-vector literal's
// second character names its base ('b' binary, 'x' hex, 'o' octal); the
// default (plain decimal) is base 10.
func baseOf(text string) int {
	if len(text) < 2 {
		return 10
	}
	switch text[1] {
	case 'b':
		return 2
	case 'x':
		return 16
	case 'o':
		return 8
	default:
		return 10
	}
}

func parseBitvec(text string) uint64 {
	base := baseOf(text)
	start := 0
	if base != 10 {
		start = 2
	}
	v, _ := strconv.ParseUint(text[start:], base, 64)
	return v
}

// ToFloat64 reconstructs the double a three-argument FP literal (sign,
// exponent, significand bit-vectors) denotes, or returns the IEEE special
// value directly for the five symbolic nodes. The hidden mantissa bit is
// never represented in the significand bit-vector (SMT-LIB convention), so
// it is not added back in.
func ToFloat64(e *ast.Node) float64 {
	switch e.Kind {
	case ast.FPA_PLUS_INF:
		return math.Inf(1)
	case ast.FPA_MINUS_INF:
		return math.Inf(-1)
	case ast.FPA_NAN:
		return math.NaN()
	case ast.FPA_PLUS_ZERO:
		return 0
	case ast.FPA_MINUS_ZERO:
		return math.Copysign(0, -1)
	}
	sign := parseBitvec(e.Sign)
	exponent := parseBitvec(e.Exp)
	significand := parseBitvec(e.Sig)
	bits := exponent << 52
	bits |= significand
	if sign != 0 {
		bits |= signBit64
	}
	return math.Float64frombits(bits)
}

// ToFloat32 is ToFloat64's FP32 counterpart.
func ToFloat32(e *ast.Node) float32 {
	switch e.Kind {
	case ast.FPA_PLUS_INF:
		return float32(math.Inf(1))
	case ast.FPA_MINUS_INF:
		return float32(math.Inf(-1))
	case ast.FPA_NAN:
		return float32(math.NaN())
	case ast.FPA_PLUS_ZERO:
		return 0
	case ast.FPA_MINUS_ZERO:
		return float32(math.Copysign(0, -1))
	}
	sign := uint32(parseBitvec(e.Sign))
	exponent := uint32(parseBitvec(e.Exp))
	significand := uint32(parseBitvec(e.Sig))
	bits := exponent << 23
	bits |= significand
	if sign != 0 {
		bits |= 0x80000000
	}
	return math.Float32frombits(bits)
}

// Float64ToSignExpSig decomposes a float64 into its sign/exponent/
// significand bit-vector literal text in the SMT-LIB decimal-bitvector
// style, the inverse of ToFloat64 — used by the validator (§4.8) to build
// grounded FP numerals from an optimizer witness.
func Float64ToSignExpSig(v float64) (sign, exp, sig string) {
	bits := math.Float64bits(v)
	s := (bits >> 63) & 1
	e := (bits >> 52) & 0x7FF
	m := bits & 0xFFFFFFFFFFFFF
	return strconv.FormatUint(s, 10), strconv.FormatUint(e, 10), strconv.FormatUint(m, 10)
}

// Float32ToSignExpSig is Float64ToSignExpSig's FP32 counterpart.
func Float32ToSignExpSig(v float32) (sign, exp, sig string) {
	bits := math.Float32bits(v)
	s := (bits >> 31) & 1
	e := (bits >> 23) & 0xFF
	m := bits & 0x7FFFFF
	return strconv.FormatUint(uint64(s), 10), strconv.FormatUint(uint64(e), 10), strconv.FormatUint(uint64(m), 10)
}
