package fpa

import "math"

// scale54 is 2^54, the ULP-distance scale factor from §4.1: a single ULP at
// magnitude 1 maps to roughly 5.6e-17 under this scaling.
const scale54 = float64(1 << 54)

const signBit64 = uint64(1) << 63
const magnitudeMask64 = ^signBit64

// Dis64 is fp64_dis: a non-negative, symmetric "distance in representation
// space" between two float64s. Returns 0 whenever a == b or either input is
// NaN (NaN never participates meaningfully in a magnitude comparison).
func Dis64(a, b float64) float64 {
	if a == b || math.IsNaN(a) || math.IsNaN(b) {
		return 0
	}
	au := math.Float64bits(a)
	bu := math.Float64bits(b)
	if (au & signBit64) != (bu & signBit64) {
		return float64((au&magnitudeMask64)+(bu&magnitudeMask64)) / scale54
	}
	au &= magnitudeMask64
	bu &= magnitudeMask64
	if au < bu {
		return float64(bu-au) / scale54
	}
	return float64(au-bu) / scale54
}

// EqDis64 is fp64_eq_dis: identical to Dis64, kept as a distinct exported
// name because it is bound under its own symbol into the JIT module's
// external helper table (§4.6).
func EqDis64(a, b float64) float64 { return Dis64(a, b) }

// NeqDis64 is fp64_neq_dis: the "distance to being unequal" companion used
// by EQ/FPA_EQ's negative-polarity form.
func NeqDis64(a, b float64) float64 {
	if a != b {
		return 0
	}
	return 1
}

// IsNaN64 is fp64_isnan: flag toggles polarity — flag == 0 is the positive
// isnan(a) distance (0 when a is NaN, 1 otherwise), flag != 0 is its
// negation (0 when a is not NaN, 1 when it is).
func IsNaN64(a, flag float64) float64 {
	isNaN := math.IsNaN(a)
	if flag != 0 {
		if isNaN {
			return 1
		}
		return 0
	}
	if isNaN {
		return 0
	}
	return 1
}
