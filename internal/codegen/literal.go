package codegen

import "github.com/mewmew/float"

// formatFloat64 and formatFloat32 render a reconstructed FP literal as
// bit-exact C source text through mewmew/float — the same package
// github.com/llir/llvm uses internally to print floating-point constants
// in LLVM IR, so a value round-trips exactly rather than through %g's
// shortest-decimal-that-happens-to-round-trip guess.
func formatFloat64(v float64) string {
	return float.NewFromFloat64(v).String()
}

func formatFloat32(v float32) string {
	return float.NewFromFloat32(v).String()
}
