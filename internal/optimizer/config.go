// Package optimizer implements the optimizer driver from §4.7: a thin
// wrapper over NLopt's derivative-free global/local algorithms, driving
// the objective function irgen builds toward its zero stop-value.
//
// Grounded on original_source/src/Optimizer/NLoptOptimizer.{h,cpp}, built
// on github.com/go-nlopt/nlopt — the real cgo binding to NLopt (its API
// surface grounded on the vendored copy at
// _examples/other_examples/..._go-nlopt-nlopt-nlopt.go.go).
package optimizer

import "github.com/go-nlopt/nlopt"

// OptConfig collects the tunables the original hard-codes into
// NLoptOptimizer's constructor as named fields instead of scattering them
// through the call sites that set each nlopt knob.
type OptConfig struct {
	MaxEvalCount      int
	MaxLocalEvalCount int
	RelTolerance      float64
	Bound             float64
	StepSize          float64
	InitialPopulation uint
}

// DefaultOptConfig mirrors the original's zero-argument OptConfig
// constructor.
func DefaultOptConfig() OptConfig {
	return OptConfig{
		MaxEvalCount:      500000,
		MaxLocalEvalCount: 50000,
		RelTolerance:      1e-10,
		Bound:             1e9,
		StepSize:          0.5,
		InitialPopulation: 0,
	}
}

// optConfigForAlgorithm mirrors the original's two-argument OptConfig
// constructor: algorithms in the MLSL family get a tighter eval budget
// and a tighter relative tolerance than the defaults; everything else,
// including MaxLocalEvalCount, is left unchanged.
func optConfigForAlgorithm(globalAlg int) OptConfig {
	cfg := DefaultOptConfig()
	if globalAlg == nlopt.G_MLSL_LDS || globalAlg == nlopt.G_MLSL {
		cfg.MaxEvalCount = 50000
		cfg.RelTolerance = 1e-8
	}
	return cfg
}

// IsSupportedGlobalOptAlg is the global-algorithm allowlist §4.7 names.
func IsSupportedGlobalOptAlg(alg int) bool {
	switch alg {
	case nlopt.GN_DIRECT, nlopt.GN_DIRECT_L, nlopt.GN_DIRECT_L_RAND,
		nlopt.GN_ORIG_DIRECT, nlopt.GN_ORIG_DIRECT_L, nlopt.GN_MLSL_LDS,
		nlopt.G_MLSL, nlopt.G_MLSL_LDS, nlopt.GN_CRS2_LM, nlopt.GN_ISRES,
		nlopt.GN_ESCH:
		return true
	default:
		return false
	}
}

// IsSupportedLocalOptAlg is the local-algorithm allowlist §4.7 names.
func IsSupportedLocalOptAlg(alg int) bool {
	return alg == nlopt.LN_BOBYQA || alg == nlopt.LN_SBPLX
}

// IsRequireLocalOptAlg reports whether alg must be paired with a local
// optimizer (the G_MLSL family) rather than run standalone.
func IsRequireLocalOptAlg(alg int) bool {
	return alg == nlopt.G_MLSL || alg == nlopt.G_MLSL_LDS
}

// IsRequirePopulation reports whether alg needs an explicit initial
// population size set.
func IsRequirePopulation(alg int) bool {
	switch alg {
	case nlopt.GN_MLSL, nlopt.GN_CRS2_LM, nlopt.GN_ISRES, nlopt.GN_ESCH:
		return true
	default:
		return false
	}
}

// DefaultGlobalAlgorithm is internal/driver's default choice (§4.9: "the
// selected algorithm (default CRS2_LM)").
const DefaultGlobalAlgorithm = nlopt.GN_CRS2_LM

// DefaultLocalAlgorithm is the default companion for algorithms that
// require one.
const DefaultLocalAlgorithm = nlopt.LN_BOBYQA

// AlgorithmFromName maps one of §6's CLI "-alg" values to the
// corresponding global algorithm constant.
func AlgorithmFromName(name string) (int, bool) {
	switch name {
	case "direct":
		return nlopt.GN_DIRECT, true
	case "crs2":
		return nlopt.GN_CRS2_LM, true
	case "isres":
		return nlopt.GN_ISRES, true
	case "mlsl":
		return nlopt.G_MLSL_LDS, true
	default:
		return 0, false
	}
}
