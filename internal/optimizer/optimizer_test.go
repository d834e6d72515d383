package optimizer

import (
	"math"
	"testing"

	"github.com/go-nlopt/nlopt"
)

func TestIsSupportedGlobalOptAlg(t *testing.T) {
	for _, alg := range []int{
		nlopt.GN_DIRECT, nlopt.GN_DIRECT_L, nlopt.GN_DIRECT_L_RAND,
		nlopt.GN_ORIG_DIRECT, nlopt.GN_ORIG_DIRECT_L, nlopt.GN_MLSL_LDS,
		nlopt.G_MLSL, nlopt.G_MLSL_LDS, nlopt.GN_CRS2_LM, nlopt.GN_ISRES,
		nlopt.GN_ESCH,
	} {
		if !IsSupportedGlobalOptAlg(alg) {
			t.Errorf("algorithm %d should be a supported global algorithm", alg)
		}
	}
	if IsSupportedGlobalOptAlg(nlopt.LD_MMA) {
		t.Error("LD_MMA is a local derivative algorithm, should not be supported as global")
	}
}

func TestIsSupportedLocalOptAlg(t *testing.T) {
	if !IsSupportedLocalOptAlg(nlopt.LN_BOBYQA) || !IsSupportedLocalOptAlg(nlopt.LN_SBPLX) {
		t.Error("BOBYQA and SBPLX should be supported local algorithms")
	}
	if IsSupportedLocalOptAlg(nlopt.LN_COBYLA) {
		t.Error("COBYLA should not be a supported local algorithm")
	}
}

func TestIsRequireLocalOptAlg(t *testing.T) {
	if !IsRequireLocalOptAlg(nlopt.G_MLSL) || !IsRequireLocalOptAlg(nlopt.G_MLSL_LDS) {
		t.Error("G_MLSL and G_MLSL_LDS should require a local optimizer")
	}
	if IsRequireLocalOptAlg(nlopt.GN_MLSL_LDS) {
		t.Error("GN_MLSL_LDS is the population-free variant and should not require a local optimizer")
	}
	if IsRequireLocalOptAlg(nlopt.GN_DIRECT) {
		t.Error("GN_DIRECT should not require a local optimizer")
	}
}

func TestIsRequirePopulation(t *testing.T) {
	for _, alg := range []int{nlopt.GN_MLSL, nlopt.GN_CRS2_LM, nlopt.GN_ISRES, nlopt.GN_ESCH} {
		if !IsRequirePopulation(alg) {
			t.Errorf("algorithm %d should require an initial population", alg)
		}
	}
	if IsRequirePopulation(nlopt.GN_DIRECT) {
		t.Error("GN_DIRECT should not require an initial population")
	}
}

func TestOptConfigForAlgorithmTightensForMLSL(t *testing.T) {
	base := optConfigForAlgorithm(nlopt.GN_DIRECT)
	if base.MaxEvalCount != 500000 || base.RelTolerance != 1e-10 {
		t.Errorf("non-MLSL config should keep the defaults, got %+v", base)
	}
	mlsl := optConfigForAlgorithm(nlopt.G_MLSL_LDS)
	if mlsl.MaxEvalCount != 50000 || mlsl.RelTolerance != 1e-8 {
		t.Errorf("G_MLSL_LDS config should tighten eval count and tolerance, got %+v", mlsl)
	}
	if base.MaxLocalEvalCount != 50000 || mlsl.MaxLocalEvalCount != 50000 {
		t.Errorf("MaxLocalEvalCount should stay at the default 50000 for both, got base=%d mlsl=%d", base.MaxLocalEvalCount, mlsl.MaxLocalEvalCount)
	}
}

func TestOptimizeQuickExitWhenAlreadyZero(t *testing.T) {
	o := NewOptimizer()
	x := []float64{0, 0}
	calls := 0
	min, err := o.Optimize(func(x []float64) float64 {
		calls++
		return 0
	}, x)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if min != 0 {
		t.Errorf("min = %v, want 0", min)
	}
	if calls != 1 {
		t.Errorf("expected exactly one objective call on the quick-exit path, got %d", calls)
	}
	if o.LastStatus() != 1 {
		t.Errorf("LastStatus() = %d, want 1 (SUCCESS) on the quick-exit path", o.LastStatus())
	}
}

func TestStatusCodeMapsKnownNames(t *testing.T) {
	cases := map[string]int{
		"FAILURE":         -1,
		"INVALID_ARGS":    -2,
		"OUT_OF_MEMORY":   -3,
		"SUCCESS":         1,
		"MAXEVAL_REACHED": 5,
		"":                0,
	}
	for name, want := range cases {
		if got := statusCode(name); got != want {
			t.Errorf("statusCode(%q) = %d, want %d", name, got, want)
		}
	}
}

func TestFixRoundingErrorNearZeroSkipsWhenFarFromZero(t *testing.T) {
	x := []float64{1.5}
	min := 5.0
	called := false
	FixRoundingErrorNearZero(func(x []float64) float64 {
		called = true
		return 0
	}, x, &min)
	if called {
		t.Error("should not re-evaluate the objective when min is far from zero")
	}
	if x[0] != 1.5 {
		t.Errorf("x should be left untouched, got %v", x)
	}
}

func TestFixRoundingErrorNearZeroSnapsGenuineIntegerWitness(t *testing.T) {
	// x[0] sits within 1e-6 of its truncation 3; snapping to 3 drops the
	// objective from its small nonzero minimum to 0, so the snap is kept.
	x := []float64{3.0000001}
	min := 1e-7
	FixRoundingErrorNearZero(func(x []float64) float64 {
		return math.Abs(x[0] - 3)
	}, x, &min)
	if x[0] != 3 {
		t.Errorf("expected x[0] snapped to 3, got %v", x[0])
	}
	if min != 0 {
		t.Errorf("expected min re-evaluated to 0 after snapping, got %v", min)
	}
}

func TestFixRoundingErrorNearZeroRevertsWhenSnapWorsens(t *testing.T) {
	x := []float64{3.0000005}
	min := 1e-7
	FixRoundingErrorNearZero(func(x []float64) float64 {
		if x[0] == 3 {
			return 10 // snapping makes things worse
		}
		return 1e-7
	}, x, &min)
	if x[0] == 3 {
		t.Error("expected the snap to 3 to be reverted")
	}
}

func TestExistsRoundingError(t *testing.T) {
	f := func(x []float64) float64 { return x[0] * 2 }
	if ExistsRoundingError(f, []float64{1}, 2) {
		t.Error("2 == f(1), expected no rounding error")
	}
	if !ExistsRoundingError(f, []float64{1}, 3) {
		t.Error("3 != f(1), expected a rounding error")
	}
}

func TestAlgorithmFromName(t *testing.T) {
	cases := map[string]int{
		"direct": nlopt.GN_DIRECT,
		"crs2":   nlopt.GN_CRS2_LM,
		"isres":  nlopt.GN_ISRES,
		"mlsl":   nlopt.G_MLSL_LDS,
	}
	for name, want := range cases {
		got, ok := AlgorithmFromName(name)
		if !ok || got != want {
			t.Errorf("AlgorithmFromName(%q) = (%d, %v), want (%d, true)", name, got, ok, want)
		}
	}
	if _, ok := AlgorithmFromName("bogus"); ok {
		t.Error("expected AlgorithmFromName to reject an unknown name")
	}
}
