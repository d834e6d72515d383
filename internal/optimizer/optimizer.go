package optimizer

import (
	"fmt"
	"math"

	"github.com/go-nlopt/nlopt"

	"gofpsat/internal/irgen"
)

// Optimizer drives one formula's objective function toward zero using
// NLopt's global algorithm family, escalating to a paired local optimizer
// when the chosen global algorithm requires one (the G_MLSL family).
type Optimizer struct {
	globalAlg, localAlg int
	Config              OptConfig
	lastStatus          int
}

// LastStatus is the raw NLopt result code from the most recent Optimize
// call — the "status" column §6's CSV line names — mapped from
// go-nlopt's LastStatus() string back to NLopt's own numeric
// nlopt_result enum (go-nlopt only surfaces the name; the C library and
// the original tool it replaces both report the number).
func (o *Optimizer) LastStatus() int {
	return o.lastStatus
}

// statusCode maps an NLopt result name to its C enum value.
func statusCode(name string) int {
	switch name {
	case "FAILURE":
		return -1
	case "INVALID_ARGS":
		return -2
	case "OUT_OF_MEMORY":
		return -3
	case "ROUNDOFF_LIMITED":
		return -4
	case "FORCED_STOP":
		return -5
	case "SUCCESS":
		return 1
	case "STOPVAL_REACHED":
		return 2
	case "FTOL_REACHED":
		return 3
	case "XTOL_REACHED":
		return 4
	case "MAXEVAL_REACHED":
		return 5
	case "MAXTIME_REACHED":
		return 6
	default:
		return 0
	}
}

// NewOptimizer returns the default optimizer: GN_DIRECT with no local
// companion.
func NewOptimizer() *Optimizer {
	return NewOptimizerWithAlgorithms(nlopt.GN_DIRECT, DefaultLocalAlgorithm)
}

// NewOptimizerWithAlgorithm returns an optimizer for globalAlg, paired
// with the default local optimizer (BOBYQA) if globalAlg ever needs one.
func NewOptimizerWithAlgorithm(globalAlg int) *Optimizer {
	return NewOptimizerWithAlgorithms(globalAlg, DefaultLocalAlgorithm)
}

// NewOptimizerWithAlgorithms returns an optimizer for the given
// global/local algorithm pair.
func NewOptimizerWithAlgorithms(globalAlg, localAlg int) *Optimizer {
	return &Optimizer{
		globalAlg: globalAlg,
		localAlg:  localAlg,
		Config:    optConfigForAlgorithm(globalAlg),
	}
}

// adaptObjective lifts an irgen.ObjectiveFunc (no gradient: every
// algorithm §4.7 lists is derivative-free) into NLopt's Func shape.
func adaptObjective(f irgen.ObjectiveFunc) nlopt.Func {
	return func(x, gradient []float64) float64 {
		return f(x)
	}
}

// Optimize implements §4.7's optimize procedure: a quick exit if x already
// satisfies the objective, else a global optimizer over
// [-Bound,+Bound]^dim with a per-dimension initial step, stop-value 0, and
// the configured tolerances — escalated to a local optimizer when the
// chosen global algorithm requires one. x is read and overwritten in
// place with the witness found.
func (o *Optimizer) Optimize(objective irgen.ObjectiveFunc, x []float64) (float64, error) {
	if objective(x) == 0 {
		o.lastStatus = statusCode("SUCCESS")
		return 0, nil
	}
	if !IsSupportedGlobalOptAlg(o.globalAlg) {
		return 0, fmt.Errorf("optimizer: unsupported global algorithm %d", o.globalAlg)
	}

	dim := uint(len(x))
	opt, err := nlopt.NewNLopt(o.globalAlg, dim)
	if err != nil {
		return 0, err
	}
	defer opt.Destroy()

	fn := adaptObjective(objective)
	if err := configureCommon(opt, fn, o.Config, dim); err != nil {
		return 0, err
	}
	if IsRequirePopulation(o.globalAlg) {
		if err := opt.SetPopulation(o.Config.InitialPopulation); err != nil {
			return 0, err
		}
	}

	if !IsRequireLocalOptAlg(o.globalAlg) {
		min, err := runOptimize(opt, x)
		o.lastStatus = statusCode(opt.LastStatus())
		return min, err
	}

	if !IsSupportedLocalOptAlg(o.localAlg) {
		return 0, fmt.Errorf("optimizer: unsupported local algorithm %d", o.localAlg)
	}
	localOpt, err := nlopt.NewNLopt(o.localAlg, dim)
	if err != nil {
		return 0, err
	}
	defer localOpt.Destroy()
	if err := localOpt.SetMinObjective(fn); err != nil {
		return 0, err
	}
	if err := localOpt.SetInitialStep1(o.Config.StepSize); err != nil {
		return 0, err
	}
	if err := localOpt.SetStopVal(0); err != nil {
		return 0, err
	}
	if err := localOpt.SetMaxEval(o.Config.MaxLocalEvalCount); err != nil {
		return 0, err
	}
	if err := opt.SetLocalOptimizer(localOpt); err != nil {
		return 0, err
	}
	min, err := runOptimize(opt, x)
	o.lastStatus = statusCode(opt.LastStatus())
	return min, err
}

func configureCommon(opt *nlopt.NLopt, fn nlopt.Func, cfg OptConfig, dim uint) error {
	if err := opt.SetMinObjective(fn); err != nil {
		return err
	}
	if err := opt.SetUpperBounds1(cfg.Bound); err != nil {
		return err
	}
	if err := opt.SetLowerBounds1(-cfg.Bound); err != nil {
		return err
	}
	if err := opt.SetInitialStep1(cfg.StepSize); err != nil {
		return err
	}
	if err := opt.SetStopVal(0); err != nil {
		return err
	}
	if err := opt.SetXtolRel(cfg.RelTolerance); err != nil {
		return err
	}
	return opt.SetMaxEval(cfg.MaxEvalCount)
}

func runOptimize(opt *nlopt.NLopt, x []float64) (float64, error) {
	xOut, min, err := opt.Optimize(x)
	if err != nil {
		return 0, err
	}
	copy(x, xOut)
	return min, nil
}

// RefineResult is a follow-up BOBYQA pass over the saved witness x, used
// to polish a raw minimum found by a global search.
func (o *Optimizer) RefineResult(objective irgen.ObjectiveFunc, x []float64) (float64, error) {
	opt, err := nlopt.NewNLopt(DefaultLocalAlgorithm, uint(len(x)))
	if err != nil {
		return 0, err
	}
	defer opt.Destroy()

	fn := adaptObjective(objective)
	if err := opt.SetMinObjective(fn); err != nil {
		return 0, err
	}
	if err := opt.SetInitialStep1(o.Config.StepSize); err != nil {
		return 0, err
	}
	if err := opt.SetXtolRel(o.Config.RelTolerance); err != nil {
		return 0, err
	}
	if err := opt.SetMaxEval(o.Config.MaxLocalEvalCount); err != nil {
		return 0, err
	}
	return runOptimize(opt, x)
}

// FixRoundingErrorNearZero implements §4.7's rounding-error cleanup pass:
// skipped unless the found minimum is non-zero but within 1e-6 of it.
// Each dimension whose value is within 1e-6 of its own integer truncation
// is tentatively snapped to that integer; the snap is kept only if it does
// not increase the objective (and the objective stays finite there).
func FixRoundingErrorNearZero(objective irgen.ObjectiveFunc, x []float64, min *float64) {
	if *min == 0 || math.Abs(*min) > 1e-6 {
		return
	}
	for i := range x {
		intPart := math.Trunc(x[i])
		if math.Abs(x[i]-intPart) >= 1e-6 {
			continue
		}
		saved := x[i]
		x[i] = intPart
		minAtInt := objective(x)
		if *min < minAtInt || math.IsNaN(minAtInt) {
			x[i] = saved
		}
	}
	*min = objective(x)
}

// Eval is objective(x) with no gradient requested, matching §4.7's eval.
func Eval(objective irgen.ObjectiveFunc, x []float64) float64 {
	return objective(x)
}

// ExistsRoundingError reports whether re-evaluating the objective at x
// disagrees with the optimizer-reported minimum.
func ExistsRoundingError(objective irgen.ObjectiveFunc, x []float64, min float64) bool {
	return objective(x) != min
}
