package validator

import (
	"fmt"
	"math"

	"gofpsat/internal/ast"
	"gofpsat/internal/fpa"
	"gofpsat/internal/translate"
)

// smallestNormalFloat64 is DBL_MIN (2^-1022), the boundary math.IsNormal
// predicates below test against — Go's math package exposes
// SmallestNonzeroFloat64 (a subnormal) but not this one.
const smallestNormalFloat64 = 2.2250738585072014e-308

// DirectEvaluator is the default Checker: a ground-term evaluator run in
// Go rather than dispatched to an external SMT process, standing in for
// the underlying SMT toolkit's decision procedure the same way
// irgen.TreeEngine stands in for its JIT execution engine — the "no
// external toolkit in the retrieval pack" substitution applied to the
// decision procedure instead of the objective function.
type DirectEvaluator struct{}

// NewDirectEvaluator returns the default Checker.
func NewDirectEvaluator() *DirectEvaluator { return &DirectEvaluator{} }

// Check implements Checker.
func (DirectEvaluator) Check(root *ast.Node) (bool, error) {
	return evalBool(root)
}

func evalBool(e *ast.Node) (bool, error) {
	switch e.Kind {
	case ast.TRUE:
		return true, nil
	case ast.FALSE:
		return false, nil
	case ast.NOT:
		v, err := evalBool(e.Args[0])
		return !v, err
	case ast.AND:
		for _, a := range e.Args {
			v, err := evalBool(a)
			if err != nil || !v {
				return false, err
			}
		}
		return true, nil
	case ast.OR:
		for _, a := range e.Args {
			v, err := evalBool(a)
			if err != nil {
				return false, err
			}
			if v {
				return true, nil
			}
		}
		return false, nil
	case ast.EQ:
		a, b := translate.Operands(e)
		if a.Sort.Kind == ast.SortBool {
			av, err := evalBool(a)
			if err != nil {
				return false, err
			}
			bv, err := evalBool(b)
			if err != nil {
				return false, err
			}
			return av == bv, nil
		}
		af, bf, err := evalFPPair(a, b)
		if err != nil {
			return false, err
		}
		// Structural equality, not IEEE-754 equality — see FPA_EQ for
		// that. Distinguishes +0 from -0 and treats NaN as equal to
		// itself, unlike the ieee754 "=" predicate below.
		return math.Float64bits(af) == math.Float64bits(bf), nil
	case ast.FPA_EQ:
		a, b := translate.Operands(e)
		af, bf, err := evalFPPair(a, b)
		if err != nil {
			return false, err
		}
		return af == bf, nil
	case ast.FPA_LT, ast.FPA_GT, ast.FPA_LE, ast.FPA_GE:
		a, b := translate.Operands(e)
		af, bf, err := evalFPPair(a, b)
		if err != nil {
			return false, err
		}
		switch e.Kind {
		case ast.FPA_LT:
			return af < bf, nil
		case ast.FPA_GT:
			return af > bf, nil
		case ast.FPA_LE:
			return af <= bf, nil
		default:
			return af >= bf, nil
		}
	case ast.FPA_IS_NAN:
		v, err := evalFP(e.Args[0])
		return math.IsNaN(v), err
	case ast.FPA_IS_INF:
		v, err := evalFP(e.Args[0])
		return math.IsInf(v, 0), err
	case ast.FPA_IS_ZERO:
		v, err := evalFP(e.Args[0])
		return v == 0, err
	case ast.FPA_IS_NORMAL:
		v, err := evalFP(e.Args[0])
		if err != nil {
			return false, err
		}
		return !math.IsNaN(v) && !math.IsInf(v, 0) && v != 0 && math.Abs(v) >= smallestNormalFloat64, nil
	case ast.FPA_IS_SUBNORMAL:
		v, err := evalFP(e.Args[0])
		if err != nil {
			return false, err
		}
		return v != 0 && math.Abs(v) < smallestNormalFloat64, nil
	case ast.FPA_IS_POSITIVE:
		v, err := evalFP(e.Args[0])
		if err != nil {
			return false, err
		}
		return !math.IsNaN(v) && !math.Signbit(v), nil
	case ast.FPA_IS_NEGATIVE:
		v, err := evalFP(e.Args[0])
		if err != nil {
			return false, err
		}
		return !math.IsNaN(v) && math.Signbit(v), nil
	default:
		return false, fmt.Errorf("validator: unsupported boolean operator %v", e.Kind)
	}
}

func evalFPPair(a, b *ast.Node) (float64, float64, error) {
	av, err := evalFP(a)
	if err != nil {
		return 0, 0, err
	}
	bv, err := evalFP(b)
	if err != nil {
		return 0, 0, err
	}
	return av, bv, nil
}

func evalFP(e *ast.Node) (float64, error) {
	switch e.Kind {
	case ast.FPA_PLUS_INF:
		return math.Inf(1), nil
	case ast.FPA_MINUS_INF:
		return math.Inf(-1), nil
	case ast.FPA_NAN:
		return math.NaN(), nil
	case ast.FPA_PLUS_ZERO:
		return 0, nil
	case ast.FPA_MINUS_ZERO:
		return math.Copysign(0, -1), nil
	case ast.BNUM:
		if fpa.IsFloat32(e.Sort.EBits, e.Sort.SBits) {
			return float64(fpa.ToFloat32(e)), nil
		}
		return fpa.ToFloat64(e), nil
	case ast.FPA_NEG:
		v, err := evalFP(e.Args[0])
		return -v, err
	case ast.FPA_ABS:
		v, err := evalFP(e.Args[0])
		return math.Abs(v), err
	case ast.FPA_ADD, ast.FPA_SUB, ast.FPA_MUL, ast.FPA_DIV, ast.FPA_REM:
		a, b := translate.Operands(e)
		av, bv, err := evalFPPair(a, b)
		if err != nil {
			return 0, err
		}
		var r float64
		switch e.Kind {
		case ast.FPA_ADD:
			r = av + bv
		case ast.FPA_SUB:
			r = av - bv
		case ast.FPA_MUL:
			r = av * bv
		case ast.FPA_DIV:
			r = av / bv
		default: // FPA_REM
			r = math.Mod(av, bv)
		}
		return roundToSort(r, e.Sort), nil
	case ast.FPA_TO_FP:
		a, _ := translate.Operands(e)
		v, err := evalFP(a)
		if err != nil {
			return 0, err
		}
		return roundToSort(v, e.Sort), nil
	case ast.FPA_MIN:
		a, b := translate.Operands(e)
		av, bv, err := evalFPPair(a, b)
		return math.Min(av, bv), err
	case ast.FPA_MAX:
		a, b := translate.Operands(e)
		av, bv, err := evalFPPair(a, b)
		return math.Max(av, bv), err
	case ast.FPA_SQRT:
		v, err := evalFP(e.Args[len(e.Args)-1])
		if err != nil {
			return 0, err
		}
		return roundToSort(math.Sqrt(v), e.Sort), nil
	case ast.FPA_ROUND_TO_INTEGRAL:
		v, err := evalFP(e.Args[len(e.Args)-1])
		if err != nil {
			return 0, err
		}
		return roundToSort(math.RoundToEven(v), e.Sort), nil
	case ast.FPA_FMA:
		if len(e.Args) < 3 {
			return 0, fmt.Errorf("validator: malformed fma application")
		}
		n := len(e.Args)
		av, err := evalFP(e.Args[n-3])
		if err != nil {
			return 0, err
		}
		bv, err := evalFP(e.Args[n-2])
		if err != nil {
			return 0, err
		}
		cv, err := evalFP(e.Args[n-1])
		if err != nil {
			return 0, err
		}
		return roundToSort(av*bv+cv, e.Sort), nil
	default:
		return 0, fmt.Errorf("validator: unsupported floating-point operator %v", e.Kind)
	}
}

// roundToSort narrows an internally-double-precision result to float32
// width when sort declares FP32 — the same widen-to-double-then-narrow
// model irgen/codegen use for arithmetic on FP32-sorted subexpressions.
func roundToSort(v float64, sort ast.Sort) float64 {
	if sort.Kind == ast.SortFP && fpa.IsFloat32(sort.EBits, sort.SBits) {
		return float64(float32(v))
	}
	return v
}
