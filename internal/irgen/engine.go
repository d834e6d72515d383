package irgen

import (
	"math"

	"gofpsat/internal/ast"
	"gofpsat/internal/fpa"
	"gofpsat/internal/translate"
)

// ObjectiveFunc is g_F from §2: the non-negative minimization target the
// optimizer (§4.7) drives toward zero.
type ObjectiveFunc func(x []float64) float64

// Engine is the injectable JIT-execution collaborator. Neither a real LLVM
// execution engine nor an MCJIT/ORC binding exists anywhere in this
// project's dependency surface, so it is modeled the way spec.md itself
// treats it: an external collaborator the solver depends on through an
// interface, not an implementation this package owns.
type Engine interface {
	// Compile returns a callable form of the function g already built for
	// root via GenFunction.
	Compile(g *Generator, root *ast.Node) (ObjectiveFunc, error)
}

// TreeEngine is the default Engine. It evaluates root directly in Go,
// applying the same translate.EffectivePolarity/ClassifyKind rules the
// Generator used to build the IR, rather than interpreting the compiled
// module's instructions — a shadow interpreter standing in for the
// missing native JIT, matching the variable order the IR generator bound
// (g.Vars()).
type TreeEngine struct{}

// NewTreeEngine returns the default Engine.
func NewTreeEngine() *TreeEngine { return &TreeEngine{} }

// Compile implements Engine.
func (TreeEngine) Compile(g *Generator, root *ast.Node) (ObjectiveFunc, error) {
	varIdx := make(map[uint64]int, len(g.Vars()))
	for _, v := range g.Vars() {
		varIdx[v.Source.Hash] = v.ID
	}
	return func(x []float64) float64 {
		ev := &evaluator{x: x, varIdx: varIdx, cache: make(map[uint64]float64)}
		return ev.eval(root, false)
	}, nil
}

type evaluator struct {
	x      []float64
	varIdx map[uint64]int
	cache  map[uint64]float64
}

func (ev *evaluator) eval(e *ast.Node, inherited bool) float64 {
	if e.Kind == ast.BNUM {
		return ev.numeral(e)
	}
	if fpa.IsFPVar(e) {
		if idx, ok := ev.varIdx[e.Hash]; ok {
			return ev.x[idx]
		}
		return 0
	}

	effective := translate.EffectivePolarity(e, inherited)
	kind := translate.ClassifyKind(e, effective)
	key := e.Hash<<4 | uint64(kind)
	if v, ok := ev.cache[key]; ok {
		return v
	}

	childPolarity := translate.ChildPolarity(e, effective)
	args := make([]float64, len(e.Args))
	for i, a := range e.Args {
		args[i] = ev.eval(a, childPolarity)
	}
	v := ev.exprValue(e, effective, args)
	ev.cache[key] = v
	return v
}

func (ev *evaluator) numeral(e *ast.Node) float64 {
	if e.Sort.Kind == ast.SortFP {
		if fpa.IsFloat32(e.Sort.EBits, e.Sort.SBits) {
			return float64(fpa.ToFloat32(e))
		}
		return fpa.ToFloat64(e)
	}
	return parseLeadingZeroed(e.Text)
}

func (ev *evaluator) exprValue(e *ast.Node, negated bool, args []float64) float64 {
	switch e.Kind {
	case ast.TRUE:
		if negated {
			return 1
		}
		return 0
	case ast.FALSE:
		if negated {
			return 0
		}
		return 1
	case ast.EQ:
		if negated {
			return fpa.NeqDis64(args[0], args[1])
		}
		return fpa.EqDis64(args[0], args[1])
	case ast.FPA_EQ:
		if negated {
			if args[0] != args[1] {
				return 0
			}
			return 1
		}
		return fpa.Dis64(args[0], args[1])
	case ast.NOT:
		return args[0]
	case ast.AND:
		if negated {
			return product(args)
		}
		return sum(args)
	case ast.OR:
		if negated {
			return sum(args)
		}
		return product(args)
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
	case ast.FPA_ADD:
		return args[1] + args[2]
	case ast.FPA_SUB:
		return args[1] - args[2]
	case ast.FPA_NEG:
		return -args[0]
	case ast.FPA_MUL:
		return args[1] * args[2]
	case ast.FPA_DIV:
		return args[1] / args[2]
	case ast.FPA_REM:
		return math.Mod(args[0], args[1])
	case ast.FPA_ABS:
		return math.Abs(args[0])
	case ast.FPA_LT:
		if negated {
			return compDis(args[0] >= args[1], args[0], args[1])
		}
		return compDisStrict(args[0] < args[1], args[0], args[1])
	case ast.FPA_GT:
		if negated {
			return compDis(args[0] <= args[1], args[0], args[1])
		}
		return compDisStrict(args[0] > args[1], args[0], args[1])
	case ast.FPA_LE:
		if negated {
			return compDisStrict(args[0] > args[1], args[0], args[1])
		}
		return compDis(args[0] <= args[1], args[0], args[1])
	case ast.FPA_GE:
		if negated {
			return compDisStrict(args[0] < args[1], args[0], args[1])
		}
		return compDis(args[0] >= args[1], args[0], args[1])
	case ast.FPA_TO_FP:
		return args[len(args)-1]
	case ast.FPA_IS_NAN:
		flag := 0.0
		if negated {
			flag = 1
		}
		return fpa.IsNaN64(args[0], flag)
	default:
		return 0
	}
}

func compDis(holds bool, a, b float64) float64 {
	if holds {
		return 0
	}
	return fpa.Dis64(a, b)
}

func compDisStrict(holds bool, a, b float64) float64 {
	if holds {
		return 0
	}
	return fpa.Dis64(a, b) + 1
}

func sum(args []float64) float64 {
	total := 0.0
	for _, a := range args {
		total += a
	}
	return total
}

func product(args []float64) float64 {
	total := 1.0
	for _, a := range args {
		total *= a
	}
	return total
}
