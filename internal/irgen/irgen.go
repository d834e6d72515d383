// Package irgen implements the JIT IR backend from §4.6: translating one
// formula's AST into an LLVM IR module built through github.com/llir/llvm,
// with a shared external-helper-function contract (fp64_dis, fp64_eq_dis,
// fp64_neq_dis, fp64_isnan) standing in for the source backend's linked C
// runtime.
//
// Grounded on original_source/src/IRGen/FPIRGenerator.{h,cpp}.
package irgen

import (
	"math"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"gofpsat/internal/ast"
	"gofpsat/internal/fpa"
	"gofpsat/internal/symtab"
	"gofpsat/internal/translate"
)

const (
	objFuncName = "gofunc"
	disName     = "fp64_dis"
	eqDisName   = "fp64_eq_dis"
	neqDisName  = "fp64_neq_dis"
	isNanName   = "fp64_isnan"
	fabsName    = "llvm.fabs.f64"
)

// WrappedVar records a variable wrapped by an FPA_TO_FP conversion whose
// inner argument is itself a variable — the model validator (§4.8) needs
// to know this to substitute the *wrapped* value rather than the inner
// variable's raw one.
type WrappedVar struct {
	Wrapper *symtab.IrSymbol
	Inner   *symtab.IrSymbol
}

// Generator builds one formula's objective function as an LLVM IR module.
// A Generator is single-use: construct a fresh one per formula.
type Generator struct {
	mod *ir.Module
	fn  *ir.Func

	disFn, eqDisFn, neqDisFn, isNanFn, fabsFn *ir.Func

	table   *symtab.IrTable
	vars    []*symtab.IrSymbol
	wrapped []WrappedVar

	hasUnsupportedExpr bool

	zero, one *constant.Float
	cur       *ir.Block
}

// NewGenerator returns a Generator with the module's external helper
// declarations already in place.
func NewGenerator() *Generator {
	mod := ir.NewModule()
	g := &Generator{
		mod:   mod,
		table: symtab.NewIrTable(),
		zero:  constant.NewFloat(types.Double, 0),
		one:   constant.NewFloat(types.Double, 1),
	}
	g.disFn = mod.NewFunc(disName, types.Double, ir.NewParam("a", types.Double), ir.NewParam("b", types.Double))
	g.eqDisFn = mod.NewFunc(eqDisName, types.Double, ir.NewParam("a", types.Double), ir.NewParam("b", types.Double))
	g.neqDisFn = mod.NewFunc(neqDisName, types.Double, ir.NewParam("a", types.Double), ir.NewParam("b", types.Double))
	g.isNanFn = mod.NewFunc(isNanName, types.Double, ir.NewParam("a", types.Double), ir.NewParam("flag", types.Double))
	g.fabsFn = mod.NewFunc(fabsName, types.Double, ir.NewParam("x", types.Double))
	return g
}

// Module returns the module under construction (or complete, once
// GenFunction has run).
func (g *Generator) Module() *ir.Module { return g.mod }

// VarCount reports how many distinct FP variables were bound to a slot in
// the objective function's input vector.
func (g *Generator) VarCount() int { return len(g.vars) }

// Vars returns the variables in the order they were first encountered,
// matching the index each was bound under.
func (g *Generator) Vars() []*symtab.IrSymbol { return g.vars }

// WrappedVars returns the FPA_TO_FP(var)-wrapped variables recorded during
// translation.
func (g *Generator) WrappedVars() []WrappedVar { return g.wrapped }

// HasUnsupportedExpr reports whether translation hit an operator outside
// the translation table.
func (g *Generator) HasUnsupportedExpr() bool { return g.hasUnsupportedExpr }

// GenFunction translates root into the module's "gofunc" definition and
// returns it.
func (g *Generator) GenFunction(root *ast.Node) *ir.Func {
	g.fn = g.mod.NewFunc(objFuncName, types.Double,
		ir.NewParam("n", types.I32),
		ir.NewParam("x", types.NewPointer(types.Double)),
		ir.NewParam("grad", types.NewPointer(types.Double)),
		ir.NewParam("data", types.NewPointer(types.I8)),
	)
	g.cur = g.fn.NewBlock("EntryBlock")
	sym := g.walk(root, false)
	g.cur.NewRet(sym.Value)
	return g.fn
}

func (g *Generator) xParam() value.Value { return g.fn.Params[1] }

func (g *Generator) walk(e *ast.Node, inherited bool) *symtab.IrSymbol {
	if e.Kind == ast.BNUM {
		return g.genNumeral(e)
	}

	if fpa.IsFPVar(e) {
		kind := symtab.KindFP64Var
		if fpa.IsFloat32VarDecl(e) {
			kind = symtab.KindFP32Var
		}
		sym, fresh := g.table.Insert(kind, e)
		if fresh {
			idx := constant.NewInt(types.I64, int64(len(g.vars)))
			gep := g.cur.NewGetElementPtr(types.Double, g.xParam(), idx)
			load := g.cur.NewLoad(types.Double, gep)
			sym.Value = load
			sym.ID = len(g.vars)
			g.vars = append(g.vars, sym)
		}
		return sym
	}

	effective := translate.EffectivePolarity(e, inherited)
	kind := translate.ClassifyKind(e, effective)
	sym, fresh := g.table.Insert(kind, e)
	if !fresh {
		return sym
	}

	childPolarity := translate.ChildPolarity(e, effective)
	args := make([]*symtab.IrSymbol, 0, len(e.Args))
	for _, a := range e.Args {
		args = append(args, g.walk(a, childPolarity))
	}
	sym.Value = g.genExprIR(sym, e, args)

	if e.Kind == ast.FPA_TO_FP && len(e.Args) > 1 && fpa.IsFPVar(e.Args[1]) {
		if inner, ok := g.table.Lookup(symtab.KindFP64Var, e.Args[1]); ok {
			g.wrapped = append(g.wrapped, WrappedVar{Wrapper: sym, Inner: inner})
		} else if inner, ok := g.table.Lookup(symtab.KindFP32Var, e.Args[1]); ok {
			g.wrapped = append(g.wrapped, WrappedVar{Wrapper: sym, Inner: inner})
		}
	}
	return sym
}

func (g *Generator) genNumeral(e *ast.Node) *symtab.IrSymbol {
	if e.Sort.Kind == ast.SortFP {
		kind := symtab.KindFP64Const
		var v float64
		if fpa.IsFloat32(e.Sort.EBits, e.Sort.SBits) {
			kind = symtab.KindFP32Const
			v = float64(fpa.ToFloat32(e))
		} else {
			v = fpa.ToFloat64(e)
		}
		sym, fresh := g.table.Insert(kind, e)
		if fresh {
			sym.Value = constant.NewFloat(types.Double, v)
		}
		return sym
	}
	sym, fresh := g.table.Insert(symtab.KindFP64Const, e)
	if fresh {
		sym.Value = constant.NewFloat(types.Double, parseLeadingZeroed(e.Text))
	}
	return sym
}

func (g *Generator) genExprIR(sym *symtab.IrSymbol, e *ast.Node, args []*symtab.IrSymbol) value.Value {
	negated := sym.Kind == symtab.KindNegatedExpr
	switch e.Kind {
	case ast.TRUE:
		if negated {
			return g.one
		}
		return g.zero
	case ast.FALSE:
		if negated {
			return g.zero
		}
		return g.one
	case ast.EQ:
		if negated {
			return g.cur.NewCall(g.neqDisFn, args[0].Value, args[1].Value)
		}
		return g.cur.NewCall(g.eqDisFn, args[0].Value, args[1].Value)
	case ast.FPA_EQ:
		if negated {
			cmp := g.cur.NewFCmp(enum.FPredONE, args[0].Value, args[1].Value)
			return g.cur.NewSelect(cmp, g.zero, g.one)
		}
		return g.cur.NewCall(g.disFn, args[0].Value, args[1].Value)
	case ast.NOT:
		return args[0].Value
	case ast.AND:
		if negated {
			return g.genMultiArgMul(args)
		}
		return g.genMultiArgAdd(args)
	case ast.OR:
		if negated {
			return g.genMultiArgAdd(args)
		}
		return g.genMultiArgMul(args)
	case ast.FPA_PLUS_INF:
		return constant.NewFloat(types.Double, math.Inf(1))
	case ast.FPA_MINUS_INF:
		return constant.NewFloat(types.Double, math.Inf(-1))
	case ast.FPA_NAN:
		return constant.NewFloat(types.Double, math.NaN())
	case ast.FPA_PLUS_ZERO:
		return constant.NewFloat(types.Double, 0)
	case ast.FPA_MINUS_ZERO:
		return constant.NewFloat(types.Double, math.Copysign(0, -1))
	case ast.FPA_ADD:
		return g.cur.NewFAdd(args[1].Value, args[2].Value)
	case ast.FPA_SUB:
		return g.cur.NewFSub(args[1].Value, args[2].Value)
	case ast.FPA_NEG:
		return g.cur.NewFSub(constant.NewFloat(types.Double, math.Copysign(0, -1)), args[0].Value)
	case ast.FPA_MUL:
		return g.cur.NewFMul(args[1].Value, args[2].Value)
	case ast.FPA_DIV:
		return g.cur.NewFDiv(args[1].Value, args[2].Value)
	case ast.FPA_REM:
		// FRem, not a call to fmod — FPA_REM carries no rounding-mode
		// argument, so it indexes arg(0)/arg(1) (Design Notes).
		return g.cur.NewFRem(args[0].Value, args[1].Value)
	case ast.FPA_ABS:
		return g.cur.NewCall(g.fabsFn, args[0].Value)
	case ast.FPA_LT:
		if negated {
			cmp := g.cur.NewFCmp(enum.FPredOGE, args[0].Value, args[1].Value)
			return g.genBinArgCmp(args, cmp)
		}
		cmp := g.cur.NewFCmp(enum.FPredOLT, args[0].Value, args[1].Value)
		return g.genBinArgCmp2(args, cmp)
	case ast.FPA_GT:
		if negated {
			cmp := g.cur.NewFCmp(enum.FPredOLE, args[0].Value, args[1].Value)
			return g.genBinArgCmp(args, cmp)
		}
		cmp := g.cur.NewFCmp(enum.FPredOGT, args[0].Value, args[1].Value)
		return g.genBinArgCmp2(args, cmp)
	case ast.FPA_LE:
		if negated {
			cmp := g.cur.NewFCmp(enum.FPredOGT, args[0].Value, args[1].Value)
			return g.genBinArgCmp2(args, cmp)
		}
		cmp := g.cur.NewFCmp(enum.FPredOLE, args[0].Value, args[1].Value)
		return g.genBinArgCmp(args, cmp)
	case ast.FPA_GE:
		if negated {
			cmp := g.cur.NewFCmp(enum.FPredOLT, args[0].Value, args[1].Value)
			return g.genBinArgCmp2(args, cmp)
		}
		cmp := g.cur.NewFCmp(enum.FPredOGE, args[0].Value, args[1].Value)
		return g.genBinArgCmp(args, cmp)
	case ast.FPA_TO_FP:
		return args[len(args)-1].Value
	case ast.FPA_IS_NAN:
		flag := g.zero
		if negated {
			flag = g.one
		}
		return g.cur.NewCall(g.isNanFn, args[0].Value, flag)
	default:
		g.hasUnsupportedExpr = true
		return g.zero
	}
}

// genBinArgCmp is the non-strict comparison form (<=, >=): zero when the
// comparison holds, fp64_dis(a, b) otherwise.
func (g *Generator) genBinArgCmp(args []*symtab.IrSymbol, cmp value.Value) value.Value {
	bbFirst := g.fn.NewBlock("")
	bbSecond := g.fn.NewBlock("")
	bbCur := g.cur
	g.cur.NewCondBr(cmp, bbSecond, bbFirst)
	g.cur = bbFirst
	call := g.cur.NewCall(g.disFn, args[0].Value, args[1].Value)
	g.cur.NewBr(bbSecond)
	g.cur = bbSecond
	return g.cur.NewPhi(ir.NewIncoming(call, bbFirst), ir.NewIncoming(g.zero, bbCur))
}

// genBinArgCmp2 is the strict comparison form (<, >): zero when the
// comparison holds, fp64_dis(a, b) + 1 otherwise — the "+1" keeps the
// result strictly positive at the boundary, where fp64_dis(a, a) is 0.
func (g *Generator) genBinArgCmp2(args []*symtab.IrSymbol, cmp value.Value) value.Value {
	bbFirst := g.fn.NewBlock("")
	bbSecond := g.fn.NewBlock("")
	bbCur := g.cur
	g.cur.NewCondBr(cmp, bbSecond, bbFirst)
	g.cur = bbFirst
	call := g.cur.NewCall(g.disFn, args[0].Value, args[1].Value)
	disRes := g.cur.NewFAdd(call, g.one)
	g.cur.NewBr(bbSecond)
	g.cur = bbSecond
	return g.cur.NewPhi(ir.NewIncoming(disRes, bbFirst), ir.NewIncoming(g.zero, bbCur))
}

func (g *Generator) genMultiArgAdd(args []*symtab.IrSymbol) value.Value {
	result := g.cur.NewFAdd(args[0].Value, args[1].Value)
	for _, a := range args[2:] {
		result = g.cur.NewFAdd(result, a.Value)
	}
	return result
}

func (g *Generator) genMultiArgMul(args []*symtab.IrSymbol) value.Value {
	result := g.cur.NewFMul(args[0].Value, args[1].Value)
	for _, a := range args[2:] {
		result = g.cur.NewFMul(result, a.Value)
	}
	return result
}
