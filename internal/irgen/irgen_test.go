package irgen

import (
	"strings"
	"testing"

	"gofpsat/internal/ast"
)

// These tests exercise the constructed *ir.Module directly — the primary
// JIT IR backend's lowering — rather than only its side effects (Vars,
// WrappedVars) that TreeEngine happens to reuse.

func TestGenFunctionDefinesGofuncOverExternalHelpers(t *testing.T) {
	x := fp64Var("x", 1)
	isNaN := &ast.Node{Kind: ast.FPA_IS_NAN, Sort: ast.Bool, Args: []*ast.Node{x}, Hash: 2}

	g := NewGenerator()
	g.GenFunction(isNaN)

	mod := g.Module().String()
	if !strings.Contains(mod, "define double @gofunc(") {
		t.Errorf("module should define gofunc, got:\n%s", mod)
	}
	for _, helper := range []string{"@fp64_dis", "@fp64_eq_dis", "@fp64_neq_dis", "@fp64_isnan"} {
		if !strings.Contains(mod, helper) {
			t.Errorf("module should declare external helper %s, got:\n%s", helper, mod)
		}
	}
	if !strings.Contains(mod, "call double @fp64_isnan(") {
		t.Errorf("fp.isNaN should lower to a call to fp64_isnan, got:\n%s", mod)
	}
}

func TestGenExprIRLowersEqToEqDisCall(t *testing.T) {
	x := fp64Var("x", 1)
	y := fp64Var("y", 2)
	eq := &ast.Node{Kind: ast.EQ, Sort: ast.Bool, Args: []*ast.Node{x, y}, Hash: 3}

	g := NewGenerator()
	g.GenFunction(eq)

	mod := g.Module().String()
	if !strings.Contains(mod, "call double @fp64_eq_dis(") {
		t.Errorf("positive-polarity EQ should lower to a call to fp64_eq_dis, got:\n%s", mod)
	}
}

func TestGenExprIRLowersNegatedEqToNeqDisCall(t *testing.T) {
	x := fp64Var("x", 1)
	y := fp64Var("y", 2)
	eq := &ast.Node{Kind: ast.EQ, Sort: ast.Bool, Args: []*ast.Node{x, y}, Hash: 3}
	not := &ast.Node{Kind: ast.NOT, Sort: ast.Bool, Args: []*ast.Node{eq}, Hash: 4}

	g := NewGenerator()
	g.GenFunction(not)

	mod := g.Module().String()
	if !strings.Contains(mod, "call double @fp64_neq_dis(") {
		t.Errorf("EQ negated under NOT should lower to a call to fp64_neq_dis, got:\n%s", mod)
	}
}

func TestGenExprIRLowersFPARemToFRem(t *testing.T) {
	x := fp64Var("x", 1)
	y := fp64Var("y", 2)
	rem := &ast.Node{Kind: ast.FPA_REM, Sort: ast.FP64, Args: []*ast.Node{x, y}, Hash: 3}

	g := NewGenerator()
	g.GenFunction(rem)

	mod := g.Module().String()
	if !strings.Contains(mod, "frem double") {
		t.Errorf("FPA_REM should lower to an frem instruction, got:\n%s", mod)
	}
}

func TestGenExprIRLowersStrictLessThanToCondBrAndPhi(t *testing.T) {
	x := fp64Var("x", 1)
	y := fp64Var("y", 2)
	lt := &ast.Node{Kind: ast.FPA_LT, Sort: ast.Bool, Args: []*ast.Node{x, y}, Hash: 3}

	g := NewGenerator()
	g.GenFunction(lt)

	mod := g.Module().String()
	if !strings.Contains(mod, "br i1 ") {
		t.Errorf("strict FPA_LT should lower to a conditional branch, got:\n%s", mod)
	}
	if !strings.Contains(mod, "phi double") {
		t.Errorf("strict FPA_LT should join through a phi, got:\n%s", mod)
	}
	if !strings.Contains(mod, "call double @fp64_dis(") {
		t.Errorf("strict FPA_LT's unsatisfied branch should call fp64_dis, got:\n%s", mod)
	}
}

func TestGenExprIRLowersAndToFAddUnderPositivePolarity(t *testing.T) {
	x := fp64Var("x", 1)
	y := fp64Var("y", 2)
	lt1 := &ast.Node{Kind: ast.FPA_LT, Sort: ast.Bool, Args: []*ast.Node{x, y}, Hash: 3}
	lt2 := &ast.Node{Kind: ast.FPA_LT, Sort: ast.Bool, Args: []*ast.Node{y, x}, Hash: 4}
	and := &ast.Node{Kind: ast.AND, Sort: ast.Bool, Args: []*ast.Node{lt1, lt2}, Hash: 5}

	g := NewGenerator()
	g.GenFunction(and)

	mod := g.Module().String()
	if !strings.Contains(mod, "fadd double") {
		t.Errorf("AND under positive polarity should lower to fadd, got:\n%s", mod)
	}
}

func TestGenExprIRLowersAndToFMulUnderNegatedPolarity(t *testing.T) {
	x := fp64Var("x", 1)
	y := fp64Var("y", 2)
	lt1 := &ast.Node{Kind: ast.FPA_LT, Sort: ast.Bool, Args: []*ast.Node{x, y}, Hash: 3}
	lt2 := &ast.Node{Kind: ast.FPA_LT, Sort: ast.Bool, Args: []*ast.Node{y, x}, Hash: 4}
	and := &ast.Node{Kind: ast.AND, Sort: ast.Bool, Args: []*ast.Node{lt1, lt2}, Hash: 5}
	not := &ast.Node{Kind: ast.NOT, Sort: ast.Bool, Args: []*ast.Node{and}, Hash: 6}

	g := NewGenerator()
	g.GenFunction(not)

	mod := g.Module().String()
	if !strings.Contains(mod, "fmul double") {
		t.Errorf("AND under negated polarity (De Morgan) should lower to fmul, got:\n%s", mod)
	}
}

func TestGenFunctionReturnsFnMatchingModuleDefinition(t *testing.T) {
	x := fp64Var("x", 1)
	isNaN := &ast.Node{Kind: ast.FPA_IS_NAN, Sort: ast.Bool, Args: []*ast.Node{x}, Hash: 2}

	g := NewGenerator()
	fn := g.GenFunction(isNaN)

	if fn.Name() != "gofunc" {
		t.Errorf("GenFunction's returned *ir.Func name = %q, want %q", fn.Name(), "gofunc")
	}
	found := false
	for _, f := range g.Module().Funcs {
		if f == fn {
			found = true
		}
	}
	if !found {
		t.Error("GenFunction's returned *ir.Func should be the same value the module holds")
	}
}
