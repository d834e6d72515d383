// Package validator implements the model validator from §4.8: closing the
// gap between "the optimizer's objective reached zero" and "the formula
// actually holds at full precision" by re-grounding the optimizer's
// witness into the original formula and deciding it directly.
//
// Grounded on original_source/src/Optimizer/ModelValidator.{h,cpp}. That
// file declares two ModelValidator shapes with diverging semantics: one
// re-substitutes through the SMT toolkit's own substitute() and asks the
// decision procedure; the other walks and mutates the tree with a
// visited-set and never finishes the check it starts (its isValid always
// returns false). The first is the intended, correct one; the second is
// dead code and is not reimplemented here.
package validator

import (
	"gofpsat/internal/ast"
	"gofpsat/internal/fpa"
	"gofpsat/internal/irgen"
	"gofpsat/internal/symtab"
)

// Checker is the injected decision-procedure collaborator (§1): deciding
// whether a fully grounded (variable-free, quantifier-free) formula holds.
// No Z3/SMT Go binding exists anywhere in the retrieval pack, so the
// shipped implementation (DirectEvaluator) is a direct ground-term
// evaluator — complete for this purpose, since nothing free remains once
// Validator.IsValid has substituted in the optimizer's witness.
type Checker interface {
	Check(root *ast.Node) (bool, error)
}

// Validator re-grounds an optimizer witness into the original formula
// (§4.8's two-step substitution order) and asks a Checker whether it
// holds.
type Validator struct {
	checker Checker
}

// NewValidator returns a Validator backed by checker, or by a
// DirectEvaluator if checker is nil.
func NewValidator(checker Checker) *Validator {
	if checker == nil {
		checker = NewDirectEvaluator()
	}
	return &Validator{checker: checker}
}

// IsValid substitutes model into root: first undoing every FPA-wrap
// (replacing the wrapping FPA_TO_FP node with a numeral built at the
// wrapped variable's own declared precision), then substituting every
// remaining plain variable with a numeral at its declared precision — and
// asks the Checker whether the fully grounded result holds.
func (v *Validator) IsValid(root *ast.Node, vars []*symtab.IrSymbol, wraps []irgen.WrappedVar, model []float64) (bool, error) {
	memo := make(map[*ast.Node]*ast.Node, len(vars)+len(wraps))

	for _, w := range wraps {
		if w.Inner.ID < 0 || w.Inner.ID >= len(model) {
			continue
		}
		memo[w.Wrapper.Source] = numeralNode(model[w.Inner.ID], w.Inner.Source.Sort)
	}
	for _, sym := range vars {
		if sym.ID < 0 || sym.ID >= len(model) {
			continue
		}
		if _, already := memo[sym.Source]; already {
			continue
		}
		memo[sym.Source] = numeralNode(model[sym.ID], sym.Source.Sort)
	}

	ground := substitute(root, memo)
	return v.checker.Check(ground)
}

// IsValidFor is a convenience wrapper over IsValid using the variable and
// wrap bindings an irgen.Generator already recorded while building root's
// objective function.
func (v *Validator) IsValidFor(g *irgen.Generator, root *ast.Node, model []float64) (bool, error) {
	return v.IsValid(root, g.Vars(), g.WrappedVars(), model)
}

// substitute rebuilds e with every node present in memo replaced by its
// mapped value, preserving sharing: a node reached through more than one
// parent (a diamond in the formula DAG) is rebuilt once and the same
// replacement is reused, rather than being re-expanded per occurrence.
func substitute(e *ast.Node, memo map[*ast.Node]*ast.Node) *ast.Node {
	if r, ok := memo[e]; ok {
		return r
	}
	if len(e.Args) == 0 {
		memo[e] = e
		return e
	}
	args := make([]*ast.Node, len(e.Args))
	changed := false
	for i, a := range e.Args {
		args[i] = substitute(a, memo)
		if args[i] != a {
			changed = true
		}
	}
	if !changed {
		memo[e] = e
		return e
	}
	cp := *e
	cp.Args = args
	memo[e] = &cp
	return &cp
}

// numeralNode builds the grounded FP literal §4.8 substitutes in for one
// variable or undone wrap, at sort's declared precision.
func numeralNode(v float64, sort ast.Sort) *ast.Node {
	if sort.Kind == ast.SortFP && fpa.IsFloat32(sort.EBits, sort.SBits) {
		sign, exp, sig := fpa.Float32ToSignExpSig(float32(v))
		return &ast.Node{Kind: ast.BNUM, Sort: sort, Sign: sign, Exp: exp, Sig: sig}
	}
	sign, exp, sig := fpa.Float64ToSignExpSig(v)
	return &ast.Node{Kind: ast.BNUM, Sort: sort, Sign: sign, Exp: exp, Sig: sig}
}
