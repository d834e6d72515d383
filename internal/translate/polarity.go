// Package translate holds the backend-agnostic half of §4.4's
// satisfiability-as-minimization translation: the de-Morgan polarity
// propagation rules and the Symbol-kind classification they feed into.
// Both internal/codegen and internal/irgen call into this package so the
// polarity walk itself — the part spec.md's "De-Morgan correctness"
// testable property (§8) is about — exists exactly once.
package translate

import (
	"gofpsat/internal/ast"
	"gofpsat/internal/fpa"
	"gofpsat/internal/symtab"
)

// IsBooleanNode reports whether e's own value is Boolean-sorted, i.e.
// whether polarity is meaningful on it at all.
func IsBooleanNode(e *ast.Node) bool {
	return e.Sort.Kind == ast.SortBool
}

// EffectivePolarity is the polarity a node itself is translated under: on
// entry to a non-Boolean node, §4.4 forces is_negated to false regardless
// of what was inherited from the parent; a Boolean node simply uses the
// inherited value.
func EffectivePolarity(e *ast.Node, inherited bool) bool {
	if !IsBooleanNode(e) {
		return false
	}
	return inherited
}

// ChildPolarity is the polarity propagated down to e's children, given e's
// own effective polarity. NOT flips it; AND/OR forward it unchanged;
// every other Boolean leaf operator (comparisons, EQ, FPA_EQ, constants)
// consumes it locally and always recurses with false, since their
// children are arithmetic (non-Boolean) operands in any case.
func ChildPolarity(e *ast.Node, effective bool) bool {
	switch e.Kind {
	case ast.NOT:
		return !effective
	case ast.AND, ast.OR:
		return effective
	default:
		return false
	}
}

// ClassifyKind picks the symtab.Kind a node is stored under, given its
// effective polarity. Negated-polarity Boolean nodes always get
// KindNegatedExpr regardless of what kind of node they are — this is what
// lets lookup disambiguate the two lowerings of the same AST node under
// opposite polarities (§4.6, "the Symbol-kind for Boolean nodes that
// consume the negation is still NegatedExpr").
func ClassifyKind(e *ast.Node, effective bool) symtab.Kind {
	if effective {
		return symtab.KindNegatedExpr
	}
	if fpa.IsFPVar(e) {
		if fpa.IsFloat32VarDecl(e) {
			return symtab.KindFP32Var
		}
		return symtab.KindFP64Var
	}
	if IsNumeralKind(e.Kind) {
		if fpa.IsFloat32(e.Sort.EBits, e.Sort.SBits) {
			return symtab.KindFP32Const
		}
		return symtab.KindFP64Const
	}
	return symtab.KindExpr
}

// IsNumeralKind reports whether kind denotes a literal floating-point value
// — either a three-argument sign/exponent/significand application (BNUM's
// enclosing node in this AST shape) or one of the five symbolic specials.
func IsNumeralKind(kind ast.Kind) bool {
	switch kind {
	case ast.BNUM, ast.FPA_PLUS_INF, ast.FPA_MINUS_INF, ast.FPA_NAN,
		ast.FPA_PLUS_ZERO, ast.FPA_MINUS_ZERO:
		return true
	default:
		return false
	}
}
