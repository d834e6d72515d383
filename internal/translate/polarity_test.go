package translate

import (
	"testing"

	"gofpsat/internal/ast"
)

func TestEffectivePolarityForcedFalseOnArithmetic(t *testing.T) {
	arith := &ast.Node{Kind: ast.FPA_ADD, Sort: ast.FP64}
	if got := EffectivePolarity(arith, true); got != false {
		t.Errorf("expected arithmetic node to force polarity false, got %v", got)
	}
}

func TestEffectivePolarityPassesThroughOnBoolean(t *testing.T) {
	b := &ast.Node{Kind: ast.AND, Sort: ast.Bool}
	if got := EffectivePolarity(b, true); got != true {
		t.Errorf("expected boolean node to inherit polarity true, got %v", got)
	}
	if got := EffectivePolarity(b, false); got != false {
		t.Errorf("expected boolean node to inherit polarity false, got %v", got)
	}
}

func TestChildPolarityNotFlips(t *testing.T) {
	n := &ast.Node{Kind: ast.NOT, Sort: ast.Bool}
	if ChildPolarity(n, false) != true {
		t.Error("NOT should flip false -> true for children")
	}
	if ChildPolarity(n, true) != false {
		t.Error("NOT should flip true -> false for children")
	}
}

func TestChildPolarityAndOrForwards(t *testing.T) {
	n := &ast.Node{Kind: ast.AND, Sort: ast.Bool}
	if ChildPolarity(n, true) != true {
		t.Error("AND should forward polarity unchanged")
	}
	o := &ast.Node{Kind: ast.OR, Sort: ast.Bool}
	if ChildPolarity(o, false) != false {
		t.Error("OR should forward polarity unchanged")
	}
}

func TestChildPolarityLeafResetsToFalse(t *testing.T) {
	n := &ast.Node{Kind: ast.FPA_LT, Sort: ast.Bool}
	if ChildPolarity(n, true) != false {
		t.Error("comparison leaves should always recurse with polarity false")
	}
}

func TestClassifyKindNegatedWins(t *testing.T) {
	n := &ast.Node{Kind: ast.FPA_LT, Sort: ast.Bool}
	if k := ClassifyKind(n, true); k.String() != "NegatedExpr" {
		t.Errorf("expected NegatedExpr for any node under negative polarity, got %v", k)
	}
}
