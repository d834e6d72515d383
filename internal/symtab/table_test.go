package symtab

import (
	"testing"

	"gofpsat/internal/ast"
)

func TestInsertMemoizes(t *testing.T) {
	pool := ast.NewPool()
	node := pool.Intern(&ast.Node{Kind: ast.TRUE, Sort: ast.Bool})

	table := NewTable()
	sym1, created1 := table.Insert(KindExpr, node)
	sym2, created2 := table.Insert(KindExpr, node)

	if !created1 {
		t.Fatal("expected first insert to create a new symbol")
	}
	if created2 {
		t.Fatal("expected second insert to reuse the existing symbol")
	}
	if sym1 != sym2 {
		t.Fatal("expected the same *Symbol to be returned for repeated inserts")
	}
	if table.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", table.Len())
	}
}

func TestPositiveAndNegativeShareDisjointKeyspace(t *testing.T) {
	pool := ast.NewPool()
	node := pool.Intern(&ast.Node{Kind: ast.FPA_EQ, Sort: ast.Bool})

	table := NewTable()
	pos, _ := table.Insert(KindExpr, node)
	neg, _ := table.Insert(KindNegatedExpr, node)

	if pos == neg {
		t.Fatal("expected positive and negated symbols to be distinct")
	}
	if pos.Name == neg.Name {
		t.Fatal("expected distinct names for positive and negated polarity")
	}
	if neg.Name != pos.Name+"n" {
		t.Fatalf("expected negated name to be positive name + \"n\", got %q vs %q", neg.Name, pos.Name)
	}
	if table.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", table.Len())
	}
}

func TestVarRegistryAssignsIDsInOrder(t *testing.T) {
	var reg VarRegistry
	a := &IrSymbol{Symbol: Symbol{Name: "a"}}
	b := &IrSymbol{Symbol: Symbol{Name: "b"}}

	if id := reg.Add(a); id != 0 {
		t.Fatalf("expected first variable ID 0, got %d", id)
	}
	if id := reg.Add(b); id != 1 {
		t.Fatalf("expected second variable ID 1, got %d", id)
	}
	if reg.Len() != 2 {
		t.Fatalf("expected length 2, got %d", reg.Len())
	}
}
