package symtab

import (
	"github.com/llir/llvm/ir/value"

	"gofpsat/internal/ast"
)

// IrSymbol extends Symbol with the IR backend's extra attributes, via
// composition rather than inheritance (spec.md Design Notes, "Two-level
// lifecycle (Symbol extends IR-Symbol)": "in a systems language without
// inheritance, represent the two with composition").
type IrSymbol struct {
	Symbol
	Value value.Value // the compiled SSA value for this sub-expression
}

// IrTable is symtab.Table specialized to IrSymbol, used only by the JIT IR
// backend (internal/irgen). It is a distinct type (not a generic
// instantiation of Table) because IrSymbol carries state — the SSA Value —
// that the bare Table/Symbol pair used by the source-text backend never
// needs.
type IrTable struct {
	entries map[uint64]*IrSymbol
}

func NewIrTable() *IrTable {
	return &IrTable{entries: make(map[uint64]*IrSymbol)}
}

func (t *IrTable) Insert(kind Kind, source *ast.Node) (*IrSymbol, bool) {
	k := key(source.Hash, kind)
	if existing, ok := t.entries[k]; ok {
		return existing, false
	}
	sym := &IrSymbol{Symbol: Symbol{Kind: kind, Source: source, Name: name(source.Hash, kind), ID: -1}}
	t.entries[k] = sym
	return sym, true
}

func (t *IrTable) Lookup(kind Kind, source *ast.Node) (*IrSymbol, bool) {
	sym, ok := t.entries[key(source.Hash, kind)]
	return sym, ok
}

func (t *IrTable) Len() int { return len(t.entries) }
