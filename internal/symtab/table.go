package symtab

import (
	"fmt"

	"gofpsat/internal/ast"
)

func hashName(hash uint64) string {
	return fmt.Sprintf("expr_%d", hash)
}

// tag contributes a non-zero bit to the table key only for NegatedExpr, so
// that positive-polarity expressions, constants, and variables share a
// keyspace disjoint from negated expressions (§3 invariant).
func tag(kind Kind) uint64 {
	if kind == KindNegatedExpr {
		return 1
	}
	return 0
}

func key(hash uint64, kind Kind) uint64 {
	return hash<<1 | tag(kind)
}

// Table is the flat hash<<1|tag -> Symbol map from §4.2. It is owned
// exclusively by one translation pass; no locking is required (§5).
type Table struct {
	entries map[uint64]*Symbol
}

// NewTable returns an empty symbol table.
func NewTable() *Table {
	return &Table{entries: make(map[uint64]*Symbol)}
}

// Insert returns the existing Symbol for (kind, source.Hash) if one was
// already created in this translation, else creates, stores, and returns a
// fresh one. The second return value reports whether a new Symbol was
// created — callers use it to decide whether to recurse into source's
// children (§4.4 "Traversal hygiene": memoization caps recursion at the
// AST's distinct (node, polarity) pairs).
func (t *Table) Insert(kind Kind, source *ast.Node) (*Symbol, bool) {
	k := key(source.Hash, kind)
	if existing, ok := t.entries[k]; ok {
		return existing, false
	}
	sym := &Symbol{
		Kind:   kind,
		Source: source,
		Name:   name(source.Hash, kind),
		ID:     -1,
	}
	t.entries[k] = sym
	return sym, true
}

// Lookup returns the Symbol previously inserted for (kind, source.Hash), if
// any.
func (t *Table) Lookup(kind Kind, source *ast.Node) (*Symbol, bool) {
	sym, ok := t.entries[key(source.Hash, kind)]
	return sym, ok
}

// Len reports the number of distinct (kind, hash) pairs translated so far —
// used by tests asserting the memoization invariant (§8).
func (t *Table) Len() int { return len(t.entries) }
