// Package symtab implements the content-addressed symbol table from §3 and
// §4.2 of the specification: a flat map from (expression-hash, polarity) to
// the translated form of that sub-expression.
//
// Grounded on the teacher's own visitor/AST pairing style
// (internal/parser/ast.go's Expr/ExprVisitor split in the teacher repo) for
// the "one stable identifier per node shape" idea, generalized here to a
// hash-keyed table rather than a type switch, per spec.md §4.2's explicit
// flat-hash-map requirement.
package symtab

import "gofpsat/internal/ast"

// Kind is the tagged SymbolKind variant from §3. The zero value, KindUnknown,
// is never produced by Table.Insert.
type Kind int

const (
	KindUnknown Kind = iota
	KindExpr
	KindNegatedExpr
	KindFP32Const
	KindFP64Const
	KindFP32Var
	KindFP64Var
)

var kindNames = [...]string{"Unknown", "Expr", "NegatedExpr", "FP32Const", "FP64Const", "FP32Var", "FP64Var"}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// Symbol is the translated form of one AST node under one polarity. Source
// is borrowed — its lifetime must not outlive the translation pass that
// produced it (§3 "symbol's lifetime ≤ the owning translation pass").
type Symbol struct {
	Kind   Kind
	Source *ast.Node
	Name   string
	ID     int // variable index into the model vector; -1 for non-variables
}

// name builds the deterministic "expr_<hash>"/"expr_<hash>n" identifier
// from §3: only NegatedExpr gets the "n" suffix.
func name(hash uint64, kind Kind) string {
	base := hashName(hash)
	if kind == KindNegatedExpr {
		return base + "n"
	}
	return base
}
