// Package codegen implements the source-text backend of §4.5: translating
// one formula's AST into a standalone C objective function compatible with
// NLopt's nlopt_func signature.
//
// Grounded on original_source/src/CodeGen/FPExprCodeGenerator.{h,cpp} and
// CodeGen.{h,cpp}; the shared de-Morgan polarity walk lives in
// gofpsat/internal/translate so both this backend and internal/irgen drive
// it identically.
package codegen

import (
	"fmt"
	"strings"

	"gofpsat/internal/ast"
	"gofpsat/internal/fpa"
	"gofpsat/internal/symtab"
	"gofpsat/internal/translate"
)

const (
	funInput = "x"
	funDis   = "fp64_dis"
)

// FuncSignature is the fixed nlopt_func-compatible C signature every
// generated objective function shares.
func FuncSignature(funcName string) string {
	return fmt.Sprintf("double %s(unsigned n, const double * %s, double * grad, void * data)", funcName, funInput)
}

// Generator translates one formula's AST into one C function body,
// memoizing shared sub-expressions across the translation through its own
// symbol table. A Generator is single-use: construct a fresh one per
// formula.
type Generator struct {
	table *symtab.Table
	vars  []*symtab.Symbol

	hasUnsupportedExpr bool
	hasInvalidConst    bool
}

// NewGenerator returns a Generator ready to translate one formula.
func NewGenerator() *Generator {
	return &Generator{table: symtab.NewTable()}
}

// VarCount reports how many distinct FP variables were assigned a slot in
// the objective function's input vector.
func (g *Generator) VarCount() int { return len(g.vars) }

// HasUnsupportedExpr reports whether translation hit an operator outside
// the translation table (§4.4) and emitted a placeholder for it.
func (g *Generator) HasUnsupportedExpr() bool { return g.hasUnsupportedExpr }

// HasInvalidConst reports whether translation hit a numeral that never
// resolved to an FP sort.
func (g *Generator) HasInvalidConst() bool { return g.hasInvalidConst }

// GenFuncCode translates root into one complete C function definition
// named funcName.
func (g *Generator) GenFuncCode(funcName string, root *ast.Node) string {
	var buf strings.Builder
	buf.WriteString(FuncSignature(funcName))
	buf.WriteString("{ \n")
	sym := g.walk(&buf, root, false)
	fmt.Fprintf(&buf, "return %s;\n", sym.Name)
	buf.WriteString("}\n")
	return buf.String()
}

func varKind(e *ast.Node) symtab.Kind {
	if fpa.IsFloat32VarDecl(e) {
		return symtab.KindFP32Var
	}
	return symtab.KindFP64Var
}

// walk is genFuncCodeRecursive: translate e under inherited polarity,
// emitting its const-double definition (and those of any not-yet-seen
// sub-expressions) into buf, and returning its memoized Symbol.
func (g *Generator) walk(buf *strings.Builder, e *ast.Node, inherited bool) *symtab.Symbol {
	if e.Kind == ast.BNUM {
		return g.genNumeral(buf, e)
	}

	if fpa.IsFPVar(e) {
		sym, fresh := g.table.Insert(varKind(e), e)
		if fresh {
			sym.ID = len(g.vars)
			fmt.Fprintf(buf, "const double %s = %s[%d] ;\n", sym.Name, funInput, sym.ID)
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
	argSyms := make([]*symtab.Symbol, 0, len(e.Args))
	for _, a := range e.Args {
		argSyms = append(argSyms, g.walk(buf, a, childPolarity))
	}
	g.genExprCode(buf, sym, e, argSyms)
	return sym
}

func (g *Generator) genNumeral(buf *strings.Builder, e *ast.Node) *symtab.Symbol {
	if e.Sort.Kind == ast.SortFP && fpa.IsFloat32(e.Sort.EBits, e.Sort.SBits) {
		sym, fresh := g.table.Insert(symtab.KindFP32Const, e)
		if fresh {
			fmt.Fprintf(buf, "const float %s = %sf ;\n", sym.Name, formatFloat32(fpa.ToFloat32(e)))
		}
		return sym
	}
	if e.Sort.Kind == ast.SortFP && fpa.IsFloat64(e.Sort.EBits, e.Sort.SBits) {
		sym, fresh := g.table.Insert(symtab.KindFP64Const, e)
		if fresh {
			fmt.Fprintf(buf, "const double %s = %s ;\n", sym.Name, formatFloat64(fpa.ToFloat64(e)))
		}
		return sym
	}

	// A numeral that never resolved to an FP sort: the analyzer (§4.3)
	// only flags these (HasNonFPConst) and does not stop codegen. Carry the
	// literal text through, with its leading character blanked, mirroring
	// the original AST-dump fallback.
	g.hasInvalidConst = true
	sym, fresh := g.table.Insert(symtab.KindFP64Const, e)
	if fresh {
		text := e.Text
		if len(text) > 0 {
			text = "0" + text[1:]
		}
		fmt.Fprintf(buf, "const double %s = %s ;\n", sym.Name, text)
	}
	return sym
}
