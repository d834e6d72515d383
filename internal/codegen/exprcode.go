package codegen

import (
	"fmt"
	"strings"

	"gofpsat/internal/ast"
	"gofpsat/internal/symtab"
)

// genExprCode appends sym's const-double definition to buf, dispatching
// on e's operator per §4.4's translation table. args holds e's
// already-translated arguments in source order, including any leading
// rounding-mode argument — callers that need to skip it index past it
// themselves (ADD/SUB/MUL/DIV/TO_FP).
func (g *Generator) genExprCode(buf *strings.Builder, sym *symtab.Symbol, e *ast.Node, args []*symtab.Symbol) {
	buf.WriteString("const double ")
	buf.WriteString(sym.Name)
	buf.WriteString(" = ")
	negated := sym.Kind == symtab.KindNegatedExpr

	switch e.Kind {
	case ast.TRUE:
		if negated {
			buf.WriteString("1.0;\n")
		} else {
			buf.WriteString("0.0;\n")
		}
	case ast.FALSE:
		if negated {
			buf.WriteString("0.0;\n")
		} else {
			buf.WriteString("1.0;\n")
		}
	case ast.EQ, ast.FPA_EQ:
		if negated {
			buf.WriteString(genNotEqCompExpr(args[0], args[1]))
		} else {
			buf.WriteString(genEqCompExpr(args[0], args[1]))
		}
	case ast.NOT:
		buf.WriteString(args[0].Name + ";\n")
	case ast.AND:
		if negated {
			buf.WriteString(genMultiArgExpr(" * ", args))
		} else {
			buf.WriteString(genMultiArgExpr(" + ", args))
		}
	case ast.OR:
		if negated {
			buf.WriteString(genMultiArgExpr(" + ", args))
		} else {
			buf.WriteString(genMultiArgExpr(" * ", args))
		}
	case ast.FPA_PLUS_INF:
		buf.WriteString("INFINITY;\n")
	case ast.FPA_MINUS_INF:
		buf.WriteString("-INFINITY;\n")
	case ast.FPA_NAN:
		buf.WriteString("NAN;\n")
	case ast.FPA_PLUS_ZERO:
		buf.WriteString("0;\n")
	case ast.FPA_MINUS_ZERO:
		buf.WriteString("-0;\n")
	case ast.FPA_ADD:
		buf.WriteString(genBinArgExpr(" + ", args[1], args[2]))
	case ast.FPA_SUB:
		buf.WriteString(genBinArgExpr(" - ", args[1], args[2]))
	case ast.FPA_NEG:
		buf.WriteString("-" + args[0].Name + ";\n")
	case ast.FPA_MUL:
		buf.WriteString(genBinArgExpr(" * ", args[1], args[2]))
	case ast.FPA_DIV:
		buf.WriteString(genBinArgExpr(" / ", args[1], args[2]))
	case ast.FPA_REM:
		// fmod, not "%" — "%" is integer-only in C, and FPA_REM carries no
		// rounding-mode argument (Design Notes: index from arg(0), arg(1)).
		buf.WriteString(genCallExpr("fmod", args[0], args[1]))
	case ast.FPA_ABS:
		// fabs, not abs — abs() truncates to int in C.
		buf.WriteString("fabs(" + args[0].Name + ");\n")
	case ast.FPA_LT:
		if negated {
			buf.WriteString(genBinArgCompExpr(" >= ", args[0], args[1]))
		} else {
			buf.WriteString(genBinArgCompExpr2(" < ", args[0], args[1]))
		}
	case ast.FPA_GT:
		if negated {
			buf.WriteString(genBinArgCompExpr(" <= ", args[0], args[1]))
		} else {
			buf.WriteString(genBinArgCompExpr2(" > ", args[0], args[1]))
		}
	case ast.FPA_LE:
		if negated {
			buf.WriteString(genBinArgCompExpr2(" > ", args[0], args[1]))
		} else {
			buf.WriteString(genBinArgCompExpr(" <= ", args[0], args[1]))
		}
	case ast.FPA_GE:
		if negated {
			buf.WriteString(genBinArgCompExpr2(" < ", args[0], args[1]))
		} else {
			buf.WriteString(genBinArgCompExpr(" >= ", args[0], args[1]))
		}
	case ast.FPA_TO_FP:
		buf.WriteString(args[len(args)-1].Name + ";\n")
	default:
		g.hasUnsupportedExpr = true
		fmt.Fprintf(buf, "0.0; /* unsupported: %s */\n", e.Kind)
	}
}

func genBinArgExpr(op string, a, b *symtab.Symbol) string {
	return a.Name + op + b.Name + ";\n"
}

func genCallExpr(fn string, a, b *symtab.Symbol) string {
	return fn + "(" + a.Name + ", " + b.Name + ");\n"
}

func genMultiArgExpr(op string, args []*symtab.Symbol) string {
	if len(args) == 2 {
		return genBinArgExpr(op, args[0], args[1])
	}
	var b strings.Builder
	for _, a := range args[:len(args)-1] {
		b.WriteString(a.Name)
		b.WriteString(op)
	}
	b.WriteString(args[len(args)-1].Name)
	b.WriteString(";\n")
	return b.String()
}

// genBinArgCompExpr handles the non-strict orderings (<= and >=, whether
// from a positive LE/GE or a negated LT/GT): a == b already satisfies
// them, so the distance term is the plain fp64_dis.
func genBinArgCompExpr(op string, a, b *symtab.Symbol) string {
	return "(" + a.Name + op + b.Name + ")? 0: " + funDis + "(" + a.Name + "," + b.Name + ");\n"
}

// genBinArgCompExpr2 handles the strict orderings (< and >, whether from a
// positive LT/GT or a negated LE/GE): the "+ 1" keeps the objective
// strictly positive when a equals b, since fp64_dis(a,a) is zero.
func genBinArgCompExpr2(op string, a, b *symtab.Symbol) string {
	return "(" + a.Name + op + b.Name + ")? 0: " + funDis + "(" + a.Name + ", " + b.Name + ") + 1;\n"
}

func genEqCompExpr(a, b *symtab.Symbol) string {
	return funDis + "(" + a.Name + "," + b.Name + ");\n"
}

func genNotEqCompExpr(a, b *symtab.Symbol) string {
	return "(" + a.Name + " != " + b.Name + ")? 0: 1 ;\n"
}
