package smtlib

import (
	"strconv"
	"strings"

	"gofpsat/internal/ast"
	"gofpsat/internal/solveerr"
)

// Program is one parsed SMT-LIBv2 script: its asserted formulas (already
// conjoined into a single root, since every downstream stage — analyzer,
// irgen, codegen — walks one formula at a time) plus the variables
// declared along the way, in declaration order.
type Program struct {
	Root        *ast.Node // TRUE if the script asserted nothing
	Vars        []*ast.Node
	SawCheckSat bool
}

// Builder lowers a parsed S-expression script into internal/ast.Node trees,
// interning every node through Pool so the symbol table's hash-keyed
// lookups see the same *Node for structurally identical sub-formulas.
//
// Grounded on the teacher's internal/parser style of one method per
// grammar production, generalized from Sentra's statement/expression
// split to SMT-LIB's single S-expression grammar.
type Builder struct {
	pool *ast.Pool
	vars map[string]*ast.Node
	file string
}

func NewBuilder(pool *ast.Pool) *Builder {
	return &Builder{pool: pool, vars: make(map[string]*ast.Node)}
}

func NewBuilderWithFile(pool *ast.Pool, file string) *Builder {
	return &Builder{pool: pool, vars: make(map[string]*ast.Node), file: file}
}

// Build walks every top-level command in order, collecting declared
// variables and asserted formulas into one Program.
func (b *Builder) Build(commands []SExpr) *Program {
	var asserts []*ast.Node
	prog := &Program{}
	for _, cmd := range commands {
		if cmd.IsAtom() || len(cmd.List) == 0 {
			b.fail(cmd.Tok, "expected a command list")
		}
		head := cmd.List[0]
		if !head.IsAtom() {
			b.fail(head.Tok, "expected a command keyword")
		}
		switch head.Tok.Lexeme {
		case "declare-fun", "declare-const":
			prog.Vars = append(prog.Vars, b.declareFun(cmd))
		case "assert":
			if len(cmd.List) != 2 {
				b.fail(head.Tok, "assert takes exactly one argument")
			}
			asserts = append(asserts, b.expr(cmd.List[1]))
		case "check-sat":
			prog.SawCheckSat = true
		case "set-info", "set-logic", "set-option", "exit", "get-model":
			// No semantic effect on the translated formula.
		default:
			b.fail(head.Tok, "unsupported command '"+head.Tok.Lexeme+"'")
		}
	}
	prog.Root = b.conjoin(asserts)
	return prog
}

func (b *Builder) conjoin(asserts []*ast.Node) *ast.Node {
	if len(asserts) == 0 {
		return b.pool.Intern(&ast.Node{Kind: ast.TRUE, Sort: ast.Bool})
	}
	root := asserts[0]
	for _, a := range asserts[1:] {
		root = b.pool.Intern(&ast.Node{Kind: ast.AND, Sort: ast.Bool, Args: []*ast.Node{root, a}})
	}
	return root
}

// declareFun handles both "(declare-fun x () SORT)" and the shorthand
// "(declare-const x SORT)", the only two shapes this grammar's nullary FP
// variables ever appear as.
func (b *Builder) declareFun(cmd SExpr) *ast.Node {
	if len(cmd.List) < 3 {
		b.fail(cmd.List[0].Tok, "malformed variable declaration")
	}
	nameExpr := cmd.List[1]
	if !nameExpr.IsAtom() {
		b.fail(nameExpr.Tok, "expected a variable name")
	}
	name := nameExpr.Tok.Lexeme

	sortIdx := 2
	if cmd.List[0].Tok.Lexeme == "declare-fun" {
		// cmd.List[2] must be the empty argument list "()".
		if len(cmd.List) < 4 {
			b.fail(nameExpr.Tok, "malformed declare-fun")
		}
		sortIdx = 3
	}
	sort := b.sort(cmd.List[sortIdx])
	v := b.pool.Intern(&ast.Node{Kind: ast.UNINTERPRETED, Sort: sort, Name: name})
	b.vars[name] = v
	return v
}

// sort parses one of the handful of sort expressions this grammar needs:
// "Bool" and "(_ FloatingPoint eb sb)".
func (b *Builder) sort(e SExpr) ast.Sort {
	if e.IsAtom() {
		if e.Tok.Lexeme == "Bool" {
			return ast.Bool
		}
		b.fail(e.Tok, "unrecognized sort '"+e.Tok.Lexeme+"'")
	}
	if len(e.List) == 4 && e.List[0].IsAtom() && e.List[0].Tok.Lexeme == "_" &&
		e.List[1].IsAtom() && e.List[1].Tok.Lexeme == "FloatingPoint" {
		eb, _ := strconv.Atoi(e.List[2].Tok.Lexeme)
		sb, _ := strconv.Atoi(e.List[3].Tok.Lexeme)
		return ast.Sort{Kind: ast.SortFP, EBits: eb, SBits: sb, DeclString: sExprText(e)}
	}
	b.fail(firstTok(e), "unrecognized sort expression")
	panic("unreachable")
}

// expr lowers one term/formula S-expression into an ast.Node, resolving
// variable references against previously declared names.
func (b *Builder) expr(e SExpr) *ast.Node {
	if e.IsAtom() {
		return b.atom(e.Tok)
	}
	if len(e.List) == 0 {
		b.fail(e.Tok, "empty application")
	}
	head := e.List[0]

	// "((_ to_fp eb sb) rm x)": an indexed function symbol as the head.
	if !head.IsAtom() {
		kind, sort, ok := b.indexedHead(head)
		if !ok {
			b.fail(firstTok(head), "unsupported indexed function application")
		}
		args := b.args(e.List[1:])
		n := &ast.Node{Kind: kind, Sort: sort, Args: args}
		if kind == ast.FPA_TO_FP && len(args) > 0 {
			n.RoundingMode = args[0].Kind
		}
		return b.pool.Intern(n)
	}

	if head.Tok.Lexeme == "fp" && len(e.List) == 4 {
		return b.fpLiteral(e.List[1], e.List[2], e.List[3])
	}

	kind, isBool, ok := nameToKind(head.Tok.Lexeme)
	if !ok {
		b.fail(head.Tok, "unsupported operator '"+head.Tok.Lexeme+"'")
	}
	args := b.args(e.List[1:])
	n := &ast.Node{Kind: kind, Sort: resultSort(isBool, args), Args: args}
	if rm := RoundingModeArg(kind, args); rm != ast.UNKNOWN {
		n.RoundingMode = rm
	}
	return b.pool.Intern(n)
}

// RoundingModeArg returns the rounding-mode operand's own Kind when an
// application of kind takes one as its first argument, mirroring
// internal/translate.RoundingModeArg's reach for the same information on
// the already-built tree.
func RoundingModeArg(kind ast.Kind, args []*ast.Node) ast.Kind {
	switch kind {
	case ast.FPA_TO_FP, ast.FPA_ADD, ast.FPA_SUB, ast.FPA_MUL, ast.FPA_DIV:
		if len(args) > 0 {
			return args[0].Kind
		}
	}
	return ast.UNKNOWN
}

// resultSort picks the sort for a freshly built application: boolean
// operators always produce Bool; every other operator's sort is the
// common FP sort of its (non-rounding-mode) operands, since this grammar
// never mixes FP32 and FP64 within one application.
func resultSort(isBool bool, args []*ast.Node) ast.Sort {
	if isBool {
		return ast.Bool
	}
	for _, a := range args {
		if a.Sort.Kind == ast.SortFP {
			return a.Sort
		}
	}
	return ast.FP64
}

func (b *Builder) args(exprs []SExpr) []*ast.Node {
	out := make([]*ast.Node, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, b.expr(e))
	}
	return out
}

// indexedHead recognizes "(_ to_fp eb sb)", the one indexed function
// symbol this grammar's formulas apply.
func (b *Builder) indexedHead(e SExpr) (ast.Kind, ast.Sort, bool) {
	if len(e.List) == 4 && e.List[0].IsAtom() && e.List[0].Tok.Lexeme == "_" &&
		e.List[1].IsAtom() && e.List[1].Tok.Lexeme == "to_fp" {
		eb, _ := strconv.Atoi(e.List[2].Tok.Lexeme)
		sb, _ := strconv.Atoi(e.List[3].Tok.Lexeme)
		sort := ast.FP64
		if eb == ast.FP32.EBits && sb == ast.FP32.SBits {
			sort = ast.FP32
		}
		return ast.FPA_TO_FP, sort, true
	}
	return ast.UNKNOWN, ast.Sort{}, false
}

// fpLiteral builds the three-argument "(fp sign exp sig)" bit-exact FP
// numeral form, keeping each operand's raw bit-vector text the way
// internal/fpa's decoders expect it.
func (b *Builder) fpLiteral(sign, exp, sig SExpr) *ast.Node {
	if !sign.IsAtom() || !exp.IsAtom() || !sig.IsAtom() {
		b.fail(firstTok(sign), "malformed 'fp' literal")
	}
	sort := ast.FP64
	if bitWidth(exp.Tok.Lexeme) == ast.FP32.EBits {
		sort = ast.FP32
	}
	return b.pool.Intern(&ast.Node{
		Kind: ast.BNUM, Sort: sort,
		Sign: sign.Tok.Lexeme, Exp: exp.Tok.Lexeme, Sig: sig.Tok.Lexeme,
	})
}

func (b *Builder) atom(tok Token) *ast.Node {
	switch tok.Type {
	case TokenNumeral, TokenBinary, TokenHex:
		return b.pool.Intern(&ast.Node{Kind: ast.BNUM, Sort: ast.FP64, Text: tok.Lexeme})
	}
	switch tok.Lexeme {
	case "true":
		return b.pool.Intern(&ast.Node{Kind: ast.TRUE, Sort: ast.Bool})
	case "false":
		return b.pool.Intern(&ast.Node{Kind: ast.FALSE, Sort: ast.Bool})
	case "RNE", "roundNearestTiesToEven":
		return b.pool.Intern(&ast.Node{Kind: ast.FPA_RM_NEAREST_TIES_TO_EVEN, Sort: ast.Sort{Kind: ast.SortOther}})
	case "RNA", "RTP", "RTN", "RTZ", "roundNearestTiesToAway", "roundTowardPositive",
		"roundTowardNegative", "roundTowardZero":
		return b.pool.Intern(&ast.Node{Kind: ast.FPA_RM_OTHER, Sort: ast.Sort{Kind: ast.SortOther}})
	case "+oo":
		return b.pool.Intern(&ast.Node{Kind: ast.FPA_PLUS_INF, Sort: ast.FP64})
	case "-oo":
		return b.pool.Intern(&ast.Node{Kind: ast.FPA_MINUS_INF, Sort: ast.FP64})
	case "NaN":
		return b.pool.Intern(&ast.Node{Kind: ast.FPA_NAN, Sort: ast.FP64})
	case "+zero":
		return b.pool.Intern(&ast.Node{Kind: ast.FPA_PLUS_ZERO, Sort: ast.FP64})
	case "-zero":
		return b.pool.Intern(&ast.Node{Kind: ast.FPA_MINUS_ZERO, Sort: ast.FP64})
	}
	if v, ok := b.vars[tok.Lexeme]; ok {
		return v
	}
	b.fail(tok, "reference to undeclared symbol '"+tok.Lexeme+"'")
	panic("unreachable")
}

// nameToKind maps a function symbol's name to its ast.Kind and whether it
// is one of the grammar's boolean-sorted operators (resultSort's other
// branch derives a non-boolean operator's sort from its own operands).
func nameToKind(name string) (ast.Kind, bool, bool) {
	switch name {
	case "and":
		return ast.AND, true, true
	case "or":
		return ast.OR, true, true
	case "not":
		return ast.NOT, true, true
	case "=":
		return ast.EQ, true, true
	case "fp.eq":
		return ast.FPA_EQ, true, true
	case "fp.lt":
		return ast.FPA_LT, true, true
	case "fp.gt":
		return ast.FPA_GT, true, true
	case "fp.leq":
		return ast.FPA_LE, true, true
	case "fp.geq":
		return ast.FPA_GE, true, true
	case "fp.isNaN":
		return ast.FPA_IS_NAN, true, true
	case "fp.isInfinite":
		return ast.FPA_IS_INF, true, true
	case "fp.isZero":
		return ast.FPA_IS_ZERO, true, true
	case "fp.isNormal":
		return ast.FPA_IS_NORMAL, true, true
	case "fp.isSubnormal":
		return ast.FPA_IS_SUBNORMAL, true, true
	case "fp.isPositive":
		return ast.FPA_IS_POSITIVE, true, true
	case "fp.isNegative":
		return ast.FPA_IS_NEGATIVE, true, true
	case "fp.add":
		return ast.FPA_ADD, false, true
	case "fp.sub":
		return ast.FPA_SUB, false, true
	case "fp.mul":
		return ast.FPA_MUL, false, true
	case "fp.div":
		return ast.FPA_DIV, false, true
	case "fp.rem":
		return ast.FPA_REM, false, true
	case "fp.neg":
		return ast.FPA_NEG, false, true
	case "fp.abs":
		return ast.FPA_ABS, false, true
	case "fp.min":
		return ast.FPA_MIN, false, true
	case "fp.max":
		return ast.FPA_MAX, false, true
	case "fp.sqrt":
		return ast.FPA_SQRT, false, true
	case "fp.fma":
		return ast.FPA_FMA, false, true
	case "fp.roundToIntegral":
		return ast.FPA_ROUND_TO_INTEGRAL, false, true
	default:
		return ast.UNKNOWN, false, false
	}
}

func (b *Builder) fail(tok Token, msg string) {
	panic(solveerr.NewParseError(msg, b.file, tok.Line))
}

func firstTok(e SExpr) Token {
	if e.IsAtom() {
		return e.Tok
	}
	if len(e.List) == 0 {
		return Token{}
	}
	return firstTok(e.List[0])
}

// bitWidth reports the bit count a "#b.../#x..." literal token encodes,
// used to tell an FP32 three-argument literal's 8-bit exponent field from
// an FP64 one's 11-bit field.
func bitWidth(lexeme string) int {
	if len(lexeme) < 2 {
		return 0
	}
	switch lexeme[1] {
	case 'b':
		return len(lexeme) - 2
	case 'x':
		return (len(lexeme) - 2) * 4
	default:
		return 0
	}
}

func sExprText(e SExpr) string {
	if e.IsAtom() {
		return e.Tok.Lexeme
	}
	parts := make([]string, len(e.List))
	for i, c := range e.List {
		parts[i] = sExprText(c)
	}
	return "(" + strings.Join(parts, " ") + ")"
}
