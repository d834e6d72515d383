// Package ast defines the borrowed expression-tree shape this solver
// compiles against. In a full SMT toolkit this type would be supplied by
// the expression-kit API (Z3-style AST nodes); here it is the minimal
// subset §3 of the specification actually reads: an operator kind, a sort,
// argument positions, and a stable hash for memoization.
package ast

// Kind is the operator tag carried by a Node.
type Kind int

const (
	UNKNOWN Kind = iota
	TRUE
	FALSE
	EQ
	NOT
	AND
	OR

	FPA_EQ
	FPA_ADD
	FPA_SUB
	FPA_MUL
	FPA_DIV
	FPA_REM
	FPA_NEG
	FPA_ABS
	FPA_LT
	FPA_GT
	FPA_LE
	FPA_GE
	FPA_IS_NAN
	FPA_IS_INF
	FPA_IS_ZERO
	FPA_IS_NORMAL
	FPA_IS_SUBNORMAL
	FPA_IS_POSITIVE
	FPA_IS_NEGATIVE
	FPA_PLUS_INF
	FPA_MINUS_INF
	FPA_NAN
	FPA_PLUS_ZERO
	FPA_MINUS_ZERO
	FPA_TO_FP
	FPA_RM_NEAREST_TIES_TO_EVEN
	FPA_RM_OTHER

	// Recognized by fpa.IsNonLinearFP for completeness but not present in
	// the translation table (§4.4) — an application of one of these sets
	// the analyzer's "unsupported operator" flag (§7).
	FPA_MIN
	FPA_MAX
	FPA_FMA
	FPA_SQRT
	FPA_ROUND_TO_INTEGRAL

	BNUM
	UNINTERPRETED
)

var kindNames = map[Kind]string{
	UNKNOWN: "UNKNOWN", TRUE: "TRUE", FALSE: "FALSE", EQ: "EQ", NOT: "NOT",
	AND: "AND", OR: "OR", FPA_EQ: "FPA_EQ", FPA_ADD: "FPA_ADD",
	FPA_SUB: "FPA_SUB", FPA_MUL: "FPA_MUL", FPA_DIV: "FPA_DIV",
	FPA_REM: "FPA_REM", FPA_NEG: "FPA_NEG", FPA_ABS: "FPA_ABS",
	FPA_LT: "FPA_LT", FPA_GT: "FPA_GT", FPA_LE: "FPA_LE", FPA_GE: "FPA_GE",
	FPA_IS_NAN: "FPA_IS_NAN", FPA_IS_INF: "FPA_IS_INF",
	FPA_IS_ZERO: "FPA_IS_ZERO", FPA_IS_NORMAL: "FPA_IS_NORMAL",
	FPA_IS_SUBNORMAL: "FPA_IS_SUBNORMAL", FPA_IS_POSITIVE: "FPA_IS_POSITIVE",
	FPA_IS_NEGATIVE: "FPA_IS_NEGATIVE", FPA_PLUS_INF: "FPA_PLUS_INF",
	FPA_MINUS_INF: "FPA_MINUS_INF", FPA_NAN: "FPA_NAN",
	FPA_PLUS_ZERO: "FPA_PLUS_ZERO", FPA_MINUS_ZERO: "FPA_MINUS_ZERO",
	FPA_TO_FP: "FPA_TO_FP",
	FPA_RM_NEAREST_TIES_TO_EVEN: "FPA_RM_NEAREST_TIES_TO_EVEN",
	FPA_RM_OTHER:                "FPA_RM_OTHER",
	FPA_MIN:                     "FPA_MIN", FPA_MAX: "FPA_MAX",
	FPA_FMA: "FPA_FMA", FPA_SQRT: "FPA_SQRT",
	FPA_ROUND_TO_INTEGRAL: "FPA_ROUND_TO_INTEGRAL",
	BNUM:                  "BNUM", UNINTERPRETED: "UNINTERPRETED",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "UNKNOWN"
}

// SortKind distinguishes the handful of SMT-LIB sorts this solver cares
// about; full sort algebra (arrays, datatypes, ...) is out of scope.
type SortKind int

const (
	SortBool SortKind = iota
	SortFP
	SortBV
	SortOther
)

// Sort carries the (ebits, sbits) pair for floating-point sorts and the
// bit-width for bit-vector sorts. DeclString preserves the textual sort as
// it was declared (e.g. "(_ FloatingPoint 8 24)") so is_fp32_var_decl /
// is_fp64_var_decl can recover the declared precision even through a
// FPA_TO_FP wrapper.
type Sort struct {
	Kind       SortKind
	EBits      int
	SBits      int
	BVWidth    int
	DeclString string
}

// FP32 and FP64 are the two precisions this solver supports.
var (
	FP32 = Sort{Kind: SortFP, EBits: 8, SBits: 24, DeclString: "(_ FloatingPoint 8 24)"}
	FP64 = Sort{Kind: SortFP, EBits: 11, SBits: 53, DeclString: "(_ FloatingPoint 11 53)"}
	Bool = Sort{Kind: SortBool}
)

// Node is one application expression in the formula DAG. Nodes are shared
// (the same *Node may appear under several parents); Hash is stable across
// the whole translation so the symbol table can memoize on it.
type Node struct {
	Kind Kind
	Sort Sort
	Args []*Node
	Hash uint64

	// Numeral payload. For BNUM, Text holds the decimal/hex/binary text as
	// written in the source. For the three-argument sign/exponent/
	// significand encoding of an FP literal, Sign/Exp/Sig hold the raw
	// bit-vector literal text of each argument (base-prefixed).
	Text string
	Sign string
	Exp  string
	Sig  string

	// Variable payload (UNINTERPRETED, no args).
	Name string

	// RoundingMode is set on FPA_TO_FP/FPA_ADD/FPA_SUB/FPA_MUL/FPA_DIV's
	// arg(0) when that argument is itself a rounding-mode literal, so
	// callers can check is-RNE without re-inspecting Args[0].
	RoundingMode Kind
}

// NumArgs reports the number of argument positions, matching the AST
// toolkit's num_args() used by is_fp_var.
func (n *Node) NumArgs() int { return len(n.Args) }
