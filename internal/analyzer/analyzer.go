// Package analyzer implements the read-only expression analyzer from §4.3:
// a single traversal recording variable/constant counts and feature flags,
// without mutating the input AST.
//
// Grounded on original_source/src/ExprAnalyzer/FPExprAnalyzer.{h,cpp}.
package analyzer

import (
	"fmt"

	"gofpsat/internal/ast"
	"gofpsat/internal/fpa"
)

// Summary is the analyzer's output: the FeatureSummary type from §3.
type Summary struct {
	FP32VarCount      int
	FP64VarCount      int
	ConstCount        int
	IsLinear          bool
	HasNonFPConst     bool
	HasNonRNERound    bool
	HasUnsupportedExpr bool

	seenVars   map[uint64]struct{}
	seenConsts map[uint64]struct{}
}

// New returns a fresh Summary ready for Analyze, with IsLinear defaulting
// to true (it is latched false on the first non-linear FP application).
func New() *Summary {
	return &Summary{
		IsLinear:   true,
		seenVars:   make(map[uint64]struct{}),
		seenConsts: make(map[uint64]struct{}),
	}
}

// Analyze walks e once, updating s in place. Call it on the root of a
// formula; it recurses into children itself.
func (s *Summary) Analyze(e *ast.Node) {
	switch e.Kind {
	case ast.BNUM:
		s.analyzeNumeral(e)
		return
	case ast.FPA_PLUS_INF, ast.FPA_MINUS_INF, ast.FPA_NAN,
		ast.FPA_PLUS_ZERO, ast.FPA_MINUS_ZERO:
		s.analyzeNumeral(e)
		return
	case ast.FPA_RM_NEAREST_TIES_TO_EVEN:
		return
	case ast.FPA_RM_OTHER:
		s.HasNonRNERound = true
		return
	case ast.UNKNOWN:
		s.HasUnsupportedExpr = true
		return
	}

	if fpa.IsFPVar(e) {
		if _, ok := s.seenVars[e.Hash]; !ok {
			s.seenVars[e.Hash] = struct{}{}
			if fpa.IsFloat32VarDecl(e) {
				s.FP32VarCount++
			} else {
				s.FP64VarCount++
			}
		}
		return
	}

	if e.Kind == ast.UNINTERPRETED && e.NumArgs() == 0 {
		// Uninterpreted, non-FP nullary symbol: not a variable this solver
		// can drive, but not a parse failure either.
		s.HasNonFPConst = true
		return
	}

	if fpa.IsNonLinearFP(e) {
		s.IsLinear = false
	}

	switch e.Kind {
	case ast.FPA_MIN, ast.FPA_MAX, ast.FPA_FMA, ast.FPA_SQRT, ast.FPA_ROUND_TO_INTEGRAL:
		s.HasUnsupportedExpr = true
	}

	for _, arg := range e.Args {
		s.Analyze(arg)
	}
}

func (s *Summary) analyzeNumeral(e *ast.Node) {
	if e.Sort.Kind != ast.SortFP {
		s.HasNonFPConst = true
		return
	}
	if _, ok := s.seenConsts[e.Hash]; ok {
		return
	}
	if fpa.IsFloat32(e.Sort.EBits, e.Sort.SBits) || fpa.IsFloat64(e.Sort.EBits, e.Sort.SBits) {
		s.seenConsts[e.Hash] = struct{}{}
		s.ConstCount++
		return
	}
	s.HasNonFPConst = true
}

// PrettySummary renders the one-paragraph summary the original tool prints
// on -mode fa, matching FPExprAnalyzer::prettyPrintSummary's field order.
func (s *Summary) PrettySummary(formulaName string) string {
	yn := func(b bool) string {
		if b {
			return "yes"
		}
		return "no"
	}
	return fmt.Sprintf(
		"Formula: %s\nIs linear (%s)\nHas fp32 variables (%d)\nHas fp64 variables (%d)\nHas const values (%d)\nHas unsupported expr (%s)\n",
		formulaName, yn(s.IsLinear), s.FP32VarCount, s.FP64VarCount, s.ConstCount, yn(s.HasUnsupportedExpr))
}
