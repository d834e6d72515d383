package ast

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// Pool hash-conses nodes the way the underlying SMT toolkit's AST does:
// structurally identical sub-expressions are shared, so a DAG built through
// Pool has exactly one *Node per distinct sub-formula and a stable Hash
// field usable as a symbol-table key. The parser is the only writer of a
// Pool; once a formula is parsed the pool is read-only for the rest of the
// solve (§5 "single-threaded, synchronous throughout").
type Pool struct {
	bySignature map[string]*Node
}

// NewPool returns an empty hash-consing pool.
func NewPool() *Pool {
	return &Pool{bySignature: make(map[string]*Node)}
}

// Intern returns the canonical *Node for the given shape, creating and
// hashing it on first sight. Children must already be interned.
func (p *Pool) Intern(n *Node) *Node {
	sig := signature(n)
	if existing, ok := p.bySignature[sig]; ok {
		return existing
	}
	n.Hash = structuralHash(sig)
	p.bySignature[sig] = n
	return n
}

func signature(n *Node) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d|%d|%d|%d|%d|%s|%s|%s|%s|%s|%d", n.Kind, n.Sort.Kind, n.Sort.EBits, n.Sort.SBits, n.Sort.BVWidth, n.Text, n.Sign, n.Exp, n.Sig, n.Name, n.RoundingMode)
	for _, a := range n.Args {
		fmt.Fprintf(&sb, "|%d", a.Hash)
	}
	return sb.String()
}

func structuralHash(sig string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(sig))
	return h.Sum64()
}
