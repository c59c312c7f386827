// Package parser lexes and parses the RANS extended regex dialect into a
// position-annotated expression tree.
//
// The tree is a Glushkov position automaton in disguise: every leaf
// (Literal, Dot, CharClass, EOP) is a position, and the derived
// attributes nullable/first/last/follow determine the automaton's
// transitions. Subset construction over these positions yields the DFA.
//
// Nodes live in an arena and refer to each other by dense index, never by
// pointer. The follow relation is cyclic under Star and Plus, so index
// sets keep the tree itself acyclic and let first/last/follow be plain
// []int slices.
package parser

import (
	"github.com/bits-and-blooms/bitset"
)

// Kind identifies the variant of an expression node.
type Kind uint8

const (
	// Literal matches exactly one byte.
	Literal Kind = iota

	// Dot matches every byte, including newline.
	Dot

	// CharClass matches the bytes set in a 256-bit mask.
	CharClass

	// Concat matches LHS followed by RHS.
	Concat

	// Union matches LHS or RHS.
	Union

	// Star matches zero or more repetitions of LHS.
	Star

	// Plus matches one or more repetitions of LHS.
	Plus

	// Qmark matches zero or one occurrence of LHS.
	Qmark

	// EOP is the unique end-of-pattern position terminating every
	// accepting path.
	EOP

	// Epsilon matches the empty string only.
	Epsilon
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case Literal:
		return "Literal"
	case Dot:
		return "Dot"
	case CharClass:
		return "CharClass"
	case Concat:
		return "Concat"
	case Union:
		return "Union"
	case Star:
		return "Star"
	case Plus:
		return "Plus"
	case Qmark:
		return "Qmark"
	case EOP:
		return "EOP"
	case Epsilon:
		return "Epsilon"
	default:
		return "Unknown"
	}
}

// None marks an absent child reference.
const None = -1

// Expr is one node of the expression tree.
//
// Attributes are computed bottom-up at construction time: children are
// always created before their parent, so the parent's nullable, First
// and Last derive from finished children. Follow is filled in a separate
// top-down pass once the whole tree exists, because Star and Plus feed
// positions back into their own subtree.
type Expr struct {
	Kind    Kind
	Literal byte           // Literal only
	Class   *bitset.BitSet // CharClass only; 256-bit byte mask
	LHS     int            // child index, or None
	RHS     int            // child index, or None

	Nullable bool
	First    []int // leaf positions that can start a match of this subtree
	Last     []int // leaf positions that can end a match of this subtree
	Follow   []int // leaves only: positions that may come next
}

// IsLeaf reports whether the node is a position of the automaton.
func (e *Expr) IsLeaf() bool {
	switch e.Kind {
	case Literal, Dot, CharClass, EOP:
		return true
	default:
		return false
	}
}

// Matches reports whether the position can consume byte c.
// EOP consumes nothing.
func (e *Expr) Matches(c byte) bool {
	switch e.Kind {
	case Literal:
		return e.Literal == c
	case Dot:
		return true
	case CharClass:
		return e.Class.Test(uint(c))
	default:
		return false
	}
}

// Tree is the arena of expression nodes for one parsed pattern.
// Node identity is the arena index; positions are the indices of leaves.
type Tree struct {
	exprs []Expr
	root  int
}

// Root returns the index of the root node.
func (t *Tree) Root() int {
	return t.root
}

// Expr returns the node at the given index.
func (t *Tree) Expr(i int) *Expr {
	return &t.exprs[i]
}

// Len returns the number of nodes in the arena.
func (t *Tree) Len() int {
	return len(t.exprs)
}

// newExpr appends a node and computes its nullable/first/last from the
// already-constructed children. Leaves are their own first and last.
func (t *Tree) newExpr(kind Kind, lhs, rhs int) int {
	id := len(t.exprs)
	t.exprs = append(t.exprs, Expr{Kind: kind, LHS: lhs, RHS: rhs})
	e := &t.exprs[id]

	switch kind {
	case Literal, Dot, CharClass, EOP:
		e.First = []int{id}
		e.Last = []int{id}
	case Union:
		l, r := &t.exprs[lhs], &t.exprs[rhs]
		e.Nullable = l.Nullable || r.Nullable
		e.First = mergePositions(l.First, r.First)
		e.Last = mergePositions(l.Last, r.Last)
	case Concat:
		l, r := &t.exprs[lhs], &t.exprs[rhs]
		e.Nullable = l.Nullable && r.Nullable
		if l.Nullable {
			e.First = mergePositions(l.First, r.First)
		} else {
			e.First = l.First
		}
		if r.Nullable {
			e.Last = mergePositions(l.Last, r.Last)
		} else {
			e.Last = r.Last
		}
	case Star, Qmark, Plus:
		l := &t.exprs[lhs]
		e.Nullable = kind != Plus || l.Nullable
		e.First = l.First
		e.Last = l.Last
	case Epsilon:
		e.Nullable = true
	}

	return id
}

// newLiteral appends a Literal leaf for byte c.
func (t *Tree) newLiteral(c byte) int {
	id := t.newExpr(Literal, None, None)
	t.exprs[id].Literal = c
	return id
}

// newCharClass appends a CharClass leaf with the given mask.
func (t *Tree) newCharClass(mask *bitset.BitSet) int {
	id := t.newExpr(CharClass, None, None)
	t.exprs[id].Class = mask
	return id
}

// clone deep-copies a subtree. Counted repetition expands by cloning its
// operand, and every clone must contribute fresh positions, otherwise
// distinct repetitions would collapse into one in the position automaton.
func (t *Tree) clone(src int) int {
	if src == None {
		return None
	}
	orig := t.exprs[src] // copy: the arena may grow while cloning children
	lhs := t.clone(orig.LHS)
	rhs := t.clone(orig.RHS)
	id := t.newExpr(orig.Kind, lhs, rhs)

	switch orig.Kind {
	case Literal:
		t.exprs[id].Literal = orig.Literal
	case CharClass:
		t.exprs[id].Class = orig.Class.Clone()
	}

	return id
}

// fillFollow computes the follow relation below node i:
// last(lhs) feeds first(rhs) across a Concat, and last(self) feeds
// first(self) around a Star or Plus.
func (t *Tree) fillFollow(i int) {
	e := &t.exprs[i]
	switch e.Kind {
	case Concat:
		t.connect(t.exprs[e.LHS].Last, t.exprs[e.RHS].First)
		t.fillFollow(e.LHS)
		t.fillFollow(e.RHS)
	case Union:
		t.fillFollow(e.LHS)
		t.fillFollow(e.RHS)
	case Star, Plus:
		t.connect(t.exprs[e.LHS].Last, t.exprs[e.LHS].First)
		t.fillFollow(e.LHS)
	case Qmark:
		t.fillFollow(e.LHS)
	}
}

// connect adds every position of dst to the follow set of every position
// of src.
func (t *Tree) connect(src, dst []int) {
	for _, p := range src {
		e := &t.exprs[p]
		e.Follow = mergePositions(e.Follow, dst)
	}
}

// mergePositions unions two sorted position slices into a fresh sorted
// slice without duplicates.
func mergePositions(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}
