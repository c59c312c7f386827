package dfa

import (
	"strconv"
	"strings"

	"github.com/coregx/rans/internal/sparse"
	"github.com/coregx/rans/parser"
)

// Build determinizes the position automaton of a parsed expression tree
// by subset construction.
//
// A work queue holds position subsets whose states are not yet filled
// in; a canonical map keys each subset (sorted positions) to its state
// index. For the subset at the head of the queue, T(S,c) is the union of
// follow(p) over all p in S that can consume byte c; an empty union is a
// Reject transition, and any new subset is assigned the next free index.
func Build(tree *parser.Tree) *DFA {
	d := &DFA{}

	first := tree.Expr(tree.Root()).First
	queue := [][]int{first}
	index := map[string]StateID{subsetKey(first): Start}

	// One accumulator per byte, cleared for each state under
	// construction.
	var transition [256]*sparse.Set
	for c := range transition {
		transition[c] = sparse.NewSet(tree.Len())
	}

	for len(queue) > 0 {
		subset := queue[0]
		queue = queue[1:]
		for c := range transition {
			transition[c].Clear()
		}

		accept := false
		for _, p := range subset {
			e := tree.Expr(p)
			switch e.Kind {
			case parser.Literal:
				transition[e.Literal].InsertAll(e.Follow)
			case parser.Dot:
				for c := 0; c < 256; c++ {
					transition[c].InsertAll(e.Follow)
				}
			case parser.CharClass:
				for c, ok := e.Class.NextSet(0); ok; c, ok = e.Class.NextSet(c + 1) {
					transition[c].InsertAll(e.Follow)
				}
			case parser.EOP:
				accept = true
			}
		}

		state := d.newState()
		state.Accept = accept

		for c := 0; c < 256; c++ {
			if transition[c].IsEmpty() {
				continue
			}
			next := transition[c].Sorted()
			key := subsetKey(next)
			id, ok := index[key]
			if !ok {
				id = StateID(len(index))
				index[key] = id
				queue = append(queue, next)
			}
			state.Next[c] = id
		}
	}

	return d
}

// newState appends a fresh state with all transitions rejecting.
func (d *DFA) newState() *State {
	d.states = append(d.states, State{})
	s := &d.states[len(d.states)-1]
	for c := range s.Next {
		s.Next[c] = Reject
	}
	return s
}

// subsetKey renders a sorted position subset as a canonical map key.
func subsetKey(subset []int) string {
	var b strings.Builder
	for _, p := range subset {
		b.WriteString(strconv.Itoa(p))
		b.WriteByte(',')
	}
	return b.String()
}
