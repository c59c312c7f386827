// Package dfa builds deterministic finite automata over the byte
// alphabet from position-annotated expression trees.
//
// Construction is subset construction over Glushkov positions: a DFA
// state is a set of leaf positions, the start state is first(root), and
// a state accepts iff its set contains the end-of-pattern position.
// Minimization is the table-filling algorithm over state pairs, yielding
// the unique minimal DFA up to renaming.
package dfa

import (
	"github.com/coregx/rans/parser"
)

// StateID indexes a DFA state. The zero state is always the start state.
type StateID int32

const (
	// Reject is the sentinel transition target for "no transition".
	Reject StateID = -1

	// Start is the initial state of every DFA.
	Start StateID = 0
)

// State is one DFA state: a dense 256-entry transition table over the
// byte alphabet plus an accept flag.
type State struct {
	Next   [256]StateID
	Accept bool
}

// DFA is a deterministic finite automaton on raw bytes.
// A DFA is immutable after construction (and minimization) and safe for
// concurrent readers.
type DFA struct {
	states []State
}

// Compile parses a pattern and returns its minimal DFA.
func Compile(pattern string, enc parser.Encoding) (*DFA, error) {
	tree, err := parser.Parse(pattern, enc)
	if err != nil {
		return nil, err
	}
	d := Build(tree)
	d.Minimize()
	return d, nil
}

// Size returns the number of states.
func (d *DFA) Size() int {
	return len(d.states)
}

// State returns the state with the given id.
func (d *DFA) State(id StateID) *State {
	return &d.states[id]
}

// Next returns the transition target of state id on byte c.
func (d *DFA) Next(id StateID, c byte) StateID {
	return d.states[id].Next[c]
}

// IsAccept reports whether id is a non-Reject accepting state.
func (d *DFA) IsAccept(id StateID) bool {
	return id != Reject && d.states[id].Accept
}

// Accept runs the automaton over text and reports whether the whole
// string is accepted. The engine recognizes whole strings only; there is
// no substring search.
func (d *DFA) Accept(text []byte) bool {
	state := Start
	for _, c := range text {
		state = d.states[state].Next[c]
		if state == Reject {
			return false
		}
	}
	return d.states[state].Accept
}
