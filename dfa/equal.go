package dfa

// Equal reports whether two DFAs accept the same language, by
// synchronous breadth-first traversal from the pair of start states.
// Accept flags must agree on every reachable pair, and transitions pair
// byte-wise: Reject pairs only with Reject.
//
// On minimal DFAs this decides isomorphism modulo state renaming; on
// arbitrary DFAs it decides language equality.
func (d *DFA) Equal(o *DFA) bool {
	if d.states[Start].Accept != o.states[Start].Accept {
		return false
	}

	type pair struct{ a, b StateID }
	seen := map[pair]bool{
		{Reject, Reject}: true,
		{Start, Start}:   true,
	}
	queue := []pair{{Start, Start}}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		s1 := &d.states[p.a]
		s2 := &o.states[p.b]
		if s1.Accept != s2.Accept {
			return false
		}

		for c := 0; c < 256; c++ {
			next := pair{s1.Next[c], s2.Next[c]}
			if seen[next] {
				continue
			}
			if next.a == Reject || next.b == Reject {
				return false
			}
			seen[next] = true
			queue = append(queue, next)
		}
	}

	return true
}
