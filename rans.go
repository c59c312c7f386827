// Package rans implements an abstract numeration system (ANS) on a
// regular language: a bijection between the natural numbers and the set
// of byte strings accepted by a regular expression.
//
// Given a pattern, Compile builds the minimal DFA of its language L and
// two counting matrices over big integers. Val returns the rank of a
// string in the length-lexicographic enumeration of L (shorter strings
// first, byte order within a length); Rep is its inverse and returns the
// N-th accepted string. The two are mutually inverse bijections:
//
//	sys := rans.MustCompile("(ab)*")
//	sys.Val([]byte(""))   // 0
//	sys.Val([]byte("ab")) // 1
//	sys.Rep(big.NewInt(3)) // "ababab"
//
// Derived operations count the language: Count(k) is the number of
// accepted strings of length exactly k, AmountUpTo(k) the number of
// length <= k, Amount the total (or -1 when L is infinite), and Finite
// decides finiteness.
//
// Ranking in one language and unranking in the byte-universal language
// `.*` compresses text; see Compress and Decompress.
//
// A compiled System is immutable and safe for concurrent use: queries
// only read the DFA and matrices and allocate caller-local scratch.
package rans

import (
	"math/big"

	"github.com/coregx/rans/dfa"
	"github.com/coregx/rans/matrix"
	"github.com/coregx/rans/parser"
)

// Encoding selects the pattern encoding; it aliases the parser's type so
// callers need only this package.
type Encoding = parser.Encoding

const (
	// ASCII treats pattern bytes as standalone literals.
	ASCII = parser.ASCII

	// UTF8 consumes multi-byte code points in the pattern; the automaton
	// still runs on raw bytes.
	UTF8 = parser.UTF8
)

// Syntax documents the accepted dialect.
const Syntax = `RANS "simplified" extended regular expression syntax:
  regex      ::= union* EOP
  union      ::= concat ('|' concat)*
  concat     ::= repetition+
  repetition ::= atom quantifier*
  quantifier ::= [*+?] | '{' (\d+ | \d* ',' \d* ) '}'
  atom       ::= literal | dot | charclass | '(' union ')'
                 utf8char # optional (--utf8)
  charclass  ::= '[' ']'? [^]]* ']'
  literal    ::= [^*+?[|(){.\\]
  dot        ::= '.' # NOTE: dot matchs also newline('\n')
  utf8char   ::= [\x00-\x7f] | [\xC0-\xDF][\x80-\xBF]
               | [\xE0-\xEF][\x80-\xBF]{2}
               | [\xF0-\xF7][\x80-\xBF]{3}
`

// Config configures compilation.
type Config struct {
	// Encoding selects ASCII or UTF8 pattern interpretation.
	Encoding Encoding

	// Minimize controls DFA minimization. Numeration is well defined on
	// any DFA of the language; disabling minimization is useful only
	// for diagnostics and tests.
	Minimize bool
}

// DefaultConfig returns the standard configuration: ASCII patterns,
// minimized DFA.
func DefaultConfig() Config {
	return Config{Encoding: ASCII, Minimize: true}
}

// System is a compiled numeration system over one regular language.
//
// It owns the DFA (minimized unless Config.Minimize is false), the
// adjacency matrix A (A[i][j] counts the
// bytes leading from state i to state j), the extended adjacency matrix
// A+ (one extra absorbing state whose column accumulates paths that have
// reached acceptance, so (A+)^k[0][N] counts nonempty accepted strings
// of length <= k), the one-hot start vector, the accept indicator vector,
// and the empty-string flag. All fields are fixed after Compile.
type System struct {
	pattern string
	dfa     *dfa.DFA

	adjacency *matrix.Matrix
	extended  *matrix.Matrix
	extState  int // index of the absorbing state in extended

	startVec  *matrix.Vector
	acceptVec *matrix.Vector

	matchEpsilon *big.Int // 1 if the empty string is accepted, else 0
}

var one = big.NewInt(1)

// Compile builds the numeration system of a pattern with the default
// configuration.
func Compile(pattern string) (*System, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// CompileWithEncoding builds the numeration system of a pattern in the
// given encoding.
func CompileWithEncoding(pattern string, enc Encoding) (*System, error) {
	config := DefaultConfig()
	config.Encoding = enc
	return CompileWithConfig(pattern, config)
}

// CompileWithConfig builds the numeration system of a pattern with a
// custom configuration.
func CompileWithConfig(pattern string, config Config) (*System, error) {
	tree, err := parser.Parse(pattern, config.Encoding)
	if err != nil {
		return nil, err
	}

	d := dfa.Build(tree)
	if config.Minimize {
		d.Minimize()
	}

	n := d.Size()
	s := &System{
		pattern:      pattern,
		dfa:          d,
		adjacency:    matrix.New(n),
		extended:     matrix.New(n + 1),
		extState:     n,
		startVec:     matrix.NewVector(n),
		acceptVec:    matrix.NewVector(n),
		matchEpsilon: big.NewInt(0),
	}
	if d.IsAccept(dfa.Start) {
		s.matchEpsilon.SetInt64(1)
	}
	s.startVec.At(int(dfa.Start)).SetInt64(1)

	for i := 0; i < n; i++ {
		if d.IsAccept(dfa.StateID(i)) {
			s.acceptVec.At(i).SetInt64(1)
		}
		for c := 0; c < 256; c++ {
			j := d.Next(dfa.StateID(i), byte(c))
			if j == dfa.Reject {
				continue
			}
			cell := s.adjacency.At(i, int(j))
			cell.Add(cell, one)
			cell = s.extended.At(i, int(j))
			cell.Add(cell, one)
			if d.IsAccept(j) {
				cell = s.extended.At(i, s.extState)
				cell.Add(cell, one)
			}
		}
	}
	s.extended.At(s.extState, s.extState).SetInt64(1)

	return s, nil
}

// MustCompile is like Compile but panics on a malformed pattern.
func MustCompile(pattern string) *System {
	s, err := Compile(pattern)
	if err != nil {
		panic("rans: Compile(`" + pattern + "`): " + err.Error())
	}
	return s
}

// Pattern returns the source pattern.
func (s *System) Pattern() string {
	return s.pattern
}

// DFA returns the compiled automaton.
func (s *System) DFA() *dfa.DFA {
	return s.dfa
}

// Size returns the number of DFA states.
func (s *System) Size() int {
	return s.dfa.Size()
}

// AdjacencyMatrix returns the adjacency matrix A.
func (s *System) AdjacencyMatrix() *matrix.Matrix {
	return s.adjacency
}

// ExtendedAdjacencyMatrix returns the extended adjacency matrix A+.
func (s *System) ExtendedAdjacencyMatrix() *matrix.Matrix {
	return s.extended
}

// Accept reports whether text is in the language.
func (s *System) Accept(text []byte) bool {
	return s.dfa.Accept(text)
}

// Val returns the rank of text in the length-lexicographic enumeration
// of the language: text is the Val(text)-th accepted string, counting
// from zero. Fails with ErrNotAcceptable when text is not accepted.
//
// The scan walks the DFA once. At step i it credits one path for the
// empty prefix and one for every accepted-prefix sibling with a smaller
// byte, then advances all credited paths one transition via the
// adjacency matrix, so after the final byte the vector counts, per
// state, the predecessors of text in the length-n frame. The inner
// product with the accept vector is the rank. Runs in O(n*|D|^2) big-int
// additions for text of length n.
func (s *System) Val(text []byte) (*big.Int, error) {
	state := dfa.Start
	paths := matrix.NewVector(s.Size())

	for i := 0; i < len(text); i++ {
		head := paths.At(int(dfa.Start))
		head.Add(head, one)
		for c := 0; c < int(text[i]); c++ {
			if next := s.dfa.Next(state, byte(c)); next != dfa.Reject {
				cell := paths.At(int(next))
				cell.Add(cell, one)
			}
		}
		state = s.dfa.Next(state, text[i])
		if state == dfa.Reject {
			return nil, ErrNotAcceptable
		}
		if i < len(text)-1 {
			paths.MulAssign(s.adjacency)
		}
	}

	if !s.dfa.IsAccept(state) {
		return nil, ErrNotAcceptable
	}

	return matrix.Inner(paths, s.acceptVec), nil
}

// Rep returns the value-th accepted string; it is the inverse of Val.
// Fails with ErrOutOfRange when value is negative or exceeds the size of
// a finite language.
//
// The target length comes from the floor probe; each byte is then chosen
// greedily: walk candidate bytes in increasing order, counting the
// accepting continuations of the required remaining length through each,
// until the running total passes the value. Runs in roughly
// O(n*log n*|D|^3) big-int multiplications for output length n.
func (s *System) Rep(value *big.Int) ([]byte, error) {
	if value.Sign() < 0 {
		return nil, ErrOutOfRange
	}

	rest := new(big.Int).Set(value)
	length, err := s.floor(rest)
	if err != nil {
		return nil, err
	}

	text := make([]byte, 0, length)
	state := dfa.Start
	for l := length; l > 0; l-- {
		power := matrix.Pow(s.adjacency, l-1)
		sum := new(big.Int)
		prev := new(big.Int)

		for c := 0; c < 256; c++ {
			next := s.dfa.Next(state, byte(c))
			if next == dfa.Reject {
				continue
			}
			prev.Set(sum)
			for i := 0; i < s.Size(); i++ {
				if s.dfa.IsAccept(dfa.StateID(i)) {
					sum.Add(sum, power.At(int(next), i))
				}
			}
			if sum.Cmp(rest) > 0 {
				text = append(text, byte(c))
				state = next
				rest.Sub(rest, prev)
				break
			}
		}
	}

	return text, nil
}

// floor returns the length of the value-th accepted string and reduces
// value by the count of all strictly shorter accepted strings.
//
// The probe squares A+ until the cumulative count passes the value, then
// backs off one power and advances a single length at a time. Once the
// represented length exceeds the DFA size, a squaring that leaves the
// cumulative count unchanged proves the language finite and smaller than
// the value: past the automaton's diameter, any reachable accepting path
// admits a pumped copy, so a live count must strictly grow.
func (s *System) floor(value *big.Int) (int, error) {
	if value.Cmp(s.matchEpsilon) < 0 {
		return 0, nil
	}

	cur := s.extended.Clone()
	prev := matrix.New(s.Size() + 1)
	bound := new(big.Int)

	bound.Add(cur.At(0, s.extState), s.matchEpsilon)
	if bound.Cmp(value) > 0 {
		value.Sub(value, s.matchEpsilon)
		return 1, nil
	}

	length := 1
	for {
		prev.Copy(cur)
		cur.Square()
		if length > s.Size() && cur.At(0, s.extState).Cmp(prev.At(0, s.extState)) == 0 {
			return 0, ErrOutOfRange
		}
		length *= 2
		bound.Add(cur.At(0, s.extState), s.matchEpsilon)
		if bound.Cmp(value) > 0 {
			break
		}
	}

	cur.Copy(prev)
	length /= 2
	for {
		prev.Copy(cur)
		cur.MulAssign(s.extended)
		length++
		bound.Add(cur.At(0, s.extState), s.matchEpsilon)
		if bound.Cmp(value) > 0 {
			break
		}
	}

	value.Sub(value, prev.At(0, s.extState))
	value.Sub(value, s.matchEpsilon)
	return length, nil
}

// Count returns the number of accepted strings of length exactly k.
func (s *System) Count(k int) *big.Int {
	power := matrix.Pow(s.adjacency, k)
	row := s.startVec.Clone()
	row.MulAssign(power)
	return matrix.Inner(row, s.acceptVec)
}

// AmountUpTo returns the number of accepted strings of length <= k.
func (s *System) AmountUpTo(k int) *big.Int {
	power := matrix.Pow(s.extended, k)
	return new(big.Int).Add(power.At(0, s.extState), s.matchEpsilon)
}

// Amount returns the total number of accepted strings, or -1 when the
// language is infinite. The cumulative count is squared out past twice
// the DFA size; if it still grows there the language pumps forever.
func (s *System) Amount() *big.Int {
	cur := s.extended.Clone()
	total := new(big.Int)

	length := 1
	for {
		total.Set(cur.At(0, s.extState))
		cur.Square()
		length *= 2
		if length >= 2*s.Size() {
			break
		}
	}

	if total.Cmp(cur.At(0, s.extState)) != 0 {
		return big.NewInt(-1)
	}
	return total.Add(total, s.matchEpsilon)
}

// Finite reports whether the language is finite.
func (s *System) Finite() bool {
	return s.Amount().Sign() >= 0
}

// Infinite reports whether the language is infinite.
func (s *System) Infinite() bool {
	return !s.Finite()
}
