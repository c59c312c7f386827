package matrix

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func fill(m *Matrix, rows [][]int64) {
	for i, row := range rows {
		for j, x := range row {
			m.At(i, j).SetInt64(x)
		}
	}
}

func cells(m *Matrix) [][]int64 {
	out := make([][]int64, m.Size())
	for i := range out {
		out[i] = make([]int64, m.Size())
		for j := range out[i] {
			out[i][j] = m.At(i, j).Int64()
		}
	}
	return out
}

func TestIdentity(t *testing.T) {
	m := Identity(3)
	require.Equal(t, [][]int64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, cells(m))
}

func TestMul(t *testing.T) {
	x := New(2)
	fill(x, [][]int64{{1, 2}, {3, 4}})
	y := New(2)
	fill(y, [][]int64{{5, 6}, {7, 8}})

	dst := New(2)
	Mul(dst, x, y)
	require.Equal(t, [][]int64{{19, 22}, {43, 50}}, cells(dst))

	// Operands are untouched.
	require.Equal(t, [][]int64{{1, 2}, {3, 4}}, cells(x))
	require.Equal(t, [][]int64{{5, 6}, {7, 8}}, cells(y))
}

func TestMulAssign(t *testing.T) {
	x := New(2)
	fill(x, [][]int64{{1, 2}, {3, 4}})
	y := New(2)
	fill(y, [][]int64{{5, 6}, {7, 8}})

	x.MulAssign(y)
	require.Equal(t, [][]int64{{19, 22}, {43, 50}}, cells(x))
}

func TestSquare(t *testing.T) {
	x := New(2)
	fill(x, [][]int64{{1, 1}, {1, 0}})

	x.Square()
	require.Equal(t, [][]int64{{2, 1}, {1, 1}}, cells(x))
}

func TestPow(t *testing.T) {
	fib := New(2)
	fill(fib, [][]int64{{1, 1}, {1, 0}})

	require.Equal(t, [][]int64{{1, 0}, {0, 1}}, cells(Pow(fib, 0)))
	require.Equal(t, [][]int64{{1, 1}, {1, 0}}, cells(Pow(fib, 1)))

	// Fibonacci witnesses the whole exponent ladder: F(10) = 55.
	p := Pow(fib, 10)
	require.Equal(t, int64(55), p.At(0, 1).Int64())

	// The base is not mutated by Pow.
	require.Equal(t, [][]int64{{1, 1}, {1, 0}}, cells(fib))
}

func TestPowLargeEntries(t *testing.T) {
	two := New(1)
	two.At(0, 0).SetInt64(2)

	want := new(big.Int).Lsh(big.NewInt(1), 200)
	require.Zero(t, want.Cmp(Pow(two, 200).At(0, 0)))
}

func TestVectorMulAssign(t *testing.T) {
	v := NewVector(2)
	v.At(0).SetInt64(1)
	v.At(1).SetInt64(2)

	m := New(2)
	fill(m, [][]int64{{1, 2}, {3, 4}})

	v.MulAssign(m)
	require.Equal(t, int64(7), v.At(0).Int64())
	require.Equal(t, int64(10), v.At(1).Int64())
}

func TestInner(t *testing.T) {
	v := NewVector(3)
	w := NewVector(3)
	for i := 0; i < 3; i++ {
		v.At(i).SetInt64(int64(i + 1))
		w.At(i).SetInt64(int64(i + 4))
	}
	require.Equal(t, int64(1*4+2*5+3*6), Inner(v, w).Int64())
}

func TestString(t *testing.T) {
	m := New(2)
	fill(m, [][]int64{{1, 2}, {3, 4}})
	require.Equal(t, "{1, 2, },\n{3, 4, },\n", m.String())

	v := NewVector(2)
	v.At(1).SetInt64(9)
	require.Equal(t, "{0, 9, }", v.String())
}
