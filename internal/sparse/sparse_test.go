package sparse

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSet_InsertContains(t *testing.T) {
	s := NewSet(8)

	require.True(t, s.IsEmpty())
	require.False(t, s.Contains(3))

	s.Insert(3)
	s.Insert(5)
	s.Insert(3) // duplicate is a no-op

	require.Equal(t, 2, s.Len())
	require.True(t, s.Contains(3))
	require.True(t, s.Contains(5))
	require.False(t, s.Contains(4))
}

func TestSet_GrowsPastCapacity(t *testing.T) {
	s := NewSet(2)

	s.Insert(100)
	require.True(t, s.Contains(100))
	require.False(t, s.Contains(99))
	require.Equal(t, 1, s.Len())
}

func TestSet_Clear(t *testing.T) {
	s := NewSet(4)
	s.InsertAll([]int{0, 1, 2, 3})
	require.Equal(t, 4, s.Len())

	s.Clear()
	require.True(t, s.IsEmpty())
	require.False(t, s.Contains(0))

	// Stale sparse entries must not resurrect members.
	s.Insert(2)
	require.True(t, s.Contains(2))
	require.False(t, s.Contains(1))
}

func TestSet_SortedIsCanonical(t *testing.T) {
	s := NewSet(16)
	s.InsertAll([]int{9, 1, 7, 3})

	require.Equal(t, []int{1, 3, 7, 9}, s.Sorted())

	// Sorted returns a copy; mutating it must not corrupt the set.
	got := s.Sorted()
	got[0] = 42
	require.True(t, s.Contains(1))
}

func TestSet_ContainsNegative(t *testing.T) {
	s := NewSet(4)
	require.False(t, s.Contains(-1))
}
