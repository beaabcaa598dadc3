// Copyright (c) 2024 OpenBao a Series of LF Projects, LLC
// SPDX-License-Identifier: MPL-2.0

package bptree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func collectKeys[K, V any](m *Map[K, V]) []K {
	var out []K
	for k := range m.Keys() {
		out = append(out, k)
	}
	return out
}

func TestIterationOrder(t *testing.T) {
	// Order 3 forces multiple leaves so iteration exercises the chain.
	m := New[int, string](WithOrder(3))
	for _, k := range []int{8, 3, 1, 9, 5, 2, 7, 4, 6} {
		m.Insert(k, "x")
	}

	require.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, collectKeys(m),
		"Keys must come out in ascending order regardless of insertion order")

	var got []int
	for k, v := range m.All() {
		require.Equal(t, "x", v)
		got = append(got, k)
	}
	require.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, got)
}

func TestIterationEarlyStop(t *testing.T) {
	m := New[int, int](WithOrder(3))
	for i := 0; i < 50; i++ {
		m.Insert(i, i)
	}

	var seen []int
	for k := range m.Keys() {
		seen = append(seen, k)
		if len(seen) == 5 {
			break
		}
	}
	require.Equal(t, []int{0, 1, 2, 3, 4}, seen, "Breaking out must stop the sequence")
}

func TestValuesAndValuesMut(t *testing.T) {
	m := New[string, int](WithOrder(3))
	m.Insert("a", 1)
	m.Insert("b", 2)
	m.Insert("c", 3)

	var vals []int
	for v := range m.Values() {
		vals = append(vals, v)
	}
	require.Equal(t, []int{1, 2, 3}, vals)

	for p := range m.ValuesMut() {
		*p *= 10
	}
	vals = vals[:0]
	for v := range m.Values() {
		vals = append(vals, v)
	}
	require.Equal(t, []int{10, 20, 30}, vals, "Mutations through ValuesMut must stick")
}

func TestRangeBounds(t *testing.T) {
	m := New[int, string](WithOrder(3))
	for _, k := range []int{1, 3, 5, 7, 9} {
		m.Insert(k, "v")
	}

	rangeKeys := func(lo, hi Bound[int]) []int {
		var out []int
		for k := range m.Range(lo, hi) {
			out = append(out, k)
		}
		return out
	}

	t.Run("HalfOpen", func(t *testing.T) {
		require.Equal(t, []int{3, 5, 7}, rangeKeys(Included(3), Excluded(8)))
	})
	t.Run("Unbounded", func(t *testing.T) {
		require.Equal(t, []int{1, 3, 5, 7, 9}, rangeKeys(Unbounded[int](), Unbounded[int]()))
	})
	t.Run("PastTheEnd", func(t *testing.T) {
		require.Empty(t, rangeKeys(Included(10), Unbounded[int]()))
	})
	t.Run("ExcludedLower", func(t *testing.T) {
		require.Equal(t, []int{5, 7, 9}, rangeKeys(Excluded(3), Unbounded[int]()))
	})
	t.Run("IncludedUpper", func(t *testing.T) {
		require.Equal(t, []int{1, 3, 5, 7}, rangeKeys(Unbounded[int](), Included(7)))
	})
	t.Run("BoundsBetweenKeys", func(t *testing.T) {
		require.Equal(t, []int{3, 5}, rangeKeys(Included(2), Excluded(6)),
			"Bounds that are not stored keys still select the right span")
	})
	t.Run("EmptySpan", func(t *testing.T) {
		require.Empty(t, rangeKeys(Excluded(5), Excluded(6)))
	})
}

func TestRangeMut(t *testing.T) {
	m := New[int, int](WithOrder(3))
	for i := 1; i <= 9; i++ {
		m.Insert(i, i)
	}

	for _, p := range m.RangeMut(Included(3), Included(6)) {
		*p = -*p
	}

	for k, v := range m.All() {
		if k >= 3 && k <= 6 {
			require.Equal(t, -k, v, "Values in range should be negated")
		} else {
			require.Equal(t, k, v, "Values outside the range should be untouched")
		}
	}
}

func TestDescendingComparator(t *testing.T) {
	m := NewFunc[int, int](func(a, b int) int { return b - a }, WithOrder(3))
	for _, k := range []int{1, 2, 3} {
		m.Insert(k, k)
	}

	require.Equal(t, []int{3, 2, 1}, collectKeys(m),
		"A descending comparator must reverse iteration order")

	k, _, ok := m.First()
	require.True(t, ok)
	require.Equal(t, 3, k, "First follows the injected order, not the natural one")
	require.NoError(t, m.CheckInvariants())
}

func TestIterateEmptyMap(t *testing.T) {
	m := New[int, int]()
	for range m.All() {
		t.Fatal("Empty map must yield nothing")
	}
	for range m.Range(Included(1), Included(100)) {
		t.Fatal("Range over an empty map must yield nothing")
	}
}
