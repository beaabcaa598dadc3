// Copyright (c) 2024 OpenBao a Series of LF Projects, LLC
// SPDX-License-Identifier: MPL-2.0

package bptree

import (
	"cmp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNodeFindKey(t *testing.T) {
	n := newLeaf[int, string]()
	n.keys = []int{10, 20, 30, 40}
	n.values = []string{"a", "b", "c", "d"}

	t.Run("Present", func(t *testing.T) {
		idx, found := n.findKey(cmp.Compare[int], 30)
		require.True(t, found, "Should find existing key")
		require.Equal(t, 2, idx, "Should return the key's index")
	})

	t.Run("Absent", func(t *testing.T) {
		idx, found := n.findKey(cmp.Compare[int], 25)
		require.False(t, found, "Should not find absent key")
		require.Equal(t, 2, idx, "Should return the insertion position")
	})

	t.Run("PastEnd", func(t *testing.T) {
		idx, found := n.findKey(cmp.Compare[int], 99)
		require.False(t, found)
		require.Equal(t, 4, idx, "Insertion position should be past the last key")
	})
}

func TestNodeChildIndex(t *testing.T) {
	n := newInternal[int, string]()
	n.keys = []int{10, 20}
	n.children = []*node[int, string]{newLeaf[int, string](), newLeaf[int, string](), newLeaf[int, string]()}

	require.Equal(t, 0, n.childIndex(cmp.Compare[int], 5), "Keys below the first separator go left")
	require.Equal(t, 1, n.childIndex(cmp.Compare[int], 10), "An equal key descends right of its separator")
	require.Equal(t, 1, n.childIndex(cmp.Compare[int], 15))
	require.Equal(t, 2, n.childIndex(cmp.Compare[int], 20))
	require.Equal(t, 2, n.childIndex(cmp.Compare[int], 99), "Keys past the last separator go to the last child")
}

func TestNodeEntryPrimitives(t *testing.T) {
	n := newLeaf[int, string]()
	n.insertEntryAt(0, 20, "b")
	n.insertEntryAt(0, 10, "a")
	n.insertEntryAt(2, 30, "c")
	require.Equal(t, []int{10, 20, 30}, n.keys)
	require.Equal(t, []string{"a", "b", "c"}, n.values)

	key, value := n.removeEntryAt(1)
	require.Equal(t, 20, key)
	require.Equal(t, "b", value)
	require.Equal(t, []int{10, 30}, n.keys)
	require.Equal(t, []string{"a", "c"}, n.values)
}

func TestNodeSplitLeaf(t *testing.T) {
	n := newLeaf[int, string]()
	tail := newLeaf[int, string]()
	n.next = tail
	n.keys = []int{1, 2, 3, 4, 5}
	n.values = []string{"a", "b", "c", "d", "e"}

	right, sep := n.splitLeaf()

	require.Equal(t, []int{1, 2, 3}, n.keys, "Lower half keeps the original node")
	require.Equal(t, []int{4, 5}, right.keys, "Upper half moves to the new leaf")
	require.Equal(t, []string{"d", "e"}, right.values)
	require.Equal(t, 4, sep, "Separator is the right leaf's first key")
	require.Same(t, right, n.next, "New leaf is spliced after the original")
	require.Same(t, tail, right.next, "New leaf inherits the old sibling link")
}

func TestNodeSplitInternal(t *testing.T) {
	children := make([]*node[int, string], 5)
	for i := range children {
		children[i] = newLeaf[int, string]()
	}
	n := newInternal[int, string]()
	n.keys = []int{10, 20, 30, 40}
	n.children = children

	right, sep := n.splitInternal()

	require.Equal(t, 30, sep, "Middle separator is promoted, not copied")
	require.Equal(t, []int{10, 20}, n.keys)
	require.Equal(t, []int{40}, right.keys)
	require.Len(t, n.children, 3)
	require.Len(t, right.children, 2)
	require.Same(t, children[3], right.children[0])
}

func TestNodeStealLeaf(t *testing.T) {
	t.Run("FromLeft", func(t *testing.T) {
		left := newLeaf[int, string]()
		left.keys = []int{1, 2, 3}
		left.values = []string{"a", "b", "c"}
		n := newLeaf[int, string]()
		n.keys = []int{5}
		n.values = []string{"e"}

		sep := n.stealFromLeft(left, 5)
		require.Equal(t, 3, sep, "New separator is the moved key")
		require.Equal(t, []int{1, 2}, left.keys)
		require.Equal(t, []int{3, 5}, n.keys)
		require.Equal(t, []string{"c", "e"}, n.values)
	})

	t.Run("FromRight", func(t *testing.T) {
		n := newLeaf[int, string]()
		n.keys = []int{1}
		n.values = []string{"a"}
		right := newLeaf[int, string]()
		right.keys = []int{5, 6, 7}
		right.values = []string{"e", "f", "g"}

		sep := n.stealFromRight(right, 5)
		require.Equal(t, 6, sep, "New separator is the right sibling's new first key")
		require.Equal(t, []int{1, 5}, n.keys)
		require.Equal(t, []int{6, 7}, right.keys)
	})
}

func TestNodeStealInternal(t *testing.T) {
	mk := func(keys ...int) *node[int, string] {
		n := newInternal[int, string]()
		n.keys = keys
		n.children = make([]*node[int, string], len(keys)+1)
		for i := range n.children {
			n.children[i] = newLeaf[int, string]()
		}
		return n
	}

	t.Run("FromLeft", func(t *testing.T) {
		left := mk(10, 20)
		n := mk(40)
		borrowed := left.children[2]

		sep := n.stealFromLeft(left, 30)
		require.Equal(t, 20, sep, "Left sibling's last key rotates up")
		require.Equal(t, []int{10}, left.keys)
		require.Equal(t, []int{30, 40}, n.keys, "Old separator rotates down")
		require.Same(t, borrowed, n.children[0])
		require.Len(t, left.children, 2)
		require.Len(t, n.children, 3)
	})

	t.Run("FromRight", func(t *testing.T) {
		n := mk(10)
		right := mk(40, 50)
		borrowed := right.children[0]

		sep := n.stealFromRight(right, 30)
		require.Equal(t, 40, sep, "Right sibling's first key rotates up")
		require.Equal(t, []int{10, 30}, n.keys, "Old separator rotates down")
		require.Equal(t, []int{50}, right.keys)
		require.Same(t, borrowed, n.children[2])
	})
}

func TestNodeMergeRight(t *testing.T) {
	t.Run("Leaves", func(t *testing.T) {
		tail := newLeaf[int, string]()
		left := newLeaf[int, string]()
		left.keys = []int{1, 2}
		left.values = []string{"a", "b"}
		right := newLeaf[int, string]()
		right.keys = []int{3, 4}
		right.values = []string{"c", "d"}
		right.next = tail
		left.next = right

		left.mergeRight(right, 3)
		require.Equal(t, []int{1, 2, 3, 4}, left.keys)
		require.Equal(t, []string{"a", "b", "c", "d"}, left.values)
		require.Same(t, tail, left.next, "Chain is relinked around the absorbed leaf")
	})

	t.Run("Internal", func(t *testing.T) {
		left := newInternal[int, string]()
		left.keys = []int{10}
		left.children = []*node[int, string]{newLeaf[int, string](), newLeaf[int, string]()}
		right := newInternal[int, string]()
		right.keys = []int{30}
		right.children = []*node[int, string]{newLeaf[int, string](), newLeaf[int, string]()}

		left.mergeRight(right, 20)
		require.Equal(t, []int{10, 20, 30}, left.keys, "Separator drops down between the key runs")
		require.Len(t, left.children, 4)
	})
}
