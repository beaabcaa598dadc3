// Copyright (c) 2024 OpenBao a Series of LF Projects, LLC
// SPDX-License-Identifier: MPL-2.0

package bptree

import (
	"slices"
)

// node is a B+ tree node. The leaf flag selects which fields are live:
// leaves carry values and the sibling link, internal nodes carry children.
// Every node is owned by exactly one parent; next is a non-owning
// navigational link and is never followed during descent.
type node[K, V any] struct {
	leaf     bool
	keys     []K
	values   []V             // leaf only, parallel to keys
	children []*node[K, V]   // internal only, len(keys)+1
	next     *node[K, V]     // leaf only, next leaf in key order
}

func newLeaf[K, V any]() *node[K, V] {
	return &node[K, V]{leaf: true}
}

func newInternal[K, V any]() *node[K, V] {
	return &node[K, V]{}
}

// findKey locates key in n.keys with a binary search. It returns the index
// of the key when present, otherwise the index at which it would be
// inserted.
func (n *node[K, V]) findKey(compare func(K, K) int, key K) (int, bool) {
	return slices.BinarySearchFunc(n.keys, key, compare)
}

// childIndex returns the index of the child whose subtree covers key.
// Separator semantics: child i holds keys < keys[i], so an equal key
// belongs to the child right of its separator.
func (n *node[K, V]) childIndex(compare func(K, K) int, key K) int {
	idx, found := n.findKey(compare, key)
	if found {
		return idx + 1
	}
	return idx
}

// insertEntryAt inserts a key/value pair at position i. Leaf only; the
// caller has already located the sorted position.
func (n *node[K, V]) insertEntryAt(i int, key K, value V) {
	n.keys = slices.Insert(n.keys, i, key)
	n.values = slices.Insert(n.values, i, value)
}

// removeEntryAt removes and returns the entry at position i. Leaf only.
func (n *node[K, V]) removeEntryAt(i int) (K, V) {
	key, value := n.keys[i], n.values[i]
	n.keys = slices.Delete(n.keys, i, i+1)
	n.values = slices.Delete(n.values, i, i+1)
	return key, value
}

// insertChildAt inserts a separator at position i and the child to its
// right at position i+1. Internal only; used when a child at position i
// split and promoted sep.
func (n *node[K, V]) insertChildAt(i int, sep K, child *node[K, V]) {
	n.keys = slices.Insert(n.keys, i, sep)
	n.children = slices.Insert(n.children, i+1, child)
}

// removeChildAt drops the separator at position i-1 and the child at
// position i, after the child was merged into its left neighbor.
func (n *node[K, V]) removeChildAt(i int) {
	n.keys = slices.Delete(n.keys, i-1, i)
	n.children = slices.Delete(n.children, i, i+1)
}

// splitLeaf splits an overflowing leaf. The lower half keeps n's identity
// so the sibling chain stays intact; the upper half moves to a fresh leaf
// spliced after n. Returns the new right leaf and the separator to promote
// (the right leaf's first key).
func (n *node[K, V]) splitLeaf() (*node[K, V], K) {
	at := (len(n.keys) + 1) / 2

	right := newLeaf[K, V]()
	right.keys = append(right.keys, n.keys[at:]...)
	right.values = append(right.values, n.values[at:]...)

	n.keys = n.keys[:at:at]
	n.values = n.values[:at:at]

	right.next = n.next
	n.next = right

	return right, right.keys[0]
}

// splitInternal splits an overflowing internal node. The middle separator
// is promoted, not copied: the left node keeps children up to it, the new
// right node takes the rest.
func (n *node[K, V]) splitInternal() (*node[K, V], K) {
	at := len(n.children) / 2 // left keeps ceil(children/2)
	if len(n.children)%2 == 1 {
		at++
	}
	sep := n.keys[at-1]

	right := newInternal[K, V]()
	right.keys = append(right.keys, n.keys[at:]...)
	right.children = append(right.children, n.children[at:]...)

	n.keys = n.keys[: at-1 : at-1]
	n.children = n.children[:at:at]

	return right, sep
}

// stealFromLeft moves one entry (or one child, through the separator) from
// the left sibling into n and returns the new separator between them.
func (n *node[K, V]) stealFromLeft(left *node[K, V], sep K) K {
	if n.leaf {
		last := len(left.keys) - 1
		key, value := left.removeEntryAt(last)
		n.insertEntryAt(0, key, value)
		return n.keys[0]
	}

	// Internal: the parent separator rotates down into n, the left
	// sibling's last key rotates up to replace it.
	last := len(left.keys) - 1
	newSep := left.keys[last]
	child := left.children[last+1]
	left.keys = left.keys[:last]
	left.children = left.children[:last+1]

	n.keys = slices.Insert(n.keys, 0, sep)
	n.children = slices.Insert(n.children, 0, child)
	return newSep
}

// stealFromRight moves one entry (or one child, through the separator)
// from the right sibling into n and returns the new separator between them.
func (n *node[K, V]) stealFromRight(right *node[K, V], sep K) K {
	if n.leaf {
		key, value := right.removeEntryAt(0)
		n.keys = append(n.keys, key)
		n.values = append(n.values, value)
		return right.keys[0]
	}

	newSep := right.keys[0]
	child := right.children[0]
	right.keys = slices.Delete(right.keys, 0, 1)
	right.children = slices.Delete(right.children, 0, 1)

	n.keys = append(n.keys, sep)
	n.children = append(n.children, child)
	return newSep
}

// mergeRight absorbs the right sibling into n. For leaves the sibling
// chain is relinked around right; for internal nodes the parent separator
// drops down between the two key runs. The caller removes right and the
// separator from the parent afterwards.
func (n *node[K, V]) mergeRight(right *node[K, V], sep K) {
	if n.leaf {
		n.keys = append(n.keys, right.keys...)
		n.values = append(n.values, right.values...)
		n.next = right.next
		return
	}

	n.keys = append(n.keys, sep)
	n.keys = append(n.keys, right.keys...)
	n.children = append(n.children, right.children...)
}
