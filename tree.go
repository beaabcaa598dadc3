// Copyright (c) 2024 OpenBao a Series of LF Projects, LLC
// SPDX-License-Identifier: MPL-2.0

// Package bptree implements an in-memory ordered key-value map backed by a
// B+ tree. All entries live in the leaves, which are chained in key order
// for iteration and range scans; internal nodes hold only separator keys.
//
// The map assumes exclusive access for the duration of any call. It
// provides no internal synchronization; wrap it in a mutex when sharing
// across goroutines.
package bptree

import (
	"cmp"
	"fmt"

	"github.com/hashicorp/go-hclog"
)

// Map is an ordered map from K to V. The zero value is not usable; create
// one with New or NewFunc.
type Map[K, V any] struct {
	root    *node[K, V]
	count   int
	order   int
	compare func(K, K) int
	logger  hclog.Logger
}

// New creates an empty Map ordered by K's standard Go ordering.
func New[K cmp.Ordered, V any](opts ...Option) *Map[K, V] {
	return NewFunc[K, V](cmp.Compare[K], opts...)
}

// NewFunc creates an empty Map ordered by the given comparison function.
// compare must define a total order: negative when a sorts before b, zero
// when equal, positive otherwise. Panics if compare is nil or an option is
// invalid.
func NewFunc[K, V any](compare func(K, K) int, opts ...Option) *Map[K, V] {
	if compare == nil {
		panic("bptree: compare function cannot be nil")
	}
	cfg := buildConfig(opts)
	return &Map[K, V]{
		root:    newLeaf[K, V](),
		order:   cfg.order,
		compare: compare,
		logger:  cfg.logger,
	}
}

// Order returns the map's branching factor.
func (m *Map[K, V]) Order() int { return m.order }

// Len returns the number of entries.
func (m *Map[K, V]) Len() int { return m.count }

// IsEmpty reports whether the map has no entries.
func (m *Map[K, V]) IsEmpty() bool { return m.count == 0 }

// maxEntries is the most entries a leaf may hold, maxChildren the most
// children an internal node may hold. Both equal the order; the minimums
// are half that, rounded up, and do not apply to the root.
func (m *Map[K, V]) maxEntries() int  { return m.order }
func (m *Map[K, V]) minEntries() int  { return (m.order + 1) / 2 }
func (m *Map[K, V]) maxChildren() int { return m.order }
func (m *Map[K, V]) minChildren() int { return (m.order + 1) / 2 }

func (m *Map[K, V]) overflows(n *node[K, V]) bool {
	if n.leaf {
		return len(n.keys) > m.maxEntries()
	}
	return len(n.children) > m.maxChildren()
}

func (m *Map[K, V]) underflows(n *node[K, V]) bool {
	if n.leaf {
		return len(n.keys) < m.minEntries()
	}
	return len(n.children) < m.minChildren()
}

// pathStep records one descent decision: the internal node visited and the
// child index chosen there. A full path pins every ancestor of the target
// leaf so structural changes can be propagated bottom-up without parent
// pointers or recursion.
type pathStep[K, V any] struct {
	n   *node[K, V]
	idx int
}

// descend walks from the root to the leaf whose range covers key. It
// returns the internal-node path, the leaf, the index in the leaf where
// key is (or would be inserted), and whether it was found.
func (m *Map[K, V]) descend(key K) ([]pathStep[K, V], *node[K, V], int, bool) {
	var path []pathStep[K, V]
	n := m.root
	for !n.leaf {
		idx := n.childIndex(m.compare, key)
		path = append(path, pathStep[K, V]{n: n, idx: idx})
		n = n.children[idx]
	}
	idx, found := n.findKey(m.compare, key)
	return path, n, idx, found
}

// leftmostLeaf returns the first leaf in key order.
func (m *Map[K, V]) leftmostLeaf() *node[K, V] {
	n := m.root
	for !n.leaf {
		n = n.children[0]
	}
	return n
}

// rightmostLeaf returns the last leaf in key order.
func (m *Map[K, V]) rightmostLeaf() *node[K, V] {
	n := m.root
	for !n.leaf {
		n = n.children[len(n.children)-1]
	}
	return n
}

// Get returns the value stored for key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	_, leaf, idx, found := m.descend(key)
	if !found {
		var zero V
		return zero, false
	}
	return leaf.values[idx], true
}

// GetMut returns a pointer to the value stored for key, or nil when
// absent. The pointer is valid only until the next structural mutation of
// the map.
func (m *Map[K, V]) GetMut(key K) (*V, bool) {
	_, leaf, idx, found := m.descend(key)
	if !found {
		return nil, false
	}
	return &leaf.values[idx], true
}

// MustGet returns the value stored for key and panics when the key is
// absent. It mirrors indexed read access: it never inserts.
func (m *Map[K, V]) MustGet(key K) V {
	value, found := m.Get(key)
	if !found {
		panic(fmt.Sprintf("bptree: key %v not present", any(key)))
	}
	return value
}

// Contains reports whether key is present.
func (m *Map[K, V]) Contains(key K) bool {
	_, _, _, found := m.descend(key)
	return found
}

// First returns the smallest entry in key order.
func (m *Map[K, V]) First() (K, V, bool) {
	if m.count == 0 {
		var k K
		var v V
		return k, v, false
	}
	leaf := m.leftmostLeaf()
	return leaf.keys[0], leaf.values[0], true
}

// Last returns the largest entry in key order.
func (m *Map[K, V]) Last() (K, V, bool) {
	if m.count == 0 {
		var k K
		var v V
		return k, v, false
	}
	leaf := m.rightmostLeaf()
	last := len(leaf.keys) - 1
	return leaf.keys[last], leaf.values[last], true
}

// Clear drops every entry, replacing the tree with an empty single-leaf
// root.
func (m *Map[K, V]) Clear() {
	m.root = newLeaf[K, V]()
	m.count = 0
}
