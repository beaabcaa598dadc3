// Copyright (c) 2024 OpenBao a Series of LF Projects, LLC
// SPDX-License-Identifier: MPL-2.0

package bptree

import "iter"

type boundKind int

const (
	unbounded boundKind = iota
	included
	excluded
)

// Bound is one end of a range: inclusive, exclusive, or absent. Each end
// of a range is specified independently.
type Bound[K any] struct {
	kind boundKind
	key  K
}

// Included bounds a range at key, with key inside the range.
func Included[K any](key K) Bound[K] { return Bound[K]{kind: included, key: key} }

// Excluded bounds a range at key, with key outside the range.
func Excluded[K any](key K) Bound[K] { return Bound[K]{kind: excluded, key: key} }

// Unbounded leaves one end of a range open.
func Unbounded[K any]() Bound[K] { return Bound[K]{kind: unbounded} }

// scan is the single traversal primitive behind every iterator variant.
// It seeks the leaf covering the lower bound, then walks entries forward
// along the sibling chain, stopping before the first entry past the upper
// bound or when visit returns false. Projections are applied by the
// callers; scan only hands out leaf slots.
//
// The map must not be structurally mutated while a scan is in progress.
func (m *Map[K, V]) scan(lo, hi Bound[K], visit func(leaf *node[K, V], i int) bool) {
	leaf, idx := m.seekLower(lo)
	for leaf != nil {
		for ; idx < len(leaf.keys); idx++ {
			if !m.withinUpper(hi, leaf.keys[idx]) {
				return
			}
			if !visit(leaf, idx) {
				return
			}
		}
		leaf = leaf.next
		idx = 0
	}
}

// seekLower descends to the first entry at or after the lower bound.
func (m *Map[K, V]) seekLower(lo Bound[K]) (*node[K, V], int) {
	if lo.kind == unbounded {
		return m.leftmostLeaf(), 0
	}
	_, leaf, idx, found := m.descend(lo.key)
	if found && lo.kind == excluded {
		idx++
	}
	return leaf, idx
}

// withinUpper reports whether key is inside the upper bound.
func (m *Map[K, V]) withinUpper(hi Bound[K], key K) bool {
	switch hi.kind {
	case unbounded:
		return true
	case included:
		return m.compare(key, hi.key) <= 0
	default:
		return m.compare(key, hi.key) < 0
	}
}

// All returns an in-order iterator over every entry. The sequence is lazy,
// single-pass, and must not outlive structural mutation of the map.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return m.Range(Unbounded[K](), Unbounded[K]())
}

// AllMut is All with mutable access: it yields pointers to the stored
// values. The map must be held exclusively for the iterator's lifetime.
func (m *Map[K, V]) AllMut() iter.Seq2[K, *V] {
	return m.RangeMut(Unbounded[K](), Unbounded[K]())
}

// Keys returns an in-order iterator over the keys.
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		m.scan(Unbounded[K](), Unbounded[K](), func(leaf *node[K, V], i int) bool {
			return yield(leaf.keys[i])
		})
	}
}

// Values returns an iterator over the values, in key order.
func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		m.scan(Unbounded[K](), Unbounded[K](), func(leaf *node[K, V], i int) bool {
			return yield(leaf.values[i])
		})
	}
}

// ValuesMut returns an iterator over pointers to the values, in key order.
// The map must be held exclusively for the iterator's lifetime.
func (m *Map[K, V]) ValuesMut() iter.Seq[*V] {
	return func(yield func(*V) bool) {
		m.scan(Unbounded[K](), Unbounded[K](), func(leaf *node[K, V], i int) bool {
			return yield(&leaf.values[i])
		})
	}
}

// Range returns an in-order iterator over the entries between lo and hi.
func (m *Map[K, V]) Range(lo, hi Bound[K]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		m.scan(lo, hi, func(leaf *node[K, V], i int) bool {
			return yield(leaf.keys[i], leaf.values[i])
		})
	}
}

// RangeMut is Range with mutable access to the values. The map must be
// held exclusively for the iterator's lifetime.
func (m *Map[K, V]) RangeMut(lo, hi Bound[K]) iter.Seq2[K, *V] {
	return func(yield func(K, *V) bool) {
		m.scan(lo, hi, func(leaf *node[K, V], i int) bool {
			return yield(leaf.keys[i], &leaf.values[i])
		})
	}
}
