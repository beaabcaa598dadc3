// Copyright (c) 2024 OpenBao a Series of LF Projects, LLC
// SPDX-License-Identifier: MPL-2.0

package bptree

// Entry is a view onto a single key's slot, occupied or vacant, obtained
// with one descent. It lets a lookup be followed by a conditional insert
// or an in-place update without searching again.
//
// An Entry captures the descent path and is invalidated by any other
// mutation of the map; use it immediately and discard it.
type Entry[K, V any] struct {
	m     *Map[K, V]
	key   K
	path  []pathStep[K, V]
	leaf  *node[K, V]
	idx   int
	found bool
}

// Entry locates key's slot and returns a handle over it.
func (m *Map[K, V]) Entry(key K) *Entry[K, V] {
	path, leaf, idx, found := m.descend(key)
	return &Entry[K, V]{
		m:     m,
		key:   key,
		path:  path,
		leaf:  leaf,
		idx:   idx,
		found: found,
	}
}

// Key returns the key this entry was located with.
func (e *Entry[K, V]) Key() K { return e.key }

// Present reports whether the slot is occupied.
func (e *Entry[K, V]) Present() bool { return e.found }

// AndModify applies f to the stored value when the slot is occupied, and
// does nothing otherwise. It returns the entry for chaining.
func (e *Entry[K, V]) AndModify(f func(*V)) *Entry[K, V] {
	if e.found {
		f(&e.leaf.values[e.idx])
	}
	return e
}

// OrInsert stores value when the slot is vacant, then returns a pointer to
// the stored value (new or pre-existing). The pointer is valid until the
// next structural mutation.
func (e *Entry[K, V]) OrInsert(value V) *V {
	if e.found {
		return &e.leaf.values[e.idx]
	}
	return e.insert(value)
}

// OrInsertWith is OrInsert with a lazily computed value: f runs only when
// the slot is vacant.
func (e *Entry[K, V]) OrInsertWith(f func() V) *V {
	if e.found {
		return &e.leaf.values[e.idx]
	}
	return e.insert(f())
}

// insert fills the vacant slot using the captured path, so no second
// descent happens. When the insert overflows the leaf, the slot may move
// into the newly split right sibling; the entry is re-pointed so repeated
// calls stay valid.
func (e *Entry[K, V]) insert(value V) *V {
	leaf, idx := e.leaf, e.idx
	leaf.insertEntryAt(idx, e.key, value)
	e.m.count++

	if e.m.overflows(leaf) {
		// splitLeaf keeps the lower half in place; entries at or past
		// the split point move to leaf.next.
		keep := (len(leaf.keys) + 1) / 2
		e.m.splitUpward(e.path, leaf)
		if idx >= keep {
			leaf = leaf.next
			idx -= keep
		}
	}

	e.leaf, e.idx, e.found = leaf, idx, true
	e.path = nil
	return &leaf.values[idx]
}
