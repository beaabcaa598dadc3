// Copyright (c) 2024 OpenBao a Series of LF Projects, LLC
// SPDX-License-Identifier: MPL-2.0

package bptree

import (
	"cmp"
	"fmt"
	"iter"
	"reflect"
	"slices"
	"strings"
)

// Collect builds a Map from a sequence of key-value pairs, using K's
// standard Go ordering. Later pairs overwrite earlier ones with equal
// keys.
func Collect[K cmp.Ordered, V any](seq iter.Seq2[K, V], opts ...Option) *Map[K, V] {
	m := New[K, V](opts...)
	m.Extend(seq)
	return m
}

// CollectFunc builds a Map from a sequence of key-value pairs with a
// custom comparison function.
func CollectFunc[K, V any](compare func(K, K) int, seq iter.Seq2[K, V], opts ...Option) *Map[K, V] {
	m := NewFunc[K, V](compare, opts...)
	m.Extend(seq)
	return m
}

// Extend inserts every pair produced by seq, overwriting existing keys.
func (m *Map[K, V]) Extend(seq iter.Seq2[K, V]) {
	for k, v := range seq {
		m.Insert(k, v)
	}
}

// Append moves all entries of other into m, as if each entry were removed
// from other and inserted into m in ascending key order. other is left
// empty. When m is empty and both maps share order and comparator, the
// whole tree is taken over instead of reinserting entry by entry.
func (m *Map[K, V]) Append(other *Map[K, V]) {
	if other == nil || other == m || other.count == 0 {
		return
	}

	if m.count == 0 && m.order == other.order && sameCompare(m.compare, other.compare) {
		m.root, m.count = other.root, other.count
		other.Clear()
		return
	}

	for k, v := range other.All() {
		m.Insert(k, v)
	}
	other.Clear()
}

func sameCompare[K any](a, b func(K, K) int) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

// Retain removes every entry for which keep returns false, visiting
// entries in ascending key order.
func (m *Map[K, V]) Retain(keep func(K, V) bool) {
	var doomed []K
	for k, v := range m.All() {
		if !keep(k, v) {
			doomed = append(doomed, k)
		}
	}
	for _, k := range doomed {
		m.Remove(k)
	}
}

// Clone returns a structural copy of the map. Keys and values are copied
// shallowly.
func (m *Map[K, V]) Clone() *Map[K, V] {
	out := &Map[K, V]{
		count:   m.count,
		order:   m.order,
		compare: m.compare,
		logger:  m.logger,
	}

	var prevLeaf *node[K, V]
	var cloneNode func(n *node[K, V]) *node[K, V]
	cloneNode = func(n *node[K, V]) *node[K, V] {
		c := &node[K, V]{leaf: n.leaf, keys: slices.Clone(n.keys)}
		if n.leaf {
			c.values = slices.Clone(n.values)
			// Leaves are visited left to right, so the sibling chain
			// can be relinked as we go.
			if prevLeaf != nil {
				prevLeaf.next = c
			}
			prevLeaf = c
			return c
		}
		c.children = make([]*node[K, V], 0, len(n.children))
		for _, child := range n.children {
			c.children = append(c.children, cloneNode(child))
		}
		return c
	}
	out.root = cloneNode(m.root)
	return out
}

// String renders the map's contents in key order.
func (m *Map[K, V]) String() string {
	var b strings.Builder
	b.WriteString("map[")
	first := true
	for k, v := range m.All() {
		if !first {
			b.WriteByte(' ')
		}
		first = false
		fmt.Fprintf(&b, "%v:%v", k, v)
	}
	b.WriteByte(']')
	return b.String()
}
