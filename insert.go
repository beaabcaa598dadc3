// Copyright (c) 2024 OpenBao a Series of LF Projects, LLC
// SPDX-License-Identifier: MPL-2.0

package bptree

// Insert stores value under key. When the key is already present its value
// is replaced and the previous value is returned with true; the tree
// structure and entry count are unchanged. Otherwise the entry is inserted
// in sorted position and the zero value is returned with false.
func (m *Map[K, V]) Insert(key K, value V) (V, bool) {
	path, leaf, idx, found := m.descend(key)
	if found {
		prev := leaf.values[idx]
		leaf.values[idx] = value
		return prev, true
	}

	leaf.insertEntryAt(idx, key, value)
	m.count++
	m.splitUpward(path, leaf)

	var zero V
	return zero, false
}

// splitUpward resolves overflow on n by splitting it and promoting the
// separator into the parent, iterating up the captured descent path until
// a node absorbs the promotion or a new root is grown. Splits happen only
// on this path, so all leaves stay at equal depth.
func (m *Map[K, V]) splitUpward(path []pathStep[K, V], n *node[K, V]) {
	for m.overflows(n) {
		var right *node[K, V]
		var sep K
		if n.leaf {
			right, sep = n.splitLeaf()
			m.logger.Trace("split leaf", "left_entries", len(n.keys), "right_entries", len(right.keys))
		} else {
			right, sep = n.splitInternal()
			m.logger.Trace("split internal node", "left_children", len(n.children), "right_children", len(right.children))
		}

		if len(path) == 0 {
			root := newInternal[K, V]()
			root.keys = append(root.keys, sep)
			root.children = append(root.children, n, right)
			m.root = root
			m.logger.Trace("grew new root")
			return
		}

		parent := path[len(path)-1]
		path = path[:len(path)-1]
		parent.n.insertChildAt(parent.idx, sep, right)
		n = parent.n
	}
}
