// Copyright (c) 2024 OpenBao a Series of LF Projects, LLC
// SPDX-License-Identifier: MPL-2.0

package bptree

// Remove deletes the entry for key and returns its value. Removing an
// absent key returns the zero value and false and leaves the tree
// untouched.
func (m *Map[K, V]) Remove(key K) (V, bool) {
	path, leaf, idx, found := m.descend(key)
	if !found {
		var zero V
		return zero, false
	}

	_, value := leaf.removeEntryAt(idx)
	m.count--
	m.rebalanceUpward(path, leaf)
	return value, true
}

// rebalanceUpward restores occupancy bounds after a removal from n,
// walking the captured descent path bottom-up. At each underflowing level
// it borrows one entry or child from the richer adjacent sibling when that
// sibling can lend without underflowing itself; otherwise it merges with a
// sibling, which removes a separator from the parent and may push the
// underflow one level up. Finally the root is collapsed when it is an
// internal node left with a single child.
func (m *Map[K, V]) rebalanceUpward(path []pathStep[K, V], n *node[K, V]) {
	for i := len(path) - 1; i >= 0; i-- {
		if !m.underflows(n) {
			return
		}
		parent, at := path[i].n, path[i].idx

		var left, right *node[K, V]
		if at > 0 {
			left = parent.children[at-1]
		}
		if at < len(parent.children)-1 {
			right = parent.children[at+1]
		}

		// Borrow from the richer sibling; on a tie the left one lends.
		if m.pickLender(left, right) == left && m.canLend(left) {
			parent.keys[at-1] = n.stealFromLeft(left, parent.keys[at-1])
			m.logger.Trace("borrowed from left sibling")
			return
		}
		if right != nil && m.canLend(right) {
			parent.keys[at] = n.stealFromRight(right, parent.keys[at])
			m.logger.Trace("borrowed from right sibling")
			return
		}

		// Neither sibling can lend. Merge right-into-left so the
		// surviving node keeps its place in the leaf chain.
		if left != nil {
			left.mergeRight(n, parent.keys[at-1])
			parent.removeChildAt(at)
			m.logger.Trace("merged into left sibling")
		} else {
			n.mergeRight(right, parent.keys[at])
			parent.removeChildAt(at + 1)
			m.logger.Trace("merged right sibling")
		}
		n = parent
	}

	m.collapseRoot()
}

// canLend reports whether a sibling can give up one entry or child and
// stay at or above minimum occupancy.
func (m *Map[K, V]) canLend(n *node[K, V]) bool {
	if n == nil {
		return false
	}
	if n.leaf {
		return len(n.keys) > m.minEntries()
	}
	return len(n.children) > m.minChildren()
}

// pickLender chooses the richer of two adjacent siblings, preferring the
// left on a tie.
func (m *Map[K, V]) pickLender(left, right *node[K, V]) *node[K, V] {
	switch {
	case left == nil:
		return right
	case right == nil:
		return left
	case len(right.keys) > len(left.keys):
		return right
	default:
		return left
	}
}

// collapseRoot shrinks the tree while the root is an internal node with a
// single child. An empty leaf root stays: that is the empty map.
func (m *Map[K, V]) collapseRoot() {
	for !m.root.leaf && len(m.root.children) == 1 {
		m.root = m.root.children[0]
		m.logger.Trace("collapsed root")
	}
}
