// Copyright (c) 2024 OpenBao a Series of LF Projects, LLC
// SPDX-License-Identifier: MPL-2.0

package bptree

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Stats describes the tree's shape. Intended for debugging, tests, and
// capacity planning; computing it walks the whole tree.
type Stats struct {
	Entries       int
	Nodes         int
	InternalNodes int
	LeafNodes     int
	Height        int // 1 for a single-leaf tree
}

// Stats walks the tree and returns its shape.
func (m *Map[K, V]) Stats() Stats {
	var s Stats
	var walk func(n *node[K, V], depth int)
	walk = func(n *node[K, V], depth int) {
		s.Nodes++
		if depth > s.Height {
			s.Height = depth
		}
		if n.leaf {
			s.LeafNodes++
			s.Entries += len(n.keys)
			return
		}
		s.InternalNodes++
		for _, child := range n.children {
			walk(child, depth+1)
		}
	}
	walk(m.root, 1)
	return s
}

// CheckInvariants verifies every structural invariant of the tree and
// returns all violations found, or nil when the tree is well formed. No
// sequence of public operations should ever make this fail; it exists for
// tests and for debugging.
//
// Checked: equal depth of all leaves, occupancy bounds on every non-root
// node, separator count vs child count, key order within nodes, separator
// bounds over each child's subtree, global key order and completeness of
// the leaf sibling chain, and agreement between Len and the entries
// actually stored.
func (m *Map[K, V]) CheckInvariants() error {
	var result *multierror.Error

	var leafDepth int
	var leavesInOrder []*node[K, V]
	entries := 0

	var walk func(n *node[K, V], depth int, lower, upper *K)
	walk = func(n *node[K, V], depth int, lower, upper *K) {
		isRoot := n == m.root

		for i := 1; i < len(n.keys); i++ {
			if m.compare(n.keys[i-1], n.keys[i]) >= 0 {
				result = multierror.Append(result, fmt.Errorf(
					"keys out of order within node at depth %d: %v before %v",
					depth, n.keys[i-1], n.keys[i]))
			}
		}
		for _, k := range n.keys {
			if lower != nil && m.compare(k, *lower) < 0 {
				result = multierror.Append(result, fmt.Errorf(
					"key %v below subtree lower bound %v", k, *lower))
			}
			if upper != nil && m.compare(k, *upper) >= 0 {
				result = multierror.Append(result, fmt.Errorf(
					"key %v at or above subtree upper bound %v", k, *upper))
			}
		}

		if n.leaf {
			if leafDepth == 0 {
				leafDepth = depth
			} else if depth != leafDepth {
				result = multierror.Append(result, fmt.Errorf(
					"leaf at depth %d, expected all leaves at depth %d", depth, leafDepth))
			}
			if len(n.values) != len(n.keys) {
				result = multierror.Append(result, fmt.Errorf(
					"leaf has %d keys but %d values", len(n.keys), len(n.values)))
			}
			if !isRoot && len(n.keys) < m.minEntries() {
				result = multierror.Append(result, fmt.Errorf(
					"leaf underflow: %d entries, minimum %d", len(n.keys), m.minEntries()))
			}
			if len(n.keys) > m.maxEntries() {
				result = multierror.Append(result, fmt.Errorf(
					"leaf overflow: %d entries, maximum %d", len(n.keys), m.maxEntries()))
			}
			if len(n.children) != 0 {
				result = multierror.Append(result, fmt.Errorf(
					"leaf has %d children", len(n.children)))
			}
			leavesInOrder = append(leavesInOrder, n)
			entries += len(n.keys)
			return
		}

		if len(n.children) != len(n.keys)+1 {
			result = multierror.Append(result, fmt.Errorf(
				"internal node has %d children for %d separators", len(n.children), len(n.keys)))
			return
		}
		minChildren := m.minChildren()
		if isRoot {
			minChildren = 2
		}
		if len(n.children) < minChildren {
			result = multierror.Append(result, fmt.Errorf(
				"internal underflow: %d children, minimum %d", len(n.children), minChildren))
		}
		if len(n.children) > m.maxChildren() {
			result = multierror.Append(result, fmt.Errorf(
				"internal overflow: %d children, maximum %d", len(n.children), m.maxChildren()))
		}

		for i, child := range n.children {
			childLower, childUpper := lower, upper
			if i > 0 {
				childLower = &n.keys[i-1]
			}
			if i < len(n.keys) {
				childUpper = &n.keys[i]
			}
			walk(child, depth+1, childLower, childUpper)
		}
	}
	walk(m.root, 1, nil, nil)

	// The sibling chain must visit exactly the leaves, left to right, with
	// keys globally strictly increasing across it.
	chain := m.leftmostLeaf()
	for i, leaf := range leavesInOrder {
		if chain != leaf {
			result = multierror.Append(result, fmt.Errorf(
				"sibling chain diverges from tree order at leaf %d", i))
			break
		}
		chain = chain.next
	}
	if chain != nil {
		result = multierror.Append(result, fmt.Errorf("sibling chain extends past the last leaf"))
	}
	var prev *K
	for _, leaf := range leavesInOrder {
		for i := range leaf.keys {
			if prev != nil && m.compare(*prev, leaf.keys[i]) >= 0 {
				result = multierror.Append(result, fmt.Errorf(
					"global key order violated across leaves: %v before %v", *prev, leaf.keys[i]))
			}
			prev = &leaf.keys[i]
		}
	}

	if entries != m.count {
		result = multierror.Append(result, fmt.Errorf(
			"cached count %d does not match %d stored entries", m.count, entries))
	}

	return result.ErrorOrNil()
}
