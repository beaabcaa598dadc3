// Copyright (c) 2024 OpenBao a Series of LF Projects, LLC
// SPDX-License-Identifier: MPL-2.0

package bptree

import (
	"fmt"

	"github.com/xlab/treeprint"
)

// TreeString renders the node structure as an ASCII tree, one line per
// node, for debugging. Internal nodes show their separator keys, leaves
// their entry keys.
func (m *Map[K, V]) TreeString() string {
	root := treeprint.NewWithRoot(nodeLabel(m.root))
	addChildren(root, m.root)
	return root.String()
}

func addChildren[K, V any](branch treeprint.Tree, n *node[K, V]) {
	for _, child := range n.children {
		if child.leaf {
			branch.AddNode(nodeLabel(child))
			continue
		}
		addChildren(branch.AddBranch(nodeLabel(child)), child)
	}
}

func nodeLabel[K, V any](n *node[K, V]) string {
	if n.leaf {
		return fmt.Sprintf("leaf %v", n.keys)
	}
	return fmt.Sprintf("internal %v", n.keys)
}
