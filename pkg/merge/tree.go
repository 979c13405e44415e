// File: pkg/merge/tree.go
package merge

import (
	"sort"
	"strings"
)

// treeNode is one path segment in the included-file hierarchy.
type treeNode struct {
	children map[string]*treeNode
	isFile   bool
}

func newTreeNode() *treeNode {
	return &treeNode{children: make(map[string]*treeNode)}
}

// RenderTree draws the admitted files as a box-drawing tree, one scanned
// root per block. Every line carries a "# " prefix so the block reads as a
// comment ahead of the merged entries. The result has no trailing newline.
func RenderTree(tasks []FileTask) string {
	root := newTreeNode()
	for _, t := range tasks {
		node := root
		parts := strings.Split(t.RelPath, "/")
		for i, part := range parts {
			child := node.children[part]
			if child == nil {
				child = newTreeNode()
				node.children[part] = child
			}
			if i == len(parts)-1 {
				child.isFile = true
			}
			node = child
		}
	}

	var b strings.Builder
	for _, name := range sortedNames(root) {
		b.WriteString("# " + name + "/\n")
		renderSubtree(&b, root.children[name], "")
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderSubtree emits one directory level with the usual connectors.
func renderSubtree(b *strings.Builder, node *treeNode, prefix string) {
	names := sortedNames(node)
	for i, name := range names {
		connector := "├── "
		extension := "│   "
		if i == len(names)-1 {
			connector = "└── "
			extension = "    "
		}

		child := node.children[name]
		if child.isFile {
			b.WriteString("# " + prefix + connector + name + "\n")
			continue
		}
		b.WriteString("# " + prefix + connector + name + "/\n")
		renderSubtree(b, child, prefix+extension)
	}
}

// sortedNames orders children directories first, then files, both
// case-insensitively with a raw tiebreak to keep rendering deterministic.
func sortedNames(node *treeNode) []string {
	names := make([]string, 0, len(node.children))
	for name := range node.children {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		di := !node.children[names[i]].isFile
		dj := !node.children[names[j]].isFile
		if di != dj {
			return di
		}
		li, lj := strings.ToLower(names[i]), strings.ToLower(names[j])
		if li != lj {
			return li < lj
		}
		return names[i] < names[j]
	})
	return names
}
