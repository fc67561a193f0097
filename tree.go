package drivemirror

import (
	"context"
	"fmt"
	"path"
	"slices"
)

// Node is a remote item inside a materialized Tree.
type Node struct {
	ID       FileID
	Title    string
	IsFolder bool
	Size     int64
	Parent   FileID
	Children []FileID
	Depth    int
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Tree is a snapshot of a remote subtree taken by Materialize.
// Nodes are stored in an arena indexed by id; order holds breadth-first order starting at the root.
type Tree struct {
	root  FileID
	nodes map[FileID]*Node
	order []FileID
}

// Materialize lists the subtree rooted at rootID breadth-first and returns it as a Tree.
// Children are listed with filter. A listing failure aborts the traversal and no tree is returned.
func Materialize(ctx context.Context, p Provider, rootID FileID, filter ListFilter) (tree *Tree, err error) {
	rootItem, err := p.Stat(ctx, rootID)
	if err != nil {
		return nil, fmt.Errorf("failed to get root '%s': %w", rootID, err)
	}

	// Stat may resolve an alias such as "root" to the real id.
	root := &Node{ID: rootItem.ID, Title: rootItem.Title, IsFolder: rootItem.IsFolder, Size: rootItem.Size}
	if root.ID == "" {
		root.ID = rootID
	}
	tree = &Tree{
		root:  root.ID,
		nodes: map[FileID]*Node{root.ID: root},
		order: []FileID{root.ID},
	}

	queue := []FileID{}
	if root.IsFolder {
		queue = append(queue, root.ID)
	}
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		parentID := queue[0]
		queue = queue[1:]
		parent := tree.nodes[parentID]

		children, err := p.ListChildren(ctx, parentID, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to materialize tree of '%s': %w", rootID, err)
		}
		for _, child := range children {
			if _, seen := tree.nodes[child.ID]; seen {
				continue
			}
			node := &Node{
				ID:       child.ID,
				Title:    child.Title,
				IsFolder: child.IsFolder,
				Size:     child.Size,
				Parent:   parentID,
				Depth:    parent.Depth + 1,
			}
			tree.nodes[node.ID] = node
			tree.order = append(tree.order, node.ID)
			parent.Children = append(parent.Children, node.ID)
			if node.IsFolder {
				queue = append(queue, node.ID)
			}
		}
	}
	return tree, nil
}

// Root returns the root node.
func (t *Tree) Root() *Node {
	return t.nodes[t.root]
}

// Node returns the node with the given id.
func (t *Tree) Node(id FileID) (node *Node, found bool) {
	node, found = t.nodes[id]
	return node, found
}

// Len returns the number of nodes including the root.
func (t *Tree) Len() int {
	return len(t.order)
}

// Descendants returns every node except the root in breadth-first order.
func (t *Tree) Descendants() []*Node {
	return t.collect(func(n *Node) bool { return n.ID != t.root })
}

// Leaves returns the descendants without children. Empty folders are leaves too.
func (t *Tree) Leaves() []*Node {
	return t.collect(func(n *Node) bool { return n.ID != t.root && n.IsLeaf() })
}

// Files returns the descendants that are not folders.
func (t *Tree) Files() []*Node {
	return t.collect(func(n *Node) bool { return n.ID != t.root && !n.IsFolder })
}

// Folders returns the descendants that are folders.
func (t *Tree) Folders() []*Node {
	return t.collect(func(n *Node) bool { return n.ID != t.root && n.IsFolder })
}

// Walk calls f for each node in breadth-first order, root first. It stops at the first error.
func (t *Tree) Walk(f func(*Node) error) error {
	for _, id := range t.order {
		if err := f(t.nodes[id]); err != nil {
			return err
		}
	}
	return nil
}

// Path returns the slash-separated path of id relative to the root. The root itself is ".".
func (t *Tree) Path(id FileID) string {
	parts := []string{}
	for current := id; current != t.root; {
		node, ok := t.nodes[current]
		if !ok {
			return ""
		}
		parts = append(parts, node.Title)
		current = node.Parent
	}
	slices.Reverse(parts)
	return path.Join(append([]string{"."}, parts...)...)
}

func (t *Tree) collect(match func(*Node) bool) (nodes []*Node) {
	for _, id := range t.order {
		if n := t.nodes[id]; match(n) {
			nodes = append(nodes, n)
		}
	}
	return nodes
}
