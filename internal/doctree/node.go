package doctree

import "github.com/google/uuid"

// Node is implemented by every element of the document tree.
type Node interface {
	// ID returns the node's stable identity.
	ID() string

	// Parent returns the node's parent, or nil for a detached node or
	// the document root.
	Parent() Node
}

// Inline is implemented by nodes that live in a block's inline sequence.
type Inline interface {
	Node

	// Raw returns the node's contribution to the block's raw markup:
	// a text segment's content verbatim, a widget's delimited form.
	Raw() string

	inline()
}

// newID returns a fresh node identity.
func newID() string {
	return uuid.NewString()
}

// Ancestor walks up from n's parent and returns the first ancestor
// satisfying pred, or nil.
func Ancestor(n Node, pred func(Node) bool) Node {
	for a := n.Parent(); a != nil; a = a.Parent() {
		if pred(a) {
			return a
		}
	}
	return nil
}

// Attached reports whether n is reachable from doc by parent links.
func Attached(doc *Document, n Node) bool {
	if n == nil {
		return false
	}
	if n == Node(doc) {
		return true
	}
	return Ancestor(n, func(a Node) bool { return a == Node(doc) }) != nil
}
