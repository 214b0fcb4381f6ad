package dom

import "fmt"

/*
The physical tree is what a renderer sees. Nodes maintain a slice of
children, the way a native DOM would. Physical operations never touch the
logical linkage, but if a node involved is still Unlinked, its logical view
changes as well, and we have to bump the document generation.
*/

// PhysicalParent returns the physical parent node or nil.
func (n *Node) PhysicalParent() *Node {
	return n.parent
}

// PhysicalChildCount returns the number of physical children of n.
func (n *Node) PhysicalChildCount() int {
	return len(n.children)
}

// PhysicalChild returns the physical child at position i.
func (n *Node) PhysicalChild(i int) (*Node, bool) {
	if i < 0 || i >= len(n.children) {
		return nil, false
	}
	return n.children[i], true
}

// PhysicalChildren returns a copy of the slice of physical children.
func (n *Node) PhysicalChildren() []*Node {
	if len(n.children) == 0 {
		return nil
	}
	children := make([]*Node, len(n.children))
	copy(children, n.children)
	return children
}

// PhysicalIndexOf returns the index of ch within the physical children of n,
// or -1.
func (n *Node) PhysicalIndexOf(ch *Node) int {
	for i, child := range n.children {
		if child == ch {
			return i
		}
	}
	return -1
}

// PhysicalFirstChild returns the first physical child or nil.
func (n *Node) PhysicalFirstChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

// PhysicalLastChild returns the last physical child or nil.
func (n *Node) PhysicalLastChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[len(n.children)-1]
}

// PhysicalNextSibling returns the next physical sibling or nil.
func (n *Node) PhysicalNextSibling() *Node {
	if n.parent == nil {
		return nil
	}
	i := n.parent.PhysicalIndexOf(n)
	if i+1 < len(n.parent.children) {
		return n.parent.children[i+1]
	}
	return nil
}

// PhysicalPreviousSibling returns the previous physical sibling or nil.
func (n *Node) PhysicalPreviousSibling() *Node {
	if n.parent == nil {
		return nil
	}
	if i := n.parent.PhysicalIndexOf(n); i > 0 {
		return n.parent.children[i-1]
	}
	return nil
}

// PhysicalAppend appends ch as the last physical child of n.
// It returns the parent node to allow for chaining.
func (n *Node) PhysicalAppend(ch *Node) *Node {
	if err := n.PhysicalInsertBefore(ch, nil); err != nil {
		tracer().Errorf(err.Error())
		panic(err)
	}
	return n
}

// PhysicalInsertBefore physically inserts ch as a child of n, immediately
// before ref, or at the end if ref is nil. If ch already has a physical
// parent, it is removed from there first. Fragments are emptied into n.
func (n *Node) PhysicalInsertBefore(ch, ref *Node) error {
	if ch == nil {
		return nil
	}
	if ref != nil && ref.parent != n {
		return fmt.Errorf("cannot insert %v before %v: %w", ch, ref, ErrNotFound)
	}
	if ch.kind == DocumentNode || ch == n || physicallyContains(ch, n) {
		return fmt.Errorf("cannot insert %v into %v: %w", ch, n, ErrHierarchy)
	}
	if ch.kind == FragmentNode {
		for _, c := range ch.PhysicalChildren() {
			if err := n.PhysicalInsertBefore(c, ref); err != nil {
				return err
			}
		}
		return nil
	}
	if ch == ref {
		return nil // already in place
	}
	if ch.parent != nil {
		ch.parent.PhysicalRemove(ch)
	}
	i := len(n.children)
	if ref != nil {
		i = n.PhysicalIndexOf(ref)
	}
	n.children = append(n.children, nil)   // make room for one child
	copy(n.children[i+1:], n.children[i:]) // shift i+1..n
	n.children[i] = ch
	ch.parent = n
	n.physicalChange(ch)
	n.doc.notify(MutationRecord{Kind: ChildInserted, Target: n, Node: ch, Before: ref})
	return nil
}

// PhysicalRemove removes ch from the physical children of n. It reports
// whether ch has been a physical child of n.
func (n *Node) PhysicalRemove(ch *Node) bool {
	i := n.PhysicalIndexOf(ch)
	if i < 0 {
		return false
	}
	copy(n.children[i:], n.children[i+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]
	ch.parent = nil
	n.physicalChange(ch)
	n.doc.notify(MutationRecord{Kind: ChildRemoved, Target: n, Node: ch})
	return true
}

// Isolate removes a node from its physical parent.
// Isolate returns the isolated node.
func (n *Node) Isolate() *Node {
	if n != nil && n.parent != nil {
		n.parent.PhysicalRemove(n)
	}
	return n
}

func (n *Node) physicalChange(ch *Node) {
	if n.logical.down == Unlinked || ch.logical.up == Unlinked {
		n.logical.childNodes = nil
		n.doc.touch()
	}
}

func physicallyContains(n, other *Node) bool {
	for p := other.parent; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}
