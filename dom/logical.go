package dom

import "fmt"

// Linkage tells whether a relation of a node has a logical record, or if
// reads of that relation defer to the physical tree.
type Linkage uint8

// A node is Unlinked until a logical record for a relation is established.
const (
	Unlinked Linkage = iota
	Linked
)

func (l Linkage) String() string {
	if l == Linked {
		return "linked"
	}
	return "unlinked"
}

// linkage is the logical record of a node. `up` covers parent and siblings,
// `down` covers first/last child and the cached list of child nodes.
type linkage struct {
	up, down    Linkage
	parent      *Node
	next, prev  *Node
	first, last *Node
	childNodes  []*Node // cache; nil if invalid
}

// ParentLinkage tells if parent and sibling reads use a logical record.
func (n *Node) ParentLinkage() Linkage {
	return n.logical.up
}

// ChildLinkage tells if child reads use a logical record.
func (n *Node) ChildLinkage() Linkage {
	return n.logical.down
}

// IsDetached is true if n has had a logical parent and lost it.
func (n *Node) IsDetached() bool {
	return n.logical.up == Linked && n.logical.parent == nil
}

// --- Logical reads ---------------------------------------------------------

// ParentNode returns the logical parent of n.
func (n *Node) ParentNode() *Node {
	if n.logical.up == Linked {
		return n.logical.parent
	}
	return n.parent
}

// NextSibling returns the logical next sibling of n.
func (n *Node) NextSibling() *Node {
	if n.logical.up == Linked {
		return n.logical.next
	}
	return n.PhysicalNextSibling()
}

// PreviousSibling returns the logical previous sibling of n.
func (n *Node) PreviousSibling() *Node {
	if n.logical.up == Linked {
		return n.logical.prev
	}
	return n.PhysicalPreviousSibling()
}

// FirstChild returns the logical first child of n.
func (n *Node) FirstChild() *Node {
	if n.logical.down == Linked {
		return n.logical.first
	}
	return n.PhysicalFirstChild()
}

// LastChild returns the logical last child of n.
func (n *Node) LastChild() *Node {
	if n.logical.down == Linked {
		return n.logical.last
	}
	return n.PhysicalLastChild()
}

// ChildNodes returns the logical children of n, in order.
// The returned slice is a cache owned by n and must not be modified by
// clients.
func (n *Node) ChildNodes() []*Node {
	if n.logical.down == Unlinked {
		if n.logical.childNodes == nil {
			n.logical.childNodes = n.PhysicalChildren()
		}
		return n.logical.childNodes
	}
	if n.logical.childNodes == nil && n.logical.first != nil {
		for c := n.logical.first; c != nil; c = c.logical.next {
			n.logical.childNodes = append(n.logical.childNodes, c)
		}
	}
	return n.logical.childNodes
}

// HasChildNodes is true if n has at least one logical child.
func (n *Node) HasChildNodes() bool {
	return n.FirstChild() != nil
}

// --- Logical mutations -----------------------------------------------------

// RecordChildNodes snapshots the current physical children of n into its
// logical record, patching parent and sibling pointers of every child.
// It is a no-op if the children of n are already Linked.
func RecordChildNodes(n *Node) {
	if n.logical.down == Linked {
		return
	}
	c := n.children
	n.logical.down = Linked
	n.logical.childNodes = nil
	n.logical.first, n.logical.last = nil, nil
	if len(c) > 0 {
		n.logical.first, n.logical.last = c[0], c[len(c)-1]
	}
	for i, ch := range c {
		ch.logical.up = Linked
		ch.logical.parent = n
		ch.logical.prev, ch.logical.next = nil, nil
		if i > 0 {
			ch.logical.prev = c[i-1]
		}
		if i+1 < len(c) {
			ch.logical.next = c[i+1]
		}
	}
	tracer().Debugf("recorded %d child nodes of %v", len(c), n)
}

// CheckInsert validates the preconditions of LinkInsert without changing
// anything.
func CheckInsert(node, container, ref *Node) error {
	switch {
	case container.kind == TextNode || container.kind == CommentNode:
		return fmt.Errorf("%v cannot have children: %w", container, ErrHierarchy)
	case node.kind == DocumentNode || node.IsShadowRoot():
		return fmt.Errorf("cannot insert %v: %w", node, ErrHierarchy)
	case node == container || Contains(node, container):
		return fmt.Errorf("cannot insert %v into its own descendant %v: %w", node, container, ErrHierarchy)
	case ref != nil && ref.ParentNode() != container:
		return fmt.Errorf("reference node %v for insertion into %v: %w", ref, container, ErrNotFound)
	}
	return nil
}

// LinkInsert logically inserts node into container, immediately before ref,
// or at the end if ref is nil. If node is a fragment, its children are
// inserted instead and the fragment is left empty. If node has a logical
// parent, it is unlinked from there first.
//
// LinkInsert does not touch the physical tree.
func LinkInsert(node, container, ref *Node) error {
	if err := CheckInsert(node, container, ref); err != nil {
		return err
	}
	RecordChildNodes(container)
	if node.kind == FragmentNode {
		RecordChildNodes(node)
		children := append([]*Node(nil), node.ChildNodes()...)
		for _, ch := range children {
			linkBefore(ch, container, ref)
		}
		node.logical.first, node.logical.last = nil, nil
		node.logical.childNodes = nil
		return nil
	}
	if node == ref {
		return nil
	}
	linkBefore(node, container, ref)
	return nil
}

func linkBefore(node, container, ref *Node) {
	if p := node.ParentNode(); p != nil {
		RecordChildNodes(p)
		unlink(node, p)
	}
	node.logical.up = Linked
	node.logical.parent = container
	if ref != nil {
		node.logical.prev = ref.logical.prev
		node.logical.next = ref
		ref.logical.prev = node
	} else {
		node.logical.prev = container.logical.last
		node.logical.next = nil
		container.logical.last = node
	}
	if node.logical.prev != nil {
		node.logical.prev.logical.next = node
	} else {
		container.logical.first = node
	}
	container.logical.childNodes = nil
	container.doc.touch()
}

// LinkRemove logically removes node from container. Afterwards node is
// detached: its parent linkage is Linked, but without a parent.
//
// LinkRemove does not touch the physical tree.
func LinkRemove(node, container *Node) error {
	if node.ParentNode() != container {
		return fmt.Errorf("cannot remove %v from %v: %w", node, container, ErrNotFound)
	}
	RecordChildNodes(container)
	unlink(node, container)
	return nil
}

func unlink(node, container *Node) {
	assertThat(node.logical.parent == container, "%v is not linked to %v", node, container)
	if node.logical.prev != nil {
		node.logical.prev.logical.next = node.logical.next
	} else {
		container.logical.first = node.logical.next
	}
	if node.logical.next != nil {
		node.logical.next.logical.prev = node.logical.prev
	} else {
		container.logical.last = node.logical.prev
	}
	node.logical.up = Linked
	node.logical.parent = nil
	node.logical.next, node.logical.prev = nil, nil
	container.logical.childNodes = nil
	container.doc.touch()
}

// --- Logical tree helpers --------------------------------------------------

// Contains is true if other is a logical descendant of n, or n itself.
func Contains(n, other *Node) bool {
	for p := other; p != nil; p = p.ParentNode() {
		if p == n {
			return true
		}
	}
	return false
}

// RootNode returns the root of the logical tree n belongs to. Shadow roots
// are not crossed.
func RootNode(n *Node) *Node {
	for p := n.ParentNode(); p != nil; p = n.ParentNode() {
		n = p
	}
	return n
}

// IsConnected is true if n is (logically) part of a document, crossing from
// shadow roots to their hosts.
func IsConnected(n *Node) bool {
	root := RootNode(n)
	for root.IsShadowRoot() {
		root = RootNode(root.host)
	}
	return root.kind == DocumentNode
}

// Descendants returns the logical descendants of n in document order,
// excluding n. Shadow roots of hosts are not entered.
func Descendants(n *Node) []*Node {
	var nodes []*Node
	var walk func(*Node)
	walk = func(p *Node) {
		for c := p.FirstChild(); c != nil; c = c.NextSibling() {
			nodes = append(nodes, c)
			walk(c)
		}
	}
	walk(n)
	return nodes
}

// Slots returns all slots in the logical subtree of n, including n itself,
// in document order. Shadow roots of hosts are not entered.
func Slots(n *Node) []*Node {
	var slots []*Node
	if n.kind == SlotNode {
		slots = append(slots, n)
	}
	for _, d := range Descendants(n) {
		if d.kind == SlotNode {
			slots = append(slots, d)
		}
	}
	return slots
}
