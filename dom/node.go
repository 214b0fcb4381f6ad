package dom

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"strings"
)

// Kind is the type of a node. The set of kinds is closed.
type Kind uint8

// Node kinds relevant for the engine. Slots are elements with special
// meaning for distribution and therefore get a kind of their own.
const (
	ElementNode Kind = iota + 1
	SlotNode
	TextNode
	CommentNode
	FragmentNode
	DocumentNode
)

func (k Kind) String() string {
	switch k {
	case ElementNode:
		return "element"
	case SlotNode:
		return "slot"
	case TextNode:
		return "text"
	case CommentNode:
		return "comment"
	case FragmentNode:
		return "fragment"
	case DocumentNode:
		return "document"
	}
	return "<invalid node kind>"
}

// Attribute is a key/value pair of an element.
type Attribute struct {
	Key   string
	Value string
}

// Node is the building block of both the physical and the logical tree.
// Nodes are created by a Document and are referenced by pointer; the pointer
// serves as the node's stable handle.
type Node struct {
	kind  Kind
	name  string // tag name for elements and slots
	data  string // character data for text and comments
	attrs []Attribute
	doc   *Document
	// physical tree
	parent   *Node
	children []*Node
	// logical tree
	logical linkage
	// shadow linkage: host → shadow root and shadow root → host
	shadowRoot *Node
	host       *Node
	shadowData interface{} // attached by the encapsulation engine
	// distribution state
	assignedSlot *Node
	assigned     []*Node // slots only
	distributed  []*Node // slots only
}

// Kind returns the kind of a node.
func (n *Node) Kind() Kind {
	return n.kind
}

// Name returns the (lower-case) tag name for elements and slots, "#text",
// "#comment", "#document-fragment" or "#document" for the other kinds.
func (n *Node) Name() string {
	switch n.kind {
	case ElementNode, SlotNode:
		return n.name
	case TextNode:
		return "#text"
	case CommentNode:
		return "#comment"
	case FragmentNode:
		return "#document-fragment"
	case DocumentNode:
		return "#document"
	}
	return ""
}

// Data returns the character data of text and comment nodes.
func (n *Node) Data() string {
	return n.data
}

// SetData replaces the character data of a text or comment node.
func (n *Node) SetData(s string) {
	n.data = s
}

// OwnerDocument returns the document which created n.
func (n *Node) OwnerDocument() *Document {
	return n.doc
}

// IsElement is true for elements and slots.
func (n *Node) IsElement() bool {
	return n.kind == ElementNode || n.kind == SlotNode
}

// --- Attributes ------------------------------------------------------------

// Attr returns the value of an attribute and whether it is present.
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets an attribute. This is a raw operation; distribution is not
// notified.
func (n *Node) SetAttr(key, value string) {
	if !n.IsElement() {
		return
	}
	for i, a := range n.attrs {
		if a.Key == key {
			n.attrs[i].Value = value
			return
		}
	}
	n.attrs = append(n.attrs, Attribute{Key: key, Value: value})
}

// RemoveAttr removes an attribute and reports if it has been present.
func (n *Node) RemoveAttr(key string) bool {
	for i, a := range n.attrs {
		if a.Key == key {
			n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
			return true
		}
	}
	return false
}

// Attributes returns a copy of all attributes of n, in insertion order.
func (n *Node) Attributes() []Attribute {
	if len(n.attrs) == 0 {
		return nil
	}
	attrs := make([]Attribute, len(n.attrs))
	copy(attrs, n.attrs)
	return attrs
}

// SlotAttr returns the trimmed value of n's `slot` attribute. Absence and
// the empty string are equivalent, both denoting the default slot.
func (n *Node) SlotAttr() string {
	v, _ := n.Attr("slot")
	return strings.TrimSpace(v)
}

// SlotName returns the trimmed `name` attribute of a slot. The empty string
// denotes the default slot.
func (n *Node) SlotName() string {
	if n.kind != SlotNode {
		return ""
	}
	v, _ := n.Attr("name")
	return strings.TrimSpace(v)
}

// --- Shadow linkage --------------------------------------------------------

// ShadowRoot returns the shadow root fragment of a host, or nil.
func (n *Node) ShadowRoot() *Node {
	return n.shadowRoot
}

// Host returns the host element of a shadow root, or nil if n is not a
// shadow root.
func (n *Node) Host() *Node {
	return n.host
}

// IsShadowRoot is true for fragments which serve as the shadow root of a host.
func (n *Node) IsShadowRoot() bool {
	return n.kind == FragmentNode && n.host != nil
}

// ShadowData returns the value attached to a shadow root by SetShadowData.
// The tree store does not interpret it.
func (n *Node) ShadowData() interface{} {
	return n.shadowData
}

// SetShadowData attaches an opaque value to a shadow root. The value lives
// exactly as long as the shadow root, and with it the host. Calls on
// nodes other than shadow roots are ignored.
func (n *Node) SetShadowData(v interface{}) {
	if !n.IsShadowRoot() {
		return
	}
	n.shadowData = v
}

// --- Distribution state ----------------------------------------------------

// AssignedSlot returns the slot n has been assigned to by the last
// distribution, or nil.
func (n *Node) AssignedSlot() *Node {
	return n.assignedSlot
}

// SetAssignedSlot is used by the distribution engine.
func (n *Node) SetAssignedSlot(slot *Node) {
	assertThat(slot == nil || slot.kind == SlotNode, "cannot assign node to non-slot %v", slot)
	n.assignedSlot = slot
}

// AssignedNodes returns the nodes assigned to a slot by the last
// distribution. Clients will usually want the render-on-read variant of the
// distribution engine instead.
func (n *Node) AssignedNodes() []*Node {
	return n.assigned
}

// SetAssignedNodes is used by the distribution engine.
func (n *Node) SetAssignedNodes(nodes []*Node) {
	n.assigned = nodes
}

// DistributedNodes returns the flattened assigned nodes of a slot, i.e. the
// final destination list of the last distribution.
func (n *Node) DistributedNodes() []*Node {
	return n.distributed
}

// SetDistributedNodes is used by the distribution engine.
func (n *Node) SetDistributedNodes(nodes []*Node) {
	n.distributed = nodes
}

// ---------------------------------------------------------------------------

func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	switch n.kind {
	case ElementNode, SlotNode:
		if id, ok := n.Attr("id"); ok {
			return fmt.Sprintf("<%s#%s>", n.name, id)
		}
		if n.kind == SlotNode {
			return fmt.Sprintf("<slot name=%q>", n.SlotName())
		}
		return fmt.Sprintf("<%s>", n.name)
	case TextNode:
		if len(n.data) > 12 {
			return fmt.Sprintf("%q…", n.data[:12])
		}
		return fmt.Sprintf("%q", n.data)
	case CommentNode:
		return fmt.Sprintf("<!--%s-->", n.data)
	case FragmentNode:
		if n.host != nil {
			return fmt.Sprintf("(shadow-root of %v)", n.host)
		}
	}
	return "(" + n.Name() + ")"
}
