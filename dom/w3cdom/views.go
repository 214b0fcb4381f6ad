package w3cdom

import (
	"fmt"
	"strings"

	"github.com/npillmayer/shadytree/dom"
	"golang.org/x/net/html"
)

// view wraps a dom.Node and decides which of the two trees to follow.
type view struct {
	n        *dom.Node
	composed bool
}

// Logical returns a W3C view of n following the logical (authored) tree.
func Logical(n *dom.Node) Node {
	if n == nil {
		return nil
	}
	return view{n: n}
}

// Composed returns a W3C view of n following the physical (composed) tree.
func Composed(n *dom.Node) Node {
	if n == nil {
		return nil
	}
	return view{n: n, composed: true}
}

// Unwrap returns the engine node behind a view, or nil if w is not a view
// created by this package.
func Unwrap(w Node) *dom.Node {
	if v, ok := w.(view); ok {
		return v.n
	}
	return nil
}

func (v view) wrap(n *dom.Node) Node {
	if n == nil {
		return nil // avoid non-nil interfaces holding nil nodes
	}
	return view{n: n, composed: v.composed}
}

func (v view) children() []*dom.Node {
	if v.composed {
		return v.n.PhysicalChildren()
	}
	return v.n.ChildNodes()
}

func (v view) NodeType() html.NodeType {
	switch v.n.Kind() {
	case dom.ElementNode, dom.SlotNode:
		return html.ElementNode
	case dom.TextNode:
		return html.TextNode
	case dom.CommentNode:
		return html.CommentNode
	}
	return html.DocumentNode
}

func (v view) NodeName() string {
	return v.n.Name()
}

func (v view) NodeValue() string {
	switch v.n.Kind() {
	case dom.TextNode, dom.CommentNode:
		return v.n.Data()
	}
	return ""
}

func (v view) HasAttributes() bool {
	return len(v.n.Attributes()) > 0
}

func (v view) ParentNode() Node {
	if v.composed {
		return v.wrap(v.n.PhysicalParent())
	}
	return v.wrap(v.n.ParentNode())
}

func (v view) HasChildNodes() bool {
	return len(v.children()) > 0
}

func (v view) ChildNodes() NodeList {
	return nodeList{nodes: v.children(), composed: v.composed}
}

func (v view) Children() NodeList {
	var elems []*dom.Node
	for _, c := range v.children() {
		if c.IsElement() {
			elems = append(elems, c)
		}
	}
	return nodeList{nodes: elems, composed: v.composed}
}

func (v view) FirstChild() Node {
	if v.composed {
		return v.wrap(v.n.PhysicalFirstChild())
	}
	return v.wrap(v.n.FirstChild())
}

func (v view) NextSibling() Node {
	if v.composed {
		return v.wrap(v.n.PhysicalNextSibling())
	}
	return v.wrap(v.n.NextSibling())
}

func (v view) Attributes() NamedNodeMap {
	return attrMap(v.n.Attributes())
}

func (v view) TextContent() (string, error) {
	var b strings.Builder
	var collect func(view)
	collect = func(w view) {
		for _, c := range w.children() {
			switch c.Kind() {
			case dom.TextNode:
				b.WriteString(c.Data())
			case dom.ElementNode, dom.SlotNode, dom.FragmentNode:
				collect(view{n: c, composed: w.composed})
			}
		}
	}
	if v.n.Kind() == dom.TextNode {
		return v.n.Data(), nil
	}
	collect(v)
	return b.String(), nil
}

func (v view) String() string {
	return v.n.String()
}

// --- Node lists --------------------------------------------------------------

type nodeList struct {
	nodes    []*dom.Node
	composed bool
}

func (l nodeList) Length() int {
	return len(l.nodes)
}

func (l nodeList) Item(i int) Node {
	if i < 0 || i >= len(l.nodes) {
		return nil
	}
	return view{n: l.nodes[i], composed: l.composed}
}

func (l nodeList) String() string {
	s := make([]string, len(l.nodes))
	for i, n := range l.nodes {
		s[i] = n.String()
	}
	return fmt.Sprintf("[%s]", strings.Join(s, " "))
}

// --- Attributes ------------------------------------------------------------

type attr struct {
	a dom.Attribute
}

func (a attr) Namespace() string { return "" }
func (a attr) Key() string       { return a.a.Key }
func (a attr) Value() string     { return a.a.Value }

type attrMap []dom.Attribute

func (m attrMap) Length() int {
	return len(m)
}

func (m attrMap) Item(i int) Attr {
	if i < 0 || i >= len(m) {
		return nil
	}
	return attr{m[i]}
}

func (m attrMap) GetNamedItem(key string) Attr {
	for _, a := range m {
		if a.Key == key {
			return attr{a}
		}
	}
	return nil
}

var _ Node = view{}
var _ NodeList = nodeList{}
var _ NamedNodeMap = attrMap{}
