package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// View selects which of the two trees is serialized or mirrored.
type View uint8

// Logical views include shadow roots as declarative templates, physical
// views show what has been composed.
const (
	LogicalView View = iota
	PhysicalView
)

// ParseFragment parses HTML in the context of a <body> element and returns
// the top-level nodes. The nodes form a physical tree and are Unlinked.
// Template elements keep their content as ordinary children.
func ParseFragment(doc *Document, r io.Reader) ([]*Node, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	hnodes, err := html.ParseFragment(r, context)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML fragment: %w", err)
	}
	var nodes []*Node
	for _, h := range hnodes {
		if n := fromHTML(doc, h); n != nil {
			nodes = append(nodes, n)
		}
	}
	tracer().Debugf("parsed %d top-level nodes", len(nodes))
	return nodes, nil
}

// MustParse is a variant of ParseFragment for tests and hard-coded markup;
// it panics on parse errors.
func MustParse(doc *Document, markup string) []*Node {
	nodes, err := ParseFragment(doc, strings.NewReader(markup))
	if err != nil {
		panic(err)
	}
	return nodes
}

func fromHTML(doc *Document, h *html.Node) *Node {
	var n *Node
	switch h.Type {
	case html.ElementNode:
		n = doc.CreateElement(h.Data)
		for _, a := range h.Attr {
			n.SetAttr(a.Key, a.Val)
		}
	case html.TextNode:
		n = doc.CreateText(h.Data)
	case html.CommentNode:
		n = doc.CreateComment(h.Data)
	default:
		return nil // doctype and the like are of no interest
	}
	for c := h.FirstChild; c != nil; c = c.NextSibling {
		if ch := fromHTML(doc, c); ch != nil {
			n.PhysicalAppend(ch)
		}
	}
	return n
}

// WriteHTML serializes n and its subtree in a given view. Documents and
// fragments serialize their children only. In the logical view, shadow roots
// are written as <template shadowrootmode="open"> children of their host.
func WriteHTML(w io.Writer, n *Node, view View) error {
	m := mirror(n, view, true, nil)
	if m.Type != html.DocumentNode {
		return html.Render(w, m)
	}
	for c := m.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(w, c); err != nil {
			return err
		}
	}
	return nil
}

// HTML is a convenience variant of WriteHTML returning a string.
func HTML(n *Node, view View) string {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, n, view); err != nil {
		return fmt.Sprintf("<!-- %v -->", err)
	}
	return buf.String()
}

// mirror builds an x/net/html tree for n. If index is non-nil, it is filled
// with back-references from mirrored nodes to their originals.
func mirror(n *Node, view View, withShadow bool, index map[*html.Node]*Node) *html.Node {
	var h *html.Node
	switch n.kind {
	case ElementNode, SlotNode:
		h = &html.Node{Type: html.ElementNode, Data: n.name, DataAtom: atom.Lookup([]byte(n.name))}
		for _, a := range n.attrs {
			h.Attr = append(h.Attr, html.Attribute{Key: a.Key, Val: a.Value})
		}
	case TextNode:
		h = &html.Node{Type: html.TextNode, Data: n.data}
	case CommentNode:
		h = &html.Node{Type: html.CommentNode, Data: n.data}
	default:
		h = &html.Node{Type: html.DocumentNode}
	}
	if index != nil {
		index[h] = n
	}
	if view == LogicalView && withShadow && n.shadowRoot != nil {
		tmpl := &html.Node{Type: html.ElementNode, Data: "template", DataAtom: atom.Template,
			Attr: []html.Attribute{{Key: "shadowrootmode", Val: "open"}}}
		for _, c := range n.shadowRoot.ChildNodes() {
			tmpl.AppendChild(mirror(c, view, withShadow, index))
		}
		h.AppendChild(tmpl)
	}
	var children []*Node
	if view == LogicalView {
		children = n.ChildNodes()
	} else {
		children = n.children
	}
	for _, c := range children {
		h.AppendChild(mirror(c, view, withShadow, index))
	}
	return h
}
