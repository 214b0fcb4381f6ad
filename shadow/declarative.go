package shadow

import (
	"io"
	"strings"

	"github.com/npillmayer/shadytree/dom"
)

// Parse reads an HTML fragment and returns its top-level nodes. Every
// <template shadowrootmode="…"> which is a child of an element turns into a
// boundary of that element, with the template's content as shadow tree.
//
// The nodes returned are not connected to the document. Clients insert them
// with the engine's mutation operations.
func (e *Engine) Parse(r io.Reader) ([]*dom.Node, error) {
	nodes, err := dom.ParseFragment(e.doc, r)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		if err := e.declare(n); err != nil {
			return nil, err
		}
	}
	return nodes, nil
}

// MustParse is like Parse, but panics on errors.
func (e *Engine) MustParse(markup string) []*dom.Node {
	nodes, err := e.Parse(strings.NewReader(markup))
	if err != nil {
		panic(err)
	}
	return nodes
}

func (e *Engine) declare(n *dom.Node) error {
	children := append([]*dom.Node(nil), n.ChildNodes()...)
	for _, c := range children {
		if n.Kind() == dom.ElementNode && n.ShadowRoot() == nil && isShadowTemplate(c) {
			if err := e.attachTemplate(n, c); err != nil {
				return err
			}
			continue
		}
		if err := e.declare(c); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) attachTemplate(host, tmpl *dom.Node) error {
	if err := e.RemoveChild(host, tmpl); err != nil {
		return err
	}
	b, err := e.AttachBoundary(host)
	if err != nil {
		return err
	}
	tracer().Debugf("declarative shadow root for %v", host)
	content := append([]*dom.Node(nil), tmpl.ChildNodes()...)
	for _, c := range content {
		if err := e.AppendChild(b.Root(), c); err != nil {
			return err
		}
	}
	return e.declare(b.Root())
}

func isShadowTemplate(n *dom.Node) bool {
	if n.Kind() != dom.ElementNode || n.Name() != "template" {
		return false
	}
	_, ok := n.Attr("shadowrootmode")
	return ok
}
