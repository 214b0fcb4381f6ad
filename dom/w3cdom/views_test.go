package w3cdom

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/shadytree/dom"
	"golang.org/x/net/html"
)

func TestLogicalAndComposedViews(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "shadytree.dom")
	defer teardown()
	//
	doc := dom.NewDocument()
	div := dom.MustParse(doc, `<div class="c"><b>one</b><i>two</i></div>`)[0]
	dom.RecordChildNodes(div)
	b := div.PhysicalFirstChild()
	div.PhysicalRemove(b)
	//
	logical, composed := Logical(div), Composed(div)
	if logical.ChildNodes().Length() != 2 {
		t.Errorf("expected logical view to have 2 children, has %d", logical.ChildNodes().Length())
	}
	if composed.ChildNodes().Length() != 1 {
		t.Errorf("expected composed view to have 1 child, has %d", composed.ChildNodes().Length())
	}
	if s, _ := logical.TextContent(); s != "onetwo" {
		t.Errorf("expected logical text to be 'onetwo', is %q", s)
	}
	if s, _ := composed.TextContent(); s != "two" {
		t.Errorf("expected composed text to be 'two', is %q", s)
	}
	first := logical.FirstChild()
	if first.NodeType() != html.ElementNode || first.NodeName() != "b" {
		t.Errorf("expected first logical child to be <b>, is %v", first)
	}
	if Unwrap(first.ParentNode()) != div {
		t.Errorf("expected logical parent of <b> to be the div")
	}
	if Composed(b).ParentNode() != nil {
		t.Errorf("expected composed parent of <b> to be nil")
	}
	if a := logical.Attributes().GetNamedItem("class"); a == nil || a.Value() != "c" {
		t.Errorf("expected class attribute 'c', is %v", a)
	}
	if logical.Children().Item(5) != nil {
		t.Errorf("expected out-of-range item to be nil")
	}
	if Logical(nil) != nil {
		t.Errorf("expected view of nil to be a nil interface")
	}
}
