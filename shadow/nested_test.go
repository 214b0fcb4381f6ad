package shadow

import (
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/shadytree/dom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func byID(t *testing.T, n *dom.Node, id string) *dom.Node {
	found := dom.MustQueryAll(n, "#"+id)
	require.Len(t, found, 1, "expected exactly one #%s", id)
	return found[0]
}

const nestedMarkup = `<x-outer id="outer"><template shadowrootmode="open">` +
	`<x-inner id="inner"><template shadowrootmode="open">` +
	`<div id="frame"><slot id="is"></slot></div>` +
	`</template><slot id="os"></slot></x-inner>` +
	`</template><span id="s">light</span></x-outer>`

func TestNestedBoundariesConvergeInOneRender(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "shadytree.shadow")
	defer teardown()
	//
	doc := dom.NewDocument()
	e := New(doc)
	nodes := e.MustParse(nestedMarkup)
	require.Len(t, nodes, 1)
	outer := nodes[0]
	require.NoError(t, e.AppendChild(doc.Root(), outer))
	ob := e.BoundaryOf(outer)
	require.NotNil(t, ob)
	inner := byID(t, ob.Root(), "inner")
	ib := e.BoundaryOf(inner)
	require.NotNil(t, ib)
	frame := byID(t, ib.Root(), "frame")
	outerSlot, innerSlot := byID(t, ob.Root(), "os"), byID(t, ib.Root(), "is")
	span := byID(t, outer, "s")
	//
	ib.Render() // no flush
	if ob.RenderPending() || ib.RenderPending() {
		t.Errorf("expected a single render of the inner boundary to converge both")
	}
	assert.Equal(t, []*dom.Node{inner}, outer.PhysicalChildren())
	assert.Equal(t, []*dom.Node{frame}, inner.PhysicalChildren())
	assert.Equal(t, []*dom.Node{span}, frame.PhysicalChildren())
	if outerSlot.AssignedSlot() != innerSlot {
		t.Errorf("expected outer slot to be forwarded to inner slot, is assigned to %v", outerSlot.AssignedSlot())
	}
	assert.Equal(t, []*dom.Node{outerSlot}, e.AssignedNodes(innerSlot, false))
	assert.Equal(t, []*dom.Node{span}, e.AssignedNodes(innerSlot, true))
	if e.OwnerBoundary(frame) != ib || e.OwnerBoundary(inner) != ob || e.OwnerBoundary(span) != nil {
		t.Errorf("unexpected owner boundaries")
	}
	// queued renders have been subsumed
	var records []dom.MutationRecord
	cancel := doc.Observe(func(r dom.MutationRecord) { records = append(records, r) })
	defer cancel()
	e.Flush()
	assert.Empty(t, records)
}

func TestNestedLightChange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "shadytree.shadow")
	defer teardown()
	//
	doc := dom.NewDocument()
	e := New(doc)
	outer := e.MustParse(nestedMarkup)[0]
	require.NoError(t, e.AppendChild(doc.Root(), outer))
	e.Flush()
	frame := byID(t, e.BoundaryOf(byID(t, e.BoundaryOf(outer).Root(), "inner")).Root(), "frame")
	extra := doc.CreateText("more")
	require.NoError(t, e.AppendChild(outer, extra))
	e.Flush()
	assert.Equal(t, []string{"s", "more"}, ids(frame.PhysicalChildren()))
	require.NoError(t, e.RemoveChild(outer, byID(t, outer, "s")))
	e.Flush()
	assert.Equal(t, []string{"more"}, ids(frame.PhysicalChildren()))
}

func TestFlatteningDepthThree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "shadytree.shadow")
	defer teardown()
	//
	doc := dom.NewDocument()
	e := New(doc)
	a := e.MustParse(threeLevelMarkup)[0]
	require.NoError(t, e.AppendChild(doc.Root(), a))
	e.Flush()
	rb := e.BoundaryOf(a).Root()
	b := byID(t, rb, "b")
	rc := e.BoundaryOf(b).Root()
	c := byID(t, rc, "c")
	rp := e.BoundaryOf(c).Root()
	sc, p := byID(t, rp, "sc"), byID(t, rp, "p")
	assert.Equal(t, []string{"sb"}, ids(e.AssignedNodes(sc, false)))
	assert.Equal(t, []string{"x", "y"}, ids(e.AssignedNodes(sc, true)))
	assert.Equal(t, []string{"x", "y"}, ids(p.PhysicalChildren()))
	assert.Equal(t, []*dom.Node{b}, a.PhysicalChildren())
	assert.Equal(t, []*dom.Node{c}, b.PhysicalChildren())
	assert.Equal(t, []*dom.Node{p}, c.PhysicalChildren())
}

// errorCounter traces to the test log and remembers error messages.
type errorCounter struct {
	tracing.Trace
	messages []string
}

func (ec *errorCounter) Errorf(msg string, args ...interface{}) {
	ec.messages = append(ec.messages, fmt.Sprintf(msg, args...))
	ec.Trace.Errorf(msg, args...)
}

func (ec *errorCounter) Select(string) tracing.Trace {
	return ec
}

func (ec *errorCounter) saw(fragment string) bool {
	for _, m := range ec.messages {
		if strings.Contains(m, fragment) {
			return true
		}
	}
	return false
}

const threeLevelMarkup = `<x-a id="a"><template shadowrootmode="open">` +
	`<x-b id="b"><template shadowrootmode="open">` +
	`<x-c id="c"><template shadowrootmode="open"><p id="p"><slot id="sc"></slot></p></template>` +
	`<slot id="sb"></slot></x-c>` +
	`</template><slot id="sa"></slot></x-b>` +
	`</template><em id="x">1</em><em id="y">2</em></x-a>`

func TestRenderDepthLimit(t *testing.T) {
	errs := &errorCounter{Trace: gotestingadapter.New(t)}
	tracing.SetTraceSelector(errs)
	defer tracing.SetTraceSelector(nil)
	//
	doc := dom.NewDocument()
	e := New(doc, MaxRenderDepth(1))
	a := e.MustParse(threeLevelMarkup)[0]
	require.NoError(t, e.AppendChild(doc.Root(), a))
	e.Flush()
	if e.Scheduler().Pending() != 0 {
		t.Fatalf("expected flush to terminate with an empty queue, have %d", e.Scheduler().Pending())
	}
	b := byID(t, e.BoundaryOf(a).Root(), "b")
	c := byID(t, e.BoundaryOf(b).Root(), "c")
	cb := e.BoundaryOf(c)
	sc, p := byID(t, cb.Root(), "sc"), byID(t, cb.Root(), "p")
	for _, bd := range []*Boundary{e.BoundaryOf(a), e.BoundaryOf(b), cb} {
		if bd.RenderPending() || !bd.HasRendered() {
			t.Errorf("expected %v to have rendered", bd)
		}
	}
	// forwarding stops after one level: sc sees sb, but not what sa received
	assert.Equal(t, []string{"sb"}, ids(sc.AssignedNodes()))
	assert.Empty(t, sc.DistributedNodes())
	assert.Empty(t, p.PhysicalChildren())
	assert.Equal(t, []*dom.Node{b}, a.PhysicalChildren())
	assert.Equal(t, []*dom.Node{c}, b.PhysicalChildren())
	assert.Equal(t, []*dom.Node{p}, c.PhysicalChildren())
	for _, fragment := range []string{"exceeds max depth", "chain of boundaries too deep", "slots nested too deep"} {
		if !errs.saw(fragment) {
			t.Errorf("expected an error trace containing %q, have %v", fragment, errs.messages)
		}
	}
}

func TestDeclarativeShadowRoot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "shadytree.shadow")
	defer teardown()
	//
	doc := dom.NewDocument()
	e := New(doc)
	markup := `<x-card><template shadowrootmode="open"><header><slot name="title"></slot></header>` +
		`<slot></slot></template><h1 slot="title">Title</h1><p>Body</p></x-card>`
	nodes, err := e.Parse(strings.NewReader(markup))
	require.NoError(t, err)
	card := nodes[0]
	require.NoError(t, e.AppendChild(doc.Root(), card))
	e.Flush()
	assert.Equal(t, `<x-card><header><h1 slot="title">Title</h1></header><p>Body</p></x-card>`,
		dom.HTML(card, dom.PhysicalView))
	assert.Equal(t, markup, dom.HTML(card, dom.LogicalView))
	h1 := card.FirstChild()
	if slot := e.AssignedSlot(h1); slot == nil || slot.SlotName() != "title" {
		t.Errorf("expected h1 to be assigned to slot 'title', is %v", slot)
	}
}

func TestOwnerBoundaryMemo(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "shadytree.shadow")
	defer teardown()
	//
	doc := dom.NewDocument()
	e := New(doc)
	host := connectedHost(t, e)
	sb, err := e.AttachBoundary(host)
	require.NoError(t, err)
	div := el(doc, "div", "d")
	require.NoError(t, e.AppendChild(sb.Root(), div))
	if e.OwnerBoundary(div) != sb {
		t.Fatalf("expected owner of shadow content to be %v, is %v", sb, e.OwnerBoundary(div))
	}
	if _, ok := e.owners[div]; !ok {
		t.Errorf("expected owner of connected node to be memoized between reads")
	}
	if e.OwnerBoundary(host) != nil {
		t.Errorf("expected host in light tree to have no owner")
	}
	require.NoError(t, e.RemoveChild(sb.Root(), div))
	if e.OwnerBoundary(div) != nil {
		t.Errorf("expected memo to be invalidated by removal")
	}
	if _, ok := e.owners[div]; ok {
		t.Errorf("expected detached node not to be memoized")
	}
	if e.OwnerBoundary(sb.Root()) != sb {
		t.Errorf("expected owner of a shadow root to be its boundary")
	}
}
