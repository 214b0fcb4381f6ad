package shadow

import (
	"fmt"

	"github.com/npillmayer/shadytree/compose"
	"github.com/npillmayer/shadytree/dom"
)

// Boundary is the encapsulation record of a single host.
//
// A boundary is clean after a completed render, render-pending after any
// structural mutation affecting it, and rendering while a render pass
// executes. Updates arriving during rendering are remembered and cause
// another render after the current pass.
type Boundary struct {
	engine        *Engine
	host          *dom.Node
	root          *dom.Node   // shadow root fragment
	slots         []*dom.Node // nil until first computed
	slotParents   []*dom.Node // logical parents of slots at the last query
	slotsDirty    bool        // slots have been added or removed since last query
	renderPending bool
	hasRendered   bool
	changePending bool // a structural mutation happened since the last render
	rendering     bool
	rerender      bool        // update arrived during rendering
	stale         []*dom.Node // former slot parents to compose once more
}

// AttachBoundary creates the boundary for a host. The host's current
// children are recorded as its light DOM, and a first render is requested.
// There is at most one boundary per host, and it lives as long as the host.
func (e *Engine) AttachBoundary(host *dom.Node) (*Boundary, error) {
	if host.Kind() != dom.ElementNode {
		return nil, fmt.Errorf("cannot attach boundary to %v: %w", host, ErrNotAnElement)
	}
	if host.ShadowRoot() != nil {
		return nil, fmt.Errorf("cannot attach boundary to %v: %w", host, ErrAlreadyAttached)
	}
	dom.RecordChildNodes(host)
	root, err := e.doc.CreateShadowRoot(host)
	if err != nil {
		return nil, err
	}
	b := &Boundary{engine: e, host: host, root: root}
	root.SetShadowData(b)
	tracer().Debugf("attached boundary to %v", host)
	if outer := e.OwnerBoundary(host); outer != nil && hasSlotChild(host) {
		// slots of outer now forward into b instead of rendering in place
		outer.update(true)
	}
	b.update(false)
	return b, nil
}

// Host returns the host element of b.
func (b *Boundary) Host() *dom.Node {
	return b.host
}

// Root returns the shadow root fragment of b. Content inserted into the root
// (via the engine) forms the boundary's shadow tree.
func (b *Boundary) Root() *dom.Node {
	return b.root
}

// Slots returns the slots of b's shadow tree, in document order.
func (b *Boundary) Slots() []*dom.Node {
	b.ensureSlots()
	return b.slots
}

// RenderPending is true if b is waiting to render.
func (b *Boundary) RenderPending() bool {
	return b.renderPending
}

// HasRendered is true if b has completed at least one render.
func (b *Boundary) HasRendered() bool {
	return b.hasRendered
}

// ChangePending is true if a structural mutation has occurred since the last
// render, as opposed to b still waiting for its first render.
func (b *Boundary) ChangePending() bool {
	return b.changePending
}

func (b *Boundary) String() string {
	return fmt.Sprintf("boundary(%v)", b.host)
}

// Update informs b that its content may have changed. A render is queued,
// unless one is already pending. The slots of b are queried anew at the
// next render, so Update covers changes made to the tree store directly.
func (b *Boundary) Update() {
	b.slotsChanged()
	b.update(true)
}

func (b *Boundary) update(structural bool) {
	if structural {
		b.changePending = true
	}
	if b.rendering {
		b.rerender = true
		return
	}
	if b.renderPending {
		return
	}
	b.renderPending = true
	if b.engine.synchronous {
		b.Render()
		return
	}
	b.engine.sched.Enqueue(b.Render)
}

// Render renders b if it is render-pending, and is a no-op otherwise.
// If b is part of a chain of nested slots, the outermost pending boundary
// of the chain is rendered first, which renders b as a dependent.
func (b *Boundary) Render() {
	if !b.renderPending || b.rendering {
		return
	}
	r := b.renderRoot()
	r.renderPass()
	if r != b && b.renderPending {
		b.renderPass()
	}
}

// ForceRender renders b regardless of its render-pending state.
func (b *Boundary) ForceRender() {
	if b.rendering {
		return
	}
	b.renderPass()
}

// renderRoot walks up from b through boundaries which render b's host, and
// returns the outermost one with a pending render.
func (b *Boundary) renderRoot() *Boundary {
	root := b
	depth := 0
	for r := b.parentRenderer(); r != nil; r = r.parentRenderer() {
		if depth++; depth > b.engine.maxDepth {
			tracer().Errorf("render root of %v: chain of boundaries too deep", b)
			break
		}
		if r.renderPending && !r.rendering {
			root = r
		}
	}
	if root != b {
		tracer().Debugf("render root of %v is %v", b, root)
	}
	return root
}

// parentRenderer returns the boundary whose shadow tree contains b's host,
// if that host has a slot among its light children. Only then does the outer
// boundary's distribution influence b.
func (b *Boundary) parentRenderer() *Boundary {
	outer := b.engine.OwnerBoundary(b.host)
	if outer == nil || outer == b || !hasSlotChild(b.host) {
		return nil
	}
	return outer
}

type pending struct {
	b     *Boundary
	depth int
}

// renderPass renders b and, depth first, every boundary that b's
// distribution has made dirty. Every boundary renders at most once per pass.
func (b *Boundary) renderPass() {
	visited := make(map[*Boundary]bool)
	work := []pending{{b, 0}}
	for len(work) > 0 {
		w := work[len(work)-1]
		work = work[:len(work)-1]
		if visited[w.b] || w.b.rendering {
			continue
		}
		visited[w.b] = true
		if w.depth > b.engine.maxDepth {
			tracer().Errorf("render pass of %v: dependent %v exceeds max depth %d; malformed tree?",
				b, w.b, b.engine.maxDepth)
			continue
		}
		dirty := w.b.renderSelf()
		for i := len(dirty) - 1; i >= 0; i-- { // first dirty boundary on top
			if !visited[dirty[i]] {
				work = append(work, pending{dirty[i], w.depth + 1})
			}
		}
	}
}

// renderSelf performs distribution and composition for b alone and returns
// the boundaries depending on b's distribution.
func (b *Boundary) renderSelf() []*Boundary {
	tracer().Debugf("rendering %v", b)
	b.rendering = true
	b.ensureSlots()
	dirty := b.distribute()
	b.compose()
	b.rendering = false
	b.renderPending = false
	b.changePending = false
	b.hasRendered = true
	if b.rerender {
		b.rerender = false
		b.update(true)
	}
	return dirty
}

// --- Slots -----------------------------------------------------------------

// ensureSlots re-queries the slots of the shadow tree if they have changed.
// Boundaries which never received a slot skip the query.
func (b *Boundary) ensureSlots() {
	if !b.slotsDirty {
		if b.slots == nil {
			b.slots = []*dom.Node{}
		}
		return
	}
	slots, err := dom.QueryAll(b.root, "slot")
	assertThat(err == nil, "slot query failed: %v", err)
	current := make(map[*dom.Node]bool, len(slots))
	parents := make([]*dom.Node, 0, len(slots))
	for _, slot := range slots {
		current[slot] = true
		dom.RecordChildNodes(slot)
		if p := slot.ParentNode(); p != nil {
			dom.RecordChildNodes(p)
			parents = append(parents, p)
		}
	}
	for _, slot := range b.slots { // slots which have gone away
		if !current[slot] {
			forgetDistribution(slot)
		}
	}
	keep := make(map[*dom.Node]bool, len(parents))
	for _, p := range parents {
		keep[p] = true
	}
	for _, p := range b.slotParents {
		if !keep[p] {
			b.stale = append(b.stale, p)
		}
	}
	b.slots = slots
	b.slotParents = parents
	b.slotsDirty = false
	tracer().Debugf("%v has %d slots", b, len(slots))
}

func (b *Boundary) hasSlots() bool {
	b.ensureSlots()
	return len(b.slots) > 0
}

// slotsChanged marks the slot list for re-query.
func (b *Boundary) slotsChanged() {
	b.slotsDirty = true
}

// forgetDistribution clears the assignments of a slot which is no longer
// part of the shadow tree.
func forgetDistribution(slot *dom.Node) {
	for _, n := range slot.AssignedNodes() {
		if n.AssignedSlot() == slot {
			n.SetAssignedSlot(nil)
		}
	}
	slot.SetAssignedNodes(nil)
	slot.SetDistributedNodes(nil)
}

func hasSlotChild(n *dom.Node) bool {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Kind() == dom.SlotNode {
			return true
		}
	}
	return false
}

// --- Composition -----------------------------------------------------------

// compose reconciles the physical children of the host and of every slot
// parent with the composed child lists.
func (b *Boundary) compose() {
	compose.Reconcile(b.host, b.composedChildren(b.root))
	done := map[*dom.Node]bool{b.root: true}
	containers := make([]*dom.Node, 0, len(b.slots)+len(b.stale))
	for _, slot := range b.slots {
		containers = append(containers, slot.ParentNode())
	}
	containers = append(containers, b.stale...)
	b.stale = nil
	for _, p := range containers {
		if p == nil || done[p] {
			continue
		}
		done[p] = true
		if !b.composes(p) {
			continue
		}
		compose.Reconcile(p, b.composedChildren(p))
	}
}

// composes is true if b is responsible for the physical children of p.
// Slots never render themselves, and hosts are composed by their own
// boundary.
func (b *Boundary) composes(p *dom.Node) bool {
	if p.Kind() == dom.SlotNode || b.engine.BoundaryOf(p) != nil {
		return false
	}
	return b.engine.OwnerBoundary(p) == b
}

// composedChildren lists the logical children of a container, with every slot
// replaced by its distributed nodes if the slot is their final destination.
func (b *Boundary) composedChildren(container *dom.Node) []*dom.Node {
	var children []*dom.Node
	for _, c := range container.ChildNodes() {
		if c.Kind() != dom.SlotNode {
			children = append(children, c)
			continue
		}
		if isFinalDestination(c) {
			children = append(children, c.DistributedNodes()...)
		}
	}
	return children
}

// isFinalDestination is true if slot is not forwarded into yet another slot.
func isFinalDestination(slot *dom.Node) bool {
	return slot.AssignedSlot() == nil
}
