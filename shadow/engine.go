package shadow

import (
	"github.com/npillmayer/shadytree/dom"
	"github.com/npillmayer/shadytree/schedule"
)

const defaultMaxRenderDepth = 64

// Engine manages all boundaries of a document. All operations must be called
// from a single logical thread (see package schedule).
type Engine struct {
	doc         *dom.Document
	sched       *schedule.Scheduler
	owners      map[*dom.Node]*Boundary // memoized owner boundaries of connected nodes
	ownersGen   uint64                  // document generation the memo is valid for
	maxDepth    int
	synchronous bool
}

// Option is a type to help initializing engines at creation time.
type Option func(*Engine) *Engine

// WithScheduler sets the scheduler which batches renders. If omitted, the
// engine creates a scheduler without poster, and clients call Engine.Flush
// at their microtask checkpoint.
func WithScheduler(s *schedule.Scheduler) Option {
	return func(e *Engine) *Engine {
		e.sched = s
		return e
	}
}

// MaxRenderDepth limits how far a single render pass propagates to dependent
// boundaries. The lower bound is 1.
func MaxRenderDepth(n int) Option {
	return func(e *Engine) *Engine {
		if n < 1 {
			n = 1
		}
		e.maxDepth = n
		return e
	}
}

// Synchronous makes every update render immediately instead of deferring it
// to the scheduler. This is useful for batch processing and for tests.
func Synchronous() Option {
	return func(e *Engine) *Engine {
		e.synchronous = true
		return e
	}
}

// New creates an engine for a document.
func New(doc *dom.Document, opts ...Option) *Engine {
	e := &Engine{
		doc:      doc,
		owners:   make(map[*dom.Node]*Boundary),
		maxDepth: defaultMaxRenderDepth,
	}
	for _, option := range opts {
		e = option(e)
	}
	if e.sched == nil {
		e.sched = schedule.New()
	}
	return e
}

// Document returns the document the engine operates on.
func (e *Engine) Document() *dom.Document {
	return e.doc
}

// Scheduler returns the engine's render queue.
func (e *Engine) Scheduler() *schedule.Scheduler {
	return e.sched
}

// Flush executes all pending renders.
func (e *Engine) Flush() {
	e.sched.Flush()
}

// BoundaryOf returns the boundary hosted by an element, or nil.
// Boundaries hang off their host's shadow root; the engine keeps no registry,
// so a boundary is garbage as soon as its host is.
func (e *Engine) BoundaryOf(host *dom.Node) *Boundary {
	if host == nil || host.ShadowRoot() == nil {
		return nil
	}
	if b, ok := host.ShadowRoot().ShadowData().(*Boundary); ok && b.engine == e {
		return b
	}
	return nil
}

// OwnerBoundary returns the nearest boundary whose shadow tree contains n,
// or nil if n is part of the document's light tree (or of a detached tree).
// A host is owned by the boundary it sits in, not by the one it hosts.
//
// Results are memoized for connected nodes only, and only until the next
// structural change of the document. Every logical edit starts a new
// generation, so the memo pays off in read-heavy phases (rendering,
// event retargeting) rather than across mutations.
func (e *Engine) OwnerBoundary(n *dom.Node) *Boundary {
	if gen := e.doc.Generation(); gen != e.ownersGen {
		e.owners = make(map[*dom.Node]*Boundary)
		e.ownersGen = gen
	}
	if b, ok := e.owners[n]; ok {
		return b
	}
	var b *Boundary
	if root := dom.RootNode(n); root.IsShadowRoot() {
		b = e.BoundaryOf(root.Host())
	}
	if dom.IsConnected(n) {
		e.owners[n] = b
	}
	return b
}

// AssignedNodes returns the nodes assigned to a slot, or, if flatten is
// set, the flattened list of nodes finally distributed to it. Pending renders
// of the slot's boundary are executed first.
func (e *Engine) AssignedNodes(slot *dom.Node, flatten bool) []*dom.Node {
	if b := e.OwnerBoundary(slot); b != nil && b.renderPending {
		b.Render()
	}
	if flatten {
		return slot.DistributedNodes()
	}
	return slot.AssignedNodes()
}

// AssignedSlot returns the slot a node is assigned to, or nil. A pending
// render of the boundary hosted by n's parent is executed first.
func (e *Engine) AssignedSlot(n *dom.Node) *dom.Node {
	if p := n.ParentNode(); p != nil {
		if b := e.BoundaryOf(p); b != nil && b.renderPending {
			b.Render()
		}
	}
	return n.AssignedSlot()
}

// renderer returns the boundary which renders a container: the boundary
// hosted by it, or the one owning its shadow root.
func (e *Engine) renderer(container *dom.Node) *Boundary {
	if container.IsShadowRoot() {
		return e.BoundaryOf(container.Host())
	}
	return e.BoundaryOf(container)
}
