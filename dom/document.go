package dom

import (
	"fmt"
	"strings"
)

// Document creates nodes and owns the root of the tree a renderer will see.
// It keeps a structural generation counter, which is incremented on every
// mutation that may change the result of a logical read.
type Document struct {
	root       *Node
	generation uint64
	observers  []observer
	nextID     int
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	doc := &Document{}
	doc.root = &Node{kind: DocumentNode, doc: doc}
	return doc
}

// Root returns the document node.
func (doc *Document) Root() *Node {
	return doc.root
}

// Generation returns the structural generation of the document. Clients may
// compare generations to find out if cached tree-derived values are stale.
func (doc *Document) Generation() uint64 {
	return doc.generation
}

func (doc *Document) touch() {
	doc.generation++
}

// CreateElement creates an element with a given tag name. Elements named
// "slot" are created as slots.
func (doc *Document) CreateElement(name string, attrs ...Attribute) *Node {
	name = strings.ToLower(name)
	n := &Node{kind: ElementNode, name: name, doc: doc}
	if name == "slot" {
		n.kind = SlotNode
	}
	for _, a := range attrs {
		n.SetAttr(a.Key, a.Value)
	}
	return n
}

// CreateText creates a text node.
func (doc *Document) CreateText(s string) *Node {
	return &Node{kind: TextNode, data: s, doc: doc}
}

// CreateComment creates a comment node.
func (doc *Document) CreateComment(s string) *Node {
	return &Node{kind: CommentNode, data: s, doc: doc}
}

// CreateFragment creates an empty document fragment.
func (doc *Document) CreateFragment() *Node {
	return &Node{kind: FragmentNode, doc: doc}
}

// CreateShadowRoot creates a shadow root fragment for a host element.
// A host may own at most one shadow root.
func (doc *Document) CreateShadowRoot(host *Node) (*Node, error) {
	if host.kind != ElementNode {
		return nil, fmt.Errorf("cannot create shadow root for %v: %w", host, ErrHierarchy)
	}
	if host.shadowRoot != nil {
		return nil, fmt.Errorf("%v already hosts a shadow root: %w", host, ErrHierarchy)
	}
	root := doc.CreateFragment()
	root.host = host
	root.logical.down = Linked // a shadow root never renders physically
	host.shadowRoot = root
	doc.touch()
	tracer().Debugf("created shadow root for host %v", host)
	return root, nil
}

// --- Mutation observers ----------------------------------------------------

// MutationKind tells whether a physical child has been inserted or removed.
type MutationKind uint8

// Kinds of physical mutations.
const (
	ChildInserted MutationKind = iota + 1
	ChildRemoved
)

func (k MutationKind) String() string {
	switch k {
	case ChildInserted:
		return "insert"
	case ChildRemoved:
		return "remove"
	}
	return "<invalid mutation>"
}

// MutationRecord describes a single physical mutation.
// For insertions, Before is the reference node (nil means appended).
type MutationRecord struct {
	Kind   MutationKind
	Target *Node // physical container
	Node   *Node // inserted or removed child
	Before *Node
}

func (r MutationRecord) String() string {
	if r.Kind == ChildInserted {
		return fmt.Sprintf("%s %v into %v before %v", r.Kind, r.Node, r.Target, r.Before)
	}
	return fmt.Sprintf("%s %v from %v", r.Kind, r.Node, r.Target)
}

type observer struct {
	id int
	f  func(MutationRecord)
}

// Observe registers a callback for physical mutations of nodes created by
// doc. Observe returns a function to cancel the registration.
func (doc *Document) Observe(f func(MutationRecord)) (cancel func()) {
	doc.nextID++
	id := doc.nextID
	doc.observers = append(doc.observers, observer{id: id, f: f})
	return func() {
		for i, o := range doc.observers {
			if o.id == id {
				doc.observers = append(doc.observers[:i], doc.observers[i+1:]...)
				return
			}
		}
	}
}

func (doc *Document) notify(rec MutationRecord) {
	if doc == nil {
		return
	}
	for _, o := range doc.observers {
		o.f(rec)
	}
}
