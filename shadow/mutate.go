package shadow

import (
	"fmt"

	"github.com/npillmayer/shadytree/dom"
)

// InsertBefore inserts node as a logical child of parent, immediately before
// ref, or at the end if ref is nil. Fragments are unpacked into parent.
//
// If parent renders natively, node is inserted physically as well. If parent
// is a host, a shadow root, or a container composed by a boundary, the
// boundary concerned is updated and will place node when rendering.
func (e *Engine) InsertBefore(parent, node, ref *dom.Node) error {
	if err := dom.CheckInsert(node, parent, ref); err != nil {
		return err
	}
	if node.Kind() == dom.FragmentNode {
		dom.RecordChildNodes(node)
		children := append([]*dom.Node(nil), node.ChildNodes()...)
		for _, ch := range children {
			if err := e.InsertBefore(parent, ch, ref); err != nil {
				return err
			}
		}
		return nil
	}
	if node == ref {
		ref = node.NextSibling()
	}
	if old := node.ParentNode(); old != nil {
		if err := e.RemoveChild(old, node); err != nil {
			return err
		}
	}
	if err := dom.LinkInsert(node, parent, ref); err != nil {
		return err
	}
	return e.afterInsert(parent, node, ref)
}

// AppendChild appends node as the last logical child of parent.
func (e *Engine) AppendChild(parent, node *dom.Node) error {
	return e.InsertBefore(parent, node, nil)
}

func (e *Engine) afterInsert(parent, node, ref *dom.Node) error {
	slots := dom.Slots(node)
	if b := e.renderer(parent); b != nil { // light child of a host or top-level shadow content
		node.Isolate()
		if parent.IsShadowRoot() && len(slots) > 0 {
			b.slotsChanged()
		}
		b.update(true)
		if !parent.IsShadowRoot() && len(slots) > 0 {
			if outer := e.OwnerBoundary(parent); outer != nil {
				outer.slotsChanged()
				outer.update(true)
			}
		}
		return nil
	}
	owner := e.OwnerBoundary(parent)
	if len(slots) > 0 && owner != nil {
		owner.slotsChanged()
	}
	if owner != nil && (parent.Kind() == dom.SlotNode || hasSlotChild(parent)) {
		node.Isolate()
		owner.update(true)
		return nil
	}
	anchor := ref
	for anchor != nil && anchor.PhysicalParent() != parent {
		anchor = anchor.NextSibling()
	}
	if err := parent.PhysicalInsertBefore(node, anchor); err != nil {
		return fmt.Errorf("inserting %v into %v: %w", node, parent, err)
	}
	if len(slots) > 0 && owner != nil {
		owner.update(true)
	}
	return nil
}

// RemoveChild removes node from the logical children of parent, and from
// wherever it is rendered.
func (e *Engine) RemoveChild(parent, node *dom.Node) error {
	if node.ParentNode() != parent {
		return fmt.Errorf("cannot remove %v from %v: %w", node, parent, dom.ErrNotFound)
	}
	slots := dom.Slots(node)
	owner := e.OwnerBoundary(parent)
	hb := e.BoundaryOf(parent)
	if err := dom.LinkRemove(node, parent); err != nil {
		return err
	}
	node.Isolate()
	if hb != nil {
		node.SetAssignedSlot(nil)
	}
	if len(slots) > 0 {
		for _, slot := range slots {
			forgetDistribution(slot)
		}
		if owner != nil {
			if !parent.IsShadowRoot() && hb == nil {
				owner.stale = append(owner.stale, parent)
			}
			owner.slotsChanged()
		}
	}
	if hb != nil {
		hb.update(true)
	}
	if owner != nil && owner != hb {
		if parent.IsShadowRoot() || len(slots) > 0 || parent.Kind() == dom.SlotNode || hasSlotChild(parent) {
			owner.update(true)
		}
	}
	return nil
}

// SetAttribute sets an attribute of an element. Changes of `slot` attributes
// of light children and of `name` attributes of slots update the boundary
// concerned.
func (e *Engine) SetAttribute(n *dom.Node, key, value string) {
	n.SetAttr(key, value)
	e.attributeChanged(n, key)
}

// RemoveAttribute removes an attribute of an element.
func (e *Engine) RemoveAttribute(n *dom.Node, key string) {
	if n.RemoveAttr(key) {
		e.attributeChanged(n, key)
	}
}

func (e *Engine) attributeChanged(n *dom.Node, key string) {
	switch key {
	case "slot":
		if p := n.ParentNode(); p != nil {
			if b := e.BoundaryOf(p); b != nil {
				b.update(true)
			}
		}
	case "name":
		if n.Kind() != dom.SlotNode {
			return
		}
		if b := e.OwnerBoundary(n); b != nil {
			b.update(true)
		}
	}
}
