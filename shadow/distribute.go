package shadow

import "github.com/npillmayer/shadytree/dom"

// distribute assigns the light children of b's host to the slots of b's
// shadow tree. It returns the boundaries whose hosts receive one of b's slots
// as a light child; these have to render after b.
//
// Distribution is a logical step. The only physical change is the removal of
// light children which are left unassigned, as they render nowhere.
func (b *Boundary) distribute() []*Boundary {
	for _, slot := range b.slots { // forget the previous distribution
		for _, n := range slot.AssignedNodes() {
			if n.AssignedSlot() == slot {
				n.SetAssignedSlot(nil)
			}
		}
		slot.SetAssignedNodes(nil)
	}
	pool := append([]*dom.Node(nil), b.host.ChildNodes()...)
	for _, slot := range b.slots {
		b.distributeToSlot(slot, pool)
	}
	for _, n := range pool {
		if n == nil {
			continue
		}
		n.SetAssignedSlot(nil)
		if p := n.PhysicalParent(); p != nil {
			tracer().Debugf("%v is not distributed, removing it from %v", n, p)
			p.PhysicalRemove(n)
		}
	}
	for _, slot := range b.slots {
		slot.SetDistributedNodes(b.flatten(slot.AssignedNodes(), 0))
	}
	return b.dirtyDependents()
}

// distributeToSlot matches pool entries against a slot. Matches are
// punched out of the pool, leaving holes. If nothing matches, the slot
// renders its fallback content instead.
func (b *Boundary) distributeToSlot(slot *dom.Node, pool []*dom.Node) {
	name := slot.SlotName()
	var assigned []*dom.Node
	for i, n := range pool {
		if n == nil || !slottable(n) || n.SlotAttr() != name {
			continue
		}
		assigned = append(assigned, n)
		n.SetAssignedSlot(slot)
		pool[i] = nil
	}
	if len(assigned) == 0 {
		assigned = append(assigned, slot.ChildNodes()...)
	}
	slot.SetAssignedNodes(assigned)
}

// slottable is true for node kinds which may be assigned to a slot.
// Text and comments carry no slot attribute and go to the default slot.
func slottable(n *dom.Node) bool {
	switch n.Kind() {
	case dom.ElementNode, dom.SlotNode, dom.TextNode, dom.CommentNode:
		return true
	}
	return false
}

// flatten substitutes every slot in a list of assigned nodes by the nodes
// assigned to it, transitively.
func (b *Boundary) flatten(assigned []*dom.Node, depth int) []*dom.Node {
	if depth > b.engine.maxDepth {
		tracer().Errorf("flattening slots of %v: slots nested too deep", b)
		return nil
	}
	var flat []*dom.Node
	for _, n := range assigned {
		if n.Kind() == dom.SlotNode {
			flat = append(flat, b.flatten(n.AssignedNodes(), depth+1)...)
			continue
		}
		flat = append(flat, n)
	}
	return flat
}

// dirtyDependents collects the boundaries hosted by a slot's parent, if
// those have slots themselves. Slot parents which are b's host or b's root
// do not count.
func (b *Boundary) dirtyDependents() []*Boundary {
	var dirty []*Boundary
	seen := make(map[*Boundary]bool)
	for _, slot := range b.slots {
		p := slot.ParentNode()
		if p == nil || p == b.host || p == b.root {
			continue
		}
		dep := b.engine.BoundaryOf(p)
		if dep == nil || dep == b || seen[dep] || !dep.hasSlots() {
			continue
		}
		seen[dep] = true
		dirty = append(dirty, dep)
	}
	if len(dirty) > 0 {
		tracer().Debugf("%v has %d dirty dependents", b, len(dirty))
	}
	return dirty
}
