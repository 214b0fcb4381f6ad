package compose

import (
	"fmt"

	"github.com/npillmayer/shadytree/dom"
)

// OpKind tells what kind of physical operation has been applied.
type OpKind uint8

// Physical operations applied by Reconcile.
const (
	RemoveOp OpKind = iota + 1
	InsertOp
)

// Op is a physical operation applied to a container. For insertions, Before
// is the anchor node (nil means appended).
type Op struct {
	Kind   OpKind
	Node   *dom.Node
	Before *dom.Node
}

func (op Op) String() string {
	if op.Kind == InsertOp {
		return fmt.Sprintf("insert %v before %v", op.Node, op.Before)
	}
	return fmt.Sprintf("remove %v", op.Node)
}

// Reconcile makes the physical children of container equal target, in order.
// It returns the operations applied, removals first.
//
// A node scheduled for removal which has meanwhile been moved to another
// physical parent is skipped: it already is where it should not be any more.
func Reconcile(container *dom.Node, target []*dom.Node) []Op {
	splices := Splices(container.PhysicalChildren(), target)
	var ops []Op
	for _, sp := range splices {
		for _, n := range sp.Removed {
			if n.PhysicalParent() != container {
				tracer().Debugf("reconcile: %v has been moved away from %v, skipping", n, container)
				continue
			}
			container.PhysicalRemove(n)
			ops = append(ops, Op{Kind: RemoveOp, Node: n})
		}
	}
	// every splice ends before a kept node, or at the end of target
	for _, sp := range splices {
		end := sp.Index + sp.AddedCount
		var ref *dom.Node
		if end < len(target) {
			ref = target[end]
		}
		for _, n := range target[sp.Index:end] {
			if err := container.PhysicalInsertBefore(n, ref); err != nil {
				tracer().Errorf("reconcile: %v", err)
				panic(err)
			}
			ops = append(ops, Op{Kind: InsertOp, Node: n, Before: ref})
		}
	}
	if len(ops) > 0 {
		tracer().Debugf("reconciled %v with %d physical operations in %d splices",
			container, len(ops), len(splices))
	}
	return ops
}
