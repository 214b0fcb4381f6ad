/*
Package shadow implements encapsulation boundaries: shadow roots emulated
on top of the dual tree of package dom.

Overview

A Boundary belongs to exactly one host element. The host's logical
children (its light DOM) are distributed to the slots found in the
boundary's shadow root, and the result is composed into the physical
children of the host and of every slot's parent:

    host (light DOM)            shadow root              host (composed)
    ├── a slot="x"              ├── slot name="x"        ├── a
    ├── b                       └── slot                 ├── c
    └── c slot="x"                                       └── b

Distribution is a logical step only. Composition is the physical step,
performed with package compose to keep physical churn to a minimum.

Boundaries may be nested: a slot may itself be distributed into a slot of
another boundary, if it is a light child of that boundary's host. Flattened
distribution then follows the chain of slots, and rendering the outermost
affected boundary first converges the chain in a single pass.

Rendering

Tree mutations go through the Engine, which applies them to the tree store
and marks affected boundaries as render-pending. Rendering is deferred to
the engine's scheduler and batched; a boundary renders at most once per
flush. Reads which depend on distribution (AssignedNodes, AssignedSlot)
render pending boundaries first.

    engine := shadow.New(doc)
    b, _ := engine.AttachBoundary(host)
    engine.AppendChild(b.Root(), slot)
    engine.Flush()

Cycles

Slot chains are expected to be acyclic, which holds for every tree that
can be authored. Propagation of dirty boundaries uses an explicit worklist
with a visited set per render pass, and is cut off at MaxRenderDepth
with an error trace.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package shadow

import (
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'shadytree.shadow'.
func tracer() tracing.Trace {
	return tracing.Select("shadytree.shadow")
}

// ErrAlreadyAttached is returned when attaching a boundary to a host which
// already has one.
var ErrAlreadyAttached = errors.New("host already has an encapsulation boundary")

// ErrNotAnElement is returned when attaching a boundary to a node which is
// not an ordinary element. Slots cannot host boundaries.
var ErrNotAnElement = errors.New("only elements may host an encapsulation boundary")

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("shadytree.shadow: "+msg, msgargs...)
		panic(msg)
	}
}
