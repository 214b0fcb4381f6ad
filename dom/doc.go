/*
Package dom is the tree store of the encapsulation engine.

Overview

Every node lives in two trees at once. The physical tree is the one a
renderer sees: parent pointer plus an ordered slice of children, just
like a native DOM. The logical tree is the one an author built: after a
host element has been given a shadow root, its authored (light) children
are no longer rendered where they were inserted, but wherever the slot
distribution puts them.

Logical linkage is recorded lazily. A node starts out Unlinked, which
means every logical read defers to the physical tree. As soon as a
relation has been recorded (by RecordChildNodes, LinkInsert or
LinkRemove) the node is Linked for that relation and the record wins for
all subsequent reads. Parent/sibling linkage and child linkage are
tracked separately:

    n.ParentLinkage()   // parent, nextSibling, previousSibling
    n.ChildLinkage()    // firstChild, lastChild, childNodes

A node whose parent linkage is Linked but whose logical parent is nil is
detached: it had a logical parent and lost it. This is different from an
Unlinked node, which simply never had a record.

Node Kinds

The set of node kinds is closed: elements, slots (an element named
"slot"), text, comments, document fragments and documents. Shadow roots
are fragments pointing back to their host.

Mutation Records

Physical mutations are reported to observers registered with
Document.Observe. Clients use this to measure physical churn or to
react to (re-)composition.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dom

import (
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'shadytree.dom'.
func tracer() tracing.Trace {
	return tracing.Select("shadytree.dom")
}

// ErrNotFound is returned if a reference node is not a child of the stated
// container.
var ErrNotFound = errors.New("node is not a child of this node")

// ErrHierarchy is returned if an insertion would create an invalid tree, e.g.
// inserting a node into itself or into one of its own descendants.
var ErrHierarchy = errors.New("operation would yield an incorrect node tree")

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("shadytree.dom: "+msg, msgargs...)
		panic(msg)
	}
}
