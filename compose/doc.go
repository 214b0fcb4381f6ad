/*
Package compose reconciles the physical children of a container with a
target list of nodes, touching as few nodes as possible.

Overview

Physically removing and re-inserting a node is not free: it may reset
focus, restart media playback or reload embedded documents. Composition
therefore computes an edit script between the current physical children
and the target list, and only moves nodes which are not part of the
longest common subsequence of both lists.

The edit distance is computed with insertions and deletions only; a
substitution is modelled as a deletion plus an insertion. This way every
node which may stay in place actually stays in place. Shared prefixes and
suffixes are trimmed before running the O(n·m) core algorithm.

Usage

    ops := compose.Reconcile(container, target)
    // container.PhysicalChildren() now equals target

Reconcile works on splices (see Splices): contiguous runs of removed items
in the current list, replaced by a run of items of the target list. Diff
and Splices are generic and may be used on any list of comparable items.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package compose

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'shadytree.compose'.
func tracer() tracing.Trace {
	return tracing.Select("shadytree.compose")
}
