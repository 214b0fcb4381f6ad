/*
Package schedule batches render requests into a single flush.

Overview

A Scheduler holds a FIFO queue of zero-argument callbacks. Enqueueing the
first callback after a flush schedules a new flush through a poster
function; further callbacks only join the queue. Flush drains the queue
until it is truly empty, including callbacks enqueued by callbacks.

This mirrors microtask semantics of a browser event loop: work queued
while handling a task is executed at the next checkpoint, in the order it
was queued, before anything else happens. The engine is single-threaded;
there is no locking. Clients which want a real thread of control may use
a Loop, which owns one goroutine, runs posted tasks one at a time and
performs a checkpoint (Flush) after every task.

    loop := schedule.NewLoop(16)
    go loop.Run(ctx)
    loop.Post(ctx, func() { ... mutate the tree ... })

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package schedule

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'shadytree.schedule'.
func tracer() tracing.Trace {
	return tracing.Select("shadytree.schedule")
}
