package schedule

import (
	"context"
	"errors"
)

// ErrLoopStopped is returned when posting to a loop which is no longer
// running.
var ErrLoopStopped = errors.New("event loop has stopped")

// Loop is the single logical thread of an engine. It owns one goroutine
// (started by Run), executes posted tasks one after another, and runs a
// microtask checkpoint (Scheduler.Flush) after every task.
type Loop struct {
	tasks chan func()
	sched *Scheduler
	done  chan struct{}
}

// NewLoop creates a loop with a task buffer of a given length.
// The loop's scheduler is to be handed to the engine.
func NewLoop(buflen int) *Loop {
	return &Loop{
		tasks: make(chan func(), buflen),
		sched: New(),
		done:  make(chan struct{}),
	}
}

// Scheduler returns the scheduler flushed by this loop.
func (l *Loop) Scheduler() *Scheduler {
	return l.sched
}

// Run executes posted tasks until ctx is cancelled. Run must be called at most
// once. It returns the context's error.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	tracer().Debugf("event loop started")
	for {
		select {
		case <-ctx.Done():
			tracer().Debugf("event loop stopped: %v", ctx.Err())
			return ctx.Err()
		case task := <-l.tasks:
			task()
			l.sched.Flush() // microtask checkpoint
		}
	}
}

// Post hands a task to the loop. It blocks if the task buffer is full.
func (l *Loop) Post(ctx context.Context, task func()) error {
	select {
	case <-l.done:
		return ErrLoopStopped
	default:
	}
	select {
	case l.tasks <- task:
		return nil
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do posts a task and waits until it, and the checkpoint following it,
// have been executed.
func (l *Loop) Do(ctx context.Context, task func()) error {
	finished := make(chan struct{})
	wrapped := func() {
		defer close(finished)
		task()
		l.sched.Flush()
	}
	if err := l.Post(ctx, wrapped); err != nil {
		return err
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		select {
		case <-finished:
			return nil
		default:
		}
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}
