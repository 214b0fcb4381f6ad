package schedule

// Scheduler is a FIFO queue of callbacks, flushed in batches.
// The zero value is not usable; create schedulers with New.
type Scheduler struct {
	queue     []func()
	scheduled bool // a flush has been posted and not yet run
	flushing  bool
	post      func(flush func())
	flushes   int
}

// Option is a type to help initializing schedulers at creation time.
type Option func(*Scheduler)

// WithPoster sets the function used to schedule a deferred flush. The poster
// receives the flush function and is expected to call it at the next
// microtask checkpoint of the embedding event loop.
//
// Without a poster, clients have to call Flush themselves.
func WithPoster(post func(flush func())) Option {
	return func(s *Scheduler) {
		s.post = post
	}
}

// New creates a scheduler.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{}
	for _, option := range opts {
		option(s)
	}
	return s
}

// Enqueue appends a callback to the queue. If no flush is currently
// scheduled, a new one is posted.
func (s *Scheduler) Enqueue(cb func()) {
	if cb == nil {
		return
	}
	s.queue = append(s.queue, cb)
	if s.scheduled {
		return
	}
	s.scheduled = true
	if s.post != nil {
		s.post(s.Flush)
	}
}

// Flush drains the queue, invoking callbacks in FIFO order. Callbacks
// enqueued while draining are executed by the same flush. Calling Flush
// from within a callback is a no-op.
func (s *Scheduler) Flush() {
	if s.flushing {
		return
	}
	s.flushing = true
	s.flushes++
	defer func() {
		s.flushing = false
		s.scheduled = false
	}()
	n := 0
	for len(s.queue) > 0 {
		cb := s.queue[0]
		s.queue[0] = nil
		s.queue = s.queue[1:]
		cb()
		n++
	}
	s.queue = nil
	if n > 0 {
		tracer().Debugf("flush #%d executed %d callbacks", s.flushes, n)
	}
}

// Pending returns the number of callbacks waiting for the next flush.
func (s *Scheduler) Pending() int {
	return len(s.queue)
}

// Scheduled is true if a flush has been requested and has not run yet.
func (s *Scheduler) Scheduled() bool {
	return s.scheduled
}
