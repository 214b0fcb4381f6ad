package schedule

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestFlushInOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "shadytree.schedule")
	defer teardown()
	//
	s := New()
	var trace []int
	for i := 1; i <= 3; i++ {
		i := i
		s.Enqueue(func() { trace = append(trace, i) })
	}
	if s.Pending() != 3 || !s.Scheduled() {
		t.Errorf("expected 3 pending, scheduled callbacks, have %d (%v)", s.Pending(), s.Scheduled())
	}
	s.Flush()
	assert.Equal(t, []int{1, 2, 3}, trace)
	if s.Pending() != 0 || s.Scheduled() {
		t.Errorf("expected empty queue after flush")
	}
}

func TestPosterCalledOncePerBatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "shadytree.schedule")
	defer teardown()
	//
	var posted []func()
	s := New(WithPoster(func(flush func()) {
		posted = append(posted, flush)
	}))
	s.Enqueue(func() {})
	s.Enqueue(func() {})
	if len(posted) != 1 {
		t.Fatalf("expected 1 posted flush for a batch, have %d", len(posted))
	}
	posted[0]()
	s.Enqueue(func() {})
	if len(posted) != 2 {
		t.Errorf("expected a new flush to be posted after draining, have %d", len(posted))
	}
}

func TestFlushDrainsNestedWork(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "shadytree.schedule")
	defer teardown()
	//
	s := New()
	var trace []string
	s.Enqueue(func() {
		trace = append(trace, "outer")
		s.Enqueue(func() { trace = append(trace, "inner") })
		s.Flush() // no-op while draining
		trace = append(trace, "outer done")
	})
	s.Flush()
	assert.Equal(t, []string{"outer", "outer done", "inner"}, trace)
	s.Enqueue(nil)
	if s.Pending() != 0 {
		t.Errorf("expected nil callbacks to be ignored")
	}
}
