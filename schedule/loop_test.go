package schedule

import (
	"context"
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"go.uber.org/goleak"
)

func TestLoopRunsCheckpointAfterTask(t *testing.T) {
	defer goleak.VerifyNone(t)
	teardown := gotestingadapter.QuickConfig(t, "shadytree.schedule")
	defer teardown()
	//
	loop := NewLoop(4)
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan error)
	go func() { stopped <- loop.Run(ctx) }()
	//
	var trace []string
	err := loop.Do(ctx, func() {
		loop.Scheduler().Enqueue(func() { trace = append(trace, "render") })
		trace = append(trace, "task")
	})
	if err != nil {
		t.Fatalf("expected task to run, got %v", err)
	}
	if len(trace) != 2 || trace[0] != "task" || trace[1] != "render" {
		t.Errorf("expected task, then render; have %v", trace)
	}
	cancel()
	if err := <-stopped; !errors.Is(err, context.Canceled) {
		t.Errorf("expected loop to stop with context.Canceled, has %v", err)
	}
	if err := loop.Post(context.Background(), func() {}); !errors.Is(err, ErrLoopStopped) {
		t.Errorf("expected post to a stopped loop to fail, is %v", err)
	}
}
