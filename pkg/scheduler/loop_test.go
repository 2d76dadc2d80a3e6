package scheduler

import (
	"context"
	"testing"
	"time"
)

func TestPostRunsOnNextStep(t *testing.T) {
	l := NewLoop()
	ran := false
	l.Post(func() { ran = true })

	if ran {
		t.Fatal("task must not run before a step")
	}
	l.Step(time.Now())
	if !ran {
		t.Fatal("task should have run during the step")
	}
}

func TestStepDrainsChainedTasks(t *testing.T) {
	l := NewLoop()
	var order []int
	l.Post(func() {
		order = append(order, 1)
		l.Post(func() { order = append(order, 2) })
	})

	l.Step(time.Now())
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("expected chained tasks in order, got %v", order)
	}
}

func TestNextStepClosesAfterTasksAndFrames(t *testing.T) {
	l := NewLoop()
	var order []string
	l.Post(func() { order = append(order, "task") })
	remove := l.AddFrameCallback(func(time.Time) { order = append(order, "frame") })
	defer remove()
	barrier := l.NextStep()

	select {
	case <-barrier:
		t.Fatal("barrier must not close before a step")
	default:
	}

	l.Step(time.Now())

	select {
	case <-barrier:
	default:
		t.Fatal("barrier should be closed after the step")
	}
	if len(order) != 2 || order[0] != "task" || order[1] != "frame" {
		t.Fatalf("expected task before frame, got %v", order)
	}
}

func TestFrameCallbackRemove(t *testing.T) {
	l := NewLoop()
	count := 0
	remove := l.AddFrameCallback(func(time.Time) { count++ })

	l.Step(time.Now())
	remove()
	remove() // second call is a no-op
	l.Step(time.Now())

	if count != 1 {
		t.Fatalf("expected 1 invocation, got %d", count)
	}
	if l.HasFrameCallbacks() {
		t.Error("no frame callbacks should remain")
	}
}

func TestFrameCallbackReceivesDriverTime(t *testing.T) {
	l := NewLoop()
	var got time.Time
	remove := l.AddFrameCallback(func(now time.Time) { got = now })
	defer remove()

	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.Step(want)
	if !got.Equal(want) {
		t.Fatalf("frame callback time = %v, want %v", got, want)
	}
}

func TestStepSurvivesPanickingTask(t *testing.T) {
	l := NewLoop()
	ran := false
	l.Post(func() { panic("bad task") })
	l.Post(func() { ran = true })

	l.Step(time.Now()) // must not panic
	if !ran {
		t.Fatal("later task should still run after an earlier panic")
	}
}

func TestRunProcessesPostsPromptly(t *testing.T) {
	l := NewLoop()
	if l.Running() {
		t.Fatal("a fresh loop is not running")
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx, time.Hour) }() // long interval: wake path only

	ran := make(chan struct{})
	l.Post(func() { close(ran) })

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("posted task did not run under Run")
	}
	if !l.Running() {
		t.Error("Running should report true while Run drives the loop")
	}

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if l.Running() {
		t.Error("Running should report false after Run returns")
	}
}
