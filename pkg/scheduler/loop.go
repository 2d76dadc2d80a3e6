// Package scheduler provides the cooperative single-threaded loop that owns
// all scene and popup state.
//
// The engine's concurrency model is one logical UI thread: input events,
// layout, and animation ticks all run as discrete scheduling steps on a Loop.
// Other goroutines never touch scene state directly; they marshal work onto
// the loop with Post and wait on channels.
//
// One scheduling step (Step) processes, in order:
//
//  1. all queued tasks, including tasks they enqueue,
//  2. registered frame callbacks (layout passes, animation ticks),
//  3. step barriers handed out by NextStep.
//
// Frame callbacks receive the step's timestamp, so the driver decides how
// time flows: Run uses wall-clock time, tests inject a fake clock.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-drift/popup/pkg/errors"
)

// DefaultFrameInterval approximates a 60 Hz frame cadence.
const DefaultFrameInterval = 16 * time.Millisecond

// maxTasksPerStep bounds task draining so a task that re-posts itself
// cannot starve frame callbacks.
const maxTasksPerStep = 10000

// Loop is a cooperative task queue plus frame scheduler.
//
// Post and NextStep are safe to call from any goroutine. Step must only be
// called by a single driver goroutine (Run, or a test harness pumping
// manually).
type Loop struct {
	mu       sync.Mutex
	tasks    []func()
	barriers []chan struct{}
	frames   map[int]func(now time.Time)
	nextID   int
	running  bool
	wake     chan struct{}
}

// NewLoop creates an idle loop. It does nothing until stepped or run.
func NewLoop() *Loop {
	return &Loop{
		frames: make(map[int]func(time.Time)),
		wake:   make(chan struct{}, 1),
	}
}

// Post queues fn to run on the next scheduling step.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.tasks = append(l.tasks, fn)
	l.mu.Unlock()
	l.signal()
}

// NextStep returns a channel closed at the end of the next scheduling step.
// This is the engine's "yield one step" primitive; the lifecycle uses it to
// let layout settle before measuring content.
func (l *Loop) NextStep() <-chan struct{} {
	ch := make(chan struct{})
	l.mu.Lock()
	l.barriers = append(l.barriers, ch)
	l.mu.Unlock()
	l.signal()
	return ch
}

// AddFrameCallback registers fn to run once per step with the step's
// timestamp. The returned function removes the callback; it is safe to call
// more than once.
func (l *Loop) AddFrameCallback(fn func(now time.Time)) (remove func()) {
	l.mu.Lock()
	id := l.nextID
	l.nextID++
	l.frames[id] = fn
	l.mu.Unlock()
	return func() {
		l.mu.Lock()
		delete(l.frames, id)
		l.mu.Unlock()
	}
}

// HasFrameCallbacks reports whether any frame callbacks are registered.
func (l *Loop) HasFrameCallbacks() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.frames) > 0
}

// Step runs one scheduling step at the given timestamp.
func (l *Loop) Step(now time.Time) {
	for i := 0; i < maxTasksPerStep; i++ {
		l.mu.Lock()
		if len(l.tasks) == 0 {
			l.mu.Unlock()
			break
		}
		task := l.tasks[0]
		l.tasks = l.tasks[1:]
		l.mu.Unlock()
		runTask(task)
	}

	// Snapshot so callbacks can remove themselves (or add others) safely.
	l.mu.Lock()
	frames := make([]func(time.Time), 0, len(l.frames))
	for _, fn := range l.frames {
		frames = append(frames, fn)
	}
	l.mu.Unlock()
	for _, fn := range frames {
		runFrame(fn, now)
	}

	l.mu.Lock()
	barriers := l.barriers
	l.barriers = nil
	l.mu.Unlock()
	for _, ch := range barriers {
		close(ch)
	}
}

// Run drives the loop in real time until ctx is cancelled. Queued tasks run
// as soon as they arrive; frame callbacks fire on the given interval
// (DefaultFrameInterval if interval <= 0). Run returns ctx.Err().
func (l *Loop) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	l.setRunning(true)
	defer l.setRunning(false)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// Final step so pending tasks and barriers are not abandoned.
			l.Step(time.Now())
			return ctx.Err()
		case <-ticker.C:
			l.Step(time.Now())
		case <-l.wake:
			l.Step(time.Now())
		}
	}
}

// Running reports whether a Run driver is currently stepping the loop.
// Manually pumped loops report false.
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

func (l *Loop) setRunning(v bool) {
	l.mu.Lock()
	l.running = v
	l.mu.Unlock()
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

func runTask(task func()) {
	defer errors.Recover("scheduler.Loop.Step")
	task()
}

func runFrame(fn func(time.Time), now time.Time) {
	defer errors.Recover("scheduler.Loop.Step")
	fn(now)
}
