// Package testing provides popup-engine test infrastructure: a fake clock
// and a Harness that pumps a scheduler loop against a headless scene root,
// the way the engine's real driver would, but with time under test control.
//
// Import it with a name to avoid clashing with the standard library:
//
//	ptesting "github.com/go-drift/popup/pkg/testing"
package testing

import (
	"testing"
	"time"

	"github.com/go-drift/popup/pkg/graphics"
	"github.com/go-drift/popup/pkg/scene"
	"github.com/go-drift/popup/pkg/scheduler"
)

const (
	// DefaultTestWidth is the default logical width for the test surface.
	DefaultTestWidth = 800
	// DefaultTestHeight is the default logical height for the test surface.
	DefaultTestHeight = 600
)

// FrameInterval is the simulated frame cadence of Advance and WaitUntil.
const FrameInterval = 16 * time.Millisecond

// settlePause is a real-time pause after each pumped step, long enough for
// a blocked popup.Open goroutine to observe its channel and post its next
// task before the following step.
const settlePause = time.Millisecond

// Harness drives a Loop and a headless Root with fake time. The loop is
// pumped on the test goroutine, so between pumps the test may freely
// inspect loop-confined state.
type Harness struct {
	t     *testing.T
	Loop  *scheduler.Loop
	Clock *FakeClock
	Root  *scene.Root
}

// NewHarness creates a harness with the default surface size and registers
// cleanup with t.
func NewHarness(t *testing.T) *Harness {
	return NewHarnessSize(t, graphics.Size{Width: DefaultTestWidth, Height: DefaultTestHeight})
}

// NewHarnessSize creates a harness with an explicit surface size.
func NewHarnessSize(t *testing.T, size graphics.Size) *Harness {
	t.Helper()
	loop := scheduler.NewLoop()
	h := &Harness{
		t:     t,
		Loop:  loop,
		Clock: NewFakeClock(),
		Root:  scene.NewRoot(loop, size),
	}
	t.Cleanup(h.Root.Close)
	return h
}

// Pump runs one scheduling step at the current fake time.
func (h *Harness) Pump() {
	h.Loop.Step(h.Clock.Now())
	time.Sleep(settlePause)
}

// Advance moves fake time forward by d, pumping a step every FrameInterval.
func (h *Harness) Advance(d time.Duration) {
	for d > 0 {
		step := FrameInterval
		if d < step {
			step = d
		}
		h.Clock.Advance(step)
		h.Pump()
		d -= step
	}
}

// WaitUntil pumps frames until cond holds, failing the test after a real
// two-second deadline. cond is evaluated between steps, when no loop task
// is running.
func (h *Harness) WaitUntil(cond func() bool, desc string) {
	h.t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		if cond() {
			return
		}
		if time.Now().After(deadline) {
			h.t.Fatalf("WaitUntil timed out: %s", desc)
		}
		h.Clock.Advance(FrameInterval)
		h.Pump()
	}
}

// TapAt injects a press/release pair at the given surface position and
// pumps one step.
func (h *Harness) TapAt(pos graphics.Offset) {
	h.Loop.Post(func() {
		h.Root.DispatchPointer(scene.PointerEvent{Phase: scene.PointerDown, Position: pos})
		h.Root.DispatchPointer(scene.PointerEvent{Phase: scene.PointerUp, Position: pos})
	})
	h.Pump()
}

// PressKey injects a key event and pumps one step.
func (h *Harness) PressKey(code int) {
	h.Loop.Post(func() {
		h.Root.DispatchKey(scene.KeyEvent{Code: code})
	})
	h.Pump()
}
