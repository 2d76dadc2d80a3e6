// Package animation provides the timing primitives that drive popup
// transitions: easing curves, a frame-driven controller, value tweens, and
// an awaitable one-shot animation helper.
//
// All animation state lives on a [scheduler.Loop]; controllers advance in
// the loop's frame-callback phase using the timestamp supplied by the loop's
// driver. There is no process-global ticker registry: whoever owns the loop
// owns its animations, and tests drive time explicitly.
package animation

import (
	"fmt"
	"time"

	"github.com/go-drift/popup/pkg/scheduler"
)

// AnimationStatus represents the current state of an animation.
//
// The status follows this state machine:
//
//	                Forward()
//	Dismissed ──────────────────► Completed
//	    ▲                              │
//	    │         Reverse()            │
//	    └──────────────────────────────┘
//
// While animating, status is AnimationForward or AnimationReverse.
// When stopped, status is AnimationDismissed (at 0) or AnimationCompleted (at 1).
type AnimationStatus int

const (
	// AnimationDismissed means the animation is stopped at the lower bound (0.0).
	AnimationDismissed AnimationStatus = iota
	// AnimationForward means the animation is playing toward the upper bound (1.0).
	AnimationForward
	// AnimationReverse means the animation is playing toward the lower bound (0.0).
	AnimationReverse
	// AnimationCompleted means the animation is stopped at the upper bound (1.0).
	AnimationCompleted
)

// String returns a human-readable representation of the animation status.
func (s AnimationStatus) String() string {
	switch s {
	case AnimationDismissed:
		return "dismissed"
	case AnimationForward:
		return "forward"
	case AnimationReverse:
		return "reverse"
	case AnimationCompleted:
		return "completed"
	default:
		return fmt.Sprintf("AnimationStatus(%d)", int(s))
	}
}

// AnimationController drives an animation by producing values over time.
//
// The controller manages a Value that progresses from 0.0 to 1.0 over the
// specified Duration. The Curve function transforms linear progress into
// eased motion. Use [Tween] to map the 0-1 value to other ranges or types.
//
// A zero (or negative) Duration jumps to the target on the next frame
// phase; when the animation is started from a task, that is the same
// scheduling step.
//
// All methods must be called on the loop's goroutine. Call Dispose when
// done to detach from the loop.
type AnimationController struct {
	// Value is the current animation value, ranging from 0.0 to 1.0.
	Value float64

	// Duration is the length of the animation.
	Duration time.Duration

	// Curve transforms linear progress (optional).
	Curve func(float64) float64

	loop            *scheduler.Loop
	status          AnimationStatus
	target          float64
	startValue      float64
	startTime       time.Time
	timed           bool // startTime captured on first frame
	removeFrame     func()
	listeners       map[int]func()
	statusListeners map[int]func(AnimationStatus)
	nextListenerID  int
}

// NewAnimationController creates an animation controller bound to loop.
func NewAnimationController(loop *scheduler.Loop, duration time.Duration) *AnimationController {
	return &AnimationController{
		Duration:        duration,
		Curve:           LinearCurve,
		loop:            loop,
		status:          AnimationDismissed,
		listeners:       make(map[int]func()),
		statusListeners: make(map[int]func(AnimationStatus)),
	}
}

// Forward animates from the current value to the upper bound (1.0).
func (c *AnimationController) Forward() {
	c.animateTo(1, AnimationForward)
}

// Reverse animates from the current value to the lower bound (0.0).
func (c *AnimationController) Reverse() {
	c.animateTo(0, AnimationReverse)
}

func (c *AnimationController) animateTo(target float64, direction AnimationStatus) {
	c.detachFrame()

	c.target = target
	c.startValue = c.Value
	c.timed = false
	c.setStatus(direction)

	c.removeFrame = c.loop.AddFrameCallback(c.tick)
}

func (c *AnimationController) tick(now time.Time) {
	if c.Duration <= 0 {
		c.Value = c.target
		c.notifyListeners()
		c.stop()
		return
	}

	if !c.timed {
		c.timed = true
		c.startTime = now
	}

	progress := float64(now.Sub(c.startTime)) / float64(c.Duration)
	if progress >= 1.0 {
		progress = 1.0
	}

	eased := progress
	if c.Curve != nil {
		eased = c.Curve(progress)
	}
	c.Value = c.startValue + (c.target-c.startValue)*eased
	if progress >= 1.0 {
		// The final frame lands exactly on the target; curves like the
		// back-easing pair miss their endpoint by float error.
		c.Value = c.target
	}
	c.notifyListeners()

	if progress >= 1.0 {
		c.stop()
	}
}

func (c *AnimationController) stop() {
	c.detachFrame()
	if c.Value <= 0 {
		c.setStatus(AnimationDismissed)
	} else if c.Value >= 1 {
		c.setStatus(AnimationCompleted)
	}
}

// Stop halts the animation at the current value without changing status
// bounds.
func (c *AnimationController) Stop() {
	c.detachFrame()
}

// Reset stops the animation and snaps the value back to the lower bound.
func (c *AnimationController) Reset() {
	c.detachFrame()
	c.Value = 0
	c.setStatus(AnimationDismissed)
	c.notifyListeners()
}

// Status returns the current animation status.
func (c *AnimationController) Status() AnimationStatus {
	return c.status
}

// IsAnimating returns true if the animation is currently running.
func (c *AnimationController) IsAnimating() bool {
	return c.status == AnimationForward || c.status == AnimationReverse
}

// IsCompleted returns true if the animation finished at the upper bound.
func (c *AnimationController) IsCompleted() bool {
	return c.status == AnimationCompleted
}

// IsDismissed returns true if the animation is at the lower bound.
func (c *AnimationController) IsDismissed() bool {
	return c.status == AnimationDismissed
}

// AddListener adds a callback that fires whenever the value changes.
// Returns an unsubscribe function.
func (c *AnimationController) AddListener(fn func()) func() {
	id := c.nextListenerID
	c.nextListenerID++
	c.listeners[id] = fn
	return func() {
		delete(c.listeners, id)
	}
}

// AddStatusListener adds a callback that fires whenever the status changes.
// Returns an unsubscribe function.
func (c *AnimationController) AddStatusListener(fn func(AnimationStatus)) func() {
	id := c.nextListenerID
	c.nextListenerID++
	c.statusListeners[id] = fn
	return func() {
		delete(c.statusListeners, id)
	}
}

func (c *AnimationController) setStatus(status AnimationStatus) {
	if c.status == status {
		return
	}
	c.status = status
	for _, listener := range c.statusListeners {
		listener(status)
	}
}

func (c *AnimationController) notifyListeners() {
	for _, listener := range c.listeners {
		listener()
	}
}

func (c *AnimationController) detachFrame() {
	if c.removeFrame != nil {
		c.removeFrame()
		c.removeFrame = nil
	}
}

// Dispose stops the animation and releases listeners.
func (c *AnimationController) Dispose() {
	c.detachFrame()
	c.listeners = nil
	c.statusListeners = nil
}
