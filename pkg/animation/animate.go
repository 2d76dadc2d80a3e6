package animation

import (
	"time"

	"github.com/go-drift/popup/pkg/scheduler"
)

// Start runs a one-shot animation on loop: apply is called with eased
// progress from 0 to 1 over d, and the returned channel is closed once the
// final value has been applied.
//
// Start must be called on the loop's goroutine. If d <= 0 the end state is
// applied during the step's frame phase, so a zero-duration animation
// started from a task finishes within the same scheduling step.
//
// The channel only closes while the loop keeps stepping; an abandoned loop
// abandons its animations with it.
func Start(loop *scheduler.Loop, d time.Duration, curve func(float64) float64, apply func(t float64)) <-chan struct{} {
	done := make(chan struct{})
	c := NewAnimationController(loop, d)
	if curve != nil {
		c.Curve = curve
	}
	c.AddListener(func() {
		apply(c.Value)
	})
	c.AddStatusListener(func(s AnimationStatus) {
		if s == AnimationCompleted {
			c.Dispose()
			close(done)
		}
	})
	c.Forward()
	return done
}
