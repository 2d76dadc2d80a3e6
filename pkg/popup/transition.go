package popup

import (
	"context"
	"fmt"
	"time"

	"github.com/go-drift/popup/pkg/animation"
	"github.com/go-drift/popup/pkg/errors"
	"github.com/go-drift/popup/pkg/graphics"
	"github.com/go-drift/popup/pkg/scene"
	"github.com/go-drift/popup/pkg/scheduler"
)

// DefaultBackground is the conventional popup scrim: black at 80% opacity.
var DefaultBackground = graphics.RGBA(0, 0, 0, 0.8)

// Transition defines how a popup visually appears and disappears.
//
// Enter runs the enter phase and blocks until the popup has visually
// settled; the content is measurable by the time Enter is called. The
// container arrives mounted at opacity 0, and Enter owns the reveal: it
// must leave the container visible, whether by ramping the opacity or by
// setting it outright. The
// returned exit function runs the exit phase and blocks until it completes.
// [Open] guarantees exit is called exactly once after a successful Enter,
// on every termination path, and that both phases run to completion as long
// as the loop keeps stepping. Transition phases are only interrupted by
// loop shutdown, never by the popup being dismissed.
type Transition interface {
	Enter(ctx context.Context, st *Stage) (exit func(context.Context) error, err error)
}

// Stage is the scenery handed to a transition: the mounted content, its
// container, and the surface everything lives on.
type Stage struct {
	Content   scene.Node
	Container *Container
	Surface   scene.Surface

	loop *scheduler.Loop
}

// Loop returns the scheduler loop driving this popup.
func (st *Stage) Loop() *scheduler.Loop { return st.loop }

// Sync runs fn on the loop and waits for it. Use it to read or mutate
// stage state from a transition phase.
func (st *Stage) Sync(fn func()) {
	done := make(chan struct{})
	st.loop.Post(func() {
		defer close(done)
		fn()
	})
	<-done
}

// Animate starts a one-shot animation on the loop: apply receives eased
// progress 0→1 over d, on the loop's goroutine. The returned channel closes
// once the final value is applied; receive from it to await the phase.
func (st *Stage) Animate(d time.Duration, curve func(float64) float64, apply func(t float64)) <-chan struct{} {
	var done <-chan struct{}
	st.Sync(func() {
		done = animation.Start(st.loop, d, curve, apply)
	})
	return done
}

// None is a transition with no animation: a static background scrim while
// the popup is up, removed when it closes.
type None struct {
	// Background is the scrim color. Zero value means DefaultBackground.
	Background graphics.Color
}

// Enter implements Transition.
func (n None) Enter(ctx context.Context, st *Stage) (func(context.Context) error, error) {
	bg := n.Background
	if bg == 0 {
		bg = DefaultBackground
	}
	st.Sync(func() {
		st.Container.SetBackground(bg)
		st.Container.SetOpacity(1)
	})
	exit := func(context.Context) error {
		st.Sync(func() {
			st.Container.ClearBackground()
		})
		return nil
	}
	return exit, nil
}

// Fade animates the container's opacity: 0→1 over In before the popup
// becomes interactive, 1→0 over Out after it is done.
type Fade struct {
	In         time.Duration
	Out        time.Duration
	Background graphics.Color
}

// DefaultFade returns the fade used when Options.Transition is nil:
// 100ms in, 100ms out, default scrim.
func DefaultFade() Fade {
	return Fade{
		In:         100 * time.Millisecond,
		Out:        100 * time.Millisecond,
		Background: DefaultBackground,
	}
}

// Enter implements Transition.
func (f Fade) Enter(ctx context.Context, st *Stage) (func(context.Context) error, error) {
	bg := f.Background
	if bg == 0 {
		bg = DefaultBackground
	}
	st.Sync(func() {
		st.Container.SetOpacity(0)
		st.Container.SetBackground(bg)
	})

	in := animation.TweenFloat64(0, 1)
	<-st.Animate(f.In, nil, func(t float64) {
		st.Container.SetOpacity(in.Evaluate(t))
	})

	exit := func(context.Context) error {
		out := animation.TweenFloat64(1, 0)
		<-st.Animate(f.Out, nil, func(t float64) {
			st.Container.SetOpacity(out.Evaluate(t))
		})
		st.Sync(func() {
			st.Container.SetOpacity(1)
			st.Container.ClearBackground()
		})
		return nil
	}
	return exit, nil
}

// Direction is the axis and sign a Slide transition enters from.
type Direction int

const (
	// DirectionDown slides the content downward into place (from above).
	DirectionDown Direction = iota
	// DirectionUp slides the content upward into place (from below).
	DirectionUp
	// DirectionLeft slides the content leftward into place (from the right).
	DirectionLeft
	// DirectionRight slides the content rightward into place (from the left).
	DirectionRight
)

func (d Direction) String() string {
	switch d {
	case DirectionDown:
		return "down"
	case DirectionUp:
		return "up"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Slide moves the content from off-surface to its rest position with an
// overshooting ease, while the background scrim's alpha fades in
// concurrently. The exit phase reverses both.
type Slide struct {
	In         time.Duration
	Out        time.Duration
	Background graphics.Color
	Direction  Direction
	// InCurve eases the enter motion; nil means animation.OutBack.
	InCurve func(float64) float64
	// OutCurve eases the exit motion; nil means animation.InBack.
	OutCurve func(float64) float64
}

// DefaultSlide returns the conventional slide: 200ms each way, entering
// downward, back-eased, default scrim.
func DefaultSlide() Slide {
	return Slide{
		In:         200 * time.Millisecond,
		Out:        200 * time.Millisecond,
		Background: DefaultBackground,
		Direction:  DirectionDown,
	}
}

// startOffset computes the off-surface translation for the configured
// direction, given the container and content sizes.
func (s Slide) startOffset(container, content graphics.Size) (graphics.Offset, error) {
	xDist := (container.Width + content.Width) / 2
	yDist := (container.Height + content.Height) / 2
	switch s.Direction {
	case DirectionDown:
		return graphics.Offset{Y: -yDist}, nil
	case DirectionUp:
		return graphics.Offset{Y: yDist}, nil
	case DirectionLeft:
		return graphics.Offset{X: xDist}, nil
	case DirectionRight:
		return graphics.Offset{X: -xDist}, nil
	default:
		return graphics.Offset{}, errors.Errorf("popup.Slide.Enter", errors.KindConfig,
			"invalid slide direction %v", s.Direction)
	}
}

// Enter implements Transition.
func (s Slide) Enter(ctx context.Context, st *Stage) (func(context.Context) error, error) {
	bg := s.Background
	if bg == 0 {
		bg = DefaultBackground
	}
	inCurve := s.InCurve
	if inCurve == nil {
		inCurve = animation.OutBack
	}
	outCurve := s.OutCurve
	if outCurve == nil {
		outCurve = animation.InBack
	}

	var start graphics.Offset
	var err error
	st.Sync(func() {
		start, err = s.startOffset(st.Container.Size(), st.Content.Size())
		if err != nil {
			return
		}
		st.Content.SetOffset(start)
		st.Container.SetBackground(bg.WithAlpha(0))
		st.Container.SetOpacity(1)
	})
	if err != nil {
		return nil, err
	}

	move := animation.TweenOffset(start, graphics.Offset{})
	fadeIn := animation.TweenColor(bg.WithAlpha(0), bg)

	// Motion and scrim fade run concurrently, like the enter phase they
	// reverse.
	moveDone := st.Animate(s.In, inCurve, func(t float64) {
		st.Content.SetOffset(move.Evaluate(t))
	})
	fadeDone := st.Animate(s.In, nil, func(t float64) {
		st.Container.SetBackground(fadeIn.Evaluate(t))
	})
	<-moveDone
	<-fadeDone

	exit := func(context.Context) error {
		moveBack := animation.TweenOffset(graphics.Offset{}, start)
		fadeOut := animation.TweenColor(bg, bg.WithAlpha(0))
		moveDone := st.Animate(s.Out, outCurve, func(t float64) {
			st.Content.SetOffset(moveBack.Evaluate(t))
		})
		fadeDone := st.Animate(s.Out, nil, func(t float64) {
			st.Container.SetBackground(fadeOut.Evaluate(t))
		})
		<-moveDone
		<-fadeDone
		st.Sync(func() {
			st.Content.SetOffset(graphics.Offset{})
			st.Container.ClearBackground()
		})
		return nil
	}
	return exit, nil
}
