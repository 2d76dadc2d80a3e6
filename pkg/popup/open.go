package popup

import (
	"context"
	stderrors "errors"

	"github.com/go-drift/popup/pkg/errors"
	"github.com/go-drift/popup/pkg/scene"
	"github.com/go-drift/popup/pkg/scheduler"
)

// Body is the caller's interactive period. It runs once the enter
// transition has settled and input is unblocked, and should return when the
// popup is done. ctx is cancelled the moment a dismiss watcher fires; a
// body that waits on ctx.Done() and returns ctx.Err() gets standard
// auto-dismiss behavior. ev is the same event Open returns, exposed so the
// body can pass it along if needed; it stays unfired until Open has fully
// unwound.
type Body func(ctx context.Context, ev *DismissEvent) error

// Options configures an [Open] call.
type Options struct {
	// Loop is the scheduler that owns all scene state. Required, and it
	// must be stepping (via Run or a test harness) for the call to make
	// progress.
	Loop *scheduler.Loop

	// Surface is the root the popup mounts into. Required.
	Surface scene.Surface

	// Content is the caller-owned popup content. Required. It must not be
	// attached anywhere else; re-entrant opens on the same handle fail
	// with an invalid-state error.
	Content scene.Node

	// Pool reuses containers across opens. Nil constructs a fresh
	// container per call and discards it afterwards.
	Pool *Pool

	// AutoDismiss arms the outside-touch and key watchers. Nil means true.
	AutoDismiss *bool

	// Transition brackets the interactive period. Nil means DefaultFade().
	Transition Transition

	// Keymap maps key codes to dismiss causes. Nil means DefaultKeymap().
	Keymap *Keymap
}

// Bool returns a pointer to b, for the Options.AutoDismiss field.
func Bool(b bool) *bool { return &b }

// Open shows content as a modal popup and runs body as its interactive
// period. It blocks until the popup is fully torn down.
//
// Setup order: acquire a container, attach the content, mount the container
// on the surface input-blocked and invisible, yield one scheduling step so
// layout settles, play the transition's enter phase, arm the dismiss
// watchers, unblock input, run body. Teardown is the exact reverse and runs
// unconditionally, whether body returned, errored, panicked, was cancelled
// by a watcher, or ctx was cancelled from outside. The exit phase always
// completes before the container leaves the surface, and the container is
// always reset before it returns to the pool.
//
// The returned DismissEvent reports whether a watcher closed the popup and
// why. Watcher-driven dismissal is a normal termination, not an error: Open
// returns a nil error even though the body saw its context cancelled.
// Cancellation of ctx itself is reported as ctx's error, after the full
// teardown (exit animation included) has run.
func Open(ctx context.Context, opts Options, body Body) (ev *DismissEvent, err error) {
	const op = "popup.Open"
	if opts.Loop == nil || opts.Surface == nil || opts.Content == nil {
		return nil, errors.Errorf(op, errors.KindInvalidState, "Loop, Surface and Content are required")
	}
	if body == nil {
		return nil, errors.Errorf(op, errors.KindInvalidState, "body is required")
	}

	loop := opts.Loop
	sync := func(fn func()) {
		done := make(chan struct{})
		loop.Post(func() {
			defer close(done)
			fn()
		})
		<-done
	}

	var tr Transition = DefaultFade()
	if opts.Transition != nil {
		tr = opts.Transition
	}
	keymap := DefaultKeymap()
	if opts.Keymap != nil {
		keymap = *opts.Keymap
	}
	autoDismiss := true
	if opts.AutoDismiss != nil {
		autoDismiss = *opts.AutoDismiss
	}

	ev = NewDismissEvent()

	// First to fire wins; buffered so the losing watcher never blocks.
	causeCh := make(chan DismissCause, 1)

	// Registered first so it runs after every other cleanup: the event
	// becomes observable only once the popup is fully torn down.
	defer func() {
		select {
		case cause := <-causeCh:
			ev.Fire(cause)
			// A watcher ending the body is a normal close, not an error.
			if stderrors.Is(err, context.Canceled) && ctx.Err() == nil {
				err = nil
			}
		default:
		}
		if ctx.Err() != nil && err == nil {
			err = ctx.Err()
		}
	}()

	// 1. Container, pooled or fresh.
	var c *Container
	sync(func() {
		if opts.Pool != nil {
			c = opts.Pool.Acquire()
		} else {
			c = NewContainer()
		}
	})
	defer sync(func() {
		if opts.Pool != nil {
			opts.Pool.Release(c)
		} else {
			c.reset()
		}
	})

	// 2. Content into container.
	var attachErr error
	sync(func() {
		attachErr = c.Attach(opts.Content)
	})
	if attachErr != nil {
		return ev, attachErr
	}
	defer sync(func() {
		c.Detach()
	})

	// 3. Container onto surface, gated and invisible until the enter phase
	// has something measured to animate.
	sync(func() {
		c.SetInputBlocked(true)
		c.SetOpacity(0)
		opts.Surface.AddChild(c)
	})
	defer sync(func() {
		opts.Surface.RemoveChild(c)
	})

	// 4. One step for layout: the container is zero-sized until the
	// surface has laid it out, and the transition measures it in Enter.
	// The container stays at opacity 0; the enter phase owns the reveal.
	<-loop.NextStep()

	// 5. Transition enter phase.
	st := &Stage{Content: opts.Content, Container: c, Surface: opts.Surface, loop: loop}
	exit, enterErr := tr.Enter(ctx, st)
	if enterErr != nil {
		return ev, transitionError(enterErr)
	}
	defer func() {
		// The exit phase outlives any cancellation of ctx; only a stopped
		// loop can interrupt it.
		if exitErr := exit(context.WithoutCancel(ctx)); exitErr != nil {
			e := transitionError(exitErr)
			if err == nil {
				err = e
			} else {
				// The body's error wins; the exit failure still reaches
				// the error handler.
				errors.Report(e)
			}
		}
	}()

	// 6. Dismiss watchers. Both race; the winner records its cause and
	// cancels the interactive period.
	bodyCtx := ctx
	if autoDismiss {
		var cancel context.CancelFunc
		bodyCtx, cancel = context.WithCancel(ctx)
		defer cancel()
		fire := func(cause DismissCause) {
			select {
			case causeCh <- cause:
				cancel()
			default:
			}
		}

		var disarmOutside, disarmKeys func()
		sync(func() {
			disarmOutside = c.NotifyOutside(func(scene.PointerEvent) {
				fire(CauseOutsideTouch)
			})
			disarmKeys = opts.Surface.AddKeyHandler(func(k scene.KeyEvent) bool {
				cause, ok := keymap.CauseFor(k.Code)
				if !ok {
					return false
				}
				fire(cause)
				return true
			})
		})
		defer sync(func() {
			disarmOutside()
			disarmKeys()
		})
	}

	// 7. The popup becomes interactive.
	sync(func() {
		c.SetInputBlocked(false)
	})
	defer sync(func() {
		// Re-block first on the way out so the exit animation is inert.
		c.SetInputBlocked(true)
	})

	// 8. Caller's interactive period.
	err = body(bodyCtx, ev)
	return ev, err
}

// transitionError keeps structured transition failures (a slide's config
// error, say) as they are and wraps plain ones as transition-kind errors.
func transitionError(err error) *errors.Error {
	var e *errors.Error
	if stderrors.As(err, &e) {
		return e
	}
	return errors.E("popup.Open", errors.KindTransition, err)
}
