// Package popup manages the lifecycle of modal overlays: showing caller
// content with an animated transition, gating input to everything behind it,
// racing independent dismiss triggers, and tearing everything down
// deterministically no matter which path ends the popup.
//
// The single entry point is [Open]. It mounts the content in a [Container]
// on the caller's surface, plays the transition's enter phase, arms the
// auto-dismiss watchers, and hands control to the caller's body function.
// When the body returns, errors, or is cancelled by a watcher, the setup is
// unwound in strict reverse order: input re-blocked, watchers disarmed, exit
// phase played, container detached, content released, container pooled.
//
//	pool := popup.NewPool()
//	ev, err := popup.Open(ctx, popup.Options{
//	    Loop:    loop,
//	    Surface: root,
//	    Content: content,
//	    Pool:    pool,
//	}, func(ctx context.Context, ev *popup.DismissEvent) error {
//	    <-ctx.Done() // interactive until dismissed
//	    return ctx.Err()
//	})
//	if err == nil && ev.Fired() {
//	    // closed by outside tap, escape, or back button
//	    _ = ev.Cause()
//	}
//
// The engine never renders; it drives [scene.Node] handles and leaves
// drawing to whatever owns the surface.
package popup
