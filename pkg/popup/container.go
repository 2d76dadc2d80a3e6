package popup

import (
	"github.com/go-drift/popup/pkg/errors"
	"github.com/go-drift/popup/pkg/graphics"
	"github.com/go-drift/popup/pkg/scene"
)

// Container hosts exactly one popup content node on the root surface. It
// centers the content, owns the background visual that transitions animate,
// and gates pointer input.
//
// Pointer routing: every event delivered to the container is consumed, so
// nothing ever leaks to whatever sits behind the modal. While input is
// blocked (the initial state, held through transition phases) events are
// absorbed outright. Once unblocked, an event is classified against the
// content's live bounds: the centered rest rectangle shifted by the
// current transition offset, evaluated at the event's own position. Inside:
// forwarded to the content. Outside: down events raise the
// outside-interaction notification, move/up events are dropped.
//
// All methods must be called on the loop's goroutine.
type Container struct {
	scene.Base

	content       scene.Node
	inputBlocked  bool
	opacity       float64
	background    graphics.Color
	hasBackground bool
	onOutside     func(ev scene.PointerEvent)
}

// NewContainer creates an idle container: empty, input blocked, opaque.
func NewContainer() *Container {
	return &Container{inputBlocked: true, opacity: 1}
}

// Attach mounts content as the sole hosted node. It fails with an
// invalid-state error when the container already holds content, or when the
// content is already owned elsewhere (a re-entrant open on the same handle).
func (c *Container) Attach(content scene.Node) error {
	const op = "popup.Container.Attach"
	if c.content != nil {
		return errors.Errorf(op, errors.KindInvalidState, "container already holds content")
	}
	if !scene.Adopt(c, content) {
		return errors.Errorf(op, errors.KindInvalidState, "content is already attached")
	}
	c.content = content
	return nil
}

// Detach unmounts the hosted content. No-op when nothing is attached.
func (c *Container) Detach() {
	if c.content == nil {
		return
	}
	scene.Orphan(c.content)
	c.content = nil
}

// Content returns the hosted content node, or nil when idle.
func (c *Container) Content() scene.Node { return c.content }

// SetInputBlocked toggles the input gate.
func (c *Container) SetInputBlocked(blocked bool) { c.inputBlocked = blocked }

// InputBlocked reports whether the input gate is closed.
func (c *Container) InputBlocked() bool { return c.inputBlocked }

// SetOpacity sets the container's visual opacity (0-1), covering the
// background and the hosted content alike.
func (c *Container) SetOpacity(o float64) { c.opacity = o }

// Opacity returns the container's visual opacity.
func (c *Container) Opacity() float64 { return c.opacity }

// SetBackground installs the background scrim color.
func (c *Container) SetBackground(col graphics.Color) {
	c.background = col
	c.hasBackground = true
}

// ClearBackground removes the background scrim.
func (c *Container) ClearBackground() {
	c.background = 0
	c.hasBackground = false
}

// Background returns the scrim color and whether one is installed.
func (c *Container) Background() (graphics.Color, bool) {
	return c.background, c.hasBackground
}

// Layout sizes the container to the available surface space.
func (c *Container) Layout(avail graphics.Size) {
	c.SetSize(avail)
}

// ContentBounds returns the hosted content's live rectangle in container
// coordinates: centered at rest, shifted by the content's current offset.
// The zero Rect is returned when no content is attached.
func (c *Container) ContentBounds() graphics.Rect {
	if c.content == nil {
		return graphics.Rect{}
	}
	own := c.Size()
	cs := c.content.Size()
	rest := graphics.RectFromLTWH(
		(own.Width-cs.Width)/2,
		(own.Height-cs.Height)/2,
		cs.Width,
		cs.Height,
	)
	return rest.Shift(c.content.Offset())
}

// HandlePointer implements scene.PointerTarget. It always reports the event
// consumed.
func (c *Container) HandlePointer(ev scene.PointerEvent) bool {
	if c.inputBlocked || c.content == nil {
		return true
	}
	if c.ContentBounds().Contains(ev.Position) {
		if target, ok := c.content.(scene.PointerTarget); ok {
			target.HandlePointer(ev)
		}
		return true
	}
	if ev.Phase == scene.PointerDown && c.onOutside != nil {
		c.onOutside(ev)
	}
	return true
}

// NotifyOutside arms the outside-interaction notification. The returned
// function disarms it.
func (c *Container) NotifyOutside(fn func(ev scene.PointerEvent)) (remove func()) {
	c.onOutside = fn
	return func() {
		c.onOutside = nil
	}
}

// reset restores the idle invariants before the container returns to a pool:
// no content, input blocked, visuals cleared.
func (c *Container) reset() {
	c.Detach()
	c.inputBlocked = true
	c.opacity = 1
	c.ClearBackground()
	c.SetOffset(graphics.Offset{})
}
