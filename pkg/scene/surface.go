package scene

import (
	"time"

	"github.com/go-drift/popup/pkg/graphics"
	"github.com/go-drift/popup/pkg/scheduler"
)

// Surface is the root a popup container mounts into: a child list, a size,
// and a keyboard event stream.
type Surface interface {
	// AddChild mounts node above all existing children.
	AddChild(node Node)
	// RemoveChild unmounts node. Unknown nodes are ignored.
	RemoveChild(node Node)
	// Size returns the surface's current size.
	Size() graphics.Size
	// AddKeyHandler registers h for key events. Handlers run most recent
	// first and dispatch stops at the first one that consumes the event.
	// The returned function removes the handler.
	AddKeyHandler(h KeyHandler) (remove func())
}

type keyEntry struct {
	id int
	h  KeyHandler
}

// Root is a headless Surface bound to a scheduler loop. It performs a
// layout pass in the loop's frame phase, sizing Layouter children to the
// surface, and routes pointer events to the topmost child that consumes
// them.
//
// All Root methods must be called on the loop's goroutine.
type Root struct {
	loop        *scheduler.Loop
	size        graphics.Size
	children    []Node
	keyEntries  []keyEntry
	nextKeyID   int
	removeFrame func()
}

// NewRoot creates a headless surface of the given size and hooks its layout
// pass into the loop. Call Close to unhook it.
func NewRoot(loop *scheduler.Loop, size graphics.Size) *Root {
	r := &Root{loop: loop, size: size}
	r.removeFrame = loop.AddFrameCallback(r.layout)
	return r
}

// Close unhooks the layout pass from the loop.
func (r *Root) Close() {
	if r.removeFrame != nil {
		r.removeFrame()
		r.removeFrame = nil
	}
}

// Loop returns the scheduler loop this surface is bound to.
func (r *Root) Loop() *scheduler.Loop { return r.loop }

// Size returns the surface size.
func (r *Root) Size() graphics.Size { return r.size }

// SetSize resizes the surface. Children pick the new size up on the next
// layout pass.
func (r *Root) SetSize(size graphics.Size) { r.size = size }

// AddChild mounts node above all existing children.
func (r *Root) AddChild(node Node) {
	r.children = append(r.children, node)
}

// RemoveChild unmounts node.
func (r *Root) RemoveChild(node Node) {
	for i, c := range r.children {
		if c == node {
			r.children = append(r.children[:i], r.children[i+1:]...)
			return
		}
	}
}

// Children returns the mounted children, bottom to top.
func (r *Root) Children() []Node {
	return r.children
}

// layout sizes self-laying-out children once per step.
func (r *Root) layout(time.Time) {
	for _, c := range r.children {
		if l, ok := c.(Layouter); ok {
			l.Layout(r.size)
		}
	}
}

// DispatchPointer delivers ev to children topmost-first until one consumes
// it. It reports whether any child consumed the event; unconsumed events
// would fall through to whatever owns the surface.
func (r *Root) DispatchPointer(ev PointerEvent) bool {
	for i := len(r.children) - 1; i >= 0; i-- {
		if target, ok := r.children[i].(PointerTarget); ok {
			if target.HandlePointer(ev) {
				return true
			}
		}
	}
	return false
}

// AddKeyHandler implements Surface.
func (r *Root) AddKeyHandler(h KeyHandler) (remove func()) {
	id := r.nextKeyID
	r.nextKeyID++
	r.keyEntries = append(r.keyEntries, keyEntry{id: id, h: h})
	return func() {
		for i, e := range r.keyEntries {
			if e.id == id {
				r.keyEntries = append(r.keyEntries[:i], r.keyEntries[i+1:]...)
				return
			}
		}
	}
}

// DispatchKey delivers ev to key handlers, most recently added first,
// stopping at the first handler that consumes it.
func (r *Root) DispatchKey(ev KeyEvent) bool {
	// Snapshot: a handler may remove itself during dispatch.
	entries := make([]keyEntry, len(r.keyEntries))
	copy(entries, r.keyEntries)
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].h(ev) {
			return true
		}
	}
	return false
}
