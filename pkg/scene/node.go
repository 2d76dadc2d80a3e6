// Package scene defines the thin visual-tree contract the popup engine
// works against: nodes with a size and a translation offset, a root surface
// that can host and lay out children, and the pointer/key event types a
// surface delivers.
//
// Rendering is deliberately absent. A real widget tree adapts itself to
// these interfaces; the concrete [Root] in this package is a headless
// implementation used by tests and the scenario simulator.
package scene

import "github.com/go-drift/popup/pkg/graphics"

// Node is a visual element handle. The popup engine only ever reads a
// node's size, moves it with a transition offset, and tracks its ownership
// through reparenting.
//
// Node is sealed: implementations embed [Base].
type Node interface {
	// Size returns the node's current laid-out size.
	Size() graphics.Size
	// Offset returns the node's translation from its rest position.
	Offset() graphics.Offset
	// SetOffset translates the node from its rest position. Transitions
	// use this to slide content on and off the surface.
	SetOffset(graphics.Offset)
	// Parent returns the owning node, or nil while detached.
	Parent() Node

	base() *Base
}

// Base provides the Node plumbing. Embed it in any content or container
// implementation.
type Base struct {
	size   graphics.Size
	offset graphics.Offset
	parent Node
}

// Size returns the node's current size.
func (b *Base) Size() graphics.Size { return b.size }

// SetSize records the node's laid-out size.
func (b *Base) SetSize(s graphics.Size) { b.size = s }

// Offset returns the node's translation from its rest position.
func (b *Base) Offset() graphics.Offset { return b.offset }

// SetOffset translates the node from its rest position.
func (b *Base) SetOffset(o graphics.Offset) { b.offset = o }

// Parent returns the owning node, or nil while detached.
func (b *Base) Parent() Node { return b.parent }

func (b *Base) base() *Base { return b }

// Adopt records parent as the owner of child. It reports false when the
// child already has an owner, which callers surface as an invalid-state
// error rather than silently stealing the node.
func Adopt(parent, child Node) bool {
	cb := child.base()
	if cb.parent != nil {
		return false
	}
	cb.parent = parent
	return true
}

// Orphan clears the child's owner. Safe to call on an already detached node.
func Orphan(child Node) {
	child.base().parent = nil
}

// Layouter is implemented by nodes that size themselves against available
// space. A surface lays out such children once per scheduling step, so a
// freshly attached node stays zero-sized until the step after attachment.
type Layouter interface {
	Layout(avail graphics.Size)
}

// Box is a plain content node with a fixed preferred size. It stands in for
// caller-supplied popup content in tests and the simulator.
type Box struct {
	Base

	// OnPointer, when set, receives pointer events forwarded to this node.
	OnPointer func(ev PointerEvent)
}

// NewBox creates a content node with the given fixed size.
func NewBox(size graphics.Size) *Box {
	b := &Box{}
	b.SetSize(size)
	return b
}

// HandlePointer implements PointerTarget.
func (b *Box) HandlePointer(ev PointerEvent) bool {
	if b.OnPointer != nil {
		b.OnPointer(ev)
	}
	return true
}
