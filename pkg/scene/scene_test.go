package scene

import (
	"testing"
	"time"

	"github.com/go-drift/popup/pkg/graphics"
	"github.com/go-drift/popup/pkg/scheduler"
)

// fillBox is a Layouter node that fills the available space.
type fillBox struct {
	Base
	consumed bool
	events   []PointerEvent
}

func (f *fillBox) Layout(avail graphics.Size) { f.SetSize(avail) }

func (f *fillBox) HandlePointer(ev PointerEvent) bool {
	f.events = append(f.events, ev)
	return f.consumed
}

func TestAdoptRejectsSecondOwner(t *testing.T) {
	parent1 := NewBox(graphics.Size{Width: 10, Height: 10})
	parent2 := NewBox(graphics.Size{Width: 10, Height: 10})
	child := NewBox(graphics.Size{Width: 5, Height: 5})

	if !Adopt(parent1, child) {
		t.Fatal("first Adopt should succeed")
	}
	if Adopt(parent2, child) {
		t.Fatal("second Adopt should fail while owned")
	}
	if child.Parent() != parent1 {
		t.Error("parent should be unchanged")
	}

	Orphan(child)
	if child.Parent() != nil {
		t.Error("Orphan should clear the parent")
	}
	if !Adopt(parent2, child) {
		t.Error("Adopt should succeed after Orphan")
	}
}

func TestRootLayoutRunsOnStep(t *testing.T) {
	l := scheduler.NewLoop()
	r := NewRoot(l, graphics.Size{Width: 800, Height: 600})
	defer r.Close()

	child := &fillBox{}
	r.AddChild(child)

	if !child.Size().IsEmpty() {
		t.Fatal("child must stay zero-sized until a step runs")
	}
	l.Step(time.Now())
	if child.Size() != r.Size() {
		t.Fatalf("child size = %v, want %v", child.Size(), r.Size())
	}
}

func TestRootCloseStopsLayout(t *testing.T) {
	l := scheduler.NewLoop()
	r := NewRoot(l, graphics.Size{Width: 100, Height: 100})
	child := &fillBox{}
	r.AddChild(child)
	r.Close()

	l.Step(time.Now())
	if !child.Size().IsEmpty() {
		t.Error("layout must not run after Close")
	}
}

func TestDispatchPointerTopmostFirst(t *testing.T) {
	l := scheduler.NewLoop()
	r := NewRoot(l, graphics.Size{Width: 100, Height: 100})
	defer r.Close()

	bottom := &fillBox{consumed: true}
	top := &fillBox{consumed: true}
	r.AddChild(bottom)
	r.AddChild(top)

	ev := PointerEvent{Phase: PointerDown, Position: graphics.Offset{X: 10, Y: 10}}
	if !r.DispatchPointer(ev) {
		t.Fatal("event should be consumed")
	}
	if len(top.events) != 1 {
		t.Error("topmost child should receive the event")
	}
	if len(bottom.events) != 0 {
		t.Error("event must not fall through a consuming child")
	}
}

func TestDispatchPointerFallsThroughUnconsumed(t *testing.T) {
	l := scheduler.NewLoop()
	r := NewRoot(l, graphics.Size{Width: 100, Height: 100})
	defer r.Close()

	bottom := &fillBox{consumed: true}
	top := &fillBox{consumed: false}
	r.AddChild(bottom)
	r.AddChild(top)

	if !r.DispatchPointer(PointerEvent{Phase: PointerDown}) {
		t.Fatal("bottom child should consume")
	}
	if len(bottom.events) != 1 {
		t.Error("unconsumed event should reach lower children")
	}
}

func TestDispatchKeyLIFOAndConsume(t *testing.T) {
	l := scheduler.NewLoop()
	r := NewRoot(l, graphics.Size{Width: 100, Height: 100})
	defer r.Close()

	var order []string
	removeA := r.AddKeyHandler(func(ev KeyEvent) bool {
		order = append(order, "a")
		return false
	})
	defer removeA()
	removeB := r.AddKeyHandler(func(ev KeyEvent) bool {
		order = append(order, "b")
		return ev.Code == 27
	})
	defer removeB()

	if !r.DispatchKey(KeyEvent{Code: 27}) {
		t.Fatal("escape should be consumed")
	}
	if len(order) != 1 || order[0] != "b" {
		t.Fatalf("expected only the most recent handler, got %v", order)
	}

	order = nil
	if r.DispatchKey(KeyEvent{Code: 13}) {
		t.Fatal("enter should not be consumed")
	}
	if len(order) != 2 || order[0] != "b" || order[1] != "a" {
		t.Fatalf("expected LIFO fallthrough, got %v", order)
	}
}

func TestAddKeyHandlerRemoveDuringDispatch(t *testing.T) {
	l := scheduler.NewLoop()
	r := NewRoot(l, graphics.Size{Width: 100, Height: 100})
	defer r.Close()

	var remove func()
	remove = r.AddKeyHandler(func(ev KeyEvent) bool {
		remove()
		return false
	})
	r.AddKeyHandler(func(ev KeyEvent) bool { return false })

	// Must not panic and must still visit the other handler.
	r.DispatchKey(KeyEvent{Code: 1})
	if len(r.keyEntries) != 1 {
		t.Fatalf("expected 1 handler left, got %d", len(r.keyEntries))
	}
}
