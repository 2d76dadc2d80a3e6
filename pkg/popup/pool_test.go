package popup

import (
	"testing"

	"github.com/go-drift/popup/pkg/graphics"
	"github.com/go-drift/popup/pkg/scene"
)

func TestPoolLIFOReuse(t *testing.T) {
	p := NewPool()
	a := p.Acquire()
	b := p.Acquire()
	if a == b {
		t.Fatal("distinct acquires must return distinct containers")
	}

	p.Release(a)
	p.Release(b)
	if p.IdleCount() != 2 {
		t.Fatalf("IdleCount = %d, want 2", p.IdleCount())
	}

	if got := p.Acquire(); got != b {
		t.Error("Acquire should return the most recently released container")
	}
	if got := p.Acquire(); got != a {
		t.Error("second Acquire should return the earlier release")
	}
	if p.IdleCount() != 0 {
		t.Errorf("IdleCount = %d, want 0", p.IdleCount())
	}
}

func TestPoolReleaseResetsIdleInvariants(t *testing.T) {
	p := NewPool()
	c := p.Acquire()
	content := scene.NewBox(graphics.Size{Width: 10, Height: 10})
	if err := c.Attach(content); err != nil {
		t.Fatal(err)
	}
	c.SetInputBlocked(false)
	c.SetOpacity(0.3)
	c.SetBackground(DefaultBackground)
	c.SetOffset(graphics.Offset{X: 5})

	p.Release(c)

	if c.Content() != nil {
		t.Error("pooled container must hold no content")
	}
	if content.Parent() != nil {
		t.Error("released content must be orphaned")
	}
	if !c.InputBlocked() {
		t.Error("pooled container must be input blocked")
	}
	if c.Opacity() != 1 {
		t.Error("pooled container opacity must be reset")
	}
	if _, has := c.Background(); has {
		t.Error("pooled container must have no background")
	}
	if !c.Offset().IsZero() {
		t.Error("pooled container offset must be reset")
	}
}

func TestPoolCapDiscardsExcess(t *testing.T) {
	p := NewPoolCap(1)
	a := p.Acquire()
	b := p.Acquire()
	p.Release(a)
	p.Release(b)

	if p.IdleCount() != 1 {
		t.Fatalf("IdleCount = %d, want 1 with cap 1", p.IdleCount())
	}
	if got := p.Acquire(); got != a {
		t.Error("the capped pool should keep the first release and discard the second")
	}
}

func TestPoolReleaseNil(t *testing.T) {
	p := NewPool()
	p.Release(nil) // no panic
	if p.IdleCount() != 0 {
		t.Error("nil release must not pool anything")
	}
}
