package scene

import "github.com/go-drift/popup/pkg/graphics"

// PointerPhase identifies the stage of a pointer interaction.
type PointerPhase int

const (
	// PointerDown is the initial press.
	PointerDown PointerPhase = iota
	// PointerMove is a drag while pressed.
	PointerMove
	// PointerUp is the release.
	PointerUp
)

func (p PointerPhase) String() string {
	switch p {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	default:
		return "unknown"
	}
}

// PointerEvent is a single pointer/touch event in surface coordinates.
type PointerEvent struct {
	Phase    PointerPhase
	Position graphics.Offset
}

// KeyEvent is a raw key press. Code carries the platform key code; the
// popup package maps codes to dismiss causes through its Keymap.
type KeyEvent struct {
	Code int
}

// PointerTarget is implemented by nodes that accept pointer events from a
// surface. HandlePointer returns true when the event was consumed.
type PointerTarget interface {
	HandlePointer(ev PointerEvent) bool
}

// KeyHandler observes key events. Returning true consumes the event and
// stops further dispatch.
type KeyHandler func(ev KeyEvent) bool
