package popup

// Default raw key codes for the dismiss triggers. The back-button code is
// the SDL scancode Android reports for the hardware back key; both are
// platform conventions, not universal constants, which is why the mapping
// lives in a configurable Keymap.
const (
	DefaultEscapeKeyCode = 27
	DefaultBackKeyCode   = 1073742106
)

// Keymap maps raw key codes to dismiss causes.
type Keymap struct {
	Escape int
	Back   int
}

// DefaultKeymap returns the conventional escape/back mapping.
func DefaultKeymap() Keymap {
	return Keymap{Escape: DefaultEscapeKeyCode, Back: DefaultBackKeyCode}
}

// CauseFor returns the dismiss cause for a key code, if the code is bound.
func (k Keymap) CauseFor(code int) (DismissCause, bool) {
	switch code {
	case k.Escape:
		return CauseEscapeKey, true
	case k.Back:
		return CauseBackButton, true
	default:
		return CauseNone, false
	}
}
