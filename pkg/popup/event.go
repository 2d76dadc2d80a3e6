package popup

import (
	"fmt"
	"sync"
)

// DismissCause identifies which trigger closed a popup automatically.
type DismissCause int

const (
	// CauseNone means the popup was closed by the caller, not a trigger.
	CauseNone DismissCause = iota
	// CauseOutsideTouch means a press landed outside the content bounds.
	CauseOutsideTouch
	// CauseEscapeKey means the escape key was pressed.
	CauseEscapeKey
	// CauseBackButton means the platform back button was pressed.
	CauseBackButton
)

func (c DismissCause) String() string {
	switch c {
	case CauseNone:
		return "none"
	case CauseOutsideTouch:
		return "outside_touch"
	case CauseEscapeKey:
		return "escape_key"
	case CauseBackButton:
		return "back_button"
	default:
		return fmt.Sprintf("DismissCause(%d)", int(c))
	}
}

// DismissEvent is a single-fire signal carrying the cause of an automatic
// dismissal. [Open] creates one per call and fires it, after the full
// unwind, if a watcher ended the interactive period. The caller reads it
// once Open returns to tell "user closed it" from "it closed itself".
//
// Safe for concurrent use: the loop fires it, the caller reads it.
type DismissEvent struct {
	mu    sync.Mutex
	fired bool
	cause DismissCause
}

// NewDismissEvent returns an unfired event.
func NewDismissEvent() *DismissEvent {
	return &DismissEvent{}
}

// Fire marks the event with cause. The first cause wins; later calls are
// no-ops. It reports whether this call was the firing one.
func (e *DismissEvent) Fire(cause DismissCause) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.fired {
		return false
	}
	e.fired = true
	e.cause = cause
	return true
}

// Fired reports whether the event has fired.
func (e *DismissEvent) Fired() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fired
}

// Cause returns the recorded cause, or CauseNone while unfired.
func (e *DismissEvent) Cause() DismissCause {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.fired {
		return CauseNone
	}
	return e.cause
}
