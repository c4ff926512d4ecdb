package core

import "time"

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, H, Left arrow - nudge catcher left
	ActionRight          // D, L, Right arrow - nudge catcher right
	ActionRestart        // R - restart the round immediately
	ActionQuit           // Q, Ctrl+C
	ActionPause          // P, Escape - pause/unpause
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input collected by the host during one frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool

	// Elapsed is the wall time since the previous frame. Zero means
	// "advance exactly one fixed step".
	Elapsed time.Duration

	pointerX  int
	hasTapped bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Tap records a pointer press at screen column x. Later taps in the same
// frame replace earlier ones.
func (f *InputFrame) Tap(x int) {
	f.pointerX = x
	f.hasTapped = true
}

// Pointer returns the column of the last tap this frame, if any.
func (f InputFrame) Pointer() (int, bool) {
	return f.pointerX, f.hasTapped
}

// Clear resets all input for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Elapsed = 0
	f.pointerX = 0
	f.hasTapped = false
}
