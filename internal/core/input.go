package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone        Action = iota
	ActionForward            // W, Up arrow - move along the heading
	ActionBackward           // S, Down arrow - move against the heading
	ActionStrafeLeft         // A - sidestep left
	ActionStrafeRight        // D - sidestep right
	ActionTurnLeft           // Left arrow, Q - rotate heading
	ActionTurnRight          // Right arrow, E - rotate heading
	ActionLookUp             // I - raise camera pitch
	ActionLookDown           // K - lower camera pitch
	ActionJump               // Space - jump when grounded
	ActionHack               // H - spend a full hack meter
	ActionConfirm            // Enter - confirm selection in menu
	ActionBack               // B, Escape - go back to menu
	ActionRestart            // R key - restart game after game over
	ActionQuit               // Ctrl+C - exit game/session
	ActionPause              // P - pause/unpause game
)

var actionNames = map[Action]string{
	ActionNone:        "None",
	ActionForward:     "Forward",
	ActionBackward:    "Backward",
	ActionStrafeLeft:  "StrafeLeft",
	ActionStrafeRight: "StrafeRight",
	ActionTurnLeft:    "TurnLeft",
	ActionTurnRight:   "TurnRight",
	ActionLookUp:      "LookUp",
	ActionLookDown:    "LookDown",
	ActionJump:        "Jump",
	ActionHack:        "Hack",
	ActionConfirm:     "Confirm",
	ActionBack:        "Back",
	ActionRestart:     "Restart",
	ActionQuit:        "Quit",
	ActionPause:       "Pause",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// InputFrame represents the input state for a single player during one simulation step.
// It contains every action that is active this frame: held movement keys as
// well as one-shot presses.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool
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

// Axis returns +1 when only pos is active, -1 when only neg is, else 0.
func (f InputFrame) Axis(pos, neg Action) float64 {
	switch p, n := f.Has(pos), f.Has(neg); {
	case p && !n:
		return 1
	case n && !p:
		return -1
	}
	return 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}
