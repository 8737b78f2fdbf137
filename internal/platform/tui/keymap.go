package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/raanman3d/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c":
		return core.ActionQuit, true
	case "w", "up":
		return core.ActionForward, false
	case "s", "down":
		return core.ActionBackward, false
	case "a":
		return core.ActionStrafeLeft, false
	case "d":
		return core.ActionStrafeRight, false
	case "q", "left":
		return core.ActionTurnLeft, false
	case "e", "right":
		return core.ActionTurnRight, false
	case "i":
		return core.ActionLookUp, false
	case "k":
		return core.ActionLookDown, false
	case " ":
		return core.ActionJump, false
	case "h":
		return core.ActionHack, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}

	return core.ActionNone, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}

// Terminals report presses and auto-repeats but never releases, so a
// movement key counts as held for a while after each event. The first
// press covers the usual auto-repeat delay.
const (
	firstPressHold = 300 * time.Millisecond
	repeatHold     = 120 * time.Millisecond
)

// HeldKeys turns key events into per-frame input. Movement and look
// actions stay active while their key keeps repeating; everything else
// fires once on the next frame.
type HeldKeys struct {
	until   map[core.Action]time.Time
	pending core.InputFrame
}

// NewHeldKeys creates an empty key tracker.
func NewHeldKeys() *HeldKeys {
	return &HeldKeys{
		until:   make(map[core.Action]time.Time),
		pending: core.NewInputFrame(),
	}
}

// Press records a key event at now.
func (h *HeldKeys) Press(a core.Action, now time.Time) {
	if a == core.ActionNone {
		return
	}
	if !continuous(a) {
		h.pending.Set(a)
		return
	}

	hold := firstPressHold
	if t, ok := h.until[a]; ok && now.Before(t) {
		hold = repeatHold
	}
	h.until[a] = now.Add(hold)

	// Pressing one direction releases its opposite at once.
	if opp, ok := opposite[a]; ok {
		delete(h.until, opp)
	}
}

// Frame returns the actions active at now and consumes one-shot presses.
func (h *HeldKeys) Frame(now time.Time) core.InputFrame {
	frame := h.pending
	h.pending = core.NewInputFrame()
	for a, t := range h.until {
		if now.After(t) {
			delete(h.until, a)
			continue
		}
		frame.Set(a)
	}
	return frame
}

// Reset drops all held and pending actions.
func (h *HeldKeys) Reset() {
	clear(h.until)
	h.pending.Clear()
}

func continuous(a core.Action) bool {
	switch a {
	case core.ActionForward, core.ActionBackward,
		core.ActionStrafeLeft, core.ActionStrafeRight,
		core.ActionTurnLeft, core.ActionTurnRight,
		core.ActionLookUp, core.ActionLookDown:
		return true
	}
	return false
}

var opposite = map[core.Action]core.Action{
	core.ActionForward:     core.ActionBackward,
	core.ActionBackward:    core.ActionForward,
	core.ActionStrafeLeft:  core.ActionStrafeRight,
	core.ActionStrafeRight: core.ActionStrafeLeft,
	core.ActionTurnLeft:    core.ActionTurnRight,
	core.ActionTurnRight:   core.ActionTurnLeft,
	core.ActionLookUp:      core.ActionLookDown,
	core.ActionLookDown:    core.ActionLookUp,
}
