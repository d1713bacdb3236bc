package game

import (
	"time"

	"glome/internal/system"

	"github.com/gdamore/tcell/v2"
)

// Action represents a viewer-requested action.
type Action uint8

const (
	ActionNone Action = iota
	ActionLeft
	ActionRight
	ActionUp
	ActionDown
	ActionForward
	ActionBack
	ActionPitchUp
	ActionPitchDown
	ActionYawLeft
	ActionYawRight
	ActionRollLeft
	ActionRollRight
	ActionToggleDebug
	ActionQuit

	actionCount
)

// keyToAction maps a tcell key event to an action.
func keyToAction(ev *tcell.EventKey) Action {
	// Named keys.
	switch ev.Key() {
	case tcell.KeyLeft:
		return ActionLeft
	case tcell.KeyRight:
		return ActionRight
	case tcell.KeyPgUp:
		return ActionUp
	case tcell.KeyPgDn:
		return ActionDown
	case tcell.KeyUp:
		return ActionForward
	case tcell.KeyDown:
		return ActionBack
	case tcell.KeyF1:
		return ActionToggleDebug
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	}

	// Rune keys.
	switch ev.Rune() {
	case 'w', 'W':
		return ActionPitchUp
	case 's', 'S':
		return ActionPitchDown
	case 'a', 'A':
		return ActionYawLeft
	case 'd', 'D':
		return ActionYawRight
	case 'e', 'E':
		return ActionRollLeft
	case 'q', 'Q':
		return ActionRollRight
	case '`':
		return ActionToggleDebug
	}
	return ActionNone
}

// opposite returns the steering action that cancels a.
func opposite(a Action) Action {
	switch a {
	case ActionLeft, ActionUp, ActionForward, ActionPitchUp, ActionYawLeft, ActionRollLeft:
		return a + 1
	case ActionRight, ActionDown, ActionBack, ActionPitchDown, ActionYawRight, ActionRollRight:
		return a - 1
	}
	return ActionNone
}

// heldKeys turns key presses into held keys. Terminals report presses and
// auto-repeats but never releases, so a key counts as held until hold has
// passed without a repeat.
type heldKeys struct {
	hold  time.Duration
	until [actionCount]time.Time
}

func (h *heldKeys) press(a Action, now time.Time) {
	if a == ActionNone || a >= ActionToggleDebug {
		return
	}
	h.until[a] = now.Add(h.hold)
	h.until[opposite(a)] = time.Time{}
}

func (h *heldKeys) held(a Action, now time.Time) bool {
	return now.Before(h.until[a])
}

// controls returns the steering state at now.
func (h *heldKeys) controls(now time.Time) system.Controls {
	return system.Controls{
		Left:      h.held(ActionLeft, now),
		Right:     h.held(ActionRight, now),
		Up:        h.held(ActionUp, now),
		Down:      h.held(ActionDown, now),
		Forward:   h.held(ActionForward, now),
		Back:      h.held(ActionBack, now),
		PitchUp:   h.held(ActionPitchUp, now),
		PitchDown: h.held(ActionPitchDown, now),
		YawLeft:   h.held(ActionYawLeft, now),
		YawRight:  h.held(ActionYawRight, now),
		RollLeft:  h.held(ActionRollLeft, now),
		RollRight: h.held(ActionRollRight, now),
	}
}
