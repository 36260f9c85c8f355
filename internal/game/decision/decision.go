// Package decision implements the per-event decision engine that turns button events
// into combat actions.
package decision

import (
	"time"

	"github.com/cory-johannsen/attackinput/internal/game/combat"
	"github.com/cory-johannsen/attackinput/internal/input"
	"github.com/cory-johannsen/attackinput/internal/input/binding"
	"github.com/cory-johannsen/attackinput/internal/input/combo"
)

// Outcome is the result of processing one button sub-event.
type Outcome int

const (
	// OutcomeDropped means the event was rejected before any combat state was consulted.
	OutcomeDropped Outcome = iota
	// OutcomeSuppressed means the character cannot attack right now.
	OutcomeSuppressed
	// OutcomeBuffered means the event was absorbed by an open hold window.
	OutcomeBuffered
	// OutcomeIgnored means no action path applied to the event.
	OutcomeIgnored
	// OutcomeFired means exactly one action was triggered.
	OutcomeFired
)

// String returns a human-readable outcome label.
func (o Outcome) String() string {
	switch o {
	case OutcomeDropped:
		return "dropped"
	case OutcomeSuppressed:
		return "suppressed"
	case OutcomeBuffered:
		return "buffered"
	case OutcomeIgnored:
		return "ignored"
	case OutcomeFired:
		return "fired"
	default:
		return "unknown"
	}
}

// Decision describes how one sub-event was handled.
type Decision struct {
	Event   input.ButtonEvent
	Code    input.KeyCode
	Role    binding.Role
	Set     combo.Set
	Outcome Outcome
	Action  combat.Kind
	Reason  string
}

// Settings holds the engine's hold-based consecutive attack toggles.
type Settings struct {
	// HoldConsecutiveLight repeats light attacks while a native attack key is held.
	HoldConsecutiveLight bool
	// HoldConsecutivePower repeats power attacks while a power-attack key is held.
	HoldConsecutivePower bool
	// DualConsecutive repeats dual light attacks while both native attack keys are held.
	DualConsecutive bool
	// Delay is the hold window between consecutive attacks. Non-positive disables
	// both hold-based features.
	Delay time.Duration
}

func (s Settings) holdLight() bool { return s.HoldConsecutiveLight && s.Delay > 0 }

func (s Settings) holdPower() bool { return s.HoldConsecutivePower && s.Delay > 0 }

// UIState reports interface state that blocks combat input.
type UIState interface {
	// Blocking reports whether the game is paused or any menu, dialogue, console,
	// tween, or level-up surface is open.
	Blocking() bool
	// MovementEnabled reports whether movement controls are enabled.
	MovementEnabled() bool
}
