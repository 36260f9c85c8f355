// Package combat defines the combat actions the input layer can trigger and the
// Action Gate that validates character state and stamina before triggering them.
package combat

import "github.com/cory-johannsen/attackinput/internal/game/character"

// ActionID is the opaque engine identifier of a combat action.
// The zero value means the action is unavailable.
type ActionID string

// Available reports whether the identifier names an action.
func (a ActionID) Available() bool { return a != "" }

// Kind identifies one of the six actions the input layer can trigger.
type Kind int

const (
	KindNone Kind = iota
	KindRightPower
	KindLeftPower
	KindBothPower
	KindRightLight
	KindLeftLight
	KindBothLight
)

// String returns a human-readable action label.
func (k Kind) String() string {
	switch k {
	case KindRightPower:
		return "right power attack"
	case KindLeftPower:
		return "left power attack"
	case KindBothPower:
		return "dual power attack"
	case KindRightLight:
		return "right light attack"
	case KindLeftLight:
		return "left light attack"
	case KindBothLight:
		return "dual light attack"
	default:
		return "none"
	}
}

// Power reports whether the action is a power attack.
func (k Kind) Power() bool {
	return k == KindRightPower || k == KindLeftPower || k == KindBothPower
}

// Hands identifies which hands an attack engages.
type Hands int

const (
	HandsRight Hands = iota
	HandsLeft
	HandsBoth
)

// String returns a human-readable label.
func (h Hands) String() string {
	switch h {
	case HandsRight:
		return "right"
	case HandsLeft:
		return "left"
	case HandsBoth:
		return "both"
	default:
		return "unknown"
	}
}

// Actions maps every action Kind to its engine identifier.
type Actions struct {
	RightPower ActionID
	LeftPower  ActionID
	BothPower  ActionID
	RightLight ActionID
	LeftLight  ActionID
	BothLight  ActionID
}

// ID returns the identifier of kind k.
//
// Postcondition: Returns the zero ActionID for KindNone and unknown kinds.
func (a Actions) ID(k Kind) ActionID {
	switch k {
	case KindRightPower:
		return a.RightPower
	case KindLeftPower:
		return a.LeftPower
	case KindBothPower:
		return a.BothPower
	case KindRightLight:
		return a.RightLight
	case KindLeftLight:
		return a.LeftLight
	case KindBothLight:
		return a.BothLight
	default:
		return ""
	}
}

// PowerKind returns the power attack for hands h.
func PowerKind(h Hands) Kind {
	switch h {
	case HandsLeft:
		return KindLeftPower
	case HandsBoth:
		return KindBothPower
	default:
		return KindRightPower
	}
}

// LightKind returns the light attack for hands h.
func LightKind(h Hands) Kind {
	switch h {
	case HandsLeft:
		return KindLeftLight
	case HandsBoth:
		return KindBothLight
	default:
		return KindRightLight
	}
}

// Executor performs combat actions on behalf of a character. Calls are fire-and-forget.
type Executor interface {
	Perform(id ActionID, actor character.Ref)
}

// Meter names a HUD resource meter.
type Meter int

const (
	MeterHealth Meter = iota
	MeterMagicka
	MeterStamina
)

// String returns a human-readable meter label.
func (m Meter) String() string {
	switch m {
	case MeterHealth:
		return "health"
	case MeterMagicka:
		return "magicka"
	case MeterStamina:
		return "stamina"
	default:
		return "unknown"
	}
}

// HUD provides transient visual feedback. Calls are fire-and-forget.
type HUD interface {
	FlashMeter(m Meter)
}
