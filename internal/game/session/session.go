// Package session holds the per-player-session state of the combat input layer.
package session

import (
	"github.com/google/uuid"

	"github.com/cory-johannsen/attackinput/internal/input/binding"
	"github.com/cory-johannsen/attackinput/internal/input/combo"
	"github.com/cory-johannsen/attackinput/internal/input/hold"
)

// Session is the mutable input state carried between event batches for one player
// session: combo modifier state, hold windows, and native attack key latches.
//
// A Session is not safe for concurrent use; batches for one session must be
// processed one at a time.
type Session struct {
	// ID identifies the session in logs.
	ID uuid.UUID
	// Combo tracks held combo modifiers.
	Combo *combo.Tracker
	// Timers holds the per-intent hold windows.
	Timers hold.Timers
	// RightPressed is true while the native right attack key is down.
	RightPressed bool
	// LeftPressed is true while the native left attack key is down.
	LeftPressed bool
	// BothDriver is the native attack role whose held samples feed the dual
	// light-attack window. RoleNone until a key samples it after a reset.
	BothDriver binding.Role
}

// New creates a Session with a fresh ID. modifierEnabled reports, per combo set,
// whether that set's modifier key is bound.
//
// Precondition: modifierEnabled must be non-nil.
// Postcondition: All latches released, all hold windows Idle, no combo set active.
func New(modifierEnabled func(combo.Set) bool) *Session {
	return &Session{
		ID:    uuid.New(),
		Combo: combo.NewTracker(modifierEnabled),
	}
}

// Reset re-initializes the session state for a new player session and assigns a new ID.
//
// Postcondition: Equivalent to a freshly created Session with the same combo configuration.
func (s *Session) Reset() {
	s.ID = uuid.New()
	s.Combo.Reset()
	s.Timers.ResetAll()
	s.RightPressed = false
	s.LeftPressed = false
	s.BothDriver = binding.RoleNone
}
