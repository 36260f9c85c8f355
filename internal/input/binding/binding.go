// Package binding resolves physical keys to logical combat roles: the game's native
// attack keys (read from the control map) and the configured power-attack layout
// (three combo sets, each with a modifier and right/left/both attack keys).
package binding

import (
	"github.com/cory-johannsen/attackinput/internal/input"
	"github.com/cory-johannsen/attackinput/internal/input/combo"
)

// Role is the logical meaning of a key.
type Role int

const (
	RoleNone Role = iota
	RoleRightAttack
	RoleLeftAttack
	RoleBothAttack
	RoleCombo1
	RoleCombo2
	RoleCombo3
)

// String returns a human-readable role label.
func (r Role) String() string {
	switch r {
	case RoleRightAttack:
		return "right attack"
	case RoleLeftAttack:
		return "left attack"
	case RoleBothAttack:
		return "both attack"
	case RoleCombo1:
		return "combo 1"
	case RoleCombo2:
		return "combo 2"
	case RoleCombo3:
		return "combo 3"
	default:
		return "none"
	}
}

// ComboRole returns the modifier role of set s.
func ComboRole(s combo.Set) Role {
	switch s {
	case combo.SetPrimary:
		return RoleCombo1
	case combo.SetAlt1:
		return RoleCombo2
	case combo.SetAlt2:
		return RoleCombo3
	default:
		return RoleNone
	}
}

// ComboSet returns the set whose modifier role r is.
func (r Role) ComboSet() (combo.Set, bool) {
	switch r {
	case RoleCombo1:
		return combo.SetPrimary, true
	case RoleCombo2:
		return combo.SetAlt1, true
	case RoleCombo3:
		return combo.SetAlt2, true
	default:
		return combo.SetNone, false
	}
}

// SetKeys is the configured key layout of one combo set.
type SetKeys struct {
	Modifier input.OptionalKey
	Right    input.OptionalKey
	Left     input.OptionalKey
	Both     input.OptionalKey
}

// Role returns the attack role code is bound to in this set, checking right, left,
// then both.
func (k SetKeys) Role(code input.KeyCode) Role {
	switch {
	case k.Right.Matches(code):
		return RoleRightAttack
	case k.Left.Matches(code):
		return RoleLeftAttack
	case k.Both.Matches(code):
		return RoleBothAttack
	default:
		return RoleNone
	}
}

// Gated reports whether the set only routes while its modifier is the active one.
func (k SetKeys) Gated() bool { return k.Modifier.IsBound() }

// Layout is the configured power-attack key layout across the three combo sets.
type Layout struct {
	Primary SetKeys
	Alt1    SetKeys
	Alt2    SetKeys
}

// Set returns the keys of set s.
//
// Postcondition: Returns the zero SetKeys for combo.SetNone.
func (l Layout) Set(s combo.Set) SetKeys {
	switch s {
	case combo.SetPrimary:
		return l.Primary
	case combo.SetAlt1:
		return l.Alt1
	case combo.SetAlt2:
		return l.Alt2
	default:
		return SetKeys{}
	}
}

// ModifierEnabled reports whether set s has a bound modifier key.
func (l Layout) ModifierEnabled(s combo.Set) bool {
	return l.Set(s).Modifier.IsBound()
}

// ModifierSets returns every set whose modifier key is code.
func (l Layout) ModifierSets(code input.KeyCode) []combo.Set {
	var sets []combo.Set
	for _, s := range combo.Sets {
		if l.Set(s).Modifier.Matches(code) {
			sets = append(sets, s)
		}
	}
	return sets
}

// IsPowerKey reports whether code is an attack key in any set.
func (l Layout) IsPowerKey(code input.KeyCode) bool {
	for _, s := range combo.Sets {
		if l.Set(s).Role(code) != RoleNone {
			return true
		}
	}
	return false
}

// Route picks the set and attack role for a power-attack key press.
//
// The active set's binding wins. Otherwise the first set, in primary, alt1, alt2
// order, whose modifier is unbound and which binds code is used. A key bound only
// under gated sets that are not the sole active set does not route.
//
// Postcondition: Returns (combo.SetNone, RoleNone) when code does not route.
func (l Layout) Route(code input.KeyCode, active combo.Set) (combo.Set, Role) {
	if active != combo.SetNone {
		if r := l.Set(active).Role(code); r != RoleNone {
			return active, r
		}
	}
	for _, s := range combo.Sets {
		k := l.Set(s)
		if k.Gated() {
			continue
		}
		if r := k.Role(code); r != RoleNone {
			return s, r
		}
	}
	return combo.SetNone, RoleNone
}
