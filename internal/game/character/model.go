// Package character defines the read-only character snapshot consulted by the
// combat input layer and the Actor collaborator that supplies it.
package character

// WeaponClass classifies the object equipped in one hand.
type WeaponClass int

const (
	// WeaponEmpty means nothing is equipped in the hand.
	WeaponEmpty WeaponClass = iota
	// WeaponHandToHand is a fist or gauntlet weapon.
	WeaponHandToHand
	// WeaponOneHanded is any one-handed melee weapon.
	WeaponOneHanded
	WeaponTwoHandedSword
	WeaponTwoHandedAxe
	WeaponBow
	WeaponStaff
	WeaponCrossbow
	// WeaponNonWeapon is a spell, shield, torch, or other non-weapon object.
	WeaponNonWeapon
)

// Equipped reports whether the hand can perform a melee attack.
// Empty and hand-to-hand hands count as equipped; ranged weapons, staves, and
// non-weapon objects do not.
func (w WeaponClass) Equipped() bool {
	switch w {
	case WeaponEmpty, WeaponHandToHand, WeaponOneHanded, WeaponTwoHandedSword, WeaponTwoHandedAxe:
		return true
	default:
		return false
	}
}

// TwoHanded reports whether the weapon is a two-handed sword or axe.
func (w WeaponClass) TwoHanded() bool {
	return w == WeaponTwoHandedSword || w == WeaponTwoHandedAxe
}

// Unarmed reports whether the hand fights without a held weapon.
func (w WeaponClass) Unarmed() bool {
	return w == WeaponEmpty || w == WeaponHandToHand
}

// SitSleepState is the character's furniture interaction state.
type SitSleepState int

const (
	SitSleepNormal SitSleepState = iota
	SitSleepSitting
	SitSleepSleeping
)

// KnockState is the character's knockdown state.
type KnockState int

const (
	KnockNormal KnockState = iota
	KnockExplode
	KnockDown
	KnockGetUp
	KnockQueued
)

// Snapshot is the character state observed for one input sub-event.
type Snapshot struct {
	Right WeaponClass
	Left  WeaponClass

	Stamina float64

	// Animation graph variables.
	Blocking  bool
	Attacking bool
	InJump    bool

	// Attack eligibility.
	InKillMove  bool
	WeaponDrawn bool
	SitSleep    SitSleepState
	Knock       KnockState
	Flying      bool
}

// Ref is an opaque reference to the acting character, passed back to the action executor.
type Ref interface{}

// Actor supplies fresh character snapshots.
type Actor interface {
	// Ref returns the reference passed to action execution.
	Ref() Ref
	// Snapshot returns the current state, or false when the character is unavailable
	// (not loaded, no 3D, between cells).
	Snapshot() (Snapshot, bool)
}
