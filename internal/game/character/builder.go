package character

import (
	"errors"
	"fmt"
	"strings"
)

var weaponClassNames = map[string]WeaponClass{
	"empty":            WeaponEmpty,
	"hand_to_hand":     WeaponHandToHand,
	"one_handed":       WeaponOneHanded,
	"two_handed_sword": WeaponTwoHandedSword,
	"two_handed_axe":   WeaponTwoHandedAxe,
	"bow":              WeaponBow,
	"staff":            WeaponStaff,
	"crossbow":         WeaponCrossbow,
	"non_weapon":       WeaponNonWeapon,
}

// ParseWeaponClass maps a weapon class label to a WeaponClass. The empty string is WeaponEmpty.
//
// Postcondition: Returns a non-nil error for unknown labels.
func ParseWeaponClass(s string) (WeaponClass, error) {
	if s == "" {
		return WeaponEmpty, nil
	}
	w, ok := weaponClassNames[strings.ToLower(s)]
	if !ok {
		return WeaponEmpty, fmt.Errorf("unknown weapon class %q", s)
	}
	return w, nil
}

// String returns the weapon class label.
func (w WeaponClass) String() string {
	for name, c := range weaponClassNames {
		if c == w {
			return name
		}
	}
	return "unknown"
}

// SnapshotSpec is the textual form of a Snapshot used by scenario files and scripts.
type SnapshotSpec struct {
	Right       string  `yaml:"right"`
	Left        string  `yaml:"left"`
	Stamina     float64 `yaml:"stamina"`
	Blocking    bool    `yaml:"blocking"`
	Attacking   bool    `yaml:"attacking"`
	InJump      bool    `yaml:"in_jump"`
	InKillMove  bool    `yaml:"in_kill_move"`
	WeaponDrawn *bool   `yaml:"weapon_drawn"`
	Sitting     bool    `yaml:"sitting"`
	Sleeping    bool    `yaml:"sleeping"`
	KnockedDown bool    `yaml:"knocked_down"`
	Flying      bool    `yaml:"flying"`
}

// Build converts the spec into a Snapshot. WeaponDrawn defaults to true when omitted.
//
// Postcondition: Returns a Snapshot or an error naming every invalid field.
func (s SnapshotSpec) Build() (Snapshot, error) {
	var errs []error
	right, err := ParseWeaponClass(s.Right)
	if err != nil {
		errs = append(errs, fmt.Errorf("right: %w", err))
	}
	left, err := ParseWeaponClass(s.Left)
	if err != nil {
		errs = append(errs, fmt.Errorf("left: %w", err))
	}
	if s.Sitting && s.Sleeping {
		errs = append(errs, errors.New("sitting and sleeping are mutually exclusive"))
	}
	if len(errs) > 0 {
		return Snapshot{}, errors.Join(errs...)
	}

	snap := Snapshot{
		Right:       right,
		Left:        left,
		Stamina:     s.Stamina,
		Blocking:    s.Blocking,
		Attacking:   s.Attacking,
		InJump:      s.InJump,
		InKillMove:  s.InKillMove,
		WeaponDrawn: s.WeaponDrawn == nil || *s.WeaponDrawn,
		Flying:      s.Flying,
	}
	switch {
	case s.Sitting:
		snap.SitSleep = SitSleepSitting
	case s.Sleeping:
		snap.SitSleep = SitSleepSleeping
	}
	if s.KnockedDown {
		snap.Knock = KnockDown
	}
	return snap, nil
}
