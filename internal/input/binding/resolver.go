package binding

import (
	"github.com/cory-johannsen/attackinput/internal/input"
)

// Native user event names queried from the control map.
const (
	UserEventRightAttack = "Right Attack/Block"
	UserEventLeftAttack  = "Left Attack/Block"
)

// ControlMap reports the engine's current key mappings.
type ControlMap interface {
	input.Decoder
	// MappedKey returns the raw device code bound to the user event on device, or false
	// when the event is unmapped on that device.
	MappedKey(event string, device input.Device) (uint32, bool)
}

type attackKeys struct {
	right input.OptionalKey
	left  input.OptionalKey
}

// Resolver classifies normalized key codes into roles using cached native attack keys
// and the configured layout.
//
// Invariant: cached keys change only in Refresh.
type Resolver struct {
	controls ControlMap
	layout   Layout
	native   map[input.Device]attackKeys
}

// NewResolver creates a Resolver. The native attack key cache is empty until Refresh.
//
// Precondition: controls must be non-nil.
func NewResolver(controls ControlMap, layout Layout) *Resolver {
	return &Resolver{
		controls: controls,
		layout:   layout,
		native:   make(map[input.Device]attackKeys),
	}
}

// Layout returns the configured power-attack layout.
func (r *Resolver) Layout() Layout { return r.layout }

// Decoder returns the gamepad mask decoder of the control map.
func (r *Resolver) Decoder() input.Decoder { return r.controls }

// Refresh re-reads the native right and left attack keys for every supported device.
// Call it once the control map is initialized and whenever remapping may have occurred.
func (r *Resolver) Refresh() {
	for _, d := range []input.Device{input.DeviceKeyboard, input.DeviceMouse, input.DeviceGamepad} {
		r.native[d] = attackKeys{
			right: r.lookup(UserEventRightAttack, d),
			left:  r.lookup(UserEventLeftAttack, d),
		}
	}
}

func (r *Resolver) lookup(event string, d input.Device) input.OptionalKey {
	raw, ok := r.controls.MappedKey(event, d)
	if !ok {
		return input.Unbound()
	}
	code, ok := input.Normalize(d, raw, r.controls)
	if !ok {
		return input.Unbound()
	}
	return input.Bound(code)
}

// NativeKey returns the cached native attack key for role on device.
//
// Postcondition: Returns an unbound key for roles other than right and left attack.
func (r *Resolver) NativeKey(d input.Device, role Role) input.OptionalKey {
	keys := r.native[d]
	switch role {
	case RoleRightAttack:
		return keys.right
	case RoleLeftAttack:
		return keys.left
	default:
		return input.Unbound()
	}
}

// AttackRole returns RoleRightAttack or RoleLeftAttack when code is the native attack
// key of that hand on device, and RoleNone otherwise.
func (r *Resolver) AttackRole(d input.Device, code input.KeyCode) Role {
	keys, ok := r.native[d]
	if !ok {
		return RoleNone
	}
	switch {
	case keys.right.Matches(code):
		return RoleRightAttack
	case keys.left.Matches(code):
		return RoleLeftAttack
	default:
		return RoleNone
	}
}

// Classify returns the role of code on device: a combo modifier role if code is a
// configured modifier, otherwise the native attack role, otherwise RoleNone.
func (r *Resolver) Classify(d input.Device, code input.KeyCode) Role {
	if !d.Supported() {
		return RoleNone
	}
	if sets := r.layout.ModifierSets(code); len(sets) > 0 {
		return ComboRole(sets[0])
	}
	return r.AttackRole(d, code)
}
