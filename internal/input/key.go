package input

import "strconv"

// KeyCode is a key code in the unified keyboard/mouse/gamepad space.
// Keyboard codes occupy [0, MouseOffset), mouse codes [MouseOffset, GamepadOffset),
// gamepad codes [GamepadOffset, MaxKeyCode).
type KeyCode uint32

const (
	// MouseOffset is added to raw mouse button codes to keep them apart from keyboard codes.
	MouseOffset KeyCode = 256
	// GamepadOffset is the first unified code assigned to gamepad buttons.
	GamepadOffset KeyCode = 266
	// MaxKeyCode is one past the last valid unified code.
	MaxKeyCode KeyCode = 282
)

// OptionalKey is a key code that may be unbound.
// The zero value is unbound and never matches any key.
type OptionalKey struct {
	code KeyCode
	ok   bool
}

// Bound returns an OptionalKey holding code.
func Bound(code KeyCode) OptionalKey {
	return OptionalKey{code: code, ok: true}
}

// Unbound returns the unbound OptionalKey.
func Unbound() OptionalKey {
	return OptionalKey{}
}

// UnboundSetting is the configured key value that means "no key".
const UnboundSetting = 255

// KeyFromSetting converts a configured integer key code into an OptionalKey.
// Non-positive values, UnboundSetting, and values outside the unified code space
// are unbound.
//
// Postcondition: Returns a bound key iff 0 < v < MaxKeyCode and v != UnboundSetting.
func KeyFromSetting(v int) OptionalKey {
	if v <= 0 || v == UnboundSetting || v >= int(MaxKeyCode) {
		return Unbound()
	}
	return Bound(KeyCode(v))
}

// IsBound reports whether the key is bound.
func (k OptionalKey) IsBound() bool { return k.ok }

// Code returns the key code and whether it is bound.
func (k OptionalKey) Code() (KeyCode, bool) { return k.code, k.ok }

// Matches reports whether code equals this key. Unbound keys match nothing.
func (k OptionalKey) Matches(code KeyCode) bool {
	return k.ok && k.code == code
}

// String returns the code in decimal, or "unbound".
func (k OptionalKey) String() string {
	if !k.ok {
		return "unbound"
	}
	return strconv.FormatUint(uint64(k.code), 10)
}

// gamepadMasks maps XInput button masks to unified gamepad key codes.
var gamepadMasks = map[uint32]KeyCode{
	0x0001: 266, // dpad up
	0x0002: 267, // dpad down
	0x0004: 268, // dpad left
	0x0008: 269, // dpad right
	0x0010: 270, // start
	0x0020: 271, // back
	0x0040: 272, // left thumb
	0x0080: 273, // right thumb
	0x0100: 274, // left shoulder
	0x0200: 275, // right shoulder
	0x1000: 276, // A
	0x2000: 277, // B
	0x4000: 278, // X
	0x8000: 279, // Y
	0x0009: 280, // left trigger
	0x000A: 281, // right trigger
}

// GamepadMaskToKeycode decodes an XInput button mask into a unified key code.
//
// Postcondition: Returns false for masks that do not name exactly one known button.
func GamepadMaskToKeycode(mask uint32) (KeyCode, bool) {
	code, ok := gamepadMasks[mask]
	return code, ok
}

// Decoder translates gamepad masks into unified key codes.
type Decoder interface {
	GamepadMaskToKeycode(mask uint32) (KeyCode, bool)
}

// XInputDecoder decodes gamepad masks with the standard XInput button table.
type XInputDecoder struct{}

// GamepadMaskToKeycode implements Decoder.
func (XInputDecoder) GamepadMaskToKeycode(mask uint32) (KeyCode, bool) {
	return GamepadMaskToKeycode(mask)
}

// Normalize converts a raw device code into the unified key space.
//
// Precondition: dec must be non-nil when device is DeviceGamepad.
// Postcondition: Returns false for unsupported devices, out-of-range mouse codes,
// and undecodable gamepad masks.
func Normalize(device Device, raw uint32, dec Decoder) (KeyCode, bool) {
	switch device {
	case DeviceKeyboard:
		if KeyCode(raw) >= MouseOffset {
			return 0, false
		}
		return KeyCode(raw), true
	case DeviceMouse:
		if KeyCode(raw) >= GamepadOffset-MouseOffset {
			return 0, false
		}
		return KeyCode(raw) + MouseOffset, true
	case DeviceGamepad:
		return dec.GamepadMaskToKeycode(raw)
	default:
		return 0, false
	}
}
