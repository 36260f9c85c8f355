// Package input defines the device-level vocabulary shared by the combat input layer:
// device kinds, button transitions, unified key codes, and button event batches.
package input

import "fmt"

// Device identifies the physical device a button event originated from.
type Device int

const (
	DeviceUnsupported Device = iota
	DeviceKeyboard
	DeviceMouse
	DeviceGamepad
)

// String returns a human-readable device label.
func (d Device) String() string {
	switch d {
	case DeviceKeyboard:
		return "keyboard"
	case DeviceMouse:
		return "mouse"
	case DeviceGamepad:
		return "gamepad"
	default:
		return "unsupported"
	}
}

// Supported reports whether the device participates in combat input.
func (d Device) Supported() bool {
	return d == DeviceKeyboard || d == DeviceMouse || d == DeviceGamepad
}

// ParseDevice maps a device label to a Device.
//
// Postcondition: Returns DeviceUnsupported and a non-nil error for unknown labels.
func ParseDevice(s string) (Device, error) {
	switch s {
	case "keyboard":
		return DeviceKeyboard, nil
	case "mouse":
		return DeviceMouse, nil
	case "gamepad":
		return DeviceGamepad, nil
	default:
		return DeviceUnsupported, fmt.Errorf("unknown device %q", s)
	}
}

// Transition is the phase of a button's press cycle reported by an event.
type Transition int

const (
	TransitionDown Transition = iota
	TransitionHeld
	TransitionUp
)

// String returns a human-readable transition label.
func (t Transition) String() string {
	switch t {
	case TransitionDown:
		return "down"
	case TransitionHeld:
		return "held"
	case TransitionUp:
		return "up"
	default:
		return "unknown"
	}
}

// Pressed reports whether the button is physically down after this transition.
func (t Transition) Pressed() bool {
	return t == TransitionDown || t == TransitionHeld
}

// Edge reports whether the transition is a down or up edge.
func (t Transition) Edge() bool {
	return t == TransitionDown || t == TransitionUp
}

// ParseTransition maps a transition label to a Transition.
//
// Postcondition: Returns a non-nil error for unknown labels.
func ParseTransition(s string) (Transition, error) {
	switch s {
	case "down":
		return TransitionDown, nil
	case "held":
		return TransitionHeld, nil
	case "up":
		return TransitionUp, nil
	default:
		return TransitionDown, fmt.Errorf("unknown transition %q", s)
	}
}

// ButtonEvent is one button sub-event of an input batch.
type ButtonEvent struct {
	Device     Device
	Raw        uint32
	Transition Transition
	// HeldSecs is the held duration in seconds since the first held sample of this key.
	HeldSecs float64
}

// Batch is the ordered sequence of button sub-events delivered in one engine callback.
type Batch []ButtonEvent
