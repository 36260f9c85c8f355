// Package testutil provides in-memory collaborators for exercising the combat input
// layer without a game engine.
package testutil

import (
	"github.com/cory-johannsen/attackinput/internal/game/character"
	"github.com/cory-johannsen/attackinput/internal/game/combat"
	"github.com/cory-johannsen/attackinput/internal/input"
)

// Invocation records one call to RecordingExecutor.Perform.
type Invocation struct {
	Action combat.ActionID
	Actor  character.Ref
}

// RecordingExecutor records every performed action in order.
type RecordingExecutor struct {
	Calls []Invocation
}

// Perform implements combat.Executor.
func (e *RecordingExecutor) Perform(id combat.ActionID, actor character.Ref) {
	e.Calls = append(e.Calls, Invocation{Action: id, Actor: actor})
}

// Actions returns the performed action identifiers in order.
func (e *RecordingExecutor) Actions() []combat.ActionID {
	out := make([]combat.ActionID, 0, len(e.Calls))
	for _, c := range e.Calls {
		out = append(out, c.Action)
	}
	return out
}

// Count returns how many times id was performed.
func (e *RecordingExecutor) Count(id combat.ActionID) int {
	n := 0
	for _, c := range e.Calls {
		if c.Action == id {
			n++
		}
	}
	return n
}

// Reset forgets all recorded calls.
func (e *RecordingExecutor) Reset() { e.Calls = nil }

// RecordingHUD records every flashed meter in order.
type RecordingHUD struct {
	Flashes []combat.Meter
}

// FlashMeter implements combat.HUD.
func (h *RecordingHUD) FlashMeter(m combat.Meter) {
	h.Flashes = append(h.Flashes, m)
}

// StaticActor is a character.Actor whose snapshot is set directly by the test.
type StaticActor struct {
	ID      string
	State   character.Snapshot
	Missing bool
}

// NewStaticActor returns an actor able to attack: weapon drawn, one-handed weapons in
// both hands, and the given stamina.
func NewStaticActor(stamina float64) *StaticActor {
	return &StaticActor{
		ID: "player",
		State: character.Snapshot{
			Right:       character.WeaponOneHanded,
			Left:        character.WeaponOneHanded,
			Stamina:     stamina,
			WeaponDrawn: true,
		},
	}
}

// Ref implements character.Actor.
func (a *StaticActor) Ref() character.Ref {
	if a.Missing {
		return nil
	}
	return a.ID
}

// Snapshot implements character.Actor.
func (a *StaticActor) Snapshot() (character.Snapshot, bool) {
	return a.State, !a.Missing
}

// StaticUI reports fixed UI state.
type StaticUI struct {
	MenuOpen         bool
	MovementDisabled bool
}

// Blocking reports whether a blocking menu is open.
func (u *StaticUI) Blocking() bool { return u.MenuOpen }

// MovementEnabled reports whether movement controls are enabled.
func (u *StaticUI) MovementEnabled() bool { return !u.MovementDisabled }

// DeviceKey is a per-device mapping entry for MapControlMap.
type DeviceKey struct {
	Event  string
	Device input.Device
}

// MapControlMap is an in-memory control map keyed by user event and device.
// Gamepad entries hold XInput masks, mouse entries raw button indices.
type MapControlMap struct {
	input.XInputDecoder

	Keys map[DeviceKey]uint32
}

// NewMapControlMap returns an empty MapControlMap.
func NewMapControlMap() *MapControlMap {
	return &MapControlMap{Keys: make(map[DeviceKey]uint32)}
}

// Bind sets the raw code of event on device.
func (m *MapControlMap) Bind(event string, device input.Device, raw uint32) *MapControlMap {
	m.Keys[DeviceKey{Event: event, Device: device}] = raw
	return m
}

// MappedKey returns the raw code bound to event on device.
func (m *MapControlMap) MappedKey(event string, device input.Device) (uint32, bool) {
	raw, ok := m.Keys[DeviceKey{Event: event, Device: device}]
	return raw, ok
}

// TestActions is a fully populated action table.
var TestActions = combat.Actions{
	RightPower: "pa_right",
	LeftPower:  "pa_left",
	BothPower:  "pa_both",
	RightLight: "la_right",
	LeftLight:  "la_left",
	BothLight:  "la_both",
}
