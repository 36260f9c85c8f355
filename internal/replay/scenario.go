// Package replay runs recorded input scenarios through the decision engine.
//
// A scenario is a YAML document listing steps. Each step carries the UI state, an
// optional character snapshot, and one batch of button events, and may name the
// actions it expects to fire.
package replay

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/attackinput/internal/game/character"
	"github.com/cory-johannsen/attackinput/internal/input"
)

// EventSpec is the textual form of one button event.
type EventSpec struct {
	Device     string  `yaml:"device"` // "keyboard", "mouse", "gamepad", or "unsupported"
	Raw        uint32  `yaml:"raw"`
	Transition string  `yaml:"transition"` // "down", "held", "up"
	HeldSecs   float64 `yaml:"held_secs"`
}

// Event converts the spec to a ButtonEvent.
//
// Postcondition: Returns a non-nil error for unknown device or transition labels.
func (e EventSpec) Event() (input.ButtonEvent, error) {
	dev := input.DeviceUnsupported
	if e.Device != "unsupported" {
		var err error
		if dev, err = input.ParseDevice(e.Device); err != nil {
			return input.ButtonEvent{}, err
		}
	}
	tr, err := input.ParseTransition(e.Transition)
	if err != nil {
		return input.ButtonEvent{}, err
	}
	if e.HeldSecs < 0 {
		return input.ButtonEvent{}, fmt.Errorf("held_secs must be >= 0, got %g", e.HeldSecs)
	}
	return input.ButtonEvent{Device: dev, Raw: e.Raw, Transition: tr, HeldSecs: e.HeldSecs}, nil
}

// UISpec is the interface state during a step.
type UISpec struct {
	MenuOpen         bool `yaml:"menu_open"`
	MovementDisabled bool `yaml:"movement_disabled"`
}

// Step is one input batch together with the state it is processed under.
type Step struct {
	Name string `yaml:"name"`
	// NewSession restarts the player's input session before the batch.
	NewSession bool   `yaml:"new_session"`
	UI         UISpec `yaml:"ui"`
	// Character replaces the character snapshot from this step on. Ignored when the
	// character is scripted.
	Character *character.SnapshotSpec `yaml:"character"`
	// Unavailable marks the character as not loaded for this step.
	Unavailable bool        `yaml:"unavailable"`
	Events      []EventSpec `yaml:"events"`
	// Expect lists the action identifiers the step must fire, in order. Nil skips the check.
	Expect []string `yaml:"expect"`
}

// Batch converts the step's events.
func (s Step) Batch() (input.Batch, error) {
	batch := make(input.Batch, 0, len(s.Events))
	for i, e := range s.Events {
		ev, err := e.Event()
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		batch = append(batch, ev)
	}
	return batch, nil
}

// Scenario is a full replay script.
//
// Invariant: after Validate, every step's events and snapshots parse.
type Scenario struct {
	Name string `yaml:"name"`
	// Player identifies the session owner; defaults to "player".
	Player    string                 `yaml:"player"`
	Character character.SnapshotSpec `yaml:"character"`
	Steps     []Step                 `yaml:"steps"`
}

// PlayerID returns the session owner.
func (s *Scenario) PlayerID() string {
	if s.Player == "" {
		return "player"
	}
	return s.Player
}

// Validate checks that the scenario has steps and that every event and snapshot parses.
//
// Postcondition: Returns nil or an error naming every invalid step.
func (s *Scenario) Validate() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("replay.Scenario %q: must have at least one step", s.Name)
	}
	var errs []error
	if _, err := s.Character.Build(); err != nil {
		errs = append(errs, fmt.Errorf("character: %w", err))
	}
	for i, step := range s.Steps {
		if _, err := step.Batch(); err != nil {
			errs = append(errs, fmt.Errorf("step %d (%s): %w", i, step.Name, err))
		}
		if step.Character != nil {
			if _, err := step.Character.Build(); err != nil {
				errs = append(errs, fmt.Errorf("step %d (%s): character: %w", i, step.Name, err))
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("replay.Scenario %q: %w", s.Name, errors.Join(errs...))
	}
	return nil
}

// ParseScenario parses and validates a YAML scenario.
//
// Postcondition: Returns a valid Scenario or a non-nil error.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadScenario reads and parses the scenario file at path.
//
// Precondition: path must be a readable YAML file.
// Postcondition: Returns a valid Scenario or a non-nil error.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	return ParseScenario(data)
}
