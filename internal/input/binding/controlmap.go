package binding

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/attackinput/internal/input"
)

// DeviceCodes holds the raw codes a user event is bound to on each device.
// Nil means unmapped on that device.
type DeviceCodes struct {
	Keyboard *uint32 `yaml:"keyboard" toml:"keyboard"`
	Mouse    *uint32 `yaml:"mouse" toml:"mouse"`
	Gamepad  *uint32 `yaml:"gamepad" toml:"gamepad"`
}

// FileControlMap is a ControlMap loaded from a YAML or TOML file. Gamepad masks are
// decoded with the XInput table.
type FileControlMap struct {
	input.XInputDecoder `yaml:"-" toml:"-"`

	Events map[string]DeviceCodes `yaml:"events" toml:"events"`
}

// MappedKey implements ControlMap.
func (m *FileControlMap) MappedKey(event string, device input.Device) (uint32, bool) {
	codes, ok := m.Events[event]
	if !ok {
		return 0, false
	}
	var raw *uint32
	switch device {
	case input.DeviceKeyboard:
		raw = codes.Keyboard
	case input.DeviceMouse:
		raw = codes.Mouse
	case input.DeviceGamepad:
		raw = codes.Gamepad
	}
	if raw == nil {
		return 0, false
	}
	return *raw, true
}

// ParseControlMap parses a YAML control map.
//
// Postcondition: Returns a FileControlMap with a non-nil Events map, or an error.
func ParseControlMap(data []byte) (*FileControlMap, error) {
	var m FileControlMap
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing control map: %w", err)
	}
	return m.validate()
}

// ParseControlMapTOML parses a TOML control map.
//
// Postcondition: Returns a FileControlMap with a non-nil Events map, or an error.
func ParseControlMapTOML(data []byte) (*FileControlMap, error) {
	var m FileControlMap
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing control map: %w", err)
	}
	return m.validate()
}

func (m *FileControlMap) validate() (*FileControlMap, error) {
	if m.Events == nil {
		m.Events = make(map[string]DeviceCodes)
	}
	for event, codes := range m.Events {
		if codes.Gamepad == nil {
			continue
		}
		if _, ok := input.GamepadMaskToKeycode(*codes.Gamepad); !ok {
			return nil, fmt.Errorf("control map event %q: unknown gamepad mask 0x%04X", event, *codes.Gamepad)
		}
	}
	return m, nil
}

// LoadControlMap reads and parses the control map at path. Files ending in .toml are
// parsed as TOML, everything else as YAML.
//
// Precondition: path must be a readable file.
// Postcondition: Returns a FileControlMap or a non-nil error.
func LoadControlMap(path string) (*FileControlMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadControlMap: cannot read file %q: %w", path, err)
	}
	parse := ParseControlMap
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		parse = ParseControlMapTOML
	}
	m, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("LoadControlMap: %q: %w", path, err)
	}
	return m, nil
}
