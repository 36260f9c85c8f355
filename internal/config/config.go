// Package config provides Viper-based configuration loading for the combat input layer.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/cory-johannsen/attackinput/internal/game/combat"
	"github.com/cory-johannsen/attackinput/internal/game/decision"
	"github.com/cory-johannsen/attackinput/internal/input"
	"github.com/cory-johannsen/attackinput/internal/input/binding"
	"github.com/cory-johannsen/attackinput/internal/input/hold"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// KeySetConfig holds the key codes of one combo set. Values <= 0 or beyond the unified
// key space leave the key unbound.
type KeySetConfig struct {
	ComboKey     int `mapstructure:"combo_key"`
	RightHandKey int `mapstructure:"right_hand_key"`
	LeftHandKey  int `mapstructure:"left_hand_key"`
	BothHandsKey int `mapstructure:"both_hands_key"`
}

// Keys converts the configured codes to a binding.SetKeys.
func (k KeySetConfig) Keys() binding.SetKeys {
	return binding.SetKeys{
		Modifier: input.KeyFromSetting(k.ComboKey),
		Right:    input.KeyFromSetting(k.RightHandKey),
		Left:     input.KeyFromSetting(k.LeftHandKey),
		Both:     input.KeyFromSetting(k.BothHandsKey),
	}
}

// KeySetsConfig holds the three combo sets.
type KeySetsConfig struct {
	Primary KeySetConfig `mapstructure:"primary"`
	Alt1    KeySetConfig `mapstructure:"alt1"`
	Alt2    KeySetConfig `mapstructure:"alt2"`
}

// CombatConfig holds power attack, stamina, and hold-repeat settings.
type CombatConfig struct {
	// Sets is the power-attack key layout.
	Sets KeySetsConfig `mapstructure:"sets"`
	// RequireStamina gates power attacks on the character's current stamina.
	RequireStamina bool `mapstructure:"require_stamina"`
	// StaminaCost1H is the stamina cost of a one-handed power attack.
	StaminaCost1H float64 `mapstructure:"stamina_cost_1h"`
	// StaminaCost2H is the stamina cost of a right-hand two-handed power attack.
	StaminaCost2H float64 `mapstructure:"stamina_cost_2h"`
	// HoldConsecutiveLight repeats light attacks while an attack key is held.
	HoldConsecutiveLight bool `mapstructure:"hold_consecutive_light"`
	// HoldConsecutivePower repeats power attacks while a power-attack key is held.
	HoldConsecutivePower bool `mapstructure:"hold_consecutive_power"`
	// ConsecutiveAttacksDelay is the hold window in seconds.
	ConsecutiveAttacksDelay float64 `mapstructure:"consecutive_attacks_delay"`
	// DualConsecutive repeats dual light attacks while both attack keys are held.
	DualConsecutive bool `mapstructure:"dual_consecutive"`
	// AltMovesetCompat disables lead-in light attacks.
	AltMovesetCompat bool `mapstructure:"alt_moveset_compat"`
}

// Layout returns the configured power-attack key layout.
func (c CombatConfig) Layout() binding.Layout {
	return binding.Layout{
		Primary: c.Sets.Primary.Keys(),
		Alt1:    c.Sets.Alt1.Keys(),
		Alt2:    c.Sets.Alt2.Keys(),
	}
}

// Rules returns the action gate rules.
func (c CombatConfig) Rules() combat.Rules {
	return combat.Rules{
		RequireStamina:   c.RequireStamina,
		OneHandedCost:    c.StaminaCost1H,
		TwoHandedCost:    c.StaminaCost2H,
		AltMovesetCompat: c.AltMovesetCompat,
	}
}

// Settings returns the decision engine's hold-repeat settings.
func (c CombatConfig) Settings() decision.Settings {
	return decision.Settings{
		HoldConsecutiveLight: c.HoldConsecutiveLight,
		HoldConsecutivePower: c.HoldConsecutivePower,
		DualConsecutive:      c.DualConsecutive,
		Delay:                hold.Seconds(c.ConsecutiveAttacksDelay),
	}
}

// ActionsConfig holds the engine action identifiers. An empty identifier marks the
// action unavailable.
type ActionsConfig struct {
	RightPower string `mapstructure:"right_power"`
	LeftPower  string `mapstructure:"left_power"`
	BothPower  string `mapstructure:"both_power"`
	RightLight string `mapstructure:"right_light"`
	LeftLight  string `mapstructure:"left_light"`
	BothLight  string `mapstructure:"both_light"`
}

// Actions converts the identifiers to a combat.Actions table.
func (a ActionsConfig) Actions() combat.Actions {
	return combat.Actions{
		RightPower: combat.ActionID(a.RightPower),
		LeftPower:  combat.ActionID(a.LeftPower),
		BothPower:  combat.ActionID(a.BothPower),
		RightLight: combat.ActionID(a.RightLight),
		LeftLight:  combat.ActionID(a.LeftLight),
		BothLight:  combat.ActionID(a.BothLight),
	}
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Combat  CombatConfig  `mapstructure:"combat"`
	Actions ActionsConfig `mapstructure:"actions"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateCombat(c.Combat); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateCombat(c CombatConfig) error {
	var errs []string
	if c.StaminaCost1H < 0 {
		errs = append(errs, fmt.Sprintf("combat.stamina_cost_1h must be >= 0, got %g", c.StaminaCost1H))
	}
	if c.StaminaCost2H < 0 {
		errs = append(errs, fmt.Sprintf("combat.stamina_cost_2h must be >= 0, got %g", c.StaminaCost2H))
	}
	if c.ConsecutiveAttacksDelay < 0 {
		errs = append(errs, fmt.Sprintf("combat.consecutive_attacks_delay must be >= 0, got %g", c.ConsecutiveAttacksDelay))
	}
	if err := c.Layout().Validate(); err != nil {
		errs = append(errs, "combat.sets: "+err.Error())
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with ATTACK_ prefix
	v.SetEnvPrefix("ATTACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NewViper returns a Viper instance carrying only the defaults.
func NewViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	for _, set := range []string{"primary", "alt1", "alt2"} {
		for _, k := range []string{"combo_key", "right_hand_key", "left_hand_key", "both_hands_key"} {
			v.SetDefault("combat.sets."+set+"."+k, 0)
		}
	}
	v.SetDefault("combat.require_stamina", true)
	v.SetDefault("combat.stamina_cost_1h", 20.0)
	v.SetDefault("combat.stamina_cost_2h", 35.0)
	v.SetDefault("combat.hold_consecutive_light", false)
	v.SetDefault("combat.hold_consecutive_power", false)
	v.SetDefault("combat.consecutive_attacks_delay", 0.3)
	v.SetDefault("combat.dual_consecutive", false)
	v.SetDefault("combat.alt_moveset_compat", false)

	v.SetDefault("actions.right_power", "ActionRightPowerAttack")
	v.SetDefault("actions.left_power", "ActionLeftPowerAttack")
	v.SetDefault("actions.both_power", "ActionDualPowerAttack")
	v.SetDefault("actions.right_light", "ActionRightAttack")
	v.SetDefault("actions.left_light", "ActionLeftAttack")
	v.SetDefault("actions.both_light", "ActionDualAttack")
}
