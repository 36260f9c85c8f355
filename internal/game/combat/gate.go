package combat

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/attackinput/internal/game/character"
)

// Rules holds the gate's configurable resource and compatibility settings.
type Rules struct {
	// RequireStamina enables stamina gating of power attacks.
	RequireStamina bool
	// OneHandedCost is the stamina cost of a one-handed power attack.
	OneHandedCost float64
	// TwoHandedCost is the stamina cost of a right-hand two-handed power attack.
	TwoHandedCost float64
	// AltMovesetCompat disables lead-in light attacks for alternate combat movesets.
	AltMovesetCompat bool
}

// Gate validates character state and stamina before invoking attack actions.
type Gate struct {
	rules   Rules
	actions Actions
	exec    Executor
	hud     HUD
	logger  *zap.Logger
}

// NewGate creates a Gate.
//
// Precondition: exec, hud, and logger must be non-nil.
// Postcondition: Returns a Gate ready for use.
func NewGate(rules Rules, actions Actions, exec Executor, hud HUD, logger *zap.Logger) *Gate {
	return &Gate{
		rules:   rules,
		actions: actions,
		exec:    exec,
		hud:     hud,
		logger:  logger,
	}
}

// CanAttack reports whether the character may attack at all.
//
// Postcondition: Returns false if the character is in a kill move, has its weapon
// sheathed, is sitting or sleeping, is not in the normal knock state, or is flying.
func (g *Gate) CanAttack(s character.Snapshot) bool {
	return !s.InKillMove &&
		s.WeaponDrawn &&
		s.SitSleep == character.SitSleepNormal &&
		s.Knock == character.KnockNormal &&
		!s.Flying
}

// StaminaCost returns the stamina required for a power attack with the given hands.
func (g *Gate) StaminaCost(right, left bool, s character.Snapshot) float64 {
	switch {
	case right && left:
		return 2 * g.rules.OneHandedCost
	case right && s.Right.TwoHanded():
		return g.rules.TwoHandedCost
	default:
		return g.rules.OneHandedCost
	}
}

// HasStamina reports whether the character has enough stamina for a power attack.
// On failure the stamina meter is flashed once.
//
// Postcondition: Returns true when gating is disabled or Stamina >= cost.
func (g *Gate) HasStamina(right, left bool, s character.Snapshot) bool {
	if !g.rules.RequireStamina {
		return true
	}
	cost := g.StaminaCost(right, left, s)
	if s.Stamina >= cost {
		return true
	}
	g.logger.Debug("insufficient stamina",
		zap.Float64("stamina", s.Stamina),
		zap.Float64("cost", cost),
	)
	g.hud.FlashMeter(MeterStamina)
	return false
}

// PerformRightHandPowerAttack triggers a right-hand power attack.
//
// Postcondition: Returns true iff the power attack action was invoked.
func (g *Gate) PerformRightHandPowerAttack(actor character.Ref, s character.Snapshot) bool {
	return g.performPower(HandsRight, actor, s)
}

// PerformLeftHandPowerAttack triggers a left-hand power attack.
//
// Postcondition: Returns true iff the power attack action was invoked.
func (g *Gate) PerformLeftHandPowerAttack(actor character.Ref, s character.Snapshot) bool {
	return g.performPower(HandsLeft, actor, s)
}

// PerformBothHandsPowerAttack triggers a dual power attack.
//
// Postcondition: Returns true iff the power attack action was invoked.
func (g *Gate) PerformBothHandsPowerAttack(actor character.Ref, s character.Snapshot) bool {
	return g.performPower(HandsBoth, actor, s)
}

// PerformLightAttack triggers a light attack with the given hands. Light attacks are
// not stamina gated.
//
// Postcondition: Returns true iff the light attack action was invoked.
func (g *Gate) PerformLightAttack(h Hands, actor character.Ref, s character.Snapshot) bool {
	return g.perform(LightKind(h), actor)
}

func (g *Gate) performPower(h Hands, actor character.Ref, s character.Snapshot) bool {
	kind := PowerKind(h)
	if actor == nil || !g.actions.ID(kind).Available() {
		return false
	}
	if !g.HasStamina(h != HandsLeft, h != HandsRight, s) {
		return false
	}
	if g.needsLeadIn(h, s) {
		g.perform(LightKind(h), actor)
	}
	return g.perform(kind, actor)
}

// needsLeadIn reports whether an unarmed or airborne power attack must be preceded by a
// light attack of the same hands for the animation graph to accept it.
func (g *Gate) needsLeadIn(h Hands, s character.Snapshot) bool {
	if g.rules.AltMovesetCompat {
		return false
	}
	if s.InJump {
		return true
	}
	switch h {
	case HandsLeft:
		return s.Left.Unarmed()
	case HandsBoth:
		return s.Right.Unarmed() && s.Left.Unarmed()
	default:
		return s.Right.Unarmed()
	}
}

func (g *Gate) perform(kind Kind, actor character.Ref) bool {
	id := g.actions.ID(kind)
	if actor == nil || !id.Available() {
		return false
	}
	g.logger.Debug("performing action",
		zap.Stringer("kind", kind),
		zap.Bool("power", kind.Power()),
		zap.String("action", string(id)),
	)
	g.exec.Perform(id, actor)
	return true
}
