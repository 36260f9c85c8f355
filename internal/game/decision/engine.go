package decision

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/attackinput/internal/game/character"
	"github.com/cory-johannsen/attackinput/internal/game/combat"
	"github.com/cory-johannsen/attackinput/internal/game/session"
	"github.com/cory-johannsen/attackinput/internal/input"
	"github.com/cory-johannsen/attackinput/internal/input/binding"
	"github.com/cory-johannsen/attackinput/internal/input/combo"
	"github.com/cory-johannsen/attackinput/internal/input/hold"
)

// Engine decides, for every button sub-event, whether to drop, suppress, buffer, or
// translate it into a combat action. All per-player state lives in the Session passed
// to Process; the Engine itself only holds configuration and collaborators.
type Engine struct {
	resolver *binding.Resolver
	gate     *combat.Gate
	ui       UIState
	actor    character.Actor
	settings Settings
	logger   *zap.Logger
}

// NewEngine creates an Engine.
//
// Precondition: all arguments must be non-nil; resolver should have been refreshed.
// Postcondition: Returns an Engine ready for Process.
func NewEngine(resolver *binding.Resolver, gate *combat.Gate, ui UIState, actor character.Actor, settings Settings, logger *zap.Logger) *Engine {
	return &Engine{
		resolver: resolver,
		gate:     gate,
		ui:       ui,
		actor:    actor,
		settings: settings,
		logger:   logger,
	}
}

// Refresh re-reads native attack keys from the control map.
func (e *Engine) Refresh() {
	e.resolver.Refresh()
}

// Process handles every sub-event of batch in order. Each sub-event yields exactly one
// Decision, and processing continues regardless of the outcome of earlier sub-events.
//
// Precondition: sess must be non-nil and must not be processed concurrently.
// Postcondition: len(result) == len(batch); at most one action fired per sub-event.
func (e *Engine) Process(sess *session.Session, batch input.Batch) []Decision {
	decisions := make([]Decision, 0, len(batch))
	for _, ev := range batch {
		d := e.processEvent(sess, ev)
		e.log(sess, d)
		decisions = append(decisions, d)
	}
	return decisions
}

func (e *Engine) processEvent(sess *session.Session, ev input.ButtonEvent) Decision {
	d := Decision{Event: ev, Outcome: OutcomeDropped}

	if !ev.Device.Supported() {
		d.Reason = "unsupported device"
		return d
	}
	if e.ui.Blocking() || !e.ui.MovementEnabled() {
		d.Reason = "blocked by ui"
		return d
	}
	code, ok := input.Normalize(ev.Device, ev.Raw, e.resolver.Decoder())
	if !ok {
		d.Reason = "invalid key code"
		return d
	}
	d.Code = code

	layout := e.resolver.Layout()
	pressed := ev.Transition.Pressed()

	d.Role = e.resolver.Classify(ev.Device, code)
	switch d.Role {
	case binding.RoleRightAttack:
		sess.RightPressed = pressed
	case binding.RoleLeftAttack:
		sess.LeftPressed = pressed
	default:
		if s, ok := d.Role.ComboSet(); ok {
			sess.Combo.Update(s, pressed)
		}
	}

	powerKey := layout.IsPowerKey(code)
	if ev.Transition.Edge() {
		if powerKey {
			sess.Timers.Reset(hold.IntentPower)
		}
		switch d.Role {
		case binding.RoleRightAttack:
			sess.Timers.Reset(hold.IntentRight)
			sess.Timers.Reset(hold.IntentBoth)
			sess.BothDriver = binding.RoleNone
		case binding.RoleLeftAttack:
			sess.Timers.Reset(hold.IntentLeft)
			sess.Timers.Reset(hold.IntentBoth)
			sess.BothDriver = binding.RoleNone
		}
	}

	snap, ok := e.actor.Snapshot()
	if !ok {
		d.Reason = "actor unavailable"
		return d
	}
	if !e.gate.CanAttack(snap) {
		d.Outcome = OutcomeSuppressed
		d.Reason = "cannot attack"
		return d
	}

	if powerKey && e.powerEligible(ev.Transition, snap) {
		e.power(sess, ev, snap, &d)
		return d
	}

	if ev.Transition == input.TransitionHeld && e.settings.holdLight() && snap.Attacking && !snap.Blocking {
		if done := e.light(sess, ev, snap, &d); done {
			return d
		}
	}

	d.Outcome = OutcomeIgnored
	if d.Reason == "" {
		d.Reason = "no applicable action"
	}
	return d
}

func (e *Engine) powerEligible(t input.Transition, snap character.Snapshot) bool {
	switch t {
	case input.TransitionDown:
		return true
	case input.TransitionHeld:
		return e.settings.holdPower() && snap.Attacking
	default:
		return false
	}
}

// power runs the power-attack path. A sub-event that reaches it never falls through
// to the light-attack path.
func (e *Engine) power(sess *session.Session, ev input.ButtonEvent, snap character.Snapshot, d *Decision) {
	d.Outcome = OutcomeIgnored

	set, role := e.resolver.Layout().Route(d.Code, sess.Combo.Active())
	if role == binding.RoleNone {
		d.Reason = "power key not routed"
		return
	}
	d.Set = set

	hands, reason := powerHands(role, snap)
	if reason != "" {
		d.Reason = reason
		return
	}

	if ev.Transition == input.TransitionHeld {
		if !sess.Timers.Sample(hold.IntentPower, hold.Seconds(ev.HeldSecs), e.settings.Delay) {
			d.Outcome = OutcomeBuffered
			d.Reason = "power hold window open"
			return
		}
	}

	if !e.firePower(hands, snap) {
		d.Reason = "power attack gated"
		return
	}
	d.Outcome = OutcomeFired
	d.Action = combat.PowerKind(hands)
}

func powerHands(role binding.Role, snap character.Snapshot) (combat.Hands, string) {
	switch role {
	case binding.RoleRightAttack:
		if !snap.Right.Equipped() {
			return combat.HandsRight, "right hand not equipped"
		}
		return combat.HandsRight, ""
	case binding.RoleLeftAttack:
		if !snap.Left.Equipped() {
			return combat.HandsLeft, "left hand not equipped"
		}
		return combat.HandsLeft, ""
	default:
		if !snap.Right.Equipped() || !snap.Left.Equipped() {
			return combat.HandsBoth, "both hands not equipped"
		}
		return combat.HandsBoth, ""
	}
}

func (e *Engine) firePower(h combat.Hands, snap character.Snapshot) bool {
	ref := e.actor.Ref()
	switch h {
	case combat.HandsLeft:
		return e.gate.PerformLeftHandPowerAttack(ref, snap)
	case combat.HandsBoth:
		return e.gate.PerformBothHandsPowerAttack(ref, snap)
	default:
		return e.gate.PerformRightHandPowerAttack(ref, snap)
	}
}

// light runs the consecutive light-attack path and reports whether the sub-event is
// finished.
func (e *Engine) light(sess *session.Session, ev input.ButtonEvent, snap character.Snapshot, d *Decision) bool {
	if d.Role != binding.RoleRightAttack && d.Role != binding.RoleLeftAttack {
		return false
	}

	dual := e.settings.DualConsecutive && sess.RightPressed && sess.LeftPressed &&
		snap.Right.Equipped() && snap.Left.Equipped()
	if dual {
		// The first latched key to sample the shared window after an edge owns it.
		if sess.BothDriver == binding.RoleNone {
			sess.BothDriver = d.Role
		}
		if d.Role != sess.BothDriver {
			d.Outcome = OutcomeBuffered
			d.Reason = "dual hold window driven by " + sess.BothDriver.String()
			return true
		}
		return e.fireLight(sess, ev, hold.IntentBoth, combat.HandsBoth, snap, d)
	}

	if d.Role == binding.RoleRightAttack {
		if !snap.Right.Equipped() {
			d.Reason = "right hand not equipped"
			return false
		}
		return e.fireLight(sess, ev, hold.IntentRight, combat.HandsRight, snap, d)
	}
	if !snap.Left.Equipped() {
		d.Reason = "left hand not equipped"
		return false
	}
	return e.fireLight(sess, ev, hold.IntentLeft, combat.HandsLeft, snap, d)
}

func (e *Engine) fireLight(sess *session.Session, ev input.ButtonEvent, intent hold.Intent, h combat.Hands, snap character.Snapshot, d *Decision) bool {
	if !sess.Timers.Sample(intent, hold.Seconds(ev.HeldSecs), e.settings.Delay) {
		d.Outcome = OutcomeBuffered
		d.Reason = intent.String() + " hold window open"
		return true
	}
	if !e.gate.PerformLightAttack(h, e.actor.Ref(), snap) {
		d.Reason = "light attack unavailable"
		return false
	}
	d.Outcome = OutcomeFired
	d.Action = combat.LightKind(h)
	d.Reason = ""
	return true
}

func (e *Engine) log(sess *session.Session, d Decision) {
	if d.Outcome == OutcomeDropped && d.Reason == "blocked by ui" {
		return
	}
	fields := []zap.Field{
		zap.Stringer("session", sess.ID),
		zap.Stringer("device", d.Event.Device),
		zap.Uint32("raw", d.Event.Raw),
		zap.Uint32("code", uint32(d.Code)),
		zap.Stringer("transition", d.Event.Transition),
		zap.Float64("held_secs", d.Event.HeldSecs),
		zap.Stringer("outcome", d.Outcome),
	}
	if d.Role != binding.RoleNone {
		fields = append(fields, zap.Stringer("role", d.Role))
	}
	if d.Set != combo.SetNone {
		fields = append(fields, zap.Stringer("set", d.Set))
	}
	if d.Action != combat.KindNone {
		fields = append(fields, zap.Stringer("action", d.Action))
	}
	if d.Reason != "" {
		fields = append(fields, zap.String("reason", d.Reason))
	}
	e.logger.Debug("input decision", fields...)
}
