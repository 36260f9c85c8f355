package replay

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/attackinput/internal/config"
	"github.com/cory-johannsen/attackinput/internal/game/character"
	"github.com/cory-johannsen/attackinput/internal/game/combat"
	"github.com/cory-johannsen/attackinput/internal/game/decision"
	"github.com/cory-johannsen/attackinput/internal/game/session"
	"github.com/cory-johannsen/attackinput/internal/input/binding"
)

// StepActor is a character whose state may depend on the current step, such as a
// scripted character.
type StepActor interface {
	character.Actor
	SetStep(step int)
}

// Recorder is the replay's combat.Executor and combat.HUD. It logs and records every
// performed action and meter flash.
type Recorder struct {
	Fired   []combat.ActionID
	Flashes []combat.Meter
	logger  *zap.Logger
}

// NewRecorder creates a Recorder.
//
// Precondition: logger must be non-nil.
func NewRecorder(logger *zap.Logger) *Recorder {
	return &Recorder{logger: logger}
}

// Perform implements combat.Executor.
func (r *Recorder) Perform(id combat.ActionID, actor character.Ref) {
	r.logger.Info("action performed",
		zap.String("action", string(id)),
		zap.Any("actor", actor),
	)
	r.Fired = append(r.Fired, id)
}

// FlashMeter implements combat.HUD.
func (r *Recorder) FlashMeter(m combat.Meter) {
	r.logger.Info("meter flashed", zap.Stringer("meter", m))
	r.Flashes = append(r.Flashes, m)
}

// stepUI reports the UI state of the current step.
type stepUI struct {
	spec UISpec
}

func (u *stepUI) Blocking() bool { return u.spec.MenuOpen }
func (u *stepUI) MovementEnabled() bool { return !u.spec.MovementDisabled }

// specActor serves the scenario's declared snapshots.
type specActor struct {
	id          string
	snap        character.Snapshot
	unavailable bool
}

func (a *specActor) Ref() character.Ref {
	if a.unavailable {
		return nil
	}
	return a.id
}

func (a *specActor) Snapshot() (character.Snapshot, bool) {
	return a.snap, !a.unavailable
}

func (a *specActor) SetStep(int) {}

// StepReport is the outcome of one step.
type StepReport struct {
	Name      string
	Session   uuid.UUID
	Decisions []decision.Decision
	Fired     []combat.ActionID
	Flashes   []combat.Meter
	// Mismatch describes a failed expectation; empty when the step met it or had none.
	Mismatch string
}

// Report is the outcome of a whole scenario.
type Report struct {
	Scenario string
	Steps    []StepReport
	Fired    []combat.ActionID
	Flashes  []combat.Meter
}

// Failed reports whether any step missed its expectation.
func (r *Report) Failed() bool {
	for _, s := range r.Steps {
		if s.Mismatch != "" {
			return true
		}
	}
	return false
}

// Runner replays scenarios against a fresh engine built from configuration.
type Runner struct {
	cfg      config.Config
	controls binding.ControlMap
	actor    StepActor
	logger   *zap.Logger
}

// NewRunner creates a Runner. When actor is nil the scenario's declared snapshots are
// used; otherwise actor supplies the character state and SetStep is called before
// each step.
//
// Precondition: controls and logger must be non-nil; cfg must be validated.
func NewRunner(cfg config.Config, controls binding.ControlMap, actor StepActor, logger *zap.Logger) *Runner {
	return &Runner{
		cfg:      cfg,
		controls: controls,
		actor:    actor,
		logger:   logger,
	}
}

// Run processes every step of sc in order with one engine and one session manager.
//
// Precondition: sc must be validated.
// Postcondition: Returns a Report covering every step, or an error if a step cannot
// be converted.
func (r *Runner) Run(sc *Scenario) (*Report, error) {
	layout := r.cfg.Combat.Layout()
	sessions := session.NewManager(layout.ModifierEnabled)
	sess, err := sessions.Start(sc.PlayerID())
	if err != nil {
		return nil, fmt.Errorf("starting session: %w", err)
	}

	rec := NewRecorder(r.logger)
	ui := &stepUI{}

	var declared *specActor
	actor := r.actor
	if actor == nil {
		snap, err := sc.Character.Build()
		if err != nil {
			return nil, fmt.Errorf("character: %w", err)
		}
		declared = &specActor{id: sc.PlayerID(), snap: snap}
		actor = declared
	}

	resolver := binding.NewResolver(r.controls, layout)
	gate := combat.NewGate(r.cfg.Combat.Rules(), r.cfg.Actions.Actions(), rec, rec, r.logger)
	engine := decision.NewEngine(resolver, gate, ui, actor, r.cfg.Combat.Settings(), r.logger)
	engine.Refresh()

	report := &Report{Scenario: sc.Name}
	var current *StepReport
	handler := &decision.SessionHandler{
		Engine:  engine,
		Session: sess,
		OnDecision: func(d decision.Decision) {
			current.Decisions = append(current.Decisions, d)
		},
	}

	for i, step := range sc.Steps {
		batch, err := step.Batch()
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i, step.Name, err)
		}
		if step.NewSession {
			if handler.Session, err = sessions.Start(sc.PlayerID()); err != nil {
				return nil, fmt.Errorf("step %d (%s): restarting session: %w", i, step.Name, err)
			}
		}
		ui.spec = step.UI
		actor.SetStep(i)
		if declared != nil {
			if step.Character != nil {
				if declared.snap, err = step.Character.Build(); err != nil {
					return nil, fmt.Errorf("step %d (%s): character: %w", i, step.Name, err)
				}
			}
			declared.unavailable = step.Unavailable
		}

		firedMark, flashMark := len(rec.Fired), len(rec.Flashes)
		report.Steps = append(report.Steps, StepReport{Name: step.Name, Session: handler.Session.ID})
		current = &report.Steps[len(report.Steps)-1]
		handler.HandleBatch(batch)
		current.Fired = slices.Clone(rec.Fired[firedMark:])
		current.Flashes = slices.Clone(rec.Flashes[flashMark:])
		current.Mismatch = checkExpect(step.Expect, current.Fired)

		r.logger.Info("step complete",
			zap.Int("step", i),
			zap.String("name", step.Name),
			zap.Int("events", len(batch)),
			zap.Int("fired", len(current.Fired)),
			zap.Int("flashes", len(current.Flashes)),
		)
		if current.Mismatch != "" {
			r.logger.Warn("step expectation not met",
				zap.Int("step", i),
				zap.String("name", step.Name),
				zap.String("mismatch", current.Mismatch),
			)
		}
	}

	report.Fired = rec.Fired
	report.Flashes = rec.Flashes
	return report, nil
}

func checkExpect(expect []string, fired []combat.ActionID) string {
	if expect == nil {
		return ""
	}
	got := make([]string, 0, len(fired))
	for _, id := range fired {
		got = append(got, string(id))
	}
	if slices.Equal(expect, got) {
		return ""
	}
	return fmt.Sprintf("expected %v, fired %v", expect, got)
}
