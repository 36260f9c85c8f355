package scripting

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/attackinput/internal/game/character"
)

// SnapshotHook is the Lua global a scripted actor defines. It receives the current step
// number and returns a table with the fields of character.SnapshotSpec.
const SnapshotHook = "snapshot"

// ScriptedActor is a character.Actor whose state is produced by a Lua script.
type ScriptedActor struct {
	mgr    *Manager
	key    string
	step   int
	logger *zap.Logger
}

// NewScriptedActor returns an actor backed by the VM loaded under key.
//
// Precondition: mgr and logger must be non-nil; key should have been loaded.
func NewScriptedActor(mgr *Manager, key string, logger *zap.Logger) *ScriptedActor {
	return &ScriptedActor{mgr: mgr, key: key, logger: logger}
}

// SetStep sets the step number passed to the snapshot hook.
func (a *ScriptedActor) SetStep(step int) { a.step = step }

// Ref implements character.Actor. The script key identifies the character.
func (a *ScriptedActor) Ref() character.Ref {
	if !a.mgr.Loaded(a.key) {
		return nil
	}
	return a.key
}

// Snapshot implements character.Actor.
//
// Postcondition: Returns false when the script is missing, the hook is undefined or
// fails, or the returned table does not describe a valid snapshot.
func (a *ScriptedActor) Snapshot() (character.Snapshot, bool) {
	ret, err := a.mgr.CallHook(a.key, SnapshotHook, lua.LNumber(a.step))
	if err != nil || ret == lua.LNil {
		return character.Snapshot{}, false
	}
	tbl, ok := ret.(*lua.LTable)
	if !ok {
		a.logger.Warn("scripting: snapshot hook returned non-table",
			zap.String("key", a.key),
			zap.String("type", ret.Type().String()),
		)
		return character.Snapshot{}, false
	}
	spec, err := SpecFromTable(tbl)
	if err == nil {
		var snap character.Snapshot
		snap, err = spec.Build()
		if err == nil {
			return snap, true
		}
	}
	a.logger.Warn("scripting: invalid snapshot",
		zap.String("key", a.key),
		zap.Int("step", a.step),
		zap.Error(err),
	)
	return character.Snapshot{}, false
}

// SpecFromTable reads a character.SnapshotSpec from a Lua table. Absent fields keep
// their zero values; weapon_drawn stays unset when absent.
//
// Postcondition: Returns an error naming the first field with the wrong Lua type.
func SpecFromTable(t *lua.LTable) (character.SnapshotSpec, error) {
	var (
		spec character.SnapshotSpec
		err  error
	)
	str := func(name string, dst *string) {
		if err != nil {
			return
		}
		switch v := t.RawGetString(name).(type) {
		case *lua.LNilType:
		case lua.LString:
			*dst = string(v)
		default:
			err = fmt.Errorf("field %q: expected string, got %s", name, v.Type())
		}
	}
	num := func(name string, dst *float64) {
		if err != nil {
			return
		}
		switch v := t.RawGetString(name).(type) {
		case *lua.LNilType:
		case lua.LNumber:
			*dst = float64(v)
		default:
			err = fmt.Errorf("field %q: expected number, got %s", name, v.Type())
		}
	}
	flag := func(name string, dst *bool) {
		if err != nil {
			return
		}
		switch v := t.RawGetString(name).(type) {
		case *lua.LNilType:
		case lua.LBool:
			*dst = bool(v)
		default:
			err = fmt.Errorf("field %q: expected boolean, got %s", name, v.Type())
		}
	}

	str("right", &spec.Right)
	str("left", &spec.Left)
	num("stamina", &spec.Stamina)
	flag("blocking", &spec.Blocking)
	flag("attacking", &spec.Attacking)
	flag("in_jump", &spec.InJump)
	flag("in_kill_move", &spec.InKillMove)
	flag("sitting", &spec.Sitting)
	flag("sleeping", &spec.Sleeping)
	flag("knocked_down", &spec.KnockedDown)
	flag("flying", &spec.Flying)
	if t.RawGetString("weapon_drawn") != lua.LNil {
		var drawn bool
		flag("weapon_drawn", &drawn)
		spec.WeaponDrawn = &drawn
	}
	if err != nil {
		return character.SnapshotSpec{}, err
	}
	return spec, nil
}
