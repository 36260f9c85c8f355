package scripting_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/attackinput/internal/game/character"
	"github.com/cory-johannsen/attackinput/internal/scripting"
)

const staminaScript = `
function snapshot(step)
	return {
		right = "one_handed",
		left = "hand_to_hand",
		stamina = 100 - step * 30,
		attacking = step > 0,
	}
end
`

func loadActor(t *testing.T, src string) (*scripting.ScriptedActor, *scripting.Manager) {
	t.Helper()
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "actor.lua", src)
	require.NoError(t, mgr.LoadFile("player", filepath.Join(dir, "actor.lua"), 0))
	return scripting.NewScriptedActor(mgr, "player", zap.NewNop()), mgr
}

func TestScriptedActor_SnapshotFollowsStep(t *testing.T) {
	actor, _ := loadActor(t, staminaScript)
	var _ character.Actor = actor

	snap, ok := actor.Snapshot()
	require.True(t, ok)
	assert.Equal(t, character.WeaponOneHanded, snap.Right)
	assert.Equal(t, character.WeaponHandToHand, snap.Left)
	assert.Equal(t, 100.0, snap.Stamina)
	assert.False(t, snap.Attacking)
	assert.True(t, snap.WeaponDrawn)

	actor.SetStep(2)
	snap, ok = actor.Snapshot()
	require.True(t, ok)
	assert.Equal(t, 40.0, snap.Stamina)
	assert.True(t, snap.Attacking)
}

func TestScriptedActor_Ref(t *testing.T) {
	actor, mgr := loadActor(t, staminaScript)
	assert.Equal(t, "player", actor.Ref())
	mgr.Close()
	assert.Nil(t, actor.Ref())
	_, ok := actor.Snapshot()
	assert.False(t, ok)
}

func TestScriptedActor_StateFlags(t *testing.T) {
	actor, _ := loadActor(t, `
function snapshot(step)
	return { weapon_drawn = false, sitting = true, knocked_down = true, flying = true, in_jump = true }
end
`)
	snap, ok := actor.Snapshot()
	require.True(t, ok)
	assert.False(t, snap.WeaponDrawn)
	assert.Equal(t, character.SitSleepSitting, snap.SitSleep)
	assert.Equal(t, character.KnockDown, snap.Knock)
	assert.True(t, snap.Flying)
	assert.True(t, snap.InJump)
}

func TestScriptedActor_UnavailableCases(t *testing.T) {
	cases := map[string]string{
		"no hook":        `x = 1`,
		"nil return":     `function snapshot(step) return nil end`,
		"non table":      `function snapshot(step) return 5 end`,
		"runtime error":  `function snapshot(step) error("boom") end`,
		"unknown weapon": `function snapshot(step) return { right = "trebuchet" } end`,
		"wrong type":     `function snapshot(step) return { stamina = "lots" } end`,
		"sit and sleep":  `function snapshot(step) return { sitting = true, sleeping = true } end`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			actor, _ := loadActor(t, src)
			_, ok := actor.Snapshot()
			assert.False(t, ok)
		})
	}
}

func TestScriptedActor_RunawayStepDoesNotStarveLaterSteps(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "actor.lua", `
		function snapshot(step)
			if step == 1 then while true do end end
			return { stamina = step }
		end
	`)
	require.NoError(t, mgr.LoadFile("player", filepath.Join(dir, "actor.lua"), 1000))
	actor := scripting.NewScriptedActor(mgr, "player", zap.NewNop())

	actor.SetStep(1)
	_, ok := actor.Snapshot()
	assert.False(t, ok)

	actor.SetStep(2)
	snap, ok := actor.Snapshot()
	require.True(t, ok)
	assert.Equal(t, 2.0, snap.Stamina)
}

func TestSpecFromTable(t *testing.T) {
	L := scripting.NewSandboxedState(0)
	defer L.Close()
	require.NoError(t, L.DoString(`spec = { right = "bow", stamina = 12.5, blocking = true }`))
	tbl, ok := L.GetGlobal("spec").(*lua.LTable)
	require.True(t, ok)

	spec, err := scripting.SpecFromTable(tbl)
	require.NoError(t, err)
	assert.Equal(t, "bow", spec.Right)
	assert.Equal(t, 12.5, spec.Stamina)
	assert.True(t, spec.Blocking)
	assert.Nil(t, spec.WeaponDrawn)
}

func TestSpecFromTable_WrongTypeNamesField(t *testing.T) {
	L := scripting.NewSandboxedState(0)
	defer L.Close()
	require.NoError(t, L.DoString(`spec = { attacking = 1 }`))
	_, err := scripting.SpecFromTable(L.GetGlobal("spec").(*lua.LTable))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "attacking")
}
