package scripting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
	"pgregory.net/rapid"
)

func TestNewSandboxedState_Globals(t *testing.T) {
	L := NewSandboxedState(0)
	defer L.Close()

	for _, name := range []string{"os", "io", "debug", "dofile", "loadfile", "load", "collectgarbage", "require"} {
		assert.Equal(t, lua.LNil, L.GetGlobal(name), "%s should be removed", name)
	}
	for _, name := range []string{"math", "string", "table", "pairs"} {
		assert.NotEqual(t, lua.LNil, L.GetGlobal(name), "%s should be available", name)
	}
}

func TestArm_NonPositiveLimitUsesDefault(t *testing.T) {
	L := NewSandboxedState(0)
	defer L.Close()

	for _, limit := range []int{0, -5} {
		b := arm(L, limit)
		assert.Equal(t, int64(DefaultInstructionLimit), b.left.Load())
		b.stop()
	}
}

func TestArm_SpendsOnePerOpcode(t *testing.T) {
	L := NewSandboxedState(0)
	defer L.Close()

	b := arm(L, 1000)
	defer b.stop()
	require.NoError(t, L.DoString(`local t = 0 for i = 1, 10 do t = t + i end`))
	left := b.left.Load()
	assert.Less(t, left, int64(1000))
	assert.Greater(t, left, int64(0))
	assert.False(t, b.exhausted())
}

func TestArm_RearmRecoversFromExhaustedBudget(t *testing.T) {
	L := NewSandboxedState(50)
	defer L.Close()

	first := arm(L, 50)
	require.Error(t, L.DoString(`while true do end`))
	assert.True(t, first.exhausted())

	second := arm(L, 50)
	defer second.stop()
	require.NoError(t, L.DoString(`answer = 6 * 7`))
	assert.False(t, second.exhausted())
	assert.Equal(t, lua.LNumber(42), L.GetGlobal("answer"))
}

func TestProperty_RunawayScriptExhaustsAnyBudget(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		limit := rapid.IntRange(1, 200).Draw(rt, "limit")
		L := NewSandboxedState(limit)
		defer L.Close()

		b := arm(L, limit)
		if err := L.DoString(`while true do end`); err == nil {
			rt.Fatalf("runaway script finished with limit=%d", limit)
		}
		if !b.exhausted() {
			rt.Fatalf("budget not exhausted with limit=%d", limit)
		}
	})
}
