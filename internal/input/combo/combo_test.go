package combo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/attackinput/internal/input/combo"
)

func allEnabled(combo.Set) bool { return true }

func TestTracker_SingleModifierActive(t *testing.T) {
	for _, s := range combo.Sets {
		tr := combo.NewTracker(allEnabled)
		tr.Update(s, true)
		assert.Equal(t, s, tr.Active())
		tr.Update(s, false)
		assert.Equal(t, combo.SetNone, tr.Active())
	}
}

func TestTracker_TwoModifiersDisableRouting(t *testing.T) {
	tr := combo.NewTracker(allEnabled)
	tr.Update(combo.SetPrimary, true)
	tr.Update(combo.SetAlt2, true)
	assert.Equal(t, combo.SetNone, tr.Active())

	tr.Update(combo.SetPrimary, false)
	assert.Equal(t, combo.SetAlt2, tr.Active())
}

func TestTracker_DisabledSetIgnored(t *testing.T) {
	tr := combo.NewTracker(func(s combo.Set) bool { return s != combo.SetAlt1 })
	tr.Update(combo.SetAlt1, true)
	assert.False(t, tr.Pressed(combo.SetAlt1))
	assert.False(t, tr.Enabled(combo.SetAlt1))
	assert.Equal(t, combo.SetNone, tr.Active())

	tr.Update(combo.SetNone, true)
	assert.Equal(t, combo.SetNone, tr.Active())
}

func TestTracker_Reset(t *testing.T) {
	tr := combo.NewTracker(allEnabled)
	tr.Update(combo.SetAlt1, true)
	tr.Reset()
	assert.Equal(t, combo.SetNone, tr.Active())
	assert.True(t, tr.Enabled(combo.SetAlt1))
}

func TestSet_String(t *testing.T) {
	assert.Equal(t, "primary", combo.SetPrimary.String())
	assert.Equal(t, "alt1", combo.SetAlt1.String())
	assert.Equal(t, "alt2", combo.SetAlt2.String())
	assert.Equal(t, "none", combo.SetNone.String())
}

func TestTracker_ActiveIffExactlyOneHeld(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		tr := combo.NewTracker(allEnabled)
		steps := rapid.IntRange(0, 30).Draw(rt, "steps")
		held := map[combo.Set]bool{}
		for i := 0; i < steps; i++ {
			s := rapid.SampledFrom(combo.Sets[:]).Draw(rt, "set")
			p := rapid.Bool().Draw(rt, "pressed")
			tr.Update(s, p)
			held[s] = p
		}
		var count int
		var only combo.Set
		for _, s := range combo.Sets {
			if held[s] {
				count++
				only = s
			}
		}
		if count == 1 {
			assert.Equal(rt, only, tr.Active())
		} else {
			assert.Equal(rt, combo.SetNone, tr.Active())
		}
	})
}
