// Package scripting provides a sandboxed GopherLua execution environment for scripted
// characters. Scripts describe character state; they never trigger actions directly.
package scripting

import (
	"context"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// DefaultInstructionLimit is the maximum number of Lua opcodes allowed per load or
// hook call when no override is configured.
const DefaultInstructionLimit = 100_000

// opBudget bounds one load or hook call to a fixed number of Lua opcodes.
// GopherLua polls Done once per opcode while a context is set, so every poll spends
// one unit and the final unit cancels the VM.
type opBudget struct {
	context.Context
	stop context.CancelFunc
	left atomic.Int64
}

func (b *opBudget) Done() <-chan struct{} {
	if b.left.Add(-1) <= 0 {
		b.stop()
	}
	return b.Context.Done()
}

// exhausted reports whether the VM was stopped for running out of opcodes.
func (b *opBudget) exhausted() bool { return b.left.Load() <= 0 }

func normalizeLimit(instLimit int) int {
	if instLimit <= 0 {
		return DefaultInstructionLimit
	}
	return instLimit
}

// arm replaces L's context with a fresh opcode budget. The previous budget, spent
// or not, no longer applies.
func arm(L *lua.LState, instLimit int) *opBudget {
	base, stop := context.WithCancel(context.Background())
	b := &opBudget{Context: base, stop: stop}
	b.left.Store(int64(normalizeLimit(instLimit)))
	L.SetContext(b)
	return b
}

// NewSandboxedState creates a GopherLua LState with:
//   - Only safe stdlib loaded: base, table, string, math
//   - Dangerous globals removed: dofile, loadfile, load, collectgarbage, require
//   - Execution limited to at most instLimit Lua opcodes until the budget is re-armed
//
// Precondition: instLimit >= 0; 0 uses DefaultInstructionLimit.
// Postcondition: Returns a non-nil LState ready for RegisterModules and DoFile.
// The caller owns the LState and must call L.Close() when done.
func NewSandboxedState(instLimit int) *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "collectgarbage", "require"} {
		L.SetGlobal(name, lua.LNil)
	}

	arm(L, instLimit)
	return L
}
