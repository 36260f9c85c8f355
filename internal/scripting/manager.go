package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

type vm struct {
	mu    sync.Mutex
	L     *lua.LState
	limit int
}

// Manager owns one sandboxed LState per script key and exposes hook dispatch.
//
// Manager is safe for concurrent CallHook. Each LState is single-threaded; calls to
// the same key are serialized while different keys run concurrently.
type Manager struct {
	mu     sync.RWMutex
	states map[string]*vm
	logger *zap.Logger
}

// NewManager creates a Manager.
//
// Precondition: logger must be non-nil; NewManager panics otherwise.
// Postcondition: Returns a non-nil Manager with no loaded scripts.
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		panic("scripting: NewManager requires a non-nil logger")
	}
	return &Manager{
		states: make(map[string]*vm),
		logger: logger,
	}
}

// LoadFile creates a sandboxed VM for key, registers the engine module, and executes
// the Lua file at path. A previously loaded VM for key is replaced.
//
// Precondition: key must be non-empty; path must be a readable Lua file.
// Postcondition: VM is registered; returns error on Lua load failure.
func (m *Manager) LoadFile(key, path string, instLimit int) error {
	return m.loadInto(key, []string{path}, instLimit)
}

// LoadDir is like LoadFile but executes every *.lua file in scriptDir in
// lexicographic order.
//
// Precondition: key must be non-empty; scriptDir must be a readable directory.
// Postcondition: VM is registered; returns error on Lua load failure.
func (m *Manager) LoadDir(key, scriptDir string, instLimit int) error {
	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q for %q: %w", scriptDir, key, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)
	return m.loadInto(key, luaFiles, instLimit)
}

// Load loads path with LoadDir when it names a directory and LoadFile otherwise.
//
// Precondition: key must be non-empty.
// Postcondition: VM is registered; returns error if path cannot be read or fails to load.
func (m *Manager) Load(key, path string, instLimit int) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("scripting: stat %q for %q: %w", path, key, err)
	}
	if info.IsDir() {
		return m.LoadDir(key, path, instLimit)
	}
	return m.LoadFile(key, path, instLimit)
}

func (m *Manager) loadInto(key string, files []string, instLimit int) error {
	if key == "" {
		return fmt.Errorf("scripting: key must not be empty")
	}
	L := NewSandboxedState(instLimit)
	m.RegisterModules(L)

	for _, path := range files {
		if err := L.DoFile(path); err != nil {
			L.Close()
			return fmt.Errorf("scripting: loading %q for %q: %w", path, key, err)
		}
	}

	m.mu.Lock()
	if old, ok := m.states[key]; ok {
		old.mu.Lock()
		old.L.Close()
		old.mu.Unlock()
	}
	m.states[key] = &vm{L: L, limit: instLimit}
	m.mu.Unlock()
	return nil
}

// Loaded reports whether a VM exists for key.
func (m *Manager) Loaded(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.states[key]
	return ok
}

// CallHook calls the named Lua global function in key's VM with a fresh instruction
// budget. Returns (LNil, nil) if the hook is not defined or no VM exists. Lua runtime
// errors, including an exhausted budget, are logged at Warn level and never propagated.
//
// Precondition: args must be valid lua.LValue instances.
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(key, hook string, args ...lua.LValue) (lua.LValue, error) {
	m.mu.RLock()
	v, ok := m.states[key]
	m.mu.RUnlock()

	if !ok {
		m.logger.Info("scripting: no VM for key",
			zap.String("key", key),
			zap.String("hook", hook),
		)
		return lua.LNil, nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	L := v.L
	fn := L.GetGlobal(hook)
	if fn == lua.LNil {
		return lua.LNil, nil
	}

	budget := arm(L, v.limit)
	defer budget.stop()

	if err := L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, args...); err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("key", key),
			zap.String("hook", hook),
			zap.Bool("budget_exhausted", budget.exhausted()),
			zap.Error(err),
		)
		return lua.LNil, nil
	}

	ret := L.Get(-1)
	L.Pop(1)
	return ret, nil
}

// Close closes every VM.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, v := range m.states {
		v.mu.Lock()
		v.L.Close()
		v.mu.Unlock()
		delete(m.states, key)
	}
}
