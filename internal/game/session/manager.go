package session

import (
	"fmt"
	"sync"

	"github.com/cory-johannsen/attackinput/internal/input/combo"
)

// Manager tracks the active input session of each local player.
// All methods are safe for concurrent use; the returned Sessions are not.
type Manager struct {
	mu              sync.RWMutex
	modifierEnabled func(combo.Set) bool
	sessions        map[string]*Session // player id → session
}

// NewManager creates an empty session Manager.
//
// Precondition: modifierEnabled must be non-nil.
func NewManager(modifierEnabled func(combo.Set) bool) *Manager {
	return &Manager{
		modifierEnabled: modifierEnabled,
		sessions:        make(map[string]*Session),
	}
}

// Start begins a session for playerID. An existing session for the player is reset
// rather than replaced.
//
// Precondition: playerID must be non-empty.
// Postcondition: Returns the player's session in its initial state.
func (m *Manager) Start(playerID string) (*Session, error) {
	if playerID == "" {
		return nil, fmt.Errorf("player id must not be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if sess, ok := m.sessions[playerID]; ok {
		sess.Reset()
		return sess, nil
	}
	sess := New(m.modifierEnabled)
	m.sessions[playerID] = sess
	return sess, nil
}

// End removes the session of playerID.
//
// Postcondition: Returns an error if the player has no session.
func (m *Manager) End(playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[playerID]; !ok {
		return fmt.Errorf("player %q has no session", playerID)
	}
	delete(m.sessions, playerID)
	return nil
}

// Get returns the session of playerID.
//
// Postcondition: Returns (session, true) if found, or (nil, false) otherwise.
func (m *Manager) Get(playerID string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[playerID]
	return sess, ok
}

// Count returns the number of active sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
