package decision

import (
	"github.com/cory-johannsen/attackinput/internal/game/session"
	"github.com/cory-johannsen/attackinput/internal/input"
)

// Handler is the single entry point an engine adapter calls with each input batch.
type Handler interface {
	HandleBatch(batch input.Batch)
}

// SessionHandler binds an Engine to the Session owned by the hosting integration.
// OnDecision, when set, observes every decision.
type SessionHandler struct {
	Engine     *Engine
	Session    *session.Session
	OnDecision func(Decision)
}

// HandleBatch implements Handler.
//
// Precondition: Engine and Session must be non-nil; calls must not overlap.
func (h *SessionHandler) HandleBatch(batch input.Batch) {
	for _, d := range h.Engine.Process(h.Session, batch) {
		if h.OnDecision != nil {
			h.OnDecision(d)
		}
	}
}
