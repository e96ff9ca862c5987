package model

import (
	"time"

	"github.com/selec-labs/selecbot/pkg/domain/types"
)

// Session tracks one visitor's progress through the conversation. It is
// created lazily on first contact and never explicitly destroyed; flow
// completion or an unrecoverable condition resets it back to the main menu.
type Session struct {
	ID        types.VisitorID           `json:"id"`
	State     types.ConversationState   `json:"state"`
	Data      map[types.FieldKey]string `json:"data"`
	CreatedAt time.Time                 `json:"created_at"`
	UpdatedAt time.Time                 `json:"updated_at"`
}

// NewSession creates a fresh idle session for the visitor
func NewSession(id types.VisitorID) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        id,
		State:     types.StateIdle,
		Data:      make(map[types.FieldKey]string),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy of the session
func (s *Session) Clone() *Session {
	copied := &Session{
		ID:        s.ID,
		State:     s.State,
		Data:      make(map[types.FieldKey]string, len(s.Data)),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	for k, v := range s.Data {
		copied.Data[k] = v
	}
	return copied
}

// BeginFlow clears accumulated data and moves the session into the given
// data-entry state.
func (s *Session) BeginFlow(state types.ConversationState) {
	s.State = state
	s.Data = make(map[types.FieldKey]string)
}

// ResetToMenu clears accumulated data and returns the session to the main
// menu. Called on flow completion and on unrecoverable conditions.
func (s *Session) ResetToMenu() {
	s.State = types.StateMainMenu
	s.Data = make(map[types.FieldKey]string)
}
