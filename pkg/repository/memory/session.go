package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/selec-labs/selecbot/pkg/domain/model"
	"github.com/selec-labs/selecbot/pkg/domain/types"
)

type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[types.VisitorID]*model.Session
}

func newSessionRepository() *sessionRepository {
	return &sessionRepository{
		sessions: make(map[types.VisitorID]*model.Session),
	}
}

func (r *sessionRepository) GetOrCreate(ctx context.Context, id types.VisitorID) (*model.Session, error) {
	r.mu.RLock()
	if s, exists := r.sessions[id]; exists {
		defer r.mu.RUnlock()
		return s.Clone(), nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under the write lock: another event for the same new
	// visitor may have created the session between the locks.
	if s, exists := r.sessions[id]; exists {
		return s.Clone(), nil
	}

	s := model.NewSession(id)
	r.sessions[id] = s.Clone()
	return s, nil
}

func (r *sessionRepository) Get(ctx context.Context, id types.VisitorID) (*model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, exists := r.sessions[id]
	if !exists {
		return nil, nil
	}
	return s.Clone(), nil
}

func (r *sessionRepository) Update(ctx context.Context, session *model.Session) error {
	if session == nil || session.ID == "" {
		return goerr.New("session ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	updated := session.Clone()
	updated.UpdatedAt = time.Now().UTC()
	r.sessions[session.ID] = updated
	return nil
}
