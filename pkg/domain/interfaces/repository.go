package interfaces

import (
	"context"

	"github.com/selec-labs/selecbot/pkg/domain/model"
	"github.com/selec-labs/selecbot/pkg/domain/types"
)

// SessionRepository defines the interface for conversation session access.
// GetOrCreate must be safe for concurrent first-contact events: two racing
// events for the same new visitor must observe the same session.
type SessionRepository interface {
	// GetOrCreate retrieves the session for the visitor, creating an idle
	// one on first contact.
	GetOrCreate(ctx context.Context, id types.VisitorID) (*model.Session, error)

	// Get retrieves an existing session, or nil when none exists
	Get(ctx context.Context, id types.VisitorID) (*model.Session, error)

	// Update persists the session state and accumulated data
	Update(ctx context.Context, session *model.Session) error
}

// SubmissionRepository defines the interface for the completed-flow archive
type SubmissionRepository interface {
	// Create stores a completed flow submission
	Create(ctx context.Context, submission *model.Submission) (*model.Submission, error)

	// Get retrieves a submission by ID
	Get(ctx context.Context, id types.SubmissionID) (*model.Submission, error)

	// List retrieves all submissions, newest first
	List(ctx context.Context) ([]*model.Submission, error)
}

// Repository bundles all data access interfaces
type Repository interface {
	Session() SessionRepository
	Submission() SubmissionRepository

	// Close releases any underlying connections
	Close() error
}
