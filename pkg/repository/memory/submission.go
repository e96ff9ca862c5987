package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/selec-labs/selecbot/pkg/domain/model"
	"github.com/selec-labs/selecbot/pkg/domain/types"
)

type submissionRepository struct {
	mu      sync.RWMutex
	entries map[types.SubmissionID]*model.Submission
}

func newSubmissionRepository() *submissionRepository {
	return &submissionRepository{
		entries: make(map[types.SubmissionID]*model.Submission),
	}
}

func (r *submissionRepository) Create(ctx context.Context, submission *model.Submission) (*model.Submission, error) {
	if submission == nil {
		return nil, goerr.New("submission is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	created := submission.Clone()
	if created.ID == "" {
		created.ID = types.NewSubmissionID()
	}

	r.entries[created.ID] = created
	return created.Clone(), nil
}

func (r *submissionRepository) Get(ctx context.Context, id types.SubmissionID) (*model.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, exists := r.entries[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "submission not found", goerr.V("id", id))
	}
	return s.Clone(), nil
}

func (r *submissionRepository) List(ctx context.Context) ([]*model.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Submission, 0, len(r.entries))
	for _, s := range r.entries {
		result = append(result, s.Clone())
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}
