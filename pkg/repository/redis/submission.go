package redis

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/selec-labs/selecbot/pkg/domain/model"
	"github.com/selec-labs/selecbot/pkg/domain/types"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = goerr.New("record not found")

const submissionIndexKey = "submissions"

type submissionRepository struct {
	client *goredis.Client
}

func submissionKey(id types.SubmissionID) string {
	return "submission:" + id.String()
}

func (r *submissionRepository) Create(ctx context.Context, submission *model.Submission) (*model.Submission, error) {
	if submission == nil {
		return nil, goerr.New("submission is required")
	}

	created := submission.Clone()
	if created.ID == "" {
		created.ID = types.NewSubmissionID()
	}

	data, err := json.Marshal(created)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal submission", goerr.V("id", created.ID))
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, submissionKey(created.ID), data, 0)
	pipe.LPush(ctx, submissionIndexKey, created.ID.String())
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, goerr.Wrap(err, "failed to store submission", goerr.V("id", created.ID))
	}

	return created, nil
}

func (r *submissionRepository) Get(ctx context.Context, id types.SubmissionID) (*model.Submission, error) {
	data, err := r.client.Get(ctx, submissionKey(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, goerr.Wrap(ErrNotFound, "submission not found", goerr.V("id", id))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get submission", goerr.V("id", id))
	}

	var s model.Submission
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal submission", goerr.V("id", id))
	}
	return &s, nil
}

func (r *submissionRepository) List(ctx context.Context) ([]*model.Submission, error) {
	ids, err := r.client.LRange(ctx, submissionIndexKey, 0, -1).Result()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list submissions")
	}

	result := make([]*model.Submission, 0, len(ids))
	for _, id := range ids {
		s, err := r.Get(ctx, types.SubmissionID(id))
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}

	return result, nil
}
