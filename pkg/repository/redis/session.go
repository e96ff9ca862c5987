package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/selec-labs/selecbot/pkg/domain/model"
	"github.com/selec-labs/selecbot/pkg/domain/types"
)

type sessionRepository struct {
	client *goredis.Client
	ttl    time.Duration
}

func sessionKey(id types.VisitorID) string {
	return "session:" + id.String()
}

func (r *sessionRepository) GetOrCreate(ctx context.Context, id types.VisitorID) (*model.Session, error) {
	if s, err := r.Get(ctx, id); err != nil {
		return nil, err
	} else if s != nil {
		return s, nil
	}

	created := model.NewSession(id)
	data, err := json.Marshal(created)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal session", goerr.V("id", id))
	}

	// SetNX keeps the first writer's session when two first-contact
	// events race for the same visitor.
	ok, err := r.client.SetNX(ctx, sessionKey(id), data, r.ttl).Result()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create session", goerr.V("id", id))
	}
	if !ok {
		return r.Get(ctx, id)
	}

	return created, nil
}

func (r *sessionRepository) Get(ctx context.Context, id types.VisitorID) (*model.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get session", goerr.V("id", id))
	}

	var s model.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal session", goerr.V("id", id))
	}
	if s.Data == nil {
		s.Data = make(map[types.FieldKey]string)
	}
	s.State = s.State.Normalize()

	return &s, nil
}

func (r *sessionRepository) Update(ctx context.Context, session *model.Session) error {
	if session == nil || session.ID == "" {
		return goerr.New("session ID is required")
	}

	updated := session.Clone()
	updated.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(updated)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal session", goerr.V("id", session.ID))
	}

	if err := r.client.Set(ctx, sessionKey(session.ID), data, r.ttl).Err(); err != nil {
		return goerr.Wrap(err, "failed to update session", goerr.V("id", session.ID))
	}
	return nil
}
