// Package redis provides a redis-backed repository for deployments that
// run more than one webhook instance behind a load balancer, where the
// per-process memory store would split a visitor's session.
package redis

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/selec-labs/selecbot/pkg/domain/interfaces"
)

// DefaultSessionTTL bounds how long an abandoned session lingers
const DefaultSessionTTL = 24 * time.Hour

type Redis struct {
	client      *goredis.Client
	sessions    *sessionRepository
	submissions *submissionRepository
}

var _ interfaces.Repository = &Redis{}

// Option is a functional option for repository configuration
type Option func(*Redis)

// WithSessionTTL overrides the session expiry
func WithSessionTTL(ttl time.Duration) Option {
	return func(r *Redis) {
		r.sessions.ttl = ttl
	}
}

// New connects to redis and verifies the connection
func New(ctx context.Context, addr, password string, db int, opts ...Option) (*Redis, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to connect to redis", goerr.V("addr", addr))
	}

	r := &Redis{
		client:      client,
		sessions:    &sessionRepository{client: client, ttl: DefaultSessionTTL},
		submissions: &submissionRepository{client: client},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

func (r *Redis) Session() interfaces.SessionRepository {
	return r.sessions
}

func (r *Redis) Submission() interfaces.SubmissionRepository {
	return r.submissions
}

func (r *Redis) Close() error {
	if err := r.client.Close(); err != nil {
		return goerr.Wrap(err, "failed to close redis client")
	}
	return nil
}
