package config

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/selec-labs/selecbot/pkg/domain/interfaces"
	"github.com/selec-labs/selecbot/pkg/repository/memory"
	"github.com/selec-labs/selecbot/pkg/repository/redis"
	"github.com/selec-labs/selecbot/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Repository holds CLI flags for repository backend configuration
type Repository struct {
	backend       string
	redisAddr     string
	redisPassword string
	redisDB       int
	sessionTTL    time.Duration
}

// Flags returns CLI flags for repository configuration
func (r *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository-backend",
			Usage:       "Repository backend type (memory or redis)",
			Value:       "memory",
			Sources:     cli.EnvVars("SELECBOT_REPOSITORY_BACKEND"),
			Destination: &r.backend,
		},
		&cli.StringFlag{
			Name:        "redis-addr",
			Usage:       "Redis address (required when using redis backend)",
			Sources:     cli.EnvVars("SELECBOT_REDIS_ADDR"),
			Destination: &r.redisAddr,
		},
		&cli.StringFlag{
			Name:        "redis-password",
			Usage:       "Redis password",
			Sources:     cli.EnvVars("SELECBOT_REDIS_PASSWORD"),
			Destination: &r.redisPassword,
		},
		&cli.IntFlag{
			Name:        "redis-db",
			Usage:       "Redis database number",
			Sources:     cli.EnvVars("SELECBOT_REDIS_DB"),
			Destination: &r.redisDB,
		},
		&cli.DurationFlag{
			Name:        "session-ttl",
			Usage:       "Session expiry for the redis backend",
			Value:       redis.DefaultSessionTTL,
			Sources:     cli.EnvVars("SELECBOT_SESSION_TTL"),
			Destination: &r.sessionTTL,
		},
	}
}

// Configure initializes and returns a repository based on the configured
// backend. The caller is responsible for calling Close() on the returned
// repository.
func (r *Repository) Configure(ctx context.Context) (interfaces.Repository, error) {
	switch r.backend {
	case "redis":
		if r.redisAddr == "" {
			return nil, goerr.New("redis-addr is required when using redis backend")
		}
		repo, err := redis.New(ctx, r.redisAddr, r.redisPassword, r.redisDB,
			redis.WithSessionTTL(r.sessionTTL))
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize redis repository")
		}
		logging.Default().Info("Using redis repository",
			"addr", r.redisAddr,
			"db", r.redisDB,
			"session_ttl", r.sessionTTL,
		)
		return repo, nil

	case "memory":
		logging.Default().Info("Using in-memory repository (single instance only)")
		return memory.New(), nil

	default:
		return nil, goerr.New("invalid repository backend", goerr.V("backend", r.backend))
	}
}
