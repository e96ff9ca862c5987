package redis_test

import (
	"context"
	"os"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/selec-labs/selecbot/pkg/domain/model"
	"github.com/selec-labs/selecbot/pkg/domain/types"
	"github.com/selec-labs/selecbot/pkg/repository/redis"
)

func newTestRepo(t *testing.T) *redis.Redis {
	t.Helper()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR is not set")
	}

	repo, err := redis.New(context.Background(), addr, os.Getenv("TEST_REDIS_PASSWORD"), 0)
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		gt.NoError(t, repo.Close())
	})
	return repo
}

func TestSessionRepository(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id := types.VisitorID("redis-test-" + types.NewSubmissionID().String())

	s, err := repo.Session().GetOrCreate(ctx, id)
	gt.NoError(t, err).Required()
	gt.V(t, s.State).Equal(types.StateIdle)

	s.State = types.StateQuoteEntry
	s.Data[types.FieldCompany] = "Acme SpA"
	gt.NoError(t, repo.Session().Update(ctx, s))

	stored, err := repo.Session().Get(ctx, id)
	gt.NoError(t, err).Required()
	gt.V(t, stored.State).Equal(types.StateQuoteEntry)
	gt.S(t, stored.Data[types.FieldCompany]).Equal("Acme SpA")
}

func TestSubmissionRepository(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	sub := model.NewSubmission(model.QuoteFlow(), "redis-test", map[types.FieldKey]string{
		types.FieldCompany: "Acme SpA",
	})

	created, err := repo.Submission().Create(ctx, sub)
	gt.NoError(t, err).Required()

	fetched, err := repo.Submission().Get(ctx, created.ID)
	gt.NoError(t, err).Required()
	gt.S(t, fetched.Field(types.FieldCompany)).Equal("Acme SpA")

	all, err := repo.Submission().List(ctx)
	gt.NoError(t, err).Required()
	gt.B(t, len(all) >= 1).True()
}
