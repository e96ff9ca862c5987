package async

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/selec-labs/selecbot/pkg/utils/logging"
)

// Dispatch executes a handler function asynchronously in a new goroutine.
// The handler gets a fresh background context so that it survives the
// request that spawned it, but keeps the request's logger. Errors and
// panics are logged and never propagate back to the caller: a failing
// CRM call must not disturb the conversation that triggered it.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	bgCtx := logging.With(context.Background(), logging.From(ctx))

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logging.From(bgCtx).Error("panic in async handler", "panic", r)
			}
		}()

		if err := handler(bgCtx); err != nil {
			logging.From(bgCtx).Error("async handler failed", "error", goerr.Unwrap(err))
		}
	}()
}
