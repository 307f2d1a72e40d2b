package app

import (
	"context"

	"github.com/shashiranjanraj/plantnet/internal/server"
)

// Serve builds the handler and runs it on addr until ctx is cancelled.
// The limiter's idle-bucket sweep runs for the same lifetime.
func (a *Application) Serve(ctx context.Context, addr string, onShutdown ...func()) error {
	if a.limiter != nil {
		go a.limiter.Run(ctx.Done())
	}
	return server.Start(ctx, addr, a.Handler(), onShutdown...)
}
