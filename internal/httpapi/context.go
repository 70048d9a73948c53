package httpapi

import (
	"context"
)

// shutdownCtx is canceled when the process starts draining. Generation
// handlers derive from it so in-flight model calls stop on shutdown.
var shutdownCtx = context.Background()

// SetBaseContext installs the shutdown context. nil restores Background.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	shutdownCtx = ctx
}

// joinContexts derives from req and also cancels when base is done.
// cancel detaches from base; no goroutine outlives it.
func joinContexts(base, req context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(req)
	stop := context.AfterFunc(base, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}
