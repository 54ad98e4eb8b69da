package middleware

import (
	"context"

	"trio/internal/app/commands"
	"trio/internal/app/outbox"
)

// discarder is implemented by outboxes that buffer records until Flush.
type discarder interface {
	Discard(ctx context.Context)
}

// scoper is implemented by outboxes that keep one buffer per command.
type scoper interface {
	Scope(ctx context.Context) context.Context
}

// OutboxFlush flushes recorded events once the wrapped command succeeds and discards
// them when it fails. Place it outside Transaction so events leave only after commit.
func OutboxFlush(box outbox.Outbox) CommandMiddleware {
	if box == nil {
		panic("middleware: outbox required")
	}
	return func(next commands.Bus) commands.Bus {
		nextFn := wrapCommand(next)
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			if s, ok := box.(scoper); ok {
				ctx = s.Scope(ctx)
			}
			res, err := nextFn(ctx, cmd)
			if err != nil {
				if d, ok := box.(discarder); ok {
					d.Discard(ctx)
				}
				return nil, err
			}
			if err := box.Flush(ctx); err != nil {
				return nil, err
			}
			return res, nil
		})
	}
}
