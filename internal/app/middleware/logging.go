package middleware

import (
	"context"
	"log/slog"
	"time"

	"trio/internal/app/commands"
	"trio/internal/app/queries"
)

func Logging(log *slog.Logger) CommandMiddleware {
	return func(next commands.Bus) commands.Bus {
		nextFn := wrapCommand(next)
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			start := time.Now()
			res, err := nextFn(ctx, cmd)
			logResult(ctx, log, "command", cmd.Key(), start, err)
			return res, err
		})
	}
}

func QueryLogging(log *slog.Logger) QueryMiddleware {
	return func(next queries.Bus) queries.Bus {
		nextFn := wrapQuery(next)
		return queryFunc(func(ctx context.Context, q queries.Query) (any, error) {
			start := time.Now()
			res, err := nextFn(ctx, q)
			logResult(ctx, log, "query", q.Key(), start, err)
			return res, err
		})
	}
}

func logResult(ctx context.Context, log *slog.Logger, kind, key string, start time.Time, err error) {
	if log == nil {
		return
	}
	if err != nil {
		log.WarnContext(ctx, kind+" failed", "key", key, "duration", time.Since(start), "error", err)
		return
	}
	log.DebugContext(ctx, kind+" handled", "key", key, "duration", time.Since(start))
}
