package middleware

import (
	"context"

	"trio/internal/app/commands"
	"trio/internal/app/queries"
)

// SelfValidating messages check their own shape before reaching a handler.
type SelfValidating interface {
	Validate() error
}

func Validation() CommandMiddleware {
	return func(next commands.Bus) commands.Bus {
		nextFn := wrapCommand(next)
		return commandFunc(func(ctx context.Context, cmd commands.Command) (any, error) {
			if v, ok := cmd.(SelfValidating); ok {
				if err := v.Validate(); err != nil {
					return nil, err
				}
			}
			return nextFn(ctx, cmd)
		})
	}
}

func QueryValidation() QueryMiddleware {
	return func(next queries.Bus) queries.Bus {
		nextFn := wrapQuery(next)
		return queryFunc(func(ctx context.Context, q queries.Query) (any, error) {
			if v, ok := q.(SelfValidating); ok {
				if err := v.Validate(); err != nil {
					return nil, err
				}
			}
			return nextFn(ctx, q)
		})
	}
}
