package queries

import (
	"context"
	"errors"
)

// Query is a read-only request such as a booking quote, an extension quote or a
// calendar lookup. Key selects the handler and must be unique across the bus.
type Query interface {
	Key() string
}

// Handler answers one query type. Handlers never write to storage, so quotes are
// safe to repeat.
type Handler[Q Query, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// Bus dispatches a query to the handler registered under its key.
type Bus interface {
	Ask(ctx context.Context, query Query) (any, error)
}

var (
	ErrHandlerNotFound = errors.New("queries: handler not found")
	ErrInvalidQuery    = errors.New("queries: invalid query for handler")
	ErrResultType      = errors.New("queries: result type mismatch")
	ErrNilBus          = errors.New("queries: nil bus")
)

// Ask dispatches query and asserts the result to R. A handler returning a nil
// result yields the zero R without error; any other type mismatch is ErrResultType.
func Ask[Q Query, R any](ctx context.Context, bus Bus, query Q) (R, error) {
	var zero R
	if bus == nil {
		return zero, ErrNilBus
	}
	res, err := bus.Ask(ctx, query)
	if err != nil {
		return zero, err
	}
	if res == nil {
		return zero, nil
	}
	value, ok := res.(R)
	if !ok {
		return zero, ErrResultType
	}
	return value, nil
}
