package uow

import (
	"context"
	"errors"
)

var ErrUnitOfWorkMissing = errors.New("uow: unit of work missing from context")

type ctxKey struct{}

func ContextWithUnitOfWork(ctx context.Context, unit UnitOfWork) context.Context {
	return context.WithValue(ctx, ctxKey{}, unit)
}

func FromContext(ctx context.Context) (UnitOfWork, bool) {
	val := ctx.Value(ctxKey{})
	if val == nil {
		return nil, false
	}
	unit, ok := val.(UnitOfWork)
	return unit, ok
}

// Acquire returns the unit of work carried by ctx, or begins one from factory.
// The returned done func must be called with the handler's error: a unit begun here is
// committed on success and rolled back otherwise, while a borrowed unit is left to its owner.
func Acquire(ctx context.Context, factory UoWFactory, opts TxOptions) (context.Context, UnitOfWork, func(error) error, error) {
	if unit, ok := FromContext(ctx); ok {
		return ctx, unit, func(err error) error { return err }, nil
	}
	if factory == nil {
		return ctx, nil, nil, ErrUnitOfWorkMissing
	}
	unit, err := factory.Begin(ctx, opts)
	if err != nil {
		return ctx, nil, nil, err
	}
	if injector, ok := unit.(interface {
		InjectContext(context.Context) context.Context
	}); ok {
		ctx = injector.InjectContext(ctx)
	}
	ctx = ContextWithUnitOfWork(ctx, unit)
	done := func(err error) error {
		if err != nil || opts.ReadOnly {
			_ = unit.Rollback(ctx)
			return err
		}
		return unit.Commit(ctx)
	}
	return ctx, unit, done, nil
}
