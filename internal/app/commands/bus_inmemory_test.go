package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoCommand struct{ Value string }

func (echoCommand) Key() string { return "test.echo" }

type otherCommand struct{}

func (otherCommand) Key() string { return "test.other" }

func TestDispatchTypedResult(t *testing.T) {
	bus := NewInMemoryBus()
	RegisterHandler(bus, HandlerFunc[echoCommand, string](func(ctx context.Context, cmd echoCommand) (string, error) {
		return "echo:" + cmd.Value, nil
	}))

	got, err := Dispatch[echoCommand, string](context.Background(), bus, echoCommand{Value: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "echo:hi", got)
	assert.Equal(t, []string{"test.echo"}, bus.Keys())

	_, err = Dispatch[echoCommand, int](context.Background(), bus, echoCommand{})
	assert.ErrorIs(t, err, ErrResultType)
}

func TestDispatchUnknownCommand(t *testing.T) {
	bus := NewInMemoryBus()
	_, err := bus.Dispatch(context.Background(), otherCommand{})
	assert.ErrorIs(t, err, ErrHandlerNotFound)

	_, err = Dispatch[otherCommand, any](context.Background(), nil, otherCommand{})
	assert.ErrorIs(t, err, ErrNilBus)
}

func TestDispatchPropagatesErrors(t *testing.T) {
	bus := NewInMemoryBus()
	boom := errors.New("boom")
	RegisterHandler(bus, HandlerFunc[echoCommand, string](func(context.Context, echoCommand) (string, error) {
		return "", boom
	}))
	_, err := Dispatch[echoCommand, string](context.Background(), bus, echoCommand{})
	assert.ErrorIs(t, err, boom)
}

func TestRegisterTwicePanics(t *testing.T) {
	bus := NewInMemoryBus()
	h := HandlerFunc[echoCommand, string](func(context.Context, echoCommand) (string, error) { return "", nil })
	RegisterHandler(bus, h)
	assert.Panics(t, func() { RegisterHandler(bus, h) })
}
