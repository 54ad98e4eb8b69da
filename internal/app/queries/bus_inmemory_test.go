package queries

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quoteQuery struct{ Days int }

func (quoteQuery) Key() string { return "test.quote" }

type quoteHandler struct{}

func (quoteHandler) Handle(_ context.Context, q quoteQuery) (*int64, error) {
	if q.Days == 0 {
		return nil, nil
	}
	total := int64(q.Days) * 4500
	return &total, nil
}

type calendarQuery struct{}

func (calendarQuery) Key() string { return "test.calendar" }

func TestAskTypedResult(t *testing.T) {
	bus := NewInMemoryBus()
	RegisterHandler[quoteQuery, *int64](bus, quoteHandler{})

	got, err := Ask[quoteQuery, *int64](context.Background(), bus, quoteQuery{Days: 3})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(13500), *got)
	assert.Equal(t, []string{"test.quote"}, bus.Keys())

	_, err = Ask[quoteQuery, string](context.Background(), bus, quoteQuery{Days: 3})
	assert.ErrorIs(t, err, ErrResultType)
}

func TestAskNilResultIsZero(t *testing.T) {
	bus := NewInMemoryBus()
	RegisterHandler[quoteQuery, *int64](bus, quoteHandler{})

	got, err := Ask[quoteQuery, *int64](context.Background(), bus, quoteQuery{})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAskUnknownQuery(t *testing.T) {
	bus := NewInMemoryBus()
	_, err := bus.Ask(context.Background(), calendarQuery{})
	assert.ErrorIs(t, err, ErrHandlerNotFound)

	_, err = Ask[calendarQuery, any](context.Background(), nil, calendarQuery{})
	assert.ErrorIs(t, err, ErrNilBus)
}

func TestRegisterQueryTwicePanics(t *testing.T) {
	bus := NewInMemoryBus()
	RegisterHandler[quoteQuery, *int64](bus, quoteHandler{})
	assert.Panics(t, func() { RegisterHandler[quoteQuery, *int64](bus, quoteHandler{}) })
}
