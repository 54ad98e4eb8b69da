package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trio/internal/app/uow"
	domainlistings "trio/internal/domain/listings"
	"trio/internal/infra/obs"
	"trio/internal/infra/storage/memory"
)

func TestLoadListingFixtures(t *testing.T) {
	ctx := context.Background()
	factory := memory.Factory{Store: memory.NewStore()}
	logger := obs.NewLoggerTo(io.Discard, "test")
	path := filepath.Join("..", "..", "data", "listings.json")

	require.NoError(t, loadListingFixtures(ctx, factory, path, "USD", logger))
	require.NoError(t, loadListingFixtures(ctx, factory, path, "USD", logger))

	unit, err := factory.Begin(ctx, uow.TxOptions{ReadOnly: true})
	require.NoError(t, err)
	defer unit.Rollback(ctx)

	kayak, err := unit.Listings().ByID(ctx, "lst-kayak-01")
	require.NoError(t, err)
	assert.Equal(t, int64(4500), kayak.DailyPriceCents)
	assert.Equal(t, "USD", kayak.Currency)
	assert.Len(t, kayak.Addons, 4)
	assert.Equal(t, int64(1), kayak.Version)

	all, err := unit.Listings().List(ctx, domainlistings.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestLoadListingFixturesSkipsInvalidEntries(t *testing.T) {
	ctx := context.Background()
	factory := memory.Factory{Store: memory.NewStore()}
	path := filepath.Join(t.TempDir(), "listings.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"id": "ok", "owner": "o", "title": "Canoe", "daily_price_cents": 100},
		{"id": "bad", "owner": "o", "title": "", "daily_price_cents": 100}
	]`), 0o600))

	require.NoError(t, loadListingFixtures(ctx, factory, path, "EUR", obs.NewLoggerTo(io.Discard, "test")))

	unit, err := factory.Begin(ctx, uow.TxOptions{ReadOnly: true})
	require.NoError(t, err)
	defer unit.Rollback(ctx)
	canoe, err := unit.Listings().ByID(ctx, "ok")
	require.NoError(t, err)
	assert.Equal(t, "EUR", canoe.Currency)
	_, err = unit.Listings().ByID(ctx, "bad")
	assert.ErrorIs(t, err, domainlistings.ErrListingNotFound)
}

func TestLoadListingFixturesMissingFile(t *testing.T) {
	factory := memory.Factory{Store: memory.NewStore()}
	err := loadListingFixtures(context.Background(), factory, filepath.Join(t.TempDir(), "none.json"), "USD", obs.NewLoggerTo(io.Discard, "test"))
	assert.NoError(t, err)
}
