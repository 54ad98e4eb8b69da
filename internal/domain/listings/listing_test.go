package listings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trio/internal/domain/pricing"
)

func newTestListing(t *testing.T) *Listing {
	t.Helper()
	l, err := NewListing(CreateListingParams{
		ID:              "lst-1",
		Owner:           "owner-1",
		Title:           "  Camping kit ",
		DailyPriceCents: 4500,
		Addons: []pricing.Addon{
			{ID: "helmet", Item: "Helmet", PriceCents: pricing.Cents(1000), Qty: 9},
			{ID: "fuel", Item: "Fuel canister", PriceCents: pricing.Cents(500), Consumable: true},
			{ID: "map", Item: "Trail map"},
		},
		Now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return l
}

func TestNewListing(t *testing.T) {
	l := newTestListing(t)
	assert.Equal(t, "Camping kit", l.Title)
	assert.Equal(t, "USD", l.Currency)
	assert.Equal(t, ListingActive, l.State)
	assert.Zero(t, l.Addons[0].Qty)
	require.Len(t, l.PendingEvents(), 1)
	assert.Equal(t, "listing.created", l.PendingEvents()[0].EventName())
}

func TestNewListingValidation(t *testing.T) {
	tests := []struct {
		name   string
		params CreateListingParams
		want   error
	}{
		{"missing title", CreateListingParams{Owner: "o"}, ErrTitleRequired},
		{"missing owner", CreateListingParams{Title: "Kayak"}, ErrOwnerRequired},
		{"negative price", CreateListingParams{Title: "Kayak", Owner: "o", DailyPriceCents: -1}, ErrDailyPrice},
		{"negative addon price", CreateListingParams{Title: "Kayak", Owner: "o", Addons: []pricing.Addon{{ID: "a", Item: "Paddle", PriceCents: pricing.Cents(-1)}}}, pricing.ErrInvalidInput},
		{"unnamed addon", CreateListingParams{Title: "Kayak", Owner: "o", Addons: []pricing.Addon{{ID: "a"}}}, ErrAddonItemRequired},
		{"duplicate addon", CreateListingParams{Title: "Kayak", Owner: "o", Addons: []pricing.Addon{{ID: "a", Item: "x"}, {ID: "a", Item: "y"}}}, ErrDuplicateAddon},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewListing(tc.params)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestSelectAddons(t *testing.T) {
	l := newTestListing(t)

	selected, err := l.SelectAddons([]AddonSelection{{ID: "fuel", Qty: 3}, {ID: "helmet"}})
	require.NoError(t, err)
	require.Len(t, selected, 2)
	assert.Equal(t, 3, selected[0].Qty)
	assert.True(t, selected[0].Consumable)
	assert.Equal(t, 1, selected[1].Quantity())

	_, err = l.SelectAddons([]AddonSelection{{ID: "boat"}})
	assert.ErrorIs(t, err, ErrAddonNotFound)

	_, err = l.SelectAddons([]AddonSelection{{ID: "fuel", Qty: -2}})
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestSelectAddonsRejectsDuplicates(t *testing.T) {
	l := newTestListing(t)

	_, err := l.SelectAddons([]AddonSelection{{ID: "helmet"}, {ID: "helmet"}})
	assert.ErrorIs(t, err, ErrInvalidSelection)

	_, err = l.SelectAddons([]AddonSelection{{ID: "fuel", Qty: 1}, {ID: "map"}, {ID: "fuel", Qty: 2}})
	assert.ErrorIs(t, err, ErrInvalidSelection)

	calc, err := pricing.NewCalculator(pricing.DefaultFeeSchedule())
	require.NoError(t, err)
	selected, err := l.SelectAddons([]AddonSelection{{ID: "helmet", Qty: 2}})
	require.NoError(t, err)
	summary, err := calc.BookingSummary(l.DailyPriceCents, 3, selected)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), summary.AddonItemTotal)
	assert.Equal(t, int64(140), summary.AddonInsuranceTotal)
}

func TestSuspendAndActivate(t *testing.T) {
	l := newTestListing(t)
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, l.Suspend("damaged", now))
	assert.False(t, l.Bookable())
	assert.ErrorIs(t, l.Suspend("again", now), ErrInvalidState)

	require.NoError(t, l.Activate(now))
	assert.True(t, l.Bookable())
	assert.ErrorIs(t, l.Activate(now), ErrInvalidState)
}

func TestListingCreatedEventCarriesCatalog(t *testing.T) {
	l := newTestListing(t)
	require.Len(t, l.PendingEvents(), 1)
	created, ok := l.PendingEvents()[0].(ListingCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, "lst-1", created.AggregateID())
	assert.Equal(t, int64(4500), created.DailyPriceCents)
	assert.Equal(t, "USD", created.Currency)
	assert.Equal(t, []pricing.AddonID{"helmet", "fuel", "map"}, created.AddonIDs)
}
