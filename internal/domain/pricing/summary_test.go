package pricing

import (
	"math"
	"math/rand"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingSummaryWithNonConsumableAddon(t *testing.T) {
	calc := testCalculator(t)
	addons := []Addon{{ID: "helmet", Item: "Helmet", PriceCents: Cents(1000), Qty: 1}}

	got, err := calc.BookingSummary(4500, 3, addons)
	require.NoError(t, err)

	assert.Equal(t, int64(13500), got.DailyTotal)
	assert.Equal(t, int64(450), got.ListingInsuranceFirstDay)
	assert.Equal(t, int64(180), got.ListingInsuranceSubsequent)
	assert.Equal(t, int64(630), got.ListingInsuranceTotal)
	assert.Equal(t, int64(1000), got.AddonItemTotal)
	assert.Equal(t, int64(140), got.AddonInsuranceTotal)
	assert.Equal(t, int64(15270), got.Subtotal)
	require.Len(t, got.Addons, 1)
	assert.Equal(t, AddonLine{AddonID: "helmet", Item: "Helmet", Qty: 1, ItemCost: 1000, Insurance: 140}, got.Addons[0])
}

func TestBookingSummaryConsumableAddon(t *testing.T) {
	calc := testCalculator(t)
	for _, days := range []int{1, 2, 7, 30} {
		got, err := calc.BookingSummary(0, days, []Addon{{ID: "fuel", PriceCents: Cents(500), Consumable: true, Qty: 3}})
		require.NoError(t, err)
		assert.Equal(t, int64(1500), got.AddonItemTotal)
		assert.Zero(t, got.AddonInsuranceTotal)
	}
}

func TestBookingSummaryNonConsumableIgnoresQuantity(t *testing.T) {
	calc := testCalculator(t)
	got, err := calc.BookingSummary(4500, 1, []Addon{{ID: "tent", PriceCents: Cents(2000), Qty: 4}})
	require.NoError(t, err)
	assert.Equal(t, int64(2000), got.AddonItemTotal)
	assert.Equal(t, int64(200), got.AddonInsuranceTotal)
	assert.Equal(t, 4, got.Addons[0].Qty)
}

func TestBookingSummaryFreeAddonContributesNothing(t *testing.T) {
	calc := testCalculator(t)
	got, err := calc.BookingSummary(4500, 2, []Addon{
		{ID: "map", Consumable: false, Qty: 5},
		{ID: "snacks", Consumable: true, Qty: 2},
	})
	require.NoError(t, err)
	assert.Zero(t, got.AddonItemTotal)
	assert.Zero(t, got.AddonInsuranceTotal)
	assert.Len(t, got.Addons, 2)
}

func TestBookingSummaryDefaultsQuantity(t *testing.T) {
	calc := testCalculator(t)
	got, err := calc.BookingSummary(0, 1, []Addon{{ID: "ice", PriceCents: Cents(300), Consumable: true}})
	require.NoError(t, err)
	assert.Equal(t, int64(300), got.AddonItemTotal)
}

func TestBookingSummaryRejectsInvalidInput(t *testing.T) {
	calc := testCalculator(t)
	tests := []struct {
		name   string
		price  int64
		days   int
		addons []Addon
	}{
		{"zero days", 4500, 0, nil},
		{"negative price", -1, 2, nil},
		{"negative addon price", 4500, 2, []Addon{{ID: "x", PriceCents: Cents(-5)}}},
		{"negative addon quantity", 4500, 2, []Addon{{ID: "x", PriceCents: Cents(5), Consumable: true, Qty: -1}}},
		{"consumable item cost overflows", 100, 1, []Addon{{ID: "x", PriceCents: Cents(5_000_000_000_000), Consumable: true, Qty: 2_000_000}}},
		{"daily total overflows", math.MaxInt64 / 2, 3, nil},
		{"addon item total overflows", 100, 1, []Addon{
			{ID: "x", PriceCents: Cents(5_000_000_000_000_000_000), Consumable: true},
			{ID: "y", PriceCents: Cents(5_000_000_000_000_000_000), Consumable: true},
		}},
		{"subtotal overflows", math.MaxInt64, 1, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := calc.BookingSummary(tc.price, tc.days, tc.addons)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestBookingSummaryIsAdditive(t *testing.T) {
	calc := testCalculator(t)
	cfg := &quick.Config{MaxCount: 500, Rand: rand.New(rand.NewSource(7))}
	prop := func(price uint32, dayOffset uint8, seeds []uint16) bool {
		days := int(dayOffset)%90 + 1
		addons := make([]Addon, 0, len(seeds))
		for i, seed := range seeds {
			addon := Addon{ID: AddonID(rune('a' + i%26)), Consumable: seed%2 == 0, Qty: int(seed % 5)}
			if seed%7 != 0 {
				addon.PriceCents = Cents(int64(seed) * 3)
			}
			addons = append(addons, addon)
		}
		got, err := calc.BookingSummary(int64(price), days, addons)
		if err != nil {
			return false
		}
		return got.Subtotal == got.DailyTotal+got.ListingInsuranceTotal+got.AddonItemTotal+got.AddonInsuranceTotal
	}
	require.NoError(t, quick.Check(prop, cfg))
}

func TestBookingSummaryIsDeterministic(t *testing.T) {
	calc := testCalculator(t)
	addons := []Addon{
		{ID: "helmet", PriceCents: Cents(1000)},
		{ID: "fuel", PriceCents: Cents(499), Consumable: true, Qty: 2},
	}
	first, err := calc.BookingSummary(3333, 9, addons)
	require.NoError(t, err)
	second, err := calc.BookingSummary(3333, 9, addons)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
