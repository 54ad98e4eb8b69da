package pricing

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trio/internal/domain/shared/money"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExtensionTotal(t *testing.T) {
	calc := testCalculator(t)

	got, err := calc.ExtensionTotal(4500, day(2026, 5, 4), day(2026, 5, 5), 1000)
	require.NoError(t, err)

	assert.Equal(t, 2, got.TotalDays)
	assert.Equal(t, int64(9000), got.DailyTotal)
	assert.Equal(t, int64(2000), got.AddonDailyTotal)
	// first day 450 + one subsequent day 90
	assert.Equal(t, int64(540), got.ListingInsurance)
	// every extended day at the subsequent rate: 1000 * 2% * 2
	assert.Equal(t, int64(40), got.AddonInsurance)
	assert.Equal(t, int64(9000+2000+540+40), got.Total)
}

func TestExtensionTotalDiffersFromInitialBooking(t *testing.T) {
	calc := testCalculator(t)

	ext, err := calc.ExtensionTotal(0, day(2026, 5, 1), day(2026, 5, 3), 1000)
	require.NoError(t, err)
	summary, err := calc.BookingSummary(0, 3, []Addon{{ID: "a", PriceCents: Cents(1000)}})
	require.NoError(t, err)

	assert.Equal(t, int64(60), ext.AddonInsurance)
	assert.Equal(t, int64(140), summary.AddonInsuranceTotal)
}

func TestExtensionTotalSingleDay(t *testing.T) {
	calc := testCalculator(t)
	got, err := calc.ExtensionTotal(1000, day(2026, 5, 4), day(2026, 5, 4), 0)
	require.NoError(t, err)
	assert.Equal(t, 1, got.TotalDays)
	assert.Equal(t, int64(1000+100), got.Total)
}

func TestExtensionTotalRejectsInvalidInput(t *testing.T) {
	calc := testCalculator(t)

	_, err := calc.ExtensionTotal(4500, day(2026, 5, 5), day(2026, 5, 4), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = calc.ExtensionTotal(-1, day(2026, 5, 4), day(2026, 5, 5), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = calc.ExtensionTotal(4500, day(2026, 5, 4), day(2026, 5, 5), -10)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = calc.ExtensionTotal(4500, day(2026, 5, 4), day(2026, 5, 6), math.MaxInt64/2)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.ErrorIs(t, err, money.ErrOverflow)
}
