package pricing

import (
	"testing"
	"testing/quick"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trio/internal/domain/shared/money"
)

func testCalculator(t *testing.T) Calculator {
	t.Helper()
	calc, err := NewCalculator(FeeSchedule{
		RenterFee:          decimal.NewFromInt(10),
		SubsequentDailyFee: decimal.NewFromInt(2),
	})
	require.NoError(t, err)
	return calc
}

func TestNewCalculatorRejectsNegativeFees(t *testing.T) {
	_, err := NewCalculator(FeeSchedule{RenterFee: decimal.NewFromInt(-1), SubsequentDailyFee: decimal.Zero})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListingInsurance(t *testing.T) {
	calc := testCalculator(t)
	tests := []struct {
		name  string
		price int64
		days  int
		want  int64
	}{
		{"single day charges renter fee only", 4500, 1, 450},
		{"three days", 4500, 3, 630},
		{"free listing", 0, 5, 0},
		{"rounds first day half up", 5, 1, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := calc.ListingInsurance(tc.price, tc.days)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestListingInsuranceRoundsSubsequentDaysOnce(t *testing.T) {
	calc := testCalculator(t)
	// 125 * 2% = 2.5 cents per day: rounding each of the three subsequent days would
	// give 9 cents, rounding the aggregate 7.5 gives 8.
	got, err := calc.ListingInsurance(125, 4)
	require.NoError(t, err)

	first := money.PercentOf(125, decimal.NewFromInt(10), 1)
	assert.Equal(t, int64(13), first)
	assert.Equal(t, first+8, got)
}

func TestListingInsuranceRejectsInvalidInput(t *testing.T) {
	calc := testCalculator(t)

	_, err := calc.ListingInsurance(4500, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = calc.ListingInsurance(-1, 2)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListingInsuranceSingleDayProperty(t *testing.T) {
	calc := testCalculator(t)
	prop := func(price uint32) bool {
		got, err := calc.ListingInsurance(int64(price), 1)
		return err == nil && got == money.PercentOf(int64(price), calc.Fees.RenterFee, 1)
	}
	require.NoError(t, quick.Check(prop, nil))
}

func TestListingInsuranceMultiDayProperty(t *testing.T) {
	calc := testCalculator(t)
	prop := func(price uint32, extra uint8) bool {
		days := int(extra)%60 + 2
		got, err := calc.ListingInsurance(int64(price), days)
		want := money.PercentOf(int64(price), calc.Fees.RenterFee, 1) +
			money.PercentOf(int64(price), calc.Fees.SubsequentDailyFee, int64(days-1))
		return err == nil && got == want
	}
	require.NoError(t, quick.Check(prop, nil))
}

func TestAddonInsurance(t *testing.T) {
	calc := testCalculator(t)

	got, err := calc.AddonInsurance(Cents(1000), false, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(140), got)

	got, err = calc.AddonInsurance(nil, false, 3)
	require.NoError(t, err)
	assert.Zero(t, got)

	_, err = calc.AddonInsurance(Cents(1000), false, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAddonInsuranceConsumableIsAlwaysZero(t *testing.T) {
	calc := testCalculator(t)
	prop := func(price uint32, extra uint8) bool {
		got, err := calc.AddonInsurance(Cents(int64(price)), true, int(extra)+1)
		return err == nil && got == 0
	}
	require.NoError(t, quick.Check(prop, nil))
}
