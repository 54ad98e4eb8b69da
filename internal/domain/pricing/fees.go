package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"trio/internal/domain/shared/money"
)

// ErrInvalidInput is the only failure the calculator produces.
var ErrInvalidInput = errors.New("pricing: invalid input")

var (
	// DefaultRenterFee is the percentage charged on the first rental day.
	DefaultRenterFee = decimal.NewFromInt(10)
	// DefaultSubsequentDailyFee is the percentage charged on every day after the first.
	DefaultSubsequentDailyFee = decimal.NewFromInt(2)
)

// FeeSchedule holds the two insurance percentages, e.g. 10 meaning 10%.
type FeeSchedule struct {
	RenterFee          decimal.Decimal
	SubsequentDailyFee decimal.Decimal
}

func DefaultFeeSchedule() FeeSchedule {
	return FeeSchedule{
		RenterFee:          DefaultRenterFee,
		SubsequentDailyFee: DefaultSubsequentDailyFee,
	}
}

func (s FeeSchedule) Validate() error {
	if s.RenterFee.IsNegative() || s.SubsequentDailyFee.IsNegative() {
		return fmt.Errorf("%w: fee percentages must be non-negative", ErrInvalidInput)
	}
	return nil
}

// Calculator prices bookings and extensions. It holds no mutable state and is safe
// for concurrent use.
type Calculator struct {
	Fees FeeSchedule
}

func NewCalculator(fees FeeSchedule) (Calculator, error) {
	if err := fees.Validate(); err != nil {
		return Calculator{}, err
	}
	return Calculator{Fees: fees}, nil
}

// ListingInsurance charges RenterFee on the first day and SubsequentDailyFee on the
// remaining days. The subsequent-days term is rounded once on the aggregate.
func (c Calculator) ListingInsurance(dailyPriceCents int64, totalDays int) (int64, error) {
	first, subsequent, err := c.insuranceTerms(dailyPriceCents, totalDays)
	if err != nil {
		return 0, err
	}
	return sumCents(first, subsequent)
}

// AddonInsurance applies the listing insurance formula to a non-consumable addon.
// Consumable and free addons are never insured.
func (c Calculator) AddonInsurance(priceCents *int64, consumable bool, totalDays int) (int64, error) {
	if totalDays < 1 {
		return 0, invalidDays(totalDays)
	}
	if consumable || priceCents == nil {
		return 0, nil
	}
	first, subsequent, err := c.insuranceTerms(*priceCents, totalDays)
	if err != nil {
		return 0, err
	}
	return sumCents(first, subsequent)
}

func (c Calculator) insuranceTerms(baseCents int64, totalDays int) (int64, int64, error) {
	if totalDays < 1 {
		return 0, 0, invalidDays(totalDays)
	}
	if baseCents < 0 {
		return 0, 0, fmt.Errorf("%w: price must be non-negative, got %d", ErrInvalidInput, baseCents)
	}
	first, err := percentOf(baseCents, c.Fees.RenterFee, 1)
	if err != nil {
		return 0, 0, err
	}
	var subsequent int64
	if totalDays > 1 {
		if subsequent, err = percentOf(baseCents, c.Fees.SubsequentDailyFee, int64(totalDays-1)); err != nil {
			return 0, 0, err
		}
	}
	return first, subsequent, nil
}

func invalidDays(days int) error {
	return fmt.Errorf("%w: total days must be at least 1, got %d", ErrInvalidInput, days)
}

// overflow reports amounts too large for int64 cents as invalid input.
func overflow(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}

func percentOf(cents int64, percent decimal.Decimal, times int64) (int64, error) {
	v, err := money.CheckedPercentOf(cents, percent, times)
	if err != nil {
		return 0, overflow(err)
	}
	return v, nil
}

func mulCents(a, b int64) (int64, error) {
	v, err := money.MulCents(a, b)
	if err != nil {
		return 0, overflow(err)
	}
	return v, nil
}

func sumCents(values ...int64) (int64, error) {
	v, err := money.SumCents(values...)
	if err != nil {
		return 0, overflow(err)
	}
	return v, nil
}
