package pricing

import (
	"fmt"
	"time"

	"trio/internal/domain/shared/daterange"
)

// ExtensionBreakdown itemizes the cost of lengthening an existing booking.
type ExtensionBreakdown struct {
	TotalDays        int
	DailyTotal       int64
	AddonDailyTotal  int64
	ListingInsurance int64
	AddonInsurance   int64
	Total            int64
}

// ExtensionTotal prices an extension running from start to end inclusive.
//
// Extensions always follow the original first day, so non-consumable addons are
// insured at SubsequentDailyFee for every extended day. This is a separate rule from
// BookingSummary and the two are deliberately not merged.
func (c Calculator) ExtensionTotal(dailyPriceCents int64, start, end time.Time, nonconsumableAddonDailyTotal int64) (ExtensionBreakdown, error) {
	dr, err := daterange.New(start, end)
	if err != nil {
		return ExtensionBreakdown{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if nonconsumableAddonDailyTotal < 0 {
		return ExtensionBreakdown{}, fmt.Errorf("%w: addon daily total must be non-negative, got %d", ErrInvalidInput, nonconsumableAddonDailyTotal)
	}
	days := dr.Days()
	listingInsurance, err := c.ListingInsurance(dailyPriceCents, days)
	if err != nil {
		return ExtensionBreakdown{}, err
	}
	out := ExtensionBreakdown{TotalDays: days, ListingInsurance: listingInsurance}
	if out.DailyTotal, err = mulCents(dailyPriceCents, int64(days)); err != nil {
		return ExtensionBreakdown{}, err
	}
	if out.AddonDailyTotal, err = mulCents(nonconsumableAddonDailyTotal, int64(days)); err != nil {
		return ExtensionBreakdown{}, err
	}
	if out.AddonInsurance, err = percentOf(nonconsumableAddonDailyTotal, c.Fees.SubsequentDailyFee, int64(days)); err != nil {
		return ExtensionBreakdown{}, err
	}
	if out.Total, err = sumCents(out.DailyTotal, out.AddonDailyTotal, out.ListingInsurance, out.AddonInsurance); err != nil {
		return ExtensionBreakdown{}, err
	}
	return out, nil
}
