package pricing

import "fmt"

// AddonLine is the priced contribution of a single addon to a booking.
type AddonLine struct {
	AddonID    AddonID
	Item       string
	Consumable bool
	Qty        int
	ItemCost   int64
	Insurance  int64
}

// FeeBreakdown itemizes the cost of an initial booking. All amounts are cents.
type FeeBreakdown struct {
	TotalDays                  int
	DailyPriceCents            int64
	DailyTotal                 int64
	ListingInsuranceFirstDay   int64
	ListingInsuranceSubsequent int64
	ListingInsuranceTotal      int64
	AddonItemTotal             int64
	AddonInsuranceTotal        int64
	Subtotal                   int64
	Addons                     []AddonLine
}

func (b FeeBreakdown) Copy() FeeBreakdown {
	clone := b
	clone.Addons = append([]AddonLine(nil), b.Addons...)
	return clone
}

// BookingSummary prices an initial booking of totalDays days with the selected addons.
//
// Consumable addons cost price*qty and are not insured. Non-consumable addons cost one
// unit's price whatever the quantity and are insured with AddonInsurance.
func (c Calculator) BookingSummary(dailyPriceCents int64, totalDays int, addons []Addon) (FeeBreakdown, error) {
	if dailyPriceCents < 0 {
		return FeeBreakdown{}, fmt.Errorf("%w: daily price must be non-negative, got %d", ErrInvalidInput, dailyPriceCents)
	}
	first, subsequent, err := c.insuranceTerms(dailyPriceCents, totalDays)
	if err != nil {
		return FeeBreakdown{}, err
	}
	dailyTotal, err := mulCents(dailyPriceCents, int64(totalDays))
	if err != nil {
		return FeeBreakdown{}, err
	}
	listingInsurance, err := sumCents(first, subsequent)
	if err != nil {
		return FeeBreakdown{}, err
	}
	out := FeeBreakdown{
		TotalDays:                  totalDays,
		DailyPriceCents:            dailyPriceCents,
		DailyTotal:                 dailyTotal,
		ListingInsuranceFirstDay:   first,
		ListingInsuranceSubsequent: subsequent,
		ListingInsuranceTotal:      listingInsurance,
	}
	if len(addons) > 0 {
		out.Addons = make([]AddonLine, 0, len(addons))
	}
	for _, addon := range addons {
		line, err := c.addonLine(addon, totalDays)
		if err != nil {
			return FeeBreakdown{}, err
		}
		if out.AddonItemTotal, err = sumCents(out.AddonItemTotal, line.ItemCost); err != nil {
			return FeeBreakdown{}, err
		}
		if out.AddonInsuranceTotal, err = sumCents(out.AddonInsuranceTotal, line.Insurance); err != nil {
			return FeeBreakdown{}, err
		}
		out.Addons = append(out.Addons, line)
	}
	out.Subtotal, err = sumCents(out.DailyTotal, out.ListingInsuranceTotal, out.AddonItemTotal, out.AddonInsuranceTotal)
	if err != nil {
		return FeeBreakdown{}, err
	}
	return out, nil
}

func (c Calculator) addonLine(addon Addon, totalDays int) (AddonLine, error) {
	if err := addon.Validate(); err != nil {
		return AddonLine{}, err
	}
	line := AddonLine{
		AddonID:    addon.ID,
		Item:       addon.Item,
		Consumable: addon.Consumable,
		Qty:        addon.Quantity(),
	}
	if addon.Free() {
		return line, nil
	}
	if addon.Consumable {
		cost, err := mulCents(addon.Price(), int64(addon.Quantity()))
		if err != nil {
			return AddonLine{}, err
		}
		line.ItemCost = cost
		return line, nil
	}
	// TODO: confirm with product whether non-consumable addons should be charged per unit.
	line.ItemCost = addon.Price()
	insurance, err := c.AddonInsurance(addon.PriceCents, false, totalDays)
	if err != nil {
		return AddonLine{}, err
	}
	line.Insurance = insurance
	return line, nil
}
