package dto

import (
	domainpricing "trio/internal/domain/pricing"
	"trio/internal/domain/shared/daterange"
)

type AddonLine struct {
	AddonID    string   `json:"addon_id"`
	Item       string   `json:"item"`
	Consumable bool     `json:"consumable"`
	Qty        int      `json:"qty"`
	ItemCost   MoneyDTO `json:"item_cost"`
	Insurance  MoneyDTO `json:"insurance"`
}

type FeeBreakdown struct {
	TotalDays                  int         `json:"total_days"`
	DailyPrice                 MoneyDTO    `json:"daily_price"`
	DailyTotal                 MoneyDTO    `json:"daily_total"`
	ListingInsuranceFirstDay   MoneyDTO    `json:"listing_insurance_first_day"`
	ListingInsuranceSubsequent MoneyDTO    `json:"listing_insurance_subsequent"`
	ListingInsuranceTotal      MoneyDTO    `json:"listing_insurance_total"`
	AddonItemTotal             MoneyDTO    `json:"addon_item_total"`
	AddonInsuranceTotal        MoneyDTO    `json:"addon_insurance_total"`
	Subtotal                   MoneyDTO    `json:"subtotal"`
	Addons                     []AddonLine `json:"addons"`
}

type BookingQuote struct {
	ListingID string       `json:"listing_id"`
	StartDate string       `json:"start_date"`
	EndDate   string       `json:"end_date"`
	Breakdown FeeBreakdown `json:"breakdown"`
}

type ExtensionPrice struct {
	TotalDays        int      `json:"total_days"`
	DailyTotal       MoneyDTO `json:"daily_total"`
	AddonDailyTotal  MoneyDTO `json:"addon_daily_total"`
	ListingInsurance MoneyDTO `json:"listing_insurance"`
	AddonInsurance   MoneyDTO `json:"addon_insurance"`
	Total            MoneyDTO `json:"total"`
}

type ExtensionQuote struct {
	BookingID string          `json:"booking_id"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
	Valid     bool            `json:"valid"`
	Reason    string          `json:"reason,omitempty"`
	Price     *ExtensionPrice `json:"quote,omitempty"`
}

func MapFeeBreakdown(b domainpricing.FeeBreakdown, currency string) FeeBreakdown {
	lines := make([]AddonLine, 0, len(b.Addons))
	for _, line := range b.Addons {
		lines = append(lines, AddonLine{
			AddonID:    string(line.AddonID),
			Item:       line.Item,
			Consumable: line.Consumable,
			Qty:        line.Qty,
			ItemCost:   MapCents(line.ItemCost, currency),
			Insurance:  MapCents(line.Insurance, currency),
		})
	}
	return FeeBreakdown{
		TotalDays:                  b.TotalDays,
		DailyPrice:                 MapCents(b.DailyPriceCents, currency),
		DailyTotal:                 MapCents(b.DailyTotal, currency),
		ListingInsuranceFirstDay:   MapCents(b.ListingInsuranceFirstDay, currency),
		ListingInsuranceSubsequent: MapCents(b.ListingInsuranceSubsequent, currency),
		ListingInsuranceTotal:      MapCents(b.ListingInsuranceTotal, currency),
		AddonItemTotal:             MapCents(b.AddonItemTotal, currency),
		AddonInsuranceTotal:        MapCents(b.AddonInsuranceTotal, currency),
		Subtotal:                   MapCents(b.Subtotal, currency),
		Addons:                     lines,
	}
}

func MapExtensionPrice(b domainpricing.ExtensionBreakdown, currency string) ExtensionPrice {
	return ExtensionPrice{
		TotalDays:        b.TotalDays,
		DailyTotal:       MapCents(b.DailyTotal, currency),
		AddonDailyTotal:  MapCents(b.AddonDailyTotal, currency),
		ListingInsurance: MapCents(b.ListingInsurance, currency),
		AddonInsurance:   MapCents(b.AddonInsurance, currency),
		Total:            MapCents(b.Total, currency),
	}
}

func MapBookingQuote(listingID string, dr daterange.DateRange, b domainpricing.FeeBreakdown, currency string) BookingQuote {
	return BookingQuote{
		ListingID: listingID,
		StartDate: dr.Start.Format(daterange.Layout),
		EndDate:   dr.End.Format(daterange.Layout),
		Breakdown: MapFeeBreakdown(b, currency),
	}
}
