package mongo

import (
	"time"

	domainavailability "trio/internal/domain/availability"
	domainbooking "trio/internal/domain/booking"
	domainlistings "trio/internal/domain/listings"
	domainpricing "trio/internal/domain/pricing"
	"trio/internal/domain/shared/daterange"
)

const (
	listingsCollection  = "agg_listing"
	bookingsCollection  = "agg_booking"
	calendarsCollection = "agg_calendar"
)

type rangeDocument struct {
	Start int64 `bson:"start"`
	End   int64 `bson:"end"`
}

func newRangeDocument(dr daterange.DateRange) rangeDocument {
	return rangeDocument{Start: dr.Start.UnixMilli(), End: dr.End.UnixMilli()}
}

func (d rangeDocument) toRange() daterange.DateRange {
	return daterange.DateRange{Start: timestampToTime(d.Start), End: timestampToTime(d.End)}
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

type addonDocument struct {
	ID         string  `bson:"id"`
	Item       string  `bson:"item"`
	Style      *string `bson:"style,omitempty"`
	PriceCents *int64  `bson:"price_cents,omitempty"`
	Consumable bool    `bson:"consumable"`
	Qty        int     `bson:"qty,omitempty"`
}

func newAddonDocuments(in []domainpricing.Addon) []addonDocument {
	out := make([]addonDocument, 0, len(in))
	for _, a := range in {
		out = append(out, addonDocument{
			ID:         string(a.ID),
			Item:       a.Item,
			Style:      a.Style,
			PriceCents: a.PriceCents,
			Consumable: a.Consumable,
			Qty:        a.Qty,
		})
	}
	return out
}

func toAddons(in []addonDocument) []domainpricing.Addon {
	out := make([]domainpricing.Addon, 0, len(in))
	for _, d := range in {
		out = append(out, domainpricing.Addon{
			ID:         domainpricing.AddonID(d.ID),
			Item:       d.Item,
			Style:      d.Style,
			PriceCents: d.PriceCents,
			Consumable: d.Consumable,
			Qty:        d.Qty,
		})
	}
	return out
}

type listingDocument struct {
	ID              string          `bson:"_id"`
	Owner           string          `bson:"owner"`
	Title           string          `bson:"title"`
	Description     string          `bson:"description"`
	Category        string          `bson:"category"`
	Location        string          `bson:"location"`
	DailyPriceCents int64           `bson:"daily_price_cents"`
	Currency        string          `bson:"currency"`
	Addons          []addonDocument `bson:"addons"`
	State           string          `bson:"state"`
	CreatedAt       int64           `bson:"created_at"`
	UpdatedAt       int64           `bson:"updated_at"`
	Version         int64           `bson:"version"`
}

func newListingDocument(l *domainlistings.Listing) listingDocument {
	return listingDocument{
		ID:              string(l.ID),
		Owner:           string(l.Owner),
		Title:           l.Title,
		Description:     l.Description,
		Category:        l.Category,
		Location:        l.Location,
		DailyPriceCents: l.DailyPriceCents,
		Currency:        l.Currency,
		Addons:          newAddonDocuments(l.Addons),
		State:           string(l.State),
		CreatedAt:       l.CreatedAt.UnixMilli(),
		UpdatedAt:       l.UpdatedAt.UnixMilli(),
		Version:         l.Version,
	}
}

func (d listingDocument) toAggregate() *domainlistings.Listing {
	return &domainlistings.Listing{
		ID:              domainlistings.ListingID(d.ID),
		Owner:           domainlistings.OwnerID(d.Owner),
		Title:           d.Title,
		Description:     d.Description,
		Category:        d.Category,
		Location:        d.Location,
		DailyPriceCents: d.DailyPriceCents,
		Currency:        d.Currency,
		Addons:          toAddons(d.Addons),
		State:           domainlistings.ListingState(d.State),
		CreatedAt:       timestampToTime(d.CreatedAt),
		UpdatedAt:       timestampToTime(d.UpdatedAt),
		Version:         d.Version,
	}
}

type addonLineDocument struct {
	AddonID    string `bson:"addon_id"`
	Item       string `bson:"item"`
	Consumable bool   `bson:"consumable"`
	Qty        int    `bson:"qty"`
	ItemCost   int64  `bson:"item_cost"`
	Insurance  int64  `bson:"insurance"`
}

type summaryDocument struct {
	TotalDays                  int                 `bson:"total_days"`
	DailyPriceCents            int64               `bson:"daily_price_cents"`
	DailyTotal                 int64               `bson:"daily_total"`
	ListingInsuranceFirstDay   int64               `bson:"listing_insurance_first_day"`
	ListingInsuranceSubsequent int64               `bson:"listing_insurance_subsequent"`
	ListingInsuranceTotal      int64               `bson:"listing_insurance_total"`
	AddonItemTotal             int64               `bson:"addon_item_total"`
	AddonInsuranceTotal        int64               `bson:"addon_insurance_total"`
	Subtotal                   int64               `bson:"subtotal"`
	Addons                     []addonLineDocument `bson:"addons"`
}

func newSummaryDocument(b domainpricing.FeeBreakdown) summaryDocument {
	lines := make([]addonLineDocument, 0, len(b.Addons))
	for _, l := range b.Addons {
		lines = append(lines, addonLineDocument{
			AddonID:    string(l.AddonID),
			Item:       l.Item,
			Consumable: l.Consumable,
			Qty:        l.Qty,
			ItemCost:   l.ItemCost,
			Insurance:  l.Insurance,
		})
	}
	return summaryDocument{
		TotalDays:                  b.TotalDays,
		DailyPriceCents:            b.DailyPriceCents,
		DailyTotal:                 b.DailyTotal,
		ListingInsuranceFirstDay:   b.ListingInsuranceFirstDay,
		ListingInsuranceSubsequent: b.ListingInsuranceSubsequent,
		ListingInsuranceTotal:      b.ListingInsuranceTotal,
		AddonItemTotal:             b.AddonItemTotal,
		AddonInsuranceTotal:        b.AddonInsuranceTotal,
		Subtotal:                   b.Subtotal,
		Addons:                     lines,
	}
}

func (d summaryDocument) toBreakdown() domainpricing.FeeBreakdown {
	lines := make([]domainpricing.AddonLine, 0, len(d.Addons))
	for _, l := range d.Addons {
		lines = append(lines, domainpricing.AddonLine{
			AddonID:    domainpricing.AddonID(l.AddonID),
			Item:       l.Item,
			Consumable: l.Consumable,
			Qty:        l.Qty,
			ItemCost:   l.ItemCost,
			Insurance:  l.Insurance,
		})
	}
	return domainpricing.FeeBreakdown{
		TotalDays:                  d.TotalDays,
		DailyPriceCents:            d.DailyPriceCents,
		DailyTotal:                 d.DailyTotal,
		ListingInsuranceFirstDay:   d.ListingInsuranceFirstDay,
		ListingInsuranceSubsequent: d.ListingInsuranceSubsequent,
		ListingInsuranceTotal:      d.ListingInsuranceTotal,
		AddonItemTotal:             d.AddonItemTotal,
		AddonInsuranceTotal:        d.AddonInsuranceTotal,
		Subtotal:                   d.Subtotal,
		Addons:                     lines,
	}
}

type extensionDocument struct {
	ID               string        `bson:"id"`
	Range            rangeDocument `bson:"range"`
	TotalDays        int           `bson:"total_days"`
	DailyTotal       int64         `bson:"daily_total"`
	AddonDailyTotal  int64         `bson:"addon_daily_total"`
	ListingInsurance int64         `bson:"listing_insurance"`
	AddonInsurance   int64         `bson:"addon_insurance"`
	Total            int64         `bson:"total"`
	CreatedAt        int64         `bson:"created_at"`
}

type bookingDocument struct {
	ID              string              `bson:"_id"`
	ListingID       string              `bson:"listing_id"`
	RenterID        string              `bson:"renter_id"`
	Range           rangeDocument       `bson:"range"`
	DailyPriceCents int64               `bson:"daily_price_cents"`
	Currency        string              `bson:"currency"`
	Addons          []addonDocument     `bson:"addons"`
	Summary         summaryDocument     `bson:"summary"`
	Extensions      []extensionDocument `bson:"extensions"`
	State           string              `bson:"state"`
	CreatedAt       int64               `bson:"created_at"`
	UpdatedAt       int64               `bson:"updated_at"`
	Version         int64               `bson:"version"`
}

func newBookingDocument(b *domainbooking.Booking) bookingDocument {
	exts := make([]extensionDocument, 0, len(b.Extensions))
	for _, e := range b.Extensions {
		exts = append(exts, extensionDocument{
			ID:               e.ID,
			Range:            newRangeDocument(e.Range),
			TotalDays:        e.Price.TotalDays,
			DailyTotal:       e.Price.DailyTotal,
			AddonDailyTotal:  e.Price.AddonDailyTotal,
			ListingInsurance: e.Price.ListingInsurance,
			AddonInsurance:   e.Price.AddonInsurance,
			Total:            e.Price.Total,
			CreatedAt:        e.CreatedAt.UnixMilli(),
		})
	}
	return bookingDocument{
		ID:              string(b.ID),
		ListingID:       string(b.ListingID),
		RenterID:        b.RenterID,
		Range:           newRangeDocument(b.Range),
		DailyPriceCents: b.DailyPriceCents,
		Currency:        b.Currency,
		Addons:          newAddonDocuments(b.Addons),
		Summary:         newSummaryDocument(b.Summary),
		Extensions:      exts,
		State:           string(b.State),
		CreatedAt:       b.CreatedAt.UnixMilli(),
		UpdatedAt:       b.UpdatedAt.UnixMilli(),
		Version:         b.Version,
	}
}

func (d bookingDocument) toAggregate() *domainbooking.Booking {
	exts := make([]domainbooking.Extension, 0, len(d.Extensions))
	for _, e := range d.Extensions {
		exts = append(exts, domainbooking.Extension{
			ID:    e.ID,
			Range: e.Range.toRange(),
			Price: domainpricing.ExtensionBreakdown{
				TotalDays:        e.TotalDays,
				DailyTotal:       e.DailyTotal,
				AddonDailyTotal:  e.AddonDailyTotal,
				ListingInsurance: e.ListingInsurance,
				AddonInsurance:   e.AddonInsurance,
				Total:            e.Total,
			},
			CreatedAt: timestampToTime(e.CreatedAt),
		})
	}
	return &domainbooking.Booking{
		ID:              domainbooking.BookingID(d.ID),
		ListingID:       domainlistings.ListingID(d.ListingID),
		RenterID:        d.RenterID,
		Range:           d.Range.toRange(),
		DailyPriceCents: d.DailyPriceCents,
		Currency:        d.Currency,
		Addons:          toAddons(d.Addons),
		Summary:         d.Summary.toBreakdown(),
		Extensions:      exts,
		State:           domainbooking.BookingState(d.State),
		CreatedAt:       timestampToTime(d.CreatedAt),
		UpdatedAt:       timestampToTime(d.UpdatedAt),
		Version:         d.Version,
	}
}

type blockDocument struct {
	Range     rangeDocument `bson:"range"`
	Reason    string        `bson:"reason"`
	Reference string        `bson:"reference"`
	CreatedAt int64         `bson:"created_at"`
}

type calendarDocument struct {
	ID      string          `bson:"_id"`
	Blocks  []blockDocument `bson:"blocks"`
	Version int64           `bson:"version"`
}

func newCalendarDocument(c *domainavailability.Calendar) calendarDocument {
	blocks := make([]blockDocument, 0, len(c.Blocks))
	for _, b := range c.Blocks {
		blocks = append(blocks, blockDocument{
			Range:     newRangeDocument(b.Range),
			Reason:    string(b.Reason),
			Reference: b.Reference,
			CreatedAt: b.CreatedAt.UnixMilli(),
		})
	}
	return calendarDocument{ID: string(c.ListingID), Blocks: blocks, Version: c.Version}
}

func (d calendarDocument) toAggregate() *domainavailability.Calendar {
	cal := domainavailability.NewCalendar(domainlistings.ListingID(d.ID))
	cal.Version = d.Version
	for _, b := range d.Blocks {
		cal.Blocks = append(cal.Blocks, domainavailability.Block{
			Range:     b.Range.toRange(),
			Reason:    domainavailability.BlockReason(b.Reason),
			Reference: b.Reference,
			CreatedAt: timestampToTime(b.CreatedAt),
		})
	}
	return cal
}
