package memory

import (
	domainavailability "trio/internal/domain/availability"
	domainbooking "trio/internal/domain/booking"
	domainlistings "trio/internal/domain/listings"
	domainpricing "trio/internal/domain/pricing"
)

// Clones never carry pending events: those belong to the instance that recorded them.

func cloneListing(l *domainlistings.Listing) *domainlistings.Listing {
	return &domainlistings.Listing{
		ID:              l.ID,
		Owner:           l.Owner,
		Title:           l.Title,
		Description:     l.Description,
		Category:        l.Category,
		Location:        l.Location,
		DailyPriceCents: l.DailyPriceCents,
		Currency:        l.Currency,
		Addons:          cloneAddons(l.Addons),
		State:           l.State,
		Version:         l.Version,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}

func cloneBooking(b *domainbooking.Booking) *domainbooking.Booking {
	return &domainbooking.Booking{
		ID:              b.ID,
		ListingID:       b.ListingID,
		RenterID:        b.RenterID,
		Range:           b.Range,
		DailyPriceCents: b.DailyPriceCents,
		Currency:        b.Currency,
		Addons:          cloneAddons(b.Addons),
		Summary:         b.Summary.Copy(),
		Extensions:      append([]domainbooking.Extension(nil), b.Extensions...),
		State:           b.State,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
		Version:         b.Version,
	}
}

func cloneCalendar(c *domainavailability.Calendar) *domainavailability.Calendar {
	return &domainavailability.Calendar{
		ListingID: c.ListingID,
		Blocks:    append([]domainavailability.Block(nil), c.Blocks...),
		Version:   c.Version,
	}
}

func cloneAddons(in []domainpricing.Addon) []domainpricing.Addon {
	if in == nil {
		return nil
	}
	out := make([]domainpricing.Addon, len(in))
	for i, a := range in {
		out[i] = a
		if a.PriceCents != nil {
			out[i].PriceCents = domainpricing.Cents(*a.PriceCents)
		}
		if a.Style != nil {
			style := *a.Style
			out[i].Style = &style
		}
	}
	return out
}
