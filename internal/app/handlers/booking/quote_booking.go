package booking

import (
	"context"
	"strings"
	"time"

	"trio/internal/app/dto"
	"trio/internal/app/policies"
	"trio/internal/app/queries"
	"trio/internal/app/uow"
	domainlistings "trio/internal/domain/listings"
	domainpricing "trio/internal/domain/pricing"
	"trio/internal/domain/shared/daterange"
)

const quoteBookingKey = "booking.quote"

// AddonChoice is one addon the renter picked, with the requested quantity.
type AddonChoice struct {
	ID  string
	Qty int
}

type QuoteBookingQuery struct {
	ListingID string
	Start     time.Time
	End       time.Time
	Addons    []AddonChoice
}

func (q QuoteBookingQuery) Key() string { return quoteBookingKey }

func (q QuoteBookingQuery) Validate() error {
	if strings.TrimSpace(q.ListingID) == "" {
		return domainlistings.ErrListingNotFound
	}
	return validateChoices(q.Addons)
}

type QuoteBookingHandler struct {
	UoWFactory uow.UoWFactory
	Pricing    policies.PricingPort
}

func (h *QuoteBookingHandler) Handle(ctx context.Context, q QuoteBookingQuery) (_ dto.BookingQuote, err error) {
	ctx, unit, done, err := uow.Acquire(ctx, h.UoWFactory, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return dto.BookingQuote{}, err
	}
	defer func() { err = done(err) }()

	dr, err := daterange.New(q.Start, q.End)
	if err != nil {
		return dto.BookingQuote{}, err
	}
	listing, err := unit.Listings().ByID(ctx, domainlistings.ListingID(q.ListingID))
	if err != nil {
		return dto.BookingQuote{}, err
	}
	addons, err := listing.SelectAddons(selections(q.Addons))
	if err != nil {
		return dto.BookingQuote{}, err
	}
	summary, err := h.Pricing.BookingSummary(listing.DailyPriceCents, dr.Days(), addons)
	if err != nil {
		return dto.BookingQuote{}, err
	}
	return dto.MapBookingQuote(string(listing.ID), dr, summary, listing.Currency), nil
}

func selections(choices []AddonChoice) []domainlistings.AddonSelection {
	out := make([]domainlistings.AddonSelection, 0, len(choices))
	for _, c := range choices {
		out = append(out, domainlistings.AddonSelection{ID: domainpricing.AddonID(strings.TrimSpace(c.ID)), Qty: c.Qty})
	}
	return out
}

func validateChoices(choices []AddonChoice) error {
	for _, c := range choices {
		if c.Qty < 0 {
			return domainlistings.ErrInvalidSelection
		}
	}
	return nil
}

var _ queries.Handler[QuoteBookingQuery, dto.BookingQuote] = (*QuoteBookingHandler)(nil)
