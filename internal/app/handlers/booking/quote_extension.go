package booking

import (
	"context"
	"strings"
	"time"

	"trio/internal/app/dto"
	"trio/internal/app/policies"
	"trio/internal/app/queries"
	"trio/internal/app/uow"
	domainavailability "trio/internal/domain/availability"
	domainbooking "trio/internal/domain/booking"
	domainpricing "trio/internal/domain/pricing"
	"trio/internal/domain/shared/daterange"
)

const quoteExtensionKey = "booking.extension.quote"

// QuoteExtensionQuery checks whether a booking can run until End and prices the added days.
type QuoteExtensionQuery struct {
	BookingID string
	End       time.Time
}

func (q QuoteExtensionQuery) Key() string { return quoteExtensionKey }

func (q QuoteExtensionQuery) Validate() error {
	if strings.TrimSpace(q.BookingID) == "" {
		return domainbooking.ErrBookingNotFound
	}
	if q.End.IsZero() {
		return daterange.ErrMissingDate
	}
	return nil
}

type QuoteExtensionHandler struct {
	UoWFactory uow.UoWFactory
	Pricing    policies.PricingPort
}

func (h *QuoteExtensionHandler) Handle(ctx context.Context, q QuoteExtensionQuery) (_ dto.ExtensionQuote, err error) {
	ctx, unit, done, err := uow.Acquire(ctx, h.UoWFactory, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return dto.ExtensionQuote{}, err
	}
	defer func() { err = done(err) }()

	booking, calendar, err := loadForExtension(ctx, unit, q.BookingID)
	if err != nil {
		return dto.ExtensionQuote{}, err
	}
	start := booking.ExtensionStart()
	end := daterange.Day(q.End)
	quote := dto.ExtensionQuote{
		BookingID: string(booking.ID),
		StartDate: start.Format(daterange.Layout),
		EndDate:   end.Format(daterange.Layout),
	}
	check, price, err := priceExtension(h.Pricing, booking, calendar, end)
	if err != nil {
		return dto.ExtensionQuote{}, err
	}
	quote.Valid = check.Valid
	quote.Reason = check.Reason
	if check.Valid {
		mapped := dto.MapExtensionPrice(price, booking.Currency)
		quote.Price = &mapped
	}
	return quote, nil
}

func loadForExtension(ctx context.Context, unit uow.UnitOfWork, bookingID string) (*domainbooking.Booking, *domainavailability.Calendar, error) {
	booking, err := unit.Bookings().ByID(ctx, domainbooking.BookingID(strings.TrimSpace(bookingID)))
	if err != nil {
		return nil, nil, err
	}
	if !booking.Blocking() {
		return nil, nil, domainbooking.ErrInvalidState
	}
	calendar, err := unit.Availability().Calendar(ctx, booking.ListingID)
	if err != nil {
		return nil, nil, err
	}
	return booking, calendar, nil
}

// priceExtension validates the range against every other block on the listing and, when
// it is free, prices it. An invalid range is not an error: the check carries the reason.
func priceExtension(pricing policies.PricingPort, booking *domainbooking.Booking, calendar *domainavailability.Calendar, end time.Time) (domainbooking.ExtensionCheck, domainpricing.ExtensionBreakdown, error) {
	start := booking.ExtensionStart()
	check := domainbooking.CheckExtensionRange(start, end, calendar.Ranges(string(booking.ID)))
	if !check.Valid {
		return check, domainpricing.ExtensionBreakdown{}, nil
	}
	price, err := pricing.ExtensionTotal(booking.DailyPriceCents, start, end, booking.NonConsumableAddonDailyTotal())
	if err != nil {
		return check, domainpricing.ExtensionBreakdown{}, err
	}
	return check, price, nil
}

var _ queries.Handler[QuoteExtensionQuery, dto.ExtensionQuote] = (*QuoteExtensionHandler)(nil)
