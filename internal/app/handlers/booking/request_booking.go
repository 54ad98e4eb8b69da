package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"trio/internal/app/commands"
	"trio/internal/app/dto"
	"trio/internal/app/middleware"
	"trio/internal/app/outbox"
	"trio/internal/app/policies"
	"trio/internal/app/uow"
	domainavailability "trio/internal/domain/availability"
	domainbooking "trio/internal/domain/booking"
	domainlistings "trio/internal/domain/listings"
	"trio/internal/domain/shared/daterange"
	"trio/internal/domain/shared/events"
)

const requestBookingKey = "booking.request"

type RequestBookingCommand struct {
	CommandID       string
	ListingID       string
	RenterID        string
	Start           time.Time
	End             time.Time
	Addons          []AddonChoice
	IdempotencyKeyV string
}

func (c RequestBookingCommand) Key() string { return requestBookingKey }

func (c RequestBookingCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c RequestBookingCommand) ResultPrototype() any { return &dto.Booking{} }

func (c RequestBookingCommand) Validate() error {
	if strings.TrimSpace(c.RenterID) == "" {
		return domainbooking.ErrRenterRequired
	}
	if strings.TrimSpace(c.ListingID) == "" {
		return domainlistings.ErrListingNotFound
	}
	return validateChoices(c.Addons)
}

type RequestBookingHandler struct {
	UoWFactory uow.UoWFactory
	Pricing    policies.PricingPort
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	Now        func() time.Time
}

func (h *RequestBookingHandler) Handle(ctx context.Context, cmd RequestBookingCommand) (_ *dto.Booking, err error) {
	ctx, unit, done, err := uow.Acquire(ctx, h.UoWFactory, uow.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { err = done(err) }()

	now := clock(h.Now)
	dr, err := daterange.New(cmd.Start, cmd.End)
	if err != nil {
		return nil, err
	}
	if err := domainbooking.ValidateDateRange(dr, now); err != nil {
		return nil, err
	}

	listing, err := unit.Listings().ByID(ctx, domainlistings.ListingID(cmd.ListingID))
	if err != nil {
		return nil, err
	}
	if !listing.Bookable() {
		return nil, domainlistings.ErrListingInactive
	}
	addons, err := listing.SelectAddons(selections(cmd.Addons))
	if err != nil {
		return nil, err
	}

	calendar, err := unit.Availability().Calendar(ctx, listing.ID)
	if err != nil {
		return nil, err
	}
	if conflicts := calendar.Conflicts(dr, ""); len(conflicts) > 0 {
		return nil, fmt.Errorf("%w: %s", domainbooking.ErrDatesUnavailable, conflicts[0].Range)
	}

	summary, err := h.Pricing.BookingSummary(listing.DailyPriceCents, dr.Days(), addons)
	if err != nil {
		return nil, err
	}

	id := strings.TrimSpace(cmd.CommandID)
	if id == "" {
		id = uuid.NewString()
	}
	booking, err := domainbooking.NewBooking(domainbooking.CreateParams{
		ID:              domainbooking.BookingID(id),
		ListingID:       listing.ID,
		RenterID:        strings.TrimSpace(cmd.RenterID),
		Range:           dr,
		DailyPriceCents: listing.DailyPriceCents,
		Currency:        listing.Currency,
		Addons:          addons,
		Summary:         summary,
		CreatedAt:       now,
	})
	if err != nil {
		return nil, err
	}
	if err := calendar.Reserve(dr, string(booking.ID), now); err != nil {
		if errors.Is(err, domainavailability.ErrOverlappingRange) {
			return nil, fmt.Errorf("%w: %s", domainbooking.ErrDatesUnavailable, dr)
		}
		return nil, err
	}

	if err := unit.Bookings().Save(ctx, booking); err != nil {
		return nil, err
	}
	if err := unit.Availability().Save(ctx, calendar); err != nil {
		return nil, err
	}
	if err := h.record(ctx, booking.Drain(), calendar.Drain()); err != nil {
		return nil, err
	}

	out := dto.MapBooking(booking)
	return &out, nil
}

func (h *RequestBookingHandler) record(ctx context.Context, batches ...[]events.DomainEvent) error {
	return recordAll(ctx, h.Outbox, h.Encoder, batches...)
}

var _ commands.Handler[RequestBookingCommand, *dto.Booking] = (*RequestBookingHandler)(nil)
var _ middleware.IdempotentCommand = RequestBookingCommand{}
