package booking

import (
	"context"
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
	domainbooking "trio/internal/domain/booking"
	"trio/internal/domain/shared/daterange"
)

const extendBookingKey = "booking.extend"

type ExtendBookingCommand struct {
	BookingID       string
	End             time.Time
	IdempotencyKeyV string
}

func (c ExtendBookingCommand) Key() string { return extendBookingKey }

func (c ExtendBookingCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c ExtendBookingCommand) ResultPrototype() any { return &dto.Booking{} }

func (c ExtendBookingCommand) Validate() error {
	if strings.TrimSpace(c.BookingID) == "" {
		return domainbooking.ErrBookingNotFound
	}
	if c.End.IsZero() {
		return daterange.ErrMissingDate
	}
	return nil
}

type ExtendBookingHandler struct {
	UoWFactory uow.UoWFactory
	Pricing    policies.PricingPort
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	Now        func() time.Time
}

func (h *ExtendBookingHandler) Handle(ctx context.Context, cmd ExtendBookingCommand) (_ *dto.Booking, err error) {
	ctx, unit, done, err := uow.Acquire(ctx, h.UoWFactory, uow.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { err = done(err) }()

	booking, calendar, err := loadForExtension(ctx, unit, cmd.BookingID)
	if err != nil {
		return nil, err
	}
	end := daterange.Day(cmd.End)
	check, price, err := priceExtension(h.Pricing, booking, calendar, end)
	if err != nil {
		return nil, err
	}
	if !check.Valid {
		return nil, fmt.Errorf("%w: %s", domainbooking.ErrExtensionRejected, check.Reason)
	}

	now := clock(h.Now)
	if err := calendar.ExtendTo(string(booking.ID), end, now); err != nil {
		return nil, err
	}
	ext := domainbooking.Extension{
		ID:    uuid.NewString(),
		Range: daterange.DateRange{Start: booking.ExtensionStart(), End: end},
		Price: price,
	}
	if err := booking.Extend(ext, now); err != nil {
		return nil, err
	}

	if err := unit.Bookings().Save(ctx, booking); err != nil {
		return nil, err
	}
	if err := unit.Availability().Save(ctx, calendar); err != nil {
		return nil, err
	}
	if err := recordAll(ctx, h.Outbox, h.Encoder, booking.Drain(), calendar.Drain()); err != nil {
		return nil, err
	}

	out := dto.MapBooking(booking)
	return &out, nil
}

var _ commands.Handler[ExtendBookingCommand, *dto.Booking] = (*ExtendBookingHandler)(nil)
var _ middleware.IdempotentCommand = ExtendBookingCommand{}
