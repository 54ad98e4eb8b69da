package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"trio/internal/app/commands"
	"trio/internal/app/dto"
	"trio/internal/app/outbox"
	"trio/internal/app/uow"
	domainavailability "trio/internal/domain/availability"
	domainbooking "trio/internal/domain/booking"
)

const transitionBookingKey = "booking.transition"

const (
	ActionAccept   = "accept"
	ActionDecline  = "decline"
	ActionCancel   = "cancel"
	ActionComplete = "complete"
)

var ErrUnknownAction = errors.New("booking: unknown action")

type TransitionBookingCommand struct {
	BookingID string
	Action    string
	Reason    string
}

func (c TransitionBookingCommand) Key() string { return transitionBookingKey }

func (c TransitionBookingCommand) Validate() error {
	if strings.TrimSpace(c.BookingID) == "" {
		return domainbooking.ErrBookingNotFound
	}
	switch c.Action {
	case ActionAccept, ActionDecline, ActionCancel, ActionComplete:
		return nil
	default:
		return ErrUnknownAction
	}
}

type TransitionBookingHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	Now        func() time.Time
}

func (h *TransitionBookingHandler) Handle(ctx context.Context, cmd TransitionBookingCommand) (_ *dto.Booking, err error) {
	ctx, unit, done, err := uow.Acquire(ctx, h.UoWFactory, uow.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { err = done(err) }()

	booking, err := unit.Bookings().ByID(ctx, domainbooking.BookingID(strings.TrimSpace(cmd.BookingID)))
	if err != nil {
		return nil, err
	}
	now := clock(h.Now)
	reason := strings.TrimSpace(cmd.Reason)
	switch cmd.Action {
	case ActionAccept:
		err = booking.Accept(now)
	case ActionDecline:
		err = booking.Decline(reason, now)
	case ActionCancel:
		err = booking.Cancel(reason, now)
	case ActionComplete:
		err = booking.Complete(now)
	}
	if err != nil {
		return nil, err
	}

	var calendar *domainavailability.Calendar
	if !booking.Blocking() && cmd.Action != ActionComplete {
		calendar, err = unit.Availability().Calendar(ctx, booking.ListingID)
		if err != nil {
			return nil, err
		}
		if err := calendar.Release(string(booking.ID), now); err != nil && !errors.Is(err, domainavailability.ErrRangeNotFound) {
			return nil, err
		}
	}

	if err := unit.Bookings().Save(ctx, booking); err != nil {
		return nil, err
	}
	batches := booking.Drain()
	if calendar != nil {
		if err := unit.Availability().Save(ctx, calendar); err != nil {
			return nil, err
		}
		batches = append(batches, calendar.Drain()...)
	}
	if err := recordAll(ctx, h.Outbox, h.Encoder, batches); err != nil {
		return nil, err
	}

	out := dto.MapBooking(booking)
	return &out, nil
}

var _ commands.Handler[TransitionBookingCommand, *dto.Booking] = (*TransitionBookingHandler)(nil)
