package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"trio/internal/domain/listings"
	"trio/internal/domain/pricing"
	"trio/internal/domain/shared/daterange"
	"trio/internal/domain/shared/events"
	"trio/internal/domain/shared/money"
)

var (
	ErrInvalidState      = errors.New("booking: invalid state transition")
	ErrBookingNotFound   = errors.New("booking: not found")
	ErrRenterRequired    = errors.New("booking: renter id required")
	ErrSummaryMismatch   = errors.New("booking: price summary does not match the booked days")
	ErrDatesUnavailable  = errors.New("booking: dates conflict with an existing booking")
	ErrExtensionRejected = errors.New("booking: extension rejected")
	ErrStartInPast       = errors.New("booking: start date is in the past")
)

type BookingID string

type BookingState string

const (
	StatePending   BookingState = "PENDING"
	StateAccepted  BookingState = "ACCEPTED"
	StateDeclined  BookingState = "DECLINED"
	StateCancelled BookingState = "CANCELLED"
	StateCompleted BookingState = "COMPLETED"
)

// Extension is a priced follow-on range appended to a booking.
type Extension struct {
	ID        string
	Range     daterange.DateRange
	Price     pricing.ExtensionBreakdown
	CreatedAt time.Time
}

type Booking struct {
	ID              BookingID
	ListingID       listings.ListingID
	RenterID        string
	Range           daterange.DateRange
	DailyPriceCents int64
	Currency        string
	Addons          []pricing.Addon
	Summary         pricing.FeeBreakdown
	Extensions      []Extension
	State           BookingState
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Version         int64
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id BookingID) (*Booking, error)
	Save(ctx context.Context, booking *Booking) error
	ListByRenter(ctx context.Context, renterID string) ([]*Booking, error)
	ListByListing(ctx context.Context, listingID listings.ListingID) ([]*Booking, error)
}

type CreateParams struct {
	ID              BookingID
	ListingID       listings.ListingID
	RenterID        string
	Range           daterange.DateRange
	DailyPriceCents int64
	Currency        string
	Addons          []pricing.Addon
	Summary         pricing.FeeBreakdown
	CreatedAt       time.Time
}

func NewBooking(params CreateParams) (*Booking, error) {
	if params.RenterID == "" {
		return nil, ErrRenterRequired
	}
	if err := params.Range.Validate(); err != nil {
		return nil, err
	}
	if params.Summary.TotalDays != params.Range.Days() || params.Summary.DailyPriceCents != params.DailyPriceCents {
		return nil, ErrSummaryMismatch
	}
	now := params.CreatedAt.UTC()
	b := &Booking{
		ID:              params.ID,
		ListingID:       params.ListingID,
		RenterID:        params.RenterID,
		Range:           params.Range,
		DailyPriceCents: params.DailyPriceCents,
		Currency:        params.Currency,
		Addons:          append([]pricing.Addon(nil), params.Addons...),
		Summary:         params.Summary.Copy(),
		State:           StatePending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	b.Record(BookingRequested{
		BookingID: b.ID,
		ListingID: b.ListingID,
		RenterID:  b.RenterID,
		Range:     b.Range,
		Subtotal:  b.Summary.Subtotal,
		Currency:  b.Currency,
		At:        now,
	})
	return b, nil
}

// ValidateDateRange checks a requested range against the current day.
func ValidateDateRange(r daterange.DateRange, now time.Time) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.Start.Before(daterange.Day(now.UTC())) {
		return ErrStartInPast
	}
	return nil
}

// Total is the initial subtotal plus every extension.
func (b *Booking) Total() int64 {
	total := b.Summary.Subtotal
	for _, ext := range b.Extensions {
		total += ext.Price.Total
	}
	return total
}

// Blocking reports whether the booking still holds its dates.
func (b *Booking) Blocking() bool {
	switch b.State {
	case StatePending, StateAccepted:
		return true
	default:
		return false
	}
}

// ExtensionStart is the only allowed first day of an extension: the day after the
// current end date.
func (b *Booking) ExtensionStart() time.Time {
	return b.Range.NextDay()
}

// NonConsumableAddonDailyTotal sums one unit of every priced, non-consumable addon.
func (b *Booking) NonConsumableAddonDailyTotal() int64 {
	var total int64
	for _, addon := range b.Addons {
		if addon.Consumable || addon.Free() {
			continue
		}
		total += addon.Price()
	}
	return total
}

// Extend appends an already priced extension and moves the end date.
func (b *Booking) Extend(ext Extension, now time.Time) error {
	if !b.Blocking() {
		return ErrInvalidState
	}
	if !ext.Range.Start.Equal(b.ExtensionStart()) {
		return fmt.Errorf("%w: extension must start on %s", ErrExtensionRejected, b.ExtensionStart().Format(daterange.Layout))
	}
	if ext.Price.TotalDays != ext.Range.Days() {
		return ErrSummaryMismatch
	}
	if _, err := money.SumCents(b.Total(), ext.Price.Total); err != nil {
		return fmt.Errorf("%w: %w", ErrExtensionRejected, err)
	}
	ext.CreatedAt = now.UTC()
	b.Extensions = append(b.Extensions, ext)
	b.Range = b.Range.WithEnd(ext.Range.End)
	b.UpdatedAt = now.UTC()
	b.Record(BookingExtended{
		BookingID: b.ID,
		ListingID: b.ListingID,
		Extension: ext.Range,
		Amount:    ext.Price.Total,
		Total:     b.Total(),
		At:        b.UpdatedAt,
	})
	return nil
}

func (b *Booking) Accept(now time.Time) error {
	if b.State != StatePending {
		return ErrInvalidState
	}
	b.State = StateAccepted
	b.UpdatedAt = now.UTC()
	b.Record(BookingAccepted{BookingID: b.ID, At: b.UpdatedAt})
	return nil
}

func (b *Booking) Decline(reason string, now time.Time) error {
	if b.State != StatePending {
		return ErrInvalidState
	}
	b.State = StateDeclined
	b.UpdatedAt = now.UTC()
	b.Record(BookingDeclined{BookingID: b.ID, ListingID: b.ListingID, Reason: reason, At: b.UpdatedAt})
	return nil
}

func (b *Booking) Cancel(reason string, now time.Time) error {
	if !b.Blocking() {
		return ErrInvalidState
	}
	b.State = StateCancelled
	b.UpdatedAt = now.UTC()
	b.Record(BookingCancelled{BookingID: b.ID, ListingID: b.ListingID, Reason: reason, At: b.UpdatedAt})
	return nil
}

func (b *Booking) Complete(now time.Time) error {
	if b.State != StateAccepted {
		return ErrInvalidState
	}
	b.State = StateCompleted
	b.UpdatedAt = now.UTC()
	b.Record(BookingCompleted{BookingID: b.ID, Total: b.Total(), At: b.UpdatedAt})
	return nil
}
