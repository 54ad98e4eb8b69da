package booking

import (
	"time"

	"trio/internal/domain/listings"
	"trio/internal/domain/shared/daterange"
)

type BookingRequested struct {
	BookingID BookingID
	ListingID listings.ListingID
	RenterID  string
	Range     daterange.DateRange
	Subtotal  int64
	Currency  string
	At        time.Time
}

func (e BookingRequested) EventName() string     { return "booking.requested" }
func (e BookingRequested) AggregateID() string   { return string(e.BookingID) }
func (e BookingRequested) OccurredAt() time.Time { return e.At }

type BookingAccepted struct {
	BookingID BookingID
	At        time.Time
}

func (e BookingAccepted) EventName() string     { return "booking.accepted" }
func (e BookingAccepted) AggregateID() string   { return string(e.BookingID) }
func (e BookingAccepted) OccurredAt() time.Time { return e.At }

type BookingDeclined struct {
	BookingID BookingID
	ListingID listings.ListingID
	Reason    string
	At        time.Time
}

func (e BookingDeclined) EventName() string     { return "booking.declined" }
func (e BookingDeclined) AggregateID() string   { return string(e.BookingID) }
func (e BookingDeclined) OccurredAt() time.Time { return e.At }

type BookingCancelled struct {
	BookingID BookingID
	ListingID listings.ListingID
	Reason    string
	At        time.Time
}

func (e BookingCancelled) EventName() string     { return "booking.cancelled" }
func (e BookingCancelled) AggregateID() string   { return string(e.BookingID) }
func (e BookingCancelled) OccurredAt() time.Time { return e.At }

type BookingCompleted struct {
	BookingID BookingID
	Total     int64
	At        time.Time
}

func (e BookingCompleted) EventName() string     { return "booking.completed" }
func (e BookingCompleted) AggregateID() string   { return string(e.BookingID) }
func (e BookingCompleted) OccurredAt() time.Time { return e.At }

type BookingExtended struct {
	BookingID BookingID
	ListingID listings.ListingID
	Extension daterange.DateRange
	Amount    int64
	Total     int64
	At        time.Time
}

func (e BookingExtended) EventName() string     { return "booking.extended" }
func (e BookingExtended) AggregateID() string   { return string(e.BookingID) }
func (e BookingExtended) OccurredAt() time.Time { return e.At }
