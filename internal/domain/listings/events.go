package listings

import (
	"time"

	"trio/internal/domain/pricing"
)

// ListingCreatedEvent announces a rentable listing together with the price and addon
// catalog bookings will be quoted against.
type ListingCreatedEvent struct {
	ListingID       ListingID
	Owner           OwnerID
	DailyPriceCents int64
	Currency        string
	AddonIDs        []pricing.AddonID
	At              time.Time
}

func (e ListingCreatedEvent) EventName() string     { return "listing.created" }
func (e ListingCreatedEvent) AggregateID() string   { return string(e.ListingID) }
func (e ListingCreatedEvent) OccurredAt() time.Time { return e.At }

// ListingActivatedEvent is recorded when a suspended listing accepts bookings again.
type ListingActivatedEvent struct {
	ListingID ListingID
	At        time.Time
}

func (e ListingActivatedEvent) EventName() string     { return "listing.activated" }
func (e ListingActivatedEvent) AggregateID() string   { return string(e.ListingID) }
func (e ListingActivatedEvent) OccurredAt() time.Time { return e.At }

// ListingSuspendedEvent is recorded when a listing stops taking booking requests.
// Existing bookings and their calendar blocks are left as they are.
type ListingSuspendedEvent struct {
	ListingID ListingID
	Reason    string
	At        time.Time
}

func (e ListingSuspendedEvent) EventName() string     { return "listing.suspended" }
func (e ListingSuspendedEvent) AggregateID() string   { return string(e.ListingID) }
func (e ListingSuspendedEvent) OccurredAt() time.Time { return e.At }
