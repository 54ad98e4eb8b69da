package availability

import (
	"time"

	"trio/internal/domain/listings"
	"trio/internal/domain/shared/daterange"
)

type CalendarBlocked struct {
	ListingID listings.ListingID
	Range     daterange.DateRange
	Reason    BlockReason
	Reference string
	At        time.Time
}

func (e CalendarBlocked) EventName() string     { return "calendar.blocked" }
func (e CalendarBlocked) AggregateID() string   { return string(e.ListingID) }
func (e CalendarBlocked) OccurredAt() time.Time { return e.At }

type CalendarReleased struct {
	ListingID listings.ListingID
	Range     daterange.DateRange
	Reason    BlockReason
	Reference string
	At        time.Time
}

func (e CalendarReleased) EventName() string     { return "calendar.released" }
func (e CalendarReleased) AggregateID() string   { return string(e.ListingID) }
func (e CalendarReleased) OccurredAt() time.Time { return e.At }
