package availability

import (
	"context"
	"errors"
	"sort"
	"time"

	"trio/internal/domain/listings"
	"trio/internal/domain/shared/daterange"
	"trio/internal/domain/shared/events"
)

var (
	ErrOverlappingRange = errors.New("availability: range overlaps with an existing block")
	ErrRangeNotFound    = errors.New("availability: range not found")
	ErrShrinkNotAllowed = errors.New("availability: block can only be extended forward")
)

type BlockReason string

const (
	ReasonBooking    BlockReason = "BOOKING"
	ReasonOwnerBlock BlockReason = "OWNER_BLOCK"
)

// Block marks an inclusive range of days as unavailable.
type Block struct {
	Range     daterange.DateRange
	Reason    BlockReason
	Reference string
	CreatedAt time.Time
}

// Calendar tracks the days a listing cannot be rented.
type Calendar struct {
	ListingID listings.ListingID
	Blocks    []Block
	Version   int64
	events.EventRecorder
}

type Repository interface {
	Calendar(ctx context.Context, id listings.ListingID) (*Calendar, error)
	Save(ctx context.Context, calendar *Calendar) error
}

func NewCalendar(id listings.ListingID) *Calendar {
	return &Calendar{ListingID: id}
}

// Ranges returns every blocked range except the one held by exclude, ordered by start day.
func (c *Calendar) Ranges(exclude string) []daterange.DateRange {
	out := make([]daterange.DateRange, 0, len(c.Blocks))
	for _, block := range c.Blocks {
		if exclude != "" && block.Reference == exclude {
			continue
		}
		out = append(out, block.Range)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Start.Equal(out[j].Start) {
			return out[i].End.Before(out[j].End)
		}
		return out[i].Start.Before(out[j].Start)
	})
	return out
}

// Conflicts lists blocks overlapping r, ignoring the block held by exclude.
func (c *Calendar) Conflicts(r daterange.DateRange, exclude string) []Block {
	var out []Block
	for _, block := range c.Blocks {
		if exclude != "" && block.Reference == exclude {
			continue
		}
		if block.Range.Overlaps(r) {
			out = append(out, block)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Range.Start.Before(out[j].Range.Start) })
	return out
}

func (c *Calendar) CanReserve(r daterange.DateRange) bool {
	return len(c.Conflicts(r, "")) == 0
}

func (c *Calendar) Reserve(r daterange.DateRange, bookingID string, now time.Time) error {
	return c.BlockRange(r, ReasonBooking, bookingID, now)
}

func (c *Calendar) BlockRange(r daterange.DateRange, reason BlockReason, reference string, now time.Time) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if reason == "" {
		reason = ReasonOwnerBlock
	}
	if !c.CanReserve(r) {
		return ErrOverlappingRange
	}
	c.Blocks = append(c.Blocks, Block{Range: r, Reason: reason, Reference: reference, CreatedAt: now.UTC()})
	c.Record(CalendarBlocked{ListingID: c.ListingID, Range: r, Reason: reason, Reference: reference, At: now.UTC()})
	return nil
}

// ExtendTo moves the end of the block held by reference to newEnd.
func (c *Calendar) ExtendTo(reference string, newEnd time.Time, now time.Time) error {
	idx := c.indexOf(reference)
	if idx == -1 {
		return ErrRangeNotFound
	}
	current := c.Blocks[idx].Range
	newEnd = daterange.Day(newEnd)
	if !newEnd.After(current.End) {
		return ErrShrinkNotAllowed
	}
	added := daterange.DateRange{Start: current.NextDay(), End: newEnd}
	if len(c.Conflicts(added, reference)) > 0 {
		return ErrOverlappingRange
	}
	c.Blocks[idx].Range = current.WithEnd(newEnd)
	c.Record(CalendarBlocked{ListingID: c.ListingID, Range: added, Reason: c.Blocks[idx].Reason, Reference: reference, At: now.UTC()})
	return nil
}

func (c *Calendar) Release(reference string, now time.Time) error {
	idx := c.indexOf(reference)
	if idx == -1 {
		return ErrRangeNotFound
	}
	removed := c.Blocks[idx]
	c.Blocks = append(c.Blocks[:idx], c.Blocks[idx+1:]...)
	c.Record(CalendarReleased{ListingID: c.ListingID, Range: removed.Range, Reason: removed.Reason, Reference: reference, At: now.UTC()})
	return nil
}

func (c *Calendar) indexOf(reference string) int {
	for i, block := range c.Blocks {
		if block.Reference == reference {
			return i
		}
	}
	return -1
}
