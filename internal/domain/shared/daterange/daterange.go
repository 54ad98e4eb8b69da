package daterange

import (
	"errors"
	"fmt"
	"time"
)

const (
	// Layout is the calendar-day format used on the wire and in messages.
	Layout = "2006-01-02"
	day    = 24 * time.Hour
)

var (
	ErrMissingDate  = errors.New("daterange: start and end dates are required")
	ErrInvalidRange = errors.New("daterange: end date must be on or after the start date")
)

// DateRange is an inclusive interval of calendar days [Start, End].
// Both bounds are normalized to midnight UTC of their calendar date.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Day truncates t to its calendar date, keeping the date as observed in t's location.
func Day(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Parse reads a YYYY-MM-DD date.
func Parse(value string) (time.Time, error) {
	t, err := time.Parse(Layout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("daterange: invalid date %q: %w", value, err)
	}
	return t, nil
}

func New(start, end time.Time) (DateRange, error) {
	dr := DateRange{Start: Day(start), End: Day(end)}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

// MustNew is New for fixtures and tests.
func MustNew(start, end time.Time) DateRange {
	dr, err := New(start, end)
	if err != nil {
		panic(err)
	}
	return dr
}

func (dr DateRange) Validate() error {
	if dr.Start.IsZero() || dr.End.IsZero() {
		return ErrMissingDate
	}
	if dr.End.Before(dr.Start) {
		return ErrInvalidRange
	}
	return nil
}

// Days counts calendar days including both ends.
func (dr DateRange) Days() int {
	return DaysBetween(dr.Start, dr.End)
}

// DaysBetween returns end - start in days plus one. The result is below one when end
// precedes start.
func DaysBetween(start, end time.Time) int {
	return int(Day(end).Sub(Day(start))/day) + 1
}

// Overlaps uses inclusive bounds on both ranges.
func (dr DateRange) Overlaps(other DateRange) bool {
	return !dr.Start.After(other.End) && !dr.End.Before(other.Start)
}

func (dr DateRange) ContainsDate(t time.Time) bool {
	d := Day(t)
	return !d.Before(dr.Start) && !d.After(dr.End)
}

// NextDay is the first calendar day after the range.
func (dr DateRange) NextDay() time.Time {
	return dr.End.AddDate(0, 0, 1)
}

// WithEnd returns a copy that ends on the given day.
func (dr DateRange) WithEnd(end time.Time) DateRange {
	return DateRange{Start: dr.Start, End: Day(end)}
}

func (dr DateRange) String() string {
	return dr.Start.Format(Layout) + " to " + dr.End.Format(Layout)
}
