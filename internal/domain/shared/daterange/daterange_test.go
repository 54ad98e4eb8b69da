package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := Parse(value)
	require.NoError(t, err)
	return d
}

func TestNewNormalizesToCalendarDays(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	start := time.Date(2026, 3, 1, 23, 30, 0, 0, loc)
	end := time.Date(2026, 3, 3, 1, 0, 0, 0, loc)

	dr, err := New(start, end)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), dr.Start)
	assert.Equal(t, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), dr.End)
	assert.Equal(t, 3, dr.Days())
}

func TestNewRejectsInvalidRanges(t *testing.T) {
	_, err := New(date(t, "2026-03-02"), date(t, "2026-03-01"))
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = New(time.Time{}, date(t, "2026-03-01"))
	assert.ErrorIs(t, err, ErrMissingDate)
}

func TestDays(t *testing.T) {
	assert.Equal(t, 1, MustNew(date(t, "2026-03-01"), date(t, "2026-03-01")).Days())
	assert.Equal(t, 31, MustNew(date(t, "2026-03-01"), date(t, "2026-03-31")).Days())
	assert.Equal(t, 0, DaysBetween(date(t, "2026-03-02"), date(t, "2026-03-01")))
}

func TestOverlapsIsInclusive(t *testing.T) {
	base := MustNew(date(t, "2026-03-10"), date(t, "2026-03-12"))
	tests := []struct {
		name  string
		other DateRange
		want  bool
	}{
		{"touching start", MustNew(date(t, "2026-03-08"), date(t, "2026-03-10")), true},
		{"touching end", MustNew(date(t, "2026-03-12"), date(t, "2026-03-14")), true},
		{"inside", MustNew(date(t, "2026-03-11"), date(t, "2026-03-11")), true},
		{"day before", MustNew(date(t, "2026-03-01"), date(t, "2026-03-09")), false},
		{"day after", MustNew(date(t, "2026-03-13"), date(t, "2026-03-20")), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, base.Overlaps(tc.other))
			assert.Equal(t, tc.want, tc.other.Overlaps(base))
		})
	}
}

func TestNextDayAndString(t *testing.T) {
	dr := MustNew(date(t, "2026-02-27"), date(t, "2026-02-28"))
	assert.Equal(t, date(t, "2026-03-01"), dr.NextDay())
	assert.Equal(t, "2026-02-27 to 2026-02-28", dr.String())
	assert.True(t, dr.ContainsDate(date(t, "2026-02-28")))
	assert.False(t, dr.ContainsDate(date(t, "2026-03-01")))
}
