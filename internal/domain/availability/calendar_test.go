package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trio/internal/domain/booking"
	"trio/internal/domain/shared/daterange"
)

func d(day int) time.Time {
	return time.Date(2026, 6, day, 0, 0, 0, 0, time.UTC)
}

func TestReserveRejectsOverlaps(t *testing.T) {
	cal := NewCalendar("lst-1")
	now := d(1)

	require.NoError(t, cal.Reserve(daterange.MustNew(d(10), d(12)), "bk-1", now))
	assert.ErrorIs(t, cal.Reserve(daterange.MustNew(d(12), d(14)), "bk-2", now), ErrOverlappingRange)
	require.NoError(t, cal.Reserve(daterange.MustNew(d(13), d(14)), "bk-2", now))
	assert.Len(t, cal.PendingEvents(), 2)
}

func TestConflictsIgnoresExcludedReference(t *testing.T) {
	cal := NewCalendar("lst-1")
	require.NoError(t, cal.Reserve(daterange.MustNew(d(10), d(12)), "bk-1", d(1)))
	require.NoError(t, cal.BlockRange(daterange.MustNew(d(20), d(21)), "", "maintenance", d(1)))

	window := daterange.MustNew(d(11), d(20))
	assert.Len(t, cal.Conflicts(window, ""), 2)
	conflicts := cal.Conflicts(window, "bk-1")
	require.Len(t, conflicts, 1)
	assert.Equal(t, ReasonOwnerBlock, conflicts[0].Reason)
	assert.Len(t, cal.Ranges("bk-1"), 1)
}

func TestRangesAreOrderedByStart(t *testing.T) {
	cal := NewCalendar("lst-1")
	require.NoError(t, cal.Reserve(daterange.MustNew(d(20), d(22)), "bk-2", d(1)))
	require.NoError(t, cal.BlockRange(daterange.MustNew(d(8), d(9)), "", "maintenance", d(1)))
	require.NoError(t, cal.Reserve(daterange.MustNew(d(14), d(16)), "bk-3", d(1)))
	require.NoError(t, cal.Reserve(daterange.MustNew(d(5), d(6)), "bk-1", d(1)))

	ranges := cal.Ranges("bk-1")
	require.Len(t, ranges, 3)
	assert.Equal(t, d(8), ranges[0].Start)
	assert.Equal(t, d(14), ranges[1].Start)
	assert.Equal(t, d(20), ranges[2].Start)

	conflicts := cal.Conflicts(daterange.MustNew(d(7), d(21)), "")
	require.Len(t, conflicts, 3)
	assert.Equal(t, "maintenance", conflicts[0].Reference)

	check := booking.CheckExtensionRange(d(7), d(21), ranges)
	assert.False(t, check.Valid)
	assert.Equal(t, "Selected dates conflict with an existing booking from 2026-06-08 to 2026-06-09.", check.Reason)
}

func TestExtendTo(t *testing.T) {
	cal := NewCalendar("lst-1")
	require.NoError(t, cal.Reserve(daterange.MustNew(d(10), d(12)), "bk-1", d(1)))
	require.NoError(t, cal.Reserve(daterange.MustNew(d(16), d(18)), "bk-2", d(1)))

	require.NoError(t, cal.ExtendTo("bk-1", d(15), d(2)))
	assert.Equal(t, d(15), cal.Blocks[0].Range.End)

	assert.ErrorIs(t, cal.ExtendTo("bk-1", d(16), d(2)), ErrOverlappingRange)
	assert.ErrorIs(t, cal.ExtendTo("bk-1", d(14), d(2)), ErrShrinkNotAllowed)
	assert.ErrorIs(t, cal.ExtendTo("missing", d(30), d(2)), ErrRangeNotFound)
}

func TestRelease(t *testing.T) {
	cal := NewCalendar("lst-1")
	require.NoError(t, cal.Reserve(daterange.MustNew(d(10), d(12)), "bk-1", d(1)))
	require.NoError(t, cal.Release("bk-1", d(2)))
	assert.True(t, cal.CanReserve(daterange.MustNew(d(10), d(12))))
	assert.ErrorIs(t, cal.Release("bk-1", d(2)), ErrRangeNotFound)
}
