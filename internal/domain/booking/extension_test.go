package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"trio/internal/domain/shared/daterange"
)

func TestCheckExtensionRange(t *testing.T) {
	conflicts := []daterange.DateRange{
		daterange.MustNew(day(10), day(12)),
		daterange.MustNew(day(20), day(20)),
	}
	tests := []struct {
		name       string
		start, end int
		want       ExtensionCheck
	}{
		{
			name:  "end before start",
			start: 5, end: 4,
			want: ExtensionCheck{Reason: "End date must be on or after the start date."},
		},
		{
			name:  "single day",
			start: 5, end: 5,
			want: ExtensionCheck{Valid: true},
		},
		{
			name:  "runs up to a conflict",
			start: 5, end: 9,
			want: ExtensionCheck{Valid: true},
		},
		{
			name:  "touches conflict start",
			start: 5, end: 10,
			want: ExtensionCheck{Reason: "Selected dates conflict with an existing booking from 2026-07-10 to 2026-07-12."},
		},
		{
			name:  "starts inside conflict",
			start: 12, end: 14,
			want: ExtensionCheck{Reason: "Selected dates conflict with an existing booking from 2026-07-10 to 2026-07-12."},
		},
		{
			name:  "between conflicts",
			start: 13, end: 19,
			want: ExtensionCheck{Valid: true},
		},
		{
			name:  "covers single day conflict",
			start: 13, end: 25,
			want: ExtensionCheck{Reason: "Selected dates conflict with an existing booking from 2026-07-20 to 2026-07-20."},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CheckExtensionRange(day(tc.start), day(tc.end), conflicts))
		})
	}
}

func TestCheckExtensionRangeReversedWinsOverConflict(t *testing.T) {
	conflicts := []daterange.DateRange{daterange.MustNew(day(1), day(30))}
	got := CheckExtensionRange(day(10), day(9), conflicts)
	assert.False(t, got.Valid)
	assert.Equal(t, reasonEndBeforeStart, got.Reason)
}

func TestCheckExtensionRangeWithoutConflicts(t *testing.T) {
	assert.True(t, CheckExtensionRange(day(1), day(28), nil).Valid)
}
