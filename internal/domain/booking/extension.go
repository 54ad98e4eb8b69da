package booking

import (
	"fmt"
	"time"

	"trio/internal/domain/shared/daterange"
)

const reasonEndBeforeStart = "End date must be on or after the start date."

// ExtensionCheck is the user-facing outcome of validating an extension range.
type ExtensionCheck struct {
	Valid  bool
	Reason string
}

// CheckExtensionRange validates a candidate end date for an extension that must begin
// on requiredStart. The caller derives requiredStart from the original end date
// (see Booking.ExtensionStart). The first failing rule wins.
func CheckExtensionRange(requiredStart, candidateEnd time.Time, conflicts []daterange.DateRange) ExtensionCheck {
	start := daterange.Day(requiredStart)
	end := daterange.Day(candidateEnd)
	if end.Before(start) {
		return ExtensionCheck{Reason: reasonEndBeforeStart}
	}
	for _, c := range conflicts {
		if !start.After(c.End) && !end.Before(c.Start) {
			return ExtensionCheck{Reason: conflictReason(c)}
		}
	}
	return ExtensionCheck{Valid: true}
}

func conflictReason(c daterange.DateRange) string {
	return fmt.Sprintf("Selected dates conflict with an existing booking from %s to %s.",
		c.Start.Format(daterange.Layout), c.End.Format(daterange.Layout))
}
