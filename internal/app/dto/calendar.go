package dto

import (
	domainavailability "trio/internal/domain/availability"
	"trio/internal/domain/shared/daterange"
)

type CalendarBlock struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
	Reference string `json:"reference,omitempty"`
}

type Calendar struct {
	ListingID string          `json:"listing_id"`
	Blocks    []CalendarBlock `json:"blocks"`
}

func MapCalendar(c *domainavailability.Calendar) Calendar {
	blocks := make([]CalendarBlock, 0, len(c.Blocks))
	for _, block := range c.Blocks {
		blocks = append(blocks, CalendarBlock{
			StartDate: block.Range.Start.Format(daterange.Layout),
			EndDate:   block.Range.End.Format(daterange.Layout),
			Reason:    string(block.Reason),
			Reference: block.Reference,
		})
	}
	return Calendar{ListingID: string(c.ListingID), Blocks: blocks}
}
