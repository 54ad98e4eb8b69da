package availability

import (
	"context"
	"time"

	"trio/internal/app/dto"
	"trio/internal/app/queries"
	"trio/internal/app/uow"
	domainavailability "trio/internal/domain/availability"
	domainlistings "trio/internal/domain/listings"
	"trio/internal/domain/shared/daterange"
)

const getCalendarKey = "availability.calendar"

// GetCalendarQuery lists blocked days for a listing. A zero From or To leaves that side open.
type GetCalendarQuery struct {
	ListingID string
	From      time.Time
	To        time.Time
}

func (q GetCalendarQuery) Key() string { return getCalendarKey }

func (q GetCalendarQuery) Validate() error {
	if !q.From.IsZero() && !q.To.IsZero() && daterange.Day(q.To).Before(daterange.Day(q.From)) {
		return daterange.ErrInvalidRange
	}
	return nil
}

type GetCalendarHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *GetCalendarHandler) Handle(ctx context.Context, q GetCalendarQuery) (_ dto.Calendar, err error) {
	ctx, unit, done, err := uow.Acquire(ctx, h.UoWFactory, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return dto.Calendar{}, err
	}
	defer func() { err = done(err) }()

	listing, err := unit.Listings().ByID(ctx, domainlistings.ListingID(q.ListingID))
	if err != nil {
		return dto.Calendar{}, err
	}
	calendar, err := unit.Availability().Calendar(ctx, listing.ID)
	if err != nil {
		return dto.Calendar{}, err
	}

	view := domainavailability.Calendar{ListingID: calendar.ListingID}
	for _, block := range calendar.Blocks {
		if !q.From.IsZero() && block.Range.End.Before(daterange.Day(q.From)) {
			continue
		}
		if !q.To.IsZero() && block.Range.Start.After(daterange.Day(q.To)) {
			continue
		}
		view.Blocks = append(view.Blocks, block)
	}
	return dto.MapCalendar(&view), nil
}

var _ queries.Handler[GetCalendarQuery, dto.Calendar] = (*GetCalendarHandler)(nil)
