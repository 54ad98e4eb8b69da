package listings

import (
	"context"
	"time"

	"github.com/google/uuid"

	"trio/internal/app/commands"
	"trio/internal/app/dto"
	"trio/internal/app/outbox"
	"trio/internal/app/uow"
	domainavailability "trio/internal/domain/availability"
	"trio/internal/domain/shared/daterange"
)

const blockDatesKey = "listings.block_dates"

// BlockDatesCommand lets an owner take days off the market.
type BlockDatesCommand struct {
	ListingID string
	OwnerID   string
	Start     time.Time
	End       time.Time
}

func (c BlockDatesCommand) Key() string { return blockDatesKey }

type BlockDatesHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	Now        func() time.Time
}

func (h *BlockDatesHandler) Handle(ctx context.Context, cmd BlockDatesCommand) (_ *dto.Calendar, err error) {
	ctx, unit, done, err := uow.Acquire(ctx, h.UoWFactory, uow.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { err = done(err) }()

	listing, err := ownedListing(ctx, unit, cmd.ListingID, cmd.OwnerID)
	if err != nil {
		return nil, err
	}
	dr, err := daterange.New(cmd.Start, cmd.End)
	if err != nil {
		return nil, err
	}
	calendar, err := unit.Availability().Calendar(ctx, listing.ID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if h.Now != nil {
		now = h.Now().UTC()
	}
	if err := calendar.BlockRange(dr, domainavailability.ReasonOwnerBlock, "block-"+uuid.NewString(), now); err != nil {
		return nil, err
	}
	if err := unit.Availability().Save(ctx, calendar); err != nil {
		return nil, err
	}
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, calendar.Drain()); err != nil {
		return nil, err
	}
	out := dto.MapCalendar(calendar)
	return &out, nil
}

var _ commands.Handler[BlockDatesCommand, *dto.Calendar] = (*BlockDatesHandler)(nil)
