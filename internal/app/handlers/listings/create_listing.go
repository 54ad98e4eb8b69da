package listings

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"trio/internal/app/commands"
	"trio/internal/app/dto"
	"trio/internal/app/outbox"
	"trio/internal/app/uow"
	domainlistings "trio/internal/domain/listings"
	domainpricing "trio/internal/domain/pricing"
)

const createListingKey = "listings.create"

type AddonInput struct {
	ID         string
	Item       string
	Style      *string
	PriceCents *int64
	Consumable bool
}

type CreateListingCommand struct {
	OwnerID         string
	Title           string
	Description     string
	Category        string
	Location        string
	DailyPriceCents int64
	Currency        string
	Addons          []AddonInput
}

func (c CreateListingCommand) Key() string { return createListingKey }

func (c CreateListingCommand) Validate() error {
	if strings.TrimSpace(c.OwnerID) == "" {
		return domainlistings.ErrOwnerRequired
	}
	if strings.TrimSpace(c.Title) == "" {
		return domainlistings.ErrTitleRequired
	}
	return nil
}

type CreateListingHandler struct {
	UoWFactory      uow.UoWFactory
	Outbox          outbox.Outbox
	Encoder         outbox.EventEncoder
	DefaultCurrency string
	Now             func() time.Time
}

func (h *CreateListingHandler) Handle(ctx context.Context, cmd CreateListingCommand) (_ *dto.Listing, err error) {
	ctx, unit, done, err := uow.Acquire(ctx, h.UoWFactory, uow.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { err = done(err) }()

	currency := cmd.Currency
	if currency == "" {
		currency = h.DefaultCurrency
	}
	addons := make([]domainpricing.Addon, 0, len(cmd.Addons))
	for _, in := range cmd.Addons {
		id := strings.TrimSpace(in.ID)
		if id == "" {
			id = uuid.NewString()
		}
		addons = append(addons, domainpricing.Addon{
			ID:         domainpricing.AddonID(id),
			Item:       in.Item,
			Style:      in.Style,
			PriceCents: in.PriceCents,
			Consumable: in.Consumable,
		})
	}

	listing, err := domainlistings.NewListing(domainlistings.CreateListingParams{
		ID:              domainlistings.ListingID(uuid.NewString()),
		Owner:           domainlistings.OwnerID(strings.TrimSpace(cmd.OwnerID)),
		Title:           cmd.Title,
		Description:     cmd.Description,
		Category:        cmd.Category,
		Location:        cmd.Location,
		DailyPriceCents: cmd.DailyPriceCents,
		Currency:        currency,
		Addons:          addons,
		Now:             h.now(),
	})
	if err != nil {
		return nil, err
	}
	if err := unit.Listings().Save(ctx, listing); err != nil {
		return nil, err
	}
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, listing.Drain()); err != nil {
		return nil, err
	}

	out := dto.MapListing(listing)
	return &out, nil
}

func (h *CreateListingHandler) now() time.Time {
	if h.Now != nil {
		return h.Now().UTC()
	}
	return time.Now().UTC()
}

const setListingStateKey = "listings.state"

const (
	ActionSuspend  = "suspend"
	ActionActivate = "activate"
)

var (
	ErrListingNotOwned = errors.New("listings: listing not owned by caller")
	ErrUnknownAction   = errors.New("listings: unknown action")
)

// SetListingStateCommand suspends or reactivates a listing on behalf of its owner.
type SetListingStateCommand struct {
	ListingID string
	OwnerID   string
	Action    string
	Reason    string
}

func (c SetListingStateCommand) Key() string { return setListingStateKey }

func (c SetListingStateCommand) Validate() error {
	switch c.Action {
	case ActionSuspend, ActionActivate:
		return nil
	default:
		return ErrUnknownAction
	}
}

type SetListingStateHandler struct {
	UoWFactory uow.UoWFactory
	Outbox     outbox.Outbox
	Encoder    outbox.EventEncoder
	Now        func() time.Time
}

func (h *SetListingStateHandler) Handle(ctx context.Context, cmd SetListingStateCommand) (_ *dto.Listing, err error) {
	ctx, unit, done, err := uow.Acquire(ctx, h.UoWFactory, uow.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { err = done(err) }()

	listing, err := ownedListing(ctx, unit, cmd.ListingID, cmd.OwnerID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if h.Now != nil {
		now = h.Now().UTC()
	}
	switch cmd.Action {
	case ActionSuspend:
		err = listing.Suspend(cmd.Reason, now)
	case ActionActivate:
		err = listing.Activate(now)
	}
	if err != nil {
		return nil, err
	}
	if err := unit.Listings().Save(ctx, listing); err != nil {
		return nil, err
	}
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, listing.Drain()); err != nil {
		return nil, err
	}
	out := dto.MapListing(listing)
	return &out, nil
}

func ownedListing(ctx context.Context, unit uow.UnitOfWork, listingID, ownerID string) (*domainlistings.Listing, error) {
	listing, err := unit.Listings().ByID(ctx, domainlistings.ListingID(listingID))
	if err != nil {
		return nil, err
	}
	if listing.Owner != domainlistings.OwnerID(strings.TrimSpace(ownerID)) {
		return nil, ErrListingNotOwned
	}
	return listing, nil
}

var _ commands.Handler[CreateListingCommand, *dto.Listing] = (*CreateListingHandler)(nil)
var _ commands.Handler[SetListingStateCommand, *dto.Listing] = (*SetListingStateHandler)(nil)
