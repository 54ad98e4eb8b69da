package listings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"trio/internal/domain/pricing"
	"trio/internal/domain/shared/events"
	"trio/internal/domain/shared/money"
)

var (
	ErrTitleRequired     = errors.New("listings: title is required")
	ErrOwnerRequired     = errors.New("listings: owner is required")
	ErrDailyPrice        = errors.New("listings: daily price must be non-negative")
	ErrListingNotFound   = errors.New("listings: not found")
	ErrListingInactive   = errors.New("listings: listing is not available for booking")
	ErrAddonNotFound     = errors.New("listings: addon not found")
	ErrDuplicateAddon    = errors.New("listings: duplicate addon id")
	ErrInvalidState      = errors.New("listings: invalid state transition")
	ErrInvalidSelection  = errors.New("listings: addon quantity must be non-negative")
	ErrAddonItemRequired = errors.New("listings: addon item name is required")
)

type ListingID string
type OwnerID string

type ListingState string

const (
	ListingActive    ListingState = "ACTIVE"
	ListingSuspended ListingState = "SUSPENDED"
)

// Listing is an item offered for rent by its owner at a daily price.
type Listing struct {
	ID              ListingID
	Owner           OwnerID
	Title           string
	Description     string
	Category        string
	Location        string
	DailyPriceCents int64
	Currency        string
	Addons          []pricing.Addon
	State           ListingState
	Version         int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
	events.EventRecorder
}

type ListFilter struct {
	Owner      OwnerID
	Category   string
	OnlyActive bool
	Limit      int
}

type ListingRepository interface {
	ByID(ctx context.Context, id ListingID) (*Listing, error)
	Save(ctx context.Context, listing *Listing) error
	List(ctx context.Context, filter ListFilter) ([]*Listing, error)
}

type CreateListingParams struct {
	ID              ListingID
	Owner           OwnerID
	Title           string
	Description     string
	Category        string
	Location        string
	DailyPriceCents int64
	Currency        string
	Addons          []pricing.Addon
	Now             time.Time
}

func NewListing(params CreateListingParams) (*Listing, error) {
	if strings.TrimSpace(params.Title) == "" {
		return nil, ErrTitleRequired
	}
	if params.Owner == "" {
		return nil, ErrOwnerRequired
	}
	if params.DailyPriceCents < 0 {
		return nil, ErrDailyPrice
	}
	currency := params.Currency
	if currency == "" {
		currency = "USD"
	}
	if _, err := money.New(params.DailyPriceCents, currency); err != nil {
		return nil, err
	}
	addons, err := normalizeAddons(params.Addons)
	if err != nil {
		return nil, err
	}
	now := params.Now.UTC()
	l := &Listing{
		ID:              params.ID,
		Owner:           params.Owner,
		Title:           strings.TrimSpace(params.Title),
		Description:     params.Description,
		Category:        params.Category,
		Location:        params.Location,
		DailyPriceCents: params.DailyPriceCents,
		Currency:        strings.ToUpper(currency),
		Addons:          addons,
		State:           ListingActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	addonIDs := make([]pricing.AddonID, 0, len(addons))
	for _, addon := range addons {
		addonIDs = append(addonIDs, addon.ID)
	}
	l.Record(ListingCreatedEvent{
		ListingID:       l.ID,
		Owner:           l.Owner,
		DailyPriceCents: l.DailyPriceCents,
		Currency:        l.Currency,
		AddonIDs:        addonIDs,
		At:              now,
	})
	return l, nil
}

func normalizeAddons(in []pricing.Addon) ([]pricing.Addon, error) {
	seen := make(map[pricing.AddonID]struct{}, len(in))
	out := make([]pricing.Addon, 0, len(in))
	for _, addon := range in {
		if strings.TrimSpace(addon.Item) == "" {
			return nil, ErrAddonItemRequired
		}
		if err := addon.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[addon.ID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAddon, addon.ID)
		}
		seen[addon.ID] = struct{}{}
		addon.Qty = 0
		out = append(out, addon)
	}
	return out, nil
}

func (l *Listing) Bookable() bool {
	return l.State == ListingActive
}

func (l *Listing) Addon(id pricing.AddonID) (pricing.Addon, bool) {
	for _, addon := range l.Addons {
		if addon.ID == id {
			return addon, true
		}
	}
	return pricing.Addon{}, false
}

// AddonSelection is a renter's choice of an addon and how many of it.
type AddonSelection struct {
	ID  pricing.AddonID
	Qty int
}

// SelectAddons resolves selections against the listing's catalog, carrying the chosen quantity.
// Each addon may be selected once; quantity is how more units are requested.
func (l *Listing) SelectAddons(selections []AddonSelection) ([]pricing.Addon, error) {
	out := make([]pricing.Addon, 0, len(selections))
	seen := make(map[pricing.AddonID]struct{}, len(selections))
	for _, sel := range selections {
		if sel.Qty < 0 {
			return nil, fmt.Errorf("%w: %s", ErrInvalidSelection, sel.ID)
		}
		if _, dup := seen[sel.ID]; dup {
			return nil, fmt.Errorf("%w: %s selected more than once", ErrInvalidSelection, sel.ID)
		}
		seen[sel.ID] = struct{}{}
		addon, ok := l.Addon(sel.ID)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrAddonNotFound, sel.ID)
		}
		addon.Qty = sel.Qty
		out = append(out, addon)
	}
	return out, nil
}

func (l *Listing) Suspend(reason string, now time.Time) error {
	if l.State != ListingActive {
		return ErrInvalidState
	}
	l.State = ListingSuspended
	l.UpdatedAt = now.UTC()
	l.Record(ListingSuspendedEvent{ListingID: l.ID, Reason: reason, At: l.UpdatedAt})
	return nil
}

func (l *Listing) Activate(now time.Time) error {
	if l.State != ListingSuspended {
		return ErrInvalidState
	}
	l.State = ListingActive
	l.UpdatedAt = now.UTC()
	l.Record(ListingActivatedEvent{ListingID: l.ID, At: l.UpdatedAt})
	return nil
}
