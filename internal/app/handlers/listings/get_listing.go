package listings

import (
	"context"
	"strings"

	"trio/internal/app/dto"
	"trio/internal/app/queries"
	"trio/internal/app/uow"
	domainlistings "trio/internal/domain/listings"
)

const (
	getListingKey    = "listings.get"
	listListingsKey  = "listings.list"
	defaultListLimit = 50
	maxListLimit     = 200
)

type GetListingQuery struct {
	ListingID string
}

func (q GetListingQuery) Key() string { return getListingKey }

type GetListingHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *GetListingHandler) Handle(ctx context.Context, q GetListingQuery) (_ dto.Listing, err error) {
	ctx, unit, done, err := uow.Acquire(ctx, h.UoWFactory, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return dto.Listing{}, err
	}
	defer func() { err = done(err) }()

	listing, err := unit.Listings().ByID(ctx, domainlistings.ListingID(strings.TrimSpace(q.ListingID)))
	if err != nil {
		return dto.Listing{}, err
	}
	return dto.MapListing(listing), nil
}

type ListListingsQuery struct {
	OwnerID    string
	Category   string
	OnlyActive bool
	Limit      int
}

func (q ListListingsQuery) Key() string { return listListingsKey }

type ListListingsHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *ListListingsHandler) Handle(ctx context.Context, q ListListingsQuery) (_ dto.ListingCollection, err error) {
	ctx, unit, done, err := uow.Acquire(ctx, h.UoWFactory, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return dto.ListingCollection{}, err
	}
	defer func() { err = done(err) }()

	limit := q.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	items, err := unit.Listings().List(ctx, domainlistings.ListFilter{
		Owner:      domainlistings.OwnerID(strings.TrimSpace(q.OwnerID)),
		Category:   strings.TrimSpace(q.Category),
		OnlyActive: q.OnlyActive,
		Limit:      limit,
	})
	if err != nil {
		return dto.ListingCollection{}, err
	}
	out := make([]dto.Listing, 0, len(items))
	for _, l := range items {
		out = append(out, dto.MapListing(l))
	}
	return dto.ListingCollection{Items: out}, nil
}

var _ queries.Handler[GetListingQuery, dto.Listing] = (*GetListingHandler)(nil)
var _ queries.Handler[ListListingsQuery, dto.ListingCollection] = (*ListListingsHandler)(nil)
