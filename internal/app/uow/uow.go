package uow

import (
	"context"

	domainavailability "trio/internal/domain/availability"
	domainbooking "trio/internal/domain/booking"
	domainlistings "trio/internal/domain/listings"
)

// UnitOfWork coordinates repositories inside a transaction boundary.
type UnitOfWork interface {
	Listings() domainlistings.ListingRepository
	Availability() domainavailability.Repository
	Bookings() domainbooking.Repository

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// UoWFactory starts unit of work instances.
type UoWFactory interface {
	Begin(ctx context.Context, opts TxOptions) (UnitOfWork, error)
}

// TxOptions configure transaction boundaries.
type TxOptions struct {
	ReadOnly bool
}
