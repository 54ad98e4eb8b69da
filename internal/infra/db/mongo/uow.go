package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"trio/internal/app/uow"
	domainavailability "trio/internal/domain/availability"
	domainbooking "trio/internal/domain/booking"
	domainlistings "trio/internal/domain/listings"
)

// Factory wires Mongo transactions into the generic UnitOfWork interface.
type Factory struct {
	DB *mongo.Database

	ListingsRepo     domainlistings.ListingRepository
	AvailabilityRepo domainavailability.Repository
	BookingRepo      domainbooking.Repository
}

var ErrUnitOfWorkNotConfigured = errors.New("mongo: unit of work factory missing database")

func NewFactory(db *mongo.Database) Factory {
	return Factory{
		DB:               db,
		ListingsRepo:     NewListingRepository(db),
		AvailabilityRepo: NewCalendarRepository(db),
		BookingRepo:      NewBookingRepository(db),
	}
}

// Begin starts a MongoDB session/transaction.
func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.DB == nil {
		return nil, ErrUnitOfWorkNotConfigured
	}
	session, err := f.DB.Client().StartSession()
	if err != nil {
		return nil, err
	}
	txnOpts := options.Transaction().SetReadConcern(f.DB.ReadConcern()).SetWriteConcern(f.DB.WriteConcern())
	if opts.ReadOnly {
		txnOpts = txnOpts.SetReadPreference(readpref.Primary())
	}
	if err := session.StartTransaction(txnOpts); err != nil {
		session.EndSession(ctx)
		return nil, err
	}
	return &Unit{
		session:      session,
		listings:     f.ListingsRepo,
		availability: f.AvailabilityRepo,
		bookings:     f.BookingRepo,
	}, nil
}

type Unit struct {
	session mongo.Session

	listings     domainlistings.ListingRepository
	availability domainavailability.Repository
	bookings     domainbooking.Repository
}

func (u *Unit) Listings() domainlistings.ListingRepository {
	return u.listings
}

func (u *Unit) Availability() domainavailability.Repository {
	return u.availability
}

func (u *Unit) Bookings() domainbooking.Repository {
	return u.bookings
}

func (u *Unit) Commit(ctx context.Context) error {
	defer u.session.EndSession(ctx)
	return u.session.CommitTransaction(ctx)
}

func (u *Unit) Rollback(ctx context.Context) error {
	defer u.session.EndSession(ctx)
	return u.session.AbortTransaction(ctx)
}

// InjectContext ensures Mongo session is available in context for downstream repos.
func (u *Unit) InjectContext(ctx context.Context) context.Context {
	return mongo.NewSessionContext(ctx, u.session)
}
