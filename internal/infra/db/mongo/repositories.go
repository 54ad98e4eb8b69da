package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainavailability "trio/internal/domain/availability"
	domainbooking "trio/internal/domain/booking"
	domainlistings "trio/internal/domain/listings"
)

var ErrConcurrentUpdate = errors.New("mongo: concurrent update detected")

// versionedUpsert writes doc only when the stored version still equals version.
func versionedUpsert(ctx context.Context, col *mongo.Collection, id string, version int64, doc any) error {
	filter := bson.M{"_id": id, "version": version}
	res, err := col.UpdateOne(ctx, filter, bson.M{"$set": doc}, options.Update().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	return nil
}

type ListingRepository struct {
	col *mongo.Collection
}

func NewListingRepository(db *mongo.Database) *ListingRepository {
	return &ListingRepository{col: db.Collection(listingsCollection)}
}

func (r *ListingRepository) ByID(ctx context.Context, id domainlistings.ListingID) (*domainlistings.Listing, error) {
	var doc listingDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainlistings.ErrListingNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *ListingRepository) Save(ctx context.Context, l *domainlistings.Listing) error {
	doc := newListingDocument(l)
	doc.Version = l.Version + 1
	if err := versionedUpsert(ctx, r.col, doc.ID, l.Version, doc); err != nil {
		return err
	}
	l.Version = doc.Version
	return nil
}

func (r *ListingRepository) List(ctx context.Context, filter domainlistings.ListFilter) ([]*domainlistings.Listing, error) {
	query := bson.M{}
	if filter.Owner != "" {
		query["owner"] = string(filter.Owner)
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.OnlyActive {
		query["state"] = string(domainlistings.ListingActive)
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}
	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	var docs []listingDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*domainlistings.Listing, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toAggregate())
	}
	return out, nil
}

type BookingRepository struct {
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{col: db.Collection(bookingsCollection)}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	var doc bookingDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainbooking.ErrBookingNotFound
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *BookingRepository) Save(ctx context.Context, b *domainbooking.Booking) error {
	doc := newBookingDocument(b)
	doc.Version = b.Version + 1
	if err := versionedUpsert(ctx, r.col, doc.ID, b.Version, doc); err != nil {
		return err
	}
	b.Version = doc.Version
	return nil
}

func (r *BookingRepository) ListByRenter(ctx context.Context, renterID string) ([]*domainbooking.Booking, error) {
	return r.find(ctx, bson.M{"renter_id": renterID})
}

func (r *BookingRepository) ListByListing(ctx context.Context, listingID domainlistings.ListingID) ([]*domainbooking.Booking, error) {
	return r.find(ctx, bson.M{"listing_id": string(listingID)})
}

func (r *BookingRepository) find(ctx context.Context, filter bson.M) ([]*domainbooking.Booking, error) {
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "range.start", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []bookingDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*domainbooking.Booking, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toAggregate())
	}
	return out, nil
}

type CalendarRepository struct {
	col *mongo.Collection
}

func NewCalendarRepository(db *mongo.Database) *CalendarRepository {
	return &CalendarRepository{col: db.Collection(calendarsCollection)}
}

// Calendar returns an empty calendar for listings that have never been blocked.
func (r *CalendarRepository) Calendar(ctx context.Context, id domainlistings.ListingID) (*domainavailability.Calendar, error) {
	var doc calendarDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domainavailability.NewCalendar(id), nil
		}
		return nil, err
	}
	return doc.toAggregate(), nil
}

func (r *CalendarRepository) Save(ctx context.Context, c *domainavailability.Calendar) error {
	doc := newCalendarDocument(c)
	doc.Version = c.Version + 1
	if err := versionedUpsert(ctx, r.col, doc.ID, c.Version, doc); err != nil {
		return err
	}
	c.Version = doc.Version
	return nil
}

var (
	_ domainlistings.ListingRepository = (*ListingRepository)(nil)
	_ domainbooking.Repository         = (*BookingRepository)(nil)
	_ domainavailability.Repository    = (*CalendarRepository)(nil)
)
