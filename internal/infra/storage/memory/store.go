package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"trio/internal/app/uow"
	domainavailability "trio/internal/domain/availability"
	domainbooking "trio/internal/domain/booking"
	domainlistings "trio/internal/domain/listings"
)

var ErrConcurrentUpdate = errors.New("memory: concurrent update detected")

// Store holds committed aggregates. Units of work read clones and stage writes until Commit.
type Store struct {
	mu        sync.RWMutex
	listings  map[domainlistings.ListingID]*domainlistings.Listing
	bookings  map[domainbooking.BookingID]*domainbooking.Booking
	calendars map[domainlistings.ListingID]*domainavailability.Calendar
}

func NewStore() *Store {
	return &Store{
		listings:  make(map[domainlistings.ListingID]*domainlistings.Listing),
		bookings:  make(map[domainbooking.BookingID]*domainbooking.Booking),
		calendars: make(map[domainlistings.ListingID]*domainavailability.Calendar),
	}
}

// Factory wires the in-memory store into a unit-of-work boundary.
type Factory struct {
	Store *Store
}

var ErrFactoryMisconfigured = errors.New("memory: unit of work factory misconfigured")

func (f Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.Store == nil {
		return nil, ErrFactoryMisconfigured
	}
	return &Unit{
		store:     f.Store,
		readOnly:  opts.ReadOnly,
		listings:  make(map[domainlistings.ListingID]staged[*domainlistings.Listing]),
		bookings:  make(map[domainbooking.BookingID]staged[*domainbooking.Booking]),
		calendars: make(map[domainlistings.ListingID]staged[*domainavailability.Calendar]),
	}, nil
}

type staged[T any] struct {
	base  int64
	value T
}

// Unit buffers writes and applies them atomically on Commit, failing when another unit
// committed a newer version of any touched aggregate.
type Unit struct {
	store    *Store
	readOnly bool
	done     bool

	mu        sync.Mutex
	listings  map[domainlistings.ListingID]staged[*domainlistings.Listing]
	bookings  map[domainbooking.BookingID]staged[*domainbooking.Booking]
	calendars map[domainlistings.ListingID]staged[*domainavailability.Calendar]
}

var ErrReadOnlyUnit = errors.New("memory: write attempted in read-only unit of work")

func (u *Unit) Listings() domainlistings.ListingRepository { return listingView{u} }

func (u *Unit) Availability() domainavailability.Repository { return calendarView{u} }

func (u *Unit) Bookings() domainbooking.Repository { return bookingView{u} }

func (u *Unit) Commit(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.done {
		return nil
	}
	u.done = true
	s := u.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, st := range u.listings {
		if current := versionOf(s.listings[id]); current != st.base {
			return ErrConcurrentUpdate
		}
	}
	for id, st := range u.bookings {
		if current := versionOf(s.bookings[id]); current != st.base {
			return ErrConcurrentUpdate
		}
	}
	for id, st := range u.calendars {
		if current := versionOf(s.calendars[id]); current != st.base {
			return ErrConcurrentUpdate
		}
	}
	for id, st := range u.listings {
		s.listings[id] = st.value
	}
	for id, st := range u.bookings {
		s.bookings[id] = st.value
	}
	for id, st := range u.calendars {
		s.calendars[id] = st.value
	}
	return nil
}

func (u *Unit) Rollback(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.done = true
	clear(u.listings)
	clear(u.bookings)
	clear(u.calendars)
	return nil
}

func (u *Unit) writable() error {
	if u.readOnly {
		return ErrReadOnlyUnit
	}
	return nil
}

type versioned interface {
	*domainlistings.Listing | *domainbooking.Booking | *domainavailability.Calendar
}

func versionOf[T versioned](v T) int64 {
	switch agg := any(v).(type) {
	case *domainlistings.Listing:
		if agg != nil {
			return agg.Version
		}
	case *domainbooking.Booking:
		if agg != nil {
			return agg.Version
		}
	case *domainavailability.Calendar:
		if agg != nil {
			return agg.Version
		}
	}
	return 0
}

type listingView struct{ u *Unit }

func (v listingView) ByID(ctx context.Context, id domainlistings.ListingID) (*domainlistings.Listing, error) {
	v.u.mu.Lock()
	if st, ok := v.u.listings[id]; ok {
		v.u.mu.Unlock()
		return cloneListing(st.value), nil
	}
	v.u.mu.Unlock()
	v.u.store.mu.RLock()
	defer v.u.store.mu.RUnlock()
	l, ok := v.u.store.listings[id]
	if !ok {
		return nil, domainlistings.ErrListingNotFound
	}
	return cloneListing(l), nil
}

func (v listingView) Save(ctx context.Context, listing *domainlistings.Listing) error {
	if err := v.u.writable(); err != nil {
		return err
	}
	v.u.mu.Lock()
	defer v.u.mu.Unlock()
	base := listing.Version
	if prev, ok := v.u.listings[listing.ID]; ok {
		base = prev.base
	}
	listing.Version = base + 1
	v.u.listings[listing.ID] = staged[*domainlistings.Listing]{base: base, value: cloneListing(listing)}
	return nil
}

func (v listingView) List(ctx context.Context, filter domainlistings.ListFilter) ([]*domainlistings.Listing, error) {
	v.u.store.mu.RLock()
	merged := make(map[domainlistings.ListingID]*domainlistings.Listing, len(v.u.store.listings))
	for id, l := range v.u.store.listings {
		merged[id] = l
	}
	v.u.store.mu.RUnlock()
	v.u.mu.Lock()
	for id, st := range v.u.listings {
		merged[id] = st.value
	}
	v.u.mu.Unlock()

	out := make([]*domainlistings.Listing, 0, len(merged))
	for _, l := range merged {
		if filter.Owner != "" && l.Owner != filter.Owner {
			continue
		}
		if filter.Category != "" && l.Category != filter.Category {
			continue
		}
		if filter.OnlyActive && !l.Bookable() {
			continue
		}
		out = append(out, cloneListing(l))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

type bookingView struct{ u *Unit }

func (v bookingView) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	v.u.mu.Lock()
	if st, ok := v.u.bookings[id]; ok {
		v.u.mu.Unlock()
		return cloneBooking(st.value), nil
	}
	v.u.mu.Unlock()
	v.u.store.mu.RLock()
	defer v.u.store.mu.RUnlock()
	b, ok := v.u.store.bookings[id]
	if !ok {
		return nil, domainbooking.ErrBookingNotFound
	}
	return cloneBooking(b), nil
}

func (v bookingView) Save(ctx context.Context, booking *domainbooking.Booking) error {
	if err := v.u.writable(); err != nil {
		return err
	}
	v.u.mu.Lock()
	defer v.u.mu.Unlock()
	base := booking.Version
	if prev, ok := v.u.bookings[booking.ID]; ok {
		base = prev.base
	}
	booking.Version = base + 1
	v.u.bookings[booking.ID] = staged[*domainbooking.Booking]{base: base, value: cloneBooking(booking)}
	return nil
}

func (v bookingView) ListByRenter(ctx context.Context, renterID string) ([]*domainbooking.Booking, error) {
	return v.filter(func(b *domainbooking.Booking) bool { return b.RenterID == renterID }), nil
}

func (v bookingView) ListByListing(ctx context.Context, listingID domainlistings.ListingID) ([]*domainbooking.Booking, error) {
	return v.filter(func(b *domainbooking.Booking) bool { return b.ListingID == listingID }), nil
}

func (v bookingView) filter(keep func(*domainbooking.Booking) bool) []*domainbooking.Booking {
	v.u.store.mu.RLock()
	merged := make(map[domainbooking.BookingID]*domainbooking.Booking, len(v.u.store.bookings))
	for id, b := range v.u.store.bookings {
		merged[id] = b
	}
	v.u.store.mu.RUnlock()
	v.u.mu.Lock()
	for id, st := range v.u.bookings {
		merged[id] = st.value
	}
	v.u.mu.Unlock()

	out := make([]*domainbooking.Booking, 0)
	for _, b := range merged {
		if keep(b) {
			out = append(out, cloneBooking(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Range.Start.Before(out[j].Range.Start) })
	return out
}

type calendarView struct{ u *Unit }

// Calendar returns an empty calendar for listings that have never been blocked.
func (v calendarView) Calendar(ctx context.Context, id domainlistings.ListingID) (*domainavailability.Calendar, error) {
	v.u.mu.Lock()
	if st, ok := v.u.calendars[id]; ok {
		v.u.mu.Unlock()
		return cloneCalendar(st.value), nil
	}
	v.u.mu.Unlock()
	v.u.store.mu.RLock()
	defer v.u.store.mu.RUnlock()
	c, ok := v.u.store.calendars[id]
	if !ok {
		return domainavailability.NewCalendar(id), nil
	}
	return cloneCalendar(c), nil
}

func (v calendarView) Save(ctx context.Context, calendar *domainavailability.Calendar) error {
	if err := v.u.writable(); err != nil {
		return err
	}
	v.u.mu.Lock()
	defer v.u.mu.Unlock()
	base := calendar.Version
	if prev, ok := v.u.calendars[calendar.ListingID]; ok {
		base = prev.base
	}
	calendar.Version = base + 1
	v.u.calendars[calendar.ListingID] = staged[*domainavailability.Calendar]{base: base, value: cloneCalendar(calendar)}
	return nil
}

var (
	_ uow.UoWFactory                   = Factory{}
	_ domainlistings.ListingRepository = listingView{}
	_ domainbooking.Repository         = bookingView{}
	_ domainavailability.Repository    = calendarView{}
)
