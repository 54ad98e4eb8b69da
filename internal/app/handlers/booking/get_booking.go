package booking

import (
	"context"
	"sort"
	"strings"

	"trio/internal/app/dto"
	"trio/internal/app/queries"
	"trio/internal/app/uow"
	domainbooking "trio/internal/domain/booking"
)

const (
	getBookingKey         = "booking.get"
	listRenterBookingsKey = "renter.bookings.list"
)

type GetBookingQuery struct {
	BookingID string
}

func (q GetBookingQuery) Key() string { return getBookingKey }

type GetBookingHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *GetBookingHandler) Handle(ctx context.Context, q GetBookingQuery) (_ dto.Booking, err error) {
	ctx, unit, done, err := uow.Acquire(ctx, h.UoWFactory, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return dto.Booking{}, err
	}
	defer func() { err = done(err) }()

	booking, err := unit.Bookings().ByID(ctx, domainbooking.BookingID(strings.TrimSpace(q.BookingID)))
	if err != nil {
		return dto.Booking{}, err
	}
	return dto.MapBooking(booking), nil
}

type ListRenterBookingsQuery struct {
	RenterID string
	State    string
}

func (q ListRenterBookingsQuery) Key() string { return listRenterBookingsKey }

func (q ListRenterBookingsQuery) Validate() error {
	if strings.TrimSpace(q.RenterID) == "" {
		return domainbooking.ErrRenterRequired
	}
	return nil
}

type ListRenterBookingsHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *ListRenterBookingsHandler) Handle(ctx context.Context, q ListRenterBookingsQuery) (_ dto.BookingCollection, err error) {
	ctx, unit, done, err := uow.Acquire(ctx, h.UoWFactory, uow.TxOptions{ReadOnly: true})
	if err != nil {
		return dto.BookingCollection{}, err
	}
	defer func() { err = done(err) }()

	bookings, err := unit.Bookings().ListByRenter(ctx, strings.TrimSpace(q.RenterID))
	if err != nil {
		return dto.BookingCollection{}, err
	}
	state := strings.ToUpper(strings.TrimSpace(q.State))
	items := make([]dto.Booking, 0, len(bookings))
	for _, b := range bookings {
		if state != "" && string(b.State) != state {
			continue
		}
		items = append(items, dto.MapBooking(b))
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return dto.BookingCollection{Items: items}, nil
}

var _ queries.Handler[GetBookingQuery, dto.Booking] = (*GetBookingHandler)(nil)
var _ queries.Handler[ListRenterBookingsQuery, dto.BookingCollection] = (*ListRenterBookingsHandler)(nil)
