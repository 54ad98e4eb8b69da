package ginserver_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trio/internal/app"
	"trio/internal/app/dto"
	domainbooking "trio/internal/domain/booking"
	domainlistings "trio/internal/domain/listings"
	domainpricing "trio/internal/domain/pricing"
	"trio/internal/infra/config"
	ginserver "trio/internal/infra/http/gin"
	"trio/internal/infra/obs"
	"trio/internal/infra/storage/memory"
)

type testServer struct {
	t      *testing.T
	router http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	calc, err := domainpricing.NewCalculator(domainpricing.DefaultFeeSchedule())
	require.NoError(t, err)
	application := app.New(app.Dependencies{
		UoWFactory:  memory.Factory{Store: memory.NewStore()},
		Pricing:     calc,
		Outbox:      memory.NewOutbox(nil),
		Idempotency: memory.NewIdempotencyStore(time.Hour),
		Now:         func() time.Time { return time.Date(2026, time.May, 1, 8, 0, 0, 0, time.UTC) },
	})
	handlers := ginserver.Handlers{
		Listing:      ginserver.ListingHandler{Commands: application.Commands, Queries: application.Queries},
		Booking:      ginserver.BookingHandler{Commands: application.Commands, Queries: application.Queries},
		Availability: ginserver.AvailabilityHandler{Queries: application.Queries},
	}
	router := ginserver.NewRouter(config.NewTestConfig(), obs.Middleware{}, obs.HealthHandlers{}, handlers)
	return &testServer{t: t, router: router}
}

func (s *testServer) do(method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func (s *testServer) createListing() dto.Listing {
	rec := s.do(http.MethodPost, "/api/v1/listings", map[string]any{
		"owner_id":          "owner-1",
		"title":             "Touring bike",
		"daily_price_cents": 4500,
		"addons": []map[string]any{
			{"id": "helmet", "item": "Helmet", "price_cents": 1000},
			{"id": "bars", "item": "Energy bars", "price_cents": 250, "consumable": true},
		},
	})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[dto.Listing](s.t, rec)
}

func bookingBody(listingID, renter, start, end string) map[string]any {
	return map[string]any{
		"listing_id": listingID,
		"renter_id":  renter,
		"start_date": start,
		"end_date":   end,
		"addons":     []map[string]any{{"id": "helmet", "qty": 1}},
	}
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)
	assert.Equal(t, http.StatusOK, srv.do(http.MethodGet, "/livez", nil).Code)
	assert.Equal(t, http.StatusOK, srv.do(http.MethodGet, "/readyz", nil).Code)
}

func TestQuoteListing(t *testing.T) {
	srv := newTestServer(t)
	listing := srv.createListing()

	rec := srv.do(http.MethodPost, "/api/v1/listings/"+listing.ID+"/quote", map[string]any{
		"start_date": "2026-05-01",
		"end_date":   "2026-05-03",
		"addons":     []map[string]any{{"id": "helmet", "qty": 1}},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	quote := decode[dto.BookingQuote](t, rec)
	assert.Equal(t, int64(15270), quote.Breakdown.Subtotal.Amount)
	assert.Equal(t, "$152.70", quote.Breakdown.Subtotal.Formatted)

	rec = srv.do(http.MethodPost, "/api/v1/listings/"+listing.ID+"/quote", map[string]any{
		"start_date": "2026-05-03",
		"end_date":   "2026-05-01",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(http.MethodPost, "/api/v1/listings/"+listing.ID+"/quote", map[string]any{
		"start_date": "05/01/2026",
		"end_date":   "2026-05-03",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(http.MethodPost, "/api/v1/listings/missing/quote", map[string]any{
		"start_date": "2026-05-01",
		"end_date":   "2026-05-03",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookingLifecycle(t *testing.T) {
	srv := newTestServer(t)
	listing := srv.createListing()

	rec := srv.do(http.MethodPost, "/api/v1/bookings", bookingBody(listing.ID, "renter-1", "2026-05-01", "2026-05-03"), ginserver.IdempotencyKeyHeader, "req-1")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	booking := decode[dto.Booking](t, rec)
	assert.Equal(t, "PENDING", booking.State)

	replay := srv.do(http.MethodPost, "/api/v1/bookings", bookingBody(listing.ID, "renter-1", "2026-05-01", "2026-05-03"), ginserver.IdempotencyKeyHeader, "req-1")
	require.Equal(t, http.StatusCreated, replay.Code, replay.Body.String())
	assert.Equal(t, booking.ID, decode[dto.Booking](t, replay).ID)

	rec = srv.do(http.MethodPost, "/api/v1/bookings", bookingBody(listing.ID, "renter-2", "2026-05-02", "2026-05-04"))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = srv.do(http.MethodPost, "/api/v1/bookings", bookingBody(listing.ID, "renter-2", "2026-05-06", "2026-05-07"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = srv.do(http.MethodPost, "/api/v1/bookings/"+booking.ID+"/extension-quote", map[string]any{"end_date": "2026-05-06"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var rejected map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rejected))
	assert.Equal(t, false, rejected["valid"])
	assert.Equal(t, "Selected dates conflict with an existing booking from 2026-05-06 to 2026-05-07.", rejected["reason"])
	assert.NotContains(t, rejected, "quote")

	rec = srv.do(http.MethodPost, "/api/v1/bookings/"+booking.ID+"/extension-quote", map[string]any{"end_date": "2026-05-05"})
	require.Equal(t, http.StatusOK, rec.Code)
	quote := decode[dto.ExtensionQuote](t, rec)
	require.True(t, quote.Valid)
	require.NotNil(t, quote.Price)
	assert.Equal(t, int64(11580), quote.Price.Total.Amount)

	rec = srv.do(http.MethodPost, "/api/v1/bookings/"+booking.ID+"/extensions", map[string]any{"end_date": "2026-05-06"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = srv.do(http.MethodPost, "/api/v1/bookings/"+booking.ID+"/extensions", map[string]any{"end_date": "2026-05-05"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "2026-05-05", decode[dto.Booking](t, rec).EndDate)

	rec = srv.do(http.MethodPost, "/api/v1/bookings/"+booking.ID+"/accept", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "ACCEPTED", decode[dto.Booking](t, rec).State)

	rec = srv.do(http.MethodPost, "/api/v1/bookings/"+booking.ID+"/decline", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = srv.do(http.MethodGet, "/api/v1/renters/renter-1/bookings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[dto.BookingCollection](t, rec).Items, 1)

	rec = srv.do(http.MethodGet, "/api/v1/listings/"+listing.ID+"/calendar?from=2026-05-01&to=2026-05-31", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[dto.Calendar](t, rec).Blocks, 2)

	assert.Equal(t, http.StatusNotFound, srv.do(http.MethodGet, "/api/v1/bookings/nope", nil).Code)
}

func TestListingOwnerActions(t *testing.T) {
	srv := newTestServer(t)
	listing := srv.createListing()

	rec := srv.do(http.MethodPost, "/api/v1/listings/"+listing.ID+"/blocks", map[string]any{
		"owner_id": "intruder", "start_date": "2026-06-01", "end_date": "2026-06-02",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = srv.do(http.MethodPost, "/api/v1/listings/"+listing.ID+"/suspend", map[string]any{"owner_id": "owner-1", "reason": "service"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = srv.do(http.MethodPost, "/api/v1/bookings", bookingBody(listing.ID, "renter-1", "2026-05-10", "2026-05-11"))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = srv.do(http.MethodGet, "/api/v1/listings?active=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[dto.ListingCollection](t, rec).Items)

	rec = srv.do(http.MethodPost, "/api/v1/listings", map[string]any{"owner_id": "owner-1", "daily_price_cents": 100})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: days", domainpricing.ErrInvalidInput), http.StatusBadRequest},
		{domainlistings.ErrListingNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: 2026-05-01 to 2026-05-02", domainbooking.ErrDatesUnavailable), http.StatusConflict},
		{memory.ErrConcurrentUpdate, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ginserver.StatusFor(tc.err), tc.err.Error())
	}
}
