package ginserver

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"trio/internal/app/commands"
	"trio/internal/app/dto"
	bookingapp "trio/internal/app/handlers/booking"
	"trio/internal/app/queries"
)

type BookingHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
	Logger   *slog.Logger
}

type createBookingRequest struct {
	ListingID string `json:"listing_id"`
	RenterID  string `json:"renter_id"`
	dateRangeRequest
}

type extensionRequest struct {
	EndDate string `json:"end_date"`
}

type transitionRequest struct {
	Reason string `json:"reason"`
}

func (h BookingHandler) Create(c *gin.Context) {
	var req createBookingRequest
	if err := bindJSON(c, &req, false); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	start, end, err := req.dates()
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	cmd := bookingapp.RequestBookingCommand{
		CommandID:       generateCommandID(),
		ListingID:       strings.TrimSpace(req.ListingID),
		RenterID:        strings.TrimSpace(req.RenterID),
		Start:           start,
		End:             end,
		Addons:          req.choices(),
		IdempotencyKeyV: c.GetHeader(IdempotencyKeyHeader),
	}
	result, err := commands.Dispatch[bookingapp.RequestBookingCommand, *dto.Booking](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h BookingHandler) Get(c *gin.Context) {
	query := bookingapp.GetBookingQuery{BookingID: strings.TrimSpace(c.Param("id"))}
	result, err := queries.Ask[bookingapp.GetBookingQuery, dto.Booking](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h BookingHandler) ListByRenter(c *gin.Context) {
	query := bookingapp.ListRenterBookingsQuery{
		RenterID: strings.TrimSpace(c.Param("id")),
		State:    c.Query("state"),
	}
	result, err := queries.Ask[bookingapp.ListRenterBookingsQuery, dto.BookingCollection](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ExtensionQuote answers 200 for both outcomes; an unavailable range comes back with valid=false.
func (h BookingHandler) ExtensionQuote(c *gin.Context) {
	end, ok := h.extensionEnd(c)
	if !ok {
		return
	}
	query := bookingapp.QuoteExtensionQuery{BookingID: strings.TrimSpace(c.Param("id")), End: end}
	result, err := queries.Ask[bookingapp.QuoteExtensionQuery, dto.ExtensionQuote](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h BookingHandler) Extend(c *gin.Context) {
	end, ok := h.extensionEnd(c)
	if !ok {
		return
	}
	cmd := bookingapp.ExtendBookingCommand{
		BookingID:       strings.TrimSpace(c.Param("id")),
		End:             end,
		IdempotencyKeyV: c.GetHeader(IdempotencyKeyHeader),
	}
	result, err := commands.Dispatch[bookingapp.ExtendBookingCommand, *dto.Booking](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h BookingHandler) extensionEnd(c *gin.Context) (_ time.Time, ok bool) {
	var req extensionRequest
	if err := bindJSON(c, &req, false); err != nil {
		respondError(c, h.Logger, err)
		return time.Time{}, false
	}
	end, err := parseDay(req.EndDate)
	if err != nil {
		respondError(c, h.Logger, err)
		return time.Time{}, false
	}
	return end, true
}

func (h BookingHandler) Accept(c *gin.Context)   { h.transition(c, bookingapp.ActionAccept) }
func (h BookingHandler) Decline(c *gin.Context)  { h.transition(c, bookingapp.ActionDecline) }
func (h BookingHandler) Cancel(c *gin.Context)   { h.transition(c, bookingapp.ActionCancel) }
func (h BookingHandler) Complete(c *gin.Context) { h.transition(c, bookingapp.ActionComplete) }

func (h BookingHandler) transition(c *gin.Context, action string) {
	var req transitionRequest
	if err := bindJSON(c, &req, true); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	cmd := bookingapp.TransitionBookingCommand{
		BookingID: strings.TrimSpace(c.Param("id")),
		Action:    action,
		Reason:    strings.TrimSpace(req.Reason),
	}
	result, err := commands.Dispatch[bookingapp.TransitionBookingCommand, *dto.Booking](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func generateCommandID() string {
	return uuid.NewString()
}

var _ BookingHTTP = BookingHandler{}
