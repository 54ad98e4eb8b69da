package ginserver

import (
	"log/slog"
	"net/http"
	"strings"

	gin "github.com/gin-gonic/gin"

	"trio/internal/app/commands"
	"trio/internal/app/dto"
	bookingapp "trio/internal/app/handlers/booking"
	listingapp "trio/internal/app/handlers/listings"
	"trio/internal/app/queries"
)

// ListingHandler wires listing commands and queries to HTTP.
type ListingHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
	Logger   *slog.Logger
}

type addonRequest struct {
	ID         string  `json:"id"`
	Item       string  `json:"item"`
	Style      *string `json:"style"`
	PriceCents *int64  `json:"price_cents"`
	Consumable bool    `json:"consumable"`
}

type createListingRequest struct {
	OwnerID         string         `json:"owner_id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Category        string         `json:"category"`
	Location        string         `json:"location"`
	DailyPriceCents int64          `json:"daily_price_cents"`
	Currency        string         `json:"currency"`
	Addons          []addonRequest `json:"addons"`
}

type listingStateRequest struct {
	OwnerID string `json:"owner_id"`
	Reason  string `json:"reason"`
}

type blockDatesRequest struct {
	OwnerID   string `json:"owner_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (h ListingHandler) List(c *gin.Context) {
	query := listingapp.ListListingsQuery{
		OwnerID:    c.Query("owner_id"),
		Category:   c.Query("category"),
		OnlyActive: parseBool(c.Query("active")),
		Limit:      parseInt(c.Query("limit")),
	}
	result, err := queries.Ask[listingapp.ListListingsQuery, dto.ListingCollection](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ListingHandler) Create(c *gin.Context) {
	var req createListingRequest
	if err := bindJSON(c, &req, false); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	addons := make([]listingapp.AddonInput, 0, len(req.Addons))
	for _, a := range req.Addons {
		addons = append(addons, listingapp.AddonInput{
			ID:         a.ID,
			Item:       a.Item,
			Style:      a.Style,
			PriceCents: a.PriceCents,
			Consumable: a.Consumable,
		})
	}
	cmd := listingapp.CreateListingCommand{
		OwnerID:         req.OwnerID,
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		Location:        req.Location,
		DailyPriceCents: req.DailyPriceCents,
		Currency:        req.Currency,
		Addons:          addons,
	}
	result, err := commands.Dispatch[listingapp.CreateListingCommand, *dto.Listing](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h ListingHandler) Get(c *gin.Context) {
	query := listingapp.GetListingQuery{ListingID: strings.TrimSpace(c.Param("id"))}
	result, err := queries.Ask[listingapp.GetListingQuery, dto.Listing](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Quote prices a prospective booking without reserving anything.
func (h ListingHandler) Quote(c *gin.Context) {
	var req dateRangeRequest
	if err := bindJSON(c, &req, false); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	start, end, err := req.dates()
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	query := bookingapp.QuoteBookingQuery{
		ListingID: strings.TrimSpace(c.Param("id")),
		Start:     start,
		End:       end,
		Addons:    req.choices(),
	}
	result, err := queries.Ask[bookingapp.QuoteBookingQuery, dto.BookingQuote](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ListingHandler) Suspend(c *gin.Context) {
	h.setState(c, listingapp.ActionSuspend)
}

func (h ListingHandler) Activate(c *gin.Context) {
	h.setState(c, listingapp.ActionActivate)
}

func (h ListingHandler) setState(c *gin.Context, action string) {
	var req listingStateRequest
	if err := bindJSON(c, &req, false); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	cmd := listingapp.SetListingStateCommand{
		ListingID: strings.TrimSpace(c.Param("id")),
		OwnerID:   req.OwnerID,
		Action:    action,
		Reason:    strings.TrimSpace(req.Reason),
	}
	result, err := commands.Dispatch[listingapp.SetListingStateCommand, *dto.Listing](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ListingHandler) BlockDates(c *gin.Context) {
	var req blockDatesRequest
	if err := bindJSON(c, &req, false); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	start, end, err := dateRangeRequest{StartDate: req.StartDate, EndDate: req.EndDate}.dates()
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	cmd := listingapp.BlockDatesCommand{
		ListingID: strings.TrimSpace(c.Param("id")),
		OwnerID:   req.OwnerID,
		Start:     start,
		End:       end,
	}
	result, err := commands.Dispatch[listingapp.BlockDatesCommand, *dto.Calendar](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ ListingHTTP = ListingHandler{}
