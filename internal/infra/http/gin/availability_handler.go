package ginserver

import (
	"log/slog"
	"net/http"
	"strings"

	gin "github.com/gin-gonic/gin"

	"trio/internal/app/dto"
	availabilityapp "trio/internal/app/handlers/availability"
	"trio/internal/app/queries"
)

type AvailabilityHandler struct {
	Queries queries.Bus
	Logger  *slog.Logger
}

func (h AvailabilityHandler) Calendar(c *gin.Context) {
	from, err := parseDay(c.Query("from"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	to, err := parseDay(c.Query("to"))
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	query := availabilityapp.GetCalendarQuery{ListingID: strings.TrimSpace(c.Param("id")), From: from, To: to}
	result, err := queries.Ask[availabilityapp.GetCalendarQuery, dto.Calendar](c.Request.Context(), h.Queries, query)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ AvailabilityHTTP = AvailabilityHandler{}
