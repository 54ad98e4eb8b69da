package ginserver

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	gin "github.com/gin-gonic/gin"

	bookingapp "trio/internal/app/handlers/booking"
	"trio/internal/domain/shared/daterange"
)

const IdempotencyKeyHeader = "Idempotency-Key"

type addonChoiceRequest struct {
	ID  string `json:"id"`
	Qty int    `json:"qty"`
}

type dateRangeRequest struct {
	StartDate string               `json:"start_date"`
	EndDate   string               `json:"end_date"`
	Addons    []addonChoiceRequest `json:"addons"`
}

func (r dateRangeRequest) dates() (time.Time, time.Time, error) {
	start, err := parseDay(r.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := parseDay(r.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func (r dateRangeRequest) choices() []bookingapp.AddonChoice {
	out := make([]bookingapp.AddonChoice, 0, len(r.Addons))
	for _, a := range r.Addons {
		out = append(out, bookingapp.AddonChoice{ID: strings.TrimSpace(a.ID), Qty: a.Qty})
	}
	return out
}

// parseDay accepts YYYY-MM-DD or RFC3339; a blank value yields the zero time.
func parseDay(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return daterange.Day(t.UTC()), nil
	}
	t, err := daterange.Parse(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", errMalformedRequest, err)
	}
	return t, nil
}

// bindJSON decodes the body into dst; an empty body is accepted when optional is set.
func bindJSON(c *gin.Context, dst any, optional bool) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: %v", errMalformedRequest, err)
	}
	return nil
}

func parseInt(raw string) int {
	value, _ := strconv.Atoi(strings.TrimSpace(raw))
	if value < 0 {
		return 0
	}
	return value
}

func parseBool(raw string) bool {
	value, _ := strconv.ParseBool(strings.TrimSpace(raw))
	return value
}
