package ginserver

import (
	"errors"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	bookingapp "trio/internal/app/handlers/booking"
	listingapp "trio/internal/app/handlers/listings"
	domainavailability "trio/internal/domain/availability"
	domainbooking "trio/internal/domain/booking"
	domainlistings "trio/internal/domain/listings"
	domainpricing "trio/internal/domain/pricing"
	"trio/internal/domain/shared/daterange"
	"trio/internal/domain/shared/money"
	mongostore "trio/internal/infra/db/mongo"
	"trio/internal/infra/storage/memory"
)

var errMalformedRequest = errors.New("http: malformed request")

var badRequest = []error{
	errMalformedRequest,
	domainpricing.ErrInvalidInput,
	daterange.ErrMissingDate,
	daterange.ErrInvalidRange,
	money.ErrInvalidCurrency,
	domainbooking.ErrRenterRequired,
	domainbooking.ErrStartInPast,
	domainlistings.ErrTitleRequired,
	domainlistings.ErrOwnerRequired,
	domainlistings.ErrDailyPrice,
	domainlistings.ErrDuplicateAddon,
	domainlistings.ErrInvalidSelection,
	domainlistings.ErrAddonItemRequired,
	domainlistings.ErrAddonNotFound,
	bookingapp.ErrUnknownAction,
	listingapp.ErrUnknownAction,
}

var notFound = []error{
	domainbooking.ErrBookingNotFound,
	domainlistings.ErrListingNotFound,
}

var conflict = []error{
	domainbooking.ErrInvalidState,
	domainbooking.ErrDatesUnavailable,
	domainbooking.ErrExtensionRejected,
	domainlistings.ErrInvalidState,
	domainlistings.ErrListingInactive,
	domainavailability.ErrOverlappingRange,
	domainavailability.ErrShrinkNotAllowed,
	memory.ErrConcurrentUpdate,
	mongostore.ErrConcurrentUpdate,
}

// StatusFor maps application and domain errors onto HTTP status codes.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, listingapp.ErrListingNotOwned):
		return http.StatusForbidden
	case matchesAny(err, notFound):
		return http.StatusNotFound
	case matchesAny(err, conflict):
		return http.StatusConflict
	case matchesAny(err, badRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func matchesAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func respondError(c *gin.Context, log *slog.Logger, err error) {
	status := StatusFor(err)
	_ = c.Error(err)
	if status >= http.StatusInternalServerError {
		if log != nil {
			log.Error("request failed", "status", status, "error", err, "path", c.FullPath())
		}
		c.JSON(status, gin.H{"error": http.StatusText(status)})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
