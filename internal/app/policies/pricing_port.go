package policies

import (
	"time"

	domainpricing "trio/internal/domain/pricing"
)

// PricingPort is the calculator surface application handlers depend on.
type PricingPort interface {
	BookingSummary(dailyPriceCents int64, totalDays int, addons []domainpricing.Addon) (domainpricing.FeeBreakdown, error)
	ExtensionTotal(dailyPriceCents int64, start, end time.Time, nonconsumableAddonDailyTotal int64) (domainpricing.ExtensionBreakdown, error)
}

var _ PricingPort = domainpricing.Calculator{}
