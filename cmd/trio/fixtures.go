package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"trio/internal/app/uow"
	domainlistings "trio/internal/domain/listings"
	domainpricing "trio/internal/domain/pricing"
)

type listingFixture struct {
	ID              string         `json:"id"`
	Owner           string         `json:"owner"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	Category        string         `json:"category"`
	Location        string         `json:"location"`
	DailyPriceCents int64          `json:"daily_price_cents"`
	Currency        string         `json:"currency"`
	Addons          []addonFixture `json:"addons"`
}

type addonFixture struct {
	ID         string  `json:"id"`
	Item       string  `json:"item"`
	Style      *string `json:"style"`
	PriceCents *int64  `json:"price_cents"`
	Consumable bool    `json:"consumable"`
}

// loadListingFixtures seeds listings that are not stored yet, so restarts against a
// persistent store leave existing listings untouched. Fixture events are not published.
func loadListingFixtures(ctx context.Context, factory uow.UoWFactory, path, currency string, logger *slog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("listing fixtures file not found, skipping", "path", path)
			return nil
		}
		return fmt.Errorf("read fixtures: %w", err)
	}
	if len(data) == 0 {
		logger.Warn("listing fixtures file empty", "path", path)
		return nil
	}

	var fixtures []listingFixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return fmt.Errorf("decode fixtures: %w", err)
	}

	now := time.Now().UTC()
	for _, fx := range fixtures {
		if err := importFixture(ctx, factory, fx, currency, now); err != nil {
			logger.Error("fixture skipped", "listing_id", fx.ID, "error", err)
			continue
		}
		logger.Info("listing fixture imported", "listing_id", fx.ID)
	}
	return nil
}

func importFixture(ctx context.Context, factory uow.UoWFactory, fx listingFixture, currency string, now time.Time) (err error) {
	ctx, unit, done, err := uow.Acquire(ctx, factory, uow.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { err = done(err) }()

	_, err = unit.Listings().ByID(ctx, domainlistings.ListingID(fx.ID))
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, domainlistings.ErrListingNotFound):
		return err
	}

	if fx.Currency == "" {
		fx.Currency = currency
	}
	addons := make([]domainpricing.Addon, 0, len(fx.Addons))
	for _, a := range fx.Addons {
		addons = append(addons, domainpricing.Addon{
			ID:         domainpricing.AddonID(a.ID),
			Item:       a.Item,
			Style:      a.Style,
			PriceCents: a.PriceCents,
			Consumable: a.Consumable,
		})
	}
	listing, err := domainlistings.NewListing(domainlistings.CreateListingParams{
		ID:              domainlistings.ListingID(fx.ID),
		Owner:           domainlistings.OwnerID(fx.Owner),
		Title:           fx.Title,
		Description:     fx.Description,
		Category:        fx.Category,
		Location:        fx.Location,
		DailyPriceCents: fx.DailyPriceCents,
		Currency:        fx.Currency,
		Addons:          addons,
		Now:             now,
	})
	if err != nil {
		return err
	}
	listing.ClearEvents()
	return unit.Listings().Save(ctx, listing)
}

func defaultListingFixturesPath() string {
	candidates := []string{
		filepath.Join("data", "listings.json"),
		filepath.Join("..", "..", "data", "listings.json"),
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return candidates[0]
}
