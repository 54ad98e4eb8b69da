package dto

import (
	"time"

	domainlistings "trio/internal/domain/listings"
	domainpricing "trio/internal/domain/pricing"
)

type Addon struct {
	ID         string    `json:"id"`
	Item       string    `json:"item"`
	Style      *string   `json:"style"`
	Price      *MoneyDTO `json:"price"`
	Consumable bool      `json:"consumable"`
	Qty        int       `json:"qty,omitempty"`
}

type Listing struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Location    string    `json:"location,omitempty"`
	DailyPrice  MoneyDTO  `json:"daily_price"`
	Addons      []Addon   `json:"addons"`
	State       string    `json:"state"`
	CreatedAt   time.Time `json:"created_at"`
}

type ListingCollection struct {
	Items []Listing `json:"items"`
}

func MapAddon(addon domainpricing.Addon, currency string) Addon {
	out := Addon{
		ID:         string(addon.ID),
		Item:       addon.Item,
		Style:      addon.Style,
		Consumable: addon.Consumable,
		Qty:        addon.Qty,
	}
	if addon.PriceCents != nil {
		price := MapCents(*addon.PriceCents, currency)
		out.Price = &price
	}
	return out
}

func MapListing(l *domainlistings.Listing) Listing {
	addons := make([]Addon, 0, len(l.Addons))
	for _, addon := range l.Addons {
		addons = append(addons, MapAddon(addon, l.Currency))
	}
	return Listing{
		ID:          string(l.ID),
		OwnerID:     string(l.Owner),
		Title:       l.Title,
		Description: l.Description,
		Category:    l.Category,
		Location:    l.Location,
		DailyPrice:  MapCents(l.DailyPriceCents, l.Currency),
		Addons:      addons,
		State:       string(l.State),
		CreatedAt:   l.CreatedAt,
	}
}
