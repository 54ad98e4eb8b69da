package dto

import (
	"time"

	domainbooking "trio/internal/domain/booking"
	"trio/internal/domain/shared/daterange"
)

type Extension struct {
	ID        string         `json:"id"`
	StartDate string         `json:"start_date"`
	EndDate   string         `json:"end_date"`
	Price     ExtensionPrice `json:"price"`
	CreatedAt time.Time      `json:"created_at"`
}

type Booking struct {
	ID         string       `json:"id"`
	ListingID  string       `json:"listing_id"`
	RenterID   string       `json:"renter_id"`
	StartDate  string       `json:"start_date"`
	EndDate    string       `json:"end_date"`
	State      string       `json:"state"`
	Addons     []Addon      `json:"addons"`
	Summary    FeeBreakdown `json:"summary"`
	Extensions []Extension  `json:"extensions"`
	Total      MoneyDTO     `json:"total"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

type BookingCollection struct {
	Items []Booking `json:"items"`
}

func MapBooking(b *domainbooking.Booking) Booking {
	addons := make([]Addon, 0, len(b.Addons))
	for _, addon := range b.Addons {
		addons = append(addons, MapAddon(addon, b.Currency))
	}
	exts := make([]Extension, 0, len(b.Extensions))
	for _, ext := range b.Extensions {
		exts = append(exts, Extension{
			ID:        ext.ID,
			StartDate: ext.Range.Start.Format(daterange.Layout),
			EndDate:   ext.Range.End.Format(daterange.Layout),
			Price:     MapExtensionPrice(ext.Price, b.Currency),
			CreatedAt: ext.CreatedAt,
		})
	}
	return Booking{
		ID:         string(b.ID),
		ListingID:  string(b.ListingID),
		RenterID:   b.RenterID,
		StartDate:  b.Range.Start.Format(daterange.Layout),
		EndDate:    b.Range.End.Format(daterange.Layout),
		State:      string(b.State),
		Addons:     addons,
		Summary:    MapFeeBreakdown(b.Summary, b.Currency),
		Extensions: exts,
		Total:      MapCents(b.Total(), b.Currency),
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}
