package pricing

import "fmt"

type AddonID string

// Addon is an optional item bundled with a rental. A nil price means the addon is free.
type Addon struct {
	ID         AddonID
	Item       string
	Style      *string
	PriceCents *int64
	Consumable bool
	Qty        int
}

// Quantity returns the selected quantity, defaulting to one when unset.
func (a Addon) Quantity() int {
	if a.Qty <= 0 {
		return 1
	}
	return a.Qty
}

// Free reports whether the addon carries no price.
func (a Addon) Free() bool {
	return a.PriceCents == nil
}

func (a Addon) Price() int64 {
	if a.PriceCents == nil {
		return 0
	}
	return *a.PriceCents
}

func (a Addon) Validate() error {
	if a.PriceCents != nil && *a.PriceCents < 0 {
		return fmt.Errorf("%w: addon %q price must be non-negative", ErrInvalidInput, a.ID)
	}
	if a.Qty < 0 {
		return fmt.Errorf("%w: addon %q quantity must be non-negative", ErrInvalidInput, a.ID)
	}
	return nil
}

// Cents is a small helper for building priced addons.
func Cents(v int64) *int64 {
	return &v
}
