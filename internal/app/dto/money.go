package dto

import "trio/internal/domain/shared/money"

type MoneyDTO struct {
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Formatted string `json:"formatted"`
}

func MapCents(cents int64, currency string) MoneyDTO {
	return MoneyDTO{
		Amount:    cents,
		Currency:  currency,
		Formatted: money.FormatCents(cents, currency),
	}
}
