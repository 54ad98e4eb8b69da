package money

import (
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidCurrency  = errors.New("money: invalid currency code")
	ErrCurrencyMismatch = errors.New("money: currency mismatch")
	ErrOverflow         = errors.New("money: amount exceeds the representable range")
)

var (
	hundred  = decimal.NewFromInt(100)
	maxCents = decimal.NewFromInt(math.MaxInt64)
	minCents = decimal.NewFromInt(math.MinInt64)
)

var symbols = map[string]string{
	"USD": "$",
	"CAD": "$",
	"AUD": "$",
	"EUR": "€",
	"GBP": "£",
}

// Money keeps amounts in integer minor units (cents) to avoid floating point issues.
type Money struct {
	Amount   int64
	Currency string
}

// New constructs a Money value validating minimal invariants.
func New(amount int64, currency string) (Money, error) {
	if len(currency) != 3 {
		return Money{}, ErrInvalidCurrency
	}
	return Money{Amount: amount, Currency: strings.ToUpper(currency)}, nil
}

// Must creates Money and panics if validation fails; useful in tests and fixtures.
func Must(amount int64, currency string) Money {
	m, err := New(amount, currency)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Add(other Money) (Money, error) {
	if err := m.ensureSameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{Amount: m.Amount + other.Amount, Currency: m.Currency}, nil
}

func (m Money) Sub(other Money) (Money, error) {
	if err := m.ensureSameCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{Amount: m.Amount - other.Amount, Currency: m.Currency}, nil
}

func (m Money) Multiply(times int64) Money {
	return Money{Amount: m.Amount * times, Currency: m.Currency}
}

func (m Money) IsZero() bool {
	return m.Amount == 0
}

// Format renders the amount with two decimals, e.g. "$45.00" for 4500 USD cents.
func (m Money) Format() string {
	return FormatCents(m.Amount, m.Currency)
}

// FormatCents renders a minor-unit amount with the currency symbol when one is known
// and the ISO code suffix otherwise.
func FormatCents(cents int64, currency string) string {
	amount := decimal.New(cents, -2).StringFixed(2)
	currency = strings.ToUpper(currency)
	if sym, ok := symbols[currency]; ok {
		if strings.HasPrefix(amount, "-") {
			return "-" + sym + amount[1:]
		}
		return sym + amount
	}
	if currency == "" {
		return amount
	}
	return amount + " " + currency
}

// PercentOf returns cents * percent / 100 * times rounded once to the nearest cent,
// halves away from zero. The product is computed exactly before rounding. A result
// outside int64 is clamped; use CheckedPercentOf where inputs are unbounded.
func PercentOf(cents int64, percent decimal.Decimal, times int64) int64 {
	v, err := CheckedPercentOf(cents, percent, times)
	if err != nil {
		if percentSign(cents, percent, times) < 0 {
			return math.MinInt64
		}
		return math.MaxInt64
	}
	return v
}

// CheckedPercentOf is PercentOf failing with ErrOverflow when the rounded result does
// not fit in int64.
func CheckedPercentOf(cents int64, percent decimal.Decimal, times int64) (int64, error) {
	if cents == 0 || times == 0 || percent.IsZero() {
		return 0, nil
	}
	v := decimal.NewFromInt(cents).
		Mul(percent).
		Mul(decimal.NewFromInt(times)).
		Div(hundred).
		Round(0)
	if v.GreaterThan(maxCents) || v.LessThan(minCents) {
		return 0, ErrOverflow
	}
	return v.IntPart(), nil
}

func percentSign(cents int64, percent decimal.Decimal, times int64) int {
	sign := percent.Sign()
	if cents < 0 {
		sign = -sign
	}
	if times < 0 {
		sign = -sign
	}
	return sign
}

// MulCents multiplies two amounts, failing with ErrOverflow instead of wrapping.
func MulCents(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, ErrOverflow
	}
	r := a * b
	if r/b != a {
		return 0, ErrOverflow
	}
	return r, nil
}

// SumCents adds amounts, failing with ErrOverflow instead of wrapping.
func SumCents(values ...int64) (int64, error) {
	var total int64
	for _, v := range values {
		r := total + v
		if (v > 0 && r < total) || (v < 0 && r > total) {
			return 0, ErrOverflow
		}
		total = r
	}
	return total, nil
}

func (m Money) ensureSameCurrency(other Money) error {
	if m.Currency == "" || other.Currency == "" {
		return ErrInvalidCurrency
	}
	if m.Currency != other.Currency {
		return ErrCurrencyMismatch
	}
	return nil
}
