// Package currencyutils normalizes statement amount tokens and provides the
// decimal helpers used for money arithmetic.
package currencyutils

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountPlaces is the number of decimal places every amount is rounded to.
const AmountPlaces = 2

var (
	// ErrEmptyAmount is returned for an empty or blank amount token.
	ErrEmptyAmount = errors.New("empty amount")
	// ErrUnparseableAmount is returned when a token is not a number.
	ErrUnparseableAmount = errors.New("unparseable amount")
	// ErrNonFiniteAmount is returned for NaN or infinite amounts.
	ErrNonFiniteAmount = errors.New("non-finite amount")
)

// ParseAmount strips thousands separators and surrounding whitespace and
// returns the amount rounded half to even to two places. A minus sign anywhere in the token
// (leading or trailing, as in "1,234.50-") makes the amount negative.
func ParseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if cleaned == "" {
		return decimal.Zero, ErrEmptyAmount
	}

	negative := strings.Contains(cleaned, "-")
	if negative {
		cleaned = strings.TrimSpace(strings.ReplaceAll(cleaned, "-", ""))
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w %q: %v", ErrUnparseableAmount, raw, err)
	}
	if negative {
		amount = amount.Neg()
	}

	return amount.RoundBank(AmountPlaces), nil
}

// NormalizeAmount is ParseAmount returning a float64.
func NormalizeAmount(raw string) (float64, error) {
	amount, err := ParseAmount(raw)
	if err != nil {
		return 0, err
	}
	return amount.InexactFloat64(), nil
}

// FromFloat converts a float to a decimal, rejecting NaN and infinities which
// decimal.NewFromFloat would panic on.
func FromFloat(v float64) (decimal.Decimal, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrNonFiniteAmount, v)
	}
	return decimal.NewFromFloat(v), nil
}

// RoundAmount rounds v half to even to two decimal places.
func RoundAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).RoundBank(AmountPlaces).InexactFloat64()
}

// FormatAmount formats an amount with two decimal places and an optional
// currency suffix.
func FormatAmount(amount decimal.Decimal, currency string) string {
	formatted := amount.StringFixed(AmountPlaces)
	if currency == "" {
		return formatted
	}
	return formatted + " " + currency
}
