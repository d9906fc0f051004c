// Package format renders monetary values for presentation. Amounts are
// rounded half away from zero to cents with decimal arithmetic so the
// rendered value never shows binary floating-point residue.
package format

import (
	"strconv"
	"strings"

	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/iwvelando/loan-calculator/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// DefaultSymbol is the currency symbol used by Currency.
const DefaultSymbol = "$"

// Money rounds amount to cents. NaN and infinities are returned unchanged.
func Money(amount float64) float64 {
	if !mathutil.IsFinite(amount) {
		return amount
	}
	return decimal.NewFromFloat(amount).Round(constants.CurrencyPlaces).InexactFloat64()
}

// Amount returns the amount rounded to cents without separators (e.g., "-1234.56").
func Amount(amount float64) string {
	if !mathutil.IsFinite(amount) {
		return nonFinite(amount)
	}
	return decimal.NewFromFloat(amount).StringFixed(constants.CurrencyPlaces)
}

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	return CurrencyWithSymbol(amount, DefaultSymbol)
}

// CurrencyWithSymbol returns a currency string with the given symbol and thousands separators.
func CurrencyWithSymbol(amount float64, symbol string) string {
	if !mathutil.IsFinite(amount) {
		return nonFinite(amount)
	}
	rounded := decimal.NewFromFloat(amount).Round(constants.CurrencyPlaces)
	formatted := formatPositiveCurrency(rounded.Abs())
	if rounded.IsNegative() {
		return "-" + symbol + formatted
	}
	return symbol + formatted
}

func formatPositiveCurrency(value decimal.Decimal) string {
	formatted := value.StringFixed(constants.CurrencyPlaces)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + "." + decPart
}

// nonFinite renders values decimal cannot represent ("NaN", "+Inf", "-Inf").
func nonFinite(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
