package catalog

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Display defaults match the storefront the catalog was built for.
const (
	DefaultLocale   = "en-IN"
	DefaultCurrency = "INR"
)

// PriceFormatter renders prices for display. It formats only; no
// conversion between currencies is performed.
type PriceFormatter struct {
	printer *message.Printer
	unit    currency.Unit
}

// NewPriceFormatter creates a formatter for a BCP 47 locale and an ISO 4217
// currency code.
func NewPriceFormatter(locale, code string) (*PriceFormatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("parse currency %q: %w", code, err)
	}
	return &PriceFormatter{printer: message.NewPrinter(tag), unit: unit}, nil
}

// Format renders price with the locale's digit grouping and the currency's
// standard number of decimals, the symbol attached without a space:
// 123456.5 in en-IN/INR is "₹1,23,456.50".
func (f *PriceFormatter) Format(price decimal.Decimal) string {
	out := f.printer.Sprint(currency.Symbol(f.unit.Amount(price.InexactFloat64())))
	// Drop the space the currency formatter puts after the symbol.
	return strings.Replace(out, " ", "", 1)
}

// Stars renders a rating as five stars, filling round(rating) of them.
func Stars(rating float64) string {
	filled := int(math.Round(rating))
	filled = max(0, min(5, filled))
	return strings.Repeat("★", filled) + strings.Repeat("☆", 5-filled)
}
