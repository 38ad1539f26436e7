// Package currency formats monetary amounts for API responses and logs.
// Amounts are rendered with grouping separators using the configured
// currency symbol, e.g. "$1,234.50".
package currency

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders decimal amounts with a fixed symbol prefix.
type Formatter struct {
	symbol  string
	printer *message.Printer
}

// NewFormatter creates a formatter for the given currency symbol.
func NewFormatter(symbol string) *Formatter {
	return &Formatter{
		symbol:  symbol,
		printer: message.NewPrinter(language.English),
	}
}

// Format renders an amount with two decimal places and grouping
// separators, prefixed with the currency symbol. Negative amounts render
// as "-$1.50".
func (f *Formatter) Format(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	v, _ := amount.Round(2).Float64()
	return sign + f.symbol + f.printer.Sprint(number.Decimal(v,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
