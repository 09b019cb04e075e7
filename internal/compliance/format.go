package compliance

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// amountLocale controls grouping and decimal separators in compliance messages.
var amountLocale = language.AmericanEnglish

// FormatAmount renders n with thousands separators and at most three fraction digits,
// e.g. 100000 -> "100,000" and 1234.5 -> "1,234.5".
func FormatAmount(n float64) string {
	p := message.NewPrinter(amountLocale)
	return p.Sprint(number.Decimal(n, number.MaxFractionDigits(3)))
}
