// Package format renders money, dates and text for display in the single
// supported locale (en-IN, rupees).
package format

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const CurrencySymbol = "₹"

var printer = message.NewPrinter(language.MustParse("en-IN"))

// Currency formats whole rupees, e.g. 1050 as "₹1,050".
func Currency(amount int64) string {
	if amount < 0 {
		return "-" + CurrencySymbol + printer.Sprintf("%d", -amount)
	}
	return CurrencySymbol + printer.Sprintf("%d", amount)
}

// Date turns a YYYY-MM-DD slot date into "20 Nov 2026". Unparseable input is
// returned unchanged.
func Date(date string) string {
	t, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return date
	}
	return t.Format("02 Jan 2006")
}

// Truncate shortens text to maxLen runes and appends "...".
func Truncate(text string, maxLen int) string {
	r := []rune(text)
	if len(r) <= maxLen {
		return text
	}
	return string(r[:max(maxLen, 0)]) + "..."
}
