package cli

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// formatDollars renders a dollar amount with thousands separators, to the
// cent when the amount is fractional and to the dollar otherwise.
func formatDollars(amount float64) string {
	if amount == float64(int64(amount)) {
		return printer.Sprintf("$%d", int64(amount))
	}
	return printer.Sprintf("$%.2f", amount)
}

// formatPercent renders a rate fraction as a display percentage.
func formatPercent(fraction float64) string {
	return printer.Sprintf("%.2f%%", fraction*100)
}
