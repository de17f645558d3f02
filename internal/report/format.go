// Package report renders scenario results and preset listings for a terminal.
package report

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter formats money and rates for display.
type Formatter struct {
	printer *message.Printer
}

// NewFormatter returns a Formatter using US English digit grouping.
func NewFormatter() *Formatter {
	return &Formatter{
		printer: message.NewPrinter(language.AmericanEnglish),
	}
}

// Currency rounds v to whole dollars and groups thousands, e.g. "-$12,345".
func (f *Formatter) Currency(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}

	d := decimal.NewFromFloat(v).Round(0)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	return sign + "$" + f.printer.Sprintf("%d", d.IntPart())
}

// Percent renders a rate such as 0.0062 as "0.62%".
func (f *Formatter) Percent(rate float64) string {
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return "n/a"
	}
	return decimal.NewFromFloat(rate).Shift(2).Round(2).String() + "%"
}
