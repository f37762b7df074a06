package report

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/joseph-ayodele/bizledger/constants"
)

// Formatter renders amounts, percentages and dates for display.
type Formatter struct {
	currency string
	printer  *message.Printer
}

// NewFormatter builds a formatter for an ISO currency code and a BCP 47
// locale. Unknown locales fall back to English grouping.
func NewFormatter(currency, locale string) *Formatter {
	if currency == "" {
		currency = constants.DefaultCurrency
	}
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Formatter{currency: currency, printer: message.NewPrinter(tag)}
}

// DefaultFormatter formats Kenyan shillings the way en-KE does.
func DefaultFormatter() *Formatter {
	return NewFormatter(constants.DefaultCurrency, "en-KE")
}

// Currency returns the ISO code used as the amount prefix.
func (f *Formatter) Currency() string { return f.currency }

// Money renders d with two decimals and locale grouping, e.g. "KES 15,000.00".
func (f *Formatter) Money(d decimal.Decimal) string {
	rounded := d.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Abs()
	}
	return sign + f.currency + " " + f.printer.Sprint(number.Decimal(rounded.InexactFloat64(), number.Scale(2)))
}

// Outflow renders d in accounting parentheses, e.g. "(KES 500.00)".
func (f *Formatter) Outflow(d decimal.Decimal) string {
	return "(" + f.Money(d) + ")"
}

// Percent renders d with two decimals and a percent sign.
func (f *Formatter) Percent(d decimal.Decimal) string {
	return d.StringFixed(2) + "%"
}

// Date renders a calendar date as "15 Jan 2024".
func (f *Formatter) Date(t time.Time) string {
	return t.Format("2 Jan 2006")
}
