package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatterMoney(t *testing.T) {
	f := DefaultFormatter()

	tests := map[string]string{
		"15000":       "KES 15,000.00",
		"0":           "KES 0.00",
		"1234567.891": "KES 1,234,567.89",
		"-500":        "-KES 500.00",
		"0.005":       "KES 0.01",
	}
	for in, want := range tests {
		assert.Equal(t, want, f.Money(decimal.RequireFromString(in)), in)
	}
	assert.Equal(t, "(KES 8,000.00)", f.Outflow(decimal.NewFromInt(8000)))
}

func TestFormatterCurrencyOverride(t *testing.T) {
	f := NewFormatter("USD", "not a locale!")
	assert.Equal(t, "USD 1,000.00", f.Money(decimal.NewFromInt(1000)))
	assert.Equal(t, "USD", f.Currency())
}

func TestFormatterPercentAndDate(t *testing.T) {
	f := DefaultFormatter()
	assert.Equal(t, "66.67%", f.Percent(decimal.RequireFromString("66.666666")))
	assert.Equal(t, "0.00%", f.Percent(decimal.Zero))
	assert.Equal(t, "5 Mar 2024", f.Date(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)))
}
