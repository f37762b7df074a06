package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/bizledger/constants"
	"github.com/joseph-ayodele/bizledger/internal/entity"
	"github.com/joseph-ayodele/bizledger/internal/period"
)

func TestEmptyInputRatiosAreZero(t *testing.T) {
	totals := ComputeTotals(nil)
	assert.True(t, totals.ProfitMargin.IsZero())
	assert.True(t, IncomeGrowth(totals.Income, nil, january()).IsZero())
	assert.True(t, AverageTransactionValue(nil).IsZero())

	line := AnalyzeBudget(entity.Budget{Category: "IT Department", StartDate: day(2024, 1, 1), EndDate: day(2024, 2, 1)}, nil)
	assert.True(t, line.PercentageUsed.IsZero())
}

func TestFilterBoundariesAreInclusive(t *testing.T) {
	iv := january()
	txs := []entity.Transaction{
		tx(iv.Start, entity.Income, "Events", "100"),
		tx(iv.End, entity.Income, "Events", "200"),
		tx(day(2023, time.December, 31), entity.Income, "Events", "400"),
		tx(day(2024, time.February, 1), entity.Income, "Events", "800"),
	}

	got := Filter(txs, iv, constants.AllCategories)
	require.Len(t, got, 2)
	assert.Equal(t, iv.Start, got[0].Date)
	assert.Equal(t, iv.End, got[1].Date)
}

func TestFilterCategory(t *testing.T) {
	txs := []entity.Transaction{
		tx(day(2024, 1, 5), entity.Income, "Events", "100"),
		tx(day(2024, 1, 6), entity.Income, "Advertisements", "200"),
	}

	assert.Len(t, Filter(txs, january(), "Events"), 1)
	assert.Len(t, Filter(txs, january(), "all"), 2)
	assert.Empty(t, Filter(txs, january(), "events"))
}

func TestEndToEndScenario(t *testing.T) {
	txs := []entity.Transaction{
		tx(day(2024, 1, 10), entity.Income, "Advertisements", "15000"),
		tx(day(2024, 1, 20), entity.Expense, "IT Department", "5000"),
	}
	start, end := day(2024, 1, 1), day(2024, 1, 31)
	iv, err := period.Resolve(period.Custom, time.Now(), &start, &end)
	require.NoError(t, err)

	report := Analytics(txs, iv, constants.AllCategories)

	assertDecimal(t, "15000", report.Totals.Income)
	assertDecimal(t, "5000", report.Totals.Expenses)
	assertDecimal(t, "10000", report.Totals.NetProfit)
	assert.InDelta(t, 66.67, report.Totals.ProfitMargin.InexactFloat64(), 0.01)
	require.NotEmpty(t, report.TopRevenueCategories)
	assert.Equal(t, "Advertisements", report.TopRevenueCategories[0].Category)
	assertDecimal(t, "15000", report.TopRevenueCategories[0].Amount)
	assert.Equal(t, 2, report.TransactionCount)
	assertDecimal(t, "10000", report.AverageTransactionValue)
}

func TestIncomeGrowth(t *testing.T) {
	current := period.Interval{Start: day(2024, 2, 1), End: day(2024, 2, 29)}
	txs := []entity.Transaction{
		tx(day(2024, 1, 15), entity.Income, "Events", "10000"),
		tx(day(2024, 2, 15), entity.Income, "Events", "15000"),
	}

	growth := IncomeGrowth(decimal.NewFromInt(15000), txs, current)
	assertDecimal(t, "50", growth)

	none := IncomeGrowth(decimal.NewFromInt(15000), txs[1:], current)
	assert.True(t, none.IsZero())
}

func TestIncomeGrowthCountsFirstDayOfPreviousPeriod(t *testing.T) {
	txs := []entity.Transaction{
		tx(day(2023, 12, 1), entity.Income, "Events", "10000"),
		tx(day(2024, 1, 10), entity.Income, "Events", "15000"),
	}

	growth := IncomeGrowth(decimal.NewFromInt(15000), txs, january())
	assertDecimal(t, "50", growth)
}

func TestIncomeGrowthIgnoresCategoryFilter(t *testing.T) {
	current := period.Interval{Start: day(2024, 2, 1), End: day(2024, 2, 29)}
	txs := []entity.Transaction{
		tx(day(2024, 1, 15), entity.Income, "Advertisements", "5000"),
		tx(day(2024, 1, 16), entity.Income, "Events", "5000"),
		tx(day(2024, 2, 15), entity.Income, "Events", "15000"),
	}

	report := Analytics(txs, current, "Events")
	assertDecimal(t, "15000", report.Totals.Income)
	assertDecimal(t, "50", report.IncomeGrowth)
	assert.Equal(t, []string{"Advertisements", "Events"}, report.Categories)
}

func TestIncomeGrowthReversedIntervalIsZero(t *testing.T) {
	iv := period.Interval{Start: day(2024, 2, 1), End: day(2024, 1, 1)}
	txs := []entity.Transaction{tx(day(2023, 12, 1), entity.Income, "Events", "100")}

	assert.True(t, IncomeGrowth(decimal.NewFromInt(100), txs, iv).IsZero())
}

func TestProfitMarginNegativeWhenLossMaking(t *testing.T) {
	totals := ComputeTotals([]entity.Transaction{
		tx(day(2024, 1, 1), entity.Income, "Events", "1000"),
		tx(day(2024, 1, 2), entity.Expense, "Sales Department", "1500"),
	})

	assertDecimal(t, "-500", totals.NetProfit)
	assertDecimal(t, "-50", totals.ProfitMargin)
}
