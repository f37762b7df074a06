package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/bizledger/internal/entity"
)

func TestByCategorySumsMatchTotals(t *testing.T) {
	txs := []entity.Transaction{
		tx(day(2024, 1, 1), entity.Income, "Events", "120.50"),
		tx(day(2024, 1, 2), entity.Expense, "IT Department", "99.99"),
		tx(day(2024, 1, 3), entity.Income, "Advertisements", "300"),
		tx(day(2024, 1, 4), entity.Income, "Events", "0.50"),
		tx(day(2024, 1, 5), entity.Expense, "Miscellaneous", "10.01"),
	}
	totals := ComputeTotals(txs)

	income := ByCategory(txs, entity.Income)
	expenses := ByCategory(txs, entity.Expense)

	assert.True(t, SumTotals(income).Equal(totals.Income))
	assert.True(t, SumTotals(expenses).Equal(totals.Expenses))
	require.Len(t, income, 2)
	assert.Equal(t, "Events", income[0].Category)
	assertDecimal(t, "121", income[0].Amount)
}

func TestTopCategoriesStableDescending(t *testing.T) {
	totals := []CategoryTotal{
		{Category: "A", Amount: dec("10")},
		{Category: "B", Amount: dec("30")},
		{Category: "C", Amount: dec("10")},
		{Category: "D", Amount: dec("20")},
		{Category: "E", Amount: dec("5")},
		{Category: "F", Amount: dec("1")},
	}

	top := TopCategories(totals, 5)
	require.Len(t, top, 5)
	var names []string
	for _, c := range top {
		names = append(names, c.Category)
	}
	assert.Equal(t, []string{"B", "D", "A", "C", "E"}, names)
	assert.Equal(t, "A", totals[0].Category, "input must not be reordered")
}

func TestMonthlyTrendSortedByMonth(t *testing.T) {
	txs := []entity.Transaction{
		tx(day(2024, 3, 2), entity.Income, "Events", "30"),
		tx(day(2023, 12, 31), entity.Expense, "IT Department", "5"),
		tx(day(2024, 3, 20), entity.Expense, "IT Department", "10"),
		tx(day(2024, 1, 10), entity.Income, "Events", "7"),
	}

	trend := MonthlyTrend(txs)
	require.Len(t, trend, 3)
	assert.Equal(t, "2023-12", trend[0].Month)
	assert.Equal(t, "2024-01", trend[1].Month)
	assert.Equal(t, "2024-03", trend[2].Month)
	assertDecimal(t, "30", trend[2].Income)
	assertDecimal(t, "10", trend[2].Expenses)
}
