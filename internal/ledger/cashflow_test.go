package ledger

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joseph-ayodele/bizledger/internal/entity"
)

func TestPettyCashBalanceOrderIndependent(t *testing.T) {
	entries := []entity.PettyCashEntry{
		petty(day(2024, 1, 1), entity.PettyCashAdd, "500"),
		petty(day(2024, 1, 2), entity.PettyCashWithdraw, "120.25"),
		petty(day(2024, 1, 3), entity.PettyCashAdd, "80"),
		petty(day(2024, 1, 4), entity.PettyCashWithdraw, "600"),
		petty(day(2024, 1, 5), entity.PettyCashAdd, "0.25"),
	}
	want := PettyCashBalance(entries)
	assertDecimal(t, "-140", want)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := append([]entity.PettyCashEntry(nil), entries...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.True(t, want.Equal(PettyCashBalance(shuffled)))
	}
}

func TestBuildCashFlow(t *testing.T) {
	txs := []entity.Transaction{
		tx(day(2024, 1, 10), entity.Income, "Advertisements", "15000"),
		tx(day(2024, 1, 12), entity.Income, "Events", "5000"),
		tx(day(2024, 1, 20), entity.Expense, "IT Department", "8000"),
		tx(day(2024, 2, 1), entity.Expense, "IT Department", "99999"),
	}
	entries := []entity.PettyCashEntry{
		petty(day(2024, 1, 2), entity.PettyCashAdd, "1000"),
		petty(day(2024, 1, 3), entity.PettyCashWithdraw, "300"),
		petty(day(2023, 12, 3), entity.PettyCashWithdraw, "300"),
	}

	cf := BuildCashFlow(txs, entries, january())

	assertDecimal(t, "20000", cf.Operating.Inflows)
	assertDecimal(t, "8000", cf.Operating.Outflows)
	assertDecimal(t, "12000", cf.Operating.Net)
	assert.True(t, cf.Investing.Net.IsZero())
	assert.True(t, cf.Financing.Net.IsZero())
	assertDecimal(t, "700", cf.PettyCash.Net)
	assertDecimal(t, "12700", cf.NetCashFlow)
	assert.Len(t, cf.InflowsByCategory, 2)
}

func TestDashboardRecentTransactions(t *testing.T) {
	var txs []entity.Transaction
	for d := 1; d <= 7; d++ {
		txs = append(txs, tx(day(2024, 1, d), entity.Income, "Events", "10"))
	}
	summary := Dashboard(entity.Snapshot{
		Transactions:     txs,
		PettyCashEntries: []entity.PettyCashEntry{petty(day(2024, 1, 1), entity.PettyCashAdd, "50")},
	})

	assert.Len(t, summary.RecentTransactions, DashboardTopN)
	assert.Equal(t, day(2024, 1, 7), summary.RecentTransactions[0].Date)
	assertDecimal(t, "70", summary.Totals.Income)
	assertDecimal(t, "50", summary.PettyCashBalance)
}

func TestProfitLoss(t *testing.T) {
	txs := []entity.Transaction{
		tx(day(2024, 1, 10), entity.Income, "Advertisements", "15000"),
		tx(day(2024, 1, 20), entity.Expense, "IT Department", "5000"),
		tx(day(2024, 1, 21), entity.Expense, "Sales Department", "2500"),
	}

	pl := ProfitLoss(txs, january())
	assertDecimal(t, "15000", pl.GrossProfit)
	assertDecimal(t, "7500", pl.NetProfit)
	assert.Len(t, pl.Expenses, 2)
}
