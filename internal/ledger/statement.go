package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/bizledger/internal/entity"
	"github.com/joseph-ayodele/bizledger/internal/period"
)

// DashboardTopN is the number of categories and recent transactions shown on
// the dashboard.
const DashboardTopN = 5

// ProfitLossStatement is revenue and expenses by category for a period.
type ProfitLossStatement struct {
	Revenue       []CategoryTotal `json:"revenue"`
	Expenses      []CategoryTotal `json:"expenses"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	GrossProfit   decimal.Decimal `json:"grossProfit"`
	NetProfit     decimal.Decimal `json:"netProfit"`
}

// ProfitLoss builds the P&L for iv over every category. No cost of sales is
// modelled, so gross profit equals revenue.
func ProfitLoss(txs []entity.Transaction, iv period.Interval) ProfitLossStatement {
	inPeriod := Filter(txs, iv, "")
	totals := ComputeTotals(inPeriod)
	return ProfitLossStatement{
		Revenue:       ByCategory(inPeriod, entity.Income),
		Expenses:      ByCategory(inPeriod, entity.Expense),
		TotalRevenue:  totals.Income,
		TotalExpenses: totals.Expenses,
		GrossProfit:   totals.Income,
		NetProfit:     totals.NetProfit,
	}
}

// DashboardSummary is the all-time overview.
type DashboardSummary struct {
	Totals             Totals               `json:"totals"`
	PettyCashBalance   decimal.Decimal      `json:"pettyCashBalance"`
	RecentTransactions []entity.Transaction `json:"recentTransactions"`
	IncomeByCategory   []CategoryTotal      `json:"incomeByCategory"`
}

// Dashboard summarises every record in snap regardless of date.
func Dashboard(snap entity.Snapshot) DashboardSummary {
	return DashboardSummary{
		Totals:             ComputeTotals(snap.Transactions),
		PettyCashBalance:   PettyCashBalance(snap.PettyCashEntries),
		RecentTransactions: newestFirst(snap.Transactions, DashboardTopN),
		IncomeByCategory:   ByCategory(snap.Transactions, entity.Income),
	}
}

// AnalyticsReport gathers the analytics views for one period and category.
type AnalyticsReport struct {
	Totals                  Totals          `json:"totals"`
	RevenueByCategory       []CategoryTotal `json:"revenueByCategory"`
	ExpensesByCategory      []CategoryTotal `json:"expensesByCategory"`
	TopRevenueCategories    []CategoryTotal `json:"topRevenueCategories"`
	TopExpenseCategories    []CategoryTotal `json:"topExpenseCategories"`
	Monthly                 []MonthBucket   `json:"monthlyData"`
	TransactionCount        int             `json:"transactionCount"`
	AverageTransactionValue decimal.Decimal `json:"averageTransactionValue"`
	IncomeGrowth            decimal.Decimal `json:"incomeGrowth"`
	Categories              []string        `json:"categories"`
}

// Analytics computes every analytics view. Growth compares against the
// previous interval over all categories; Categories lists every category
// across txs for use as filter options.
func Analytics(txs []entity.Transaction, iv period.Interval, category string) AnalyticsReport {
	filtered := Filter(txs, iv, category)
	totals := ComputeTotals(filtered)
	revenue := ByCategory(filtered, entity.Income)
	expenses := ByCategory(filtered, entity.Expense)

	return AnalyticsReport{
		Totals:                  totals,
		RevenueByCategory:       revenue,
		ExpensesByCategory:      expenses,
		TopRevenueCategories:    TopCategories(revenue, DashboardTopN),
		TopExpenseCategories:    TopCategories(expenses, DashboardTopN),
		Monthly:                 MonthlyTrend(filtered),
		TransactionCount:        len(filtered),
		AverageTransactionValue: AverageTransactionValue(filtered),
		IncomeGrowth:            IncomeGrowth(totals.Income, txs, iv),
		Categories:              Categories(txs),
	}
}
