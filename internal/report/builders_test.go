package report

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/bizledger/internal/entity"
	"github.com/joseph-ayodele/bizledger/internal/ledger"
	"github.com/joseph-ayodele/bizledger/internal/period"
)

func day(d int) time.Time { return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC) }

func sampleTransactions() []entity.Transaction {
	return []entity.Transaction{
		{ID: uuid.New(), Type: entity.Income, Category: "Advertisements", Description: "Banner", Amount: decimal.NewFromInt(15000), Date: day(10)},
		{ID: uuid.New(), Type: entity.Expense, Category: "IT Department", Description: "Hosting", Amount: decimal.NewFromInt(5000), Date: day(20)},
	}
}

func labels(doc TabularDocument) []string {
	var out []string
	for _, row := range doc.Body {
		out = append(out, row[0])
	}
	return out
}

func TestTransactionsReport(t *testing.T) {
	r := Transactions("Income Report", sampleTransactions()[:1], DefaultFormatter())

	assert.Equal(t, []string{"Date", "Category", "Description", "Amount"}, r.Document.Headers)
	assert.Equal(t, [][]string{{"10 Jan 2024", "Advertisements", "Banner", "KES 15,000.00"}}, r.Document.Body)
	amount, _ := r.Records[0].Get("Amount")
	assert.True(t, decimal.NewFromInt(15000).Equal(amount.(decimal.Decimal)))
	assert.Equal(t, "income_report.pdf", r.FileName("pdf"))
}

func TestProfitLossReport(t *testing.T) {
	iv := period.Interval{Start: day(1), End: day(31)}
	r := ProfitLoss(ledger.ProfitLoss(sampleTransactions(), iv), "2024-01-01 to 2024-01-31", DefaultFormatter())

	assert.Equal(t, "Profit & Loss Statement - 2024-01-01 to 2024-01-31", r.Title)
	assert.Equal(t, []string{
		"Revenue - Advertisements", "Total Revenue", "",
		"Expense - IT Department", "Total Expenses", "",
		"Net Profit (Loss)",
	}, labels(r.Document))
	assert.Equal(t, "KES 10,000.00", r.Document.Body[6][1])
	assert.Equal(t, "profit_and_loss_statement_-_2024-01-01_to_2024-01-31.xlsx", r.FileName("xlsx"))
}

func TestCashFlowReport(t *testing.T) {
	iv := period.Interval{Start: day(1), End: day(31)}
	cf := ledger.BuildCashFlow(sampleTransactions(), []entity.PettyCashEntry{
		{Type: entity.PettyCashWithdraw, Amount: decimal.NewFromInt(300), Date: day(5)},
	}, iv)

	r := CashFlow(cf, "Current Month", DefaultFormatter())
	body := r.Document.Body
	assert.Equal(t, []string{"Cash from Advertisements", "KES 15,000.00"}, body[1])
	assert.Contains(t, body, []string{"Cash for IT Department", "(KES 5,000.00)"})
	assert.Contains(t, body, []string{"Net Investing Cash Flow", "KES 0.00"})
	assert.Equal(t, []string{"NET CASH FLOW", "KES 9,700.00"}, body[len(body)-1])

	sheet := ToSpreadsheetRows(r.Records)
	assert.Equal(t, []string{"Category", "Amount"}, sheet.Columns)
	assert.Contains(t, sheet.Rows, []any{"Total Operating Outflows", -5000.0})
}

func TestBudgetReport(t *testing.T) {
	budgets := []entity.Budget{{
		Category: "IT Department", BudgetedAmount: decimal.NewFromInt(4000),
		Period: entity.Monthly, StartDate: day(1), EndDate: day(31),
	}}
	r := BudgetAnalysis(ledger.AnalyzeBudgets(budgets, sampleTransactions()), DefaultFormatter())

	require.Len(t, r.Document.Body, 1)
	assert.Equal(t, []string{"IT Department", "monthly", "KES 4,000.00", "KES 5,000.00", "-KES 1,000.00", "Over Budget"}, r.Document.Body[0])
	pct, _ := r.Records[0].Get("Percentage Used")
	assert.Equal(t, "125.0%", pct)
}

func TestBalanceSheetReport(t *testing.T) {
	items := []entity.BalanceSheetItem{
		{Category: entity.Assets, Subcategory: "Equipment", Amount: decimal.NewFromInt(100), Date: day(1)},
		{Category: entity.Equity, Subcategory: "Share Capital", Amount: decimal.NewFromInt(90), Date: day(1)},
	}
	r := BalanceSheet(ledger.AnalyzeBalanceSheet(items), items, day(31), DefaultFormatter())

	assert.Equal(t, "Balance Sheet - As of 31 Jan 2024", r.Title)
	got := labels(r.Document)
	assert.Contains(t, got, "ASSETS")
	assert.Contains(t, got, "  Equipment")
	assert.Equal(t, "Not balanced (difference KES 10.00)", got[len(got)-1])
	assert.Len(t, r.Records, 2)
}

func TestAnalyticsReport(t *testing.T) {
	iv := period.Interval{Start: day(1), End: day(31)}
	r := Analytics(ledger.Analytics(sampleTransactions(), iv, "all"), "Current Month", DefaultFormatter())

	assert.Equal(t, []string{
		"Total Income", "Total Expenses", "Net Profit", "Profit Margin",
		"Transaction Count", "Average Transaction Value", "Income Growth",
	}, labels(r.Document))
	assert.Equal(t, "66.67%", r.Document.Body[3][1])
	assert.Equal(t, "0.00%", r.Document.Body[6][1])
}
