package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/bizledger/constants"
	"github.com/joseph-ayodele/bizledger/internal/entity"
	"github.com/joseph-ayodele/bizledger/internal/period"
)

// BudgetLine is the read-time analysis of one budget.
type BudgetLine struct {
	Budget         entity.Budget          `json:"budget"`
	Actual         decimal.Decimal        `json:"actualExpenses"`
	Variance       decimal.Decimal        `json:"variance"`
	PercentageUsed decimal.Decimal        `json:"percentageUsed"`
	Status         constants.BudgetStatus `json:"status"`
}

// BudgetReport is the analysis of every budget plus portfolio totals.
type BudgetReport struct {
	Lines         []BudgetLine    `json:"lines"`
	TotalBudgeted decimal.Decimal `json:"totalBudgeted"`
	TotalActual   decimal.Decimal `json:"totalActual"`
	TotalVariance decimal.Decimal `json:"totalVariance"`
}

// AnalyzeBudget matches expense transactions to b by category and by date
// within [StartDate, EndDate].
func AnalyzeBudget(b entity.Budget, txs []entity.Transaction) BudgetLine {
	iv := period.Interval{Start: b.StartDate, End: b.EndDate}
	actual := decimal.Zero
	for _, tx := range txs {
		if tx.Type == entity.Expense && tx.Category == b.Category && iv.Contains(tx.Date) {
			actual = actual.Add(tx.Amount)
		}
	}

	variance := b.BudgetedAmount.Sub(actual)
	status := constants.BudgetWithin
	if variance.IsNegative() {
		status = constants.BudgetOver
	}
	return BudgetLine{
		Budget:         b,
		Actual:         actual,
		Variance:       variance,
		PercentageUsed: Percent(actual, b.BudgetedAmount),
		Status:         status,
	}
}

// AnalyzeBudgets analyses each budget in input order.
func AnalyzeBudgets(budgets []entity.Budget, txs []entity.Transaction) BudgetReport {
	r := BudgetReport{Lines: make([]BudgetLine, 0, len(budgets))}
	for _, b := range budgets {
		line := AnalyzeBudget(b, txs)
		r.Lines = append(r.Lines, line)
		r.TotalBudgeted = r.TotalBudgeted.Add(b.BudgetedAmount)
		r.TotalActual = r.TotalActual.Add(line.Actual)
	}
	r.TotalVariance = r.TotalBudgeted.Sub(r.TotalActual)
	return r
}

// RecentBudgetExpenses returns up to n expense transactions whose category
// has a budget, newest first.
func RecentBudgetExpenses(budgets []entity.Budget, txs []entity.Transaction, n int) []entity.Transaction {
	cats := make(map[string]struct{}, len(budgets))
	for _, b := range budgets {
		cats[b.Category] = struct{}{}
	}
	var out []entity.Transaction
	for _, tx := range txs {
		if _, ok := cats[tx.Category]; ok && tx.Type == entity.Expense {
			out = append(out, tx)
		}
	}
	return newestFirst(out, n)
}

func newestFirst(txs []entity.Transaction, n int) []entity.Transaction {
	sorted := append([]entity.Transaction(nil), txs...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.After(sorted[j].Date) })
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
