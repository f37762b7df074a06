// Package ledger derives financial views from raw ledger records.
//
// Every function is pure: inputs are never mutated and no I/O is performed.
// Ratios with an empty denominator resolve to zero.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/bizledger/constants"
	"github.com/joseph-ayodele/bizledger/internal/entity"
	"github.com/joseph-ayodele/bizledger/internal/period"
)

var hundred = decimal.NewFromInt(100)

// Totals summarises a set of transactions.
type Totals struct {
	Income       decimal.Decimal `json:"totalIncome"`
	Expenses     decimal.Decimal `json:"totalExpenses"`
	NetProfit    decimal.Decimal `json:"netProfit"`
	ProfitMargin decimal.Decimal `json:"profitMargin"`
}

// Filter returns the transactions dated within iv whose category matches
// category. constants.AllCategories and "" disable the category match.
func Filter(txs []entity.Transaction, iv period.Interval, category string) []entity.Transaction {
	out := make([]entity.Transaction, 0, len(txs))
	for _, tx := range txs {
		if !iv.Contains(tx.Date) {
			continue
		}
		if category != "" && category != constants.AllCategories && tx.Category != category {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// ComputeTotals sums income and expenses and derives net profit and margin.
func ComputeTotals(txs []entity.Transaction) Totals {
	var t Totals
	for _, tx := range txs {
		switch tx.Type {
		case entity.Income:
			t.Income = t.Income.Add(tx.Amount)
		case entity.Expense:
			t.Expenses = t.Expenses.Add(tx.Amount)
		}
	}
	t.NetProfit = t.Income.Sub(t.Expenses)
	t.ProfitMargin = Percent(t.NetProfit, t.Income)
	return t
}

// Percent returns part/whole*100, or zero when whole is not positive.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}

// Growth returns the percentage change from previous to current, or zero
// when previous is not positive.
func Growth(current, previous decimal.Decimal) decimal.Decimal {
	return Percent(current.Sub(previous), previous)
}

// IncomeGrowth compares currentIncome with the income of the interval
// immediately preceding iv. The previous figure is computed over all
// transactions with no category filter.
func IncomeGrowth(currentIncome decimal.Decimal, all []entity.Transaction, iv period.Interval) decimal.Decimal {
	prev, ok := period.Previous(iv)
	if !ok {
		return decimal.Zero
	}
	previous := ComputeTotals(Filter(all, prev, constants.AllCategories)).Income
	return Growth(currentIncome, previous)
}

// AverageTransactionValue returns (income + expenses) / count.
func AverageTransactionValue(txs []entity.Transaction) decimal.Decimal {
	if len(txs) == 0 {
		return decimal.Zero
	}
	t := ComputeTotals(txs)
	return t.Income.Add(t.Expenses).Div(decimal.NewFromInt(int64(len(txs))))
}
