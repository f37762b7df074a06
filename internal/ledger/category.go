package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/bizledger/internal/entity"
)

// CategoryTotal is the summed amount of one category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// ByCategory groups transactions of type typ by category. Categories appear
// in the order they are first encountered.
func ByCategory(txs []entity.Transaction, typ entity.TransactionType) []CategoryTotal {
	var out []CategoryTotal
	index := make(map[string]int)
	for _, tx := range txs {
		if tx.Type != typ {
			continue
		}
		i, ok := index[tx.Category]
		if !ok {
			i = len(out)
			index[tx.Category] = i
			out = append(out, CategoryTotal{Category: tx.Category})
		}
		out[i].Amount = out[i].Amount.Add(tx.Amount)
	}
	return out
}

// TopCategories returns the n largest totals in descending order. Ties keep
// their input order. n <= 0 returns every category sorted.
func TopCategories(totals []CategoryTotal, n int) []CategoryTotal {
	sorted := append([]CategoryTotal(nil), totals...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Amount.GreaterThan(sorted[j].Amount)
	})
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// SumTotals adds up a category breakdown.
func SumTotals(totals []CategoryTotal) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(t.Amount)
	}
	return sum
}

// Categories lists the distinct transaction categories in first-seen order.
func Categories(txs []entity.Transaction) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, tx := range txs {
		if _, ok := seen[tx.Category]; ok {
			continue
		}
		seen[tx.Category] = struct{}{}
		out = append(out, tx.Category)
	}
	return out
}
