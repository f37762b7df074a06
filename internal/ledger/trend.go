package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/bizledger/internal/entity"
)

const monthLayout = "2006-01"

// MonthBucket holds the income and expense sums of one calendar month.
type MonthBucket struct {
	Month    string          `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// MonthlyTrend buckets transactions by year-month, sorted ascending.
func MonthlyTrend(txs []entity.Transaction) []MonthBucket {
	buckets := make(map[string]*MonthBucket)
	for _, tx := range txs {
		key := tx.Date.UTC().Format(monthLayout)
		b, ok := buckets[key]
		if !ok {
			b = &MonthBucket{Month: key}
			buckets[key] = b
		}
		if tx.Type == entity.Income {
			b.Income = b.Income.Add(tx.Amount)
		} else {
			b.Expenses = b.Expenses.Add(tx.Amount)
		}
	}

	out := make([]MonthBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}
