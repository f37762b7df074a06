package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/bizledger/internal/entity"
	"github.com/joseph-ayodele/bizledger/internal/period"
)

// PettyCashSummary sums petty cash movements.
type PettyCashSummary struct {
	Added     decimal.Decimal `json:"added"`
	Withdrawn decimal.Decimal `json:"withdrawn"`
	Net       decimal.Decimal `json:"net"`
}

// PettyCashBalance returns the sum of adds minus the sum of withdrawals.
func PettyCashBalance(entries []entity.PettyCashEntry) decimal.Decimal {
	return sumPettyCash(entries, nil).Net
}

// PettyCashTotals sums the entries dated within iv.
func PettyCashTotals(entries []entity.PettyCashEntry, iv period.Interval) PettyCashSummary {
	return sumPettyCash(entries, &iv)
}

func sumPettyCash(entries []entity.PettyCashEntry, iv *period.Interval) PettyCashSummary {
	var s PettyCashSummary
	for _, e := range entries {
		if iv != nil && !iv.Contains(e.Date) {
			continue
		}
		switch e.Type {
		case entity.PettyCashAdd:
			s.Added = s.Added.Add(e.Amount)
		case entity.PettyCashWithdraw:
			s.Withdrawn = s.Withdrawn.Add(e.Amount)
		}
	}
	s.Net = s.Added.Sub(s.Withdrawn)
	return s
}
