package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/bizledger/internal/entity"
	"github.com/joseph-ayodele/bizledger/internal/period"
)

// CashSection is one section of the cash flow statement.
type CashSection struct {
	Inflows  decimal.Decimal `json:"inflows"`
	Outflows decimal.Decimal `json:"outflows"`
	Net      decimal.Decimal `json:"net"`
}

func newCashSection(in, out decimal.Decimal) CashSection {
	return CashSection{Inflows: in, Outflows: out, Net: in.Sub(out)}
}

// CashFlow is the cash flow statement for a period. Investing and financing
// are always zero since no record type models them.
type CashFlow struct {
	Operating          CashSection     `json:"operating"`
	Investing          CashSection     `json:"investing"`
	Financing          CashSection     `json:"financing"`
	PettyCash          CashSection     `json:"pettyCash"`
	InflowsByCategory  []CategoryTotal `json:"inflowsByCategory"`
	OutflowsByCategory []CategoryTotal `json:"outflowsByCategory"`
	NetCashFlow        decimal.Decimal `json:"netCashFlow"`
}

// BuildCashFlow builds the statement for iv over every category.
func BuildCashFlow(txs []entity.Transaction, petty []entity.PettyCashEntry, iv period.Interval) CashFlow {
	inPeriod := Filter(txs, iv, "")
	totals := ComputeTotals(inPeriod)
	pc := PettyCashTotals(petty, iv)

	cf := CashFlow{
		Operating:          newCashSection(totals.Income, totals.Expenses),
		Investing:          newCashSection(decimal.Zero, decimal.Zero),
		Financing:          newCashSection(decimal.Zero, decimal.Zero),
		PettyCash:          newCashSection(pc.Added, pc.Withdrawn),
		InflowsByCategory:  ByCategory(inPeriod, entity.Income),
		OutflowsByCategory: ByCategory(inPeriod, entity.Expense),
	}
	cf.NetCashFlow = cf.Operating.Net.Add(cf.Investing.Net).Add(cf.Financing.Net).Add(cf.PettyCash.Net)
	return cf
}
