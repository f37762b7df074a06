package report

import (
	"strconv"
	"strings"
	"time"

	"github.com/joseph-ayodele/bizledger/constants"
	"github.com/joseph-ayodele/bizledger/internal/entity"
	"github.com/joseph-ayodele/bizledger/internal/ledger"
)

// Report is a report in both encodings: a printable document of formatted
// strings and spreadsheet records of raw values.
type Report struct {
	Title    string
	Document TabularDocument
	Records  []Record
}

// FileName returns the download name for the report with ext ("pdf" or "xlsx").
func (r Report) FileName(ext string) string {
	base := strings.ToLower(strings.Join(strings.Fields(r.Title), "_"))
	base = strings.NewReplacer("&", "and", "/", "-", "\\", "-").Replace(base)
	return base + "." + ext
}

// PDF encodes the printable document.
func (r Report) PDF(lh Letterhead, generatedAt time.Time) ([]byte, error) {
	return RenderPDF(r.Document, lh, generatedAt)
}

// XLSX encodes the spreadsheet records.
func (r Report) XLSX(lh Letterhead, generatedAt time.Time) ([]byte, error) {
	return RenderXLSX(r.Title, ToSpreadsheetRows(r.Records), lh, generatedAt)
}

// Transactions lists income or expense transactions.
func Transactions(title string, txs []entity.Transaction, f *Formatter) Report {
	rows := make([]map[string]string, 0, len(txs))
	recs := make([]Record, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, map[string]string{
			"date":        f.Date(tx.Date),
			"category":    tx.Category,
			"description": tx.Description,
			"amount":      f.Money(tx.Amount),
		})
		recs = append(recs, Record{
			{"Date", f.Date(tx.Date)},
			{"Category", tx.Category},
			{"Description", tx.Description},
			{"Amount", tx.Amount},
		})
	}
	return Report{
		Title: title,
		Document: ToTabularDocument(title, rows,
			[]string{"date", "category", "description", "amount"},
			[]string{"Date", "Category", "Description", "Amount"}),
		Records: recs,
	}
}

// PettyCash lists petty cash movements.
func PettyCash(entries []entity.PettyCashEntry, f *Formatter) Report {
	const title = "Petty Cash Report"
	rows := make([]map[string]string, 0, len(entries))
	recs := make([]Record, 0, len(entries))
	for _, e := range entries {
		typ := "Add Money"
		if e.Type == entity.PettyCashWithdraw {
			typ = "Withdraw Money"
		}
		rows = append(rows, map[string]string{
			"date":        f.Date(e.Date),
			"type":        typ,
			"description": e.Description,
			"amount":      f.Money(e.Amount),
		})
		recs = append(recs, Record{
			{"Date", f.Date(e.Date)},
			{"Type", typ},
			{"Description", e.Description},
			{"Amount", e.Amount},
		})
	}
	return Report{
		Title: title,
		Document: ToTabularDocument(title, rows,
			[]string{"date", "type", "description", "amount"},
			[]string{"Date", "Type", "Description", "Amount"}),
		Records: recs,
	}
}

func statusLabel(s constants.BudgetStatus) string {
	if s == constants.BudgetWithin {
		return "Within Budget"
	}
	return "Over Budget"
}

// BudgetAnalysis lists every budget against its actual spend.
func BudgetAnalysis(r ledger.BudgetReport, f *Formatter) Report {
	const title = "Budget Analysis Report"
	rows := make([]map[string]string, 0, len(r.Lines))
	recs := make([]Record, 0, len(r.Lines))
	for _, l := range r.Lines {
		rows = append(rows, map[string]string{
			"category": l.Budget.Category,
			"period":   string(l.Budget.Period),
			"budgeted": f.Money(l.Budget.BudgetedAmount),
			"actual":   f.Money(l.Actual),
			"variance": f.Money(l.Variance),
			"status":   statusLabel(l.Status),
		})
		recs = append(recs, Record{
			{"Category", l.Budget.Category},
			{"Period", string(l.Budget.Period)},
			{"Start Date", f.Date(l.Budget.StartDate)},
			{"End Date", f.Date(l.Budget.EndDate)},
			{"Budgeted Amount", l.Budget.BudgetedAmount},
			{"Actual Expenses", l.Actual},
			{"Variance", l.Variance},
			{"Percentage Used", l.PercentageUsed.StringFixed(1) + "%"},
			{"Status", statusLabel(l.Status)},
		})
	}
	return Report{
		Title: title,
		Document: ToTabularDocument(title, rows,
			[]string{"category", "period", "budgeted", "actual", "variance", "status"},
			[]string{"Category", "Period", "Budgeted", "Actual", "Variance", "Status"}),
		Records: recs,
	}
}

// lineItems accumulates a two column statement in both encodings.
type lineItems struct {
	rows []map[string]string
	recs []Record
}

func (li *lineItems) add(label, shown string, raw any) {
	li.rows = append(li.rows, map[string]string{"category": label, "amount": shown})
	li.recs = append(li.recs, Record{{"Category", label}, {"Amount", raw}})
}

func (li *lineItems) blank() {
	li.rows = append(li.rows, map[string]string{})
	li.recs = append(li.recs, Record{{"Category", ""}, {"Amount", nil}})
}

func (li *lineItems) report(title string) Report {
	return Report{
		Title:    title,
		Document: ToTabularDocument(title, li.rows, []string{"category", "amount"}, []string{"Category", "Amount"}),
		Records:  li.recs,
	}
}

// ProfitLoss renders the P&L statement for the period named by label.
func ProfitLoss(s ledger.ProfitLossStatement, label string, f *Formatter) Report {
	var li lineItems
	for _, c := range s.Revenue {
		li.add("Revenue - "+c.Category, f.Money(c.Amount), c.Amount)
	}
	li.add("Total Revenue", f.Money(s.TotalRevenue), s.TotalRevenue)
	li.blank()
	for _, c := range s.Expenses {
		li.add("Expense - "+c.Category, f.Money(c.Amount), c.Amount)
	}
	li.add("Total Expenses", f.Money(s.TotalExpenses), s.TotalExpenses)
	li.blank()
	li.add("Net Profit (Loss)", f.Money(s.NetProfit), s.NetProfit)
	return li.report("Profit & Loss Statement - " + label)
}

// CashFlow renders the cash flow statement for the period named by label.
// Outflows are shown in parentheses in the document and as negative
// numbers in the spreadsheet.
func CashFlow(cf ledger.CashFlow, label string, f *Formatter) Report {
	var li lineItems
	li.add("OPERATING ACTIVITIES", "", nil)
	for _, c := range cf.InflowsByCategory {
		li.add("Cash from "+c.Category, f.Money(c.Amount), c.Amount)
	}
	li.add("Total Operating Inflows", f.Money(cf.Operating.Inflows), cf.Operating.Inflows)
	li.blank()
	for _, c := range cf.OutflowsByCategory {
		li.add("Cash for "+c.Category, f.Outflow(c.Amount), c.Amount.Neg())
	}
	li.add("Total Operating Outflows", f.Outflow(cf.Operating.Outflows), cf.Operating.Outflows.Neg())
	li.add("Net Operating Cash Flow", f.Money(cf.Operating.Net), cf.Operating.Net)
	li.blank()
	li.add("INVESTING ACTIVITIES", "", nil)
	li.add("Net Investing Cash Flow", f.Money(cf.Investing.Net), cf.Investing.Net)
	li.blank()
	li.add("FINANCING ACTIVITIES", "", nil)
	li.add("Net Financing Cash Flow", f.Money(cf.Financing.Net), cf.Financing.Net)
	li.blank()
	li.add("PETTY CASH", "", nil)
	li.add("Petty Cash Added", f.Money(cf.PettyCash.Inflows), cf.PettyCash.Inflows)
	li.add("Petty Cash Withdrawn", f.Outflow(cf.PettyCash.Outflows), cf.PettyCash.Outflows.Neg())
	li.add("Net Petty Cash Flow", f.Money(cf.PettyCash.Net), cf.PettyCash.Net)
	li.blank()
	li.add("NET CASH FLOW", f.Money(cf.NetCashFlow), cf.NetCashFlow)
	return li.report("Cash Flow Statement - " + label)
}

// BalanceSheet renders the grouped balance sheet as at asOf. The
// spreadsheet lists the individual items.
func BalanceSheet(sheet ledger.BalanceSheet, items []entity.BalanceSheetItem, asOf time.Time, f *Formatter) Report {
	var li lineItems
	for _, sec := range sheet.Sections {
		li.add(strings.ToUpper(string(sec.Category)), "", nil)
		for _, sub := range sec.Subcategories {
			li.add("  "+sub.Category, f.Money(sub.Amount), sub.Amount)
		}
		li.add("Total "+string(sec.Category), f.Money(sec.Total), sec.Total)
		li.blank()
	}
	status := "Balanced"
	if !sheet.Balanced {
		status = "Not balanced (difference " + f.Money(sheet.Difference) + ")"
	}
	li.add("Total Liabilities + Equity", f.Money(sheet.TotalLiabilities.Add(sheet.TotalEquity)), sheet.TotalLiabilities.Add(sheet.TotalEquity))
	li.add(status, "", nil)

	r := li.report("Balance Sheet - As of " + f.Date(asOf))
	r.Records = make([]Record, 0, len(items))
	for _, it := range items {
		r.Records = append(r.Records, Record{
			{"Category", string(it.Category)},
			{"Subcategory", it.Subcategory},
			{"Amount", it.Amount},
			{"Date", f.Date(it.Date)},
		})
	}
	return r
}

// Analytics renders the headline analytics metrics.
func Analytics(a ledger.AnalyticsReport, label string, f *Formatter) Report {
	title := "Analytics Report - " + label
	metrics := []struct {
		name  string
		shown string
		raw   any
	}{
		{"Total Income", f.Money(a.Totals.Income), a.Totals.Income},
		{"Total Expenses", f.Money(a.Totals.Expenses), a.Totals.Expenses},
		{"Net Profit", f.Money(a.Totals.NetProfit), a.Totals.NetProfit},
		{"Profit Margin", f.Percent(a.Totals.ProfitMargin), f.Percent(a.Totals.ProfitMargin)},
		{"Transaction Count", strconv.Itoa(a.TransactionCount), a.TransactionCount},
		{"Average Transaction Value", f.Money(a.AverageTransactionValue), a.AverageTransactionValue},
		{"Income Growth", f.Percent(a.IncomeGrowth), f.Percent(a.IncomeGrowth)},
	}
	rows := make([]map[string]string, 0, len(metrics))
	recs := make([]Record, 0, len(metrics))
	for _, m := range metrics {
		rows = append(rows, map[string]string{"metric": m.name, "value": m.shown})
		recs = append(recs, Record{{"Metric", m.name}, {"Value", m.raw}})
	}
	return Report{
		Title:    title,
		Document: ToTabularDocument(title, rows, []string{"metric", "value"}, []string{"Metric", "Value"}),
		Records:  recs,
	}
}
