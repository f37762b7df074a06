package importer

import (
	"bytes"
	"encoding/csv"
	"strings"
)

var templateSamples = map[Kind][]Row{
	KindIncome: {
		{"date": "2024-01-15", "category": "Advertisements", "description": "Digital advertising revenue", "amount": "15000"},
		{"date": "2024-01-16", "category": "Powerbank Sales", "description": "Powerbank unit sales", "amount": "8500"},
	},
	KindExpense: {
		{"date": "2024-01-15", "category": "IT Department", "description": "Cloud hosting", "amount": "5000"},
		{"date": "2024-01-16", "category": "Media Department", "description": "Social media campaign", "amount": "12000"},
	},
	KindPettyCash: {
		{"date": "2024-01-15", "type": "add", "description": "Initial petty cash fund", "amount": "10000"},
		{"date": "2024-01-16", "type": "withdraw", "description": "Office supplies purchase", "amount": "1500"},
	},
	KindBudget: {
		{"category": "Operations Department", "budgetedAmount": "50000", "period": "monthly", "startDate": "2024-01-01", "endDate": "2024-01-31"},
		{"category": "IT Department", "budgetedAmount": "30000", "period": "monthly", "startDate": "2024-01-01", "endDate": "2024-01-31"},
	},
	KindBalanceSheet: {
		{"category": "assets", "subcategory": "Cash and Cash Equivalents", "amount": "100000", "date": "2024-01-01"},
		{"category": "assets", "subcategory": "Equipment", "amount": "250000", "date": "2024-01-01"},
	},
}

// TemplateColumns returns the template header of kind.
func TemplateColumns(kind Kind) []string {
	return append([]string(nil), templateColumns[kind]...)
}

// Template renders the CSV template for kind: the template columns as the
// header followed by sample rows.
func Template(kind Kind) string {
	cols := templateColumns[kind]
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write(cols)
	for _, sample := range templateSamples[kind] {
		rec := make([]string, len(cols))
		for i, c := range cols {
			rec[i] = sample[c]
		}
		_ = w.Write(rec)
	}
	w.Flush()
	return buf.String()
}

// TemplateFileName is the download name of the template for kind.
func TemplateFileName(kind Kind) string {
	return strings.ReplaceAll(strings.ToLower(kind.Title()), " ", "_") + "_template.csv"
}
