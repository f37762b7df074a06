package constants

// Balance sheet subcategories offered per category.
var balanceSubcategories = map[string][]string{
	"assets": {
		"Cash and Cash Equivalents",
		"Accounts Receivable",
		"Inventory",
		"Equipment",
		"Powerbank Machines",
		"Software",
		"Other Current Assets",
		"Other Fixed Assets",
	},
	"liabilities": {
		"Accounts Payable",
		"Short-term Loans",
		"Accrued Expenses",
		"Long-term Debt",
		"Other Liabilities",
	},
	"equity": {
		"Share Capital",
		"Retained Earnings",
		"Additional Paid-in Capital",
		"Other Equity",
	},
}

// BalanceSubcategories returns the suggested subcategories for a balance sheet
// category, or nil for an unknown category.
func BalanceSubcategories(category string) []string {
	subs, ok := balanceSubcategories[category]
	if !ok {
		return nil
	}
	return append([]string(nil), subs...)
}
