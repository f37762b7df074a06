package constants

import (
	"strings"
)

type Category string

// Income categories.
const (
	Advertisements   Category = "Advertisements"
	PowerbankSales   Category = "Powerbank Sales"
	PowerbankRentals Category = "Powerbank Rentals"
	Events           Category = "Events"
	Other            Category = "Other"
)

// Expense and budget categories.
const (
	SalesDepartment            Category = "Sales Department"
	Immersions                 Category = "Immersions"
	LocationsDepartment        Category = "Locations Department"
	MediaDepartment            Category = "Media Department"
	OperationsDepartment       Category = "Operations Department"
	FinanceDepartment          Category = "Finance Department"
	ITDepartment               Category = "IT Department"
	ExecutiveAdminDepartment   Category = "Executive/Admin Department"
	BrandAmbassadorsDepartment Category = "Brand Ambassadors Department"
	EventsDepartment           Category = "Events Department"
	Miscellaneous              Category = "Miscellaneous"
)

// AllCategories disables the category filter when passed as a filter value.
const AllCategories = "all"

var incomeCategories = []Category{
	Advertisements,
	PowerbankSales,
	PowerbankRentals,
	Events,
	Other,
}

var expenseCategories = []Category{
	SalesDepartment,
	Immersions,
	LocationsDepartment,
	MediaDepartment,
	OperationsDepartment,
	FinanceDepartment,
	ITDepartment,
	ExecutiveAdminDepartment,
	BrandAmbassadorsDepartment,
	EventsDepartment,
	Miscellaneous,
}

// IncomeCategories returns the suggested income categories in display order.
func IncomeCategories() []string { return asStrings(incomeCategories) }

// ExpenseCategories returns the suggested expense (and budget) categories in display order.
func ExpenseCategories() []string { return asStrings(expenseCategories) }

func asStrings(cats []Category) []string {
	result := make([]string, len(cats))
	for i, cat := range cats {
		result[i] = string(cat)
	}
	return result
}

// Canonicalize maps loosely typed input ("it department", "ads") onto a suggested
// category. The bool reports whether a match was found; unmatched input is
// returned trimmed and unchanged since categories are not storage constraints.
func Canonicalize(input string) (string, bool) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", false
	}

	normalized := strings.ToLower(trimmed)

	synonyms := map[string]Category{
		"ads":           Advertisements,
		"advertising":   Advertisements,
		"advert":        Advertisements,
		"rentals":       PowerbankRentals,
		"powerbank":     PowerbankSales,
		"it":            ITDepartment,
		"admin":         ExecutiveAdminDepartment,
		"executive":     ExecutiveAdminDepartment,
		"misc":          Miscellaneous,
		"miscellaneous": Miscellaneous,
	}
	if cat, ok := synonyms[normalized]; ok {
		return string(cat), true
	}

	for _, cat := range append(append([]Category{}, incomeCategories...), expenseCategories...) {
		if normalized == strings.ToLower(string(cat)) {
			return string(cat), true
		}
	}

	return trimmed, false
}
