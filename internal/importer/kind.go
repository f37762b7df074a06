package importer

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Kind identifies the record collection an import batch targets.
type Kind string

const (
	KindIncome       Kind = "income"
	KindExpense      Kind = "expense"
	KindPettyCash    Kind = "petty-cash"
	KindBudget       Kind = "budget"
	KindBalanceSheet Kind = "balance-sheet"
)

// Kinds lists every importable kind.
func Kinds() []Kind {
	return []Kind{KindIncome, KindExpense, KindPettyCash, KindBudget, KindBalanceSheet}
}

// ParseKind accepts a kind name, ignoring case and the separator style
// ("petty_cash", "Petty Cash" and "petty-cash" are equivalent).
func ParseKind(s string) (Kind, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", "-", " ", "-").Replace(norm)
	switch norm {
	case "expenses":
		norm = string(KindExpense)
	case "petty", "pettycash":
		norm = string(KindPettyCash)
	case "budgets":
		norm = string(KindBudget)
	case "balance", "balancesheet":
		norm = string(KindBalanceSheet)
	}
	for _, k := range Kinds() {
		if string(k) == norm {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown import kind %q", s)
}

// Title is the display name of the kind's data set.
func (k Kind) Title() string {
	switch k {
	case KindIncome:
		return "Income Data"
	case KindExpense:
		return "Expense Data"
	case KindPettyCash:
		return "Petty Cash Data"
	case KindBudget:
		return "Budget Data"
	case KindBalanceSheet:
		return "Balance Sheet Data"
	default:
		return string(k)
	}
}

// KindFromFileName infers the kind from a file name prefix such as
// "income-2024.csv" or "balance_sheet_q1.xlsx".
func KindFromFileName(path string) (Kind, bool) {
	base := strings.ToLower(filepath.Base(path))
	prefixes := []struct {
		prefix string
		kind   Kind
	}{
		{"income", KindIncome},
		{"expense", KindExpense},
		{"petty", KindPettyCash},
		{"budget", KindBudget},
		{"balance", KindBalanceSheet},
	}
	for _, p := range prefixes {
		if strings.HasPrefix(base, p.prefix) {
			return p.kind, true
		}
	}
	return "", false
}
