package constants

// BudgetStatus is the derived state of a budget against its actual spend.
type BudgetStatus string

const (
	BudgetWithin BudgetStatus = "within" // variance >= 0
	BudgetOver   BudgetStatus = "over"   // variance < 0
)

// DefaultCurrency is used when CURRENCY_CODE is not configured.
const DefaultCurrency = "KES"
