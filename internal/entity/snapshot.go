package entity

// Snapshot is the full set of records for one owner.
type Snapshot struct {
	Transactions      []Transaction      `json:"transactions"`
	PettyCashEntries  []PettyCashEntry   `json:"pettyCashEntries"`
	Budgets           []Budget           `json:"budgets"`
	BalanceSheetItems []BalanceSheetItem `json:"balanceSheetItems"`
}
