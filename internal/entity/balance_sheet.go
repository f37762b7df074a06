package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BalanceCategory is the top-level section of the balance sheet.
type BalanceCategory string

const (
	Assets      BalanceCategory = "assets"
	Liabilities BalanceCategory = "liabilities"
	Equity      BalanceCategory = "equity"
)

// BalanceCategories lists the sections in statement order.
var BalanceCategories = []BalanceCategory{Assets, Liabilities, Equity}

func (c BalanceCategory) Valid() bool {
	return c == Assets || c == Liabilities || c == Equity
}

// BalanceSheetItem is one dated balance contribution. Items are append-only.
type BalanceSheetItem struct {
	ID          uuid.UUID       `json:"id"`
	OwnerID     uuid.UUID       `json:"user_id"`
	Category    BalanceCategory `json:"category"`
	Subcategory string          `json:"subcategory"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
}
