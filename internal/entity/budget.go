package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetPeriod is the planning horizon of a Budget.
type BudgetPeriod string

const (
	Monthly   BudgetPeriod = "monthly"
	Quarterly BudgetPeriod = "quarterly"
	Yearly    BudgetPeriod = "yearly"
)

func (p BudgetPeriod) Valid() bool {
	_, ok := periodMonths[p]
	return ok
}

var periodMonths = map[BudgetPeriod]int{
	Monthly:   1,
	Quarterly: 3,
	Yearly:    12,
}

// Budget is a planned spending ceiling for a category over a date range.
// Spend against it is matched at read time by category and date range.
type Budget struct {
	ID             uuid.UUID       `json:"id"`
	OwnerID        uuid.UUID       `json:"user_id"`
	Category       string          `json:"category"`
	BudgetedAmount decimal.Decimal `json:"budgeted_amount"`
	Period         BudgetPeriod    `json:"period"`
	StartDate      time.Time       `json:"start_date"`
	EndDate        time.Time       `json:"end_date"`
}

// BudgetEndDate derives the end date of a budget from its start and period.
// Month overflow normalises the same way time.AddDate does (Jan 31 + 1 month
// lands in early March). Unknown periods fall back to monthly.
func BudgetEndDate(start time.Time, period BudgetPeriod) time.Time {
	months, ok := periodMonths[period]
	if !ok {
		months = 1
	}
	return start.AddDate(0, months, 0)
}
