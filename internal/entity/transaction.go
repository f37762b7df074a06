package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a Transaction. It is fixed at creation.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// Valid reports whether t is a known direction.
func (t TransactionType) Valid() bool {
	return t == Income || t == Expense
}

// Transaction represents a single income or expense event.
type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	OwnerID     uuid.UUID       `json:"user_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Type        TransactionType `json:"type"`
	Date        time.Time       `json:"date"`
	ReceiptURL  string          `json:"receipt_url,omitempty"`
}
