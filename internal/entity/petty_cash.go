package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PettyCashType is the direction of a cash drawer movement.
type PettyCashType string

const (
	PettyCashAdd      PettyCashType = "add"
	PettyCashWithdraw PettyCashType = "withdraw"
)

func (t PettyCashType) Valid() bool {
	return t == PettyCashAdd || t == PettyCashWithdraw
}

// PettyCashEntry represents a cash drawer movement.
type PettyCashEntry struct {
	ID          uuid.UUID       `json:"id"`
	OwnerID     uuid.UUID       `json:"user_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Type        PettyCashType   `json:"type"`
	Date        time.Time       `json:"date"`
	ReceiptURL  string          `json:"receipt_url,omitempty"`
}
