package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/joseph-ayodele/bizledger/internal/entity"
	"github.com/joseph-ayodele/bizledger/internal/period"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func tx(date time.Time, typ entity.TransactionType, category, amount string) entity.Transaction {
	return entity.Transaction{
		ID:       uuid.New(),
		Amount:   dec(amount),
		Category: category,
		Type:     typ,
		Date:     date,
	}
}

func petty(date time.Time, typ entity.PettyCashType, amount string) entity.PettyCashEntry {
	return entity.PettyCashEntry{ID: uuid.New(), Amount: dec(amount), Type: typ, Date: date}
}

func january() period.Interval {
	return period.Interval{Start: day(2024, time.January, 1), End: day(2024, time.January, 31)}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), append([]interface{}{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}
