package common

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidatorCollectsAllErrors(t *testing.T) {
	v := NewValidator()
	v.Field("description", "  ", Required)
	v.Field("amount", decimal.NewFromInt(-5), NonNegative)
	v.Field("type", "refund", OneOf("income", "expense"))
	v.Field("category", "Events", Required)

	assert.True(t, v.HasErrors())
	assert.Len(t, v.Errors(), 3)

	err := v.Error()
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Contains(t, err.Error(), "must be one of income, expense")
}

func TestNotBefore(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rule := NotBefore(start)

	assert.Nil(t, rule("end_date", start))
	assert.NotNil(t, rule("end_date", start.AddDate(0, 0, -1)))
}

func TestValidationErrorsMessages(t *testing.T) {
	errs := ValidationErrors{
		{Row: 2, Message: "Missing category"},
		{Row: 3, Message: "Invalid date format"},
	}

	assert.Equal(t, []string{"Row 2: Missing category", "Row 3: Invalid date format"}, errs.Messages())
	assert.True(t, errors.Is(errs, ErrValidation))
}

func TestStoreErrorMatchesSentinel(t *testing.T) {
	err := StoreError("insert transaction", errors.New("connection reset"))

	assert.True(t, errors.Is(err, ErrStore))
	assert.Contains(t, err.Error(), "connection reset")
	assert.Nil(t, StoreError("noop", nil))
}
