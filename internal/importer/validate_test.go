package importer

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/bizledger/internal/common"
)

func TestValidateCollectsEveryRowError(t *testing.T) {
	rows := []Row{
		{"date": "2024-01-15", "category": "Events", "description": "ok", "amount": "10"},
		{"date": "15/01/2024x", "category": "", "description": "bad", "amount": "ten"},
		{"date": "2024-02-30", "category": "Events", "description": "bad date", "amount": "NaN"},
	}

	err := Validate(rows, SchemaFor(KindIncome))
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrValidation))

	var verrs common.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, []string{
		"Row 2: Missing category",
		"Row 2: Amount must be a valid number",
		"Row 2: Invalid date format",
		"Row 3: Amount must be a valid number",
		"Row 3: Invalid date format",
	}, verrs.Messages())
}

func TestValidateBudgetColumns(t *testing.T) {
	rows := []Row{{"category": "IT Department", "budgetedAmount": "1,000", "period": "monthly", "startDate": "soon", "endDate": "2024-01-31"}}

	err := Validate(rows, SchemaFor(KindBudget))
	var verrs common.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, []string{
		"Row 1: BudgetedAmount must be a valid number",
		"Row 1: Invalid startDate format",
	}, verrs.Messages())
}

func TestValidateAcceptsCleanRows(t *testing.T) {
	rows := []Row{{"date": "2024-01-15", "type": "add", "description": "float", "amount": "100.25"}}
	assert.NoError(t, Validate(rows, SchemaFor(KindPettyCash)))
}

func TestParseDateLayouts(t *testing.T) {
	want := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2024-01-15", "2024/01/15", "2024-01-15T10:30:00Z", "15 Jan 2024", "Jan 15, 2024", "45306"} {
		got, err := ParseDate(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseDate("yesterday")
	assert.Error(t, err)
}
