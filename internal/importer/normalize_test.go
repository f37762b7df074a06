package importer

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/bizledger/internal/common"
	"github.com/joseph-ayodele/bizledger/internal/entity"
)

var importDay = time.Date(2024, time.March, 5, 17, 45, 0, 0, time.UTC)

func TestNormalizeTransactions(t *testing.T) {
	rows := []Row{
		{"date": "2024-01-15", "category": "ads", "description": "Banner", "amount": "15000"},
		{"date": "2024-01-16", "category": "it department", "description": "Hosting", "amount": "99.95"},
	}

	batch, err := Normalize(KindExpense, rows, SchemaFor(KindExpense), importDay)
	require.NoError(t, err)
	require.Equal(t, 2, batch.Len())
	assert.Equal(t, "Advertisements", batch.Transactions[0].Category)
	assert.Equal(t, "IT Department", batch.Transactions[1].Category)
	assert.Equal(t, entity.Expense, batch.Transactions[1].Type)
	assert.Equal(t, "99.95", batch.Transactions[1].Amount.String())
}

func TestNormalizeLenientDefaults(t *testing.T) {
	income, err := Normalize(KindIncome, []Row{{"amount": "10"}}, LenientSchema(KindIncome), importDay)
	require.NoError(t, err)
	assert.Equal(t, "Other", income.Transactions[0].Category)
	assert.Equal(t, time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), income.Transactions[0].Date)

	expense, err := Normalize(KindExpense, []Row{{"amount": "10"}}, LenientSchema(KindExpense), importDay)
	require.NoError(t, err)
	assert.Equal(t, "Miscellaneous", expense.Transactions[0].Category)

	budgets, err := Normalize(KindBudget, []Row{
		{"budgetedAmount": "5000"},
		{"budgetedAmount": "9000", "period": "quarterly", "startDate": "2024-01-01"},
	}, LenientSchema(KindBudget), importDay)
	require.NoError(t, err)
	assert.Equal(t, "Miscellaneous", budgets.Budgets[0].Category)
	assert.Equal(t, entity.Monthly, budgets.Budgets[0].Period)
	assert.Equal(t, time.Date(2024, time.April, 5, 0, 0, 0, 0, time.UTC), budgets.Budgets[0].EndDate)
	assert.Equal(t, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), budgets.Budgets[1].EndDate)
}

func TestNormalizePettyCashType(t *testing.T) {
	rows := []Row{
		{"date": "2024-01-15", "type": "withdraw", "description": "a", "amount": "1"},
		{"date": "2024-01-15", "type": "Withdraw", "description": "b", "amount": "1"},
		{"date": "2024-01-15", "type": "top-up", "description": "c", "amount": "1"},
		{"date": "2024-01-15", "type": "WITHDRAW", "description": "d", "amount": "1"},
		{"date": "2024-01-15", "type": "Add", "description": "e", "amount": "1"},
	}

	batch, err := Normalize(KindPettyCash, rows, SchemaFor(KindPettyCash), importDay)
	require.NoError(t, err)
	assert.Equal(t, entity.PettyCashWithdraw, batch.PettyCashEntries[0].Type)
	assert.Equal(t, entity.PettyCashWithdraw, batch.PettyCashEntries[1].Type)
	assert.Equal(t, entity.PettyCashAdd, batch.PettyCashEntries[2].Type)
	assert.Equal(t, entity.PettyCashWithdraw, batch.PettyCashEntries[3].Type)
	assert.Equal(t, entity.PettyCashAdd, batch.PettyCashEntries[4].Type)
}

func TestNormalizeSchemaViolationsAreRowErrors(t *testing.T) {
	rows := []Row{
		{"date": "2024-01-15", "category": "Events", "description": "ok", "amount": "10"},
		{"date": "2024-01-15", "category": "Events", "description": "refund", "amount": "-10"},
	}

	_, err := Normalize(KindIncome, rows, SchemaFor(KindIncome), importDay)
	var verrs common.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 1)
	assert.Equal(t, 2, verrs[0].Row)
	assert.True(t, strings.HasPrefix(verrs[0].Error(), "Row 2: amount"), verrs[0].Error())
}

func TestNormalizeBalanceSheetCategory(t *testing.T) {
	rows := []Row{
		{"category": "Assets", "subcategory": "Equipment", "amount": "250000", "date": "2024-01-01"},
		{"category": "income", "subcategory": "Other", "amount": "1", "date": "2024-01-01"},
	}

	_, err := Normalize(KindBalanceSheet, rows, SchemaFor(KindBalanceSheet), importDay)
	var verrs common.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 1)
	assert.Equal(t, 2, verrs[0].Row)

	batch, err := Normalize(KindBalanceSheet, rows[:1], SchemaFor(KindBalanceSheet), importDay)
	require.NoError(t, err)
	assert.Equal(t, entity.Assets, batch.BalanceSheetItems[0].Category)
}

func TestNormalizeBudgetEndBeforeStart(t *testing.T) {
	rows := []Row{{"category": "IT Department", "budgetedAmount": "100", "period": "monthly", "startDate": "2024-02-01", "endDate": "2024-01-01"}}

	_, err := Normalize(KindBudget, rows, SchemaFor(KindBudget), importDay)
	var verrs common.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, []string{"Row 1: End date must not be before start date"}, verrs.Messages())
}

func TestNormalizeUnknownPeriod(t *testing.T) {
	rows := []Row{{"category": "IT Department", "budgetedAmount": "100", "period": "weekly", "startDate": "2024-02-01", "endDate": "2024-02-07"}}

	_, err := Normalize(KindBudget, rows, SchemaFor(KindBudget), importDay)
	assert.True(t, errors.Is(err, common.ErrValidation))
}
