package session

import (
	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/bizledger/internal/common"
	"github.com/joseph-ayodele/bizledger/internal/entity"
)

const maxText = 500

func validateTransaction(tx entity.Transaction) error {
	v := common.NewValidator().
		Field("amount", tx.Amount, common.NonNegative).
		Field("category", tx.Category, common.Required).
		Field("type", tx.Type, common.OneOf(string(entity.Income), string(entity.Expense))).
		Field("date", tx.Date, common.Required).
		Field("description", tx.Description, maxLength(maxText))
	return v.Error()
}

func validatePettyCash(e entity.PettyCashEntry) error {
	v := common.NewValidator().
		Field("amount", e.Amount, common.NonNegative).
		Field("type", e.Type, common.OneOf(string(entity.PettyCashAdd), string(entity.PettyCashWithdraw))).
		Field("date", e.Date, common.Required).
		Field("description", e.Description, maxLength(maxText))
	return v.Error()
}

func validateBudget(b entity.Budget) error {
	v := common.NewValidator().
		Field("category", b.Category, common.Required).
		Field("budgetedAmount", b.BudgetedAmount, common.NonNegative).
		Field("period", b.Period, common.OneOf(string(entity.Monthly), string(entity.Quarterly), string(entity.Yearly))).
		Field("startDate", b.StartDate, common.Required)
	if !b.StartDate.IsZero() {
		v.Field("endDate", b.EndDate, common.NotBefore(entity.Day(b.StartDate)))
	}
	return v.Error()
}

func validateBalanceSheetItem(item entity.BalanceSheetItem) error {
	v := common.NewValidator().
		Field("category", item.Category, common.OneOf(string(entity.Assets), string(entity.Liabilities), string(entity.Equity))).
		Field("subcategory", item.Subcategory, common.Required).
		Field("amount", item.Amount, common.NonNegative).
		Field("date", item.Date, common.Required)
	return v.Error()
}

// validateFields checks the well-known fields of an update.
func validateFields(fields map[string]any) error {
	v := common.NewValidator()
	for name, value := range fields {
		switch name {
		case "amount", "budgeted_amount":
			if _, ok := value.(decimal.Decimal); ok {
				v.Field(name, value, common.NonNegative)
			}
		case "category", "subcategory":
			v.Field(name, value, common.Required)
		case "description":
			v.Field(name, value, maxLength(maxText))
		}
	}
	return v.Error()
}

func maxLength(n int) common.ValidationRule {
	return func(field string, value interface{}) *common.ValidationError {
		return common.MaxLength(field, value, n)
	}
}
