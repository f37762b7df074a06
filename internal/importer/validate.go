package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/bizledger/internal/common"
	"github.com/joseph-ayodele/bizledger/internal/entity"
)

// Schema describes the row-level checks for one kind.
type Schema struct {
	// Required columns must be present and non-empty.
	Required []string
	// Numeric columns must parse as finite numbers when non-empty.
	Numeric []string
	// Dates columns must parse as calendar dates when non-empty.
	Dates []string
}

var templateColumns = map[Kind][]string{
	KindIncome:       {"date", "category", "description", "amount"},
	KindExpense:      {"date", "category", "description", "amount"},
	KindPettyCash:    {"date", "type", "description", "amount"},
	KindBudget:       {"category", "budgetedAmount", "period", "startDate", "endDate"},
	KindBalanceSheet: {"category", "subcategory", "amount", "date"},
}

// SchemaFor returns the schema requiring every template column of kind.
func SchemaFor(kind Kind) Schema {
	s := typedColumns(kind)
	s.Required = append([]string(nil), templateColumns[kind]...)
	return s
}

// LenientSchema only requires the columns that have no default. Missing
// categories, dates, periods and end dates are filled in during
// normalisation.
func LenientSchema(kind Kind) Schema {
	s := typedColumns(kind)
	switch kind {
	case KindBudget:
		s.Required = []string{"budgetedAmount"}
	case KindBalanceSheet:
		s.Required = []string{"category", "amount"}
	default:
		s.Required = []string{"amount"}
	}
	return s
}

func typedColumns(kind Kind) Schema {
	if kind == KindBudget {
		return Schema{Numeric: []string{"budgetedAmount"}, Dates: []string{"startDate", "endDate"}}
	}
	return Schema{Numeric: []string{"amount"}, Dates: []string{"date"}}
}

// Validate checks every row against schema and returns all problems as
// common.ValidationErrors. Rows are numbered from 1.
func Validate(rows []Row, schema Schema) error {
	var errs common.ValidationErrors
	for i, row := range rows {
		n := i + 1
		for _, col := range schema.Required {
			if row[col] == "" {
				errs = append(errs, common.RowError{Row: n, Message: "Missing " + col})
			}
		}
		for _, col := range schema.Numeric {
			if v := row[col]; v != "" {
				if _, err := ParseAmount(v); err != nil {
					errs = append(errs, common.RowError{Row: n, Message: numberMessage(col)})
				}
			}
		}
		for _, col := range schema.Dates {
			if v := row[col]; v != "" {
				if _, err := ParseDate(v); err != nil {
					errs = append(errs, common.RowError{Row: n, Message: dateMessage(col)})
				}
			}
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func numberMessage(col string) string {
	r := []rune(col)
	r[0] = unicode.ToUpper(r[0])
	return string(r) + " must be a valid number"
}

func dateMessage(col string) string {
	if col == "date" {
		return "Invalid date format"
	}
	return fmt.Sprintf("Invalid %s format", col)
}

// ParseAmount parses a decimal amount. Surrounding whitespace is ignored;
// grouping separators and currency symbols are rejected.
func ParseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}

var dateLayouts = []string{
	entity.DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"2 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

// ParseDate accepts ISO dates and a few common spellings, plus spreadsheet
// serial day numbers as produced by XLSX date cells. The result is midnight
// UTC of the calendar date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return entity.Day(t), nil
		}
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial >= 1 && serial < 2958466 {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err == nil {
			return entity.Day(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}
