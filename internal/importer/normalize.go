package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/bizledger/constants"
	"github.com/joseph-ayodele/bizledger/internal/common"
	"github.com/joseph-ayodele/bizledger/internal/entity"
)

var errEndBeforeStart = errors.New("End date must not be before start date")

// Batch is a validated, typed import batch. Exactly one slice, selected by
// Kind, is populated.
type Batch struct {
	Kind              Kind
	Transactions      []entity.Transaction
	PettyCashEntries  []entity.PettyCashEntry
	Budgets           []entity.Budget
	BalanceSheetItems []entity.BalanceSheetItem
}

// Len returns the number of records in the batch.
func (b Batch) Len() int {
	switch b.Kind {
	case KindIncome, KindExpense:
		return len(b.Transactions)
	case KindPettyCash:
		return len(b.PettyCashEntries)
	case KindBudget:
		return len(b.Budgets)
	case KindBalanceSheet:
		return len(b.BalanceSheetItems)
	}
	return 0
}

// Normalize validates rows against schema, applies defaults and converts
// each row into the typed record for kind. Every record is then checked
// against the kind's JSON schema. Any problem in any row fails the whole
// batch with common.ValidationErrors; no partial batch is returned.
func Normalize(kind Kind, rows []Row, schema Schema, today time.Time) (Batch, error) {
	if err := Validate(rows, schema); err != nil {
		return Batch{}, err
	}

	today = entity.Day(today)
	batch := Batch{Kind: kind}
	var errs common.ValidationErrors
	for i, row := range rows {
		n := i + 1
		doc, err := batch.add(kind, row, today)
		if err != nil {
			errs = append(errs, common.RowError{Row: n, Message: err.Error()})
			continue
		}
		msgs, err := checkRecord(kind, doc)
		if err != nil {
			return Batch{}, err
		}
		for _, m := range msgs {
			errs = append(errs, common.RowError{Row: n, Message: m})
		}
	}
	if len(errs) > 0 {
		return Batch{}, errs
	}
	return batch, nil
}

// add appends the record built from row and returns its schema document.
func (b *Batch) add(kind Kind, row Row, today time.Time) (map[string]any, error) {
	switch kind {
	case KindIncome, KindExpense:
		tx := entity.Transaction{
			Amount:      amountOrZero(row["amount"]),
			Description: row["description"],
			Category:    category(row["category"], kind),
			Type:        entity.TransactionType(kind),
			Date:        dateOr(row["date"], today),
		}
		b.Transactions = append(b.Transactions, tx)
		return map[string]any{
			"amount":      number(tx.Amount),
			"description": tx.Description,
			"category":    tx.Category,
			"type":        string(tx.Type),
			"date":        tx.Date.Format(entity.DateLayout),
		}, nil

	case KindPettyCash:
		typ := entity.PettyCashAdd
		if strings.EqualFold(strings.TrimSpace(row["type"]), string(entity.PettyCashWithdraw)) {
			typ = entity.PettyCashWithdraw
		}
		e := entity.PettyCashEntry{
			Amount:      amountOrZero(row["amount"]),
			Description: row["description"],
			Type:        typ,
			Date:        dateOr(row["date"], today),
		}
		b.PettyCashEntries = append(b.PettyCashEntries, e)
		return map[string]any{
			"amount":      number(e.Amount),
			"description": e.Description,
			"type":        string(e.Type),
			"date":        e.Date.Format(entity.DateLayout),
		}, nil

	case KindBudget:
		p := entity.Monthly
		if v := row["period"]; v != "" {
			p = entity.BudgetPeriod(strings.ToLower(v))
		}
		start := dateOr(row["startDate"], today)
		end := dateOr(row["endDate"], entity.BudgetEndDate(start, p))
		if end.Before(start) {
			return nil, errEndBeforeStart
		}
		bg := entity.Budget{
			Category:       category(row["category"], kind),
			BudgetedAmount: amountOrZero(row["budgetedAmount"]),
			Period:         p,
			StartDate:      start,
			EndDate:        end,
		}
		b.Budgets = append(b.Budgets, bg)
		return map[string]any{
			"category":       bg.Category,
			"budgetedAmount": number(bg.BudgetedAmount),
			"period":         string(bg.Period),
			"startDate":      bg.StartDate.Format(entity.DateLayout),
			"endDate":        bg.EndDate.Format(entity.DateLayout),
		}, nil

	case KindBalanceSheet:
		item := entity.BalanceSheetItem{
			Category:    entity.BalanceCategory(strings.ToLower(row["category"])),
			Subcategory: row["subcategory"],
			Amount:      amountOrZero(row["amount"]),
			Date:        dateOr(row["date"], today),
		}
		b.BalanceSheetItems = append(b.BalanceSheetItems, item)
		return map[string]any{
			"category":    string(item.Category),
			"subcategory": item.Subcategory,
			"amount":      number(item.Amount),
			"date":        item.Date.Format(entity.DateLayout),
		}, nil
	}
	return nil, fmt.Errorf("unknown import kind %q", kind)
}

// category canonicalises known categories and falls back to the kind's
// catch-all when empty.
func category(v string, kind Kind) string {
	if c, _ := constants.Canonicalize(v); c != "" {
		return c
	}
	if kind == KindIncome {
		return string(constants.Other)
	}
	return string(constants.Miscellaneous)
}

func amountOrZero(v string) decimal.Decimal {
	d, err := ParseAmount(v)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func dateOr(v string, fallback time.Time) time.Time {
	if v == "" {
		return fallback
	}
	t, err := ParseDate(v)
	if err != nil {
		return fallback
	}
	return t
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
