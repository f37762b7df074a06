// Package backup reads and writes the JSON backup document of an owner's
// records.
package backup

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/bizledger/internal/common"
	"github.com/joseph-ayodele/bizledger/internal/entity"
)

// Version is written into every document.
const Version = "1.0"

//go:embed backup.schema.json
var schemaJSON []byte

var (
	compileOnce sync.Once
	docSchema   *jsonschema.Schema
	compileErr  error
)

func compiled() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource("backup.schema.json", bytes.NewReader(schemaJSON)); err != nil {
			compileErr = err
			return
		}
		docSchema, compileErr = c.Compile("backup.schema.json")
	})
	return docSchema, compileErr
}

// Document is the backup file layout.
type Document struct {
	ExportDate        string             `json:"exportDate"`
	Version           string             `json:"version"`
	Transactions      []transaction      `json:"transactions"`
	PettyCashEntries  []pettyCash        `json:"pettyCashEntries"`
	Budgets           []budget           `json:"budgets"`
	BalanceSheetItems []balanceSheetItem `json:"balanceSheetItems"`
	Categories        []json.RawMessage  `json:"categories"`
	Accounts          []json.RawMessage  `json:"accounts"`
}

type transaction struct {
	ID          string      `json:"id,omitempty"`
	UserID      string      `json:"userId,omitempty"`
	Amount      json.Number `json:"amount"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Type        string      `json:"type"`
	Date        string      `json:"date"`
	ReceiptURL  *string     `json:"receiptUrl,omitempty"`
}

type pettyCash struct {
	ID          string      `json:"id,omitempty"`
	UserID      string      `json:"userId,omitempty"`
	Amount      json.Number `json:"amount"`
	Description string      `json:"description"`
	Type        string      `json:"type"`
	Date        string      `json:"date"`
	ReceiptURL  *string     `json:"receiptUrl,omitempty"`
}

type budget struct {
	ID             string      `json:"id,omitempty"`
	UserID         string      `json:"userId,omitempty"`
	Category       string      `json:"category"`
	BudgetedAmount json.Number `json:"budgetedAmount"`
	Period         string      `json:"period"`
	StartDate      string      `json:"startDate"`
	EndDate        string      `json:"endDate,omitempty"`
}

type balanceSheetItem struct {
	ID          string      `json:"id,omitempty"`
	Category    string      `json:"category"`
	Subcategory string      `json:"subcategory"`
	Amount      json.Number `json:"amount"`
	Date        string      `json:"date"`
}

// FileName is the download name of a backup taken at now.
func FileName(now time.Time) string {
	return "accounting-backup-" + now.UTC().Format(entity.DateLayout) + ".json"
}

// Export encodes snap as an indented backup document.
func Export(snap entity.Snapshot, now time.Time) ([]byte, error) {
	doc := Document{
		ExportDate:        now.UTC().Format(time.RFC3339),
		Version:           Version,
		Transactions:      make([]transaction, 0, len(snap.Transactions)),
		PettyCashEntries:  make([]pettyCash, 0, len(snap.PettyCashEntries)),
		Budgets:           make([]budget, 0, len(snap.Budgets)),
		BalanceSheetItems: make([]balanceSheetItem, 0, len(snap.BalanceSheetItems)),
		Categories:        []json.RawMessage{},
		Accounts:          []json.RawMessage{},
	}
	for _, t := range snap.Transactions {
		doc.Transactions = append(doc.Transactions, transaction{
			ID:          idString(t.ID),
			UserID:      idString(t.OwnerID),
			Amount:      number(t.Amount),
			Description: t.Description,
			Category:    t.Category,
			Type:        string(t.Type),
			Date:        t.Date.Format(entity.DateLayout),
			ReceiptURL:  optional(t.ReceiptURL),
		})
	}
	for _, e := range snap.PettyCashEntries {
		doc.PettyCashEntries = append(doc.PettyCashEntries, pettyCash{
			ID:          idString(e.ID),
			UserID:      idString(e.OwnerID),
			Amount:      number(e.Amount),
			Description: e.Description,
			Type:        string(e.Type),
			Date:        e.Date.Format(entity.DateLayout),
			ReceiptURL:  optional(e.ReceiptURL),
		})
	}
	for _, b := range snap.Budgets {
		doc.Budgets = append(doc.Budgets, budget{
			ID:             idString(b.ID),
			UserID:         idString(b.OwnerID),
			Category:       b.Category,
			BudgetedAmount: number(b.BudgetedAmount),
			Period:         string(b.Period),
			StartDate:      b.StartDate.Format(entity.DateLayout),
			EndDate:        b.EndDate.Format(entity.DateLayout),
		})
	}
	for _, i := range snap.BalanceSheetItems {
		doc.BalanceSheetItems = append(doc.BalanceSheetItems, balanceSheetItem{
			ID:          idString(i.ID),
			Category:    string(i.Category),
			Subcategory: i.Subcategory,
			Amount:      number(i.Amount),
			Date:        i.Date.Format(entity.DateLayout),
		})
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Summary counts the records of a parsed document.
type Summary struct {
	ExportDate        string
	Version           string
	Transactions      int
	PettyCashEntries  int
	Budgets           int
	BalanceSheetItems int
}

// Parse validates data against the backup schema and decodes it. Ids and
// owners in the file are dropped; records are re-owned on restore.
func Parse(data []byte) (entity.Snapshot, Summary, error) {
	s, err := compiled()
	if err != nil {
		return entity.Snapshot{}, Summary{}, fmt.Errorf("backup schema: %w", err)
	}
	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return entity.Snapshot{}, Summary{}, common.NewAppError("INVALID_BACKUP", "backup is not valid JSON", errors.Join(common.ErrInvalidInput, err))
	}
	if err := s.Validate(v); err != nil {
		return entity.Snapshot{}, Summary{}, common.NewAppError("INVALID_BACKUP", "invalid backup file format: "+describe(err), common.ErrInvalidInput)
	}

	var doc Document
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return entity.Snapshot{}, Summary{}, common.NewAppError("INVALID_BACKUP", "backup is not valid JSON", errors.Join(common.ErrInvalidInput, err))
	}

	var snap entity.Snapshot
	var errs []error
	for i, t := range doc.Transactions {
		amount, e1 := decimal.NewFromString(t.Amount.String())
		date, e2 := day(t.Date)
		if err := errors.Join(e1, e2); err != nil {
			errs = append(errs, fmt.Errorf("transactions[%d]: %w", i, err))
			continue
		}
		snap.Transactions = append(snap.Transactions, entity.Transaction{
			Amount:      amount,
			Description: t.Description,
			Category:    t.Category,
			Type:        entity.TransactionType(t.Type),
			Date:        date,
			ReceiptURL:  deref(t.ReceiptURL),
		})
	}
	for i, e := range doc.PettyCashEntries {
		amount, e1 := decimal.NewFromString(e.Amount.String())
		date, e2 := day(e.Date)
		if err := errors.Join(e1, e2); err != nil {
			errs = append(errs, fmt.Errorf("pettyCashEntries[%d]: %w", i, err))
			continue
		}
		snap.PettyCashEntries = append(snap.PettyCashEntries, entity.PettyCashEntry{
			Amount:      amount,
			Description: e.Description,
			Type:        entity.PettyCashType(e.Type),
			Date:        date,
			ReceiptURL:  deref(e.ReceiptURL),
		})
	}
	for i, b := range doc.Budgets {
		amount, e1 := decimal.NewFromString(b.BudgetedAmount.String())
		start, e2 := day(b.StartDate)
		if err := errors.Join(e1, e2); err != nil {
			errs = append(errs, fmt.Errorf("budgets[%d]: %w", i, err))
			continue
		}
		period := entity.BudgetPeriod(b.Period)
		end := entity.BudgetEndDate(start, period)
		if b.EndDate != "" {
			if end, err = day(b.EndDate); err != nil {
				errs = append(errs, fmt.Errorf("budgets[%d]: %w", i, err))
				continue
			}
		}
		snap.Budgets = append(snap.Budgets, entity.Budget{
			Category:       b.Category,
			BudgetedAmount: amount,
			Period:         period,
			StartDate:      start,
			EndDate:        end,
		})
	}
	for i, item := range doc.BalanceSheetItems {
		amount, e1 := decimal.NewFromString(item.Amount.String())
		date, e2 := day(item.Date)
		if err := errors.Join(e1, e2); err != nil {
			errs = append(errs, fmt.Errorf("balanceSheetItems[%d]: %w", i, err))
			continue
		}
		snap.BalanceSheetItems = append(snap.BalanceSheetItems, entity.BalanceSheetItem{
			Category:    entity.BalanceCategory(item.Category),
			Subcategory: item.Subcategory,
			Amount:      amount,
			Date:        date,
		})
	}
	if err := errors.Join(errs...); err != nil {
		return entity.Snapshot{}, Summary{}, common.NewAppError("INVALID_BACKUP", err.Error(), common.ErrInvalidInput)
	}

	return snap, Summary{
		ExportDate:        doc.ExportDate,
		Version:           doc.Version,
		Transactions:      len(snap.Transactions),
		PettyCashEntries:  len(snap.PettyCashEntries),
		Budgets:           len(snap.Budgets),
		BalanceSheetItems: len(snap.BalanceSheetItems),
	}, nil
}

// day accepts a plain date or a timestamp and keeps the calendar date.
func day(s string) (time.Time, error) {
	if len(s) > len(entity.DateLayout) {
		s = s[:len(entity.DateLayout)]
	}
	return entity.ParseDay(s)
}

func describe(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	var msgs []string
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			loc := e.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			msgs = append(msgs, loc+": "+e.Message)
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)
	return strings.Join(msgs, "; ")
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func idString(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
