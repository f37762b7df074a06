package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joseph-ayodele/bizledger/constants"
	"github.com/joseph-ayodele/bizledger/internal/entity"
)

// ErrNoRows is returned when an import contains no data rows.
var ErrNoRows = errors.New("no rows to import")

// Sink receives validated records one at a time. The owner is resolved by
// the sink.
type Sink interface {
	AddTransaction(ctx context.Context, tx entity.Transaction) (entity.Transaction, error)
	AddPettyCashEntry(ctx context.Context, e entity.PettyCashEntry) (entity.PettyCashEntry, error)
	AddBudget(ctx context.Context, b entity.Budget) (entity.Budget, error)
	AddBalanceSheetItem(ctx context.Context, item entity.BalanceSheetItem) (entity.BalanceSheetItem, error)
}

// BatchError reports a store failure part way through a batch. Rows before
// Row were inserted and stay committed; Row and everything after it were
// not. Row is 1-indexed.
type BatchError struct {
	Kind     Kind
	Inserted int
	Row      int
	Err      error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("import %s: row %d failed after %d inserted: %v", e.Kind, e.Row, e.Inserted, e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }

// Result summarises a successful import.
type Result struct {
	Kind     Kind `json:"kind"`
	Inserted int  `json:"inserted"`
}

// Service validates and stores import batches.
type Service struct {
	sink    Sink
	logger  *slog.Logger
	now     func() time.Time
	schemas map[Kind]Schema
}

// Option configures a Service.
type Option func(*Service)

// WithSchema overrides the row schema for kind.
func WithSchema(kind Kind, schema Schema) Option {
	return func(s *Service) { s.schemas[kind] = schema }
}

// WithLenientSchemas applies LenientSchema to every kind.
func WithLenientSchemas() Option {
	return func(s *Service) {
		for _, k := range Kinds() {
			WithSchema(k, LenientSchema(k))(s)
		}
	}
}

// WithClock sets the clock used for the import date default.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates an import service writing to sink.
func NewService(sink Sink, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		sink:    sink,
		logger:  logger,
		now:     time.Now,
		schemas: make(map[Kind]Schema),
	}
	for _, k := range Kinds() {
		s.schemas[k] = SchemaFor(k)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schema returns the row schema in effect for kind.
func (s *Service) Schema(kind Kind) Schema {
	return s.schemas[kind]
}

// Import validates the whole table and then inserts it row by row. A
// validation failure inserts nothing. A store failure stops the batch and
// returns *BatchError; rows inserted before it are not rolled back.
func (s *Service) Import(ctx context.Context, kind Kind, table *Table) (Result, error) {
	if table == nil || len(table.Rows) == 0 {
		return Result{Kind: kind}, ErrNoRows
	}
	schema, ok := s.schemas[kind]
	if !ok {
		return Result{Kind: kind}, fmt.Errorf("unknown import kind %q", kind)
	}

	batch, err := Normalize(kind, table.Rows, schema, s.now())
	if err != nil {
		s.logger.Warn("import.batch.invalid", "kind", kind, "rows", len(table.Rows), "err", err)
		return Result{Kind: kind}, err
	}

	inserted, err := s.store(ctx, batch)
	if err != nil {
		s.logger.Error("import.batch.partial", "kind", kind, "inserted", inserted, "row", inserted+1, "err", err)
		return Result{Kind: kind, Inserted: inserted}, &BatchError{Kind: kind, Inserted: inserted, Row: inserted + 1, Err: err}
	}
	s.logger.Info("import.batch.ok", "kind", kind, "inserted", inserted)
	return Result{Kind: kind, Inserted: inserted}, nil
}

func (s *Service) store(ctx context.Context, b Batch) (int, error) {
	n := 0
	switch b.Kind {
	case KindIncome, KindExpense:
		for _, tx := range b.Transactions {
			if _, err := s.sink.AddTransaction(ctx, tx); err != nil {
				return n, err
			}
			n++
		}
	case KindPettyCash:
		for _, e := range b.PettyCashEntries {
			if _, err := s.sink.AddPettyCashEntry(ctx, e); err != nil {
				return n, err
			}
			n++
		}
	case KindBudget:
		for _, bg := range b.Budgets {
			if _, err := s.sink.AddBudget(ctx, bg); err != nil {
				return n, err
			}
			n++
		}
	case KindBalanceSheet:
		for _, item := range b.BalanceSheetItems {
			if _, err := s.sink.AddBalanceSheetItem(ctx, item); err != nil {
				return n, err
			}
			n++
		}
	}
	return n, nil
}

// ParseFile parses a CSV/TSV/TXT or XLSX file according to its extension.
func ParseFile(path string, opts ParseOptions) (*Table, error) {
	ext := constants.NormalizeExt(filepath.Ext(path))
	if _, ok := constants.ImportExtensions[ext]; !ok {
		return nil, fmt.Errorf("unsupported file extension %q", ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	if ext == "xlsx" {
		return ParseXLSX(f, opts)
	}
	b, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return Parse(string(b), opts)
}

// ImportFile parses path and imports it as kind.
func (s *Service) ImportFile(ctx context.Context, kind Kind, path string) (Result, error) {
	table, err := ParseFile(path, ParseOptions{})
	if err != nil {
		return Result{Kind: kind}, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return s.Import(ctx, kind, table)
}
