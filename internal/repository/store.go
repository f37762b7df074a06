package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/joseph-ayodele/bizledger/internal/common"
	"github.com/joseph-ayodele/bizledger/internal/entity"
)

// Fields carries the columns of an update, keyed by schema field name.
type Fields map[string]any

// Store is the record store contract. Every call is scoped by owner.
type Store interface {
	Durable() bool

	ListTransactions(ctx context.Context, owner uuid.UUID) ([]entity.Transaction, error)
	ListPettyCashEntries(ctx context.Context, owner uuid.UUID) ([]entity.PettyCashEntry, error)
	ListBudgets(ctx context.Context, owner uuid.UUID) ([]entity.Budget, error)
	ListBalanceSheetItems(ctx context.Context, owner uuid.UUID) ([]entity.BalanceSheetItem, error)
	Snapshot(ctx context.Context, owner uuid.UUID) (entity.Snapshot, error)

	InsertTransaction(ctx context.Context, owner uuid.UUID, tx entity.Transaction) (entity.Transaction, error)
	InsertPettyCashEntry(ctx context.Context, owner uuid.UUID, e entity.PettyCashEntry) (entity.PettyCashEntry, error)
	InsertBudget(ctx context.Context, owner uuid.UUID, b entity.Budget) (entity.Budget, error)
	InsertBalanceSheetItem(ctx context.Context, owner uuid.UUID, item entity.BalanceSheetItem) (entity.BalanceSheetItem, error)

	Update(ctx context.Context, c Collection, owner, id uuid.UUID, fields Fields) error
	Delete(ctx context.Context, c Collection, owner, id uuid.UUID) error
}

// MarkerStore persists the per-owner local migration marker.
type MarkerStore interface {
	Migrated(ctx context.Context, owner uuid.UUID) (bool, error)
	MarkMigrated(ctx context.Context, owner uuid.UUID, records int, at time.Time) error
}

// SQLStore implements Store and MarkerStore over an ent SQL driver.
type SQLStore struct {
	conn    dialect.ExecQuerier
	drv     dialect.Driver
	dialect string
	durable bool
	logger  *slog.Logger
	newID   func() uuid.UUID
}

var (
	_ Store       = (*SQLStore)(nil)
	_ MarkerStore = (*SQLStore)(nil)
)

// NewSQLStore wraps drv. A durable store refuses the anonymous owner.
func NewSQLStore(drv dialect.Driver, durable bool, logger *slog.Logger) *SQLStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLStore{
		conn:    drv,
		drv:     drv,
		dialect: drv.Dialect(),
		durable: durable,
		logger:  logger,
		newID:   uuid.New,
	}
}

func (s *SQLStore) Durable() bool { return s.durable }

// WithTx runs fn against a store bound to a single transaction.
func (s *SQLStore) WithTx(ctx context.Context, fn func(*SQLStore) error) error {
	if s.drv == nil {
		return fn(s)
	}
	tx, err := s.drv.Tx(ctx)
	if err != nil {
		return common.StoreError("begin", err)
	}
	scoped := *s
	scoped.conn = tx
	scoped.drv = nil
	if err := fn(&scoped); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			s.logger.Error("rollback failed", "error", rerr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return common.StoreError("commit", err)
	}
	return nil
}

func (s *SQLStore) checkOwner(owner uuid.UUID) error {
	if s.durable && owner == uuid.Nil {
		return common.NewAppError("NO_IDENTITY", "durable store requires an owner", common.ErrUnauthorized)
	}
	return nil
}

func (s *SQLStore) sql() *entsql.DialectBuilder {
	return entsql.Dialect(s.dialect)
}

func (s *SQLStore) query(ctx context.Context, op string, c Collection, owner uuid.UUID, scan func(*entsql.Rows) error) error {
	if err := s.checkOwner(owner); err != nil {
		return err
	}
	t := tables[c]
	query, args := s.sql().Select(t.columnNames()...).
		From(entsql.Table(t.name)).
		Where(entsql.EQ("owner_id", owner)).
		OrderBy(entsql.Desc(orderColumn(c)), t.key).
		Query()

	var rows entsql.Rows
	if err := s.conn.Query(ctx, query, args, &rows); err != nil {
		s.logger.Error("failed to list records", "collection", c, "owner_id", owner, "error", err)
		return common.StoreError(op, err)
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(&rows); err != nil {
			return common.StoreError(op, err)
		}
	}
	if err := rows.Err(); err != nil {
		return common.StoreError(op, err)
	}
	return nil
}

func orderColumn(c Collection) string {
	if c == Budgets {
		return "start_date"
	}
	return "date"
}

func (s *SQLStore) insert(ctx context.Context, op string, c Collection, values []any) error {
	t := tables[c]
	for i, col := range t.columns {
		if err := col.validate(values[i]); err != nil {
			return common.NewAppError("INVALID_RECORD", err.Error(), common.ErrInvalidInput)
		}
	}
	query, args := s.sql().Insert(t.name).Columns(t.columnNames()...).Values(values...).Query()
	if err := s.conn.Exec(ctx, query, args, nil); err != nil {
		s.logger.Error("failed to insert record", "collection", c, "error", err)
		return common.StoreError(op, err)
	}
	return nil
}

func (s *SQLStore) ListTransactions(ctx context.Context, owner uuid.UUID) ([]entity.Transaction, error) {
	var out []entity.Transaction
	err := s.query(ctx, "list transactions", Transactions, owner, func(rows *entsql.Rows) error {
		var (
			tx          entity.Transaction
			typ         string
			description sql.NullString
			receipt     sql.NullString
		)
		if err := rows.Scan(&tx.ID, &tx.OwnerID, &tx.Amount, &description, &tx.Category, &typ, dayDest{&tx.Date}, &receipt); err != nil {
			return err
		}
		tx.Type = entity.TransactionType(typ)
		tx.Description = description.String
		tx.ReceiptURL = receipt.String
		out = append(out, tx)
		return nil
	})
	return out, err
}

func (s *SQLStore) ListPettyCashEntries(ctx context.Context, owner uuid.UUID) ([]entity.PettyCashEntry, error) {
	var out []entity.PettyCashEntry
	err := s.query(ctx, "list petty cash", PettyCashEntries, owner, func(rows *entsql.Rows) error {
		var (
			e           entity.PettyCashEntry
			typ         string
			description sql.NullString
			receipt     sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.Amount, &description, &typ, dayDest{&e.Date}, &receipt); err != nil {
			return err
		}
		e.Type = entity.PettyCashType(typ)
		e.Description = description.String
		e.ReceiptURL = receipt.String
		out = append(out, e)
		return nil
	})
	return out, err
}

func (s *SQLStore) ListBudgets(ctx context.Context, owner uuid.UUID) ([]entity.Budget, error) {
	var out []entity.Budget
	err := s.query(ctx, "list budgets", Budgets, owner, func(rows *entsql.Rows) error {
		var (
			b      entity.Budget
			period string
		)
		if err := rows.Scan(&b.ID, &b.OwnerID, &b.Category, &b.BudgetedAmount, &period, dayDest{&b.StartDate}, dayDest{&b.EndDate}); err != nil {
			return err
		}
		b.Period = entity.BudgetPeriod(period)
		out = append(out, b)
		return nil
	})
	return out, err
}

func (s *SQLStore) ListBalanceSheetItems(ctx context.Context, owner uuid.UUID) ([]entity.BalanceSheetItem, error) {
	var out []entity.BalanceSheetItem
	err := s.query(ctx, "list balance sheet", BalanceSheetItems, owner, func(rows *entsql.Rows) error {
		var (
			item     entity.BalanceSheetItem
			category string
		)
		if err := rows.Scan(&item.ID, &item.OwnerID, &category, &item.Subcategory, &item.Amount, dayDest{&item.Date}); err != nil {
			return err
		}
		item.Category = entity.BalanceCategory(category)
		out = append(out, item)
		return nil
	})
	return out, err
}

// Snapshot loads all four collections of owner.
func (s *SQLStore) Snapshot(ctx context.Context, owner uuid.UUID) (entity.Snapshot, error) {
	var (
		snap entity.Snapshot
		err  error
	)
	if snap.Transactions, err = s.ListTransactions(ctx, owner); err != nil {
		return entity.Snapshot{}, err
	}
	if snap.PettyCashEntries, err = s.ListPettyCashEntries(ctx, owner); err != nil {
		return entity.Snapshot{}, err
	}
	if snap.Budgets, err = s.ListBudgets(ctx, owner); err != nil {
		return entity.Snapshot{}, err
	}
	if snap.BalanceSheetItems, err = s.ListBalanceSheetItems(ctx, owner); err != nil {
		return entity.Snapshot{}, err
	}
	return snap, nil
}

func (s *SQLStore) InsertTransaction(ctx context.Context, owner uuid.UUID, tx entity.Transaction) (entity.Transaction, error) {
	if err := s.checkOwner(owner); err != nil {
		return entity.Transaction{}, err
	}
	tx.ID = s.newID()
	tx.OwnerID = owner
	tx.Date = entity.Day(tx.Date)
	err := s.insert(ctx, "insert transaction", Transactions, []any{
		tx.ID, tx.OwnerID, tx.Amount, tx.Description, tx.Category, string(tx.Type), dayValue(tx.Date), tx.ReceiptURL,
	})
	if err != nil {
		return entity.Transaction{}, err
	}
	return tx, nil
}

func (s *SQLStore) InsertPettyCashEntry(ctx context.Context, owner uuid.UUID, e entity.PettyCashEntry) (entity.PettyCashEntry, error) {
	if err := s.checkOwner(owner); err != nil {
		return entity.PettyCashEntry{}, err
	}
	e.ID = s.newID()
	e.OwnerID = owner
	e.Date = entity.Day(e.Date)
	err := s.insert(ctx, "insert petty cash", PettyCashEntries, []any{
		e.ID, e.OwnerID, e.Amount, e.Description, string(e.Type), dayValue(e.Date), e.ReceiptURL,
	})
	if err != nil {
		return entity.PettyCashEntry{}, err
	}
	return e, nil
}

func (s *SQLStore) InsertBudget(ctx context.Context, owner uuid.UUID, b entity.Budget) (entity.Budget, error) {
	if err := s.checkOwner(owner); err != nil {
		return entity.Budget{}, err
	}
	b.ID = s.newID()
	b.OwnerID = owner
	b.StartDate = entity.Day(b.StartDate)
	b.EndDate = entity.Day(b.EndDate)
	if b.EndDate.Before(b.StartDate) {
		return entity.Budget{}, common.NewAppError("INVALID_RECORD", "budget ends before it starts", common.ErrInvalidInput)
	}
	err := s.insert(ctx, "insert budget", Budgets, []any{
		b.ID, b.OwnerID, b.Category, b.BudgetedAmount, string(b.Period), dayValue(b.StartDate), dayValue(b.EndDate),
	})
	if err != nil {
		return entity.Budget{}, err
	}
	return b, nil
}

func (s *SQLStore) InsertBalanceSheetItem(ctx context.Context, owner uuid.UUID, item entity.BalanceSheetItem) (entity.BalanceSheetItem, error) {
	if err := s.checkOwner(owner); err != nil {
		return entity.BalanceSheetItem{}, err
	}
	item.ID = s.newID()
	item.OwnerID = owner
	item.Date = entity.Day(item.Date)
	err := s.insert(ctx, "insert balance sheet item", BalanceSheetItems, []any{
		item.ID, item.OwnerID, string(item.Category), item.Subcategory, item.Amount, dayValue(item.Date),
	})
	if err != nil {
		return entity.BalanceSheetItem{}, err
	}
	return item, nil
}

// Update sets the given fields on one record of owner. Immutable fields
// (id, owner, transaction type) and balance-sheet items cannot be updated.
func (s *SQLStore) Update(ctx context.Context, c Collection, owner, id uuid.UUID, fields Fields) error {
	if err := s.checkOwner(owner); err != nil {
		return err
	}
	t, ok := tables[c]
	if !ok || c == migrationMarkers {
		return common.NewAppError("INVALID_COLLECTION", fmt.Sprintf("unknown collection %q", c), common.ErrInvalidInput)
	}
	if c == BalanceSheetItems {
		return common.NewAppError("APPEND_ONLY", "balance sheet items are append-only", common.ErrInvalidInput)
	}
	if len(fields) == 0 {
		return common.NewAppError("EMPTY_UPDATE", "no fields to update", common.ErrInvalidInput)
	}

	upd := s.sql().Update(t.name)
	for name, v := range fields {
		col, ok := t.column(name)
		if !ok {
			return common.NewAppError("INVALID_FIELD", fmt.Sprintf("unknown field %q", name), common.ErrInvalidInput)
		}
		if col.immutable {
			return common.NewAppError("IMMUTABLE_FIELD", fmt.Sprintf("field %q cannot be changed", col.field), common.ErrInvalidInput)
		}
		v, err := columnValue(col, v)
		if err != nil {
			return err
		}
		if err := col.validate(v); err != nil {
			return common.NewAppError("INVALID_RECORD", err.Error(), common.ErrInvalidInput)
		}
		upd.Set(col.name, v)
	}
	query, args := upd.Where(entsql.And(entsql.EQ(t.key, id), entsql.EQ("owner_id", owner))).Query()
	return s.execOne(ctx, "update "+string(c), query, args)
}

// Delete removes one record of owner.
func (s *SQLStore) Delete(ctx context.Context, c Collection, owner, id uuid.UUID) error {
	if err := s.checkOwner(owner); err != nil {
		return err
	}
	t, ok := tables[c]
	if !ok || c == migrationMarkers {
		return common.NewAppError("INVALID_COLLECTION", fmt.Sprintf("unknown collection %q", c), common.ErrInvalidInput)
	}
	query, args := s.sql().Delete(t.name).
		Where(entsql.And(entsql.EQ(t.key, id), entsql.EQ("owner_id", owner))).
		Query()
	return s.execOne(ctx, "delete "+string(c), query, args)
}

func (s *SQLStore) execOne(ctx context.Context, op, query string, args []any) error {
	var res sql.Result
	if err := s.conn.Exec(ctx, query, args, &res); err != nil {
		s.logger.Error("store write failed", "op", op, "error", err)
		return common.StoreError(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return common.StoreError(op, err)
	}
	if n == 0 {
		return common.NewAppError("NOT_FOUND", op+": record not found", common.ErrNotFound)
	}
	return nil
}

// Migrated reports whether owner already has a migration marker.
func (s *SQLStore) Migrated(ctx context.Context, owner uuid.UUID) (bool, error) {
	if err := s.checkOwner(owner); err != nil {
		return false, err
	}
	t := tables[migrationMarkers]
	query, args := s.sql().Select(t.key).
		From(entsql.Table(t.name)).
		Where(entsql.EQ(t.key, owner)).
		Query()
	var rows entsql.Rows
	if err := s.conn.Query(ctx, query, args, &rows); err != nil {
		return false, common.StoreError("read marker", err)
	}
	defer rows.Close()
	found := rows.Next()
	if err := rows.Err(); err != nil {
		return false, common.StoreError("read marker", err)
	}
	return found, nil
}

// MarkMigrated records the marker for owner. Marking twice keeps the first marker.
func (s *SQLStore) MarkMigrated(ctx context.Context, owner uuid.UUID, records int, at time.Time) error {
	if err := s.checkOwner(owner); err != nil {
		return err
	}
	_, err := s.claimMarker(ctx, owner, records, at)
	return err
}

// claimMarker inserts owner's marker unless one exists and reports whether
// this call wrote it. A concurrent claimer on the same database blocks on the
// key until the first transaction ends, so only one of them sees true.
func (s *SQLStore) claimMarker(ctx context.Context, owner uuid.UUID, records int, at time.Time) (bool, error) {
	t := tables[migrationMarkers]
	query, args := s.sql().Insert(t.name).
		Columns(t.columnNames()...).
		Values(owner, at.UTC().Format(time.RFC3339Nano), records).
		OnConflict(entsql.ConflictColumns(t.key), entsql.DoNothing()).
		Query()
	var res sql.Result
	if err := s.conn.Exec(ctx, query, args, &res); err != nil {
		return false, common.StoreError("write marker", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, common.StoreError("write marker", err)
	}
	return n > 0, nil
}

func (s *SQLStore) setMarkerRecords(ctx context.Context, owner uuid.UUID, records int) error {
	t := tables[migrationMarkers]
	query, args := s.sql().Update(t.name).
		Set("records", records).
		Where(entsql.EQ(t.key, owner)).
		Query()
	return s.execOne(ctx, "write marker", query, args)
}

func columnValue(col column, v any) (any, error) {
	switch x := v.(type) {
	case time.Time:
		return dayValue(x), nil
	case decimal.Decimal:
		if x.IsNegative() {
			return nil, common.NewAppError("INVALID_RECORD", col.field+": must not be negative", common.ErrInvalidInput)
		}
		return x, nil
	case entity.PettyCashType:
		return string(x), nil
	case entity.BudgetPeriod:
		return string(x), nil
	case entity.TransactionType:
		return string(x), nil
	case fmt.Stringer:
		return x.String(), nil
	default:
		return v, nil
	}
}

func dayValue(t time.Time) string {
	return entity.Day(t).Format(entity.DateLayout)
}

// dayDest scans a date column stored either as text or as a native date.
type dayDest struct{ t *time.Time }

func (d dayDest) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d.t = entity.Day(v)
		return nil
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	case nil:
		return errors.New("date is null")
	default:
		return fmt.Errorf("unsupported date value %T", src)
	}
}

func (d dayDest) parse(s string) error {
	if len(s) > len(entity.DateLayout) {
		s = s[:len(entity.DateLayout)]
	}
	t, err := entity.ParseDay(s)
	if err != nil {
		return err
	}
	*d.t = t
	return nil
}
