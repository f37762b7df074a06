package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/schema/field"

	"github.com/joseph-ayodele/bizledger/db/ent/schema"
)

// Collection names a user-scoped record table.
type Collection string

const (
	Transactions      Collection = "transactions"
	PettyCashEntries  Collection = "petty_cash_entries"
	Budgets           Collection = "budgets"
	BalanceSheetItems Collection = "balance_sheet_items"
	migrationMarkers  Collection = "migration_markers"
)

type column struct {
	name       string
	field      string
	typ        field.Type
	schemaType map[string]string
	optional   bool
	immutable  bool
	validators []any
}

type table struct {
	name    string
	columns []column
	key     string
	indexes [][]string
}

func (t *table) column(name string) (column, bool) {
	for _, c := range t.columns {
		if c.name == name || c.field == name {
			return c, true
		}
	}
	return column{}, false
}

func (t *table) columnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.name
	}
	return names
}

var schemas = []ent.Interface{
	schema.Transaction{},
	schema.PettyCashEntry{},
	schema.Budget{},
	schema.BalanceSheetItem{},
	schema.MigrationMarker{},
}

var tables = mustDescribe(schemas...)

func mustDescribe(ss ...ent.Interface) map[Collection]*table {
	out := make(map[Collection]*table, len(ss))
	for _, s := range ss {
		t, err := describe(s)
		if err != nil {
			panic(err)
		}
		out[Collection(t.name)] = t
	}
	return out
}

// describe reads a table definition from an ent schema.
func describe(s ent.Interface) (*table, error) {
	t := &table{}
	for _, a := range s.Annotations() {
		switch ann := a.(type) {
		case entsql.Annotation:
			t.name = ann.Table
		case *entsql.Annotation:
			t.name = ann.Table
		}
	}
	if t.name == "" {
		return nil, fmt.Errorf("schema %T: missing table annotation", s)
	}

	for _, f := range s.Fields() {
		d := f.Descriptor()
		if d.Err != nil {
			return nil, fmt.Errorf("schema %s field %s: %w", t.name, d.Name, d.Err)
		}
		c := column{
			name:       d.Name,
			field:      d.Name,
			typ:        d.Info.Type,
			schemaType: d.SchemaType,
			optional:   d.Optional,
			immutable:  d.Immutable,
			validators: d.Validators,
		}
		if d.StorageKey != "" {
			c.name = d.StorageKey
		}
		if d.Name == "id" {
			t.key = c.name
		}
		t.columns = append(t.columns, c)
	}
	if t.key == "" {
		return nil, fmt.Errorf("schema %s: missing id field", t.name)
	}

	for _, idx := range s.Indexes() {
		var cols []string
		for _, name := range idx.Descriptor().Fields {
			c, ok := t.column(name)
			if !ok {
				return nil, fmt.Errorf("schema %s: index on unknown field %s", t.name, name)
			}
			cols = append(cols, c.name)
		}
		t.indexes = append(t.indexes, cols)
	}
	return t, nil
}

func sqlType(c column, d string) string {
	if st, ok := c.schemaType[d]; ok {
		return st
	}
	switch c.typ {
	case field.TypeUUID:
		if d == dialect.Postgres {
			return "uuid"
		}
		return "text"
	case field.TypeInt, field.TypeInt8, field.TypeInt16, field.TypeInt32, field.TypeInt64,
		field.TypeUint, field.TypeUint8, field.TypeUint16, field.TypeUint32, field.TypeUint64:
		return "integer"
	case field.TypeBool:
		return "boolean"
	case field.TypeTime:
		if d == dialect.Postgres {
			return "timestamptz"
		}
		return "text"
	default:
		return "text"
	}
}

// validate runs the string validators declared on the schema field.
func (c column) validate(v any) error {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	for _, fn := range c.validators {
		if check, ok := fn.(func(string) error); ok {
			if err := check(s); err != nil {
				return fmt.Errorf("%s: %w", c.field, err)
			}
		}
	}
	return nil
}

// Migrate creates every table and index that does not exist yet.
func Migrate(ctx context.Context, drv dialect.Driver, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	d := drv.Dialect()
	for _, s := range schemas {
		t, err := describe(s)
		if err != nil {
			return err
		}
		create := entsql.Dialect(d).CreateTable(t.name).IfNotExists()
		for _, c := range t.columns {
			col := entsql.Dialect(d).Column(c.name).Type(sqlType(c, d))
			if !c.optional {
				col.Attr("NOT NULL")
			}
			create.Column(col)
		}
		create.PrimaryKey(t.key)
		query, args := create.Query()
		if err := drv.Exec(ctx, query, args, nil); err != nil {
			logger.Error("migrate.table.failed", "table", t.name, "error", err)
			return fmt.Errorf("create table %s: %w", t.name, err)
		}

		for _, cols := range t.indexes {
			name := t.name + "_" + strings.Join(cols, "_")
			query, args := entsql.Dialect(d).CreateIndex(name).IfNotExists().Table(t.name).Columns(cols...).Query()
			if err := drv.Exec(ctx, query, args, nil); err != nil {
				return fmt.Errorf("create index %s: %w", name, err)
			}
		}
		logger.Debug("migrate.table.ok", "table", t.name, "dialect", d)
	}
	return nil
}
