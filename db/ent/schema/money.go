package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect"
	"entgo.io/ent/schema/field"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// money is a non-negative amount stored with minor-unit precision.
func money(name string) ent.Field {
	return field.Other(name, decimal.Decimal{}).
		SchemaType(map[string]string{
			dialect.Postgres: "numeric(14,2)",
			dialect.SQLite:   "text",
		})
}

// day is a calendar date without a time component.
func day(name string) ent.Field {
	return field.Time(name).
		SchemaType(map[string]string{
			dialect.Postgres: "date",
			dialect.SQLite:   "text",
		})
}

func id() ent.Field {
	return field.UUID("id", uuid.UUID{}).
		Default(uuid.New).
		Immutable().
		StorageKey("id")
}

func owner() ent.Field {
	return field.UUID("owner_id", uuid.UUID{}).Immutable()
}
