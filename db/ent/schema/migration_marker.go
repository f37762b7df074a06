package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"github.com/google/uuid"
)

// MigrationMarker records that an owner's local buffer has been copied
// into the durable store. One row per owner.
type MigrationMarker struct{ ent.Schema }

func (MigrationMarker) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "migration_markers"},
	}
}

func (MigrationMarker) Fields() []ent.Field {
	return []ent.Field{
		field.UUID("id", uuid.UUID{}).
			Immutable().
			StorageKey("owner_id"),
		field.Time("migrated_at").
			SchemaType(map[string]string{
				dialect.Postgres: "timestamptz",
				dialect.SQLite:   "text",
			}),
		field.Int("records").NonNegative().Default(0),
	}
}
