package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"

	"github.com/joseph-ayodele/bizledger/db/ent/schema/utils"
)

type PettyCashEntry struct{ ent.Schema }

func (PettyCashEntry) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "petty_cash_entries"},
	}
}

func (PettyCashEntry) Fields() []ent.Field {
	return []ent.Field{
		id(),
		owner(),
		money("amount"),
		field.String("description").Optional().Default(""),
		field.String("type").Validate(utils.EnumValidator("add", "withdraw")),
		day("date"),
		field.String("receipt_url").Optional().Default(""),
	}
}

func (PettyCashEntry) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("owner_id", "date"),
	}
}
