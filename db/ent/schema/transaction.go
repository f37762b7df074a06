package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"

	"github.com/joseph-ayodele/bizledger/db/ent/schema/utils"
)

type Transaction struct{ ent.Schema }

func (Transaction) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "transactions"},
	}
}

func (Transaction) Fields() []ent.Field {
	return []ent.Field{
		id(),
		owner(),
		money("amount"),
		field.String("description").Optional().Default(""),
		field.String("category").NotEmpty().Validate(utils.MaxRunes(100)),
		// direction is fixed at creation
		field.String("type").
			Immutable().
			Validate(utils.EnumValidator("income", "expense")),
		day("date"),
		field.String("receipt_url").Optional().Default(""),
	}
}

func (Transaction) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("owner_id", "date"),
	}
}
