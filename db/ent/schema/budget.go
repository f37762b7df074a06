package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"

	"github.com/joseph-ayodele/bizledger/db/ent/schema/utils"
)

type Budget struct{ ent.Schema }

func (Budget) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "budgets"},
	}
}

func (Budget) Fields() []ent.Field {
	return []ent.Field{
		id(),
		owner(),
		field.String("category").NotEmpty().Validate(utils.MaxRunes(100)),
		money("budgeted_amount"),
		field.String("period").Validate(utils.EnumValidator("monthly", "quarterly", "yearly")),
		day("start_date"),
		day("end_date"),
	}
}

func (Budget) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("owner_id", "category"),
	}
}
