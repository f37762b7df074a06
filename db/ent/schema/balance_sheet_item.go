package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"

	"github.com/joseph-ayodele/bizledger/db/ent/schema/utils"
)

// BalanceSheetItem rows are append-only.
type BalanceSheetItem struct{ ent.Schema }

func (BalanceSheetItem) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "balance_sheet_items"},
	}
}

func (BalanceSheetItem) Fields() []ent.Field {
	return []ent.Field{
		id(),
		owner(),
		field.String("category").Validate(utils.EnumValidator("assets", "liabilities", "equity")),
		field.String("subcategory").NotEmpty(),
		money("amount"),
		day("date"),
	}
}

func (BalanceSheetItem) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("owner_id", "category"),
	}
}
