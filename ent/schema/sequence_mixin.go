package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
	"entgo.io/ent/schema/mixin"
)

// SequenceMixin gives a row its position in the store-wide sequence shared
// by worksheets and model-call events.
type SequenceMixin struct {
	mixin.Schema
}

func (SequenceMixin) Fields() []ent.Field {
	return []ent.Field{
		field.Int64("sequence").
			Immutable().
			Comment("Value drawn from global_sequence at insert time"),
	}
}

func (SequenceMixin) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("sequence"),
	}
}
