package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// Worksheet is a generated problem list and the parameters it was built
// from.
type Worksheet struct {
	ent.Schema
}

func (Worksheet) Mixin() []ent.Mixin {
	return []ent.Mixin{SequenceMixin{}}
}

func (Worksheet) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			Unique().
			Immutable().
			Comment("UUID assigned by the worksheet service"),
		field.Time("created_at").
			Default(time.Now).
			Immutable(),
		field.Text("params").
			Comment("JSON-encoded generator parameters"),
		field.Text("problems").
			Comment("JSON array of problem strings, in order"),
		field.Int("problem_count").
			Default(0),
		field.String("model").
			Default(""),
	}
}
