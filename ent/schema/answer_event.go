package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// AnswerEvent records one judged answer within a session.
type AnswerEvent struct {
	ent.Schema
}

func (AnswerEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (AnswerEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("question_id").
			NotEmpty(),
		field.String("category").
			NotEmpty(),
		field.String("difficulty").
			NotEmpty(),
		field.Bool("correct"),
		field.Int("attempt").
			Default(1).
			Comment("1 for the first try, higher on retries"),
		field.Int64("time_ms").
			Default(0).
			Comment("Milliseconds to answer"),
	}
}
