package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
)

// SessionEvent records the start and end of a practice, game or lesson run.
type SessionEvent struct {
	ent.Schema
}

func (SessionEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (SessionEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("kind").
			NotEmpty().
			Comment("practice, speed, swipe or lesson"),
		field.String("action").
			NotEmpty().
			Comment("start, end, abandon or timeout"),
		field.String("filter").
			Default("").
			Comment("Filter or lesson label the session was built from"),
		field.Int("questions_served").
			Default(0),
		field.Int("correct_answers").
			Default(0).
			Comment("On end only"),
		field.Int("score").
			Default(0).
			Comment("Game points, on end only"),
		field.Int("duration_secs").
			Default(0),
	}
}
