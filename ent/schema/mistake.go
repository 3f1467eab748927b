package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Mistake is one glossary entry: a word the learner misspelled and how many
// times in a row they have since spelled it correctly.
type Mistake struct {
	ent.Schema
}

func (Mistake) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			Immutable().
			Comment("UUID assigned when the word is first missed"),
		field.String("username"),
		field.String("word").
			Comment("Expected word as it appeared in the sentence"),
		field.String("user_spelling").
			Default(""),
		field.Text("original_sentence"),
		field.String("grade"),
		field.Int("mastery_score").
			Default(0).
			Comment("Consecutive correct re-encounters, removed at 3"),
		field.Time("timestamp").
			Default(time.Now),
		field.Int64("created_seq").
			Immutable().
			Comment("Global sequence at first miss, orders the glossary newest first"),
	}
}

func (Mistake) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("username", "word"),
		index.Fields("username", "timestamp"),
	}
}
