package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// PracticeSession is the append-only log of checked sentences.
type PracticeSession struct {
	ent.Schema
}

func (PracticeSession) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (PracticeSession) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			Immutable(),
		field.String("username"),
		field.String("grade"),
		field.Bool("correct"),
		field.Text("text").
			Comment("Sentence the learner heard"),
		field.Text("attempt").
			Default("").
			Comment("What the learner typed"),
		field.String("target_word").
			Default("").
			Comment("Glossary word the sentence was built around, if any"),
	}
}

func (PracticeSession) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("username", "sequence"),
	}
}
