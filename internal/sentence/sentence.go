// Package sentence produces dictation sentences for a grade, optionally
// built around a word the learner needs to review.
package sentence

import "context"

// Sentence is one dictation item.
type Sentence struct {
	Text string `json:"text"`
	Hint string `json:"hint"`

	// Fallback is set when the text is a canned sentence because
	// generation failed.
	Fallback bool `json:"fallback,omitempty"`
}

// Generator produces sentences. Implementations never fail: on any error
// they return a fallback sentence.
type Generator interface {
	Generate(ctx context.Context, grade, targetWord string) Sentence
}

const (
	fallbackText    = "The quick brown fox jumps over the lazy dog."
	fallbackHint    = "It's a practice sentence."
	fallbackTargetF = "The student needed to practice the word %s."
)
