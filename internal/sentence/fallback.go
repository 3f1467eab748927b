package sentence

import (
	"context"
	"fmt"
)

// Fallback returns the canned sentence used when generation fails.
func Fallback(targetWord string) Sentence {
	text := fallbackText
	if targetWord != "" {
		text = fmt.Sprintf(fallbackTargetF, targetWord)
	}
	return Sentence{Text: text, Hint: fallbackHint, Fallback: true}
}

// Canned is a Generator that always returns the fallback sentence. It
// stands in when no LLM provider is configured.
type Canned struct{}

func (Canned) Generate(_ context.Context, _ string, targetWord string) Sentence {
	return Fallback(targetWord)
}
