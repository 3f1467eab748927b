package sentence

import (
	"fmt"
	"strings"
)

const systemPrompt = `You write dictation sentences for a spelling tutor.

Rules:
- Write one natural sentence of about 8-15 words suited to the grade.
- Use only plain text with ordinary punctuation.
- The hint describes the context of the sentence. It must not spell out or reveal the spelling of any difficult word.
- Do not repeat any sentence from the "recently used" list.`

// buildUserMessage constructs the request for one sentence.
func buildUserMessage(grade, targetWord string, recent []string, maxRecent int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate a spelling practice sentence appropriate for a student in %s.", grade)
	if targetWord != "" {
		fmt.Fprintf(&b, " The sentence MUST include the word %q naturally and incorrectly using it would be a common mistake.", targetWord)
	}
	b.WriteString(" The sentence should be of appropriate length for the grade level (approx 8-15 words).")
	b.WriteString(" Also provide a small hint about the context of the sentence without revealing the exact spelling of difficult words.")

	b.WriteString("\n\nRecently used sentences:\n")
	b.WriteString(buildDedup(recent, maxRecent))

	return b.String()
}

// buildDedup formats prior sentences for the prompt, respecting the max
// limit. Returns "None" if there are none.
func buildDedup(prior []string, max int) string {
	if len(prior) == 0 {
		return "None"
	}
	if max > 0 && len(prior) > max {
		prior = prior[len(prior)-max:]
	}

	var b strings.Builder
	for i, s := range prior {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	return strings.TrimRight(b.String(), "\n")
}
