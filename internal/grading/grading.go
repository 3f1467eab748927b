// Package grading compares a dictated sentence with what the learner typed.
package grading

import (
	"regexp"
	"strings"
)

// punctuation is the set of characters ignored when comparing words.
var punctuation = regexp.MustCompile("[.,/#!$%^&*;:{}=\\-_`~()]")

// WordDiff is the outcome for one expected word, compared by position.
type WordDiff struct {
	Part        string `json:"part"`
	Correct     bool   `json:"correct"`
	UserAttempt string `json:"userAttempt"`
}

// Result is the graded attempt.
type Result struct {
	Correct bool       `json:"isCorrect"`
	Diff    []WordDiff `json:"diff"`
}

// Normalize strips punctuation, lowercases and trims s.
func Normalize(s string) string {
	return strings.TrimSpace(strings.ToLower(punctuation.ReplaceAllString(s, "")))
}

// CleanWord strips punctuation from a single word but keeps its case, so
// "Dog." and "dog" name the same glossary entry.
func CleanWord(w string) string {
	return strings.TrimSpace(punctuation.ReplaceAllString(w, ""))
}

// Check grades attempt against expected.
//
// The overall verdict compares the normalized sentences. The diff pairs
// words by index after splitting on runs of whitespace, so an inserted or
// dropped word shifts every later comparison.
func Check(expected, attempt string) Result {
	res := Result{Correct: Normalize(expected) == Normalize(attempt)}

	want := strings.Fields(expected)
	got := strings.Fields(attempt)

	res.Diff = make([]WordDiff, len(want))
	for i, w := range want {
		typed := ""
		if i < len(got) {
			typed = got[i]
		}
		res.Diff[i] = WordDiff{
			Part:        w,
			Correct:     Normalize(w) == Normalize(typed),
			UserAttempt: typed,
		}
	}
	return res
}

// IncorrectWords returns the missed entries that still name a word once
// punctuation is removed.
func IncorrectWords(diff []WordDiff) []WordDiff {
	var out []WordDiff
	for _, d := range diff {
		if d.Correct || Normalize(d.Part) == "" {
			continue
		}
		out = append(out, d)
	}
	return out
}
