// Package glossary keeps the per-user list of misspelled words and their
// mastery counters.
package glossary

import (
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/abhisek/spellbound/internal/grading"
)

// MaxMastery is the number of correct reviews that retires a word.
const MaxMastery = 3

// Record is one glossary entry. The list is kept newest first and holds at
// most one record per lowercase word.
type Record struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	Word             string    `json:"word"`
	UserSpelling     string    `json:"userSpelling"`
	OriginalSentence string    `json:"originalSentence"`
	Timestamp        time.Time `json:"timestamp"`
	Grade            string    `json:"grade"`
	MasteryScore     int       `json:"masteryScore"`

	// seq orders persisted records; zero until first saved.
	seq int64
}

// RecordCorrect credits a correct review of targetID. The record is dropped
// from the list once its score reaches MaxMastery. An unknown id leaves the
// list unchanged.
func RecordCorrect(list []Record, targetID string) ([]Record, bool) {
	_, idx, ok := lo.FindIndexOf(list, func(r Record) bool { return r.ID == targetID })
	if !ok {
		return list, false
	}
	out := append([]Record(nil), list...)
	out[idx].MasteryScore++
	if out[idx].MasteryScore >= MaxMastery {
		return append(out[:idx], out[idx+1:]...), true
	}
	return out, false
}

// RecordIncorrect upserts every missed word of diff. A word already in the
// list (compared case-insensitively) has its score reset and its context
// refreshed; its grade is left as first recorded. New words are prepended.
func RecordIncorrect(list []Record, username string, diff []grading.WordDiff, sentence, grade string, now time.Time, newID func() string) []Record {
	out := append([]Record(nil), list...)
	for _, d := range grading.IncorrectWords(diff) {
		word := grading.CleanWord(d.Part)
		_, idx, ok := lo.FindIndexOf(out, func(r Record) bool {
			return strings.EqualFold(r.Word, word)
		})
		if ok {
			out[idx].MasteryScore = 0
			out[idx].Timestamp = now
			out[idx].OriginalSentence = sentence
			out[idx].UserSpelling = d.UserAttempt
			continue
		}
		rec := Record{
			ID:               newID(),
			Username:         username,
			Word:             word,
			UserSpelling:     d.UserAttempt,
			OriginalSentence: sentence,
			Timestamp:        now,
			Grade:            grade,
		}
		out = append([]Record{rec}, out...)
	}
	return out
}

// Filter returns records whose word contains query (case-insensitive) and
// whose grade matches. An empty grade or "All" matches every grade.
func Filter(list []Record, query, grade string) []Record {
	q := strings.ToLower(strings.TrimSpace(query))
	return lo.Filter(list, func(r Record, _ int) bool {
		if q != "" && !strings.Contains(strings.ToLower(r.Word), q) {
			return false
		}
		return grade == "" || grade == "All" || r.Grade == grade
	})
}

// FindWord returns the record for word, compared case-insensitively.
func FindWord(list []Record, word string) (Record, bool) {
	word = grading.CleanWord(word)
	return lo.Find(list, func(r Record) bool { return strings.EqualFold(r.Word, word) })
}

// Stars renders a mastery score as filled and empty stars.
func Stars(score int) string {
	score = lo.Clamp(score, 0, MaxMastery)
	return strings.Repeat("★", score) + strings.Repeat("☆", MaxMastery-score)
}
