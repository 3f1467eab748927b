// Package stats summarizes a learner's practice history.
package stats

import (
	"math"

	"github.com/samber/lo"

	"github.com/abhisek/spellbound/internal/grades"
	"github.com/abhisek/spellbound/internal/store"
)

// RecentLimit is how many of the newest records a Summary carries.
const RecentLimit = 10

// GradeStats is the tally for one grade.
type GradeStats struct {
	Grade    string `json:"grade"`
	Total    int    `json:"total"`
	Correct  int    `json:"correct"`
	Accuracy int    `json:"accuracy"`
}

// Summary is the aggregate view shown on the stats screen.
type Summary struct {
	Total    int                     `json:"total"`
	Correct  int                     `json:"correct"`
	Accuracy int                     `json:"accuracy"`
	ByGrade  []GradeStats            `json:"byGrade"`
	Recent   []store.PracticeSession `json:"recent"`
}

// Summarize tallies records, which must be ordered newest first.
// Grades appear in grades.All order followed by any unknown grade in
// order of first appearance.
func Summarize(records []store.PracticeSession) Summary {
	correct := lo.CountBy(records, func(r store.PracticeSession) bool { return r.Correct })
	s := Summary{
		Total:    len(records),
		Correct:  correct,
		Accuracy: Accuracy(correct, len(records)),
	}

	byGrade := lo.GroupBy(records, func(r store.PracticeSession) string { return r.Grade })
	order := append([]string(nil), grades.All...)
	for _, r := range lo.Reverse(append([]store.PracticeSession(nil), records...)) {
		if !lo.Contains(order, r.Grade) {
			order = append(order, r.Grade)
		}
	}
	for _, g := range order {
		rs, ok := byGrade[g]
		if !ok {
			continue
		}
		c := lo.CountBy(rs, func(r store.PracticeSession) bool { return r.Correct })
		s.ByGrade = append(s.ByGrade, GradeStats{
			Grade:    g,
			Total:    len(rs),
			Correct:  c,
			Accuracy: Accuracy(c, len(rs)),
		})
	}

	s.Recent = records[:min(len(records), RecentLimit)]
	return s
}

// Accuracy returns correct/total as a rounded percentage, 0 when total is 0.
func Accuracy(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}
