package stats

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/spellbound/internal/store"
)

type fakeSessions struct {
	records []store.PracticeSession
	err     error
}

func (f *fakeSessions) Append(context.Context, *store.PracticeSession) error { return nil }
func (f *fakeSessions) List(context.Context, string, int) ([]store.PracticeSession, error) {
	return f.records, f.err
}
func (f *fakeSessions) DeleteAll(context.Context, string) (int64, error) { return 0, nil }

func TestViewSummarizes(t *testing.T) {
	repo := &fakeSessions{records: []store.PracticeSession{
		{Grade: "8th Grade", Correct: true, Text: "A weird day."},
		{Grade: "7th Grade", Correct: false, Text: "Keep the rhythm."},
		{Grade: "7th Grade", Correct: true, Text: "The dog ran."},
	}}
	s := New(repo, "ana")
	s.Update(s.Init()())

	view := s.View(100, 30)
	for _, want := range []string{"3 sentences", "2 perfect", "67% accuracy", "7th Grade", "1/2", "8th Grade", "1/1", "Keep the rhythm."} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestViewEmpty(t *testing.T) {
	s := New(&fakeSessions{}, "ana")
	if !strings.Contains(s.View(80, 20), "Loading") {
		t.Error("expected loading state before data arrives")
	}
	s.Update(s.Init()())
	if !strings.Contains(s.View(80, 20), "No sentences checked yet") {
		t.Error("expected empty state")
	}
}

func TestViewError(t *testing.T) {
	s := New(&fakeSessions{err: errors.New("disk")}, "ana")
	s.Update(s.Init()())
	if !strings.Contains(s.View(80, 20), "Could not load") {
		t.Error("expected error message")
	}
}
