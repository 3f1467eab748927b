package glossary

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/sirupsen/logrus/hooks/test"

	gl "github.com/abhisek/spellbound/internal/glossary"
	"github.com/abhisek/spellbound/internal/grading"
	"github.com/abhisek/spellbound/internal/router"
	"github.com/abhisek/spellbound/internal/screen"
	"github.com/abhisek/spellbound/internal/store"
)

type stubScreen struct{ rec gl.Record }

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.rec.Word }
func (s *stubScreen) Title() string                           { return "Practice" }

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// seeded returns a service holding "weird" (8th grade) and "rhythm"
// (7th grade), newest first.
func seeded(t *testing.T) *gl.Service {
	t.Helper()
	st, err := store.OpenInMemory(strings.ReplaceAll(t.Name(), "/", "_"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	logger, _ := test.NewNullLogger()
	svc := gl.NewService(st.MistakeRepo(), logger)
	ctx := context.Background()
	for _, m := range []struct{ grade, want, typed string }{
		{"7th Grade", "Keep the rhythm.", "Keep the rythm."},
		{"8th Grade", "A weird day.", "A wierd day."},
	} {
		res := grading.Check(m.want, m.typed)
		if _, err := svc.Apply(ctx, gl.Update{Username: "ana", Diff: res.Diff, Sentence: m.want, Grade: m.grade}); err != nil {
			t.Fatalf("apply: %v", err)
		}
	}
	return svc
}

func loaded(t *testing.T, s *Screen) *Screen {
	t.Helper()
	s.Update(s.Init()())
	return s
}

func TestListAndDetail(t *testing.T) {
	s := loaded(t, New(seeded(t), "ana", nil))

	if len(s.visible) != 2 {
		t.Fatalf("expected 2 records, got %d", len(s.visible))
	}
	if s.visible[0].Word != "weird" {
		t.Errorf("expected newest first, got %q", s.visible[0].Word)
	}
	view := s.View(100, 30)
	if !strings.Contains(view, "wierd") || !strings.Contains(view, "A weird day.") {
		t.Errorf("detail card missing spelling or sentence:\n%s", view)
	}
}

func TestEmptyGlossary(t *testing.T) {
	st, err := store.OpenInMemory(strings.ReplaceAll(t.Name(), "/", "_"))
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	logger, _ := test.NewNullLogger()
	s := loaded(t, New(gl.NewService(st.MistakeRepo(), logger), "ana", nil))

	if !strings.Contains(s.View(100, 30), "No mistakes yet") {
		t.Error("expected empty-state message")
	}
	// Keys on an empty list are harmless.
	s.Update(specialKey(tea.KeyEnter))
	s.Update(keyPress('d'))
}

func TestGradeFilterCycles(t *testing.T) {
	s := loaded(t, New(seeded(t), "ana", nil))

	s.Update(specialKey(tea.KeyTab))
	if gradeOptions[s.grade] != "7th Grade" {
		t.Fatalf("expected 7th Grade filter, got %q", gradeOptions[s.grade])
	}
	if len(s.visible) != 1 || s.visible[0].Word != "rhythm" {
		t.Errorf("expected only rhythm, got %+v", s.visible)
	}

	s.Update(specialKey(tea.KeyTab))
	s.Update(specialKey(tea.KeyTab))
	if gradeOptions[s.grade] != allGrades || len(s.visible) != 2 {
		t.Errorf("expected filter to wrap to All, got %q with %d", gradeOptions[s.grade], len(s.visible))
	}
}

func TestWordFilter(t *testing.T) {
	s := loaded(t, New(seeded(t), "ana", nil))

	s.Update(keyPress('/'))
	if !s.filter.Focused() {
		t.Fatal("expected filter to take focus")
	}
	for _, r := range "RHY" {
		s.Update(keyPress(r))
	}
	if len(s.visible) != 1 || s.visible[0].Word != "rhythm" {
		t.Errorf("expected rhythm only, got %+v", s.visible)
	}

	s.Update(specialKey(tea.KeyEnter))
	if s.filter.Focused() {
		t.Error("enter should leave the filter")
	}
}

func TestDeleteReloads(t *testing.T) {
	svc := seeded(t)
	s := loaded(t, New(svc, "ana", nil))

	_, cmd := s.Update(keyPress('d'))
	_, cmd = s.Update(cmd())
	s.Update(cmd())

	if len(s.records) != 1 || s.records[0].Word != "rhythm" {
		t.Errorf("expected weird to be deleted, got %+v", s.records)
	}
	if n := len(svc.List(context.Background(), "ana")); n != 1 {
		t.Errorf("expected 1 stored record, got %d", n)
	}
}

func TestEnterPracticesSelectedWord(t *testing.T) {
	var picked gl.Record
	factory := func(r gl.Record) screen.Screen {
		picked = r
		return &stubScreen{rec: r}
	}
	s := loaded(t, New(seeded(t), "ana", factory))

	s.Update(specialKey(tea.KeyDown))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if _, ok := cmd().(router.PushScreenMsg); !ok {
		t.Fatal("expected a push")
	}
	if picked.Word != "rhythm" || picked.Grade != "7th Grade" {
		t.Errorf("unexpected record %+v", picked)
	}
}

func TestRefreshPicksUpChanges(t *testing.T) {
	svc := seeded(t)
	s := loaded(t, New(svc, "ana", nil))
	if _, err := svc.Clear(context.Background(), "ana"); err != nil {
		t.Fatal(err)
	}
	s.Update(s.Refresh()())
	if len(s.records) != 0 {
		t.Errorf("expected empty list after refresh, got %d", len(s.records))
	}
}
