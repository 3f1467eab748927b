package home

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/spellbound/internal/router"
	"github.com/abhisek/spellbound/internal/screen"
	"github.com/abhisek/spellbound/internal/store"
)

type stubScreen struct{ title string }

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

type fakeSessions struct {
	records []store.PracticeSession
}

func (f *fakeSessions) Append(context.Context, *store.PracticeSession) error { return nil }
func (f *fakeSessions) List(context.Context, string, int) ([]store.PracticeSession, error) {
	return f.records, nil
}
func (f *fakeSessions) DeleteAll(context.Context, string) (int64, error) { return 0, nil }

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testRoutes(practiced *string, loggedOut *bool) Routes {
	return Routes{
		Practice: func(grade string) screen.Screen {
			*practiced = grade
			return &stubScreen{title: grade}
		},
		Glossary: func() screen.Screen { return &stubScreen{title: "Glossary"} },
		Stats:    func() screen.Screen { return &stubScreen{title: "Progress"} },
		Logout: func() screen.Screen {
			*loggedOut = true
			return &stubScreen{title: "Sign In"}
		},
	}
}

func TestMenuRoutes(t *testing.T) {
	var practiced string
	var loggedOut bool
	h := New("ana", nil, nil, testRoutes(&practiced, &loggedOut))

	_, cmd := h.Update(specialKey(tea.KeyEnter))
	if _, ok := cmd().(router.PushScreenMsg); !ok {
		t.Fatal("selecting a grade should push the practice screen")
	}
	if practiced != "7th Grade" {
		t.Errorf("expected 7th Grade, got %q", practiced)
	}

	h.Update(specialKey(tea.KeyDown))
	h.Update(specialKey(tea.KeyEnter))
	if practiced != "8th Grade" {
		t.Errorf("expected 8th Grade, got %q", practiced)
	}

	// Glossary, Progress, Log out.
	h.Update(specialKey(tea.KeyDown))
	_, cmd = h.Update(specialKey(tea.KeyEnter))
	if msg, ok := cmd().(router.PushScreenMsg); !ok || msg.Screen.Title() != "Glossary" {
		t.Errorf("expected glossary push, got %#v", cmd())
	}
	h.Update(specialKey(tea.KeyDown))
	h.Update(specialKey(tea.KeyDown))
	_, cmd = h.Update(specialKey(tea.KeyEnter))
	if _, ok := cmd().(router.ResetScreenMsg); !ok {
		t.Error("log out should reset the stack")
	}
	if !loggedOut {
		t.Error("logout route should run")
	}
}

func TestDashboard(t *testing.T) {
	var practiced string
	var loggedOut bool
	sessions := &fakeSessions{records: []store.PracticeSession{
		{Grade: "7th Grade", Correct: true},
		{Grade: "7th Grade", Correct: true},
	}}
	h := New("ana", nil, sessions, testRoutes(&practiced, &loggedOut))
	h.Update(h.Init()())

	if h.dash.total != 2 || h.dash.accuracy != 100 {
		t.Errorf("unexpected dashboard %+v", h.dash)
	}
	if h.mascotVariant != MascotCelebrating {
		t.Errorf("expected celebrating mascot, got %d", h.mascotVariant)
	}
	view := h.View(120, 40)
	if !strings.Contains(view, "100% accuracy") {
		t.Errorf("expected accuracy in view:\n%s", view)
	}
}

func TestVariantFor(t *testing.T) {
	tests := []struct {
		d    dashboardMsg
		want MascotVariant
	}{
		{dashboardMsg{}, MascotIdle},
		{dashboardMsg{words: 12, total: 5, accuracy: 90}, MascotAlert},
		{dashboardMsg{words: 1, total: 5, accuracy: 80}, MascotCelebrating},
		{dashboardMsg{words: 1, total: 5, accuracy: 40}, MascotIdle},
	}
	for _, tt := range tests {
		if got := variantFor(tt.d); got != tt.want {
			t.Errorf("variantFor(%+v) = %d, want %d", tt.d, got, tt.want)
		}
	}
}

func TestCompactViewFits(t *testing.T) {
	var practiced string
	var loggedOut bool
	h := New("ana", nil, nil, testRoutes(&practiced, &loggedOut))
	view := h.View(80, 18)
	if !strings.Contains(view, "S · P · E · L · L") {
		t.Error("expected compact title on a small terminal")
	}
}
