package login

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/abhisek/spellbound/internal/auth"
	"github.com/abhisek/spellbound/internal/router"
	"github.com/abhisek/spellbound/internal/screen"
	"github.com/abhisek/spellbound/internal/store"
)

type stubScreen struct{ user *auth.User }

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "grades" }
func (s *stubScreen) Title() string                           { return "Grades" }

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func typeText(s *Screen, text string) {
	for _, r := range text {
		s.Update(keyPress(r))
	}
}

func newScreen(t *testing.T) (*Screen, *auth.Service, *auth.Session) {
	t.Helper()
	st, err := store.OpenInMemory(strings.ReplaceAll(t.Name(), "/", "_"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	logger, _ := test.NewNullLogger()
	svc := auth.NewService(st.UserRepo(), logger)
	session := &auth.Session{}
	s := New(svc, session, func(u *auth.User) screen.Screen { return &stubScreen{user: u} })
	return s, svc, session
}

// submit fills the form and runs the sign-in command.
func submit(t *testing.T, s *Screen, username, email string) tea.Cmd {
	t.Helper()
	typeText(s, username)
	s.Update(specialKey(tea.KeyEnter))
	typeText(s, email)
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected sign-in command")
	}
	_, next := s.Update(cmd())
	return next
}

func TestRegisterSignsIn(t *testing.T) {
	s, _, session := newScreen(t)
	s.Update(ctrlT())

	next := submit(t, s, "ana", "ana@example.com")
	if session.Current() == nil || session.Current().Username != "ana" {
		t.Fatalf("expected ana to be signed in, got %+v", session.Current())
	}
	msg, ok := next().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", next())
	}
	if msg.Screen.(*stubScreen).user.Username != "ana" {
		t.Error("next screen should receive the user")
	}
}

func TestLoginErrors(t *testing.T) {
	s, svc, session := newScreen(t)
	if _, err := svc.Register(context.Background(), auth.Credentials{Username: "ana", Email: "ana@example.com"}); err != nil {
		t.Fatal(err)
	}

	submit(t, s, "ana", "bad@example.com")
	if session.Current() != nil {
		t.Error("should not sign in with the wrong email")
	}
	if !strings.Contains(s.View(100, 30), "Invalid email for this user") {
		t.Errorf("expected mismatch message:\n%s", s.View(100, 30))
	}
}

func TestLoginMissingFields(t *testing.T) {
	s, _, _ := newScreen(t)
	s.Update(specialKey(tea.KeyTab))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	s.Update(cmd())
	if !strings.Contains(s.View(100, 30), "Please fill in all fields") {
		t.Error("expected missing fields message")
	}
}

func TestAvailabilityHint(t *testing.T) {
	s, svc, _ := newScreen(t)
	if _, err := svc.Register(context.Background(), auth.Credentials{Username: "ana", Email: "ana@example.com"}); err != nil {
		t.Fatal(err)
	}
	s.Update(ctrlT())

	var cmd tea.Cmd
	for _, r := range "ana" {
		_, cmd = s.Update(keyPress(r))
	}
	// The last command batches the input update with the lookup.
	for _, msg := range run(cmd) {
		s.Update(msg)
	}
	if !strings.Contains(s.View(100, 30), "Please choose a different username") {
		t.Errorf("expected taken hint:\n%s", s.View(100, 30))
	}

	// A stale answer for a different name is ignored.
	s.Update(availabilityMsg{Username: "an", Available: true})
	if s.available {
		t.Error("stale availability result should be ignored")
	}
}

func TestToggleResetsError(t *testing.T) {
	s, _, _ := newScreen(t)
	s.errMsg = "Username not found"
	s.Update(ctrlT())
	if s.mode != modeRegister || s.errMsg != "" {
		t.Errorf("expected register mode without error, got mode %d err %q", s.mode, s.errMsg)
	}
	if s.Title() != "Create Account" {
		t.Errorf("unexpected title %q", s.Title())
	}
}

func ctrlT() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl}
}

// run executes cmd and any batched commands, returning availability results.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, run(c)...)
		}
		return out
	case availabilityMsg:
		return []tea.Msg{msg}
	}
	return nil
}
