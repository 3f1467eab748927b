// Package login is the sign-in and registration screen.
package login

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/spellbound/internal/auth"
	"github.com/abhisek/spellbound/internal/router"
	"github.com/abhisek/spellbound/internal/screen"
	"github.com/abhisek/spellbound/internal/ui/components"
	"github.com/abhisek/spellbound/internal/ui/layout"
	"github.com/abhisek/spellbound/internal/ui/theme"
)

type mode int

const (
	modeLogin mode = iota
	modeRegister
)

const (
	fieldUsername = iota
	fieldEmail
	fieldSubmit
	fieldCount
)

type signedInMsg struct {
	User *auth.User
	Err  error
}

type availabilityMsg struct {
	Username  string
	Available bool
}

// Screen lets a learner sign in or create an account.
type Screen struct {
	svc     *auth.Service
	session *auth.Session
	next    func(*auth.User) screen.Screen

	mode      mode
	focus     int
	username  components.TextInput
	email     components.TextInput
	submit    components.Button
	errMsg    string
	checked   string // username the availability hint refers to
	available bool
	busy      bool
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the login screen. next builds the screen shown after a
// successful sign-in.
func New(svc *auth.Service, session *auth.Session, next func(*auth.User) screen.Screen) *Screen {
	s := &Screen{
		svc:      svc,
		session:  session,
		next:     next,
		username: components.NewTextInput("username", 40),
		email:    components.NewTextInput("email", 80),
	}
	s.email.Blur()
	s.submit = components.NewButton(s.submitLabel(), false, nil)
	return s
}

func (s *Screen) Init() tea.Cmd {
	return s.username.Init()
}

func (s *Screen) Title() string {
	if s.mode == modeRegister {
		return "Create Account"
	}
	return "Sign In"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	toggle := "Create account"
	if s.mode == modeRegister {
		toggle = "Sign in instead"
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Continue"},
		{Key: "Ctrl+T", Description: toggle},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *Screen) submitLabel() string {
	if s.mode == modeRegister {
		return "Create account"
	}
	return "Sign in"
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case signedInMsg:
		s.busy = false
		if msg.Err != nil {
			s.errMsg = errorText(msg.Err)
			return s, nil
		}
		s.session.SignIn(msg.User)
		return s, router.Replace(s.next(msg.User))

	case availabilityMsg:
		if msg.Username == strings.TrimSpace(s.username.Value()) {
			s.checked = msg.Username
			s.available = msg.Available
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.busy {
		return s, nil
	}
	switch msg.String() {
	case "ctrl+t":
		if s.mode == modeLogin {
			s.mode = modeRegister
		} else {
			s.mode = modeLogin
		}
		s.errMsg = ""
		s.submit.Label = s.submitLabel()
		return s, s.checkAvailability()
	case "tab", "down":
		return s, s.setFocus((s.focus + 1) % fieldCount)
	case "shift+tab", "up":
		return s, s.setFocus((s.focus + fieldCount - 1) % fieldCount)
	case "enter":
		if s.focus == fieldUsername {
			return s, s.setFocus(fieldEmail)
		}
		return s.signIn()
	}

	var cmd tea.Cmd
	switch s.focus {
	case fieldUsername:
		before := s.username.Value()
		s.username, cmd = s.username.Update(msg)
		if s.username.Value() != before {
			return s, tea.Batch(cmd, s.checkAvailability())
		}
	case fieldEmail:
		s.email, cmd = s.email.Update(msg)
	}
	return s, cmd
}

func (s *Screen) setFocus(f int) tea.Cmd {
	s.focus = f
	s.username.Blur()
	s.email.Blur()
	s.submit.Active = f == fieldSubmit
	switch f {
	case fieldUsername:
		return s.username.Focus()
	case fieldEmail:
		return s.email.Focus()
	}
	return nil
}

func (s *Screen) signIn() (screen.Screen, tea.Cmd) {
	creds := auth.Credentials{Username: s.username.Value(), Email: s.email.Value()}
	svc, register := s.svc, s.mode == modeRegister
	s.busy = true
	s.errMsg = ""
	return s, func() tea.Msg {
		ctx := context.Background()
		var (
			u   *auth.User
			err error
		)
		if register {
			u, err = svc.Register(ctx, creds)
		} else {
			u, err = svc.Login(ctx, creds)
		}
		return signedInMsg{User: u, Err: err}
	}
}

// checkAvailability looks up the typed username while registering.
func (s *Screen) checkAvailability() tea.Cmd {
	name := strings.TrimSpace(s.username.Value())
	if s.mode != modeRegister || name == "" {
		s.checked = ""
		return nil
	}
	svc := s.svc
	return func() tea.Msg {
		ok, err := svc.Available(context.Background(), name)
		if err != nil {
			return nil
		}
		return availabilityMsg{Username: name, Available: ok}
	}
}

func errorText(err error) string {
	if auth.IsUserError(err) {
		return err.Error()
	}
	return "Something went wrong. Please try again."
}

func (s *Screen) View(width, height int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render("SpellBound"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render("Listen. Type. Spell it right."))
	b.WriteString("\n\n")

	form := strings.Builder{}
	form.WriteString(dim.Render("Username") + "\n" + s.username.View() + "\n")
	if s.mode == modeRegister && s.checked != "" {
		if s.available {
			form.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render("✓ Username available"))
		} else {
			form.WriteString(theme.ErrorText.Render("✗ " + auth.ErrUsernameInUse.Error()))
		}
		form.WriteString("\n")
	}
	form.WriteString("\n" + dim.Render("Email") + "\n" + s.email.View() + "\n\n")
	form.WriteString(s.submit.View())
	if s.busy {
		form.WriteString("  " + dim.Render("..."))
	}
	if s.errMsg != "" {
		form.WriteString("\n\n" + theme.ErrorText.Render(s.errMsg))
	}

	card := theme.Card.Width(min(56, max(width-4, 30))).Render(form.String())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}
