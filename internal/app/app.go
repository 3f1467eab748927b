package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/spellbound/internal/auth"
	"github.com/abhisek/spellbound/internal/glossary"
	"github.com/abhisek/spellbound/internal/practice"
	"github.com/abhisek/spellbound/internal/router"
	"github.com/abhisek/spellbound/internal/screen"
	glossaryscreen "github.com/abhisek/spellbound/internal/screens/glossary"
	"github.com/abhisek/spellbound/internal/screens/home"
	"github.com/abhisek/spellbound/internal/screens/login"
	practicescreen "github.com/abhisek/spellbound/internal/screens/practice"
	statsscreen "github.com/abhisek/spellbound/internal/screens/stats"
	"github.com/abhisek/spellbound/internal/screens/welcome"
	"github.com/abhisek/spellbound/internal/store"
	"github.com/abhisek/spellbound/internal/ui/layout"
)

// Options holds the services the screens run on.
type Options struct {
	Auth     *auth.Service
	Practice *practice.Service
	Glossary *glossary.Service
	Sessions store.SessionRepo
	Player   practicescreen.Player
	Logger   logrus.FieldLogger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	session *auth.Session
	width   int
	height  int
}

// newAppModel creates a new AppModel starting at the splash, which hands
// over to sign-in.
func newAppModel(opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	session := &auth.Session{}
	nav := &navigator{opts: opts, session: session}
	return AppModel{
		router:  router.New(welcome.New(nav.login)),
		session: session,
	}
}

// navigator builds screens on demand so each factory sees the signed-in
// user.
type navigator struct {
	opts    Options
	session *auth.Session
}

func (n *navigator) login() screen.Screen {
	return login.New(n.opts.Auth, n.session, n.home)
}

func (n *navigator) home(u *auth.User) screen.Screen {
	n.opts.Logger.WithField("username", u.Username).Info("signed in")
	return home.New(u.Username, n.opts.Glossary, n.opts.Sessions, home.Routes{
		Practice: func(grade string) screen.Screen {
			return n.practice(u.Username, practicescreen.WithGrade(grade))
		},
		Glossary: func() screen.Screen { return n.glossary(u.Username) },
		Stats:    func() screen.Screen { return statsscreen.New(n.opts.Sessions, u.Username) },
		Logout: func() screen.Screen {
			n.session.Logout()
			n.opts.Logger.WithField("username", u.Username).Info("signed out")
			return n.login()
		},
	})
}

func (n *navigator) practice(username string, start practicescreen.Start) screen.Screen {
	return practicescreen.New(n.opts.Practice.NewController(username), n.opts.Player, start,
		func() screen.Screen { return n.glossary(username) })
}

func (n *navigator) glossary(username string) screen.Screen {
	return glossaryscreen.New(n.opts.Glossary, username, func(rec glossary.Record) screen.Screen {
		return n.practice(username, practicescreen.WithWord(rec))
	})
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, router.Pop()
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title, grade, user := "", "", ""
	if active != nil {
		title = active.Title()
		if gp, ok := active.(screen.GradeProvider); ok {
			grade = gp.Grade()
		}
	}
	if u := m.session.Current(); u != nil {
		user = u.Username
	}

	header := layout.RenderHeader(title, user, grade, m.width)

	var footerHints []layout.KeyHint
	if kp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = kp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(m.height-headerHeight-footerHeight, 0)

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
