// Package welcome is the splash shown before sign-in. It spells the app
// name one letter at a time and then hands over to the next screen.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/spellbound/internal/router"
	"github.com/abhisek/spellbound/internal/screen"
	"github.com/abhisek/spellbound/internal/ui/theme"
)

const (
	tickInterval = 120 * time.Millisecond
	// holdTicks is how long the finished banner stays up before moving on.
	holdTicks = 15
)

const speakerArt = `   ▁▂▃
 ▕█▉  ))
   ▔▀▀`

type tickMsg time.Time

// WelcomeScreen animates the banner then replaces itself with next().
type WelcomeScreen struct {
	next         func() screen.Screen
	letters      int
	held         int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a splash that continues to the screen built by next.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) done() bool {
	return w.letters >= len(appName)
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if !w.done() {
			w.letters++
			return w, tick()
		}
		w.held++
		if w.held >= holdTicks {
			return w, w.transition()
		}
		return w, tick()

	case tea.KeyPressMsg:
		// The first key finishes the word, the next one moves on.
		if !w.done() {
			w.letters = len(appName)
			return w, nil
		}
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	return router.Replace(w.next())
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections,
		lipgloss.NewStyle().Foreground(theme.Secondary).Render(speakerArt),
		"",
		RenderBanner(width, w.letters),
	)

	if w.done() {
		sections = append(sections,
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
				Render("Listen. Type. Master every word."),
			"",
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render("press any key to continue"),
		)
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.TrimRight(content, "\n"))
}
