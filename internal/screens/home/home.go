// Package home is the grade selection screen shown after signing in.
package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/spellbound/internal/glossary"
	"github.com/abhisek/spellbound/internal/grades"
	"github.com/abhisek/spellbound/internal/router"
	"github.com/abhisek/spellbound/internal/screen"
	"github.com/abhisek/spellbound/internal/stats"
	"github.com/abhisek/spellbound/internal/store"
	"github.com/abhisek/spellbound/internal/ui/components"
)

// Routes build the screens reachable from the menu.
type Routes struct {
	Practice func(grade string) screen.Screen
	Glossary func() screen.Screen
	Stats    func() screen.Screen
	// Logout signs the learner out and returns the sign-in screen.
	Logout   func() screen.Screen
}

type dashboardMsg struct {
	words    int
	mastered int // words one review away from leaving the glossary
	total    int
	accuracy int
}

// HomeScreen lists the grades plus the glossary, stats and logout entries.
type HomeScreen struct {
	menu          components.Menu
	menuLabels    []string
	username      string
	glossary      *glossary.Service
	sessions      store.SessionRepo
	dash          dashboardMsg
	mascotVariant MascotVariant
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Refresher = (*HomeScreen)(nil)

// New creates the home screen for username.
func New(username string, gl *glossary.Service, sessions store.SessionRepo, routes Routes) *HomeScreen {
	var items []components.MenuItem
	var labels []string
	for _, g := range grades.All {
		labels = append(labels, strings.ToUpper(g))
		items = append(items, components.MenuItem{Label: g, Action: func() tea.Cmd {
			return router.Push(routes.Practice(g))
		}})
	}

	labels = append(labels, "GLOSSARY", "PROGRESS", "LOG OUT")
	items = append(items,
		components.MenuItem{Label: "Glossary", Action: func() tea.Cmd {
			return router.Push(routes.Glossary())
		}},
		components.MenuItem{Label: "Progress", Action: func() tea.Cmd {
			return router.Push(routes.Stats())
		}},
		components.MenuItem{Label: "Log out", Action: func() tea.Cmd {
			return router.Reset(routes.Logout())
		}},
	)

	return &HomeScreen{
		menu:       components.NewMenu(items),
		menuLabels: labels,
		username:   username,
		glossary:   gl,
		sessions:   sessions,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadDashboard()
}

// Refresh reloads the dashboard after practice or glossary edits.
func (h *HomeScreen) Refresh() tea.Cmd {
	return h.loadDashboard()
}

func (h *HomeScreen) loadDashboard() tea.Cmd {
	gl, sessions, username := h.glossary, h.sessions, h.username
	return func() tea.Msg {
		ctx := context.Background()
		var d dashboardMsg
		if gl != nil {
			words := gl.List(ctx, username)
			d.words = len(words)
			for _, w := range words {
				if w.MasteryScore == glossary.MaxMastery-1 {
					d.mastered++
				}
			}
		}
		if sessions != nil {
			if records, err := sessions.List(ctx, username, 0); err == nil {
				sum := stats.Summarize(records)
				d.total, d.accuracy = sum.Total, sum.Accuracy
			}
		}
		return d
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if d, ok := msg.(dashboardMsg); ok {
		h.dash = d
		h.mascotVariant = variantFor(d)
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// variantFor picks the mascot mood from the dashboard numbers.
func variantFor(d dashboardMsg) MascotVariant {
	switch {
	case d.words >= 10:
		return MascotAlert
	case d.total > 0 && d.accuracy >= 80:
		return MascotCelebrating
	}
	return MascotIdle
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 32 || width < 100

	cw := contentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(h.mascotVariant, cw))
	}
	sections = append(sections, renderStatsBar(h.dash, cw, compact))
	if compact {
		sections = append(sections, renderMenuCompact(h.menuLabels, h.menu.Selected, cw))
	} else {
		sections = append(sections, renderMenu(h.menuLabels, h.menu.Selected, cw))
	}

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Choose a Grade"
}
