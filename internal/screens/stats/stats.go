// Package stats is the screen summarizing a learner's practice history.
package stats

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/spellbound/internal/screen"
	summary "github.com/abhisek/spellbound/internal/stats"
	"github.com/abhisek/spellbound/internal/store"
	"github.com/abhisek/spellbound/internal/ui/components"
	"github.com/abhisek/spellbound/internal/ui/theme"
)

type loadedMsg struct {
	Summary summary.Summary
	Err     error
}

// Screen shows totals, per-grade accuracy and the latest attempts.
type Screen struct {
	sessions store.SessionRepo
	username string
	sum      *summary.Summary
	errMsg   string
}

var _ screen.Screen = (*Screen)(nil)

// New creates the stats screen for username.
func New(sessions store.SessionRepo, username string) *Screen {
	return &Screen{sessions: sessions, username: username}
}

func (s *Screen) Init() tea.Cmd {
	repo, username := s.sessions, s.username
	return func() tea.Msg {
		records, err := repo.List(context.Background(), username, 0)
		if err != nil {
			return loadedMsg{Err: err}
		}
		return loadedMsg{Summary: summary.Summarize(records)}
	}
}

func (s *Screen) Title() string {
	return "Progress"
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(loadedMsg); ok {
		if msg.Err != nil {
			s.errMsg = "Could not load your history."
			return s, nil
		}
		sum := msg.Summary
		s.sum = &sum
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	if s.errMsg != "" {
		return "\n  " + theme.ErrorText.Render(s.errMsg)
	}
	if s.sum == nil {
		return "\n  " + dim.Render("Loading...")
	}
	sum := s.sum
	if sum.Total == 0 {
		return "\n  " + dim.Render("No sentences checked yet. Pick a grade and start practicing!")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + theme.Body.Bold(true).Render(fmt.Sprintf("%d sentences", sum.Total)))
	b.WriteString(dim.Render(fmt.Sprintf("   %d perfect   ", sum.Correct)))
	b.WriteString(theme.Stars.Render(fmt.Sprintf("%d%% accuracy", sum.Accuracy)))
	b.WriteString("\n\n")

	barWidth := min(width-4, 70)
	for _, g := range sum.ByGrade {
		bar := components.NewProgressBar(g.Grade, float64(g.Accuracy)/100, fmt.Sprintf("%d/%d", g.Correct, g.Total), barWidth)
		bar.LabelWidth = 10
		b.WriteString("  " + bar.View() + "\n")
	}

	b.WriteString("\n  " + dim.Render("Recent") + "\n")
	for _, r := range sum.Recent {
		mark := theme.Correct.Render("✓")
		if !r.Correct {
			mark = theme.Incorrect.Render("✗")
		}
		text := r.Text
		if limit := width - 24; limit > 10 && len([]rune(text)) > limit {
			text = string([]rune(text)[:limit-1]) + "…"
		}
		b.WriteString(fmt.Sprintf("  %s %s  %s\n", mark, dim.Render(r.Timestamp.Local().Format("Jan 2 15:04")), theme.Body.Render(text)))
	}
	return b.String()
}
