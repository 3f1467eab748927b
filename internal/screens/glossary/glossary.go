// Package glossary is the screen listing a learner's misspelled words.
package glossary

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	gl "github.com/abhisek/spellbound/internal/glossary"
	"github.com/abhisek/spellbound/internal/grades"
	"github.com/abhisek/spellbound/internal/router"
	"github.com/abhisek/spellbound/internal/screen"
	"github.com/abhisek/spellbound/internal/ui/components"
	"github.com/abhisek/spellbound/internal/ui/layout"
	"github.com/abhisek/spellbound/internal/ui/theme"
)

const allGrades = "All"

type loadedMsg struct {
	Records []gl.Record
}

type deletedMsg struct {
	Err error
}

// Screen lists glossary entries with a word filter and a grade filter.
type Screen struct {
	svc      *gl.Service
	username string
	practice func(gl.Record) screen.Screen

	records []gl.Record
	visible []gl.Record
	cursor  int
	filter  components.TextInput
	grade   int // index into gradeOptions
	loaded  bool
	errMsg  string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.Refresher = (*Screen)(nil)

var gradeOptions = append([]string{allGrades}, grades.All...)

// New creates the glossary screen. practice builds the screen that drills
// a single entry; it may be nil.
func New(svc *gl.Service, username string, practice func(gl.Record) screen.Screen) *Screen {
	f := components.NewTextInput("filter words", 40)
	f.Blur()
	return &Screen{
		svc:      svc,
		username: username,
		practice: practice,
		filter:   f,
	}
}

func (s *Screen) Init() tea.Cmd {
	return s.load()
}

// Refresh reloads the list, e.g. after a practice round changed it.
func (s *Screen) Refresh() tea.Cmd {
	return s.load()
}

func (s *Screen) Title() string {
	return "Glossary"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.filter.Focused() {
		return []layout.KeyHint{{Key: "Enter", Description: "Done"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Practice"},
		{Key: "/", Description: "Filter"},
		{Key: "Tab", Description: "Grade"},
		{Key: "D", Description: "Delete"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) load() tea.Cmd {
	svc, username := s.svc, s.username
	return func() tea.Msg {
		return loadedMsg{Records: svc.List(context.Background(), username)}
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.records = msg.Records
		s.loaded = true
		s.apply()
		return s, nil
	case deletedMsg:
		if msg.Err != nil {
			s.errMsg = "Could not delete the word."
			return s, nil
		}
		s.errMsg = ""
		return s, s.load()
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.filter.Focused() {
		if key == "enter" {
			s.filter.Blur()
			return s, nil
		}
		var cmd tea.Cmd
		s.filter, cmd = s.filter.Update(msg)
		s.apply()
		return s, cmd
	}

	switch key {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.visible)-1 {
			s.cursor++
		}
	case "/":
		return s, s.filter.Focus()
	case "tab":
		s.grade = (s.grade + 1) % len(gradeOptions)
		s.apply()
	case "d", "D", "delete":
		if rec, ok := s.selected(); ok {
			return s, s.remove(rec.ID)
		}
	case "enter":
		if rec, ok := s.selected(); ok && s.practice != nil {
			return s, router.Push(s.practice(rec))
		}
	}
	return s, nil
}

func (s *Screen) remove(id string) tea.Cmd {
	svc := s.svc
	return func() tea.Msg {
		return deletedMsg{Err: svc.Delete(context.Background(), id)}
	}
}

func (s *Screen) selected() (gl.Record, bool) {
	if s.cursor < 0 || s.cursor >= len(s.visible) {
		return gl.Record{}, false
	}
	return s.visible[s.cursor], true
}

// apply recomputes the visible records and keeps the cursor in range.
func (s *Screen) apply() {
	s.visible = gl.Filter(s.records, s.filter.Value(), gradeOptions[s.grade])
	s.cursor = min(s.cursor, max(len(s.visible)-1, 0))
}

func (s *Screen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	label := lipgloss.NewStyle().Foreground(theme.TextDim)
	b.WriteString("  " + label.Render("Filter: ") + s.filter.View())
	b.WriteString("   " + label.Render("Grade: ") + theme.Selected.Render(gradeOptions[s.grade]))
	b.WriteString("\n\n")

	switch {
	case !s.loaded:
		b.WriteString(label.Render("  Loading..."))
		return b.String()
	case len(s.records) == 0:
		b.WriteString(label.Render("  No mistakes yet. Words you misspell will show up here."))
		return b.String()
	case len(s.visible) == 0:
		b.WriteString(label.Render("  No words match."))
		return b.String()
	}

	// Leave room for the filter row and the detail card.
	rows := max(height-10, 3)
	start := 0
	if s.cursor >= rows {
		start = s.cursor - rows + 1
	}
	end := min(start+rows, len(s.visible))
	for i := start; i < end; i++ {
		b.WriteString(renderRow(s.visible[i], i == s.cursor))
		b.WriteString("\n")
	}

	if rec, ok := s.selected(); ok {
		b.WriteString("\n")
		b.WriteString(renderDetail(rec, width))
	}
	if s.errMsg != "" {
		b.WriteString("\n" + theme.ErrorText.Render("  "+s.errMsg))
	}
	return b.String()
}

func renderRow(r gl.Record, selected bool) string {
	word := fmt.Sprintf("%-18s", r.Word)
	prefix := "    "
	style := theme.Unselected
	if selected {
		prefix = "  ▸ "
		style = theme.Selected
	}
	return prefix + style.Render(word) + " " +
		theme.Stars.Render(gl.Stars(r.MasteryScore)) + "  " +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(r.Grade)
}

func renderDetail(r gl.Record, width int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	body := dim.Render("You wrote: ") + theme.WordTyped.Render(orMissing(r.UserSpelling)) + "\n" +
		dim.Render("Sentence:  ") + theme.Body.Render(r.OriginalSentence) + "\n" +
		dim.Render("Missed:    ") + theme.Body.Render(r.Timestamp.Local().Format("Jan 2, 2006 15:04"))
	return theme.Card.Width(max(width-4, 20)).Render(body)
}

func orMissing(s string) string {
	if s == "" {
		return "(missing)"
	}
	return s
}
