// Package practice is the dictation screen: it plays a sentence, takes
// the learner's attempt and shows the word-by-word result.
package practice

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/spellbound/internal/glossary"
	pr "github.com/abhisek/spellbound/internal/practice"
	"github.com/abhisek/spellbound/internal/router"
	"github.com/abhisek/spellbound/internal/screen"
	"github.com/abhisek/spellbound/internal/speech"
	"github.com/abhisek/spellbound/internal/ui/components"
	"github.com/abhisek/spellbound/internal/ui/layout"
)

const spinnerInterval = 120 * time.Millisecond

// Player plays a round's audio.
type Player interface {
	Play(ctx context.Context, a *speech.Audio) error
}

// Start begins the first round on a controller.
type Start func(ctx context.Context, c *pr.Controller) (*pr.Round, error)

// WithGrade starts an untargeted round at grade.
func WithGrade(grade string) Start {
	return func(ctx context.Context, c *pr.Controller) (*pr.Round, error) {
		return c.SelectGrade(ctx, grade)
	}
}

// WithWord starts a round built around a glossary entry.
func WithWord(rec glossary.Record) Start {
	return func(ctx context.Context, c *pr.Controller) (*pr.Round, error) {
		return c.PracticeWord(ctx, rec)
	}
}

type phase int

const (
	phaseLoading phase = iota
	phaseAnswering
	phaseChecking
	phaseFeedback
	phaseError
)

// Screen runs practice rounds for one learner.
type Screen struct {
	ctrl     *pr.Controller
	player   Player
	glossary func() screen.Screen
	start    Start

	phase    phase
	grade    string
	round    *pr.Round
	outcome  *pr.Outcome
	input    components.TextInput
	spinner  int
	playing  bool
	notice   string
	errMsg   string
	showHint bool
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.GradeProvider = (*Screen)(nil)

// New creates a practice screen. glossary builds the glossary screen
// reachable from feedback; it may be nil.
func New(ctrl *pr.Controller, player Player, start Start, glossary func() screen.Screen) *Screen {
	return &Screen{
		ctrl:     ctrl,
		player:   player,
		start:    start,
		glossary: glossary,
		input:    newInput(),
	}
}

func newInput() components.TextInput {
	return components.NewTextInput("Type the sentence you hear...", 300)
}

func (s *Screen) Init() tea.Cmd {
	s.phase = phaseLoading
	start := s.start
	ctrl := s.ctrl
	return tea.Batch(func() tea.Msg {
		r, err := start(context.Background(), ctrl)
		return roundReadyMsg{Round: r, Err: err}
	}, spinnerTick())
}

func (s *Screen) Title() string {
	return "Practice"
}

// Grade returns the grade of the current round.
func (s *Screen) Grade() string {
	return s.grade
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseAnswering:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Check"},
			{Key: "Ctrl+P", Description: "Play again"},
			{Key: "Ctrl+H", Description: "Hint"},
			{Key: "Ctrl+S", Description: "Skip"},
			{Key: "Esc", Description: "Grades"},
		}
	case phaseFeedback:
		hints := []layout.KeyHint{
			{Key: "Enter", Description: "Next sentence"},
			{Key: "G", Description: "Switch grade"},
		}
		if s.glossary != nil {
			hints = append(hints, layout.KeyHint{Key: "W", Description: "Glossary"})
		}
		return hints
	case phaseError:
		return []layout.KeyHint{{Key: "any key", Description: "Back to grades"}}
	}
	return nil
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case roundReadyMsg:
		return s.handleRound(msg)
	case checkedMsg:
		return s.handleChecked(msg)
	case playedMsg:
		s.playing = false
		if msg.Err != nil {
			s.notice = playbackNotice(msg.Err)
		}
		return s, nil
	case spinnerTickMsg:
		if s.phase != phaseLoading && s.phase != phaseChecking {
			return s, nil
		}
		s.spinner++
		return s, spinnerTick()
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.phase == phaseAnswering {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Screen) handleRound(msg roundReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.phase = phaseError
		s.errMsg = pr.GenericErrorMessage
		s.grade = ""
		return s, nil
	}
	s.round = msg.Round
	s.grade = msg.Round.Grade
	s.outcome = nil
	s.notice = ""
	s.showHint = false
	s.phase = phaseAnswering
	s.input = newInput()
	return s, tea.Batch(s.input.Init(), s.play())
}

func (s *Screen) handleChecked(msg checkedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		// Nothing was graded; let the learner try again.
		s.phase = phaseAnswering
		if !errors.Is(msg.Err, pr.ErrEmptyAttempt) {
			s.notice = pr.GenericErrorMessage
		}
		return s, nil
	}
	s.outcome = msg.Outcome
	s.input.Submit(msg.Outcome.Result.Correct)
	s.phase = phaseFeedback
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.phase {
	case phaseError:
		s.ctrl.SwitchGrade()
		return s, router.Pop()

	case phaseAnswering:
		switch key {
		case "enter":
			return s.check()
		case "ctrl+p":
			return s, s.play()
		case "ctrl+h":
			s.showHint = !s.showHint
			return s, nil
		case "ctrl+s":
			return s, s.next(s.ctrl.Skip)
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd

	case phaseFeedback:
		switch key {
		case "enter":
			return s, s.next(s.ctrl.Continue)
		case "g", "G":
			s.ctrl.SwitchGrade()
			return s, router.Pop()
		case "w", "W":
			if s.glossary != nil {
				return s, router.Push(s.glossary())
			}
		case "ctrl+p":
			return s, s.play()
		}
	}
	return s, nil
}

func (s *Screen) check() (screen.Screen, tea.Cmd) {
	attempt := s.input.Value()
	if strings.TrimSpace(attempt) == "" {
		return s, nil
	}
	s.phase = phaseChecking
	ctrl := s.ctrl
	return s, tea.Batch(func() tea.Msg {
		out, err := ctrl.Check(context.Background(), attempt)
		return checkedMsg{Outcome: out, Err: err}
	}, spinnerTick())
}

func (s *Screen) next(advance func(context.Context) (*pr.Round, error)) tea.Cmd {
	s.phase = phaseLoading
	s.spinner = 0
	return tea.Batch(func() tea.Msg {
		r, err := advance(context.Background())
		return roundReadyMsg{Round: r, Err: err}
	}, spinnerTick())
}

func (s *Screen) play() tea.Cmd {
	if s.player == nil || s.round == nil || s.round.Audio == nil || s.playing {
		return nil
	}
	s.playing = true
	s.notice = ""
	player, audio := s.player, s.round.Audio
	return func() tea.Msg {
		return playedMsg{Err: player.Play(context.Background(), audio)}
	}
}

func playbackNotice(err error) string {
	if errors.Is(err, speech.ErrNoPlayer) {
		return "No audio player found. Set speech.player in your config."
	}
	return "Could not play the audio."
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
