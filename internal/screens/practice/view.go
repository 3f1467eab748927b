package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/spellbound/internal/glossary"
	"github.com/abhisek/spellbound/internal/grading"
	"github.com/abhisek/spellbound/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func (s *Screen) View(width, height int) string {
	switch s.phase {
	case phaseError:
		return renderError(width, s.errMsg)
	case phaseLoading:
		return s.renderSpinner(width, "Writing a new sentence...")
	case phaseChecking:
		return s.renderSpinner(width, "Checking...")
	case phaseFeedback:
		return s.renderFeedback(width)
	}
	return s.renderAnswering(width)
}

func centered(width int) lipgloss.Style {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
}

func (s *Screen) renderSpinner(width int, label string) string {
	frame := spinnerFrames[s.spinner%len(spinnerFrames)]
	return centered(width).
		Foreground(theme.TextDim).
		Render("\n\n\n" + lipgloss.NewStyle().Foreground(theme.Primary).Render(frame) + "  " + label)
}

func (s *Screen) renderAnswering(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	listen := "Listen carefully and type the sentence."
	if s.playing {
		listen = "♪ Playing..."
	}
	b.WriteString(centered(width).Foreground(theme.Text).Bold(true).Render(listen))
	b.WriteString("\n")

	if s.round != nil && s.round.TargetWord != "" {
		b.WriteString(centered(width).Foreground(theme.Accent).Render("Review round"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if s.showHint && s.round != nil {
		b.WriteString(centered(width).Inherit(theme.Hint).Render("Hint: " + s.round.Sentence.Hint))
		b.WriteString("\n\n")
	}

	b.WriteString(centered(width).Render(s.input.View()))
	b.WriteString("\n")

	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(centered(width).Inherit(theme.ErrorText).Render(s.notice))
	}
	return b.String()
}

func (s *Screen) renderFeedback(width int) string {
	out := s.outcome
	var b strings.Builder
	b.WriteString("\n")

	if out.Result.Correct {
		b.WriteString(centered(width).Inherit(theme.Correct).Render("Perfect! ✓"))
	} else {
		b.WriteString(centered(width).Inherit(theme.Incorrect).Render("Not quite ✗"))
	}
	b.WriteString("\n\n")

	b.WriteString(centered(width).Foreground(theme.TextDim).Render("The sentence was:"))
	b.WriteString("\n")
	b.WriteString(centered(width).Render(renderDiff(out.Result.Diff)))
	b.WriteString("\n")

	if !out.Result.Correct {
		b.WriteString("\n")
		b.WriteString(centered(width).Foreground(theme.TextDim).Render("You typed:"))
		b.WriteString("\n")
		b.WriteString(centered(width).Foreground(theme.Text).Render(out.Attempt))
		b.WriteString("\n")
		for _, d := range grading.IncorrectWords(out.Result.Diff) {
			typed := d.UserAttempt
			if typed == "" {
				typed = "(missing)"
			}
			b.WriteString(centered(width).Render(
				theme.WordWrong.Render(grading.CleanWord(d.Part)) + "  " + theme.WordTyped.Render(typed)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	switch {
	case out.MasteryRemoved:
		b.WriteString(centered(width).Foreground(theme.Accent).Bold(true).
			Render("Word mastered! It has left your glossary."))
		b.WriteString("\n")
	case out.Target != nil:
		b.WriteString(centered(width).Render(
			fmt.Sprintf("%s  %s", out.Target.Word, theme.Stars.Render(glossary.Stars(out.Target.MasteryScore)))))
		b.WriteString("\n")
	case out.NewMistakes > 0:
		noun := "words"
		if out.NewMistakes == 1 {
			noun = "word"
		}
		b.WriteString(centered(width).Foreground(theme.TextDim).
			Render(fmt.Sprintf("%d new %s added to your glossary.", out.NewMistakes, noun)))
		b.WriteString("\n")
	}

	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(centered(width).Inherit(theme.ErrorText).Render(s.notice))
	}
	return b.String()
}

// renderDiff colors each expected word by whether it was typed correctly.
func renderDiff(diff []grading.WordDiff) string {
	parts := make([]string, len(diff))
	for i, d := range diff {
		if d.Correct {
			parts[i] = theme.WordRight.Render(d.Part)
		} else {
			parts[i] = theme.WordWrong.Render(d.Part)
		}
	}
	return strings.Join(parts, " ")
}

func renderError(width int, msg string) string {
	return centered(width).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n%s\n\nPress any key to go back.", msg))
}
