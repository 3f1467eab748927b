package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/spellbound/internal/ui/theme"
)

// ProgressBar displays a labelled horizontal bar, used for accuracy.
type ProgressBar struct {
	Label      string
	LabelWidth int // pads Label so bars line up; 0 uses the label's width
	Percent    float64
	Detail     string // shown after the bar, e.g. "7/10"
	Width      int
}

// NewProgressBar creates a new progress bar. percent is clamped to [0,1].
func NewProgressBar(label string, percent float64, detail string, width int) ProgressBar {
	return ProgressBar{
		Label:   label,
		Percent: min(max(percent, 0), 1),
		Detail:  detail,
		Width:   width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if p.LabelWidth > 0 {
			style = style.Width(p.LabelWidth)
		}
		result += style.Render(p.Label) + "  "
	}

	suffix := fmt.Sprintf("  %3d%%", int(p.Percent*100+0.5))
	if p.Detail != "" {
		suffix += "  " + p.Detail
	}

	barWidth := p.Width - lipgloss.Width(result) - lipgloss.Width(suffix)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := min(max(int(float64(barWidth)*p.Percent), 0), barWidth)

	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled))

	return result + lipgloss.NewStyle().Foreground(theme.TextDim).Render(suffix)
}
