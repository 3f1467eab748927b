package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/spellbound/internal/ui/theme"
)

const titleFull = `╔═╗┌─┐┌─┐┬  ┬  ╔╗ ┌─┐┬ ┬┌┐┌┌┬┐
╚═╗├─┘├┤ │  │  ╠╩╗│ ││ ││││ ││
╚═╝┴  └─┘┴─┘┴─┘╚═╝└─┘└─┘┘└┘─┴┘`

const titleCompact = "S · P · E · L · L · B · O · U · N · D"

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	// Leave room for frame border (2) + inner padding (4)
	return min(max(frameWidth-6, 20), 60)
}

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true)

	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// renderStatsBar shows glossary size, near-mastered words and accuracy.
func renderStatsBar(d dashboardMsg, cw int, compact bool) string {
	wordStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	nearStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	accStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	acc := dimStyle.Render("no attempts yet")
	if d.total > 0 {
		acc = accStyle.Render(fmt.Sprintf("%d%% accuracy", d.accuracy))
	}

	var line string
	if compact {
		line = fmt.Sprintf("%s %s %s",
			wordStyle.Render(fmt.Sprintf("✎%d", d.words)),
			nearStyle.Render(fmt.Sprintf("★%d", d.mastered)),
			acc,
		)
	} else {
		line = fmt.Sprintf("%s  %s  %s",
			wordStyle.Render(fmt.Sprintf("✎ %d TO REVIEW", d.words)),
			nearStyle.Render(fmt.Sprintf("★ %d ALMOST", d.mastered)),
			acc,
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(items []string, selected int, cw int) string {
	selectedBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Accent).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Accent).
		Padding(0, 1)

	normalBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	buttons := make([]string, len(items))
	for i, label := range items {
		if i == selected {
			buttons[i] = selectedBtn.Render("▸ " + label)
		} else {
			buttons[i] = normalBtn.Render(label)
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderMenuCompact renders menu items as plain lines for small terminals
// where bordered buttons would overflow.
func renderMenuCompact(items []string, selected int, cw int) string {
	lines := make([]string, len(items))
	for i, label := range items {
		if i == selected {
			lines[i] = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Accent).
				Bold(true).
				Render(" ▸ " + label + " ")
		} else {
			lines[i] = lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   " + label)
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}

// renderFrame wraps content in a double-border frame, centered within
// the given dimensions.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).   // account for border chars
		Height(height - 2). // account for border chars
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
