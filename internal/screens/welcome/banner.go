package welcome

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/spellbound/internal/ui/theme"
)

// appName is spelled out one letter per tick.
const appName = "SPELLBOUND"

// RenderBanner returns the first n letters of the name as spaced tiles,
// with blanks for the letters still to come. Narrow terminals get the
// letters without tiles.
func RenderBanner(width, n int) string {
	n = min(max(n, 0), len(appName))
	shown := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	pending := lipgloss.NewStyle().Foreground(theme.Border)

	if width < 52 {
		var b strings.Builder
		for i, r := range appName {
			if i > 0 {
				b.WriteString(" ")
			}
			if i < n {
				b.WriteString(shown.Render(string(r)))
			} else {
				b.WriteString(pending.Render("_"))
			}
		}
		return b.String()
	}

	tile := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	tiles := make([]string, 0, len(appName))
	for i, r := range appName {
		if i < n {
			tiles = append(tiles, tile.BorderForeground(theme.Primary).Render(shown.Render(string(r))))
		} else {
			tiles = append(tiles, tile.BorderForeground(theme.Border).Render(pending.Render(" ")))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
}
