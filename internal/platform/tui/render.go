package tui

import (
	"strings"

	"github.com/vovakirdan/bioblitz/internal/core"
)

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same style to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	return renderScreenWithTheme(s, CurrentTheme())
}

func renderScreenWithTheme(s *core.Screen, theme Theme) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color and highlight
		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y)

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != start.Color || cell.Reverse != start.Reverse {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style := theme.Style(start.Color)
			if start.Reverse {
				style = style.Reverse(true)
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
