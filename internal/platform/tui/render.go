package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-doodle/internal/core"
)

// fieldBg is the beige playfield background shared by every playfield slot.
var fieldBg = lipgloss.Color("187")

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:   lipgloss.NewStyle(),
	core.ColorField:     lipgloss.NewStyle().Background(fieldBg),
	core.ColorGrid:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Background(fieldBg),
	core.ColorPlatform:  lipgloss.NewStyle().Foreground(lipgloss.Color("28")).Background(fieldBg),
	core.ColorCharacter: lipgloss.NewStyle().Foreground(lipgloss.Color("94")).Background(fieldBg).Bold(true),
	core.ColorOverlay:   lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(fieldBg).Bold(true),
	core.ColorDanger:    lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Background(fieldBg).Bold(true),
	core.ColorText:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
