package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// barPainter renders the header and command-bar segments onto the theme's
// surface color. lipgloss emits an ANSI reset after each styled segment, so
// a plain space between two segments shows the terminal default instead of
// the surface; the painter routes every space through a styled render.
// See https://github.com/charmbracelet/lipgloss/discussions/78.
type barPainter struct {
	surface lipgloss.Color
	space   string
}

// painter builds a barPainter for the current theme.
func (m Model) painter() barPainter {
	surface := lipgloss.Color(m.theme.Surface)
	return barPainter{
		surface: surface,
		space:   lipgloss.NewStyle().Background(surface).Render(" "),
	}
}

// paint renders text in the given style with the surface behind every
// character, interior spaces included.
func (p barPainter) paint(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	styled := style.Background(p.surface)
	if !strings.Contains(text, " ") {
		return styled.Render(text)
	}
	words := strings.Split(text, " ")
	out := make([]string, len(words))
	for i, w := range words {
		if w == "" {
			continue // empty slots keep runs of spaces intact through the join
		}
		out[i] = styled.Render(w)
	}
	return strings.Join(out, p.space)
}

// gap returns n painted spaces.
func (p barPainter) gap(n int) string {
	if n == 1 {
		return p.space
	}
	return lipgloss.NewStyle().Background(p.surface).Render(strings.Repeat(" ", n))
}

// join glues segments with a painted separator.
func (p barPainter) join(parts []string, sep string) string {
	return strings.Join(parts, lipgloss.NewStyle().Background(p.surface).Render(sep))
}
