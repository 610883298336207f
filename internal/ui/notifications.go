package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderNotificationsPanel renders the notification overlay. While it is
// visible background polling is paused and everything has been marked read.
func (m Model) renderNotificationsPanel() string {
	styles := m.theme.Styles()
	items := m.snapshot.Notifications

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Notifications"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 40)))
	b.WriteString("\n")

	if len(items) == 0 {
		b.WriteString(styles.MutedText.Render("Nothing here yet."))
	}

	for i, n := range items {
		cursor := "  "
		if i == m.notifSelected {
			cursor = styles.AccentText.Render("> ")
		}
		badge := styles.KindStyle(n.Kind).Render(n.Kind)
		line := cursor + badge + " " + styles.Text.Render(n.Message())
		if ts := humanizeSince(n.ParsedCreatedAt(), time.Now()); ts != "" {
			line += styles.FaintText.Render(" · " + ts)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("x delete · X clear all · esc close"))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(1, 2).
		Width(min(64, max(40, m.width-10)))

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
