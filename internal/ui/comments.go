package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderComments renders the comment-thread overlay for the selected post
// or reel.
func (m Model) renderComments() string {
	styles := m.theme.Styles()

	title := "Comments"
	if m.commentsReel {
		title = "Reel comments"
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(title))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 40)))
	b.WriteString("\n")

	if len(m.comments) == 0 {
		b.WriteString(styles.MutedText.Render("No comments yet."))
		b.WriteString("\n")
	}

	for _, c := range m.comments {
		name := c.User.Username
		if name == "" {
			name = c.User.ID.String()
		}
		line := styles.AccentText.Render("@"+name) + " " +
			styles.Text.Render(truncate(firstLine(c.Text), 48))
		if ts := humanizeSince(c.ParsedCreatedAt(), time.Now()); ts != "" {
			line += styles.FaintText.Render(" · " + ts)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.commentInput.Focused() {
		b.WriteString(m.commentInput.View())
	} else {
		b.WriteString(styles.MutedText.Render("a comment · esc close"))
	}
	if m.statusIsErr && m.statusLine != "" {
		b.WriteString("\n")
		b.WriteString(styles.DangerText.Render(truncate(m.statusLine, 50)))
	}

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
