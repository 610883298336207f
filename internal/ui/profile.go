package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderProfile renders the author-profile overlay. The follow marker reads
// the live session, so an optimistic toggle shows up immediately.
func (m Model) renderProfile() string {
	styles := m.theme.Styles()
	u := m.profileUser

	name := u.Username
	if name == "" {
		name = u.ID.String()
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("@" + name))
	if user, _, ok := m.session.Current(); ok && user.IsFollowing(u.ID) {
		b.WriteString(styles.SuccessText.Render("  following"))
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 40)))
	b.WriteString("\n")

	if u.Bio != "" {
		b.WriteString(styles.Text.Render(truncate(u.Bio, 120)))
		b.WriteString("\n\n")
	}

	b.WriteString(styles.MutedText.Render(
		fmt.Sprintf("%d followers · %d following", len(u.Followers), len(u.Following))))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("f follow/unfollow · esc close"))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(1, 2).
		Width(min(56, max(40, m.width-10)))

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
