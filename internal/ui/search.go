package ui

import (
	"fmt"
	"strings"
)

// renderSearch renders the query input plus any results.
func (m Model) renderSearch() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Search"))
	b.WriteString("\n")
	b.WriteString(m.searchInput.View())
	b.WriteString("\n\n")

	if m.searching {
		b.WriteString(m.searchSpinner.View())
		b.WriteString(styles.MutedText.Render(" Searching..."))
		return b.String()
	}

	if !m.searchDone {
		b.WriteString(styles.MutedText.Render("Type a query and press enter."))
		return b.String()
	}

	if len(m.searchResult.Users) == 0 && len(m.searchResult.Posts) == 0 {
		b.WriteString(styles.MutedText.Render("No matches."))
		return b.String()
	}

	if len(m.searchResult.Users) > 0 {
		b.WriteString(styles.AccentText.Bold(true).Render("Users"))
		b.WriteString("\n")
		for _, user := range m.searchResult.Users {
			line := "  " + styles.Text.Render("@"+user.Username)
			if bio := truncate(firstLine(user.Bio), 50); bio != "" {
				line += styles.MutedText.Render("  " + bio)
			}
			line += styles.FaintText.Render(fmt.Sprintf("  (%d followers)", len(user.Followers)))
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(m.searchResult.Posts) > 0 {
		b.WriteString(styles.AccentText.Bold(true).Render("Posts"))
		b.WriteString("\n")
		for _, post := range m.searchResult.Posts {
			author := post.AuthorRef()
			name := author.Username
			if name == "" {
				name = author.ID.String()
			}
			caption := truncate(firstLine(post.Caption), 60)
			b.WriteString("  " + styles.Text.Render("@"+name) +
				styles.MutedText.Render("  "+caption))
			b.WriteString("\n")
		}
	}

	return b.String()
}
