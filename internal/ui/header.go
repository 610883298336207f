package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the status bar: logo, identity, unread badge,
// connection state.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	p := m.painter()

	var parts []string

	parts = append(parts, p.paint("vibe", styles.Logo))

	if user, _, ok := m.session.Current(); ok {
		parts = append(parts, p.paint("@"+user.Username, styles.Text))
		parts = append(parts,
			p.paint("Following:", styles.MutedText)+p.gap(1)+
				p.paint(fmt.Sprintf("%d", len(user.Following)), styles.Text),
		)
	} else {
		parts = append(parts, p.paint("logged out", styles.WarningText))
	}

	unread := m.snapshot.UnreadCount()
	unreadStyle := styles.MutedText
	if unread > 0 {
		unreadStyle = styles.AccentText.Bold(true)
	}
	parts = append(parts,
		p.paint("Unread:", styles.MutedText)+p.gap(1)+
			p.paint(fmt.Sprintf("%d", unread), unreadStyle),
	)

	parts = append(parts,
		p.paint("Posts:", styles.MutedText)+p.gap(1)+
			p.paint(fmt.Sprintf("%d", len(m.snapshot.Feed)), styles.Text),
	)

	if m.snapshot.Stale() {
		parts = append(parts, p.paint("● STALE", styles.WarningText.Bold(true)))
	}

	if ts := humanizeSince(m.lastUpdated, time.Now()); ts != "" {
		parts = append(parts, p.paint(ts, styles.MutedText))
	}

	if m.snapshot.LastError != nil {
		maxErr := 60
		if m.width < 100 {
			maxErr = 30
		}
		errText := truncate(firstLine(m.snapshot.LastError.Error()), maxErr)
		parts = append(parts,
			p.paint("ERROR", styles.DangerText)+p.gap(1)+
				p.paint(errText, styles.DangerText),
		)
	} else if m.statusLine != "" {
		style := styles.InfoText
		if m.statusIsErr {
			style = styles.DangerText
		}
		parts = append(parts, p.paint(truncate(m.statusLine, 60), style))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(p.join(parts, "  "))
}

// renderCommandBar renders the command hints bar.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()
	p := m.painter()

	type cmd struct{ key, desc string }
	var commands []cmd

	if m.snapshot.PanelOpen {
		commands = []cmd{
			{"j/k", "Navigate"},
			{"x", "Delete"},
			{"X", "Clear all"},
			{"esc", "Close"},
		}
	} else {
		switch m.currentView {
		case ViewStories:
			commands = []cmd{
				{"j/k", "Navigate"},
				{"n", "Notifications"},
				{"esc", "Feed"},
				{"?", "More"},
			}
		case ViewReels:
			commands = []cmd{
				{"j/k", "Navigate"},
				{"l", "Like"},
				{"c", "Comments"},
				{"f", "Follow"},
				{"esc", "Feed"},
				{"?", "More"},
			}
		case ViewSearch:
			commands = []cmd{
				{"enter", "Search"},
				{"esc", "Feed"},
				{"?", "More"},
			}
		default: // ViewFeed
			commands = []cmd{
				{"j/k", "Navigate"},
				{"l", "Like"},
				{"c", "Comments"},
				{"f", "Follow"},
				{"p", "Profile"},
				{"n", "Notifications"},
				{"s", "Stories"},
				{"v", "Reels"},
				{"/", "Search"},
				{"r", "Refresh"},
				{"?", "More"},
			}
		}
	}

	sep := p.gap(2)

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			p.paint(c.key, styles.AccentText)+p.paint(":", styles.MutedText)+p.paint(c.desc, styles.MutedText))
	}

	segments = append(segments,
		p.paint("T", styles.AccentText)+p.paint(":", styles.MutedText)+p.paint(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, sep))
}
