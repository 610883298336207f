package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/vibesocial/vibetui/internal/vibe"
)

// renderFeed renders the post list with the selection cursor.
func (m Model) renderFeed() string {
	styles := m.theme.Styles()
	posts := m.snapshot.Feed

	if len(posts) == 0 {
		if m.snapshot.LastError != nil {
			return styles.DangerText.Render("Feed unavailable.") + "\n" +
				styles.MutedText.Render("Press r to retry.")
		}
		return styles.MutedText.Render("No posts yet. Press r to refresh.")
	}

	var me vibe.User
	if user, _, ok := m.session.Current(); ok {
		me = user
	}

	rows := m.contentHeight() / 3
	if rows < 1 {
		rows = 1
	}
	start := windowStart(m.selectedRow, len(posts), rows)

	var b strings.Builder
	for i := start; i < len(posts) && i < start+rows; i++ {
		b.WriteString(m.renderPost(posts[i], me, i == m.selectedRow))
		b.WriteString("\n")
	}
	return b.String()
}

// renderPost renders one feed entry as a three-line card.
func (m Model) renderPost(post vibe.Post, me vibe.User, selected bool) string {
	styles := m.theme.Styles()

	author := post.AuthorRef()
	name := author.Username
	if name == "" {
		name = author.ID.String()
	}

	liked := me.ID != "" && post.IsLikedBy(me.ID)
	heart := "♡"
	heartStyle := styles.MutedText
	if liked {
		heart = "♥"
		heartStyle = styles.DangerText
	}

	nameStyle := styles.AccentText.Bold(true)
	followTag := ""
	if me.ID != "" && author.ID != "" && me.IsFollowing(author.ID) {
		followTag = styles.FaintText.Render(" · following")
	}

	meta := fmt.Sprintf("%s %d · %d comments", heartStyle.Render(heart), len(post.Likes), len(post.Comments))
	if ts := humanizeSince(post.ParsedCreatedAt(), time.Now()); ts != "" {
		meta += styles.FaintText.Render(" · " + ts)
	}

	captionWidth := m.width - 4
	if captionWidth < 20 {
		captionWidth = 20
	}
	caption := truncate(firstLine(post.Caption), captionWidth)
	if caption == "" {
		caption = styles.FaintText.Render("(no caption)")
	} else {
		caption = styles.Text.Render(caption)
	}

	cursor := "  "
	if selected {
		cursor = styles.AccentText.Render("> ")
	}

	media := ""
	switch {
	case post.Video != "":
		media = styles.InfoText.Render(" [video]")
	case post.Image != "":
		media = styles.InfoText.Render(" [image]")
	}

	line1 := cursor + nameStyle.Render("@"+name) + followTag + media
	line2 := "  " + caption
	line3 := "  " + styles.MutedText.Render(meta)
	return line1 + "\n" + line2 + "\n" + line3
}

// renderStories renders the story strip as a vertical list.
func (m Model) renderStories() string {
	styles := m.theme.Styles()
	stories := m.snapshot.Stories

	if len(stories) == 0 {
		return styles.MutedText.Render("No active stories.")
	}

	var b strings.Builder
	for i, story := range stories {
		cursor := "  "
		if i == m.selectedStory {
			cursor = styles.AccentText.Render("> ")
		}
		name := story.Author.Username
		if name == "" {
			name = story.Author.ID.String()
		}
		line := cursor + styles.AccentText.Render("@"+name)
		switch {
		case story.Video != "":
			line += styles.InfoText.Render(" [video]")
		case story.Image != "":
			line += styles.InfoText.Render(" [image]")
		}
		if ts := humanizeSince(story.ParsedCreatedAt(), time.Now()); ts != "" {
			line += styles.FaintText.Render(" · " + ts)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// contentHeight is the rows available below the two header lines.
func (m Model) contentHeight() int {
	h := m.height - 2
	if h < 1 {
		return 1
	}
	return h
}

// windowStart picks the first visible row so the selection stays in view.
func windowStart(selected, total, visible int) int {
	if total <= visible {
		return 0
	}
	start := selected - visible/2
	if start < 0 {
		return 0
	}
	if start > total-visible {
		return total - visible
	}
	return start
}
