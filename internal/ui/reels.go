package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/vibesocial/vibetui/internal/vibe"
)

// renderReels renders the reel list with the selection cursor.
func (m Model) renderReels() string {
	styles := m.theme.Styles()
	reels := m.snapshot.Reels

	if len(reels) == 0 {
		return styles.MutedText.Render("No reels yet. Press r to refresh.")
	}

	var me vibe.User
	if user, _, ok := m.session.Current(); ok {
		me = user
	}

	rows := m.contentHeight() / 3
	if rows < 1 {
		rows = 1
	}
	start := windowStart(m.selectedReel, len(reels), rows)

	var b strings.Builder
	for i := start; i < len(reels) && i < start+rows; i++ {
		b.WriteString(m.renderReel(reels[i], me, i == m.selectedReel))
		b.WriteString("\n")
	}
	return b.String()
}

// renderReel renders one reel as a three-line card.
func (m Model) renderReel(reel vibe.Reel, me vibe.User, selected bool) string {
	styles := m.theme.Styles()

	name := reel.Author.Username
	if name == "" {
		name = reel.Author.ID.String()
	}

	liked := me.ID != "" && reel.IsLikedBy(me.ID)
	heart := "♡"
	heartStyle := styles.MutedText
	if liked {
		heart = "♥"
		heartStyle = styles.DangerText
	}

	followTag := ""
	if me.ID != "" && reel.Author.ID != "" && me.IsFollowing(reel.Author.ID) {
		followTag = styles.FaintText.Render(" · following")
	}

	meta := fmt.Sprintf("%s %d", heartStyle.Render(heart), len(reel.Likes))
	if ts := humanizeSince(reel.ParsedCreatedAt(), time.Now()); ts != "" {
		meta += styles.FaintText.Render(" · " + ts)
	}

	captionWidth := m.width - 4
	if captionWidth < 20 {
		captionWidth = 20
	}
	caption := truncate(firstLine(reel.Caption), captionWidth)
	if caption == "" {
		caption = styles.FaintText.Render("(no caption)")
	} else {
		caption = styles.Text.Render(caption)
	}

	cursor := "  "
	if selected {
		cursor = styles.AccentText.Render("> ")
	}

	line1 := cursor + styles.AccentText.Bold(true).Render("@"+name) + followTag + styles.InfoText.Render(" [video]")
	line2 := "  " + caption
	line3 := "  " + styles.MutedText.Render(meta)
	return line1 + "\n" + line2 + "\n" + line3
}
