package ui

import (
	"testing"

	"github.com/vibesocial/vibetui/internal/vibe"
)

func TestGetTheme_UnknownFallsBackToDracula(t *testing.T) {
	th := GetTheme("NoSuchTheme")
	if th.Name != "Dracula" {
		t.Fatalf("GetTheme(unknown) = %q, want Dracula", th.Name)
	}
}

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 2 {
		t.Fatalf("ThemeNames() returned %d names, want 2", len(names))
	}
	if names[0] != "Dracula" || names[1] != "Slate" {
		t.Fatalf("ThemeNames() = %v, want [Dracula Slate]", names)
	}
}

func TestNextTheme(t *testing.T) {
	if got := NextTheme("Dracula"); got != "Slate" {
		t.Fatalf("NextTheme(Dracula) = %q, want Slate", got)
	}
	if got := NextTheme("Slate"); got != "Dracula" {
		t.Fatalf("NextTheme(Slate) = %q, want Dracula", got)
	}
	if got := NextTheme("bogus"); got != "Dracula" {
		t.Fatalf("NextTheme(bogus) = %q, want Dracula", got)
	}
}

func TestKindColorsCoverAllKinds(t *testing.T) {
	kinds := []string{
		vibe.NotificationFollow,
		vibe.NotificationLike,
		vibe.NotificationComment,
		vibe.NotificationPost,
	}
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, kind := range kinds {
			if th.KindColors[kind] == "" {
				t.Fatalf("theme %s missing color for kind %q", name, kind)
			}
		}
	}
}
