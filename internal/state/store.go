package state

import (
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/vibesocial/vibetui/internal/identity"
	"github.com/vibesocial/vibetui/internal/vibe"
)

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Feed                []vibe.Post
	Stories             []vibe.Story
	Reels               []vibe.Reel
	Notifications       []vibe.Notification
	PanelOpen           bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// Stale reports whether displayed data should carry a staleness indicator
// because polling has been failing.
func (s Snapshot) Stale() bool {
	return s.ConsecutiveFailures >= 2
}

// UnreadCount returns the number of unread notifications.
func (s Snapshot) UnreadCount() int {
	return lo.CountBy(s.Notifications, func(n vibe.Notification) bool { return !n.Read })
}

// Store coordinates concurrent updates between the poller, the optimistic
// mutation call sites, and the UI.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// SetFeed replaces the feed posts.
func (s *Store) SetFeed(posts []vibe.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Feed = clonePosts(posts)
	s.snapshot.LastUpdated = time.Now()
}

// SetStories replaces the story list.
func (s *Store) SetStories(stories []vibe.Story) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Stories = append([]vibe.Story(nil), stories...)
}

// SetReels replaces the reel list.
func (s *Store) SetReels(reels []vibe.Reel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Reels = append([]vibe.Reel(nil), reels...)
}

// SetNotifications records a poll result. A failed fetch clears the list to
// empty rather than preserving stale entries, so out-of-date badges never
// linger; the error and failure streak stay visible for the UI.
func (s *Store) SetNotifications(items []vibe.Notification, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.Notifications = nil
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}
	s.snapshot.Notifications = append([]vibe.Notification(nil), items...)
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// SetPanelOpen flips the notification-panel flag. While the panel is open
// the poller suppresses refreshes so the visible list does not shift.
func (s *Store) SetPanelOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.PanelOpen = open
}

// PanelOpen reports the current panel flag.
func (s *Store) PanelOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.PanelOpen
}

// MarkAllNotificationsRead pre-marks every notification read locally. The
// matching remote calls are the caller's responsibility.
func (s *Store) MarkAllNotificationsRead() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.snapshot.Notifications {
		s.snapshot.Notifications[i].Read = true
	}
}

// ApplyLike adds or removes userID in postID's like list, with canonical
// comparison and without introducing duplicates. It is the local half of
// the optimistic like toggle.
func (s *Store) ApplyLike(postID string, userID any, on bool) {
	target := identity.Canonical(postID)
	canonical := identity.Canonical(userID)
	if target == "" || canonical == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.snapshot.Feed {
		post := &s.snapshot.Feed[i]
		if identity.Canonical(post.ID) != target {
			continue
		}
		if on {
			if !identity.Contains(post.Likes, canonical) {
				post.Likes = append(post.Likes, identity.ID(canonical))
			}
		} else {
			post.Likes = lo.Filter(post.Likes, func(id identity.ID, _ int) bool {
				return string(id) != canonical
			})
		}
		return
	}
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Feed = clonePosts(s.snapshot.Feed)
	snap.Stories = append([]vibe.Story(nil), s.snapshot.Stories...)
	snap.Reels = append([]vibe.Reel(nil), s.snapshot.Reels...)
	snap.Notifications = append([]vibe.Notification(nil), s.snapshot.Notifications...)
	return snap
}

func clonePosts(posts []vibe.Post) []vibe.Post {
	if len(posts) == 0 {
		return nil
	}
	dup := make([]vibe.Post, len(posts))
	copy(dup, posts)
	for i := range dup {
		dup[i].Likes = append([]identity.ID(nil), posts[i].Likes...)
	}
	return dup
}
