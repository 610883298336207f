package app

import (
	"context"
	"sync"

	"github.com/samber/lo"

	"github.com/vibesocial/vibetui/internal/identity"
	"github.com/vibesocial/vibetui/internal/optimistic"
	"github.com/vibesocial/vibetui/internal/session"
	"github.com/vibesocial/vibetui/internal/state"
	"github.com/vibesocial/vibetui/internal/vibe"
)

// Service bundles the collaborators user actions need. All session
// mutations funnel through the session store and all feed/notification
// mutations through the state store, so no call site keeps a divergent
// copy.
type Service struct {
	API      vibe.API
	Session  *session.Store
	Store    *state.Store
	Uploader MediaUploader // optional; publish actions fail without it
}

// ToggleFollow flips the follow edge toward targetID: the local following
// list updates before the request is sent, reverts exactly on failure, and
// on success the full profile is refetched as belt-and-suspenders
// reconciliation. The returned channel delivers the final outcome.
func (s *Service) ToggleFollow(ctx context.Context, targetID string) <-chan error {
	out := make(chan error, 1)

	user, err := s.Session.Require()
	if err != nil {
		out <- err
		return out
	}
	canonical := identity.Canonical(targetID)

	done := optimistic.Run(ctx, optimistic.Toggle{
		Current: user.IsFollowing(canonical),
		Apply: func(next bool) {
			action := session.ActionUnfollow
			if next {
				action = session.ActionFollow
			}
			s.Session.UpdateFollowing(canonical, action)
		},
		Set:   func(ctx context.Context) error { return s.API.Follow(ctx, canonical) },
		Unset: func(ctx context.Context) error { return s.API.Unfollow(ctx, canonical) },
	})

	go func() {
		err := <-done
		if err == nil {
			if fresh, ferr := s.API.FetchProfile(ctx); ferr == nil {
				s.Session.Replace(fresh)
			}
		}
		out <- err
	}()
	return out
}

// ToggleLike flips the current identity's like on postID. The feed entry
// updates before the request is sent; on failure the like is reverted and
// the whole feed refetched, since the reverted entry might itself be stale.
func (s *Service) ToggleLike(ctx context.Context, postID string) <-chan error {
	out := make(chan error, 1)

	user, err := s.Session.Require()
	if err != nil {
		out <- err
		return out
	}
	canonicalPost := identity.Canonical(postID)
	userID := user.ID.String()

	liked := false
	for _, post := range s.Store.Snapshot().Feed {
		if identity.Canonical(post.ID) == canonicalPost {
			liked = post.IsLikedBy(userID)
			break
		}
	}

	done := optimistic.Run(ctx, optimistic.Toggle{
		Current: liked,
		Apply: func(next bool) {
			s.Store.ApplyLike(canonicalPost, userID, next)
		},
		Set:     func(ctx context.Context) error { return s.API.Like(ctx, canonicalPost) },
		Unset:   func(ctx context.Context) error { return s.API.Unlike(ctx, canonicalPost) },
		Recover: s.RefreshFeed,
	})

	go func() { out <- <-done }()
	return out
}

// RefreshFeed replaces the stored feed with the server's current posts.
func (s *Service) RefreshFeed(ctx context.Context) error {
	posts, err := s.API.FetchPosts(ctx)
	if err != nil {
		return err
	}
	s.Store.SetFeed(posts)
	return nil
}

// RefreshStories replaces the stored story list.
func (s *Service) RefreshStories(ctx context.Context) error {
	stories, err := s.API.FetchStories(ctx)
	if err != nil {
		return err
	}
	s.Store.SetStories(stories)
	return nil
}

// OpenNotificationsPanel marks the panel open (suppressing background
// polls), optimistically pre-marks everything read locally, issues one
// concurrent mark-read call per unread item, then refetches the list so
// the panel shows server truth.
func (s *Service) OpenNotificationsPanel(ctx context.Context) error {
	s.Store.SetPanelOpen(true)

	unread := lo.Filter(s.Store.Snapshot().Notifications, func(n vibe.Notification, _ int) bool {
		return !n.Read
	})
	s.Store.MarkAllNotificationsRead()

	var wg sync.WaitGroup
	errs := make([]error, len(unread))
	for i, n := range unread {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			errs[i] = s.API.MarkNotificationRead(ctx, id)
		}(i, n.ID.String())
	}
	wg.Wait()

	items, err := s.API.FetchNotifications(ctx)
	s.Store.SetNotifications(items, err)

	for _, markErr := range errs {
		if markErr != nil {
			return markErr
		}
	}
	return err
}

// CloseNotificationsPanel re-enables background polling.
func (s *Service) CloseNotificationsPanel() {
	s.Store.SetPanelOpen(false)
}

// RemoveNotification deletes one notification and refetches the list.
func (s *Service) RemoveNotification(ctx context.Context, notificationID string) error {
	if err := s.API.DeleteNotification(ctx, notificationID); err != nil {
		return err
	}
	items, err := s.API.FetchNotifications(ctx)
	s.Store.SetNotifications(items, err)
	return err
}

// ClearNotifications deletes every notification concurrently, then
// refetches the list.
func (s *Service) ClearNotifications(ctx context.Context) error {
	current := s.Store.Snapshot().Notifications

	var wg sync.WaitGroup
	errs := make([]error, len(current))
	for i, n := range current {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			errs[i] = s.API.DeleteNotification(ctx, id)
		}(i, n.ID.String())
	}
	wg.Wait()

	items, err := s.API.FetchNotifications(ctx)
	s.Store.SetNotifications(items, err)

	for _, delErr := range errs {
		if delErr != nil {
			return delErr
		}
	}
	return err
}

// Login authenticates against the backend and persists the session.
func (s *Service) Login(ctx context.Context, email, password string) error {
	user, token, err := s.API.Login(ctx, vibe.LoginRequest{Email: email, Password: password})
	if err != nil {
		return err
	}
	s.Session.Login(user, token)
	return nil
}

// Register creates the account, then signs straight in with the same
// credentials so the session is ready for the interactive surface.
func (s *Service) Register(ctx context.Context, req vibe.RegisterRequest) error {
	if _, err := s.API.Register(ctx, req); err != nil {
		return err
	}
	return s.Login(ctx, req.Email, req.Password)
}

// UpdateProfile edits the authenticated profile and swaps the session copy
// for the record the server returns.
func (s *Service) UpdateProfile(ctx context.Context, req vibe.EditProfileRequest) error {
	if _, err := s.Session.Require(); err != nil {
		return err
	}
	updated, err := s.API.EditProfile(ctx, req)
	if err != nil {
		return err
	}
	s.Session.Replace(updated)
	return nil
}

// UserProfile fetches another user's record for the profile overlay.
func (s *Service) UserProfile(ctx context.Context, userID string) (vibe.User, error) {
	return s.API.FetchUserProfile(ctx, userID)
}

// Logout clears the session and all cached server data.
func (s *Service) Logout() {
	s.Session.Logout()
	s.Store.SetFeed(nil)
	s.Store.SetStories(nil)
	s.Store.SetNotifications(nil, nil)
}
