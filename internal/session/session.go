// Package session holds the authenticated identity for the running app and
// persists it across restarts at ~/.config/vibetui/session.toml.
//
// The in-memory state is the single source of truth for "who is logged in";
// persistence failures are swallowed so a read-only config directory never
// breaks an interactive session. All relationship mutations funnel through
// UpdateFollowing rather than ad hoc writes.
package session

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/samber/lo"

	"github.com/vibesocial/vibetui/internal/identity"
	"github.com/vibesocial/vibetui/internal/vibe"
)

const defaultSessionPath = "~/.config/vibetui/session.toml"

// Action names a follow-graph mutation direction.
type Action string

const (
	ActionFollow   Action = "follow"
	ActionUnfollow Action = "unfollow"
)

// Store is the process-wide session container. The zero value is a
// logged-out store persisting to the default path.
type Store struct {
	mu    sync.RWMutex
	path  string
	user  *vibe.User
	token string
}

// persisted mirrors the durable file layout: a token string plus the
// serialized user record.
type persisted struct {
	Token string        `toml:"token"`
	User  persistedUser `toml:"user"`
}

type persistedUser struct {
	ID             string   `toml:"id"`
	Username       string   `toml:"username"`
	Bio            string   `toml:"bio"`
	ProfilePicture string   `toml:"profile_picture"`
	Followers      []string `toml:"followers"`
	Following      []string `toml:"following"`
}

// Load reads any persisted session from path (empty uses the default) and
// restores it after re-normalizing relationship lists. Corrupt or missing
// data yields a logged-out store, never an error.
func Load(path string) *Store {
	s := &Store{path: path}

	resolved, err := s.resolvePath()
	if err != nil {
		return s
	}

	file, err := os.Open(resolved)
	if err != nil {
		return s
	}
	defer func() { _ = file.Close() }()

	raw, err := io.ReadAll(file)
	if err != nil {
		return s
	}

	var data persisted
	if err := toml.Unmarshal(raw, &data); err != nil {
		return s
	}
	if strings.TrimSpace(data.Token) == "" || strings.TrimSpace(data.User.ID) == "" {
		return s
	}

	user := data.User.restore()
	user.Normalize()
	s.user = &user
	s.token = data.Token
	return s
}

// Login normalizes the identity's relationship lists, then stores identity
// and token in memory and on disk.
func (s *Store) Login(user vibe.User, token string) {
	user.Normalize()

	s.mu.Lock()
	s.user = &user
	s.token = token
	s.mu.Unlock()

	s.persist()
}

// Logout clears the in-memory session and removes the durable copy.
func (s *Store) Logout() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	if resolved, err := s.resolvePath(); err == nil {
		_ = os.Remove(resolved)
	}
}

// Current returns a copy of the logged-in user and token. ok is false when
// no session is active.
func (s *Store) Current() (user vibe.User, token string, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil || s.token == "" {
		return vibe.User{}, "", false
	}
	snap := *s.user
	snap.Followers = append([]identity.ID(nil), s.user.Followers...)
	snap.Following = append([]identity.ID(nil), s.user.Following...)
	return snap, s.token, true
}

// Token returns the current bearer token, or "" when logged out. It is
// shaped to feed vibe.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// UpdateFollowing mutates only the current identity's following edge: the
// target's followers list is server-authoritative and refreshed separately.
// Follow appends at most one canonical entry; unfollow removes all of them.
func (s *Store) UpdateFollowing(targetID string, action Action) {
	canonical := identity.Canonical(targetID)
	if canonical == "" {
		return
	}

	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return
	}
	switch action {
	case ActionFollow:
		if !identity.Contains(s.user.Following, canonical) {
			s.user.Following = append(s.user.Following, identity.ID(canonical))
		}
	case ActionUnfollow:
		s.user.Following = lo.Filter(s.user.Following, func(id identity.ID, _ int) bool {
			return string(id) != canonical
		})
	}
	s.mu.Unlock()

	s.persist()
}

// Replace swaps the stored identity for a freshly fetched record, keeping
// the current token. Used by call sites that refetch the profile as
// reconciliation after relationship changes.
func (s *Store) Replace(user vibe.User) {
	user.Normalize()

	s.mu.Lock()
	if s.token == "" {
		s.mu.Unlock()
		return
	}
	s.user = &user
	s.mu.Unlock()

	s.persist()
}

// persist writes the session file. Failures are deliberately swallowed: the
// in-memory state stays authoritative for this process lifetime.
//
// The durable snapshot is built while the lock is held; concurrent
// UpdateFollowing calls mutate the relationship slices in place, so reading
// them unlocked would race. Only the marshal and file write happen outside.
func (s *Store) persist() {
	s.mu.RLock()
	var data persisted
	ok := s.user != nil && s.token != ""
	if ok {
		data = persisted{Token: s.token, User: newPersistedUser(*s.user)}
	}
	s.mu.RUnlock()

	if !ok {
		return
	}

	resolved, err := s.resolvePath()
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return
	}

	raw, err := toml.Marshal(data)
	if err != nil {
		return
	}
	_ = os.WriteFile(resolved, raw, 0o600)
}

func newPersistedUser(u vibe.User) persistedUser {
	return persistedUser{
		ID:             u.ID.String(),
		Username:       u.Username,
		Bio:            u.Bio,
		ProfilePicture: u.ProfilePicture,
		Followers:      lo.Map(u.Followers, func(id identity.ID, _ int) string { return string(id) }),
		Following:      lo.Map(u.Following, func(id identity.ID, _ int) string { return string(id) }),
	}
}

func (p persistedUser) restore() vibe.User {
	return vibe.User{
		ID:             identity.ID(p.ID),
		Username:       p.Username,
		Bio:            p.Bio,
		ProfilePicture: p.ProfilePicture,
		Followers:      lo.Map(p.Followers, func(s string, _ int) identity.ID { return identity.ID(s) }),
		Following:      lo.Map(p.Following, func(s string, _ int) identity.ID { return identity.ID(s) }),
	}
}

func (s *Store) resolvePath() (string, error) {
	if strings.TrimSpace(s.path) == "" {
		return expandPath(defaultSessionPath)
	}
	return expandPath(s.path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

// errNoSession reports attempts to act without authentication.
var errNoSession = errors.New("no active session")

// Require returns the current user or an error suitable for surfacing to
// the initiating action.
func (s *Store) Require() (vibe.User, error) {
	user, _, ok := s.Current()
	if !ok {
		return vibe.User{}, errNoSession
	}
	return user, nil
}
