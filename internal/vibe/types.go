package vibe

import (
	"encoding/json"
	"time"

	"github.com/vibesocial/vibetui/internal/identity"
)

// User mirrors the backend user record. Follower and following lists pass
// through identity normalization before they are stored or compared.
type User struct {
	ID             identity.ID   `json:"_id"`
	Username       string        `json:"username"`
	Email          string        `json:"email,omitempty"`
	Bio            string        `json:"bio"`
	ProfilePicture string        `json:"profilePicture"`
	Followers      []identity.ID `json:"followers"`
	Following      []identity.ID `json:"following"`
	CreatedAt      string        `json:"createdAt,omitempty"`
}

// Normalize dedupes the relationship lists in place, preserving first
// occurrence order.
func (u *User) Normalize() {
	u.Followers = identity.Dedupe(u.Followers)
	u.Following = identity.Dedupe(u.Following)
}

// IsFollowing reports whether target is in the user's following list.
func (u User) IsFollowing(target any) bool {
	return identity.Contains(u.Following, target)
}

// UserRef is an author reference. The backend sometimes populates it with
// the full user record and sometimes sends just the raw ID; decoding keeps
// whichever fields were present.
type UserRef struct {
	ID             identity.ID
	Username       string
	ProfilePicture string
}

// UnmarshalJSON accepts both the bare-ID and the populated-object shape.
func (r *UserRef) UnmarshalJSON(data []byte) error {
	var populated struct {
		ID             identity.ID `json:"_id"`
		Username       string      `json:"username"`
		ProfilePicture string      `json:"profilePicture"`
	}
	if err := json.Unmarshal(data, &populated); err == nil && populated.ID != "" {
		r.ID = populated.ID
		r.Username = populated.Username
		r.ProfilePicture = populated.ProfilePicture
		return nil
	}
	var id identity.ID
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	r.ID = id
	return nil
}

// Post mirrors the backend post record. The author may arrive under either
// userId or userID depending on the endpoint.
type Post struct {
	ID        identity.ID   `json:"_id"`
	Author    UserRef       `json:"userId"`
	AuthorAlt UserRef       `json:"userID,omitempty"`
	Caption   string        `json:"caption"`
	Image     string        `json:"image,omitempty"`
	Video     string        `json:"video,omitempty"`
	Likes     []identity.ID `json:"likes"`
	Comments  []Comment     `json:"comments,omitempty"`
	CreatedAt string        `json:"createdAt,omitempty"`
}

// AuthorRef resolves the author reference regardless of which field the
// endpoint used.
func (p Post) AuthorRef() UserRef {
	if p.Author.ID != "" {
		return p.Author
	}
	return p.AuthorAlt
}

// IsLikedBy reports whether the given identity appears in the like list,
// using canonical comparison.
func (p Post) IsLikedBy(userID any) bool {
	return identity.Contains(p.Likes, userID)
}

// Comment is a single post comment.
type Comment struct {
	ID        identity.ID `json:"_id"`
	User      UserRef     `json:"user"`
	Text      string      `json:"text"`
	CreatedAt string      `json:"createdAt,omitempty"`
}

// NotificationKind enumerates the event types the backend emits.
const (
	NotificationFollow  = "follow"
	NotificationLike    = "like"
	NotificationComment = "comment"
	NotificationPost    = "post"
)

// Notification mirrors the backend notification record. The read flag only
// changes through explicit mark-read calls, apart from the optimistic
// pre-marking applied when the panel opens.
type Notification struct {
	ID        identity.ID `json:"_id"`
	Kind      string      `json:"type"`
	FromUser  UserRef     `json:"fromUser"`
	Read      bool        `json:"read"`
	CreatedAt string      `json:"createdAt"`
}

// Message renders the human-readable notification line.
func (n Notification) Message() string {
	from := n.FromUser.Username
	if from == "" {
		from = "Someone"
	}
	switch n.Kind {
	case NotificationFollow:
		return from + " started following you"
	case NotificationLike:
		return from + " liked your post"
	case NotificationComment:
		return from + " commented on your post"
	case NotificationPost:
		return from + " posted new content"
	default:
		return from + " has an update"
	}
}

// Reel mirrors the backend reel record.
type Reel struct {
	ID        identity.ID   `json:"_id"`
	Author    UserRef       `json:"userId"`
	Caption   string        `json:"caption"`
	Video     string        `json:"video"`
	Likes     []identity.ID `json:"likes"`
	CreatedAt string        `json:"createdAt,omitempty"`
}

// IsLikedBy reports whether the given identity appears in the reel's like
// list, using canonical comparison.
func (r Reel) IsLikedBy(userID any) bool {
	return identity.Contains(r.Likes, userID)
}

// Story mirrors the backend story record.
type Story struct {
	ID        identity.ID `json:"_id"`
	Author    UserRef     `json:"userId"`
	Image     string      `json:"image,omitempty"`
	Video     string      `json:"video,omitempty"`
	CreatedAt string      `json:"createdAt,omitempty"`
}

// UploadConfig carries the server-issued unsigned upload parameters for the
// CDN handoff.
type UploadConfig struct {
	Success      bool   `json:"success"`
	CloudName    string `json:"cloudName"`
	UploadPreset string `json:"uploadPreset"`
}

// SearchResult aggregates user and post matches for a query.
type SearchResult struct {
	Users []User `json:"userResult"`
	Posts []Post `json:"postResult"`
}

// LoginRequest is the credential payload for POST /user/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the payload for POST /user/register.
type RegisterRequest struct {
	Username          string `json:"username" validate:"required,min=2,max=50"`
	Email             string `json:"email" validate:"required,email"`
	Password          string `json:"password" validate:"required,min=8"`
	Bio               string `json:"bio" validate:"max=300"`
	ProfilePictureURL string `json:"profilePictureUrl" validate:"omitempty,url"`
}

// EditProfileRequest is the payload for PUT /user/editProfile.
type EditProfileRequest struct {
	Username          string `json:"username" validate:"required,min=2,max=50"`
	Bio               string `json:"bio" validate:"max=300"`
	ProfilePictureURL string `json:"profilePictureUrl" validate:"omitempty,url"`
}

// CreatePostRequest is the payload for POST /post/create.
type CreatePostRequest struct {
	Caption string `json:"caption" validate:"max=2000"`
	Image   string `json:"image,omitempty" validate:"omitempty,url"`
	Video   string `json:"video,omitempty" validate:"omitempty,url"`
}

// UpdatePostRequest is the payload for PUT /post/update/:id.
type UpdatePostRequest struct {
	Caption string `json:"caption" validate:"max=2000"`
}

// CommentRequest is the payload for POST /comment/:postId/comment.
type CommentRequest struct {
	Text string `json:"text" validate:"required,max=1000"`
}

// CreateReelRequest is the payload for POST /reel/create.
type CreateReelRequest struct {
	Caption string `json:"caption" validate:"max=2000"`
	Video   string `json:"video" validate:"required,url"`
}

// CreateStoryRequest is the payload for POST /story/create.
type CreateStoryRequest struct {
	Image string `json:"image,omitempty" validate:"omitempty,url"`
	Video string `json:"video,omitempty" validate:"omitempty,url"`
}

// loginResponse wraps the POST /user/login reply.
type loginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// postListResponse wraps GET /post.
type postListResponse struct {
	Posts []Post `json:"posts"`
}

// commentListResponse wraps GET /comment/:postId/comments.
type commentListResponse struct {
	Comments []Comment `json:"comments"`
}

// commentResponse wraps POST /comment/:postId/comment.
type commentResponse struct {
	Comment *Comment `json:"comment"`
}

// notificationListResponse wraps GET /notification.
type notificationListResponse struct {
	Notifications []Notification `json:"notifications"`
}

// reelListResponse wraps GET /reel/all.
type reelListResponse struct {
	Reels []Reel `json:"reels"`
}

// storyListResponse wraps GET /story/all.
type storyListResponse struct {
	Stories []Story `json:"stories"`
}

// userResponse wraps endpoints returning a single user record. Some return
// the user bare, others under a "user" key; decoding tolerates both.
type userResponse struct {
	User
	Wrapped *User `json:"user"`
}

func (r userResponse) resolve() User {
	if r.Wrapped != nil {
		return *r.Wrapped
	}
	return r.User
}

// ParsedCreatedAt returns the post creation time when parseable.
func (p Post) ParsedCreatedAt() time.Time {
	return parseTime(p.CreatedAt)
}

// ParsedCreatedAt returns the notification creation time when parseable.
func (n Notification) ParsedCreatedAt() time.Time {
	return parseTime(n.CreatedAt)
}

// ParsedCreatedAt returns the reel creation time when parseable.
func (r Reel) ParsedCreatedAt() time.Time {
	return parseTime(r.CreatedAt)
}

// ParsedCreatedAt returns the comment creation time when parseable.
func (c Comment) ParsedCreatedAt() time.Time {
	return parseTime(c.CreatedAt)
}

// ParsedCreatedAt returns the story creation time when parseable.
func (s Story) ParsedCreatedAt() time.Time {
	return parseTime(s.CreatedAt)
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
