package vibe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// API defines the operations the rest of the application consumes. It is
// implemented by *Client and can be faked in tests.
type API interface {
	Login(ctx context.Context, req LoginRequest) (User, string, error)
	Register(ctx context.Context, req RegisterRequest) (User, error)
	FetchProfile(ctx context.Context) (User, error)
	FetchUserProfile(ctx context.Context, userID string) (User, error)
	EditProfile(ctx context.Context, req EditProfileRequest) (User, error)
	Follow(ctx context.Context, userID string) error
	Unfollow(ctx context.Context, userID string) error
	FetchPosts(ctx context.Context) ([]Post, error)
	CreatePost(ctx context.Context, req CreatePostRequest) error
	UpdatePost(ctx context.Context, postID string, req UpdatePostRequest) error
	DeletePost(ctx context.Context, postID string) error
	Like(ctx context.Context, postID string) error
	Unlike(ctx context.Context, postID string) error
	FetchComments(ctx context.Context, postID string) ([]Comment, error)
	AddComment(ctx context.Context, postID string, req CommentRequest) (*Comment, error)
	DeleteComment(ctx context.Context, postID, commentID string) error
	FetchNotifications(ctx context.Context) ([]Notification, error)
	DeleteNotification(ctx context.Context, notificationID string) error
	MarkNotificationRead(ctx context.Context, notificationID string) error
	Search(ctx context.Context, query string) (SearchResult, error)
	FetchReels(ctx context.Context) ([]Reel, error)
	CreateReel(ctx context.Context, req CreateReelRequest) error
	DeleteReel(ctx context.Context, reelID string) error
	LikeReel(ctx context.Context, reelID string) error
	FetchReelComments(ctx context.Context, reelID string) ([]Comment, error)
	AddReelComment(ctx context.Context, reelID string, req CommentRequest) error
	FetchStories(ctx context.Context) ([]Story, error)
	CreateStory(ctx context.Context, req CreateStoryRequest) error
	FetchUploadConfig(ctx context.Context) (UploadConfig, error)
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// TokenSource supplies the current bearer token, or "" when logged out.
type TokenSource func() string

// Client talks to the Vibe HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	token     TokenSource
	validate  *validator.Validate
}

const (
	defaultBaseURL   = "http://localhost:5000/api"
	defaultUserAgent = "vibetui/0.1"

	// One blunt global timeout sized for media-heavy requests rather than
	// per-operation tuning.
	requestTimeout = 10 * time.Minute
)

// APIError is a server-reported failure carrying the message the backend
// provided, when it provided one.
type APIError struct {
	StatusCode int
	Message    string
	Path       string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api %s returned status %d: %s", e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api %s returned status %d", e.Path, e.StatusCode)
}

// UserMessage returns the text suitable for direct display: the server's
// message when available, else a generic fallback.
func (e *APIError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return "Something went wrong. Please try again."
}

// NewClient builds a Client for the given API base URL. An empty base uses
// the default local backend. The token source may be nil for
// unauthenticated use.
func NewClient(base string, token TokenSource) (*Client, error) {
	parsed, err := parseBaseURL(base)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: parsed,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
		token:     token,
		validate:  validator.New(),
	}, nil
}

// Login authenticates and returns the user record plus bearer token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (User, string, error) {
	if err := c.validate.Struct(req); err != nil {
		return User{}, "", fmt.Errorf("validate login request: %w", err)
	}
	var payload loginResponse
	if err := c.do(ctx, http.MethodPost, "/user/login", req, &payload); err != nil {
		return User{}, "", err
	}
	payload.User.Normalize()
	return payload.User, payload.Token, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (User, error) {
	if err := c.validate.Struct(req); err != nil {
		return User{}, fmt.Errorf("validate register request: %w", err)
	}
	var payload userResponse
	if err := c.do(ctx, http.MethodPost, "/user/register", req, &payload); err != nil {
		return User{}, err
	}
	user := payload.resolve()
	user.Normalize()
	return user, nil
}

// FetchProfile retrieves the authenticated user's record, including the
// authoritative follower and following lists.
func (c *Client) FetchProfile(ctx context.Context) (User, error) {
	var payload userResponse
	if err := c.do(ctx, http.MethodGet, "/user/profile", nil, &payload); err != nil {
		return User{}, err
	}
	user := payload.resolve()
	user.Normalize()
	return user, nil
}

// FetchUserProfile retrieves another user's record by ID.
func (c *Client) FetchUserProfile(ctx context.Context, userID string) (User, error) {
	if strings.TrimSpace(userID) == "" {
		return User{}, fmt.Errorf("user id required")
	}
	var payload userResponse
	if err := c.do(ctx, http.MethodGet, "/user/profile/"+url.PathEscape(userID), nil, &payload); err != nil {
		return User{}, err
	}
	user := payload.resolve()
	user.Normalize()
	return user, nil
}

// EditProfile updates the authenticated user's profile fields.
func (c *Client) EditProfile(ctx context.Context, req EditProfileRequest) (User, error) {
	if err := c.validate.Struct(req); err != nil {
		return User{}, fmt.Errorf("validate edit profile request: %w", err)
	}
	var payload userResponse
	if err := c.do(ctx, http.MethodPut, "/user/editProfile", req, &payload); err != nil {
		return User{}, err
	}
	user := payload.resolve()
	user.Normalize()
	return user, nil
}

// Follow adds the authenticated user to userID's followers.
func (c *Client) Follow(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("user id required")
	}
	return c.do(ctx, http.MethodPost, "/follow/"+url.PathEscape(userID)+"/follow", nil, nil)
}

// Unfollow removes the authenticated user from userID's followers.
func (c *Client) Unfollow(ctx context.Context, userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("user id required")
	}
	return c.do(ctx, http.MethodPost, "/follow/"+url.PathEscape(userID)+"/unfollow", nil, nil)
}

// FetchPosts retrieves the feed.
func (c *Client) FetchPosts(ctx context.Context) ([]Post, error) {
	var payload postListResponse
	if err := c.do(ctx, http.MethodGet, "/post", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Posts, nil
}

// CreatePost publishes a new post. Media must already be uploaded; only the
// resulting URL travels to the backend.
func (c *Client) CreatePost(ctx context.Context, req CreatePostRequest) error {
	if err := c.validate.Struct(req); err != nil {
		return fmt.Errorf("validate create post request: %w", err)
	}
	return c.do(ctx, http.MethodPost, "/post/create", req, nil)
}

// UpdatePost edits an existing post's caption.
func (c *Client) UpdatePost(ctx context.Context, postID string, req UpdatePostRequest) error {
	if strings.TrimSpace(postID) == "" {
		return fmt.Errorf("post id required")
	}
	if err := c.validate.Struct(req); err != nil {
		return fmt.Errorf("validate update post request: %w", err)
	}
	return c.do(ctx, http.MethodPut, "/post/update/"+url.PathEscape(postID), req, nil)
}

// DeletePost removes a post.
func (c *Client) DeletePost(ctx context.Context, postID string) error {
	if strings.TrimSpace(postID) == "" {
		return fmt.Errorf("post id required")
	}
	return c.do(ctx, http.MethodDelete, "/post/delete/"+url.PathEscape(postID), nil, nil)
}

// Like records a like on a post.
func (c *Client) Like(ctx context.Context, postID string) error {
	if strings.TrimSpace(postID) == "" {
		return fmt.Errorf("post id required")
	}
	return c.do(ctx, http.MethodPost, "/like/"+url.PathEscape(postID)+"/like", nil, nil)
}

// Unlike removes a like from a post.
func (c *Client) Unlike(ctx context.Context, postID string) error {
	if strings.TrimSpace(postID) == "" {
		return fmt.Errorf("post id required")
	}
	return c.do(ctx, http.MethodPost, "/like/"+url.PathEscape(postID)+"/dislike", nil, nil)
}

// FetchComments lists a post's comments.
func (c *Client) FetchComments(ctx context.Context, postID string) ([]Comment, error) {
	if strings.TrimSpace(postID) == "" {
		return nil, fmt.Errorf("post id required")
	}
	var payload commentListResponse
	if err := c.do(ctx, http.MethodGet, "/comment/"+url.PathEscape(postID)+"/comments", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Comments, nil
}

// AddComment appends a comment to a post. The returned comment may be nil
// when the backend acknowledges without echoing the record.
func (c *Client) AddComment(ctx context.Context, postID string, req CommentRequest) (*Comment, error) {
	if strings.TrimSpace(postID) == "" {
		return nil, fmt.Errorf("post id required")
	}
	if err := c.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("validate comment request: %w", err)
	}
	var payload commentResponse
	if err := c.do(ctx, http.MethodPost, "/comment/"+url.PathEscape(postID)+"/comment", req, &payload); err != nil {
		return nil, err
	}
	return payload.Comment, nil
}

// DeleteComment removes a comment from a post.
func (c *Client) DeleteComment(ctx context.Context, postID, commentID string) error {
	if strings.TrimSpace(postID) == "" || strings.TrimSpace(commentID) == "" {
		return fmt.Errorf("post and comment ids required")
	}
	return c.do(ctx, http.MethodDelete, "/comment/"+url.PathEscape(postID)+"/comment/"+url.PathEscape(commentID), nil, nil)
}

// FetchNotifications retrieves the notification list.
func (c *Client) FetchNotifications(ctx context.Context) ([]Notification, error) {
	var payload notificationListResponse
	if err := c.do(ctx, http.MethodGet, "/notification", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Notifications, nil
}

// DeleteNotification removes a single notification.
func (c *Client) DeleteNotification(ctx context.Context, notificationID string) error {
	if strings.TrimSpace(notificationID) == "" {
		return fmt.Errorf("notification id required")
	}
	return c.do(ctx, http.MethodDelete, "/notification/"+url.PathEscape(notificationID), nil, nil)
}

// MarkNotificationRead flips a notification's read flag server-side.
func (c *Client) MarkNotificationRead(ctx context.Context, notificationID string) error {
	if strings.TrimSpace(notificationID) == "" {
		return fmt.Errorf("notification id required")
	}
	return c.do(ctx, http.MethodPut, "/notification/"+url.PathEscape(notificationID)+"/read", nil, nil)
}

// Search queries users and posts.
func (c *Client) Search(ctx context.Context, query string) (SearchResult, error) {
	values := url.Values{}
	values.Set("query", strings.TrimSpace(query))
	rel := &url.URL{Path: "/search/search", RawQuery: values.Encode()}
	var payload SearchResult
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return SearchResult{}, err
	}
	return payload, nil
}

// FetchReels retrieves all reels.
func (c *Client) FetchReels(ctx context.Context) ([]Reel, error) {
	var payload reelListResponse
	if err := c.do(ctx, http.MethodGet, "/reel/all", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Reels, nil
}

// CreateReel publishes a new reel.
func (c *Client) CreateReel(ctx context.Context, req CreateReelRequest) error {
	if err := c.validate.Struct(req); err != nil {
		return fmt.Errorf("validate create reel request: %w", err)
	}
	return c.do(ctx, http.MethodPost, "/reel/create", req, nil)
}

// DeleteReel removes a reel.
func (c *Client) DeleteReel(ctx context.Context, reelID string) error {
	if strings.TrimSpace(reelID) == "" {
		return fmt.Errorf("reel id required")
	}
	return c.do(ctx, http.MethodDelete, "/reel/delete/"+url.PathEscape(reelID), nil, nil)
}

// LikeReel toggles a like on a reel.
func (c *Client) LikeReel(ctx context.Context, reelID string) error {
	if strings.TrimSpace(reelID) == "" {
		return fmt.Errorf("reel id required")
	}
	return c.do(ctx, http.MethodPost, "/reel/like/"+url.PathEscape(reelID), nil, nil)
}

// FetchReelComments lists a reel's comments.
func (c *Client) FetchReelComments(ctx context.Context, reelID string) ([]Comment, error) {
	if strings.TrimSpace(reelID) == "" {
		return nil, fmt.Errorf("reel id required")
	}
	var payload commentListResponse
	if err := c.do(ctx, http.MethodGet, "/reel/comments/"+url.PathEscape(reelID), nil, &payload); err != nil {
		return nil, err
	}
	return payload.Comments, nil
}

// AddReelComment appends a comment to a reel.
func (c *Client) AddReelComment(ctx context.Context, reelID string, req CommentRequest) error {
	if strings.TrimSpace(reelID) == "" {
		return fmt.Errorf("reel id required")
	}
	if err := c.validate.Struct(req); err != nil {
		return fmt.Errorf("validate comment request: %w", err)
	}
	return c.do(ctx, http.MethodPost, "/reel/comment/"+url.PathEscape(reelID), req, nil)
}

// FetchStories retrieves all active stories.
func (c *Client) FetchStories(ctx context.Context) ([]Story, error) {
	var payload storyListResponse
	if err := c.do(ctx, http.MethodGet, "/story/all", nil, &payload); err != nil {
		return nil, err
	}
	return payload.Stories, nil
}

// CreateStory publishes a new story.
func (c *Client) CreateStory(ctx context.Context, req CreateStoryRequest) error {
	if err := c.validate.Struct(req); err != nil {
		return fmt.Errorf("validate create story request: %w", err)
	}
	return c.do(ctx, http.MethodPost, "/story/create", req, nil)
}

// FetchUploadConfig retrieves the CDN upload parameters.
func (c *Client) FetchUploadConfig(ctx context.Context) (UploadConfig, error) {
	var payload UploadConfig
	if err := c.do(ctx, http.MethodGet, "/upload/config", nil, &payload); err != nil {
		return UploadConfig{}, err
	}
	return payload, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, body, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	reqURL := c.baseURL.ResolveReference(&url.URL{
		Path:     strings.TrimSuffix(c.baseURL.Path, "/") + rel.Path,
		RawQuery: rel.RawQuery,
	})

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp, rel.Path)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response, path string) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Path: path}
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&envelope); err == nil {
		if envelope.Message != "" {
			apiErr.Message = envelope.Message
		} else {
			apiErr.Message = envelope.Error
		}
	}
	return apiErr
}

func parseBaseURL(base string) (*url.URL, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base %q: %w", base, err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
