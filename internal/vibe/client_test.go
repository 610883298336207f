package vibe

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != defaultBaseURL {
		t.Fatalf("base = %q, want %q", u.String(), defaultBaseURL)
	}

	u, err = parseBaseURL("http://example.com:5000/api/?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "/api" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	u, err = parseBaseURL("localhost:5000")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "http" || u.Host != "localhost:5000" {
		t.Fatalf("url = %q, want http://localhost:5000", u.String())
	}
}

func TestClient_AttachesBearerTokenWhenPresent(t *testing.T) {
	t.Parallel()

	var gotAuth, gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(postListResponse{})
	}))
	t.Cleanup(server.Close)

	token := ""
	c, err := NewClient(server.URL, func() string { return token })
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	if _, err := c.FetchPosts(ctx); err != nil {
		t.Fatalf("FetchPosts returned error: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("Authorization = %q, want empty before login", gotAuth)
	}

	token = "T1"
	if _, err := c.FetchPosts(ctx); err != nil {
		t.Fatalf("FetchPosts returned error: %v", err)
	}
	if gotAuth != "Bearer T1" {
		t.Fatalf("Authorization = %q, want %q", gotAuth, "Bearer T1")
	}
	if !strings.HasPrefix(gotUserAgent, "vibetui/") {
		t.Fatalf("User-Agent = %q, want vibetui/*", gotUserAgent)
	}
}

func TestClient_LoginNormalizesUser(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/login" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad body", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"token": "abc",
			"user": {
				"_id": "1",
				"username": "ana",
				"followers": ["1", 1, "2"],
				"following": [{"_id": "3", "username": "bo"}, "3"]
			}
		}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	user, token, err := c.Login(context.Background(), LoginRequest{Email: "ana@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if token != "abc" {
		t.Fatalf("token = %q, want %q", token, "abc")
	}
	if len(user.Followers) != 2 || user.Followers[0] != "1" || user.Followers[1] != "2" {
		t.Fatalf("Followers = %v, want [1 2]", user.Followers)
	}
	if len(user.Following) != 1 || user.Following[0] != "3" {
		t.Fatalf("Following = %v, want [3]", user.Following)
	}
}

func TestClient_ValidatesBeforeSending(t *testing.T) {
	t.Parallel()

	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, _, err = c.Login(context.Background(), LoginRequest{Email: "not-an-email", Password: "pw"})
	if err == nil || !strings.Contains(err.Error(), "validate login request") {
		t.Fatalf("Login error = %v, want validation error", err)
	}

	_, err = c.Register(context.Background(), RegisterRequest{Username: "a", Email: "ana@example.com", Password: "longenough"})
	if err == nil || !strings.Contains(err.Error(), "validate register request") {
		t.Fatalf("Register error = %v, want validation error", err)
	}

	_, err = c.AddComment(context.Background(), "p1", CommentRequest{})
	if err == nil || !strings.Contains(err.Error(), "validate comment request") {
		t.Fatalf("AddComment error = %v, want validation error", err)
	}

	if requests != 0 {
		t.Fatalf("server saw %d requests, want 0 for invalid payloads", requests)
	}
}

func TestClient_SearchEncodesQuery(t *testing.T) {
	t.Parallel()

	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/search" {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.Query().Get("query")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(SearchResult{Users: []User{{ID: "1"}}})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	res, err := c.Search(context.Background(), "  hello world ")
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if gotQuery != "hello world" {
		t.Fatalf("query = %q, want %q", gotQuery, "hello world")
	}
	if len(res.Users) != 1 {
		t.Fatalf("Users = %v, want 1 match", res.Users)
	}
}

func TestClient_BaseURLWithPathPrefix(t *testing.T) {
	t.Parallel()

	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(notificationListResponse{})
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL+"/api", nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.FetchNotifications(context.Background()); err != nil {
		t.Fatalf("FetchNotifications returned error: %v", err)
	}
	if gotPath != "/api/notification" {
		t.Fatalf("path = %q, want %q", gotPath, "/api/notification")
	}
}

func TestClient_SurfacesServerMessage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"token expired"}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.FetchProfile(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized || apiErr.Message != "token expired" {
		t.Fatalf("apiErr = %+v, want 401 token expired", apiErr)
	}
	if apiErr.UserMessage() != "token expired" {
		t.Fatalf("UserMessage = %q, want server message", apiErr.UserMessage())
	}
}

func TestClient_GenericFallbackMessage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	err = c.Follow(context.Background(), "u2")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if !strings.Contains(apiErr.UserMessage(), "try again") {
		t.Fatalf("UserMessage = %q, want generic fallback", apiErr.UserMessage())
	}
}

func TestClient_RequiresIDs(t *testing.T) {
	c, err := NewClient("127.0.0.1:1", nil)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if err := c.Follow(context.Background(), " "); err == nil {
		t.Fatalf("Follow with blank id returned nil error, want error")
	}
	if err := c.DeleteNotification(context.Background(), ""); err == nil {
		t.Fatalf("DeleteNotification with blank id returned nil error, want error")
	}
	if _, err := c.FetchComments(context.Background(), ""); err == nil {
		t.Fatalf("FetchComments with blank id returned nil error, want error")
	}
}
