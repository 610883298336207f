package app

import (
	"context"
	"fmt"

	"github.com/vibesocial/vibetui/internal/upload"
	"github.com/vibesocial/vibetui/internal/vibe"
)

// MediaUploader pushes a local file to the CDN. Implemented by
// *upload.Uploader.
type MediaUploader interface {
	Upload(ctx context.Context, path, folder string) (upload.Result, error)
}

// PublishPost uploads the media file (when given), then creates the post
// with the hosted URL and refreshes the feed.
func (s *Service) PublishPost(ctx context.Context, caption, mediaPath string) error {
	if _, err := s.Session.Require(); err != nil {
		return err
	}

	req := vibe.CreatePostRequest{Caption: caption}
	if mediaPath != "" {
		if s.Uploader == nil {
			return fmt.Errorf("media upload not configured")
		}
		result, err := s.Uploader.Upload(ctx, mediaPath, "")
		if err != nil {
			return err
		}
		switch upload.MediaKind(mediaPath) {
		case "video":
			req.Video = result.URL
		default:
			req.Image = result.URL
		}
	}

	if err := s.API.CreatePost(ctx, req); err != nil {
		return err
	}
	return s.RefreshFeed(ctx)
}

// PublishStory uploads the media file and creates a story from it.
func (s *Service) PublishStory(ctx context.Context, mediaPath string) error {
	if _, err := s.Session.Require(); err != nil {
		return err
	}
	if s.Uploader == nil {
		return fmt.Errorf("media upload not configured")
	}

	result, err := s.Uploader.Upload(ctx, mediaPath, "")
	if err != nil {
		return err
	}

	var req vibe.CreateStoryRequest
	switch upload.MediaKind(mediaPath) {
	case "video":
		req.Video = result.URL
	default:
		req.Image = result.URL
	}

	if err := s.API.CreateStory(ctx, req); err != nil {
		return err
	}
	return s.RefreshStories(ctx)
}

// PublishReel uploads the video file and creates a reel from it.
func (s *Service) PublishReel(ctx context.Context, caption, videoPath string) error {
	if _, err := s.Session.Require(); err != nil {
		return err
	}
	if s.Uploader == nil {
		return fmt.Errorf("media upload not configured")
	}
	if upload.MediaKind(videoPath) != "video" {
		return fmt.Errorf("reels require a video file")
	}

	result, err := s.Uploader.Upload(ctx, videoPath, "")
	if err != nil {
		return err
	}
	return s.API.CreateReel(ctx, vibe.CreateReelRequest{Caption: caption, Video: result.URL})
}
