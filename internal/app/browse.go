package app

import (
	"context"

	"github.com/vibesocial/vibetui/internal/vibe"
)

// RefreshReels replaces the stored reel list.
func (s *Service) RefreshReels(ctx context.Context) error {
	reels, err := s.API.FetchReels(ctx)
	if err != nil {
		return err
	}
	s.Store.SetReels(reels)
	return nil
}

// LikeReel records a like on a reel, then refetches the list. The backend
// toggles the like server-side from a single endpoint, so there is no local
// inverse to pair an optimistic flip with.
func (s *Service) LikeReel(ctx context.Context, reelID string) error {
	if _, err := s.Session.Require(); err != nil {
		return err
	}
	if err := s.API.LikeReel(ctx, reelID); err != nil {
		return err
	}
	return s.RefreshReels(ctx)
}

// PostComments lists a post's comment thread.
func (s *Service) PostComments(ctx context.Context, postID string) ([]vibe.Comment, error) {
	return s.API.FetchComments(ctx, postID)
}

// CommentOnPost appends a comment and returns the refreshed thread.
func (s *Service) CommentOnPost(ctx context.Context, postID, text string) ([]vibe.Comment, error) {
	if _, err := s.Session.Require(); err != nil {
		return nil, err
	}
	if _, err := s.API.AddComment(ctx, postID, vibe.CommentRequest{Text: text}); err != nil {
		return nil, err
	}
	return s.API.FetchComments(ctx, postID)
}

// ReelComments lists a reel's comment thread.
func (s *Service) ReelComments(ctx context.Context, reelID string) ([]vibe.Comment, error) {
	return s.API.FetchReelComments(ctx, reelID)
}

// CommentOnReel appends a comment to a reel and returns the refreshed
// thread.
func (s *Service) CommentOnReel(ctx context.Context, reelID, text string) ([]vibe.Comment, error) {
	if _, err := s.Session.Require(); err != nil {
		return nil, err
	}
	if err := s.API.AddReelComment(ctx, reelID, vibe.CommentRequest{Text: text}); err != nil {
		return nil, err
	}
	return s.API.FetchReelComments(ctx, reelID)
}
