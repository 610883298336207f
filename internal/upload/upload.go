// Package upload sends media straight to the CDN, bypassing the backend
// for the transfer itself. The backend only issues the unsigned upload
// preset and later receives the resulting URL.
package upload

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"resty.dev/v3"

	"github.com/vibesocial/vibetui/internal/vibe"
)

const (
	defaultFolder = "social_media_uploads"

	// Matches the API client's blunt global policy: large videos over slow
	// links need minutes, not seconds.
	uploadTimeout = 10 * time.Minute
)

// ConfigFetcher supplies the server-issued upload parameters. Implemented
// by *vibe.Client.
type ConfigFetcher interface {
	FetchUploadConfig(ctx context.Context) (vibe.UploadConfig, error)
}

// Result describes a completed CDN upload.
type Result struct {
	URL          string `json:"secure_url"`
	PublicID     string `json:"public_id"`
	ResourceType string `json:"resource_type"`
	Format       string `json:"format"`
}

// Uploader performs direct-to-CDN uploads using backend-issued presets.
type Uploader struct {
	api    ConfigFetcher
	client *resty.Client

	// endpoint overrides the CDN URL template in tests.
	endpoint string
}

// NewUploader builds an Uploader that fetches upload parameters from api.
func NewUploader(api ConfigFetcher) *Uploader {
	client := resty.New().
		SetTimeout(uploadTimeout)

	return &Uploader{
		api:    api,
		client: client,
	}
}

// Close releases the underlying HTTP client.
func (u *Uploader) Close() error {
	return u.client.Close()
}

// Upload pushes the file at path to the CDN under folder (empty uses the
// default) and returns the hosted media's URL and metadata.
func (u *Uploader) Upload(ctx context.Context, path, folder string) (Result, error) {
	if strings.TrimSpace(path) == "" {
		return Result{}, fmt.Errorf("file path required")
	}
	if strings.TrimSpace(folder) == "" {
		folder = defaultFolder
	}

	cfg, err := u.api.FetchUploadConfig(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("fetch upload config: %w", err)
	}
	if cfg.UploadPreset == "" {
		return Result{}, fmt.Errorf("upload preset not configured")
	}

	target := u.endpoint
	if target == "" {
		target = fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/upload", cfg.CloudName)
	}

	var result Result
	var failure struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}

	resp, err := u.client.R().
		WithContext(ctx).
		SetFile("file", path).
		SetFormData(map[string]string{
			"upload_preset": cfg.UploadPreset,
			"folder":        folder,
		}).
		SetResult(&result).
		SetError(&failure).
		Post(target)
	if err != nil {
		return Result{}, fmt.Errorf("upload to cdn: %w", err)
	}
	if resp.IsError() {
		if failure.Error.Message != "" {
			return Result{}, fmt.Errorf("cdn rejected upload: %s", failure.Error.Message)
		}
		return Result{}, fmt.Errorf("cdn returned status %d", resp.StatusCode())
	}
	if result.URL == "" {
		return Result{}, fmt.Errorf("cdn response missing secure_url")
	}
	return result, nil
}

// MediaKind infers the backend media category from the file extension.
func MediaKind(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return "image"
	case ".mp4", ".mov", ".webm", ".mkv", ".avi":
		return "video"
	default:
		return "auto"
	}
}
