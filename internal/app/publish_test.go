package app

import (
	"context"
	"errors"
	"testing"

	"github.com/vibesocial/vibetui/internal/upload"
	"github.com/vibesocial/vibetui/internal/vibe"
)

type fakeUploader struct {
	result upload.Result
	err    error
	paths  []string
}

func (f *fakeUploader) Upload(ctx context.Context, path, folder string) (upload.Result, error) {
	f.paths = append(f.paths, path)
	return f.result, f.err
}

type publishAPI struct {
	fakeAPI
	posts   []vibe.CreatePostRequest
	stories []vibe.CreateStoryRequest
	reels   []vibe.CreateReelRequest
}

func (p *publishAPI) CreatePost(ctx context.Context, req vibe.CreatePostRequest) error {
	p.posts = append(p.posts, req)
	return nil
}

func (p *publishAPI) CreateStory(ctx context.Context, req vibe.CreateStoryRequest) error {
	p.stories = append(p.stories, req)
	return nil
}

func (p *publishAPI) CreateReel(ctx context.Context, req vibe.CreateReelRequest) error {
	p.reels = append(p.reels, req)
	return nil
}

func TestPublishPost_UploadsThenCreates(t *testing.T) {
	api := &publishAPI{}
	up := &fakeUploader{result: upload.Result{URL: "https://cdn.example/img.jpg"}}
	svc := newTestService(t, &api.fakeAPI)
	svc.API = api
	svc.Uploader = up

	if err := svc.PublishPost(context.Background(), "hello", "photo.jpg"); err != nil {
		t.Fatalf("PublishPost: %v", err)
	}

	if len(up.paths) != 1 || up.paths[0] != "photo.jpg" {
		t.Fatalf("uploaded paths = %v, want [photo.jpg]", up.paths)
	}
	if len(api.posts) != 1 {
		t.Fatalf("created %d posts, want 1", len(api.posts))
	}
	req := api.posts[0]
	if req.Caption != "hello" || req.Image != "https://cdn.example/img.jpg" || req.Video != "" {
		t.Fatalf("create request = %+v, want caption+image", req)
	}
}

func TestPublishPost_VideoGoesToVideoField(t *testing.T) {
	api := &publishAPI{}
	up := &fakeUploader{result: upload.Result{URL: "https://cdn.example/clip.mp4"}}
	svc := newTestService(t, &api.fakeAPI)
	svc.API = api
	svc.Uploader = up

	if err := svc.PublishPost(context.Background(), "", "clip.mp4"); err != nil {
		t.Fatalf("PublishPost: %v", err)
	}
	if api.posts[0].Video != "https://cdn.example/clip.mp4" || api.posts[0].Image != "" {
		t.Fatalf("create request = %+v, want video field set", api.posts[0])
	}
}

func TestPublishPost_TextOnlySkipsUpload(t *testing.T) {
	api := &publishAPI{}
	svc := newTestService(t, &api.fakeAPI)
	svc.API = api

	if err := svc.PublishPost(context.Background(), "just words", ""); err != nil {
		t.Fatalf("PublishPost: %v", err)
	}
	if len(api.posts) != 1 || api.posts[0].Caption != "just words" {
		t.Fatalf("posts = %+v, want one text post", api.posts)
	}
}

func TestPublishPost_UploadFailureAborts(t *testing.T) {
	api := &publishAPI{}
	up := &fakeUploader{err: errors.New("cdn down")}
	svc := newTestService(t, &api.fakeAPI)
	svc.API = api
	svc.Uploader = up

	if err := svc.PublishPost(context.Background(), "hello", "photo.jpg"); err == nil {
		t.Fatalf("PublishPost succeeded despite upload failure")
	}
	if len(api.posts) != 0 {
		t.Fatalf("post created despite upload failure")
	}
}

func TestPublishReel_RejectsNonVideo(t *testing.T) {
	api := &publishAPI{}
	svc := newTestService(t, &api.fakeAPI)
	svc.API = api
	svc.Uploader = &fakeUploader{}

	if err := svc.PublishReel(context.Background(), "c", "photo.jpg"); err == nil {
		t.Fatalf("PublishReel accepted an image file")
	}
}

func TestPublishStory_UploadsAndCreates(t *testing.T) {
	api := &publishAPI{}
	up := &fakeUploader{result: upload.Result{URL: "https://cdn.example/story.png"}}
	svc := newTestService(t, &api.fakeAPI)
	svc.API = api
	svc.Uploader = up

	if err := svc.PublishStory(context.Background(), "story.png"); err != nil {
		t.Fatalf("PublishStory: %v", err)
	}
	if len(api.stories) != 1 || api.stories[0].Image != "https://cdn.example/story.png" {
		t.Fatalf("stories = %+v, want one image story", api.stories)
	}
}
