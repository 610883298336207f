package app

import (
	"context"
	"fmt"
	"time"

	"github.com/vibesocial/vibetui/internal/config"
	"github.com/vibesocial/vibetui/internal/session"
	"github.com/vibesocial/vibetui/internal/state"
	"github.com/vibesocial/vibetui/internal/ui"
	"github.com/vibesocial/vibetui/internal/upload"
	"github.com/vibesocial/vibetui/internal/vibe"
)

// Options configure the vibetui application.
type Options struct {
	ConfigPath  string
	SessionPath string // empty uses default ~/.config/vibetui/session.toml
	PollEvery   int    // seconds; zero uses the config value

	// Login credentials for the non-interactive login flow. When Email is
	// set, Run authenticates, persists the session, and exits without
	// starting the UI.
	Email    string
	Password string

	// Register creates an account from Username/Email/Password (Bio
	// optional), signs in, and exits.
	Register bool
	Username string
	Bio      string

	// One-shot publish flows: upload Media (a local file path) when given,
	// create the content against the backend, and exit.
	PublishPost  bool
	PublishStory bool
	PublishReel  bool
	Caption      string
	Media        string

	// Logout clears the persisted session and exits.
	Logout bool
}

// Run boots vibetui until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	sess := session.Load(opts.SessionPath)

	client, err := vibe.NewClient(cfg.APIBase, sess.Token)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	uploader := upload.NewUploader(client)
	defer func() { _ = uploader.Close() }()

	store := &state.Store{}
	service := &Service{API: client, Session: sess, Store: store, Uploader: uploader}

	if opts.Logout {
		service.Logout()
		return nil
	}

	if opts.Register {
		req := vibe.RegisterRequest{
			Username: opts.Username,
			Email:    opts.Email,
			Password: opts.Password,
			Bio:      opts.Bio,
		}
		if err := service.Register(ctx, req); err != nil {
			return fmt.Errorf("register: %w", err)
		}
		return nil
	}

	if opts.Email != "" {
		if err := service.Login(ctx, opts.Email, opts.Password); err != nil {
			return fmt.Errorf("login: %w", err)
		}
		return nil
	}

	if _, _, ok := sess.Current(); !ok {
		return fmt.Errorf("no session; run with -login first")
	}

	switch {
	case opts.PublishPost:
		if err := service.PublishPost(ctx, opts.Caption, opts.Media); err != nil {
			return fmt.Errorf("publish post: %w", err)
		}
		return nil
	case opts.PublishStory:
		if err := service.PublishStory(ctx, opts.Media); err != nil {
			return fmt.Errorf("publish story: %w", err)
		}
		return nil
	case opts.PublishReel:
		if err := service.PublishReel(ctx, opts.Caption, opts.Media); err != nil {
			return fmt.Errorf("publish reel: %w", err)
		}
		return nil
	}

	interval := time.Duration(cfg.PollSeconds) * time.Second
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	// A session is present, so the poller enters its active state. It
	// stops with ctx when the UI exits.
	StartPoller(ctx, store, client, interval)

	// Populate the feed before the first frame; a failure here is not
	// fatal, the UI surfaces the error state.
	_ = service.RefreshFeed(ctx)
	_ = service.RefreshStories(ctx)
	_ = service.RefreshReels(ctx)

	return ui.Run(ui.Options{
		Context:   ctx,
		Service:   service,
		Search:    client,
		Store:     store,
		Session:   sess,
		ThemeName: cfg.Theme,
	})
}
