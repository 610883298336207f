package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vibesocial/vibetui/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	sessionPath := flag.String("session", "", "override session path (optional)")
	pollSeconds := flag.Int("poll", 0, "notification poll interval in seconds (optional, defaults to 30s)")
	login := flag.Bool("login", false, "log in with -email and -password, then exit")
	register := flag.Bool("register", false, "create an account with -username, -email and -password, then exit")
	email := flag.String("email", "", "account email for -login or -register")
	password := flag.String("password", "", "account password for -login or -register")
	username := flag.String("username", "", "account username for -register")
	bio := flag.String("bio", "", "profile bio for -register (optional)")
	logout := flag.Bool("logout", false, "clear the stored session, then exit")
	post := flag.Bool("post", false, "publish a post from -caption and/or -media, then exit")
	story := flag.Bool("story", false, "publish a story from -media, then exit")
	reel := flag.Bool("reel", false, "publish a reel from -media with an optional -caption, then exit")
	caption := flag.String("caption", "", "caption for -post or -reel")
	media := flag.String("media", "", "local media file for -post, -story or -reel")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath:  *configPath,
		SessionPath: *sessionPath,
		Logout:      *logout,
	}
	if poll := *pollSeconds; poll > 0 {
		opts.PollEvery = poll
	}
	if *login {
		if *email == "" || *password == "" {
			fmt.Fprintln(os.Stderr, "vibetui: -login requires -email and -password")
			return 2
		}
		opts.Email = *email
		opts.Password = *password
	}
	if *register {
		if *username == "" || *email == "" || *password == "" {
			fmt.Fprintln(os.Stderr, "vibetui: -register requires -username, -email and -password")
			return 2
		}
		opts.Register = true
		opts.Username = *username
		opts.Bio = *bio
		opts.Email = *email
		opts.Password = *password
	}
	if (*story || *reel) && *media == "" {
		fmt.Fprintln(os.Stderr, "vibetui: -story and -reel require -media")
		return 2
	}
	if *post && *caption == "" && *media == "" {
		fmt.Fprintln(os.Stderr, "vibetui: -post requires -caption or -media")
		return 2
	}
	opts.PublishPost = *post
	opts.PublishStory = *story
	opts.PublishReel = *reel
	opts.Caption = *caption
	opts.Media = *media

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "vibetui: %v\n", err)
		return 1
	}
	return 0
}
