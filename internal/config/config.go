package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields vibetui reads from its config file.
type Config struct {
	APIBase     string
	PollSeconds int
	Theme       string
}

const (
	defaultConfigPath  = "~/.config/vibetui/config.toml"
	defaultAPIBase     = "http://localhost:5000/api"
	defaultPollSeconds = 30
	defaultTheme       = "Dracula"
)

// Load locates and parses the config file, falling back to defaults when
// missing. A missing file is not an error; vibetui works out of the box
// against a local backend.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIBase:     defaultAPIBase,
		PollSeconds: defaultPollSeconds,
		Theme:       defaultTheme,
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	raw, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var parsed struct {
		APIBase     string `toml:"api_base"`
		PollSeconds int    `toml:"poll_seconds"`
		Theme       string `toml:"theme"`
	}
	if err := toml.Unmarshal(raw, &parsed); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if base := strings.TrimSpace(parsed.APIBase); base != "" {
		cfg.APIBase = base
	}
	if parsed.PollSeconds > 0 {
		cfg.PollSeconds = parsed.PollSeconds
	}
	if theme := strings.TrimSpace(parsed.Theme); theme != "" {
		cfg.Theme = theme
	}

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
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
