// Package config loads vibetui's TOML configuration.
//
// The Load function resolves ~/.config/vibetui/config.toml unless an
// explicit path is given, and falls back to defaults when the file is
// missing so the app works out of the box against a local backend.
//
// Example config.toml:
//
//	api_base = "http://localhost:5000/api"
//	poll_seconds = 30
//	theme = "Dracula"
package config
