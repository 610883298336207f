// Package app is the composition root for vibetui.
//
// # Overview
//
// Run wires configuration, the persisted session, the Vibe API client, the
// shared state store, the notification poller, and the terminal UI. User
// actions (follow, like, notification management, login/logout) live on
// Service so every mutation funnels through the session and state stores.
//
// # Notification polling
//
// StartPoller keeps a bounded-staleness view of the notification list:
//
//   - Idle: no session, no poller started
//   - Active: immediate fetch on entry, then one fetch per interval
//     (default 30s)
//   - Panel-Open: ticks are skipped while the panel is open; opening the
//     panel pre-marks everything read and issues the remote mark-read
//     calls concurrently
//
// The poller goroutine exits when the context is cancelled; nothing else
// stops it, so callers own that cancellation.
//
// # Optimistic mutations
//
// ToggleFollow and ToggleLike apply the local flip synchronously before the
// request leaves, revert exactly on failure, and reconcile with a refetch
// where the reverted state could itself be stale (full feed for likes, the
// full profile after any successful relationship change). Rapid toggles on
// one entity race intentionally: requests are not serialized and the last
// local application wins.
package app
