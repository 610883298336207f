// Package vibe provides the HTTP client for the Vibe social API.
//
// # Overview
//
// The client covers the full REST surface the terminal app consumes:
// authentication, profiles, the follow graph, the feed and its likes and
// comments, notifications, search, reels, stories, and the CDN upload
// configuration handoff. Wire types mirror the backend schema, with every
// ID-like field routed through the identity package so heterogeneous ID
// representations compare consistently.
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation
//   - Attach Authorization: Bearer <token> when the token source yields one
//   - Carry a single global 10-minute timeout (sized for media-heavy
//     requests rather than tuned per operation)
//   - Validate outgoing payloads with go-playground/validator before any
//     bytes hit the wire
//
// # Error Handling
//
// Server failures decode the backend's {message} envelope into *APIError,
// whose UserMessage method yields display-ready text with a generic
// fallback when the server said nothing useful. Transport and decode
// failures are wrapped with fmt.Errorf and %w.
//
// The client performs no retries; callers decide reconciliation policy.
package vibe
