// Package ui renders the vibetui terminal interface with Bubble Tea.
//
// The Model polls the shared state store on a one second tick and renders
// whatever snapshot it last saw; it never talks to the network on the render
// path. User actions dispatch through the Service interface as Bubble Tea
// commands, so optimistic flips show up on the very next frame while the
// remote call settles in the background.
//
// Views: the feed (default), the stories strip, and search. The notification
// panel is an overlay tied to the store's panel-open flag, which also pauses
// background polling while it is up.
package ui
