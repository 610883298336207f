package app

import (
	"context"
	"log"
	"time"

	"github.com/vibesocial/vibetui/internal/state"
	"github.com/vibesocial/vibetui/internal/vibe"
)

const defaultPollInterval = 30 * time.Second

// NotificationFetcher is the slice of the API the poller needs. Implemented
// by *vibe.Client.
type NotificationFetcher interface {
	FetchNotifications(ctx context.Context) ([]vibe.Notification, error)
}

// StartPoller launches a background goroutine that keeps the notification
// list bounded-stale: an immediate fetch on entry, then one per interval.
// Refreshes are suppressed while the notification panel is open so the
// visible list does not shift under the user. The goroutine exits when ctx
// is cancelled, which is the only teardown path; callers must cancel on
// logout or shutdown or the ticker leaks.
func StartPoller(ctx context.Context, store *state.Store, client NotificationFetcher, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		refreshNotifications(ctx, store, client)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if store.PanelOpen() {
					continue
				}
				refreshNotifications(ctx, store, client)
			}
		}
	}()
}

// refreshNotifications fetches the list once. Failures degrade silently to
// an empty list (recorded on the snapshot, logged for diagnostics) rather
// than surfacing an error to the user.
func refreshNotifications(ctx context.Context, store *state.Store, client NotificationFetcher) {
	items, err := client.FetchNotifications(ctx)
	if err != nil {
		store.SetNotifications(nil, err)
		log.Printf("notification poll failed: %v", err)
		return
	}
	store.SetNotifications(items, nil)
}
