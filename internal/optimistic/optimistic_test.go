package optimistic

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// flag is a mutex-guarded boolean standing in for a piece of local state.
type flag struct {
	mu sync.Mutex
	on bool
}

func (f *flag) set(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.on = v
}

func (f *flag) get() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.on
}

func TestRun_AppliesLocallyBeforeRemoteResolves(t *testing.T) {
	var state flag
	release := make(chan struct{})

	done := Run(context.Background(), Toggle{
		Current: false,
		Apply:   state.set,
		Set: func(ctx context.Context) error {
			<-release
			return nil
		},
		Unset: func(ctx context.Context) error { return nil },
	})

	// The remote call is still pending, yet local state already flipped.
	if !state.get() {
		t.Fatalf("local state = false while call pending, want true (optimistic)")
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !state.get() {
		t.Fatalf("local state reverted on success, want true")
	}
}

func TestRun_RevertsExactlyOnFailure(t *testing.T) {
	var state flag

	done := Run(context.Background(), Toggle{
		Current: false,
		Apply:   state.set,
		Set: func(ctx context.Context) error {
			return errors.New("server said no")
		},
		Unset: func(ctx context.Context) error { return nil },
	})

	if err := <-done; err == nil {
		t.Fatalf("Run returned nil error, want failure")
	}
	if state.get() {
		t.Fatalf("local state = true after failed set, want exact revert to false")
	}
}

func TestRun_CallsUnsetWhenCurrentlyOn(t *testing.T) {
	var state flag
	state.set(true)

	var calledSet, calledUnset bool
	var mu sync.Mutex

	done := Run(context.Background(), Toggle{
		Current: true,
		Apply:   state.set,
		Set: func(ctx context.Context) error {
			mu.Lock()
			calledSet = true
			mu.Unlock()
			return nil
		},
		Unset: func(ctx context.Context) error {
			mu.Lock()
			calledUnset = true
			mu.Unlock()
			return nil
		},
	})

	if err := <-done; err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if calledSet || !calledUnset {
		t.Fatalf("set=%v unset=%v, want only unset for a true->false flip", calledSet, calledUnset)
	}
	if state.get() {
		t.Fatalf("local state = true, want false after unset")
	}
}

func TestRun_RecoverRunsAfterRevert(t *testing.T) {
	var state flag
	order := make(chan string, 3)

	done := Run(context.Background(), Toggle{
		Current: false,
		Apply: func(next bool) {
			state.set(next)
			if !next {
				order <- "revert"
			}
		},
		Set: func(ctx context.Context) error {
			return errors.New("boom")
		},
		Unset: func(ctx context.Context) error { return nil },
		Recover: func(ctx context.Context) error {
			order <- "recover"
			return errors.New("refetch also failed") // ignored
		},
	})

	if err := <-done; err == nil {
		t.Fatalf("Run returned nil error, want failure")
	}
	if first := <-order; first != "revert" {
		t.Fatalf("first action = %q, want revert before recover", first)
	}
	if second := <-order; second != "recover" {
		t.Fatalf("second action = %q, want recover", second)
	}
}

func TestRun_MissingHooksError(t *testing.T) {
	done := Run(context.Background(), Toggle{})
	select {
	case err := <-done:
		if err == nil {
			t.Fatalf("Run with no hooks returned nil error, want error")
		}
	case <-time.After(time.Second):
		t.Fatalf("Run with no hooks never resolved")
	}
}

func TestRun_RapidTogglesLastApplyWins(t *testing.T) {
	var state flag
	releaseFirst := make(chan struct{})

	// First flip: off -> on, remote call held open.
	first := Run(context.Background(), Toggle{
		Current: false,
		Apply:   state.set,
		Set: func(ctx context.Context) error {
			<-releaseFirst
			return nil
		},
		Unset: func(ctx context.Context) error { return nil },
	})

	// Second flip before the first resolves: on -> off.
	second := Run(context.Background(), Toggle{
		Current: true,
		Apply:   state.set,
		Set:     func(ctx context.Context) error { return nil },
		Unset:   func(ctx context.Context) error { return nil },
	})

	if err := <-second; err != nil {
		t.Fatalf("second Run returned error: %v", err)
	}
	close(releaseFirst)
	if err := <-first; err != nil {
		t.Fatalf("first Run returned error: %v", err)
	}

	// Both requests were sent independently; the last-applied local state
	// (off) stands because both calls succeeded.
	if state.get() {
		t.Fatalf("local state = true, want last-applied false")
	}
}
