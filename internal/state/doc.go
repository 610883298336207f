// Package state provides the thread-safe snapshot store shared by the
// notification poller, the optimistic mutation call sites, and the UI.
//
// The Store follows a producer-consumer pattern: the poller and user
// actions write through typed mutators, the UI reads immutable snapshots on
// its own cadence. An RWMutex guards access and both sides work on
// defensive copies, so a slow render never blocks a poll and vice versa.
//
// Failure is an explicit part of the snapshot rather than a swallowed
// condition: LastError and ConsecutiveFailures let the UI show a subtle
// stale-data indicator instead of silently blank state.
package state
