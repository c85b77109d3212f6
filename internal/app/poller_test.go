package app

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/five82/logtailer/internal/state"
	"github.com/five82/logtailer/internal/tailer"
)

type fakeSource struct {
	state  atomic.Int32
	reason atomic.Int32
}

func (f *fakeSource) State() tailer.State  { return tailer.State(f.state.Load()) }
func (f *fakeSource) Reason() tailer.State { return tailer.State(f.reason.Load()) }

func TestStartPoller_CopiesState(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := state.NewStore("x", 0)
	src := &fakeSource{}
	src.state.Store(int32(tailer.StateSleeping))

	StartPoller(ctx, store, src, 5*time.Millisecond)
	waitFor(t, func() bool { return store.Snapshot().State == tailer.StateSleeping })

	src.state.Store(int32(tailer.StateClosed))
	src.reason.Store(int32(tailer.StateFileGone))
	waitFor(t, func() bool { return store.Snapshot().Reason == tailer.StateFileGone })
}

func TestRefresh(t *testing.T) {
	store := state.NewStore("x", 0)
	src := &fakeSource{}
	src.state.Store(int32(tailer.StateClosed))
	src.reason.Store(int32(tailer.StateTimedOut))

	refresh(store, src)

	snap := store.Snapshot()
	if snap.State != tailer.StateClosed || snap.Reason != tailer.StateTimedOut {
		t.Fatalf("snapshot state = %v/%v, want closed/timed_out", snap.State, snap.Reason)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within 2s")
}
