package app

import (
	"context"
	"time"

	"github.com/five82/logtailer/internal/state"
	"github.com/five82/logtailer/internal/tailer"
)

const defaultPollInterval = 200 * time.Millisecond

// statusSource is the part of a Tailer the poller reads.
type statusSource interface {
	State() tailer.State
	Reason() tailer.State
}

// StartPoller launches a background goroutine that copies the tailer phase
// into the store at a fixed cadence. It returns immediately.
func StartPoller(ctx context.Context, store *state.Store, src statusSource, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			refresh(store, src)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

func refresh(store *state.Store, src statusSource) {
	store.SetState(src.State(), src.Reason())
}
