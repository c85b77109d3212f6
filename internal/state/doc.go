// Package state provides thread-safe state sharing between a running tailer
// and the UI.
//
// # Overview
//
// Store is registered on a tailer as an observer. Every line, lifecycle event
// and exception is recorded under a write lock; the UI reads copies through
// Snapshot on its own schedule. The tailer phase, which has no callback, is
// copied in by the app poller through SetState.
//
// # Architecture
//
//	Tailer goroutine:              UI goroutine:
//	┌────────────────┐            ┌──────────────────┐
//	│ OnLine()       │            │                  │
//	│ OnException()  │───────────→│ store.Snapshot() │
//	│ OnFileRemoved()│  (mutex)   │      ↓           │
//	└────────────────┘            │  render          │
//	                              └──────────────────┘
//	Poller goroutine:                      ↑
//	┌────────────────┐                     │
//	│ SetState()     │─────────────────────┘
//	└────────────────┘
//
// # Core Types
//
// Store:
//   - implements tailer.Observer
//   - sync.RWMutex: observer callbacks and SetState write, Snapshot reads
//   - usable as a zero value, which keeps DefaultKeep lines
//
// Snapshot:
//   - Path, State and Reason of the run
//   - Lines: the most recent lines, oldest first
//   - TotalLines, Dropped: lines seen, and how many fell out of Lines
//   - WarnLines, ErrorLines: lines whose level token is WARN/WARNING or ERROR/FATAL
//   - LastError, ErrorCount: the latest exception and how many arrived
//   - NotFound, Removed: lifecycle flags
//   - LastLineAt, LastUpdated: timestamps for idle detection and display
//
// # Helpers
//
// Finished reports whether the run has a terminal reason. IsQuiet reports
// whether no line arrived within a given duration; the viewer uses it to show
// an idle file.
//
//	snap := store.Snapshot()
//	if !snap.Finished() && snap.IsQuiet(30*time.Second, time.Now()) {
//		// following, but nothing new for a while
//	}
//
// # Memory
//
// Lines are kept in a logtail.Ring, so a Store never holds more than its keep
// limit (DefaultKeep for a zero Store) no matter how long the tail runs.
// TotalLines still counts every line seen.
//
// # Copying
//
// Snapshot copies the line slice and wraps LastError so callers can keep or
// mutate the result without touching the store.
//
// # Update Semantics
//
//	store.OnLine(line)
//	→ line pushed into the ring (oldest evicted when full)
//	→ TotalLines++, WarnLines/ErrorLines by level token
//	→ LastLineAt = LastUpdated = now
//
//	store.OnException(err)
//	→ LastError = err, ErrorCount++
//	→ lines and lifecycle flags unchanged
//
//	store.SetState(current, reason)
//	→ only touches LastUpdated when something changed
//
// Exceptions never clear earlier lines; the viewer keeps showing what was
// read before the failure next to the error.
//
// # Usage Example
//
//	store := state.NewStore(path, 5000)
//	t := tailer.New(path)
//	t.AddObserver(store)
//	go t.Run(ctx)
//
//	// elsewhere, on a ticker
//	store.SetState(t.State(), t.Reason())
//	snap := store.Snapshot()
//	fmt.Printf("%s: %d lines, %d errors\n", snap.Path, snap.TotalLines, snap.ErrorLines)
package state
