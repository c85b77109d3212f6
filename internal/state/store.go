package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/logtailer/internal/logtail"
	"github.com/five82/logtailer/internal/tailer"
)

// DefaultKeep is the number of recent lines a zero Store retains.
const DefaultKeep = 5000

// Snapshot represents the latest tail state available to the UI.
type Snapshot struct {
	Path        string
	State       tailer.State
	Reason      tailer.State
	Lines       []string // most recent lines, oldest first
	TotalLines  int
	Dropped     int // lines no longer kept in Lines
	WarnLines   int
	ErrorLines  int
	LastLineAt  time.Time
	LastError   error
	ErrorCount  int
	NotFound    bool
	Removed     bool
	LastUpdated time.Time
}

// Finished reports whether the tail run has ended.
func (s Snapshot) Finished() bool {
	return s.Reason.Terminal()
}

// IsQuiet reports whether no line arrived within d.
func (s Snapshot) IsQuiet(d time.Duration, now time.Time) bool {
	if s.LastLineAt.IsZero() {
		return true
	}
	return now.Sub(s.LastLineAt) > d
}

// Store records tail events for concurrent readers. It implements
// tailer.Observer so it can be registered directly on a Tailer.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	ring     *logtail.Ring
}

var _ tailer.Observer = (*Store)(nil)

// NewStore returns a Store for path keeping the last keep lines.
func NewStore(path string, keep int) *Store {
	if keep <= 0 {
		keep = DefaultKeep
	}
	return &Store{
		snapshot: Snapshot{Path: path},
		ring:     logtail.NewRing(keep),
	}
}

func (s *Store) lines() *logtail.Ring {
	if s.ring == nil {
		s.ring = logtail.NewRing(DefaultKeep)
	}
	return s.ring
}

// OnLine records a new line.
func (s *Store) OnLine(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines().Push(line)
	switch logtail.Level(line) {
	case "WARN", "WARNING":
		s.snapshot.WarnLines++
	case "ERROR", "FATAL":
		s.snapshot.ErrorLines++
	}
	now := time.Now()
	s.snapshot.TotalLines++
	s.snapshot.LastLineAt = now
	s.snapshot.LastUpdated = now
}

// OnFileNotFound records that the file could not be opened.
func (s *Store) OnFileNotFound() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.NotFound = true
	s.snapshot.LastUpdated = time.Now()
}

// OnFileRemoved records that the file went away.
func (s *Store) OnFileRemoved() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Removed = true
	s.snapshot.LastUpdated = time.Now()
}

// OnException records err as the most recent failure.
func (s *Store) OnException(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastError = err
	s.snapshot.ErrorCount++
	s.snapshot.LastUpdated = time.Now()
}

// SetState records the tailer phase and, once the run ended, its reason.
func (s *Store) SetState(current, reason tailer.State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot.State == current && s.snapshot.Reason == reason {
		return
	}
	s.snapshot.State = current
	s.snapshot.Reason = reason
	s.snapshot.LastUpdated = time.Now()
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.ring != nil {
		snap.Lines = s.ring.Lines()
		snap.Dropped = snap.TotalLines - s.ring.Len()
	}
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
