package tailer

// State is a phase of a tailer run. The terminal states double as the reason
// a run ended.
type State int32

const (
	StateIdle State = iota
	StateStarting
	StatePolling
	StateSleeping
	StateNotFound
	StateFileGone
	StateTimedOut
	StateStopped
	StateFailed
	StateClosed
)

var stateNames = [...]string{
	StateIdle:     "idle",
	StateStarting: "starting",
	StatePolling:  "polling",
	StateSleeping: "sleeping",
	StateNotFound: "not_found",
	StateFileGone: "file_gone",
	StateTimedOut: "timed_out",
	StateStopped:  "stopped",
	StateFailed:   "failed",
	StateClosed:   "closed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether s ends a run.
func (s State) Terminal() bool {
	switch s {
	case StateNotFound, StateFileGone, StateTimedOut, StateStopped, StateFailed:
		return true
	}
	return false
}
