package tailer

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyStarted is returned by Run and the setters once a run began.
	ErrAlreadyStarted = errors.New("tailer already started")
	// ErrWaitInterrupted marks a failure while idling between polls. The run continues.
	ErrWaitInterrupted = errors.New("wait interrupted")
)

// ReadError describes a failed file operation during a run.
type ReadError struct {
	Op   string // open, read, stat or close
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }
