// Package tailer follows a single growing text file and delivers each new
// line to a set of observers.
//
// # Overview
//
// A Tailer opens the file once and then polls it: read a line, hand it to
// every observer, and when nothing new is available sleep for the poll
// interval before trying again. The open handle never prevents the file from
// being deleted (on Windows the file is opened with FILE_SHARE_DELETE). The
// run ends when:
//
//   - the file cannot be opened (OnFileNotFound)
//   - the file disappears while being tailed (OnFileRemoved)
//   - RequestStop is called or the context is cancelled
//   - the optional deadline has passed at an idle point
//   - a read or stat fails (OnException)
//
// The reason is available from Reason once Run returns. Run itself only fails
// with ErrAlreadyStarted; a Tailer is single-use.
//
// # Components
//
//   - tailer.go: Tailer, options, setters and the run loop
//   - observer.go: Observer interface, Funcs adapter and the registry
//   - reader.go: line splitting over the open handle
//   - waker.go: idle waits, plain timer or fsnotify-assisted
//   - open_windows.go, open_other.go: share-delete open per platform
//   - state.go, errors.go: run states, sentinels and ReadError
//
// # Run Loop
//
//	Idle ─> Starting ──open fails──> NotFound
//	           │
//	           ├─ backlog (from-end mode only)
//	           ▼
//	     ┌─> Polling ──line──> OnLine ─┐
//	     │     │                       │
//	     │     └─no line─> Sleeping ───┤
//	     │                             │
//	     └─────────────────────────────┘
//	           │
//	           ├─ file gone ──> drain ──> OnFileRemoved ──> FileGone
//	           ├─ stop / ctx ─────────────────────────────> Stopped
//	           ├─ deadline (checked after a sleep) ───────> TimedOut
//	           └─ read/stat error ──> OnException ───────> Failed
//
// Every terminal state is followed by Closed once the handle is released. A
// failure to close the handle is reported through OnException but does not
// change the reason.
//
// # Usage
//
//	t := tailer.New("/var/log/app.log",
//		tailer.WithPollInterval(500*time.Millisecond),
//		tailer.WithLogger(logger))
//	t.AddObserver(&tailer.Funcs{
//		Line:        func(line string) { fmt.Println(line) },
//		FileRemoved: func() { log.Print("log removed") },
//	})
//	go t.Run(ctx)
//
// # Delivery
//
// Every complete line is delivered once to each observer registered at the
// time it is read, in file order. A line without its terminator is held until
// the terminator arrives; it is flushed only when the file is removed. Lines
// end at "\n" with an optional preceding "\r" and are decoded as UTF-8, with
// invalid bytes replaced by U+FFFD.
//
// When the file is removed, whatever is still readable through the open
// handle is delivered before OnFileRemoved.
//
// # From-End Mode
//
// WithBacklog(n) consumes the content present at start and delivers only its
// last n lines, then follows new writes as usual. The backlog is read through
// the same handle as the live tail, so no line is lost or repeated at the
// boundary. A stop requested before or during the backlog ends the run
// without delivering it.
//
// # Write Notifications
//
// WithWriteNotify(true) watches the file with fsnotify so an idle wait ends as
// soon as the file is written, renamed, removed or has its attributes changed.
// The poll interval still bounds every wait. Watcher errors are reported as
// OnException wrapping ErrWaitInterrupted and the run continues. Notifications
// only apply to the operating system filesystem; if the watcher cannot be
// created the tailer logs a warning and polls.
//
// # Errors
//
//   - ErrAlreadyStarted: Run or a setter called after the run began
//   - *ReadError: open, read, stat or close failed; Op and Path say which
//   - ErrWaitInterrupted: the idle wait failed; not fatal
//
// All of them work with errors.Is and errors.As.
//
// # Concurrency
//
// Run blocks and belongs on its own goroutine. AddObserver, RemoveObserver and
// RequestStop are safe from any goroutine. Setters must be called before Run;
// afterwards they return ErrAlreadyStarted. Observers are called on the Run
// goroutine, one at a time, so a slow observer slows the tail.
package tailer
