package tailer

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/five82/logtailer/internal/logtail"
)

const (
	// DefaultPollInterval is the wait between unsuccessful reads.
	DefaultPollInterval = time.Second
	// FromStart disables the backlog and delivers the whole file.
	FromStart = -1
)

// Tailer follows a single file and fans its lines out to observers.
//
// Configure a Tailer before calling Run; a Tailer runs at most once.
type Tailer struct {
	fs     afero.Fs
	logger *zap.Logger

	cfgMu sync.Mutex
	cfg   settings

	mu        sync.RWMutex
	observers []Observer

	// wakerFor replaces the idle waker when set.
	wakerFor func(settings) waker

	started  atomic.Bool
	stopOnce sync.Once
	stopCh   chan struct{}
	state    atomic.Int32
	reason   atomic.Int32
}

type settings struct {
	path         string
	pollInterval time.Duration
	maxDuration  time.Duration
	notify       bool
	backlog      int
}

// Option configures a Tailer at construction time.
type Option func(*Tailer)

// WithFs reads through fsys instead of the operating system.
func WithFs(fsys afero.Fs) Option {
	return func(t *Tailer) {
		if fsys != nil {
			t.fs = fsys
		}
	}
}

// WithLogger sets the logger used for lifecycle messages.
func WithLogger(logger *zap.Logger) Option {
	return func(t *Tailer) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithPollInterval sets the wait between unsuccessful reads.
func WithPollInterval(d time.Duration) Option {
	return func(t *Tailer) {
		if d > 0 {
			t.cfg.pollInterval = d
		}
	}
}

// WithMaxDuration stops the run once d elapsed and the file is idle. Zero means no limit.
func WithMaxDuration(d time.Duration) Option {
	return func(t *Tailer) {
		if d >= 0 {
			t.cfg.maxDuration = d
		}
	}
}

// WithWriteNotify wakes idle waits on filesystem events for the watched file.
// It only applies to the operating system filesystem.
func WithWriteNotify(enabled bool) Option {
	return func(t *Tailer) { t.cfg.notify = enabled }
}

// WithBacklog skips existing content except its last n lines. FromStart (the
// default) delivers the whole file.
func WithBacklog(n int) Option {
	return func(t *Tailer) {
		if n < 0 {
			n = FromStart
		}
		t.cfg.backlog = n
	}
}

// New returns a Tailer for path. The path may be set later with SetWatchedPath.
func New(path string, opts ...Option) *Tailer {
	t := &Tailer{
		fs:     afero.NewOsFs(),
		logger: zap.NewNop(),
		cfg: settings{
			path:         path,
			pollInterval: DefaultPollInterval,
			backlog:      FromStart,
		},
		stopCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Path returns the watched path.
func (t *Tailer) Path() string {
	t.cfgMu.Lock()
	defer t.cfgMu.Unlock()
	return t.cfg.path
}

// SetWatchedPath sets the file to tail.
func (t *Tailer) SetWatchedPath(path string) error {
	return t.configure(func(s *settings) { s.path = path })
}

// SetMaxDuration limits a run to the given number of hours. Zero or less means no limit.
func (t *Tailer) SetMaxDuration(hours int64) error {
	return t.SetTimeout(time.Duration(max(hours, 0)) * time.Hour)
}

// SetTimeout limits a run to d. Zero or less means no limit.
func (t *Tailer) SetTimeout(d time.Duration) error {
	return t.configure(func(s *settings) { s.maxDuration = max(d, 0) })
}

// SetPollInterval sets the wait between unsuccessful reads in milliseconds.
// Zero or less restores DefaultPollInterval.
func (t *Tailer) SetPollInterval(ms int) error {
	return t.configure(func(s *settings) {
		s.pollInterval = time.Duration(ms) * time.Millisecond
		if s.pollInterval <= 0 {
			s.pollInterval = DefaultPollInterval
		}
	})
}

func (t *Tailer) configure(apply func(*settings)) error {
	t.cfgMu.Lock()
	defer t.cfgMu.Unlock()
	if t.started.Load() {
		return ErrAlreadyStarted
	}
	apply(&t.cfg)
	return nil
}

// RequestStop asks the run to end. It wakes an idle wait but never interrupts
// a read; the loop exits at the top of its next iteration. Safe to call from
// any goroutine, any number of times.
func (t *Tailer) RequestStop() {
	t.stopOnce.Do(func() { close(t.stopCh) })
}

// State returns the current phase of the run.
func (t *Tailer) State() State { return State(t.state.Load()) }

// Reason returns the terminal state of a finished run, or StateIdle while
// the run has not ended.
func (t *Tailer) Reason() State { return State(t.reason.Load()) }

// Run tails the file until it is removed, the deadline passes at an idle
// point, RequestStop is called or ctx is cancelled. Failures are reported to
// observers, not returned; Run only fails with ErrAlreadyStarted.
func (t *Tailer) Run(ctx context.Context) error {
	cfg, err := t.begin()
	if err != nil {
		return err
	}
	defer t.setState(StateClosed)

	log := t.logger.With(zap.String("path", cfg.path))
	log.Info("tail started",
		zap.Duration("poll_interval", cfg.pollInterval),
		zap.Duration("max_duration", cfg.maxDuration))

	reason := t.tail(ctx, cfg, log)
	t.reason.Store(int32(reason))
	t.setState(reason)

	log.Info("tail finished", zap.Stringer("reason", reason))
	return nil
}

func (t *Tailer) begin() (settings, error) {
	t.cfgMu.Lock()
	defer t.cfgMu.Unlock()
	if !t.started.CompareAndSwap(false, true) {
		return settings{}, ErrAlreadyStarted
	}
	return t.cfg, nil
}

func (t *Tailer) tail(ctx context.Context, cfg settings, log *zap.Logger) State {
	startedAt := time.Now()
	t.setState(StateStarting)

	file, err := t.open(cfg.path)
	if err != nil {
		log.Debug("open failed", zap.Error(err))
		t.notifyFileNotFound()
		return StateNotFound
	}
	defer func() {
		if err := file.Close(); err != nil {
			t.notifyException(&ReadError{Op: "close", Path: cfg.path, Err: err})
		}
	}()

	lines := newLineReader(file)
	if cfg.backlog >= 0 {
		if t.stopRequested(ctx) {
			return StateStopped
		}
		stopped, err := t.deliverBacklog(ctx, lines, cfg.backlog)
		if err != nil {
			t.notifyException(&ReadError{Op: "read", Path: cfg.path, Err: err})
			return StateFailed
		}
		if stopped {
			return StateStopped
		}
	}

	w := t.newWaker(cfg, log)
	defer func() {
		if err := w.close(); err != nil {
			log.Debug("close watcher", zap.Error(err))
		}
	}()

	timedOut := false
	for {
		if timedOut {
			return StateTimedOut
		}
		if t.stopRequested(ctx) {
			return StateStopped
		}

		gone, err := t.fileGone(cfg.path)
		if err != nil {
			t.notifyException(&ReadError{Op: "stat", Path: cfg.path, Err: err})
			return StateFailed
		}
		if gone {
			t.drain(lines, cfg.path)
			t.notifyFileRemoved()
			return StateFileGone
		}

		t.setState(StatePolling)
		line, pending, err := lines.next()
		if err != nil {
			t.notifyException(&ReadError{Op: "read", Path: cfg.path, Err: err})
			return StateFailed
		}
		if !pending {
			t.setState(StateSleeping)
			if err := w.wait(ctx, cfg.pollInterval, t.stopCh); err != nil {
				log.Debug("idle wait interrupted", zap.Error(err))
				t.notifyException(err)
			}
			if cfg.maxDuration > 0 && time.Since(startedAt) > cfg.maxDuration {
				timedOut = true
			}
		}

		if pending {
			t.notifyLine(line)
		}
	}
}

func (t *Tailer) open(path string) (afero.File, error) {
	if strings.TrimSpace(path) == "" {
		return nil, &ReadError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}

	var (
		file afero.File
		err  error
	)
	if _, ok := t.fs.(*afero.OsFs); ok {
		file, err = openShared(path)
	} else {
		file, err = t.fs.Open(path)
	}
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err == nil && info.IsDir() {
		_ = file.Close()
		return nil, &ReadError{Op: "open", Path: path, Err: errors.New("is a directory")}
	}
	return file, nil
}

// deliverBacklog consumes everything written so far and delivers only its
// last n complete lines. Nothing is delivered when a stop arrives first.
func (t *Tailer) deliverBacklog(ctx context.Context, lines *lineReader, n int) (stopped bool, err error) {
	ring := logtail.NewRing(n)
	for {
		if t.stopRequested(ctx) {
			return true, nil
		}
		line, ok, err := lines.next()
		if err != nil {
			return false, err
		}
		if !ok {
			break
		}
		ring.Push(line)
	}
	for _, line := range ring.Lines() {
		t.notifyLine(line)
	}
	return false, nil
}

// drain delivers whatever is still readable through the open cursor after
// the file was removed, including an unterminated last line.
func (t *Tailer) drain(lines *lineReader, path string) {
	for {
		line, ok, err := lines.next()
		if err != nil {
			t.notifyException(&ReadError{Op: "read", Path: path, Err: err})
			return
		}
		if !ok {
			break
		}
		t.notifyLine(line)
	}
	if line, ok := lines.flush(); ok {
		t.notifyLine(line)
	}
}

func (t *Tailer) fileGone(path string) (bool, error) {
	_, err := t.fs.Stat(path)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, fs.ErrNotExist):
		return true, nil
	default:
		return false, err
	}
}

func (t *Tailer) newWaker(cfg settings, log *zap.Logger) waker {
	if t.wakerFor != nil {
		return t.wakerFor(cfg)
	}
	if !cfg.notify {
		return pollWaker{}
	}
	if _, ok := t.fs.(*afero.OsFs); !ok {
		log.Debug("write notifications need the os filesystem; polling only")
		return pollWaker{}
	}
	w, err := newNotifyWaker(cfg.path, log)
	if err != nil {
		log.Warn("write notifications unavailable; polling only", zap.Error(err))
		return pollWaker{}
	}
	return w
}

func (t *Tailer) stopRequested(ctx context.Context) bool {
	select {
	case <-t.stopCh:
		return true
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

func (t *Tailer) setState(s State) { t.state.Store(int32(s)) }
