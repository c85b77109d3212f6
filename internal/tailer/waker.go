package tailer

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// waker blocks the tailer between unsuccessful reads.
type waker interface {
	// wait returns after d, or earlier when ctx or stop are done or the
	// implementation has reason to believe the file changed.
	wait(ctx context.Context, d time.Duration, stop <-chan struct{}) error
	close() error
}

type pollWaker struct{}

func (pollWaker) wait(ctx context.Context, d time.Duration, stop <-chan struct{}) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-stop:
	case <-ctx.Done():
	}
	return nil
}

func (pollWaker) close() error { return nil }

// notifyWaker ends the wait early on write, rename, remove or attribute events
// for the watched file. The poll interval still bounds every wait.
type notifyWaker struct {
	watcher *fsnotify.Watcher
	events  chan fsnotify.Event
	errors  chan error
	logger  *zap.Logger
}

func newNotifyWaker(path string, logger *zap.Logger) (*notifyWaker, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	return &notifyWaker{
		watcher: watcher,
		events:  watcher.Events,
		errors:  watcher.Errors,
		logger:  logger,
	}, nil
}

func (n *notifyWaker) wait(ctx context.Context, d time.Duration, stop <-chan struct{}) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	for {
		select {
		case <-timer.C:
			return nil
		case <-stop:
			return nil
		case <-ctx.Done():
			return nil
		case event, ok := <-n.events:
			if !ok {
				n.events = nil
				continue
			}
			// Unlinking a file that is still open only changes its link count,
			// which arrives as Chmod. Remove follows once the handle is closed.
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) ||
				event.Has(fsnotify.Create) || event.Has(fsnotify.Chmod) {
				n.logger.Debug("file event", zap.String("event", event.Op.String()))
				return nil
			}
		case err, ok := <-n.errors:
			if !ok {
				n.errors = nil
				continue
			}
			return fmt.Errorf("%w: %w", ErrWaitInterrupted, err)
		}
	}
}

func (n *notifyWaker) close() error {
	return n.watcher.Close()
}
