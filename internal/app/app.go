package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/five82/logtailer/internal/config"
	"github.com/five82/logtailer/internal/logtail"
	"github.com/five82/logtailer/internal/metrics"
	"github.com/five82/logtailer/internal/prefs"
	"github.com/five82/logtailer/internal/state"
	"github.com/five82/logtailer/internal/tailer"
	"github.com/five82/logtailer/internal/ui"
)

// Options configure a logtailer run.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/logtailer/prefs.toml
	Overrides  Overrides
	TUI        bool
	Color      bool
	Stdout     io.Writer
	Stderr     io.Writer
}

// Overrides are command-line values applied on top of the config file. Nil
// fields leave the config value alone.
type Overrides struct {
	Path         *string
	PollInterval *time.Duration
	MaxHours     *int64
	FromEnd      *bool
	Backlog      *int
	Notify       *bool
	MetricsAddr  *string
	LogLevel     *string
	LogFile      *string
}

// Apply writes the set overrides into cfg.
func (o Overrides) Apply(cfg *config.Config) error {
	if o.Path != nil {
		p, err := config.ExpandPath(*o.Path)
		if err != nil {
			return fmt.Errorf("tail path: %w", err)
		}
		cfg.Path = p
	}
	if o.PollInterval != nil {
		cfg.PollInterval = *o.PollInterval
	}
	if o.MaxHours != nil {
		cfg.MaxDuration = time.Duration(max(*o.MaxHours, 0)) * time.Hour
	}
	if o.FromEnd != nil {
		cfg.FromEnd = *o.FromEnd
	}
	if o.Backlog != nil {
		cfg.Backlog = *o.Backlog
		cfg.FromEnd = true
	}
	if o.Notify != nil {
		cfg.Notify = *o.Notify
	}
	if o.MetricsAddr != nil {
		cfg.MetricsAddr = *o.MetricsAddr
	}
	if o.LogLevel != nil {
		cfg.Log.Level = strings.ToLower(strings.TrimSpace(*o.LogLevel))
	}
	if o.LogFile != nil {
		cfg.Log.File = *o.LogFile
	}
	return nil
}

// ErrNoPath is returned when neither the config nor the command line names a file.
var ErrNoPath = errors.New("no file to tail: pass a path or set path in the config")

// Run tails the configured file until it ends or ctx is cancelled. Problems
// with the file itself are reported through the printer or the UI; Run
// returns an error for bad configuration, or when the file could not be
// tailed at all.
func Run(ctx context.Context, opts Options) error {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := opts.Overrides.Apply(&cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if cfg.Path == "" {
		return ErrNoPath
	}

	logger, err := newLogger(cfg.Log, opts.TUI, opts.Stderr)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	tl := tailer.New(cfg.Path,
		tailer.WithLogger(logger),
		tailer.WithPollInterval(cfg.PollInterval),
		tailer.WithMaxDuration(cfg.MaxDuration),
		tailer.WithWriteNotify(cfg.Notify),
		tailer.WithBacklog(cfg.TailBacklog()),
	)

	store := state.NewStore(cfg.Path, cfg.KeepLines)
	tl.AddObserver(store)

	var server *http.Server
	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		observer, err := metrics.NewObserver(reg, cfg.Path)
		if err != nil {
			return err
		}
		tl.AddObserver(observer)

		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler(reg))
		server = &http.Server{Addr: cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	}

	if !opts.TUI {
		printer := &Printer{Out: opts.Stdout, Err: opts.Stderr, Path: cfg.Path, Logger: logger}
		if opts.Color {
			h := logtail.DefaultHighlighter()
			printer.Highlighter = &h
		}
		tl.AddObserver(printer)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)

	StartPoller(gctx, store, tl, defaultPollInterval)

	g.Go(func() error {
		if !opts.TUI {
			defer cancel()
		}
		err := tl.Run(gctx)
		refresh(store, tl)
		return err
	})

	if opts.TUI {
		g.Go(func() error {
			defer cancel()
			return ui.Run(gctx, ui.Options{
				Store:     store,
				Prefs:     prefs.Load(opts.PrefsPath),
				PrefsPath: opts.PrefsPath,
			})
		})
	}

	if server != nil {
		g.Go(func() error {
			logger.Info("serving metrics", zap.String("addr", server.Addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, done := context.WithTimeout(context.Background(), 3*time.Second)
			defer done()
			return server.Shutdown(shutdownCtx)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	switch reason := tl.Reason(); reason {
	case tailer.StateNotFound, tailer.StateFailed:
		return fmt.Errorf("tail %s: %s", cfg.Path, reason)
	}
	return nil
}
