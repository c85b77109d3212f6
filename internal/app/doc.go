// Package app wires configuration, the tailer and its observers together.
//
// # Overview
//
// Run is the composition root. It loads the TOML config, applies command-line
// overrides, builds a zap logger and a tailer.Tailer, and attaches observers:
//
//   - state.Store always records the run so the viewer and the poller can read it
//   - metrics.Observer counts lines and lifecycle events when metrics_addr is set
//   - Printer writes lines to stdout when the interactive viewer is off
//
// # Components
//
//   - app.go: Options, Overrides and Run
//   - poller.go: background goroutine copying the tailer phase into the store
//   - printer.go: stdout/stderr observer for plain mode
//   - logger.go: zap logger built from the [log] config section
//
// # Lifecycle
//
//	Run()
//	 ├─> config.Load() + Overrides.Apply() + Validate()
//	 ├─> newLogger()             file, stderr, or discarded in TUI mode
//	 ├─> tailer.New(...)         observers attached before start
//	 └─> errgroup
//	      ├─> tailer.Run()        ends on removal, deadline, stop or cancel
//	      ├─> StartPoller()       copies State/Reason into the store
//	      ├─> ui.Run()            only with --tui; quitting stops the tailer
//	      └─> metrics server      only with metrics_addr; shut down on exit
//
// In plain mode the run ends when the tailer finishes. In TUI mode it ends
// when the user quits, so the last lines stay on screen after the file is gone.
//
// # Overrides
//
// Overrides holds one pointer per setting. A nil field leaves the config value
// alone, so the CLI only sets fields for flags the user actually passed:
//
//	opts := app.Options{
//		Overrides: app.Overrides{Path: &path, LogLevel: &level},
//	}
//	err := app.Run(ctx, opts)
//
// Overrides.Backlog implies from-end mode. The log level is trimmed and
// lowercased the same way the config file value is.
//
// # Logging
//
// Diagnostics go through zap at the configured level (warn by default):
//
//   - log.file set: JSON lines to that file, in every mode
//   - plain mode: console encoding to stderr
//   - TUI mode without a file: discarded so the screen stays intact
//
// # Errors
//
// Run returns configuration and startup errors, plus an error when the file
// was never found or the tail failed. Removal, timeouts and interruption are
// normal endings:
//
//   - ErrNoPath: neither the config nor the command line named a file
//   - "invalid config: ...": validation failed after overrides
//   - "tail <path>: not_found" or "tail <path>: failed": the run's reason
//   - "metrics server: ...": the listener could not be started
//
// Problems with the file during the run (not found, removed, read failures)
// are printed to stderr by the Printer in plain mode and shown in the header
// by the viewer in TUI mode.
//
// # Usage Example
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//
//	level := "debug"
//	err := app.Run(ctx, app.Options{
//		ConfigPath: "", // ~/.config/logtailer/config.toml
//		Overrides: app.Overrides{
//			Path:     &path,
//			LogLevel: &level,
//		},
//		Color: true,
//	})
//	if err != nil {
//		fmt.Fprintf(os.Stderr, "logtailer: %v\n", err)
//		os.Exit(1)
//	}
//
// # Dependencies
//
//   - config: TOML settings with defaults
//   - tailer: the tail run itself
//   - state: shared store read by the poller and the viewer
//   - metrics: optional Prometheus observer and handler
//   - logtail: line highlighting for --color
//   - prefs, ui: the interactive viewer and its saved preferences
//
// # Testing
//
// Options.Stdout and Options.Stderr replace the process streams, so tests run
// Run against a temporary file and inspect the captured output.
package app
