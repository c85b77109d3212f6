package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/five82/logtailer/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "logtailer: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var opts app.Options

	cmd := &cobra.Command{
		Use:   "logtailer [path]",
		Short: "Follow a growing log file",
		Long: `logtailer prints lines appended to a file until the file is removed,
the optional time limit passes, or it is interrupted. The file is never
held open in a way that prevents deleting it.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides, err := overridesFromFlags(cmd.Flags(), args)
			if err != nil {
				return err
			}
			opts.Overrides = overrides
			return app.Run(cmd.Context(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/logtailer/config.toml)")
	f.StringVar(&opts.PrefsPath, "prefs", "", "viewer preferences file (default ~/.config/logtailer/prefs.toml)")
	f.BoolVar(&opts.TUI, "tui", false, "show an interactive viewer instead of printing lines")
	f.BoolVar(&opts.Color, "color", false, "highlight timestamps and levels when printing")
	f.Int("poll", 0, "poll interval in milliseconds")
	f.Int64("max-hours", 0, "stop after this many hours once the file is idle (0 = unlimited)")
	f.Bool("from-end", false, "skip existing content except the last --lines lines")
	f.IntP("lines", "n", 10, "existing lines to show; implies --from-end")
	f.Bool("notify", false, "wake up on filesystem events instead of waiting a full poll interval")
	f.String("metrics-addr", "", "serve Prometheus metrics on this address")
	f.String("log-level", "", "debug, info, warn or error")
	f.String("log-file", "", "write diagnostics to this file")
	return cmd
}

// overridesFromFlags turns explicitly set flags into config overrides.
func overridesFromFlags(f *pflag.FlagSet, args []string) (app.Overrides, error) {
	var o app.Overrides
	if len(args) == 1 {
		o.Path = &args[0]
	}

	if f.Changed("poll") {
		ms, err := f.GetInt("poll")
		if err != nil {
			return o, err
		}
		if ms <= 0 {
			return o, fmt.Errorf("--poll must be positive, got %d", ms)
		}
		d := time.Duration(ms) * time.Millisecond
		o.PollInterval = &d
	}
	if f.Changed("max-hours") {
		hours, err := f.GetInt64("max-hours")
		if err != nil {
			return o, err
		}
		o.MaxHours = &hours
	}
	if f.Changed("from-end") {
		fromEnd, err := f.GetBool("from-end")
		if err != nil {
			return o, err
		}
		o.FromEnd = &fromEnd
	}
	if f.Changed("lines") {
		n, err := f.GetInt("lines")
		if err != nil {
			return o, err
		}
		o.Backlog = &n
	}
	if f.Changed("notify") {
		notify, err := f.GetBool("notify")
		if err != nil {
			return o, err
		}
		o.Notify = &notify
	}
	for name, dst := range map[string]**string{
		"metrics-addr": &o.MetricsAddr,
		"log-level":    &o.LogLevel,
		"log-file":     &o.LogFile,
	} {
		if !f.Changed(name) {
			continue
		}
		v, err := f.GetString(name)
		if err != nil {
			return o, err
		}
		*dst = &v
	}
	return o, nil
}
