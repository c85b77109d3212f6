package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.PollInterval != defaultPollInterval {
		t.Fatalf("PollInterval = %v, want %v", cfg.PollInterval, defaultPollInterval)
	}
	if cfg.MaxDuration != 0 {
		t.Fatalf("MaxDuration = %v, want 0", cfg.MaxDuration)
	}
	if cfg.Backlog != defaultBacklog || cfg.KeepLines != defaultKeepLines {
		t.Fatalf("Backlog = %d KeepLines = %d", cfg.Backlog, cfg.KeepLines)
	}
	if cfg.Log.Level != defaultLogLevel {
		t.Fatalf("Log.Level = %q, want %q", cfg.Log.Level, defaultLogLevel)
	}
	if cfg.Path != "" {
		t.Fatalf("Path = %q, want empty", cfg.Path)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
path = "  ~/logs/app.log  "
poll_interval_ms = 250
max_duration_hours = 3
from_end = true
backlog = 0
notify = true
keep_lines = 100
metrics_addr = " 127.0.0.1:9100 "

[log]
level = " DEBUG "
file = "~/logtailer.log"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Path != filepath.Join(home, "logs/app.log") {
		t.Fatalf("Path = %q, want it under HOME %q", cfg.Path, home)
	}
	if cfg.PollInterval != 250*time.Millisecond {
		t.Fatalf("PollInterval = %v, want 250ms", cfg.PollInterval)
	}
	if cfg.MaxDuration != 3*time.Hour {
		t.Fatalf("MaxDuration = %v, want 3h", cfg.MaxDuration)
	}
	if !cfg.FromEnd || !cfg.Notify {
		t.Fatalf("FromEnd = %v Notify = %v, want both true", cfg.FromEnd, cfg.Notify)
	}
	if cfg.Backlog != 0 {
		t.Fatalf("Backlog = %d, want explicit 0", cfg.Backlog)
	}
	if cfg.KeepLines != 100 {
		t.Fatalf("KeepLines = %d, want 100", cfg.KeepLines)
	}
	if cfg.MetricsAddr != "127.0.0.1:9100" {
		t.Fatalf("MetricsAddr = %q", cfg.MetricsAddr)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("Log.Level = %q, want debug", cfg.Log.Level)
	}
	if !strings.HasPrefix(cfg.Log.File, home) {
		t.Fatalf("Log.File = %q, want it under HOME %q", cfg.Log.File, home)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
path = "   "
poll_interval_ms = 0
keep_lines = -5

[log]
level = ""
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Path != "" {
		t.Fatalf("Path = %q, want empty", cfg.Path)
	}
	if cfg.PollInterval != defaultPollInterval || cfg.KeepLines != defaultKeepLines {
		t.Fatalf("PollInterval = %v KeepLines = %d", cfg.PollInterval, cfg.KeepLines)
	}
	if cfg.Backlog != defaultBacklog || cfg.Log.Level != defaultLogLevel {
		t.Fatalf("Backlog = %d Log.Level = %q", cfg.Backlog, cfg.Log.Level)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`path = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestLoad_InvalidLevelFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[log]\nlevel = \"chatty\"\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "invalid log level") {
		t.Fatalf("Load error = %v, want invalid log level", err)
	}
}

func TestTailBacklog(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want int
	}{
		{"from start", Config{Backlog: 10}, -1},
		{"from end", Config{FromEnd: true, Backlog: 10}, 10},
		{"from end no backlog", Config{FromEnd: true}, 0},
		{"from end negative", Config{FromEnd: true, Backlog: -4}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.TailBacklog(); got != tt.want {
				t.Errorf("TailBacklog() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/a/b")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("ExpandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
