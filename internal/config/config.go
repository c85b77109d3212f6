package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything needed to tail one file.
type Config struct {
	Path         string
	PollInterval time.Duration
	MaxDuration  time.Duration
	FromEnd      bool
	Backlog      int
	Notify       bool
	KeepLines    int
	MetricsAddr  string
	Log          LogConfig
}

// LogConfig controls the application's own diagnostics.
type LogConfig struct {
	Level string
	File  string
}

const (
	defaultConfigPath   = "~/.config/logtailer/config.toml"
	defaultPollInterval = time.Second
	defaultBacklog      = 10
	defaultKeepLines    = 5000
	defaultLogLevel     = "warn"
)

var validLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		PollInterval: defaultPollInterval,
		Backlog:      defaultBacklog,
		KeepLines:    defaultKeepLines,
		Log:          LogConfig{Level: defaultLogLevel},
	}
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Path             string `toml:"path"`
		PollIntervalMS   int    `toml:"poll_interval_ms"`
		MaxDurationHours int64  `toml:"max_duration_hours"`
		FromEnd          bool   `toml:"from_end"`
		Backlog          *int   `toml:"backlog"`
		Notify           bool   `toml:"notify"`
		KeepLines        int    `toml:"keep_lines"`
		MetricsAddr      string `toml:"metrics_addr"`
		Log              struct {
			Level string `toml:"level"`
			File  string `toml:"file"`
		} `toml:"log"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if p := strings.TrimSpace(raw.Path); p != "" {
		cfg.Path = mustExpand(p)
	}
	if raw.PollIntervalMS > 0 {
		cfg.PollInterval = time.Duration(raw.PollIntervalMS) * time.Millisecond
	}
	if raw.MaxDurationHours > 0 {
		cfg.MaxDuration = time.Duration(raw.MaxDurationHours) * time.Hour
	}
	cfg.FromEnd = raw.FromEnd
	if raw.Backlog != nil && *raw.Backlog >= 0 {
		cfg.Backlog = *raw.Backlog
	}
	cfg.Notify = raw.Notify
	if raw.KeepLines > 0 {
		cfg.KeepLines = raw.KeepLines
	}
	cfg.MetricsAddr = strings.TrimSpace(raw.MetricsAddr)

	if level := strings.ToLower(strings.TrimSpace(raw.Log.Level)); level != "" {
		cfg.Log.Level = level
	}
	if f := strings.TrimSpace(raw.Log.File); f != "" {
		cfg.Log.File = mustExpand(f)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings that cannot be used.
func (c Config) Validate() error {
	if _, ok := validLevels[c.Log.Level]; !ok {
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", c.PollInterval)
	}
	if c.MaxDuration < 0 {
		return fmt.Errorf("max duration must not be negative, got %s", c.MaxDuration)
	}
	return nil
}

// TailBacklog returns the backlog to hand to the tailer: every existing line
// unless FromEnd is set.
func (c Config) TailBacklog() int {
	if !c.FromEnd {
		return -1
	}
	return max(c.Backlog, 0)
}

// ExpandPath resolves "~" and makes path absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
