package app

import (
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/five82/logtailer/internal/config"
)

// newLogger builds the application logger. Without a log file, plain mode
// logs to stderr and TUI mode discards logs so they never reach the screen.
func newLogger(cfg config.LogConfig, tui bool, stderr io.Writer) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	if cfg.File != "" {
		zcfg := zap.NewProductionConfig()
		zcfg.Level = zap.NewAtomicLevelAt(level)
		zcfg.OutputPaths = []string{cfg.File}
		zcfg.ErrorOutputPaths = []string{cfg.File}
		zcfg.Sampling = nil
		return zcfg.Build()
	}
	if tui {
		return zap.NewNop(), nil
	}

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.Lock(zapcore.AddSync(stderr)),
		level,
	)
	return zap.New(core), nil
}
