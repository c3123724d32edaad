// Package logging builds the zap logger used across the application.
//
// The interactive view owns the terminal, so it logs only to a rotated JSON
// file. Non-interactive commands add a console core on stderr.
package logging

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls level and file rotation
type Config struct {
	Level      string `mapstructure:"level" toml:"level"`
	File       string `mapstructure:"file" toml:"file"` // empty disables file output
	MaxSize    int    `mapstructure:"max_size" toml:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups" toml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" toml:"max_age"` // days
	Compress   bool   `mapstructure:"compress" toml:"compress"`
}

// DefaultConfig logs info and above to ./particle-hero.log
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		File:       "particle-hero.log",
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     7,
	}
}

// Validate checks the level name
func (c Config) Validate() error {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(c.Level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Level, err)
	}
	return nil
}

// New builds a logger writing JSON to the rotated file and, when console is
// non-nil, human-readable lines to console
// The returned cleanup flushes the logger and restores the standard library logger
func New(cfg Config, console zapcore.WriteSyncer) (*zap.Logger, func() error, error) {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02T15:04:05.000Z07:00")
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	var cores []zapcore.Core
	var rotator *lumberjack.Logger
	if cfg.File != "" {
		rotator = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(rotator), level))
	}
	if console != nil {
		conCfg := encCfg
		conCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(conCfg), console, level))
	}
	if len(cores) == 0 {
		return zap.NewNop(), func() error { return nil }, nil
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddStacktrace(zap.ErrorLevel)).Named("particle-hero")
	restore := zap.RedirectStdLog(logger)

	cleanup := func() error {
		restore()
		err := logger.Sync()
		if err != nil && benignSyncError(err) {
			err = nil
		}
		if rotator != nil {
			err = errors.Join(err, rotator.Close())
		}
		return err
	}
	return logger, cleanup, nil
}

// benignSyncError matches fsync failures on terminals and pipes
func benignSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "invalid argument") ||
		strings.Contains(msg, "inappropriate ioctl") ||
		strings.Contains(msg, "operation not supported")
}
