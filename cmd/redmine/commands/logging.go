package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/fivetwenty-io/redmine-client/internal/constants"
	"github.com/fivetwenty-io/redmine-client/pkg/redmine"
)

// LogConfig holds logging configuration.
type LogConfig struct {
	Level      string // debug, info, warn, error
	FilePath   string // empty logs to stderr
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultLogConfig returns the logging defaults of the CLI.
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:      "warn",
		MaxSizeMB:  constants.LogMaxSizeMB,
		MaxBackups: constants.LogMaxBackups,
		MaxAgeDays: constants.LogMaxAgeDays,
		Compress:   true,
	}
}

var cliLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// SetupLogging installs the CLI logger. The returned cleanup closes the log
// file, if any.
func SetupLogging(cfg LogConfig) (func() error, error) {
	var (
		writer  io.Writer
		cleanup func() error
	)

	if cfg.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), constants.ConfigDirPerm); err != nil {
			return nil, err
		}

		rotating := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
			LocalTime:  true,
		}
		writer = rotating
		cleanup = rotating.Close
	} else {
		writer = os.Stderr
		cleanup = func() error { return nil }
	}

	cliLogger = slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{Level: parseLevel(cfg.Level)}))

	return cleanup, nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// SlogLogger adapts a *slog.Logger to redmine.Logger.
type SlogLogger struct {
	logger *slog.Logger
}

var _ redmine.Logger = (*SlogLogger)(nil)

// NewSlogLogger wraps logger. A nil logger uses the CLI logger.
func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	if logger == nil {
		logger = cliLogger
	}

	return &SlogLogger{logger: logger}
}

// Debug implements redmine.Logger.Debug.
func (l *SlogLogger) Debug(msg string, fields map[string]interface{}) {
	l.log(slog.LevelDebug, msg, fields)
}

// Info implements redmine.Logger.Info.
func (l *SlogLogger) Info(msg string, fields map[string]interface{}) {
	l.log(slog.LevelInfo, msg, fields)
}

// Warn implements redmine.Logger.Warn.
func (l *SlogLogger) Warn(msg string, fields map[string]interface{}) {
	l.log(slog.LevelWarn, msg, fields)
}

// Error implements redmine.Logger.Error.
func (l *SlogLogger) Error(msg string, fields map[string]interface{}) {
	l.log(slog.LevelError, msg, fields)
}

func (l *SlogLogger) log(level slog.Level, msg string, fields map[string]interface{}) {
	attrs := make([]slog.Attr, 0, len(fields))
	for key, value := range fields {
		attrs = append(attrs, slog.Any(key, value))
	}

	l.logger.LogAttrs(context.Background(), level, msg, attrs...)
}
