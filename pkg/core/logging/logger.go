// ============================================================================
// VoiceDesk - Desktop Voice Assistant
// ============================================================================
//
// Package:     logging
// Description: Named logger facade over zap
// License:     MIT
// ============================================================================

package logging

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level represents log severity
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseLevel converts a level name to a Level. Unknown names map to info.
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Config holds configuration for the logging subsystem
type Config struct {
	// Level is the minimum severity to emit (debug, info, warn, error)
	Level string

	// FilePath is the log file. Empty disables file output.
	FilePath string

	// Console enables logging to stderr in addition to the file.
	// The TUI owns the terminal, so this stays off while the window is open.
	Console bool
}

// DefaultConfig returns a default logging configuration
func DefaultConfig() Config {
	return Config{
		Level:    "info",
		FilePath: "voicedesk.log",
		Console:  false,
	}
}

var (
	mu   sync.RWMutex
	root = zap.NewNop().Sugar()
)

// Init configures the process-wide logger. Loggers created by New before
// Init are no-ops; call Init early in main.
func Init(cfg Config) error {
	level := toZapLevel(ParseLevel(cfg.Level))

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var cores []zapcore.Core

	if cfg.FilePath != "" {
		if dir := filepath.Dir(cfg.FilePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encCfg),
			zapcore.AddSync(f),
			level,
		))
	}

	if cfg.Console {
		consoleCfg := zap.NewDevelopmentEncoderConfig()
		consoleCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleCfg),
			zapcore.AddSync(os.Stderr),
			level,
		))
	}

	core := zapcore.NewNopCore()
	if len(cores) > 0 {
		core = zapcore.NewTee(cores...)
	}

	mu.Lock()
	root = zap.New(core).Sugar()
	mu.Unlock()
	return nil
}

// Sync flushes buffered log entries. Call before exit.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = root.Sync()
}

// Logger is a named logger with key-value call style
type Logger struct {
	name string
}

// New creates a named logger. The name appears as the "component" field.
func New(name string) *Logger {
	return &Logger{name: name}
}

func (l *Logger) sugar() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return root.With("component", l.name)
}

// Debug logs a debug message with key-value pairs
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.sugar().Debugw(msg, keysAndValues...)
}

// Info logs an info message with key-value pairs
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar().Infow(msg, keysAndValues...)
}

// Warn logs a warning message with key-value pairs
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.sugar().Warnw(msg, keysAndValues...)
}

// Error logs an error message with key-value pairs
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.sugar().Errorw(msg, keysAndValues...)
}

func toZapLevel(l Level) zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
