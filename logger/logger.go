// Package logger provides structured logging using zap.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the global logger instance. It discards everything until Init is
// called.
var Log = zap.NewNop()

// Sugar is the sugared logger for convenient logging.
var Sugar = Log.Sugar()

// FileConfig holds file logging configuration.
type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultFileConfig returns default file logging settings.
func DefaultFileConfig(path string) FileConfig {
	return FileConfig{
		Path:       path,
		MaxSizeMB:  20,
		MaxBackups: 3,
		MaxAgeDays: 7,
		Compress:   true,
	}
}

// Options selects the outputs of the logger.
type Options struct {
	Level string

	// Console writes to stdout, which is the developer console on js/wasm.
	Console bool
	// Color enables ANSI level colors on the console.
	Color bool

	File FileConfig

	// Sinks receive plain text lines, e.g. an on-page log panel.
	Sinks []io.Writer
}

// Init initializes the logger with the given level and optional file output.
func Init(level string, logFile string) error {
	o := Options{Level: level, Console: true, Color: true}
	if logFile != "" {
		o.File = DefaultFileConfig(logFile)
	}
	return InitWithOptions(o)
}

// InitWithOptions initializes the logger from o.
func InitWithOptions(o Options) error {
	Log = New(o)
	Sugar = Log.Sugar()
	return nil
}

// New builds a logger from o without touching the globals.
func New(o Options) *zap.Logger {
	lvl := parseLevel(o.Level)

	var cores []zapcore.Core

	if o.Console {
		levelEncoder := zapcore.CapitalLevelEncoder
		if o.Color {
			levelEncoder = zapcore.CapitalColorLevelEncoder
		}
		cores = append(cores, zapcore.NewCore(
			encoder(zapcore.TimeEncoderOfLayout("15:04:05"), levelEncoder),
			zapcore.AddSync(os.Stdout),
			lvl,
		))
	}

	if o.File.Path != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   o.File.Path,
			MaxSize:    o.File.MaxSizeMB,
			MaxBackups: o.File.MaxBackups,
			MaxAge:     o.File.MaxAgeDays,
			Compress:   o.File.Compress,
			LocalTime:  true,
		}
		cores = append(cores, zapcore.NewCore(
			encoder(zapcore.ISO8601TimeEncoder, zapcore.CapitalLevelEncoder),
			zapcore.AddSync(fileWriter),
			lvl,
		))
	}

	for _, w := range o.Sinks {
		cores = append(cores, zapcore.NewCore(
			encoder(zapcore.TimeEncoderOfLayout("15:04:05"), zapcore.CapitalLevelEncoder),
			zapcore.AddSync(w),
			lvl,
		))
	}

	if len(cores) == 0 {
		return zap.NewNop()
	}
	return zap.New(zapcore.NewTee(cores...), zap.AddCaller())
}

func encoder(enc zapcore.TimeEncoder, lvl zapcore.LevelEncoder) zapcore.Encoder {
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		MessageKey:       "msg",
		CallerKey:        "caller",
		EncodeTime:       enc,
		EncodeLevel:      lvl,
		EncodeCaller:     zapcore.ShortCallerEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	})
}

// parseLevel converts a string level to zapcore.Level.
func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Sync flushes any buffered log entries.
func Sync() {
	_ = Log.Sync()
}

// Named returns a child of the global logger.
func Named(name string) *zap.Logger {
	return Log.Named(name)
}

// Debug logs a debug message.
func Debug(msg string, fields ...zap.Field) {
	Log.Debug(msg, fields...)
}

// Info logs an info message.
func Info(msg string, fields ...zap.Field) {
	Log.Info(msg, fields...)
}

// Warn logs a warning message.
func Warn(msg string, fields ...zap.Field) {
	Log.Warn(msg, fields...)
}

// Error logs an error message.
func Error(msg string, fields ...zap.Field) {
	Log.Error(msg, fields...)
}
