// Package logger provides the shared logrus logger for componentbot.
//
// Log lines are written to stdout and to a size-rotated file, matching
// the bot's operational contract: the file stream survives restarts
// while stdout feeds whatever supervises the process.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var globalLogger *logrus.Logger

// Config holds the logger settings.
type Config struct {
	Level        string
	File         string
	MaxSize      int // megabytes
	MaxBackups   int
	MaxAge       int // days
	Compress     bool
	EnableStdout bool
}

// Init initializes the global logger with the given configuration.
func Init(config Config) error {
	globalLogger = logrus.New()

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	globalLogger.SetLevel(level)

	var writers []io.Writer

	if config.File != "" {
		if err := os.MkdirAll(filepath.Dir(config.File), 0755); err != nil {
			return err
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   config.File,
			MaxSize:    config.MaxSize,
			MaxBackups: config.MaxBackups,
			MaxAge:     config.MaxAge,
			Compress:   config.Compress,
		})
	}

	if config.EnableStdout {
		writers = append(writers, os.Stdout)
	}

	if len(writers) > 0 {
		globalLogger.SetOutput(io.MultiWriter(writers...))
	}

	// Human-readable text in debug mode, JSON otherwise.
	if level == logrus.DebugLevel {
		globalLogger.SetFormatter(&logrus.TextFormatter{
			ForceColors:     true,
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	} else {
		globalLogger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05Z",
		})
	}

	return nil
}

// Get returns the global logger, initializing a plain stdout logger if
// Init has not been called yet.
func Get() *logrus.Logger {
	if globalLogger == nil {
		globalLogger = logrus.New()
		globalLogger.SetLevel(logrus.InfoLevel)
		globalLogger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}
	return globalLogger
}

// Debug logs a message at debug level.
func Debug(args ...interface{}) {
	Get().Debug(args...)
}

// Info logs a message at info level.
func Info(args ...interface{}) {
	Get().Info(args...)
}

// Warn logs a message at warning level.
func Warn(args ...interface{}) {
	Get().Warn(args...)
}

// Error logs a message at error level.
func Error(args ...interface{}) {
	Get().Error(args...)
}

// Infof logs a formatted message at info level.
func Infof(format string, args ...interface{}) {
	Get().Infof(format, args...)
}

// Errorf logs a formatted message at error level.
func Errorf(format string, args ...interface{}) {
	Get().Errorf(format, args...)
}

// WithFields returns a logger entry with structured fields.
func WithFields(fields logrus.Fields) *logrus.Entry {
	return Get().WithFields(fields)
}

// WithField returns a logger entry with a single field.
func WithField(key string, value interface{}) *logrus.Entry {
	return Get().WithField(key, value)
}
