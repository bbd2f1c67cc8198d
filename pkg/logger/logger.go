// Package logger holds the process-wide zap logger used by every component.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the shared logger. It stays nil until Init is called; use L to get
// a logger that is always safe to call.
var Log *zap.Logger

// Init builds Log. Without a log file a development (console) logger is
// used; with one, a production JSON logger writing to the file and stdout.
func Init(level string, logFile string) error {
	var config zap.Config

	if logFile != "" {
		config = zap.NewProductionConfig()
		config.OutputPaths = []string{logFile, "stdout"}
	} else {
		config = zap.NewDevelopmentConfig()
	}

	config.Level = zap.NewAtomicLevelAt(ParseLevel(level))

	l, err := config.Build()
	if err != nil {
		return err
	}
	Log = l.Named("videofront")

	return nil
}

// ParseLevel maps a config level name to a zap level, falling back to info.
func ParseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// L returns Log, or a no-op logger when the embedding host never called Init.
func L() *zap.Logger {
	if Log == nil {
		return zap.NewNop()
	}
	return Log
}

func Sync() error {
	if Log != nil {
		return Log.Sync()
	}
	return nil
}
