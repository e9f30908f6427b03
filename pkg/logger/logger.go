// Package logger builds the shared zap logger. Log output goes to a
// rotating file because stdout belongs to the TUI.
package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls log level and destination
type Options struct {
	Level   string // debug/info/warn/error/fatal, LOG_LEVEL env when empty
	Path    string // log file path, default under the user state dir
	Console bool   // also write to stderr (non-TUI commands only)
}

// New creates the application logger
func New(opts Options) *zap.Logger {
	level := parseLevel(opts.Level)

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoder := zapcore.NewJSONEncoder(encoderConfig)

	fileCore := zapcore.NewCore(
		encoder,
		zapcore.AddSync(&lumberjack.Logger{
			Filename:   resolvePath(opts.Path),
			MaxSize:    20, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}),
		level,
	)

	core := fileCore
	if opts.Console {
		consoleCore := zapcore.NewCore(encoder, zapcore.AddSync(os.Stderr), level)
		core = zapcore.NewTee(fileCore, consoleCore)
	}

	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

func parseLevel(level string) zapcore.Level {
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func resolvePath(path string) string {
	if path != "" {
		return path
	}

	home, err := os.UserHomeDir()
	if err == nil {
		stateDir := filepath.Join(home, ".local", "state", "skiffctl")
		if err := os.MkdirAll(stateDir, 0o755); err == nil {
			return filepath.Join(stateDir, "skiffctl.log")
		}
	}

	return "skiffctl.log"
}
