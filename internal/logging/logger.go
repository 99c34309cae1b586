// Package logging wraps zap with environment-driven configuration and a
// process-wide logger instance shared by the domain and HTTP layers.
package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a thin wrapper around zap.Logger.
type Logger struct {
	*zap.Logger
}

// Config holds logging configuration.
type Config struct {
	// Level is the log level (debug, info, warn, error)
	Level string
	// Format is the log format (json or console)
	Format string
	// Development enables console-friendly development output
	Development bool
}

// DefaultConfig returns the production logging configuration.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "json",
	}
}

// NewLogger creates a logger with the given configuration.
func NewLogger(config Config) (*Logger, error) {
	encoderConfig := zap.NewProductionEncoderConfig()
	if config.Development {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	zapConfig := zap.Config{
		Level:             zap.NewAtomicLevelAt(parseLevel(config.Level)),
		Development:       config.Development,
		DisableCaller:     true,
		DisableStacktrace: true,
		Encoding:          config.Format,
		EncoderConfig:     encoderConfig,
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
	}

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{logger}, nil
}

// NewLoggerFromEnv creates a logger based on environment variables.
// LOG_LEVEL: log level (default: info)
// LOG_FORMAT: log format (default: json)
// LOG_DEV: enable development mode (default: false)
func NewLoggerFromEnv() (*Logger, error) {
	config := DefaultConfig()
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Level = level
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		config.Format = format
	}
	if os.Getenv("LOG_DEV") == "true" {
		config.Development = true
		config.Format = "console"
	}
	return NewLogger(config)
}

// NewNoOpLogger creates a logger that discards all logs.
func NewNoOpLogger() *Logger {
	return &Logger{zap.NewNop()}
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Named creates a child logger with a name.
func (l *Logger) Named(name string) *Logger {
	return &Logger{l.Logger.Named(name)}
}

var global *Logger

func init() {
	global = NewNoOpLogger()
}

// SetGlobal sets the process-wide logger instance.
func SetGlobal(logger *Logger) {
	global = logger
}

// L returns the process-wide logger instance.
func L() *Logger {
	return global
}
