package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps the zap logger with additional functionality.
type Logger struct {
	*zap.Logger
}

// Config controls where a run logger writes.
// An empty Directory disables the file sink.
type Config struct {
	ConsoleLevel zapcore.Level
	Directory    string
	FileName     string
	FileLevel    zapcore.Level
}

// NewLogger creates a new logger instance with production configuration.
func NewLogger() (*Logger, error) {
	config := zap.NewProductionConfig()

	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

	zapLogger, err := config.Build()
	if err != nil {
		return nil, err
	}

	return &Logger{
		Logger: zapLogger,
	}, nil
}

// NewLoggerWithConfig builds a logger that writes to the console at ConsoleLevel and,
// when a directory is configured, to Directory/FileName at FileLevel.
func NewLoggerWithConfig(cfg Config) (*Logger, error) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.Lock(os.Stdout),
			zap.NewAtomicLevelAt(cfg.ConsoleLevel),
		),
	}

	if cfg.Directory != "" {
		if err := os.MkdirAll(cfg.Directory, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		file, err := os.OpenFile(filepath.Join(cfg.Directory, cfg.FileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}

		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(file),
			zap.NewAtomicLevelAt(cfg.FileLevel),
		))
	}

	return &Logger{
		Logger: zap.New(zapcore.NewTee(cores...)),
	}, nil
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() *Logger {
	return &Logger{
		Logger: zap.NewNop(),
	}
}

// RunLogFileName returns the per-ticker log file name, e.g. naut_bt_AAPL_2025-01-02-15:04:05.log.
func RunLogFileName(ticker string, now time.Time) string {
	return fmt.Sprintf("naut_bt_%s_%s.log", ticker, now.Format("2006-01-02-15:04:05"))
}

// ParseLevel converts a level name such as "WARNING" or "info" into a zap level.
func ParseLevel(name string) (zapcore.Level, error) {
	if name == "WARNING" || name == "warning" {
		return zapcore.WarnLevel, nil
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", name, err)
	}

	return level, nil
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	if l.Logger != nil {
		return l.Logger.Sync()
	}

	return nil
}
