package logger

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger wraps zap.Logger to provide our logging interface
type ZapLogger struct {
	*zap.Logger
	sugar *zap.SugaredLogger
}

// NewZapLogger creates a new ZapLogger with the specified configuration
func NewZapLogger(level Level, development bool) (*ZapLogger, error) {
	var config zap.Config

	if development {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000")
	} else {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	switch level {
	case DebugLevel:
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case InfoLevel:
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case ErrorLevel:
		config.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	logger, err := config.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("failed to create zap logger: %w", err)
	}

	return &ZapLogger{
		Logger: logger,
		sugar:  logger.Sugar(),
	}, nil
}

// NewZapLoggerFromEnv creates a logger configured from environment variables
func NewZapLoggerFromEnv() (*ZapLogger, error) {
	levelStr := os.Getenv("GOLDENTHREAD_LOG_LEVEL")
	if levelStr == "" {
		// Fall back to GOLDENTHREAD_VERBOSITY if the log level is not set
		switch os.Getenv("GOLDENTHREAD_VERBOSITY") {
		case "debug":
			levelStr = "debug"
		default:
			levelStr = "info"
		}
	}

	level := LevelFromString(levelStr)
	development := os.Getenv("GOLDENTHREAD_LOG_FORMAT") != "json"

	logger, err := NewZapLogger(level, development)
	if err != nil {
		return nil, err
	}

	if os.Getenv("GOLDENTHREAD_LOG_CALLER") == "true" {
		logger.Logger = logger.WithOptions(zap.AddCaller())
	}

	stacktraceLevel := os.Getenv("GOLDENTHREAD_LOG_STACKTRACE")
	if stacktraceLevel != "" {
		var zapLevel zapcore.Level
		switch strings.ToLower(stacktraceLevel) {
		case "error":
			zapLevel = zap.ErrorLevel
		case "panic":
			zapLevel = zap.PanicLevel
		default:
			zapLevel = zap.FatalLevel
		}
		logger.Logger = logger.WithOptions(zap.AddStacktrace(zapLevel))
	}

	return logger, nil
}

// Helper methods for common fields

// WithRun adds run correlation context to the logger. The identifiers are
// opaque handles into the external tracing and workflow systems and are
// logged verbatim.
func (l *ZapLogger) WithRun(runID, traceID string) *ZapLogger {
	fields := []zap.Field{
		zap.String("run_id", runID),
		zap.String("trace_id", traceID),
	}
	return &ZapLogger{
		Logger: l.With(fields...),
		sugar:  l.Logger.With(fields...).Sugar(),
	}
}

// WithDuration adds a duration field to the logger
func (l *ZapLogger) WithDuration(duration time.Duration) *ZapLogger {
	fields := []zap.Field{
		zap.Duration("duration", duration),
		zap.Float64("duration_ms", float64(duration.Nanoseconds())/1e6),
	}
	return &ZapLogger{
		Logger: l.With(fields...),
		sugar:  l.Logger.With(fields...).Sugar(),
	}
}

// WithError adds error context to the logger
func (l *ZapLogger) WithError(err error) *ZapLogger {
	if err == nil {
		return l
	}

	fields := []zap.Field{
		zap.Error(err),
		zap.String("error_type", fmt.Sprintf("%T", err)),
	}
	return &ZapLogger{
		Logger: l.With(fields...),
		sugar:  l.Logger.With(fields...).Sugar(),
	}
}

// WithField adds a single field to the logger context
func (l *ZapLogger) WithField(key string, value interface{}) *Logger {
	newZapLogger := &ZapLogger{
		Logger: l.With(zap.Any(key, value)),
		sugar:  l.Logger.With(zap.Any(key, value)).Sugar(),
	}
	return &Logger{zap: newZapLogger}
}

// WithFields adds multiple fields to the logger context
func (l *ZapLogger) WithFields(fields map[string]interface{}) *Logger {
	zapFields := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		zapFields = append(zapFields, zap.Any(k, v))
	}

	newZapLogger := &ZapLogger{
		Logger: l.With(zapFields...),
		sugar:  l.Logger.With(zapFields...).Sugar(),
	}
	return &Logger{zap: newZapLogger}
}

// Timed creates a timed logger for measuring operation duration
func (l *ZapLogger) Timed(operation string) *TimedLogger {
	l.Logger.Debug("Operation started", zap.String("operation", operation))
	return &TimedLogger{
		logger: l,
		start:  time.Now(),
		op:     operation,
	}
}

// TimedLogger tracks the duration of an operation
type TimedLogger struct {
	logger *ZapLogger
	start  time.Time
	op     string
}

// Done logs the completion of the timed operation
func (t *TimedLogger) Done() {
	duration := time.Since(t.start)
	t.logger.Logger.Debug("Operation completed",
		zap.String("operation", t.op),
		zap.Duration("duration", duration),
		zap.Float64("duration_ms", float64(duration.Nanoseconds())/1e6),
	)
}

// DoneWithError logs the completion of the timed operation with an error
func (t *TimedLogger) DoneWithError(err error) {
	if err == nil {
		t.Done()
		return
	}
	duration := time.Since(t.start)
	t.logger.Logger.Error("Operation failed",
		zap.String("operation", t.op),
		zap.Error(err),
		zap.Duration("duration", duration),
		zap.Float64("duration_ms", float64(duration.Nanoseconds())/1e6),
	)
}

// Legacy interface compatibility

func (l *ZapLogger) Debug(msg string) {
	l.Logger.Debug(msg)
}

func (l *ZapLogger) Debugf(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

func (l *ZapLogger) Info(msg string) {
	l.Logger.Info(msg)
}

func (l *ZapLogger) Infof(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

func (l *ZapLogger) Warn(msg string) {
	l.Logger.Warn(msg)
}

func (l *ZapLogger) Warnf(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

func (l *ZapLogger) Error(msg string) {
	l.Logger.Error(msg)
}

func (l *ZapLogger) Errorf(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

// Sync flushes any buffered log entries
func (l *ZapLogger) Sync() error {
	return l.Logger.Sync()
}
