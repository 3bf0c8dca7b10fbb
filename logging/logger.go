// Package logging provides the process-wide run log for the interop tool.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the minimal logging interface used throughout the tool. It is satisfied by
// framework.CapturingLogger as well as by ZapLogger.
type Logger interface {
	Printf(message string, args ...interface{})
}

// ZapLogger adapts a zap sugared logger to Logger. Printf messages are logged at debug level
// so that they only appear when debugging is enabled.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger builds the run log. With debug set it uses zap's development configuration,
// otherwise production output at info level.
func NewZapLogger(debug bool) (*ZapLogger, error) {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("could not create logger: %w", err)
	}
	return &ZapLogger{sugar: logger.Sugar()}, nil
}

// NewZapLoggerFrom wraps an existing zap logger.
func NewZapLoggerFrom(logger *zap.Logger) *ZapLogger {
	return &ZapLogger{sugar: logger.Sugar()}
}

func (l *ZapLogger) Printf(message string, args ...interface{}) {
	l.sugar.Debugf(message, args...)
}

// Infof logs at info level, for messages that should appear in every run.
func (l *ZapLogger) Infof(message string, args ...interface{}) {
	l.sugar.Infof(message, args...)
}

func (l *ZapLogger) Warnf(message string, args ...interface{}) {
	l.sugar.Warnf(message, args...)
}

// With returns a logger that adds the given key-value pairs to every message.
func (l *ZapLogger) With(keysAndValues ...interface{}) *ZapLogger {
	return &ZapLogger{sugar: l.sugar.With(keysAndValues...)}
}

// Sync flushes buffered output. Errors from syncing a terminal are ignored.
func (l *ZapLogger) Sync() {
	_ = l.sugar.Sync()
}
